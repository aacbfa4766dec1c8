// Package vault is the on-disk document store: markdown documents with
// YAML frontmatter, addressed by UUID, living under <root>/docs/. It
// also owns the active-session index pointer and the installed type
// pack. The store assumes exclusive single-process access.
package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrDocNotFound is returned by Read when no document exists for an id.
var ErrDocNotFound = errors.New("document not found")

// Vault is a document store rooted at a fixed directory.
type Vault struct {
	root string
}

// Open returns a Vault rooted at root. It does not touch the
// filesystem; call Init before the first write.
func Open(root string) *Vault {
	return &Vault{root: root}
}

// Root returns the vault root directory.
func (v *Vault) Root() string {
	return v.root
}

// Init creates the vault tree and installs the journal type pack.
// Idempotent: an already-initialized vault is left as is.
func (v *Vault) Init() error {
	for _, dir := range []string{
		filepath.Join(v.root, "docs"),
		filepath.Join(v.root, ".inkwell", "indexes"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating vault directory: %w", err)
		}
	}
	return v.installPack()
}

// DocPath returns the on-disk path for a document id.
func (v *Vault) DocPath(id uuid.UUID) string {
	return filepath.Join(v.root, "docs", id.String()+".md")
}

// Upsert creates or merges a document. With a nil id (or no document on
// disk for the given id) a new document is created and its id returned;
// otherwise the frontmatter is merged into the existing document and
// the body replaced.
func (v *Vault) Upsert(docType string, id *uuid.UUID, frontmatter map[string]any, body string) (uuid.UUID, error) {
	if id != nil {
		if _, err := os.Stat(v.DocPath(*id)); err == nil {
			return *id, v.MergeFrontmatter(*id, frontmatter, body)
		} else if !errors.Is(err, os.ErrNotExist) {
			return uuid.Nil, fmt.Errorf("checking document: %w", err)
		}
	}
	return v.Create(Doc{ID: deref(id), Type: docType, Frontmatter: frontmatter, Body: body})
}

// Create writes a new document. A zero ID is replaced by a fresh one.
// Creating over an existing document is an error.
func (v *Vault) Create(doc Doc) (uuid.UUID, error) {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	path := v.DocPath(doc.ID)
	if _, err := os.Stat(path); err == nil {
		return uuid.Nil, fmt.Errorf("document %s already exists", doc.ID)
	}
	data, err := doc.Encode()
	if err != nil {
		return uuid.Nil, err
	}
	if err := v.writeAtomic(path, data); err != nil {
		return uuid.Nil, err
	}
	return doc.ID, nil
}

// MergeFrontmatter merges keys into an existing document's frontmatter
// and replaces its body when a non-empty body is given.
func (v *Vault) MergeFrontmatter(id uuid.UUID, frontmatter map[string]any, body string) error {
	doc, err := v.Read(id)
	if err != nil {
		return err
	}
	for k, val := range frontmatter {
		doc.Frontmatter[k] = val
	}
	if body != "" {
		doc.Body = body
	}
	data, err := doc.Encode()
	if err != nil {
		return err
	}
	return v.writeAtomic(v.DocPath(id), data)
}

// Read loads a document by id. Returns ErrDocNotFound if absent.
func (v *Vault) Read(id uuid.UUID) (Doc, error) {
	data, err := os.ReadFile(v.DocPath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Doc{}, ErrDocNotFound
		}
		return Doc{}, fmt.Errorf("reading document %s: %w", id, err)
	}
	return Decode(id, data)
}

// writeAtomic writes data via a temp file + os.Rename in the target's
// directory so a crash never leaves a half-written document.
func (v *Vault) writeAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "doc-*.md.tmp")
	if err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing document: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}

func deref(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}
