package vault_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"pgregory.net/rapid"

	"github.com/inkwell-journal/inkwell/internal/vault"
)

func newVault(t *testing.T) *vault.Vault {
	t.Helper()
	v := vault.Open(t.TempDir())
	if err := v.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return v
}

// generateFrontmatter produces an arbitrary string-valued frontmatter
// map without the reserved id/type keys.
func generateFrontmatter(t *rapid.T) map[string]any {
	keys := rapid.SliceOfNDistinct(
		rapid.StringMatching(`[a-z][a-z_]{0,15}`), 0, 6, rapid.ID[string],
	).Draw(t, "keys")
	fm := map[string]any{}
	for _, k := range keys {
		if k == "id" || k == "type" {
			continue
		}
		fm[k] = rapid.StringN(0, 60, -1).Draw(t, "value_"+k)
	}
	return fm
}

// Property: documents survive a write/read round-trip.
func TestDocRoundTrip(t *testing.T) {
	v := newVault(t)

	rapid.Check(t, func(t *rapid.T) {
		doc := vault.Doc{
			ID:          uuid.New(),
			Type:        rapid.SampledFrom([]string{vault.DocTypeSession, vault.DocTypeEntry}).Draw(t, "type"),
			Frontmatter: generateFrontmatter(t),
			Body:        rapid.StringN(0, 400, -1).Draw(t, "body"),
		}

		id, err := v.Create(doc)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if id != doc.ID {
			t.Fatalf("Create returned id %s, want %s", id, doc.ID)
		}

		loaded, err := v.Read(id)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if loaded.Type != doc.Type {
			t.Errorf("Type mismatch: got %q, want %q", loaded.Type, doc.Type)
		}
		if loaded.Body != doc.Body {
			t.Errorf("Body mismatch: got %q, want %q", loaded.Body, doc.Body)
		}
		for k, want := range doc.Frontmatter {
			if got := loaded.Frontmatter[k]; got != want {
				t.Errorf("Frontmatter[%q] mismatch: got %#v, want %#v", k, got, want)
			}
		}
	})
}

func TestReadReturnsErrDocNotFound(t *testing.T) {
	v := newVault(t)

	_, err := v.Read(uuid.New())
	if !errors.Is(err, vault.ErrDocNotFound) {
		t.Fatalf("expected ErrDocNotFound, got: %v", err)
	}
}

func TestCreateRejectsDuplicate(t *testing.T) {
	v := newVault(t)
	doc := vault.Doc{ID: uuid.New(), Type: vault.DocTypeSession, Frontmatter: map[string]any{}, Body: "x"}

	if _, err := v.Create(doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := v.Create(doc); err == nil {
		t.Fatal("expected error creating duplicate document, got nil")
	}
}

// Upsert must create on the first call and merge (same document, merged
// frontmatter, replaced body) afterwards — the at-most-one-document
// invariant for a session.
func TestUpsertCreatesThenMerges(t *testing.T) {
	v := newVault(t)
	id := uuid.New()

	got, err := v.Upsert(vault.DocTypeSession, &id, map[string]any{"mode": "morning", "a": "1"}, "body-1")
	if err != nil {
		t.Fatalf("first Upsert: %v", err)
	}
	if got != id {
		t.Fatalf("first Upsert returned %s, want %s", got, id)
	}

	got, err = v.Upsert(vault.DocTypeSession, &id, map[string]any{"a": "2", "b": "3"}, "body-2")
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if got != id {
		t.Fatalf("second Upsert returned %s, want %s", got, id)
	}

	entries, err := os.ReadDir(filepath.Join(v.Root(), "docs"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one document on disk, found %d", len(entries))
	}

	doc, err := v.Read(id)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if doc.Body != "body-2" {
		t.Errorf("Body = %q, want %q", doc.Body, "body-2")
	}
	if doc.Frontmatter["mode"] != "morning" || doc.Frontmatter["a"] != "2" || doc.Frontmatter["b"] != "3" {
		t.Errorf("merged frontmatter = %#v", doc.Frontmatter)
	}
}

func TestUpsertWithoutIDCreates(t *testing.T) {
	v := newVault(t)

	id, err := v.Upsert(vault.DocTypeEntry, nil, map[string]any{}, "hello")
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("Upsert assigned the zero id")
	}
	if _, err := v.Read(id); err != nil {
		t.Fatalf("Read after Upsert: %v", err)
	}
}

func TestActiveSessionPointer(t *testing.T) {
	v := newVault(t)

	if _, ok, err := v.ActiveSession(); err != nil || ok {
		t.Fatalf("ActiveSession on fresh vault = ok=%v err=%v, want none", ok, err)
	}

	id := uuid.New()
	if err := v.SetActiveSession(id); err != nil {
		t.Fatalf("SetActiveSession: %v", err)
	}

	got, ok, err := v.ActiveSession()
	if err != nil || !ok {
		t.Fatalf("ActiveSession = ok=%v err=%v", ok, err)
	}
	if got != id {
		t.Fatalf("ActiveSession = %s, want %s", got, id)
	}

	if err := v.ClearActiveSession(); err != nil {
		t.Fatalf("ClearActiveSession: %v", err)
	}
	// Clearing twice is fine.
	if err := v.ClearActiveSession(); err != nil {
		t.Fatalf("second ClearActiveSession: %v", err)
	}
	if _, ok, _ := v.ActiveSession(); ok {
		t.Fatal("pointer survived ClearActiveSession")
	}
}

func TestInitIsIdempotentAndInstallsPack(t *testing.T) {
	root := t.TempDir()
	v := vault.Open(root)

	if err := v.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := v.Init(); err != nil {
		t.Fatalf("second Init: %v", err)
	}

	pack := filepath.Join(root, ".inkwell", "packs", "journal@0.1.0", "pack.json")
	if _, err := os.Stat(pack); err != nil {
		t.Fatalf("pack definition missing: %v", err)
	}
}
