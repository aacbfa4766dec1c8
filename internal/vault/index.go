package vault

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// indexRecord is the active-session pointer, written on every session
// save and deleted on completion or explicit quit.
type indexRecord struct {
	ActiveSession string    `json:"active_session"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (v *Vault) indexPath() string {
	return filepath.Join(v.root, ".inkwell", "indexes", "journal.index.json")
}

// SetActiveSession points the index at the given session document.
func (v *Vault) SetActiveSession(id uuid.UUID) error {
	rec := indexRecord{ActiveSession: id.String(), UpdatedAt: time.Now().UTC()}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(v.indexPath()), 0o755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}
	return v.writeAtomic(v.indexPath(), data)
}

// ActiveSession returns the pointed-at session id, if any.
func (v *Vault) ActiveSession() (uuid.UUID, bool, error) {
	data, err := os.ReadFile(v.indexPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("reading index: %w", err)
	}
	var rec indexRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return uuid.Nil, false, fmt.Errorf("parsing index: %w", err)
	}
	id, err := uuid.Parse(rec.ActiveSession)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("invalid session id in index: %w", err)
	}
	return id, true, nil
}

// ClearActiveSession removes the pointer. Idempotent if absent.
func (v *Vault) ClearActiveSession() error {
	if err := os.Remove(v.indexPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clearing index: %w", err)
	}
	return nil
}
