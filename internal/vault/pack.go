package vault

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DocTypeSession and DocTypeEntry are the two document kinds the
// journal pack declares.
const (
	DocTypeSession = "journal.session"
	DocTypeEntry   = "journal.entry"

	packName = "journal@0.1.0"
)

// installPack writes the journal type-schema pack definition. Always
// rewritten so upgrades take effect; the content is deterministic.
func (v *Vault) installPack() error {
	dir := filepath.Join(v.root, ".inkwell", "packs", packName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating pack directory: %w", err)
	}
	data, err := json.MarshalIndent(packDefinition(), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding pack definition: %w", err)
	}
	return v.writeAtomic(filepath.Join(dir, "pack.json"), data)
}

func packDefinition() map[string]any {
	uuidField := map[string]any{"type": "string", "format": "uuid"}
	timeField := map[string]any{"type": "string", "format": "date-time"}
	modeField := map[string]any{"enum": []string{"morning", "evening"}}

	return map[string]any{
		"name":        "journal",
		"version":     "0.1.0",
		"description": "Interactive journaling pack for empathetic self-reflection",
		"types": map[string]any{
			DocTypeSession: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":         uuidField,
					"mode":       modeField,
					"updated_at": timeField,
					"metadata":   map[string]any{"type": "object"},
				},
				"required": []string{"id", "mode"},
			},
			DocTypeEntry: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":         uuidField,
					"session_id": uuidField,
					"mode":       modeField,
					"title":      map[string]any{"type": "string"},
					"tags":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"mood":       map[string]any{"type": "string"},
					"energy":     map[string]any{"type": "string"},
				},
				"required": []string{"id", "mode"},
			},
		},
	}
}
