package runner

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-journal/inkwell/internal/journal"
)

// sessionFrontmatter builds the journal.session frontmatter. Metadata
// is laid out explicitly so stored keys stay stable across refactors.
func sessionFrontmatter(s journal.JournalSession) map[string]any {
	meta := map[string]any{}
	if s.Metadata.SessionDocID != nil {
		meta["session_doc_id"] = s.Metadata.SessionDocID.String()
	}
	if s.Metadata.FinalEntryID != nil {
		meta["final_entry_id"] = s.Metadata.FinalEntryID.String()
	}
	if s.Metadata.CompletedAt != nil {
		meta["completed_at"] = s.Metadata.CompletedAt.UTC().Format(time.RFC3339)
	}
	if len(s.Metadata.CustomFields) > 0 {
		meta["custom_fields"] = s.Metadata.CustomFields
	}
	return map[string]any{
		"mode":       string(s.Mode),
		"updated_at": time.Now().UTC().Format(time.RFC3339),
		"metadata":   meta,
	}
}

// sessionBody serializes the transcript as the document body.
func sessionBody(s journal.JournalSession) (string, error) {
	data, err := json.MarshalIndent(s.Transcript, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing transcript: %w", err)
	}
	return string(data), nil
}

// sessionFromDoc reconstructs a JournalSession from stored frontmatter
// and body.
func sessionFromDoc(id uuid.UUID, frontmatter map[string]any, body string) (journal.JournalSession, error) {
	var zero journal.JournalSession

	rawMode, _ := frontmatter["mode"].(string)
	mode, err := journal.ParseMode(rawMode)
	if err != nil {
		return zero, err
	}

	var transcript []journal.TranscriptEntry
	if err := json.Unmarshal([]byte(body), &transcript); err != nil {
		return zero, fmt.Errorf("parsing transcript: %w", err)
	}

	s := journal.NewSession(mode)
	s.Transcript = transcript
	s.Metadata.SessionDocID = &id

	if meta, ok := frontmatter["metadata"].(map[string]any); ok {
		if raw, ok := meta["final_entry_id"].(string); ok {
			if entryID, err := uuid.Parse(raw); err == nil {
				s.Metadata.FinalEntryID = &entryID
			}
		}
		if raw, ok := meta["completed_at"].(string); ok {
			if at, err := time.Parse(time.RFC3339, raw); err == nil {
				s.Metadata.CompletedAt = &at
			}
		}
		if fields, ok := meta["custom_fields"].(map[string]any); ok {
			for k, v := range fields {
				if str, ok := v.(string); ok {
					s.Metadata.CustomFields[k] = str
				}
			}
		}
	}
	return s, nil
}

// entryFrontmatter builds the journal.entry frontmatter, including the
// mood/energy tags derived from the user's transcript lines.
func entryFrontmatter(s journal.JournalSession) map[string]any {
	fm := map[string]any{
		"mode":  string(s.Mode),
		"title": s.Mode.Title() + " Journal Entry",
		"tags":  []string{string(s.Mode), "reflection"},
	}
	if s.Metadata.SessionDocID != nil {
		fm["session_id"] = s.Metadata.SessionDocID.String()
	}
	if mood := journal.ExtractMood(s); mood != "" {
		fm["mood"] = mood
	}
	if energy := journal.ExtractEnergy(s); energy != "" {
		fm["energy"] = energy
	}
	return fm
}

// entryBody renders the final entry: the full transcript followed by
// the analysis text.
func entryBody(s journal.JournalSession, analysis string) string {
	return fmt.Sprintf("# %s Journal Entry\n\n%s\n## Analysis\n\n%s\n",
		s.Mode.Title(), s.Summary(), analysis)
}
