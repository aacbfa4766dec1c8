// Package journal contains the session state machine: the data model,
// the closed State/Action/Effect sets, and the pure reducer that maps
// (state, action) pairs to a next state plus an ordered effect list.
package journal

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionMode selects the guided question list and coaching context.
// Fixed at session creation.
type SessionMode string

const (
	Morning SessionMode = "morning"
	Evening SessionMode = "evening"
)

// Speaker tags a transcript line with its author.
type Speaker string

const (
	SpeakerUser   Speaker = "user"
	SpeakerCoach  Speaker = "coach"
	SpeakerSystem Speaker = "system"
)

// TranscriptEntry is one line of the session transcript. Entries are
// append-only and never mutated after creation.
type TranscriptEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Speaker   Speaker   `json:"speaker"`
	Content   string    `json:"content"`
}

// SessionMetadata carries the persistence bookkeeping for a session.
// SessionDocID is the idempotence key for storage: every save after the
// first targets the same document.
type SessionMetadata struct {
	SessionDocID *uuid.UUID        `json:"session_doc_id,omitempty"`
	FinalEntryID *uuid.UUID        `json:"final_entry_id,omitempty"`
	CompletedAt  *time.Time        `json:"completed_at,omitempty"`
	CustomFields map[string]string `json:"custom_fields,omitempty"`
}

// JournalSession is the session owned by the active state variant.
// Transitions consume the previous value and produce a new one; the
// With* helpers copy the transcript slice so an older state can never
// observe a later append.
type JournalSession struct {
	Mode       SessionMode       `json:"mode"`
	Transcript []TranscriptEntry `json:"transcript"`
	Metadata   SessionMetadata   `json:"metadata"`
}

// WriteResult records the final entry written at session completion.
type WriteResult struct {
	EntryID          uuid.UUID `json:"entry_id"`
	EntryPath        string    `json:"entry_path"`
	SessionCompleted bool      `json:"session_completed"`
}

// NewSession returns an empty session in the given mode.
func NewSession(mode SessionMode) JournalSession {
	return JournalSession{
		Mode:       mode,
		Transcript: []TranscriptEntry{},
		Metadata:   SessionMetadata{CustomFields: map[string]string{}},
	}
}

// WithEntry returns a copy of s with a new transcript entry appended,
// stamped with the current time. The receiver's transcript is not
// shared with the returned value.
func (s JournalSession) WithEntry(speaker Speaker, content string) JournalSession {
	transcript := make([]TranscriptEntry, len(s.Transcript), len(s.Transcript)+1)
	copy(transcript, s.Transcript)
	s.Transcript = append(transcript, TranscriptEntry{
		Timestamp: time.Now().UTC(),
		Speaker:   speaker,
		Content:   content,
	})
	return s
}

// WithCompleted returns a copy of s with metadata.completed_at stamped.
func (s JournalSession) WithCompleted(at time.Time) JournalSession {
	s.Metadata.CompletedAt = &at
	return s
}

// WithDocID returns a copy of s with the session document id set.
func (s JournalSession) WithDocID(id uuid.UUID) JournalSession {
	s.Metadata.SessionDocID = &id
	return s
}

// UserEntries returns the user-authored transcript lines in order.
func (s JournalSession) UserEntries() []TranscriptEntry {
	var out []TranscriptEntry
	for _, e := range s.Transcript {
		if e.Speaker == SpeakerUser {
			out = append(out, e)
		}
	}
	return out
}

// Summary renders the transcript as a labeled plain-text conversation,
// used for the final entry body and the analysis prompt.
func (s JournalSession) Summary() string {
	out := fmt.Sprintf("Journal Session (%s)\n\n", s.Mode.Title())
	for _, e := range s.Transcript {
		label := "System"
		switch e.Speaker {
		case SpeakerUser:
			label = "You"
		case SpeakerCoach:
			label = "Coach"
		}
		out += fmt.Sprintf("%s: %s\n\n", label, e.Content)
	}
	return out
}

// Title returns the capitalized mode name.
func (m SessionMode) Title() string {
	if m == Evening {
		return "Evening"
	}
	return "Morning"
}

// Questions returns the fixed ordered guided-question list for the mode.
func (m SessionMode) Questions() []string {
	if m == Evening {
		return []string{
			"How was your day overall?",
			"What went well today?",
			"What was challenging?",
			"How are you feeling as you wind down?",
			"What are you grateful for today?",
		}
	}
	return []string{
		"How are you feeling as you start this day?",
		"What's your energy level right now?",
		"What are you most looking forward to today?",
		"Is there anything weighing on your mind this morning?",
	}
}

// CoachingContext returns the fixed system context used when asking the
// model for a coach reply in this mode.
func (m SessionMode) CoachingContext() string {
	if m == Evening {
		return "You are an empathetic journaling coach helping someone reflect on their day " +
			"and process their experiences. Ask follow-up questions that help them explore " +
			"what they learned, how they grew, and what they want to carry forward. Be warm, " +
			"supportive, and help them find meaning in their experiences."
	}
	return "You are an empathetic journaling coach helping someone start their day with " +
		"intention and awareness. Ask follow-up questions that help them explore their " +
		"feelings, set intentions, and prepare mentally for the day ahead. Be warm, " +
		"supportive, and gently curious."
}

// ParseMode parses a stored mode string. Unknown values are rejected so
// malformed documents surface as errors instead of silently becoming a
// morning session.
func ParseMode(s string) (SessionMode, error) {
	switch SessionMode(s) {
	case Morning, Evening:
		return SessionMode(s), nil
	default:
		return "", fmt.Errorf("unknown session mode %q", s)
	}
}
