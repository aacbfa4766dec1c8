package journal

import "github.com/google/uuid"

// Effect is the closed set of side effects a transition can request.
// Effects execute strictly in the order the reducer returned them.
type Effect interface {
	isEffect()
}

// SaveSession upserts the session document and refreshes the
// active-session pointer. The session is a snapshot: the runner must
// not mutate it.
type SaveSession struct {
	Session JournalSession
}

// LoadSession reads a session document by id.
type LoadSession struct {
	SessionID uuid.UUID
}

// RequestCoachResponse asks the model for a coach reply to the latest
// user text, given the full prior transcript.
type RequestCoachResponse struct {
	Session      JournalSession
	UserResponse string
}

// GenerateAnalysis asks the model for the end-of-session analysis.
type GenerateAnalysis struct {
	Session JournalSession
}

// CreateFinalEntry writes the final entry document under EntryID,
// combining the rendered transcript and the analysis.
type CreateFinalEntry struct {
	Session  JournalSession
	EntryID  uuid.UUID
	Analysis string
}

// ClearIndex deletes the active-session pointer; a no-op if absent.
type ClearIndex struct{}

// InitializeVault ensures the vault tree and type-schema pack exist.
type InitializeVault struct {
	Path string
}

// ShowMessage prints a user-visible notice.
type ShowMessage struct {
	Text string
}

// ShowError prints a user-visible error.
type ShowError struct {
	Text string
}

func (SaveSession) isEffect()          {}
func (LoadSession) isEffect()          {}
func (RequestCoachResponse) isEffect() {}
func (GenerateAnalysis) isEffect()     {}
func (CreateFinalEntry) isEffect()     {}
func (ClearIndex) isEffect()           {}
func (InitializeVault) isEffect()      {}
func (ShowMessage) isEffect()          {}
func (ShowError) isEffect()            {}
