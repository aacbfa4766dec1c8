package journal

import (
	"strings"

	"github.com/google/uuid"
)

// Action is the closed set of events that can drive a transition:
// parsed user input, or results emitted by the effect runner.
type Action interface {
	isAction()
}

// Start begins a fresh run at the mode prompt.
type Start struct{}

// Resume asks for an existing session document to be loaded.
type Resume struct {
	SessionID uuid.UUID
}

// SelectMode answers the mode prompt.
type SelectMode struct {
	Mode SessionMode
}

// UserResponse carries one line of free-form user text.
type UserResponse struct {
	Text string
}

// CoachResponse carries the model's reply to the latest user text.
type CoachResponse struct {
	Text string
}

// NextQuestion is the no-op advance signal (blank input). Question
// sequencing is a rendering concern, not reducer state.
type NextQuestion struct{}

// Stop ends the conversation and triggers analysis.
type Stop struct{}

// AnalysisComplete carries the finished end-of-session analysis.
type AnalysisComplete struct {
	Analysis string
}

// FinalEntryCreated reports the written entry document.
type FinalEntryCreated struct {
	EntryPath string
	Analysis  string
}

// Fail routes an effect error into the reducer's recovery policy.
type Fail struct {
	Err *Error
}

func (Start) isAction()             {}
func (Resume) isAction()            {}
func (SelectMode) isAction()        {}
func (UserResponse) isAction()      {}
func (CoachResponse) isAction()     {}
func (NextQuestion) isAction()      {}
func (Stop) isAction()              {}
func (AnalysisComplete) isAction()  {}
func (FinalEntryCreated) isAction() {}
func (Fail) isAction()              {}

// InputContext selects the parse grammar for raw user text.
type InputContext int

const (
	// ModeSelection is active while prompting for a new session.
	ModeSelection InputContext = iota
	// InSessionInput is active during the conversation.
	InSessionInput
)

// ParseInput maps one raw line of user text to an Action under the
// given context. Blank input is always the advance signal; the short
// commands are context-sensitive, so "morning" is an ordinary response
// once a session is underway.
func ParseInput(raw string, ctx InputContext) Action {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NextQuestion{}
	}

	switch ctx {
	case ModeSelection:
		switch strings.ToLower(trimmed) {
		case "m", "morning":
			return SelectMode{Mode: Morning}
		case "e", "evening":
			return SelectMode{Mode: Evening}
		}
	case InSessionInput:
		switch strings.ToLower(trimmed) {
		case "s", "stop":
			return Stop{}
		}
	}
	return UserResponse{Text: trimmed}
}
