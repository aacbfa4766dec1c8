package journal

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Reduce is the state machine core: a total, pure mapping from
// (state, action) to (next state, ordered effect list). Every pair not
// named in the transition table falls through to the invalid-transition
// rule and the recovery policy; nothing panics and nothing is silently
// dropped. The only non-determinism is the timestamp on new transcript
// entries and the fresh document ids allocated on document-creating
// transitions.
func Reduce(state State, action Action) (State, []Effect) {
	if f, ok := action.(Fail); ok {
		return Recover(f.Err, state)
	}

	// Done and Failed are terminal within a run. An action arriving in
	// either is an invalid transition that must not restart the flow.
	if IsTerminal(state) {
		err := invalidTransition(state, action)
		return Failed{Err: err}, []Effect{ShowError{Text: err.Error()}}
	}

	switch s := state.(type) {
	case Initializing:
		switch a := action.(type) {
		case Start:
			return PromptingForNew{}, nil
		case Resume:
			return Initializing{}, []Effect{LoadSession{SessionID: a.SessionID}}
		}

	case PromptingForNew:
		if a, ok := action.(SelectMode); ok {
			// The session document id is allocated here so every
			// subsequent save targets the same document.
			sess := NewSession(a.Mode).
				WithDocID(uuid.New()).
				WithEntry(SpeakerSystem, fmt.Sprintf("Starting %s journal session", a.Mode))
			return InSession{Session: sess}, []Effect{SaveSession{Session: sess}}
		}

	case InSession:
		switch a := action.(type) {
		case UserResponse:
			sess := s.Session.WithEntry(SpeakerUser, a.Text)
			return InSession{Session: sess}, []Effect{
				SaveSession{Session: sess},
				RequestCoachResponse{Session: sess, UserResponse: a.Text},
			}
		case CoachResponse:
			sess := s.Session.WithEntry(SpeakerCoach, a.Text)
			return InSession{Session: sess}, []Effect{SaveSession{Session: sess}}
		case NextQuestion:
			return s, nil
		case Stop:
			sess := s.Session.WithCompleted(time.Now().UTC())
			return Analyzing{Session: sess}, []Effect{
				SaveSession{Session: sess},
				GenerateAnalysis{Session: sess},
			}
		}

	case Analyzing:
		if a, ok := action.(AnalysisComplete); ok {
			entryID := uuid.New()
			sess := s.Session
			sess.Metadata.FinalEntryID = &entryID
			return AnalysisReady{Session: sess, Analysis: a.Analysis}, []Effect{
				CreateFinalEntry{Session: sess, EntryID: entryID, Analysis: a.Analysis},
			}
		}

	case AnalysisReady:
		if a, ok := action.(FinalEntryCreated); ok {
			return Done{Result: WriteResult{
				EntryID:          uuid.New(),
				EntryPath:        a.EntryPath,
				SessionCompleted: true,
			}}, []Effect{ClearIndex{}}
		}
	}

	return Recover(invalidTransition(state, action), state)
}

// Recover applies the error-recovery policy. Model failures while
// Analyzing are replaced by a synthesized fallback analysis so the
// user's entry is still written; session-not-found and invalid
// transitions restart at the mode prompt; everything else is fatal.
// The failing operation is never re-issued.
func Recover(err *Error, state State) (State, []Effect) {
	switch {
	case err.FallbackEligible():
		s, ok := state.(Analyzing)
		if !ok {
			return Failed{Err: err}, []Effect{ShowError{Text: err.Error()}}
		}
		next, effects := Reduce(s, AnalysisComplete{Analysis: FallbackAnalysis(err)})
		return next, append([]Effect{
			ShowError{Text: err.Error()},
			ShowMessage{Text: "Continuing without AI analysis..."},
		}, effects...)

	case err.RestartsFlow():
		if IsTerminal(state) {
			return Failed{Err: err}, []Effect{ShowError{Text: err.Error()}}
		}
		return PromptingForNew{}, []Effect{
			ShowError{Text: err.Error()},
			ShowMessage{Text: "Starting a new session..."},
		}

	default:
		return Failed{Err: err}, []Effect{ShowError{Text: err.Error()}}
	}
}

// FallbackAnalysis is the analysis text substituted when the model is
// unavailable at session end.
func FallbackAnalysis(err *Error) string {
	return fmt.Sprintf("**AI Analysis Unavailable**\n\n"+
		"The AI analysis feature encountered an error and is currently unavailable. "+
		"Your journal session has been saved successfully.\n\n"+
		"Error details: %s", err)
}

func invalidTransition(state State, action Action) *Error {
	return Errorf(KindInvalidTransition, "action %s is not valid in state %s",
		ActionName(action), StateName(state))
}

// ActionName returns a short name for diagnostics.
func ActionName(a Action) string {
	switch a.(type) {
	case Start:
		return "start"
	case Resume:
		return "resume"
	case SelectMode:
		return "select-mode"
	case UserResponse:
		return "user-response"
	case CoachResponse:
		return "coach-response"
	case NextQuestion:
		return "next-question"
	case Stop:
		return "stop"
	case AnalysisComplete:
		return "analysis-complete"
	case FinalEntryCreated:
		return "final-entry-created"
	case Fail:
		return "fail"
	}
	return "unknown"
}
