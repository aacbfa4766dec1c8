// Package runner executes effects against the vault and model
// collaborators and drives the reducer to a terminal state.
package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/inkwell-journal/inkwell/internal/coach"
	"github.com/inkwell-journal/inkwell/internal/journal"
	"github.com/inkwell-journal/inkwell/internal/vault"
	"github.com/inkwell-journal/inkwell/internal/view"
)

// Runner executes exactly one effect at a time, performing the
// associated I/O, and returns an optional follow-up action. Effects are
// never run in parallel; sessions arrive as snapshots and are never
// mutated here.
type Runner struct {
	Vault   *vault.Vault
	Invoker coach.Invoker
	View    *view.Renderer
}

// Run executes one effect. A nil action with nil error means the effect
// completed without feedback for the reducer. Errors are classified
// *journal.Error values ready for the recovery policy.
func (r *Runner) Run(ctx context.Context, effect journal.Effect) (journal.Action, *journal.Error) {
	switch e := effect.(type) {
	case journal.SaveSession:
		return nil, r.saveSession(e.Session)
	case journal.LoadSession:
		return r.loadSession(e)
	case journal.RequestCoachResponse:
		return r.requestCoachResponse(ctx, e)
	case journal.GenerateAnalysis:
		return r.generateAnalysis(ctx, e)
	case journal.CreateFinalEntry:
		return r.createFinalEntry(e)
	case journal.ClearIndex:
		if err := r.Vault.ClearActiveSession(); err != nil {
			return nil, journal.WrapErr(journal.KindStorage, err, "clearing active-session pointer")
		}
		return nil, nil
	case journal.InitializeVault:
		if err := r.Vault.Init(); err != nil {
			return nil, journal.WrapErr(journal.KindStorage, err, "initializing vault")
		}
		return nil, nil
	case journal.ShowMessage:
		r.View.Message(e.Text)
		return nil, nil
	case journal.ShowError:
		r.View.Error(e.Text)
		return nil, nil
	}
	return nil, journal.Errorf(journal.KindSystem, "unhandled effect %T", effect)
}

// saveSession upserts the session document and refreshes the
// active-session pointer. The reducer allocates the document id before
// the first save, so every save targets the same document.
func (r *Runner) saveSession(s journal.JournalSession) *journal.Error {
	body, err := sessionBody(s)
	if err != nil {
		return journal.WrapErr(journal.KindSystem, err, "encoding session")
	}
	id, err := r.Vault.Upsert(vault.DocTypeSession, s.Metadata.SessionDocID, sessionFrontmatter(s), body)
	if err != nil {
		return journal.WrapErr(journal.KindStorage, err, "saving session document")
	}
	if err := r.Vault.SetActiveSession(id); err != nil {
		return journal.WrapErr(journal.KindStorage, err, "updating active-session pointer")
	}
	return nil
}

func (r *Runner) loadSession(e journal.LoadSession) (journal.Action, *journal.Error) {
	doc, err := r.Vault.Read(e.SessionID)
	if err != nil {
		if errors.Is(err, vault.ErrDocNotFound) {
			return nil, journal.Errorf(journal.KindSessionNotFound, "session %s not found", e.SessionID)
		}
		return nil, journal.WrapErr(journal.KindStorage, err, "loading session document")
	}
	if doc.Type != vault.DocTypeSession {
		return nil, journal.Errorf(journal.KindMalformedData,
			"document %s has type %q, want %q", e.SessionID, doc.Type, vault.DocTypeSession)
	}
	if _, err := sessionFromDoc(e.SessionID, doc.Frontmatter, doc.Body); err != nil {
		return nil, journal.WrapErr(journal.KindMalformedData, err,
			fmt.Sprintf("reconstructing session %s", e.SessionID))
	}
	// Signal the reducer that the load finished; the transition out of
	// Initializing is driven by this action.
	return journal.UserResponse{Text: "session_loaded"}, nil
}

func (r *Runner) requestCoachResponse(ctx context.Context, e journal.RequestCoachResponse) (journal.Action, *journal.Error) {
	out, err := r.Invoker.Invoke(ctx, coach.BuildCoachPrompt(e.Session, e.UserResponse))
	if err != nil {
		return nil, journal.WrapErr(journal.KindModel, err, "requesting coach response")
	}
	return journal.CoachResponse{Text: out}, nil
}

func (r *Runner) generateAnalysis(ctx context.Context, e journal.GenerateAnalysis) (journal.Action, *journal.Error) {
	out, err := r.Invoker.Invoke(ctx, coach.BuildAnalysisPrompt(e.Session))
	if err != nil {
		return nil, journal.WrapErr(journal.KindModel, err, "generating analysis")
	}
	// The subprocess can exit zero while returning provider-side error
	// text; reject that output too.
	if coach.IsProviderError(out) {
		return nil, journal.Errorf(journal.KindModel, "model reported an execution error: %s", out)
	}
	return journal.AnalysisComplete{Analysis: out}, nil
}

func (r *Runner) createFinalEntry(e journal.CreateFinalEntry) (journal.Action, *journal.Error) {
	id, err := r.Vault.Create(vault.Doc{
		ID:          e.EntryID,
		Type:        vault.DocTypeEntry,
		Frontmatter: entryFrontmatter(e.Session),
		Body:        entryBody(e.Session, e.Analysis),
	})
	if err != nil {
		return nil, journal.WrapErr(journal.KindStorage, err, "creating final entry")
	}
	return journal.FinalEntryCreated{EntryPath: r.Vault.DocPath(id), Analysis: e.Analysis}, nil
}
