package runner_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-journal/inkwell/internal/journal"
	"github.com/inkwell-journal/inkwell/internal/runner"
	"github.com/inkwell-journal/inkwell/internal/vault"
	"github.com/inkwell-journal/inkwell/internal/view"
)

// fakeInvoker scripts the model collaborator.
type fakeInvoker struct {
	fn      func(prompt string) (string, error)
	prompts []string
}

func (f *fakeInvoker) Invoke(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.fn(prompt)
}

func newRunner(t *testing.T, fn func(string) (string, error)) (*runner.Runner, *vault.Vault, *fakeInvoker, *bytes.Buffer) {
	t.Helper()
	v := vault.Open(t.TempDir())
	require.NoError(t, v.Init())

	inv := &fakeInvoker{fn: fn}
	var out bytes.Buffer
	r := &runner.Runner{Vault: v, Invoker: inv, View: view.New(&out, &out)}
	return r, v, inv, &out
}

func echoAnalysis(string) (string, error) {
	return "a calm, reflective read of the session", nil
}

func morningSession(t *testing.T) journal.JournalSession {
	t.Helper()
	state, _ := journal.Reduce(journal.PromptingForNew{}, journal.SelectMode{Mode: journal.Morning})
	return state.(journal.InSession).Session
}

func TestSaveSessionCreatesOneDocumentAndPointer(t *testing.T) {
	r, v, _, _ := newRunner(t, echoAnalysis)
	ctx := context.Background()
	sess := morningSession(t)

	action, rerr := r.Run(ctx, journal.SaveSession{Session: sess})
	require.Nil(t, rerr)
	require.Nil(t, action, "SaveSession yields no follow-up action")

	id := *sess.Metadata.SessionDocID
	doc, err := v.Read(id)
	require.NoError(t, err)
	require.Equal(t, vault.DocTypeSession, doc.Type)
	require.Equal(t, "morning", doc.Frontmatter["mode"])

	active, ok, err := v.ActiveSession()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, id, active)

	// A second save with more transcript merges into the same document.
	sess = sess.WithEntry(journal.SpeakerUser, "I slept well")
	_, rerr = r.Run(ctx, journal.SaveSession{Session: sess})
	require.Nil(t, rerr)

	doc, err = v.Read(id)
	require.NoError(t, err)
	require.Contains(t, doc.Body, "I slept well")
}

func TestLoadSessionYieldsSignal(t *testing.T) {
	r, _, _, _ := newRunner(t, echoAnalysis)
	ctx := context.Background()
	sess := morningSession(t)

	_, rerr := r.Run(ctx, journal.SaveSession{Session: sess})
	require.Nil(t, rerr)

	action, rerr := r.Run(ctx, journal.LoadSession{SessionID: *sess.Metadata.SessionDocID})
	require.Nil(t, rerr)
	require.Equal(t, journal.UserResponse{Text: "session_loaded"}, action)
}

func TestLoadSessionNotFound(t *testing.T) {
	r, _, _, _ := newRunner(t, echoAnalysis)

	action, rerr := r.Run(context.Background(), journal.LoadSession{SessionID: uuid.New()})
	require.Nil(t, action)
	require.NotNil(t, rerr)
	require.Equal(t, journal.KindSessionNotFound, rerr.Kind)
}

func TestLoadSessionMalformedBody(t *testing.T) {
	r, v, _, _ := newRunner(t, echoAnalysis)

	id, err := v.Create(vault.Doc{
		Type:        vault.DocTypeSession,
		Frontmatter: map[string]any{"mode": "morning"},
		Body:        "this is not a transcript",
	})
	require.NoError(t, err)

	_, rerr := r.Run(context.Background(), journal.LoadSession{SessionID: id})
	require.NotNil(t, rerr)
	require.Equal(t, journal.KindMalformedData, rerr.Kind)
}

func TestRequestCoachResponseWrapsReply(t *testing.T) {
	r, _, inv, _ := newRunner(t, func(string) (string, error) {
		return "What made it restful?", nil
	})
	sess := morningSession(t).WithEntry(journal.SpeakerUser, "I slept well")

	action, rerr := r.Run(context.Background(), journal.RequestCoachResponse{
		Session:      sess,
		UserResponse: "I slept well",
	})
	require.Nil(t, rerr)
	require.Equal(t, journal.CoachResponse{Text: "What made it restful?"}, action)

	require.Len(t, inv.prompts, 1)
	require.Contains(t, inv.prompts[0], "Latest user response: I slept well")
	require.Contains(t, inv.prompts[0], journal.Morning.CoachingContext())
}

func TestRequestCoachResponseFailureIsModelKind(t *testing.T) {
	r, _, _, _ := newRunner(t, func(string) (string, error) {
		return "", errors.New("claude: command not found")
	})

	_, rerr := r.Run(context.Background(), journal.RequestCoachResponse{
		Session:      morningSession(t),
		UserResponse: "hi",
	})
	require.NotNil(t, rerr)
	require.Equal(t, journal.KindModel, rerr.Kind)
}

func TestGenerateAnalysisRejectsProviderError(t *testing.T) {
	r, _, _, _ := newRunner(t, func(string) (string, error) {
		// Zero exit status but provider-side failure text.
		return "Execution error: quota exceeded", nil
	})

	action, rerr := r.Run(context.Background(), journal.GenerateAnalysis{Session: morningSession(t)})
	require.Nil(t, action)
	require.NotNil(t, rerr)
	require.Equal(t, journal.KindModel, rerr.Kind)
}

func TestGenerateAnalysisWrapsResult(t *testing.T) {
	r, _, inv, _ := newRunner(t, echoAnalysis)
	sess := morningSession(t).WithEntry(journal.SpeakerUser, "busy but happy day")

	action, rerr := r.Run(context.Background(), journal.GenerateAnalysis{Session: sess})
	require.Nil(t, rerr)
	require.Equal(t, journal.AnalysisComplete{Analysis: "a calm, reflective read of the session"}, action)
	require.Contains(t, inv.prompts[0], "You: busy but happy day")
}

func TestCreateFinalEntryWritesTaggedDocument(t *testing.T) {
	r, v, _, _ := newRunner(t, echoAnalysis)
	sess := morningSession(t).
		WithEntry(journal.SpeakerUser, "feeling happy and motivated").
		WithEntry(journal.SpeakerCoach, "lovely!")

	entryID := uuid.New()
	action, rerr := r.Run(context.Background(), journal.CreateFinalEntry{
		Session:  sess,
		EntryID:  entryID,
		Analysis: "analysis text",
	})
	require.Nil(t, rerr)

	created, ok := action.(journal.FinalEntryCreated)
	require.True(t, ok)
	require.Equal(t, v.DocPath(entryID), created.EntryPath)
	require.Equal(t, "analysis text", created.Analysis)

	doc, err := v.Read(entryID)
	require.NoError(t, err)
	require.Equal(t, vault.DocTypeEntry, doc.Type)
	require.Equal(t, "positive", doc.Frontmatter["mood"])
	require.Equal(t, "high", doc.Frontmatter["energy"])
	require.Equal(t, "Morning Journal Entry", doc.Frontmatter["title"])
	require.Equal(t, sess.Metadata.SessionDocID.String(), doc.Frontmatter["session_id"])
	require.True(t, strings.Contains(doc.Body, "feeling happy and motivated"))
	require.True(t, strings.Contains(doc.Body, "analysis text"))
}

func TestInitializeVaultCreatesTree(t *testing.T) {
	v := vault.Open(filepath.Join(t.TempDir(), "vault"))
	var out bytes.Buffer
	r := &runner.Runner{Vault: v, Invoker: &fakeInvoker{fn: echoAnalysis}, View: view.New(&out, &out)}

	action, rerr := r.Run(context.Background(), journal.InitializeVault{Path: v.Root()})
	require.Nil(t, rerr)
	require.Nil(t, action)

	_, err := os.Stat(filepath.Join(v.Root(), "docs"))
	require.NoError(t, err)
}

func TestClearIndexIsIdempotent(t *testing.T) {
	r, v, _, _ := newRunner(t, echoAnalysis)
	ctx := context.Background()

	require.NoError(t, v.SetActiveSession(uuid.New()))

	_, rerr := r.Run(ctx, journal.ClearIndex{})
	require.Nil(t, rerr)
	_, rerr = r.Run(ctx, journal.ClearIndex{})
	require.Nil(t, rerr, "clearing an absent pointer must succeed")

	_, ok, err := v.ActiveSession()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestShowEffectsWriteToRenderer(t *testing.T) {
	r, _, _, out := newRunner(t, echoAnalysis)
	ctx := context.Background()

	_, rerr := r.Run(ctx, journal.ShowMessage{Text: "Starting a new session..."})
	require.Nil(t, rerr)
	_, rerr = r.Run(ctx, journal.ShowError{Text: "something broke"})
	require.Nil(t, rerr)

	require.Contains(t, out.String(), "Starting a new session...")
	require.Contains(t, out.String(), "something broke")
}
