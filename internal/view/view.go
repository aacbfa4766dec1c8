// Package view renders session states and runner messages to the
// terminal.
package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/inkwell-journal/inkwell/internal/journal"
)

// ── Styles ────────────

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	questionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	coachStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	ruleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))
)

// Renderer writes user-facing output. Out receives normal output and
// ErrOut receives errors; both default to the process streams in cmd.
type Renderer struct {
	Out    io.Writer
	ErrOut io.Writer
}

// New returns a Renderer over the given streams.
func New(out, errOut io.Writer) *Renderer {
	return &Renderer{Out: out, ErrOut: errOut}
}

// Render prints the user-facing representation of a state.
func (r *Renderer) Render(s journal.State) {
	switch st := s.(type) {
	case journal.Initializing:
		// Quiet until the first real state.
	case journal.PromptingForNew:
		fmt.Fprintln(r.Out)
		fmt.Fprintln(r.Out, titleStyle.Render("Welcome to your journal"))
		fmt.Fprintln(r.Out, "What kind of session would you like to start?")
		fmt.Fprintln(r.Out, "  (m)orning - Start your day with intention")
		fmt.Fprintln(r.Out, "  (e)vening - Reflect on your day")
		fmt.Fprint(r.Out, "\nChoice (m/e): ")
	case journal.InSession:
		r.renderLatest(st.Session)
	case journal.Analyzing:
		fmt.Fprintln(r.Out, "\nAnalyzing your session...")
	case journal.AnalysisReady:
		rule := ruleStyle.Render(strings.Repeat("=", 50))
		fmt.Fprintln(r.Out)
		fmt.Fprintln(r.Out, titleStyle.Render("Session Analysis"))
		fmt.Fprintln(r.Out, rule)
		fmt.Fprintln(r.Out, st.Analysis)
		fmt.Fprintln(r.Out, rule)
	case journal.Done:
		fmt.Fprintln(r.Out)
		fmt.Fprintln(r.Out, titleStyle.Render("Session complete"))
		fmt.Fprintf(r.Out, "Your journal entry has been saved to: %s\n", st.Result.EntryPath)
	case journal.Failed:
		r.Error(st.Err.Error())
	}
}

// renderLatest shows the most recent transcript entry; user lines are
// already on screen from typing them.
func (r *Renderer) renderLatest(s journal.JournalSession) {
	if len(s.Transcript) == 0 {
		return
	}
	latest := s.Transcript[len(s.Transcript)-1]
	switch latest.Speaker {
	case journal.SpeakerCoach:
		if strings.HasSuffix(latest.Content, "?") {
			fmt.Fprintf(r.Out, "\n%s\n\n> ", questionStyle.Render(latest.Content))
		} else {
			fmt.Fprintf(r.Out, "\n%s\n", coachStyle.Render("Coach: "+latest.Content))
			fmt.Fprintf(r.Out, "%s\n> ", hintStyle.Render("Press (s)top to end the session, or keep sharing."))
		}
	case journal.SpeakerSystem:
		fmt.Fprintf(r.Out, "\n%s\n", systemStyle.Render(latest.Content))
		r.GuidedQuestion(s)
	}
}

// GuidedQuestion prints the next unanswered guided question for the
// session's mode. Sequencing lives here, not in the reducer: the index
// is simply the number of user responses so far, clamped to the last
// question.
func (r *Renderer) GuidedQuestion(s journal.JournalSession) {
	questions := s.Mode.Questions()
	i := len(s.UserEntries())
	if i >= len(questions) {
		i = len(questions) - 1
	}
	fmt.Fprintf(r.Out, "\n%s\n\n> ", questionStyle.Render(questions[i]))
}

// Message prints a notice.
func (r *Renderer) Message(text string) {
	fmt.Fprintf(r.Out, "\n%s\n", systemStyle.Render(text))
}

// Error prints a user-visible error to the error stream.
func (r *Renderer) Error(text string) {
	fmt.Fprintf(r.ErrOut, "\n%s\n", errorStyle.Render("Error: "+text))
}
