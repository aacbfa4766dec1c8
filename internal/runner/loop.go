package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/inkwell-journal/inkwell/internal/journal"
	"github.com/inkwell-journal/inkwell/internal/view"
)

// Loop is the orchestration shell: it seeds an initial action, reads
// user input while the state is interactive, and dispatches reducer
// effects strictly in order, feeding follow-up actions straight back
// into the reducer before the outer effect list continues.
type Loop struct {
	state  journal.State
	runner *Runner
	view   *view.Renderer
	in     *bufio.Reader
}

// NewLoop returns a Loop reading user input from in.
func NewLoop(r *Runner, v *view.Renderer, in io.Reader) *Loop {
	return &Loop{
		state:  journal.Initializing{},
		runner: r,
		view:   v,
		in:     bufio.NewReader(in),
	}
}

// State returns the current state.
func (l *Loop) State() journal.State {
	return l.state
}

// Run drives the machine from the initial action to a terminal state.
// A Failed terminal state is returned as an error so the command exits
// non-zero; Done returns nil after the entry path has been reported.
func (l *Loop) Run(ctx context.Context, initial journal.Action) error {
	l.apply(ctx, initial)

	for !journal.IsTerminal(l.state) {
		if !journal.IsInteractive(l.state) {
			// Non-interactive states must have been advanced by their
			// own effects; still being here breaks the loop invariant.
			l.apply(ctx, journal.Fail{Err: journal.Errorf(journal.KindSystem,
				"stuck in non-interactive state %s", journal.StateName(l.state))})
			continue
		}

		line, err := l.in.ReadString('\n')
		if err != nil && line == "" {
			l.apply(ctx, journal.Fail{Err: journal.WrapErr(journal.KindSystem, err, "reading user input")})
			continue
		}

		inputCtx := journal.ModeSelection
		if _, ok := l.state.(journal.InSession); ok {
			inputCtx = journal.InSessionInput
		}
		l.apply(ctx, journal.ParseInput(line, inputCtx))
	}

	if f, ok := l.state.(journal.Failed); ok {
		return fmt.Errorf("session ended with error: %w", f.Err)
	}
	return nil
}

// apply feeds one action through the reducer, renders the new state,
// and dispatches the returned effects in order. Effects that yield a
// follow-up action recurse through apply before the remaining effects
// run.
func (l *Loop) apply(ctx context.Context, action journal.Action) {
	next, effects := journal.Reduce(l.state, action)
	l.state = next

	// Blank input is the advance signal: re-prompt with the next guided
	// question instead of re-rendering the unchanged state.
	if _, blank := action.(journal.NextQuestion); blank {
		if s, ok := next.(journal.InSession); ok {
			l.view.GuidedQuestion(s.Session)
		}
	} else {
		l.view.Render(next)
	}

	for _, effect := range effects {
		l.dispatch(ctx, effect)
	}
}

func (l *Loop) dispatch(ctx context.Context, effect journal.Effect) {
	action, err := l.runner.Run(ctx, effect)
	if err != nil {
		l.apply(ctx, journal.Fail{Err: err})
		return
	}
	if action != nil {
		l.apply(ctx, action)
	}
}
