// Package coach talks to the external language model: a single
// text-in/text-out invocation interface, the subprocess-backed
// implementation, and the two prompt builders.
package coach

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"
)

// Invoker is the pluggable model-invocation capability: one prompt in,
// one response out. Implementations block until the model finishes;
// there is no cancellation beyond the context.
type Invoker interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// CLIInvoker shells out to a model CLI (by default `claude -p`) and
// returns its trimmed stdout.
type CLIInvoker struct {
	Command string
	Args    []string
}

// NewCLIInvoker returns an invoker for the given command. Empty command
// falls back to the claude CLI.
func NewCLIInvoker(command string, args []string) *CLIInvoker {
	if command == "" {
		command = "claude"
		args = []string{"-p"}
	}
	return &CLIInvoker{Command: command, Args: args}
}

// Invoke runs the model subprocess with the prompt appended to the
// configured arguments. Non-zero exit, non-UTF8 output, and empty
// output are all invocation failures.
func (c *CLIInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	args := append(append([]string{}, c.Args...), prompt)
	cmd := exec.CommandContext(ctx, c.Command, args...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("model command %q failed: %s", c.Command, msg)
	}

	out := stdout.String()
	if !utf8.ValidString(out) {
		return "", fmt.Errorf("model command %q returned invalid UTF-8", c.Command)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("model command %q returned empty output", c.Command)
	}
	return out, nil
}

// IsProviderError reports whether a successful-exit response actually
// carries a provider-reported failure. The subprocess can exit zero
// while returning provider-side error text, so the trimmed output is
// checked rather than the exit status.
func IsProviderError(response string) bool {
	return strings.Contains(strings.ToLower(response), "execution error")
}
