package journal_test

import (
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/inkwell-journal/inkwell/internal/journal"
)

func TestParseInputModeSelection(t *testing.T) {
	cases := []struct {
		input string
		want  journal.Action
	}{
		{"", journal.NextQuestion{}},
		{"   ", journal.NextQuestion{}},
		{"\t\n", journal.NextQuestion{}},
		{"m", journal.SelectMode{Mode: journal.Morning}},
		{"M", journal.SelectMode{Mode: journal.Morning}},
		{"morning", journal.SelectMode{Mode: journal.Morning}},
		{"Morning", journal.SelectMode{Mode: journal.Morning}},
		{"e", journal.SelectMode{Mode: journal.Evening}},
		{"evening", journal.SelectMode{Mode: journal.Evening}},
		{"  m  ", journal.SelectMode{Mode: journal.Morning}},
		{"s", journal.UserResponse{Text: "s"}},
		{"stop", journal.UserResponse{Text: "stop"}},
		{"I feel great today!", journal.UserResponse{Text: "I feel great today!"}},
	}

	for _, tc := range cases {
		got := journal.ParseInput(tc.input, journal.ModeSelection)
		if got != tc.want {
			t.Errorf("ParseInput(%q, ModeSelection) = %#v, want %#v", tc.input, got, tc.want)
		}
	}
}

func TestParseInputInSession(t *testing.T) {
	cases := []struct {
		input string
		want  journal.Action
	}{
		{"", journal.NextQuestion{}},
		{"   ", journal.NextQuestion{}},
		{"s", journal.Stop{}},
		{"S", journal.Stop{}},
		{"stop", journal.Stop{}},
		{"STOP", journal.Stop{}},
		// Mode words are not special once a session is underway.
		{"m", journal.UserResponse{Text: "m"}},
		{"morning", journal.UserResponse{Text: "morning"}},
		{"e", journal.UserResponse{Text: "e"}},
		{"evening", journal.UserResponse{Text: "evening"}},
		{"today was hard", journal.UserResponse{Text: "today was hard"}},
	}

	for _, tc := range cases {
		got := journal.ParseInput(tc.input, journal.InSessionInput)
		if got != tc.want {
			t.Errorf("ParseInput(%q, InSessionInput) = %#v, want %#v", tc.input, got, tc.want)
		}
	}
}

// Property: for any raw input, parsing yields exactly one of the
// grammar's actions, blank input is always the advance signal, and
// everything that is not a command round-trips as trimmed user text.
func TestParseInputProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.StringN(0, 80, -1).Draw(t, "raw")
		ctx := journal.ModeSelection
		if rapid.Bool().Draw(t, "in_session") {
			ctx = journal.InSessionInput
		}

		action := journal.ParseInput(raw, ctx)
		trimmed := strings.TrimSpace(raw)

		if trimmed == "" {
			if _, ok := action.(journal.NextQuestion); !ok {
				t.Fatalf("blank input parsed as %#v, want NextQuestion", action)
			}
			return
		}

		switch a := action.(type) {
		case journal.SelectMode:
			if ctx != journal.ModeSelection {
				t.Fatalf("SelectMode parsed outside mode-selection context from %q", raw)
			}
		case journal.Stop:
			if ctx != journal.InSessionInput {
				t.Fatalf("Stop parsed outside in-session context from %q", raw)
			}
		case journal.UserResponse:
			if a.Text != trimmed {
				t.Fatalf("UserResponse text = %q, want trimmed input %q", a.Text, trimmed)
			}
		default:
			t.Fatalf("unexpected action %#v for input %q", action, raw)
		}
	})
}
