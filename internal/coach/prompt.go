package coach

import (
	"fmt"
	"strings"

	"github.com/inkwell-journal/inkwell/internal/journal"
)

// BuildCoachPrompt assembles the single prompt for an in-session coach
// reply: the mode's coaching context, the prior transcript as
// role-labeled lines, the latest user text, and the fixed response
// instruction. System entries are excluded from the role labeling.
func BuildCoachPrompt(s journal.JournalSession, userResponse string) string {
	var history []string
	for _, e := range s.Transcript {
		switch e.Speaker {
		case journal.SpeakerUser:
			history = append(history, "user: "+e.Content)
		case journal.SpeakerCoach:
			history = append(history, "assistant: "+e.Content)
		}
	}

	return fmt.Sprintf(
		"%s\n\nConversation so far:\n%s\n\nLatest user response: %s\n\n"+
			"Please respond as an empathetic coach with a follow-up question or "+
			"reflection that helps deepen their self-awareness.",
		s.Mode.CoachingContext(), strings.Join(history, "\n"), userResponse)
}

// BuildAnalysisPrompt assembles the end-of-session analysis prompt:
// five labeled sections over the full conversation.
func BuildAnalysisPrompt(s journal.JournalSession) string {
	return fmt.Sprintf(
		"Please analyze this journal session and provide a thoughtful reflection with "+
			"the following five labeled sections:\n\n"+
			"1. Insights: key themes and realizations from the conversation\n"+
			"2. Emotional journey: how the writer's feelings moved through the session\n"+
			"3. Action items: small, concrete next steps the writer mentioned or implied\n"+
			"4. Reflections: questions worth sitting with before the next session\n"+
			"5. Summary: a short, warm closing summary\n\n"+
			"The conversation:\n\n%s",
		s.Summary())
}
