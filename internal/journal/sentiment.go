package journal

import "strings"

// Keyword families for mood and energy tagging of the final entry.
// Scanning is first-match-wins over the user-authored transcript lines
// in transcript order; within a line the earliest keyword occurrence
// decides, so "sad but also great" reads as challenging.
var moodFamilies = []keywordFamily{
	{label: "positive", words: []string{"happy", "great", "wonderful"}},
	{label: "challenging", words: []string{"sad", "difficult", "hard"}},
	{label: "neutral", words: []string{"okay", "fine", "neutral"}},
}

var energyFamilies = []keywordFamily{
	{label: "high", words: []string{"energetic", "motivated", "high"}},
	{label: "low", words: []string{"tired", "exhausted", "low"}},
	{label: "medium", words: []string{"medium", "moderate"}},
}

type keywordFamily struct {
	label string
	words []string
}

// ExtractMood derives the mood tag from the session's user entries.
// Returns "" when no keyword appears.
func ExtractMood(s JournalSession) string {
	return scanFamilies(s, moodFamilies)
}

// ExtractEnergy derives the energy tag from the session's user entries.
// Returns "" when no keyword appears.
func ExtractEnergy(s JournalSession) string {
	return scanFamilies(s, energyFamilies)
}

func scanFamilies(s JournalSession, families []keywordFamily) string {
	for _, entry := range s.UserEntries() {
		content := strings.ToLower(entry.Content)
		best := -1
		label := ""
		for _, fam := range families {
			for _, w := range fam.words {
				idx := strings.Index(content, w)
				if idx >= 0 && (best < 0 || idx < best) {
					best = idx
					label = fam.label
				}
			}
		}
		if best >= 0 {
			return label
		}
	}
	return ""
}
