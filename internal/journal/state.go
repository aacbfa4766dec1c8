package journal

// State is the closed set of session phases. Exactly one variant is
// active at a time; the variant that carries a JournalSession owns it
// exclusively until the next transition consumes it.
type State interface {
	isState()
}

// Initializing is the pre-start phase; it only leaves via Start or a
// Resume round-trip through the LoadSession effect.
type Initializing struct{}

// PromptingForNew waits for the user to pick a session mode.
type PromptingForNew struct{}

// InSession is the interactive conversation phase.
type InSession struct {
	Session JournalSession
}

// Analyzing waits for the model's end-of-session analysis. It is the
// only phase in which a model failure downgrades to a fallback analysis
// instead of aborting.
type Analyzing struct {
	Session JournalSession
}

// AnalysisReady holds the analysis while the final entry is written.
type AnalysisReady struct {
	Session  JournalSession
	Analysis string
}

// Done is terminal: the final entry has been written.
type Done struct {
	Result WriteResult
}

// Failed is terminal: an unrecoverable error ended the run.
type Failed struct {
	Err *Error
}

func (Initializing) isState()    {}
func (PromptingForNew) isState() {}
func (InSession) isState()       {}
func (Analyzing) isState()       {}
func (AnalysisReady) isState()   {}
func (Done) isState()            {}
func (Failed) isState()          {}

// IsTerminal reports whether no transition can leave s within a run.
func IsTerminal(s State) bool {
	switch s.(type) {
	case Done, Failed:
		return true
	}
	return false
}

// IsInteractive reports whether the driver loop should block for a line
// of user input while in s.
func IsInteractive(s State) bool {
	switch s.(type) {
	case PromptingForNew, InSession:
		return true
	}
	return false
}

// StateName returns a short name for diagnostics.
func StateName(s State) string {
	switch s.(type) {
	case Initializing:
		return "initializing"
	case PromptingForNew:
		return "prompting-for-new"
	case InSession:
		return "in-session"
	case Analyzing:
		return "analyzing"
	case AnalysisReady:
		return "analysis-ready"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return "unknown"
}
