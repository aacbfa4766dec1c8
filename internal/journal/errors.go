package journal

import "fmt"

// ErrorKind classifies an error for the recovery policy. The
// classification is a property of the kind alone, independent of the
// state that raised it.
type ErrorKind int

const (
	// KindStorage covers document-store and index failures. Fatal.
	KindStorage ErrorKind = iota
	// KindModel covers model-invocation failures, including a missing
	// subprocess and provider-reported execution errors. Downgraded to
	// a fallback analysis while Analyzing; fatal elsewhere.
	KindModel
	// KindMalformedData covers persisted documents that cannot be
	// decoded. Fatal.
	KindMalformedData
	// KindSessionNotFound recovers by returning to the mode prompt.
	KindSessionNotFound
	// KindInvalidTransition recovers by returning to the mode prompt.
	KindInvalidTransition
	// KindSystem is the generic fatal bucket.
	KindSystem
)

func (k ErrorKind) String() string {
	switch k {
	case KindStorage:
		return "storage"
	case KindModel:
		return "model"
	case KindMalformedData:
		return "malformed-data"
	case KindSessionNotFound:
		return "session-not-found"
	case KindInvalidTransition:
		return "invalid-transition"
	}
	return "system"
}

// Error is the typed domain error the recovery policy operates on.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf constructs a classified error.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// WrapErr classifies an underlying error.
func WrapErr(kind ErrorKind, err error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// RestartsFlow reports whether the error recovers by returning to the
// mode prompt rather than terminating.
func (e *Error) RestartsFlow() bool {
	return e.Kind == KindSessionNotFound || e.Kind == KindInvalidTransition
}

// FallbackEligible reports whether the error may be replaced by a
// synthesized analysis. Only meaningful while Analyzing; elsewhere it
// degrades to fatal.
func (e *Error) FallbackEligible() bool {
	return e.Kind == KindModel
}
