package session

import "errors"

// State is a session's position in the per-video lifecycle.
type State int

const (
	StateAnalyzing State = iota
	StateAwaitingInput
	StateRefined
	StateDone
	StateSkipped
	// StateFailed ends a session whose selected script could not be copied.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateAnalyzing:
		return "analyzing"
	case StateAwaitingInput:
		return "awaiting_input"
	case StateRefined:
		return "refined"
	case StateDone:
		return "done"
	case StateSkipped:
		return "skipped"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions follow.
func (s State) Terminal() bool {
	return s == StateDone || s == StateSkipped || s == StateFailed
}

// ErrAborted is returned when the user quits or input closes at a prompt.
// It is the only error that ends a whole run.
var ErrAborted = errors.New("aborted by user")

// Reasons attached to terminal outcomes.
const (
	ReasonMatched       = "matched"
	ReasonMarkedDone    = "marked_done"
	ReasonSkipped       = "skipped"
	ReasonPermanentSkip = "nothing_extracted"
	ReasonCopyFailed    = "copy_failed"
)
