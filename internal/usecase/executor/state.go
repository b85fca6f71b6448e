package executor

type State int

const (
	StateAwaitingModel State = iota
	StateHaveAction
	StateDispatching
	StateFinished
	StateFailedParse
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateAwaitingModel:
		return "AWAITING_MODEL"
	case StateHaveAction:
		return "HAVE_ACTION"
	case StateDispatching:
		return "DISPATCHING"
	case StateFinished:
		return "FINISHED"
	case StateFailedParse:
		return "FAILED_PARSE"
	case StateExhausted:
		return "EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}

func (s State) Terminal() bool {
	return s == StateFinished || s == StateFailedParse || s == StateExhausted
}
