package entity

type OutcomeStatus string

const (
	OutcomeFinished            OutcomeStatus = "finished"
	OutcomeParseFailed         OutcomeStatus = "parse_failed"
	OutcomeIterationsExhausted OutcomeStatus = "iterations_exhausted"
)

// LoopOutcome is the terminal value of a session. Answer is set only for
// OutcomeFinished and Reason only for OutcomeParseFailed.
type LoopOutcome struct {
	Status     OutcomeStatus `json:"status"`
	Answer     string        `json:"answer,omitempty"`
	Reason     string        `json:"reason,omitempty"`
	Iterations int           `json:"iterations"`
	Transcript []Turn        `json:"transcript"`
}

func Finished(answer string) LoopOutcome {
	return LoopOutcome{Status: OutcomeFinished, Answer: answer}
}

func ParseFailed(reason string) LoopOutcome {
	return LoopOutcome{Status: OutcomeParseFailed, Reason: reason}
}

func IterationsExhausted() LoopOutcome {
	return LoopOutcome{Status: OutcomeIterationsExhausted}
}

func (o LoopOutcome) Complete() bool {
	return o.Status == OutcomeFinished
}

func (o LoopOutcome) ObservationCount() int {
	n := 0
	for _, t := range o.Transcript {
		if t.Kind == TurnObservation {
			n++
		}
	}
	return n
}
