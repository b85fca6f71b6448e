package entity

type TurnKind string

const (
	TurnUserRequest TurnKind = "user_request"
	TurnModelOutput TurnKind = "model_output"
	TurnObservation TurnKind = "observation"
)

const (
	UserRequestPrefix = "User request: "
	ObservationPrefix = "Observation: "
)

// Turn is one immutable entry of a session conversation. Content is the exact
// text the turn contributes to the next prompt.
type Turn struct {
	Kind    TurnKind `json:"kind"`
	Content string   `json:"content"`
}

func UserRequestTurn(request string) Turn {
	return Turn{Kind: TurnUserRequest, Content: UserRequestPrefix + request}
}

func ModelOutputTurn(output string) Turn {
	return Turn{Kind: TurnModelOutput, Content: output}
}

func ObservationTurn(observation string) Turn {
	return Turn{Kind: TurnObservation, Content: ObservationPrefix + observation}
}
