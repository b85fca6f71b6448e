package service

import (
	"strings"

	"travel-agent/internal/domain/entity"
)

// Conversation is the append-only turn log of one session. It is owned by a
// single session loop and is not safe for concurrent use.
type Conversation struct {
	turns []entity.Turn
}

func NewConversation(request string) *Conversation {
	return &Conversation{
		turns: []entity.Turn{entity.UserRequestTurn(request)},
	}
}

func (c *Conversation) AppendModelOutput(output string) {
	c.turns = append(c.turns, entity.ModelOutputTurn(output))
}

func (c *Conversation) AppendObservation(observation string) {
	c.turns = append(c.turns, entity.ObservationTurn(observation))
}

// Prompt joins every turn in order, one per line.
func (c *Conversation) Prompt() string {
	parts := make([]string, len(c.turns))
	for i, t := range c.turns {
		parts[i] = t.Content
	}
	return strings.Join(parts, "\n")
}

func (c *Conversation) Len() int {
	return len(c.turns)
}

// Turns returns a copy; callers cannot reach the log itself.
func (c *Conversation) Turns() []entity.Turn {
	out := make([]entity.Turn, len(c.turns))
	copy(out, c.turns)
	return out
}
