package service

import (
	"testing"

	"travel-agent/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestConversation_AppendAndPrompt(t *testing.T) {
	c := NewConversation("weather in Paris then suggest an attraction")
	c.AppendModelOutput("Thought: check weather\nAction: get_weather(city=\"Paris\")")
	c.AppendObservation("Paris current weather: Sunny, temperature 20 degrees Celsius")

	assert.Equal(t, 3, c.Len())
	assert.Equal(t,
		"User request: weather in Paris then suggest an attraction\n"+
			"Thought: check weather\nAction: get_weather(city=\"Paris\")\n"+
			"Observation: Paris current weather: Sunny, temperature 20 degrees Celsius",
		c.Prompt())

	turns := c.Turns()
	assert.Equal(t, entity.TurnUserRequest, turns[0].Kind)
	assert.Equal(t, entity.TurnModelOutput, turns[1].Kind)
	assert.Equal(t, entity.TurnObservation, turns[2].Kind)
}

func TestConversation_TurnsIsACopy(t *testing.T) {
	c := NewConversation("hi")

	turns := c.Turns()
	turns[0].Content = "mutated"

	assert.Equal(t, "User request: hi", c.Turns()[0].Content)
	assert.Equal(t, "User request: hi", c.Prompt())
}
