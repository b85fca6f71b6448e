package entity

type ToolName string

const (
	ToolGetWeather    ToolName = "get_weather"
	ToolGetAttraction ToolName = "get_attraction"

	// ToolFinish is reserved for the terminal action and never registered.
	ToolFinish ToolName = "finish"
)

func (t ToolName) String() string {
	return string(t)
}

type ParameterSpec struct {
	Name        string
	Type        LiteralKind
	Description string
	Required    bool
}

type ToolDefinition struct {
	Name        ToolName
	Description string
	Parameters  []ParameterSpec
}
