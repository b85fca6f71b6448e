package prompts

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"travel-agent/internal/application/port/output"
	"travel-agent/internal/domain/entity"
)

type ToolInfo struct {
	Name        string
	Description string
	Signature   string
}

type SystemPromptData struct {
	Tools  []ToolInfo
	Finish string
}

var funcs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

// GenerateSystemPrompt renders baseTemplate with the registry's tools in
// name order.
func GenerateSystemPrompt(baseTemplate string, registry output.ToolRegistry) (string, error) {
	defs := registry.Definitions()
	tools := make([]ToolInfo, 0, len(defs))

	for _, def := range defs {
		tools = append(tools, ToolInfo{
			Name:        def.Name.String(),
			Description: def.Description,
			Signature:   Signature(def),
		})
	}

	sort.Slice(tools, func(i, j int) bool {
		return tools[i].Name < tools[j].Name
	})

	data := SystemPromptData{
		Tools:  tools,
		Finish: entity.ToolFinish.String(),
	}

	tmpl, err := template.New("system").Funcs(funcs).Parse(baseTemplate)
	if err != nil {
		return "", fmt.Errorf("parse system prompt template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render system prompt: %w", err)
	}

	return buf.String(), nil
}

// Signature renders a call example such as get_weather(city="...").
func Signature(def entity.ToolDefinition) string {
	parts := make([]string, 0, len(def.Parameters))
	for _, p := range def.Parameters {
		parts = append(parts, fmt.Sprintf("%s=%s", p.Name, placeholder(p)))
	}
	return fmt.Sprintf("%s(%s)", def.Name, strings.Join(parts, ", "))
}

func placeholder(p entity.ParameterSpec) string {
	switch p.Type {
	case entity.LiteralNumber:
		return "0"
	case entity.LiteralBool:
		return "True"
	default:
		desc := p.Description
		if desc == "" {
			desc = p.Name
		}
		return fmt.Sprintf("%q", strings.ToLower(desc))
	}
}
