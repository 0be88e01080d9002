package prompts

import (
	"bytes"
	"text/template"

	"robocon-bot/internal/application/port/output"
)

type ToolInfo struct {
	Name        string
	Description string
}

type SystemPromptData struct {
	Tools []ToolInfo
}

// GenerateSystemPrompt renders a system prompt template with the registered
// tools. Text without template actions is returned unchanged.
func GenerateSystemPrompt(baseTemplate string, registry output.ToolRegistry) (string, error) {
	tools := registry.All()
	toolInfos := make([]ToolInfo, 0, len(tools))

	for _, tool := range tools {
		toolInfos = append(toolInfos, ToolInfo{
			Name:        tool.Name().String(),
			Description: tool.Description(),
		})
	}

	data := SystemPromptData{
		Tools: toolInfos,
	}

	tmpl, err := template.New("system").Option("missingkey=error").Parse(baseTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
