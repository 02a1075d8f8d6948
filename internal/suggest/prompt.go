package suggest

import (
	"fmt"
	"strings"
	"text/template"
)

var promptTemplate = template.Must(template.New("suggest").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`Based on the topic "{{.TopicName}}" and its tags: {{join .Tags ", "}}, suggest a list of communities that would be relevant to the user.

Each community in the list should have a name and a brief description. Focus on communities that share multiple tags or cover similar subtopics.
Return no more than 5 communities.`))

// RenderPrompt builds the instruction sent to the model.
func RenderPrompt(in Input) (string, error) {
	var b strings.Builder
	if err := promptTemplate.Execute(&b, in); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return b.String(), nil
}
