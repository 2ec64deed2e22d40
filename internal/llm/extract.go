package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrEmptyReply means no extractor found text inside the provider envelope.
var ErrEmptyReply = errors.New("empty provider reply")

// The provider envelope varies by API generation. Each extractor returns
// the reply text or "", and they are tried strictly in this order:
// content-parts array, flat output_text, then chat message.content.
var extractors = []func(map[string]any) string{
	extractContentParts,
	extractOutputText,
	extractChatMessage,
}

// ExtractText pulls the model's text output from a raw reply envelope.
func ExtractText(raw []byte) (string, error) {
	var envelope map[string]any
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", err
	}

	for _, extract := range extractors {
		if text := strings.TrimSpace(extract(envelope)); text != "" {
			return text, nil
		}
	}
	return "", ErrEmptyReply
}

// output: [{content: [{text: "..."}]}]
func extractContentParts(envelope map[string]any) string {
	output, ok := envelope["output"].([]any)
	if !ok {
		return ""
	}
	var sb strings.Builder
	for _, entry := range output {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		parts, ok := m["content"].([]any)
		if !ok {
			continue
		}
		for _, part := range parts {
			pm, ok := part.(map[string]any)
			if !ok {
				continue
			}
			if text, ok := pm["text"].(string); ok {
				sb.WriteString(text)
			}
		}
	}
	return sb.String()
}

// output_text: "..."
func extractOutputText(envelope map[string]any) string {
	text, _ := envelope["output_text"].(string)
	return text
}

// choices: [{message: {content: "..."}}]
func extractChatMessage(envelope map[string]any) string {
	choices, ok := envelope["choices"].([]any)
	if !ok || len(choices) == 0 {
		return ""
	}
	first, ok := choices[0].(map[string]any)
	if !ok {
		return ""
	}
	message, ok := first["message"].(map[string]any)
	if !ok {
		return ""
	}
	content, _ := message["content"].(string)
	return content
}
