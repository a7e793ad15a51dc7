package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// turn is the checkpoint representation of one conversation message.
// Only role and flattened text survive the round trip; tool call
// structure is rendered into the text so restored context stays
// readable to the model.
type turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func transcriptFromMessages(messages []llms.MessageContent) []turn {
	transcript := make([]turn, 0, len(messages))
	for _, msg := range messages {
		transcript = append(transcript, turn{
			Role:    string(msg.Role),
			Content: flattenParts(msg.Parts),
		})
	}
	return transcript
}

func flattenParts(parts []llms.ContentPart) string {
	var b strings.Builder
	for _, part := range parts {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		switch p := part.(type) {
		case llms.TextContent:
			b.WriteString(p.Text)
		case llms.ToolCall:
			b.WriteString(fmt.Sprintf("[called %s with %s]", p.FunctionCall.Name, p.FunctionCall.Arguments))
		case llms.ToolCallResponse:
			b.WriteString(p.Content)
		}
	}
	return b.String()
}

// messagesFromState decodes a checkpoint state back into messages.
// States come back from the stores as generic JSON values, so decode
// through a marshal round trip rather than type asserting.
func messagesFromState(state any) ([]llms.MessageContent, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode checkpoint state: %w", err)
	}

	var transcript []turn
	if err := json.Unmarshal(raw, &transcript); err != nil {
		return nil, fmt.Errorf("failed to decode checkpoint state: %w", err)
	}

	messages := make([]llms.MessageContent, 0, len(transcript))
	for _, t := range transcript {
		messages = append(messages, llms.TextParts(llms.ChatMessageType(t.Role), t.Content))
	}
	return messages, nil
}
