// Package composer drafts synthetic transcripts with the OpenAI API.
package composer

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"

	"github.com/M4ss1ck/whatsapp-simulator/internal/domain"
)

const systemPrompt = `You write short fictional chat transcripts.
Given a scenario, reply with 6-12 chat messages, one per line, in the form
"Name: message text". Use two or three distinct speaker names. No other
output.`

// OpenAIComposer generates transcript drafts via the chat completions API.
// The API key is read from the OPENAI_API_KEY environment variable by the
// SDK.
type OpenAIComposer struct {
	client openai.Client
	model  openai.ChatModel
}

func NewOpenAIComposer() *OpenAIComposer {
	return &OpenAIComposer{
		client: openai.NewClient(),
		model:  openai.ChatModelGPT4oMini,
	}
}

func (c *OpenAIComposer) Compose(ctx context.Context, scenario string) ([]domain.DraftLine, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(scenario),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("composing transcript: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("composing transcript: empty completion")
	}

	lines := ParseDraft(completion.Choices[0].Message.Content)
	if len(lines) == 0 {
		return nil, fmt.Errorf("composing transcript: no usable lines in completion")
	}
	return lines, nil
}

// ParseDraft extracts "Name: text" pairs from a completion, skipping
// anything that does not match.
func ParseDraft(text string) []domain.DraftLine {
	var out []domain.DraftLine
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		name, msg, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		msg = strings.TrimSpace(msg)
		if name == "" || msg == "" {
			continue
		}
		out = append(out, domain.DraftLine{Sender: name, Text: msg})
	}
	return out
}
