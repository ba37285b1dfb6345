// Package assistant wraps the external text-generation service: one call
// summarizing work logs, one call parsing a free-text logging command.
// The service is a black box; failures degrade to fixed fallbacks and a
// local parser instead of surfacing errors.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/austin/contracts-mcp/internal/hours"
)

// SummaryFallback is returned whenever the model call fails.
const SummaryFallback = "Failed to generate summary."

// LogCommand is the structured form of a spoken/typed logging command.
type LogCommand struct {
	ClientName      string  `json:"clientName"`
	DurationInHours float64 `json:"durationInHours"`
	WorkDescription string  `json:"workDescription"`
}

type Assistant struct {
	chatModel model.ToolCallingChatModel
}

// New wraps a chat model. A nil model is allowed; every call then takes
// the degraded path, so the server works without an API key configured.
func New(chatModel model.ToolCallingChatModel) *Assistant {
	return &Assistant{chatModel: chatModel}
}

// SummarizeLogs produces a one-sentence summary of the given log text.
func (a *Assistant) SummarizeLogs(ctx context.Context, logs string) string {
	if a == nil || a.chatModel == nil {
		return SummaryFallback
	}

	resp, err := a.chatModel.Generate(ctx, []*schema.Message{
		schema.SystemMessage("You are a professional contract manager. Keep summaries brief and informative."),
		schema.UserMessage("Summarize the following work logs in one concise sentence: " + logs),
	})
	if err != nil {
		return SummaryFallback
	}
	summary := strings.TrimSpace(resp.Content)
	if summary == "" {
		return SummaryFallback
	}
	return summary
}

const parsePrompt = `Extract timesheet details from the user's command.
Return JSON only, no markdown, with exactly these fields:
{"clientName": string, "durationInHours": number, "workDescription": string}`

// ParseCommand extracts client, duration and description from a free-text
// command. When the model call fails or returns junk, the local regex
// parser takes over.
func (a *Assistant) ParseCommand(ctx context.Context, command string) (*LogCommand, error) {
	if a != nil && a.chatModel != nil {
		if cmd, err := a.parseWithModel(ctx, command); err == nil {
			return cmd, nil
		}
	}

	parsed, err := hours.ParseCommand(command)
	if err != nil {
		return nil, fmt.Errorf("failed to parse command: %w", err)
	}
	return &LogCommand{
		ClientName:      parsed.ClientName,
		DurationInHours: parsed.DurationInHours,
		WorkDescription: parsed.WorkDescription,
	}, nil
}

func (a *Assistant) parseWithModel(ctx context.Context, command string) (*LogCommand, error) {
	resp, err := a.chatModel.Generate(ctx, []*schema.Message{
		schema.SystemMessage(parsePrompt),
		schema.UserMessage(command),
	})
	if err != nil {
		return nil, err
	}

	raw := resp.Content
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in model response")
	}
	raw = raw[start : end+1]

	var cmd LogCommand
	if err := json.Unmarshal([]byte(raw), &cmd); err != nil {
		return nil, fmt.Errorf("failed to decode model response: %w", err)
	}
	if cmd.ClientName == "" || cmd.DurationInHours <= 0 {
		return nil, fmt.Errorf("incomplete command parse")
	}
	return &cmd, nil
}
