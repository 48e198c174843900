// Package llm wraps the OpenAI-compatible chat API behind the two call
// shapes the application needs: the agent Brain (tool-calling steps with
// memory) and plain one-shot generation for Gherkin and framework code.
package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/agarwask/SDET-GENIE/internal/entity"
)

// Client implements the agent Brain and the plain completion surface.
type Client struct {
	client *openai.Client
	model  string

	task  string
	steps []entity.AgentStep
}

// New builds a client. baseURL may point at any OpenAI-compatible endpoint
// (OpenRouter, Groq, a local server); empty keeps the SDK default.
func New(apiKey, model, baseURL string) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(opts...)
	return &Client{
		client: &client,
		model:  model,
	}
}

// Reset clears the Brain's memory for a new task.
func (c *Client) Reset() {
	c.task = ""
	c.steps = nil
}

// RecordStep appends an executed action and its result to the Brain's memory
// so the next Step sees what already happened.
func (c *Client) RecordStep(call entity.ToolCall, result string) {
	argsBytes, _ := json.Marshal(call.Args)

	c.steps = append(c.steps, entity.AgentStep{
		Reasoning: call.Reasoning,
		Action:    call.Name,
		Args:      string(argsBytes),
		Result:    result,
	})
}

// Step asks the model for the next tool calls given the current browser state.
func (c *Client) Step(ctx context.Context, state *entity.BrowserState, task string) ([]entity.ToolCall, error) {
	if c.task == "" && task != "" {
		c.task = task
	}

	messages := ConstructMessages(c.task, c.steps, state)

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    messages,
		Tools:       agentTools(),
		Temperature: openai.Opt[float64](0.1),
	})
	if err != nil {
		return nil, fmt.Errorf("llm request failed: %w", err)
	}

	return parseToolCalls(resp.Choices[0].Message)
}

// Complete runs a single system+user exchange and returns the text reply.
// Used for Gherkin generation and framework code generation.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Opt[float64](0.2),
	})
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("llm returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// parseToolCalls converts the SDK response into entity.ToolCall values.
// JSON numbers arrive as float64; the "index" argument is normalized to int
// here so downstream code deals with one shape.
func parseToolCalls(msg openai.ChatCompletionMessage) ([]entity.ToolCall, error) {
	if len(msg.ToolCalls) == 0 {
		return nil, nil
	}

	reasoning := msg.Content

	var result []entity.ToolCall
	for _, tc := range msg.ToolCalls {
		var args map[string]any
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
			return nil, fmt.Errorf("parse arguments for %s: %w", tc.Function.Name, err)
		}

		if v, ok := args["index"]; ok {
			if f, ok := v.(float64); ok {
				args["index"] = int(f)
			}
		}

		result = append(result, entity.ToolCall{
			Name:      tc.Function.Name,
			Args:      args,
			Reasoning: reasoning,
		})
	}

	return result, nil
}
