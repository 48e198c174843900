package llm

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/openai/openai-go/v3"

	"github.com/agarwask/SDET-GENIE/internal/entity"
)

// extractContent marshals a message union to JSON and pulls out the content
// field. Works for any message role since the SDK guarantees the JSON shape.
func extractContent(t *testing.T, msg openai.ChatCompletionMessageParamUnion) string {
	t.Helper()

	bytes, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("failed to marshal message: %v", err)
	}

	var temp struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(bytes, &temp); err != nil {
		t.Fatalf("failed to unmarshal message content: %v", err)
	}
	return temp.Content
}

func TestConstructMessages_FirstStep(t *testing.T) {
	task := "Scenario: Valid login\nGiven the login page"
	state := &entity.BrowserState{
		URL:        "https://example.com/login",
		Title:      "Login",
		DOMSummary: "[1] <input> [INPUT] Username",
	}

	msgs := ConstructMessages(task, nil, state)

	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}

	sysContent := extractContent(t, msgs[0])
	if !strings.Contains(sysContent, "get_xpath_of_element") {
		t.Error("system prompt must direct the agent to record XPaths")
	}

	userContent := extractContent(t, msgs[1])
	if !strings.Contains(userContent, "CURRENT TASK: Scenario: Valid login") {
		t.Error("task missing in prompt")
	}
	if !strings.Contains(userContent, "example.com/login") {
		t.Error("URL missing in prompt")
	}
	if strings.Contains(userContent, "PREVIOUS ACTIONS LOG") {
		t.Error("step log should be absent on the first step")
	}
}

func TestConstructMessages_WithStepLog(t *testing.T) {
	task := "Scenario: Search"
	steps := []entity.AgentStep{
		{
			Reasoning: "The search box is element 3",
			Action:    "input_text",
			Args:      `{"index": 3, "text": "golang"}`,
			Result:    "Success",
		},
	}
	state := &entity.BrowserState{
		URL:        "https://example.com",
		Title:      "Example",
		DOMSummary: "[1] <button> [ACTION] Search",
	}

	msgs := ConstructMessages(task, steps, state)

	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}

	logContent := extractContent(t, msgs[1])
	if !strings.Contains(logContent, "PREVIOUS ACTIONS LOG") {
		t.Error("log header missing")
	}
	if !strings.Contains(logContent, "The search box is element 3") {
		t.Error("recorded reasoning missing from log")
	}

	finalMsg := extractContent(t, msgs[2])
	if strings.Contains(finalMsg, "The search box is element 3") {
		t.Error("step log leaked into the current state message")
	}
	if !strings.Contains(finalMsg, "[ACTION] Search") {
		t.Error("current DOM missing")
	}
}
