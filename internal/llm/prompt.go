package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"

	"github.com/agarwask/SDET-GENIE/internal/entity"
)

const agentSystemPrompt = `You are an autonomous browser agent executing QA test scenarios.

### PROTOCOL
1. Analyze the DOM snapshot.
2. Plan the next action(s) that advance the scenario.
3. Execute actions through the tools.
4. Before clicking or typing into any element, call "get_xpath_of_element" for it: the recorded XPaths become the selectors of the generated test code.
5. When the scenario is finished (passed or failed), call "submit_task_result" with an honest report.

### BATCHING
You may return several tool calls in one response (fill a form with multiple input_text calls, then one click).
An action that changes the page (navigation, search, login) must be the ONLY or the LAST call in the batch.

### RULES
- Element indices change after every page update; never reuse indices from an old snapshot.
- Do not announce completion in plain text; only "submit_task_result" ends the run.
- If a step cannot be performed, report it in the final result instead of guessing.`

// ConstructMessages builds the full message chain for one Brain step:
// system prompt, the executed-step log (JSONL, read-only context), then the
// task and the current browser state. Pure function, tested directly.
func ConstructMessages(task string, steps []entity.AgentStep, state *entity.BrowserState) []openai.ChatCompletionMessageParamUnion {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(agentSystemPrompt),
	}

	// JSONL keeps the log readable for the model without inviting it to
	// imitate the format in its replies (its replies are tool calls).
	if len(steps) > 0 {
		var sb strings.Builder
		sb.WriteString("PREVIOUS ACTIONS LOG (Read-Only Context):\n")

		for i, step := range steps {
			entry := map[string]any{
				"step":    i + 1,
				"thought": step.Reasoning,
				"action":  step.Action,
				"args":    step.Args,
				"result":  step.Result,
			}
			line, _ := json.Marshal(entry)
			sb.Write(line)
			sb.WriteByte('\n')
		}

		messages = append(messages, openai.UserMessage(sb.String()))
	}

	userContent := fmt.Sprintf(
		"CURRENT TASK: %s\n\n"+
			"CURRENT BROWSER STATE:\n"+
			"URL: %s\n"+
			"Title: %s\n\n"+
			"DOM STRUCTURE (Interactive Elements):\n%s",
		task,
		state.URL,
		state.Title,
		state.DOMSummary,
	)
	messages = append(messages, openai.UserMessage(userContent))

	return messages
}
