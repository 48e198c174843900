// Package qa holds the QA-agent side of the pipeline: turning user stories
// into Gherkin scenarios and scenarios into browser-agent task instructions.
package qa

import (
	"context"
	"fmt"
	"strings"
)

// Completer is the minimal LLM surface the QA agent needs.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

const gherkinSystemPrompt = `You are a senior QA engineer. You convert user stories into Gherkin test scenarios.

Requirements for your output:
- Produce valid Gherkin only: one "Feature:" line, then one or more "Scenario:" blocks with Given/When/Then steps.
- Cover the happy path AND the relevant negative paths (wrong input, missing data, denied access).
- Steps must be concrete enough to execute against a real web page: name the page, the fields and the buttons involved.
- Do not wrap the output in Markdown code fences and do not add commentary.`

// Agent generates Gherkin scenarios from natural-language user stories.
type Agent struct {
	llm Completer
}

func NewAgent(llm Completer) *Agent {
	return &Agent{llm: llm}
}

// GenerateScenarios produces a Gherkin document for the user story.
func (a *Agent) GenerateScenarios(ctx context.Context, userStory string) (string, error) {
	story := strings.TrimSpace(userStory)
	if story == "" {
		return "", fmt.Errorf("user story is empty")
	}

	prompt := fmt.Sprintf("Convert the following user story into Gherkin scenarios:\n\n%s", story)

	out, err := a.llm.Complete(ctx, gherkinSystemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("generate gherkin scenarios: %w", err)
	}

	return stripCodeFences(out), nil
}

// stripCodeFences removes a surrounding ```gherkin ... ``` block if the model
// added one despite instructions.
func stripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return trimmed
	}
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
