package codegen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agarwask/SDET-GENIE/internal/entity"
	"github.com/agarwask/SDET-GENIE/internal/gherkin"
)

// ErrNoExecution is returned when code generation is requested before a
// successful run produced an execution record.
var ErrNoExecution = errors.New("no execution record: generate and execute scenarios first")

// Completer is the minimal LLM surface the generator needs.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Service generates automation source for the supported frameworks. It is a
// pure consumer of (gherkin text, execution record); the record is never
// mutated.
type Service struct {
	llm Completer
}

func NewService(llm Completer) *Service {
	return &Service{llm: llm}
}

// Generate produces the automation source for one framework. The record
// precondition is checked before any model call.
func (s *Service) Generate(ctx context.Context, fw Framework, gherkinText string, record *entity.ExecutionRecord) (string, error) {
	if !fw.Valid() {
		return "", fmt.Errorf("unknown framework %q", fw)
	}
	if record == nil {
		return "", ErrNoExecution
	}

	code, err := s.llm.Complete(ctx, generatorSystemPrompt, buildPrompt(fw, gherkinText, record))
	if err != nil {
		return "", fmt.Errorf("generate %s code: %w", fw.DisplayName(), err)
	}

	return stripCodeFences(code), nil
}

// OutputFileName derives the download file name from the Gherkin Feature
// title: "<feature_slug>_automation.<ext>".
func OutputFileName(gherkinText string, fw Framework) string {
	return fmt.Sprintf("%s_automation.%s", gherkin.FeatureName(gherkinText), fw.Extension())
}

// stripCodeFences unwraps a ``` block if the model added one anyway.
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
