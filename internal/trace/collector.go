// Package trace turns per-scenario browser-agent runs into one structured
// execution record: it drives the agent over every scenario block, reconciles
// the raw action log with element indices and assembles the record the code
// generators consume.
package trace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/agarwask/SDET-GENIE/internal/entity"
	"github.com/agarwask/SDET-GENIE/internal/gherkin"
)

// ErrNoScenarios is returned when the Gherkin text splits into nothing.
var ErrNoScenarios = errors.New("gherkin text contains no scenarios")

// UnknownDate tags records whose caller did not supply an execution date.
const UnknownDate = "Unknown"

// Runner is the browser-automation collaborator: one call executes one task
// against the shared browser session and returns its history.
type Runner interface {
	Run(ctx context.Context, task string) (*entity.History, error)
}

// TaskBuilder renders one scenario block into the agent task instruction.
type TaskBuilder func(scenario string) string

// Collector executes every scenario of a Gherkin document through the agent
// and accumulates the combined streams. Scenarios run strictly one after
// another; the first failing scenario aborts the whole run with no record
// (at-most-one-attempt, no per-scenario retry).
type Collector struct {
	runner Runner
	task   TaskBuilder
}

func NewCollector(runner Runner, task TaskBuilder) *Collector {
	return &Collector{runner: runner, task: task}
}

// Execute runs the full multi-scenario pass and builds the execution record.
// executionDate is caller-supplied display text; empty means unknown.
func (c *Collector) Execute(ctx context.Context, gherkinText, executionDate string) (*entity.ExecutionRecord, error) {
	scenarios := gherkin.SplitScenarios(gherkinText)
	if len(scenarios) == 0 {
		return nil, ErrNoScenarios
	}

	resolver := NewResolver()

	var (
		urls    []string
		names   []string
		content []string
		errs    []string
		results []entity.ScenarioResult
	)

	for i, scenario := range scenarios {
		log.Printf("executing scenario %d/%d", i+1, len(scenarios))

		history, err := c.runner.Run(ctx, c.task(scenario))
		if err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i+1, err)
		}

		results = append(results, normalizeResult(history.FinalResult))

		resolver.ResolveActions(history.ModelActions, history.ActionNames)
		resolver.HarvestContent(history.ExtractedContent)

		urls = append(urls, history.URLs...)
		names = append(names, history.ActionNames...)
		content = append(content, history.ExtractedContent...)
		errs = append(errs, history.Errors...)
	}

	if executionDate == "" {
		executionDate = UnknownDate
	}

	return &entity.ExecutionRecord{
		RunID:            uuid.NewString(),
		URLs:             urls,
		ActionNames:      names,
		DetailedActions:  resolver.Actions(),
		ElementXPaths:    resolver.XPaths(),
		ExtractedContent: content,
		Errors:           errs,
		Results:          results,
		ExecutionDate:    executionDate,
	}, nil
}

// normalizeResult gives every scenario outcome one shape: a JSON object
// passes through structured, anything else is wrapped as a status pair.
func normalizeResult(raw string) entity.ScenarioResult {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") {
		var structured map[string]any
		if err := json.Unmarshal([]byte(trimmed), &structured); err == nil {
			return structured
		}
	}
	return entity.ScenarioResult{
		"status":  raw,
		"details": "Execution completed",
	}
}
