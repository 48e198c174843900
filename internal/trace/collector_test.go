package trace

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agarwask/SDET-GENIE/internal/entity"
)

// fakeRunner replays one canned history per scenario, in order, and can be
// armed to fail partway through the run.
type fakeRunner struct {
	histories []*entity.History
	failAt    int // 1-based call number that errors; 0 = never
	calls     int
	tasks     []string
}

func (f *fakeRunner) Run(_ context.Context, task string) (*entity.History, error) {
	f.calls++
	f.tasks = append(f.tasks, task)
	if f.failAt != 0 && f.calls == f.failAt {
		return nil, errors.New("browser agent crashed")
	}
	return f.histories[f.calls-1], nil
}

func identityTask(scenario string) string { return scenario }

func TestExecute_CombinesScenarios(t *testing.T) {
	runner := &fakeRunner{histories: []*entity.History{
		{
			FinalResult: "Login succeeded",
			ModelActions: []entity.RawAction{
				{"navigate": map[string]any{"url": "https://example.com"}},
				{
					"click_element":      map[string]any{"index": float64(2)},
					"interacted_element": "xpath='//button[1]'",
				},
			},
			ActionNames:      []string{"Navigate", "Click element"},
			URLs:             []string{"https://example.com"},
			ExtractedContent: []string{"landed on example.com"},
		},
		{
			FinalResult:  `{"status": "ok", "details": "all green"}`,
			ModelActions: []entity.RawAction{{"done": map[string]any{}}},
			ActionNames:  []string{"Done"},
			URLs:         []string{"https://example.com/cart"},
			Errors:       []string{"minor warning"},
		},
	}}

	c := NewCollector(runner, identityTask)
	record, err := c.Execute(context.Background(), "Scenario: A\nstep\nScenario: B\nstep", "August 25, 2026")

	require.NoError(t, err)
	assert.Equal(t, 2, runner.calls)
	assert.Equal(t, []string{"Scenario: A\nstep", "Scenario: B\nstep"}, runner.tasks)

	// Actions form one flat stream spanning both scenarios.
	require.Len(t, record.DetailedActions, 3)
	assert.Equal(t, 2, record.DetailedActions[2].Index)
	assert.Equal(t, "//button[1]", record.ElementXPaths[2])

	assert.Equal(t, []string{"https://example.com", "https://example.com/cart"}, record.URLs)
	assert.Equal(t, []string{"Navigate", "Click element", "Done"}, record.ActionNames)
	assert.Equal(t, []string{"landed on example.com"}, record.ExtractedContent)
	assert.Equal(t, []string{"minor warning"}, record.Errors)
	assert.Equal(t, "August 25, 2026", record.ExecutionDate)
	assert.NotEmpty(t, record.RunID)

	// First result normalized from a bare string, second kept structured.
	require.Len(t, record.Results, 2)
	assert.Equal(t, entity.ScenarioResult{
		"status":  "Login succeeded",
		"details": "Execution completed",
	}, record.Results[0])
	assert.Equal(t, "ok", record.Results[1]["status"])
	assert.Equal(t, "all green", record.Results[1]["details"])
}

func TestExecute_ScenarioFailureAbortsRun(t *testing.T) {
	runner := &fakeRunner{
		histories: []*entity.History{
			{FinalResult: "first ok"},
			nil,
			{FinalResult: "never reached"},
		},
		failAt: 2,
	}

	c := NewCollector(runner, identityTask)
	record, err := c.Execute(context.Background(),
		"Scenario: A\nScenario: B\nScenario: C", "")

	require.Error(t, err)
	assert.Nil(t, record)
	assert.ErrorContains(t, err, "scenario 2")
	// No third attempt after the failure.
	assert.Equal(t, 2, runner.calls)
}

func TestExecute_NoScenarios(t *testing.T) {
	c := NewCollector(&fakeRunner{}, identityTask)

	record, err := c.Execute(context.Background(), "", "")

	assert.Nil(t, record)
	assert.ErrorIs(t, err, ErrNoScenarios)
}

func TestExecute_DateDefaultsToUnknown(t *testing.T) {
	runner := &fakeRunner{histories: []*entity.History{{FinalResult: "done"}}}
	c := NewCollector(runner, identityTask)

	record, err := c.Execute(context.Background(), "Scenario: A", "")

	require.NoError(t, err)
	assert.Equal(t, UnknownDate, record.ExecutionDate)
}

func TestNormalizeResult_MalformedJSONWrapped(t *testing.T) {
	result := normalizeResult("{not json")

	assert.Equal(t, entity.ScenarioResult{
		"status":  "{not json",
		"details": "Execution completed",
	}, result)
}
