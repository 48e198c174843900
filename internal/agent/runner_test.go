package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agarwask/SDET-GENIE/internal/entity"
)

type fakeBrowser struct {
	observeErr error
	url        string
	clicked    []int
	typed      map[int]string
	navigated  []string
}

func newFakeBrowser() *fakeBrowser {
	return &fakeBrowser{url: "https://example.com", typed: make(map[int]string)}
}

func (f *fakeBrowser) Observe() (*entity.BrowserState, error) {
	if f.observeErr != nil {
		return nil, f.observeErr
	}
	return &entity.BrowserState{
		URL:        f.url,
		Title:      "Example",
		DOMSummary: "[1] <input> [INPUT] Username\n[2] <button> [ACTION] Login",
	}, nil
}

func (f *fakeBrowser) Click(id int) error { f.clicked = append(f.clicked, id); return nil }
func (f *fakeBrowser) Type(id int, text string) error {
	f.typed[id] = text
	return nil
}
func (f *fakeBrowser) ReadText(int) (string, error) { return "Welcome back", nil }
func (f *fakeBrowser) Scroll(string) error          { return nil }
func (f *fakeBrowser) Navigate(url string) error {
	f.navigated = append(f.navigated, url)
	return nil
}
func (f *fakeBrowser) GoBack() error                { return nil }
func (f *fakeBrowser) PressKey(string) error        { return nil }
func (f *fakeBrowser) XPath(id int) (string, error) { return `//*[@id="user"]`, nil }
func (f *fakeBrowser) Describe(id int) (string, error) {
	return `<input id="user" xpath='//*[@id="user"]'>`, nil
}

// scriptedBrain replays one batch of tool calls per Step call.
type scriptedBrain struct {
	batches  [][]entity.ToolCall
	step     int
	recorded []entity.AgentStep
}

func (b *scriptedBrain) Reset() { b.step = 0; b.recorded = nil }

func (b *scriptedBrain) Step(_ context.Context, _ *entity.BrowserState, _ string) ([]entity.ToolCall, error) {
	if b.step >= len(b.batches) {
		return nil, errors.New("brain out of script")
	}
	batch := b.batches[b.step]
	b.step++
	return batch, nil
}

func (b *scriptedBrain) RecordStep(call entity.ToolCall, result string) {
	b.recorded = append(b.recorded, entity.AgentStep{Action: call.Name, Result: result})
}

func TestRun_RecordsFullHistory(t *testing.T) {
	brain := &scriptedBrain{batches: [][]entity.ToolCall{
		{
			{Name: "navigate", Args: map[string]any{"url": "https://example.com/login"}},
		},
		{
			{Name: "get_xpath_of_element", Args: map[string]any{"index": 1}},
			{Name: "input_text", Args: map[string]any{"index": 1, "text": "alice"}},
		},
		{
			{Name: "submit_task_result", Args: map[string]any{"final_report": "Login succeeded"}},
		},
	}}
	browser := newFakeBrowser()

	runner := New(browser, brain)
	history, err := runner.Run(context.Background(), "Scenario: Valid login")

	require.NoError(t, err)
	assert.Equal(t, "Login succeeded", history.FinalResult)

	require.Len(t, history.ModelActions, 4)
	require.Len(t, history.ActionNames, 4)
	assert.Equal(t, "Navigate to https://example.com/login", history.ActionNames[0])
	assert.Equal(t, "Get XPath of element 1", history.ActionNames[1])
	assert.Equal(t, "Input text into element 1", history.ActionNames[2])
	assert.Equal(t, "Submit task result", history.ActionNames[3])

	// Element-targeted actions carry an interacted_element description
	// with extractable xpath='...' evidence.
	assert.Contains(t, history.ModelActions[1].InteractedElement(), "xpath='")
	assert.Contains(t, history.ModelActions[2].InteractedElement(), "xpath='")
	assert.Empty(t, history.ModelActions[0].InteractedElement())

	// The discovery tool announces the XPath on the content channel.
	require.NotEmpty(t, history.ExtractedContent)
	assert.Equal(t,
		`The xpath of the element is //*[@id="user"], element 1`,
		history.ExtractedContent[0])

	assert.Equal(t, "alice", browser.typed[1])
	assert.Empty(t, history.Errors)
}

func TestRun_ObserveFailureAborts(t *testing.T) {
	browser := newFakeBrowser()
	browser.observeErr = errors.New("browser gone")
	brain := &scriptedBrain{}

	runner := New(browser, brain)
	history, err := runner.Run(context.Background(), "Scenario: X")

	require.Error(t, err)
	assert.Nil(t, history)
}

func TestRun_StepLimit(t *testing.T) {
	// A brain that keeps scrolling forever.
	brain := &scriptedBrain{batches: [][]entity.ToolCall{
		{{Name: "scroll", Args: map[string]any{"direction": "down"}}},
		{{Name: "scroll", Args: map[string]any{"direction": "down"}}},
		{{Name: "scroll", Args: map[string]any{"direction": "down"}}},
	}}
	browser := newFakeBrowser()

	runner := New(browser, brain)
	runner.MaxSteps = 3
	history, err := runner.Run(context.Background(), "Scenario: Endless")

	require.NoError(t, err)
	assert.Equal(t, "Scenario did not complete within the step limit", history.FinalResult)
	require.NotEmpty(t, history.Errors)
	assert.Contains(t, history.Errors[0], "did not complete within 3 steps")
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := New(newFakeBrowser(), &scriptedBrain{})
	history, err := runner.Run(ctx, "Scenario: X")

	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, history)
}

func TestGetInt_Shapes(t *testing.T) {
	cases := []struct {
		name string
		val  any
		want int
		ok   bool
	}{
		{"float64", float64(7), 7, true},
		{"int", 3, 3, true},
		{"numeric string", "12", 12, true},
		{"float string", "12.0", 12, true},
		{"garbage", "abc", 0, false},
		{"nil", nil, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := getInt(map[string]any{"index": tc.val}, "index")
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
