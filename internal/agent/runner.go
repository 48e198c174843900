// Package agent runs one browser-automation task to completion through the
// observe -> think -> act loop and records everything the trace pipeline
// needs: the raw action log, parallel action names, visited URLs, extracted
// content and errors.
package agent

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/agarwask/SDET-GENIE/internal/entity"
)

// Browser is the hands: everything the agent can do to the page.
type Browser interface {
	Observe() (*entity.BrowserState, error)
	Click(id int) error
	Type(id int, text string) error
	ReadText(id int) (string, error)
	Scroll(direction string) error
	Navigate(url string) error
	GoBack() error
	PressKey(keyName string) error
	XPath(id int) (string, error)
	Describe(id int) (string, error)
}

// Brain is the head: plans tool calls from the current state and remembers
// what it already did.
type Brain interface {
	Reset()
	Step(ctx context.Context, state *entity.BrowserState, task string) ([]entity.ToolCall, error)
	RecordStep(call entity.ToolCall, result string)
}

// DefaultMaxSteps bounds a single task run.
const DefaultMaxSteps = 30

// Runner wires Brain and Browser together for one task at a time. It is the
// trace.Runner implementation used in production.
type Runner struct {
	Browser  Browser
	Brain    Brain
	MaxSteps int
}

func New(b Browser, brain Brain) *Runner {
	return &Runner{
		Browser:  b,
		Brain:    brain,
		MaxSteps: DefaultMaxSteps,
	}
}

// Run executes one task and returns its history. Any browser failure during
// observation aborts the run; individual action failures are recorded in the
// history and left to the agent to work around.
func (r *Runner) Run(ctx context.Context, task string) (*entity.History, error) {
	r.Brain.Reset()
	history := &entity.History{}

	maxSteps := r.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	for step := 1; step <= maxSteps; step++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		state, err := r.Browser.Observe()
		if err != nil {
			return nil, fmt.Errorf("observe browser: %w", err)
		}
		r.recordURL(history, state.URL)

		toolCalls, err := r.Brain.Step(ctx, state, task)
		if err != nil {
			log.Printf("llm step failed: %v", err)
			time.Sleep(2 * time.Second)
			continue
		}
		if len(toolCalls) == 0 {
			time.Sleep(2 * time.Second)
			continue
		}

		done := false
		for _, call := range toolCalls {
			raw := entity.RawAction{call.Name: call.Args}

			// Describe element targets before acting: a click may
			// navigate away and lose the element.
			if idx, ok := getInt(call.Args, "index"); ok && isElementTool(call.Name) {
				if desc, err := r.Browser.Describe(idx); err == nil {
					raw["interacted_element"] = desc
				}
			}

			result := r.execute(call, history)

			history.ModelActions = append(history.ModelActions, raw)
			history.ActionNames = append(history.ActionNames, actionName(call))
			r.Brain.RecordStep(call, result)

			if call.Name == "submit_task_result" {
				done = true
			}

			pause(call, len(toolCalls))
		}

		if done {
			return history, nil
		}
	}

	history.Errors = append(history.Errors,
		fmt.Sprintf("task did not complete within %d steps", maxSteps))
	if history.FinalResult == "" {
		history.FinalResult = "Scenario did not complete within the step limit"
	}
	return history, nil
}

// execute routes one tool call to the browser and reports the outcome as a
// string for the Brain's memory. Failures go into the history's error stream.
func (r *Runner) execute(call entity.ToolCall, history *entity.History) string {
	var err error

	switch call.Name {
	case "click_element":
		if idx, ok := getInt(call.Args, "index"); ok {
			err = r.Browser.Click(idx)
		} else {
			err = fmt.Errorf("missing or invalid 'index'")
		}

	case "input_text":
		idx, okIdx := getInt(call.Args, "index")
		text, okText := getString(call.Args, "text")
		if okIdx && okText {
			err = r.Browser.Type(idx, text)
		} else {
			err = fmt.Errorf("missing 'index' or 'text'")
		}

	case "get_xpath_of_element":
		idx, ok := getInt(call.Args, "index")
		if !ok {
			err = fmt.Errorf("missing or invalid 'index'")
			break
		}
		xpath, xerr := r.Browser.XPath(idx)
		if xerr != nil {
			err = xerr
			break
		}
		// This exact phrasing feeds the resolver's free-text channel.
		msg := fmt.Sprintf("The xpath of the element is %s, element %d", xpath, idx)
		history.ExtractedContent = append(history.ExtractedContent, msg)
		return msg

	case "perform_element_action":
		idx, okIdx := getInt(call.Args, "index")
		action, okAction := getString(call.Args, "action")
		if !okIdx || !okAction {
			err = fmt.Errorf("missing 'index' or 'action'")
			break
		}
		switch action {
		case "read_text":
			text, rerr := r.Browser.ReadText(idx)
			if rerr != nil {
				err = rerr
				break
			}
			history.ExtractedContent = append(history.ExtractedContent, text)
			return fmt.Sprintf("Read text: %s", text)
		case "press_enter":
			if cerr := r.Browser.Click(idx); cerr != nil {
				err = cerr
				break
			}
			err = r.Browser.PressKey("enter")
		default:
			err = fmt.Errorf("unsupported element action %q", action)
		}

	case "navigate":
		if url, ok := getString(call.Args, "url"); ok {
			err = r.Browser.Navigate(url)
		} else {
			err = fmt.Errorf("missing 'url'")
		}

	case "scroll":
		direction, ok := getString(call.Args, "direction")
		if !ok {
			direction = "down"
		}
		err = r.Browser.Scroll(direction)

	case "press_key":
		if key, ok := getString(call.Args, "key"); ok {
			err = r.Browser.PressKey(key)
		} else {
			err = fmt.Errorf("missing 'key'")
		}

	case "go_back":
		err = r.Browser.GoBack()

	case "extract_content":
		if content, ok := getString(call.Args, "content"); ok {
			history.ExtractedContent = append(history.ExtractedContent, content)
			return "Content recorded"
		}
		return "Nothing to record"

	case "submit_task_result":
		report, _ := getString(call.Args, "final_report")
		if report == "" {
			report = "Task completed"
		}
		history.FinalResult = report
		return fmt.Sprintf("DONE: %s", report)

	default:
		msg := fmt.Sprintf("Error: unknown tool %q", call.Name)
		history.Errors = append(history.Errors, msg)
		return msg
	}

	if err != nil {
		msg := fmt.Sprintf("Error: %v", err)
		history.Errors = append(history.Errors, msg)
		return msg
	}
	return "Success"
}

func (r *Runner) recordURL(history *entity.History, url string) {
	if url == "" {
		return
	}
	if n := len(history.URLs); n > 0 && history.URLs[n-1] == url {
		return
	}
	history.URLs = append(history.URLs, url)
}

// isElementTool reports whether the tool addresses a DOM element and should
// carry an interacted_element description in the raw log.
func isElementTool(name string) bool {
	switch name {
	case "click_element", "input_text", "get_xpath_of_element", "perform_element_action":
		return true
	}
	return false
}

// actionName renders the human-readable name stored parallel to the raw log.
func actionName(call entity.ToolCall) string {
	switch call.Name {
	case "click_element":
		if idx, ok := getInt(call.Args, "index"); ok {
			return fmt.Sprintf("Click element %d", idx)
		}
		return "Click element"
	case "input_text":
		if idx, ok := getInt(call.Args, "index"); ok {
			return fmt.Sprintf("Input text into element %d", idx)
		}
		return "Input text"
	case "get_xpath_of_element":
		if idx, ok := getInt(call.Args, "index"); ok {
			return fmt.Sprintf("Get XPath of element %d", idx)
		}
		return "Get XPath of element"
	case "perform_element_action":
		if action, ok := getString(call.Args, "action"); ok {
			return fmt.Sprintf("Perform element action: %s", action)
		}
		return "Perform element action"
	case "navigate":
		if url, ok := getString(call.Args, "url"); ok {
			return fmt.Sprintf("Navigate to %s", url)
		}
		return "Navigate"
	case "scroll":
		if direction, ok := getString(call.Args, "direction"); ok {
			return fmt.Sprintf("Scroll %s", direction)
		}
		return "Scroll"
	case "press_key":
		if key, ok := getString(call.Args, "key"); ok {
			return fmt.Sprintf("Press key %s", key)
		}
		return "Press key"
	case "go_back":
		return "Go back"
	case "extract_content":
		return "Extract content"
	case "submit_task_result":
		return "Submit task result"
	}
	return call.Name
}

// pause gives the page a beat after actions that may trigger rendering or
// navigation. Batched clicks get a short pause, single ones a longer one.
func pause(call entity.ToolCall, batchSize int) {
	switch call.Name {
	case "click_element", "perform_element_action":
		if batchSize > 1 {
			time.Sleep(100 * time.Millisecond)
		} else {
			time.Sleep(2 * time.Second)
		}
	case "input_text":
		time.Sleep(50 * time.Millisecond)
	case "navigate":
		time.Sleep(3 * time.Second)
	}
}

// getInt reads an integer argument, tolerating the shapes LLM JSON produces:
// float64, int, or a numeric string.
func getInt(args map[string]any, key string) (int, bool) {
	val, ok := args[key]
	if !ok || val == nil {
		return 0, false
	}
	switch v := val.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return int(f), true
		}
	}
	return 0, false
}

func getString(args map[string]any, key string) (string, bool) {
	val, ok := args[key]
	if !ok {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}
