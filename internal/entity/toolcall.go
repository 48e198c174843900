package entity

// ToolCall is the agent's intent to perform one action, parsed from the
// LLM response.
type ToolCall struct {
	Name      string         // click_element, input_text, ...
	Args      map[string]any // {"index": 10, "text": "foo"}
	Reasoning string         // chain-of-thought text preceding the call
}
