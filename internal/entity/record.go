package entity

// ScenarioResult is the normalized outcome of one scenario run. A bare string
// final result is wrapped as {"status": ..., "details": "Execution completed"};
// a structured (JSON object) result passes through unchanged.
type ScenarioResult map[string]any

// ExecutionRecord is the single live record of one multi-scenario run,
// consumed read-only by the code generators. A new run replaces it wholesale.
type ExecutionRecord struct {
	RunID            string           `json:"run_id"`
	URLs             []string         `json:"urls"`
	ActionNames      []string         `json:"action_names"`
	DetailedActions  []ActionRecord   `json:"detailed_actions"`
	ElementXPaths    map[int]string   `json:"element_xpaths"`
	ExtractedContent []string         `json:"extracted_content"`
	Errors           []string         `json:"errors"`
	Results          []ScenarioResult `json:"results"`
	ExecutionDate    string           `json:"execution_date"`
}
