package entity

// AgentStep is one executed step in the Brain's conversational memory:
// what it thought, what it called, and what came back.
type AgentStep struct {
	Reasoning string
	Action    string
	Args      string // JSON-encoded arguments, compact for the prompt
	Result    string
}
