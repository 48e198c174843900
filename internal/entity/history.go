package entity

// History is what one browser-agent run leaves behind: the replayable,
// ordered streams the trace pipeline consumes. All slices are append-only
// while the run is in flight and parallel where it matters (ModelActions
// and ActionNames share indices).
type History struct {
	FinalResult      string
	ModelActions     []RawAction
	ActionNames      []string
	URLs             []string
	ExtractedContent []string
	Errors           []string
}
