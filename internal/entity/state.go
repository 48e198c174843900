package entity

// BrowserState is a snapshot of the current page handed to the Brain:
// where we are plus a compact summary of the interactive DOM.
type BrowserState struct {
	URL        string
	Title      string
	DOMSummary string
}
