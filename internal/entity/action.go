package entity

// RawAction is one entry of the agent's raw action log. It is keyed by the
// tool name (holding that tool's argument map) and may additionally carry an
// "interacted_element" description string for element-targeted tools.
type RawAction map[string]any

// Params returns the argument map stored under the given tool key.
func (a RawAction) Params(key string) (map[string]any, bool) {
	v, ok := a[key]
	if !ok {
		return nil, false
	}
	params, ok := v.(map[string]any)
	return params, ok
}

// InteractedElement returns the element description attached to the action,
// or "" when the action did not target an element.
func (a RawAction) InteractedElement() string {
	v, ok := a["interacted_element"]
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// ElementDetails is the element evidence attached to an ActionRecord.
// Index is a pointer so that "no element involved" and "element 0" stay
// distinguishable in the serialized record.
type ElementDetails struct {
	Index *int   `json:"index,omitempty"`
	XPath string `json:"xpath,omitempty"`
}

// ActionRecord is one resolved action of the combined, run-wide stream.
// XPath, when set, is a snapshot of the element map taken at the moment the
// record was finalized; the map stays the source of truth afterwards.
type ActionRecord struct {
	Name           string         `json:"name"`
	Index          int            `json:"index"`
	ElementDetails ElementDetails `json:"element_details"`
}
