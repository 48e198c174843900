package trace

import "github.com/agarwask/SDET-GENIE/internal/entity"

// actionKind is the discriminator for the heterogeneous raw action shapes.
// Each raw entry is classified exactly once; the resolver branches on the
// kind instead of probing keys all over the place.
type actionKind int

const (
	kindOther actionKind = iota
	kindDiscovery
	kindInteraction
)

// DiscoveryAction is the tool that explicitly requests an element's XPath.
const DiscoveryAction = "get_xpath_of_element"

// interactionActions are the tools that act on an element, in the order
// their keys are probed.
var interactionActions = []string{"input_text", "click_element", "perform_element_action"}

// classify resolves a raw entry to its kind and the argument map of the
// matching tool key (nil for kindOther).
func classify(raw entity.RawAction) (actionKind, map[string]any) {
	if params, ok := raw.Params(DiscoveryAction); ok {
		return kindDiscovery, params
	}
	for _, key := range interactionActions {
		if params, ok := raw.Params(key); ok {
			return kindInteraction, params
		}
	}
	return kindOther, nil
}

// elementIndex reads the "index" parameter of a tool argument map. JSON
// decoding delivers numbers as float64, so both shapes are accepted.
func elementIndex(params map[string]any) (int, bool) {
	v, ok := params["index"]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	}
	return 0, false
}
