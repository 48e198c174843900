package trace

import "github.com/agarwask/SDET-GENIE/internal/entity"

// UnknownActionName is used when the raw action stream is longer than the
// parallel name list.
const UnknownActionName = "Unknown Action"

// Resolver reconciles the raw action stream against element indices,
// merging XPath evidence from all three channels into one authoritative
// index -> XPath map. Its state spans scenarios: one Resolver lives for the
// whole multi-scenario run and only grows. Writes are last-writer-wins.
//
// Single writer at a time (the in-flight collection step), so no locking.
type Resolver struct {
	xpaths  map[int]string
	actions []entity.ActionRecord
	stream  int // absolute position in the run-wide action stream
}

func NewResolver() *Resolver {
	return &Resolver{xpaths: make(map[int]string)}
}

// ResolveActions consumes one scenario's raw actions together with the
// parallel human-readable name list, appending enriched ActionRecords to the
// combined stream and folding XPath evidence into the element map.
func (r *Resolver) ResolveActions(raw []entity.RawAction, names []string) {
	for i, action := range raw {
		name := UnknownActionName
		if i < len(names) {
			name = names[i]
		}

		record := entity.ActionRecord{
			Name:  name,
			Index: r.stream,
		}

		kind, params := classify(action)
		switch kind {
		case kindDiscovery:
			if idx, ok := elementIndex(params); ok {
				record.ElementDetails.Index = &idx
				if xpath, ok := extractXPath(action.InteractedElement()); ok {
					r.xpaths[idx] = xpath
					record.ElementDetails.XPath = xpath
				}
			}

		case kindInteraction:
			if idx, ok := elementIndex(params); ok {
				record.ElementDetails.Index = &idx
				// Known mapping first, then the action's own description.
				// The fresh value overwrites unconditionally.
				if known, ok := r.xpaths[idx]; ok {
					record.ElementDetails.XPath = known
				}
				if xpath, ok := extractXPath(action.InteractedElement()); ok {
					r.xpaths[idx] = xpath
					record.ElementDetails.XPath = xpath
				}
			}
		}

		r.actions = append(r.actions, record)
		r.stream++
	}
}

// HarvestContent scans free-text extracted content for XPath announcements.
// Best effort: an item contributes only when it names both a value and an
// element index, and it updates the map alone. Already finalized
// ActionRecords keep the snapshot they were given.
func (r *Resolver) HarvestContent(items []string) {
	for _, item := range items {
		xpath, ok := extractContentXPath(item)
		if !ok {
			continue
		}
		if idx, ok := extractElementIndex(item); ok {
			r.xpaths[idx] = xpath
		}
	}
}

// Actions returns the combined ActionRecord stream in execution order.
func (r *Resolver) Actions() []entity.ActionRecord {
	return r.actions
}

// XPaths returns the element map. The caller must treat it read-only once
// the run is over.
func (r *Resolver) XPaths() map[int]string {
	return r.xpaths
}
