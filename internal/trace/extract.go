package trace

import (
	"regexp"
	"strconv"
	"strings"
)

// XPath evidence arrives in free text through three channels (discovery
// actions, interaction actions, extracted content). The matching rules live
// here as pure functions so they can be tested and swapped without touching
// the resolver's control flow.

var (
	xpathAttrRe = regexp.MustCompile(`xpath='([^']+)'`)
	// The capture stops at a comma so the ", element N" tail stays out of the
	// value. XPaths containing commas (contains(@class,'x')) are out of
	// contract for this channel; the attribute channel above handles them.
	contentXPathRe = regexp.MustCompile(`The xpath of the element is ([^,\n]+)`)
	elementIndexRe = regexp.MustCompile(`element (\d+)`)
)

// extractXPath pulls the xpath='...' value out of an interacted-element
// description. A miss is "no evidence", never an error.
func extractXPath(s string) (string, bool) {
	m := xpathAttrRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// extractContentXPath pulls an XPath announced in extracted content
// ("The xpath of the element is <value>"). The capture stops at a delimiter
// so trailing prose does not leak into the value.
func extractContentXPath(s string) (string, bool) {
	m := contentXPathRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// extractElementIndex pulls an "element <N>" reference out of free text.
func extractElementIndex(s string) (int, bool) {
	m := elementIndexRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
