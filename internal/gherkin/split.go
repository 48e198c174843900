// Package gherkin slices multi-scenario Gherkin documents into the pieces
// the execution pipeline works with.
package gherkin

import (
	"regexp"
	"strings"
)

const scenarioMarker = "Scenario:"

var featureRe = regexp.MustCompile(`Feature:\s*(.+)`)

// SplitScenarios partitions a Gherkin document into per-scenario blocks.
// A line whose trimmed text starts with "Scenario:" opens a new block and
// flushes the one accumulated so far; the marker line belongs to the block it
// opens. A document without any marker is returned as a single block, so
// Feature headers and free text survive standalone. Empty input yields nil.
func SplitScenarios(text string) []string {
	if text == "" {
		return nil
	}

	var blocks []string
	var current []string

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), scenarioMarker) {
			if len(current) > 0 {
				blocks = append(blocks, strings.Join(current, "\n"))
			}
			current = []string{line}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}

	return blocks
}

// FeatureName extracts the Feature title and slugs it for use in output file
// names ("User Login" -> "user_login"). Falls back to "automated_test" when
// the document has no Feature line.
func FeatureName(text string) string {
	m := featureRe.FindStringSubmatch(text)
	if m == nil {
		return "automated_test"
	}
	name := strings.TrimSpace(m[1])
	return strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}
