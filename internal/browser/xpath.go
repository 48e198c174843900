package browser

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// XPath computes the XPath expression locating element id in the current DOM.
func (s *Service) XPath(id int) (string, error) {
	el, err := s.element(id)
	if err != nil {
		return "", err
	}

	xpath, err := el.GetXPath(true)
	if err != nil {
		return "", fmt.Errorf("xpath of element %d: %w", id, err)
	}
	return xpath, nil
}

// Describe renders a one-line description of element id in the form
// <tag attr="..." xpath='...'>. The xpath='...' part is what the trace
// resolver extracts downstream, so its quoting is load-bearing.
func (s *Service) Describe(id int) (string, error) {
	el, err := s.element(id)
	if err != nil {
		return "", err
	}

	xpath, err := el.GetXPath(true)
	if err != nil {
		return "", fmt.Errorf("xpath of element %d: %w", id, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	val, err := el.Context(ctx).Eval(`() => {
		const parts = [this.tagName.toLowerCase()];
		for (const name of ['id', 'name', 'class', 'type', 'role', 'aria-label']) {
			const v = this.getAttribute(name);
			if (v) parts.push(name + '="' + v + '"');
		}
		return parts.join(' ');
	}`)
	if err != nil {
		// The XPath alone is still a usable description.
		return fmt.Sprintf("<element xpath='%s'>", xpath), nil
	}

	head := strings.TrimSpace(val.Value.String())
	if head == "" {
		head = "element"
	}
	return fmt.Sprintf("<%s xpath='%s'>", head, xpath), nil
}
