package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/agarwask/SDET-GENIE/internal/entity"
)

// Observe snapshots the current page: it tags interactive elements with
// data-agent-id attributes and returns a compact DOM summary for the Brain.
func (s *Service) Observe() (*entity.BrowserState, error) {
	// The active tab can die under us (closed by the site, crashed).
	// Recover onto any live tab, or open a fresh one.
	if s.page != nil {
		if _, err := s.page.Info(); err != nil {
			s.page = nil
		}
	}
	if s.page == nil {
		pages, err := s.browser.Pages()
		if err == nil && len(pages) > 0 {
			s.page = pages[0]
		} else {
			page, err := s.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
			if err != nil {
				return nil, fmt.Errorf("no live page: %w", err)
			}
			s.page = page
		}
	}

	s.invalidate()

	info, err := s.page.Info()
	if err != nil {
		return nil, err
	}

	tryWaitStable(s.page, 2*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := s.page.Context(ctx).Eval(observeElementsScript)
	if err != nil {
		// Still hand the Brain something to reason about.
		return &entity.BrowserState{
			URL:        info.URL,
			Title:      info.Title,
			DOMSummary: "Page is loading... (DOM scan timed out)",
		}, nil
	}

	jsonString := res.Value.String()
	if jsonString == "" || jsonString == "null" {
		return &entity.BrowserState{
			URL:        info.URL,
			Title:      info.Title,
			DOMSummary: "Page is empty",
		}, nil
	}

	var elements []struct {
		ID          int    `json:"id"`
		Tag         string `json:"tag"`
		Text        string `json:"text"`
		Interactive bool   `json:"interactive"`
	}
	if err := json.Unmarshal([]byte(jsonString), &elements); err != nil {
		return nil, fmt.Errorf("decode DOM snapshot: %w", err)
	}

	var sb strings.Builder
	for _, el := range elements {
		if el.Interactive {
			fmt.Fprintf(&sb, "[%d] <%s> %s\n", el.ID, el.Tag, el.Text)
		} else {
			fmt.Fprintf(&sb, "    <%s> %s\n", el.Tag, el.Text)
		}
	}
	if len(elements) >= maxScannedElements {
		sb.WriteString("\n... (truncated) ...\n")
	}

	summary := sb.String()
	if summary == "" {
		summary = "No elements found"
	}

	return &entity.BrowserState{
		URL:        info.URL,
		Title:      info.Title,
		DOMSummary: summary,
	}, nil
}

// element resolves an index lazily: elements are only located when an action
// actually targets them, via the data-agent-id attribute Observe planted.
func (s *Service) element(id int) (*rod.Element, error) {
	if el, ok := s.elements[id]; ok {
		return el, nil
	}

	selector := fmt.Sprintf("[data-agent-id='%d']", id)
	el, err := s.page.Timeout(2 * time.Second).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("element %d not found: %w", id, err)
	}

	s.elements[id] = el
	return el, nil
}

func tryWaitStable(page *rod.Page, timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		page.Timeout(timeout).WaitStable(500 * time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
