package browser

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
)

// Click clicks element id, falling back to a synthetic JS click when the
// native one fails, and follows any tab the click opened.
func (s *Service) Click(id int) error {
	el, err := s.element(id)
	if err != nil {
		return err
	}

	pagesBefore, _ := s.browser.Pages()
	existingIDs := make(map[string]bool)
	for _, p := range pagesBefore {
		if info, err := p.Info(); err == nil {
			existingIDs[string(info.TargetID)] = true
		}
	}

	highlightCtx, highlightCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer highlightCancel()
	_, _ = el.Context(highlightCtx).Eval(highlightClickScript)

	clickCtx, clickCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer clickCancel()

	if err := el.Context(clickCtx).Click(proto.InputMouseButtonLeft, 1); err != nil {
		log.Printf("native click failed (%v), trying JS click", err)
		if jsErr := s.forceClickJS(el); jsErr != nil {
			return fmt.Errorf("click element %d: %w", id, jsErr)
		}
	}

	if newPage := s.waitForNewTab(existingIDs, 3*time.Second); newPage != nil {
		s.activatePage(newPage)
	} else {
		s.safeWaitLoad(2 * time.Second)
	}

	s.invalidate()
	return nil
}

func (s *Service) forceClickJS(el *rod.Element) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := el.Context(ctx).Eval(`() => {
		this.click();
		this.dispatchEvent(new MouseEvent('click', {bubbles: true}));
	}`)
	return err
}

// Type replaces the content of input element id with text.
func (s *Service) Type(id int, text string) error {
	el, err := s.element(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, _ = el.Context(ctx).Eval(highlightTypeScript)

	if err := el.SelectAllText(); err != nil {
		log.Printf("select text in element %d: %v", id, err)
	}
	if err := el.Input(text); err != nil {
		return fmt.Errorf("type into element %d: %w", id, err)
	}

	s.invalidate()
	return nil
}

// ReadText returns the visible text (or value) of element id, truncated.
func (s *Service) ReadText(id int) (string, error) {
	el, err := s.element(id)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	val, err := el.Context(ctx).Eval(`() => {
		return this.innerText || this.textContent || this.value || "";
	}`)
	if err != nil {
		return "", fmt.Errorf("read element %d: %w", id, err)
	}

	text := val.Value.String()
	if len(text) > 5000 {
		text = text[:5000] + "...(truncated)"
	}
	return text, nil
}

// Scroll scrolls the page up or down by most of a viewport.
func (s *Service) Scroll(direction string) error {
	script := scrollDownScript
	if direction == "up" {
		script = scrollUpScript
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := s.page.Context(ctx).Eval(script)
	time.Sleep(500 * time.Millisecond)

	s.invalidate()
	return err
}

// GoBack navigates the active tab one history entry back.
func (s *Service) GoBack() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.page.Context(ctx).NavigateBack(); err != nil {
		return err
	}
	s.safeWaitLoad(3 * time.Second)

	s.invalidate()
	return nil
}

// PressKey sends a special key to the active tab.
func (s *Service) PressKey(keyName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_ = s.page.Context(ctx).WaitStable(300 * time.Millisecond)

	var k input.Key
	switch keyName {
	case "enter":
		k = input.Enter
	case "escape":
		k = input.Escape
	case "tab":
		k = input.Tab
	case "backspace":
		k = input.Backspace
	case "arrow_down":
		k = input.ArrowDown
	case "arrow_up":
		k = input.ArrowUp
	case "space":
		k = input.Space
	default:
		return fmt.Errorf("unsupported key: %s", keyName)
	}

	if err := s.page.Keyboard.Press(k); err != nil {
		return err
	}
	time.Sleep(500 * time.Millisecond)

	s.invalidate()
	return nil
}

// Navigate loads url in the active tab.
func (s *Service) Navigate(url string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.page.Context(ctx).Navigate(url); err != nil {
		return err
	}
	s.safeWaitLoad(5 * time.Second)

	s.invalidate()
	return nil
}

func (s *Service) waitForNewTab(existingIDs map[string]bool, timeout time.Duration) *rod.Page {
	deadline := time.After(timeout)
	ticker := time.NewTicker(300 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return nil
		case <-ticker.C:
			pages, err := s.browser.Pages()
			if err != nil {
				continue
			}
			for _, p := range pages {
				info, err := p.Info()
				if err != nil {
					continue
				}
				if !existingIDs[string(info.TargetID)] {
					return p
				}
			}
		}
	}
}

func (s *Service) safeWaitLoad(timeout time.Duration) {
	done := make(chan bool, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("recovered waiting for page load: %v", r)
			}
			done <- true
		}()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		s.page.Context(ctx).WaitLoad()
	}()

	select {
	case <-done:
	case <-time.After(timeout + time.Second):
		log.Printf("page load timed out, continuing")
	}
}

func (s *Service) activatePage(page *rod.Page) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("recovered activating tab: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	page.Context(ctx).Activate()
	s.page = page

	s.invalidate()
	s.safeWaitLoad(3 * time.Second)
}
