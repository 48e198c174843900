// Package browser drives a Chromium session through go-rod and keeps the
// element index registry the agent addresses its actions at.
package browser

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Service owns the browser session for one multi-scenario run. One Service is
// created at run start and released once, whatever happens in between.
type Service struct {
	browser *rod.Browser
	page    *rod.Page

	// elements caches index -> element lookups between DOM changes. Every
	// mutating action drops it because indices are only stable per snapshot.
	elements map[int]*rod.Element
}

// NewService launches the browser and opens a stealth page with a desktop
// viewport.
func NewService(ctx context.Context, headless bool, userDataDir string) (*Service, error) {
	launch := launcher.New().
		Leakless(true).
		Headless(headless).
		UserDataDir(userDataDir)

	controlURL, err := launch.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect to browser: %w", err)
	}

	page, err := stealth.Page(b)
	if err != nil {
		return nil, fmt.Errorf("create stealth page: %w", err)
	}

	scale := 1.0
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:  1920,
		Height: 1080,
		Scale:  &scale,
		Mobile: false,
	}); err != nil {
		log.Printf("warning: failed to set viewport: %v", err)
	}

	page.Timeout(10 * time.Second)

	return &Service{
		browser:  b,
		page:     page,
		elements: make(map[int]*rod.Element),
	}, nil
}

// CurrentPageInfo returns the active tab's URL and target id, best effort.
func (s *Service) CurrentPageInfo() (url string, targetID string) {
	if s.page == nil {
		return "", ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	info, err := s.page.Context(ctx).Info()
	if err != nil {
		return "", ""
	}
	return info.URL, string(info.TargetID)
}

// Close releases the browser. Safe to call from a defer on every exit path.
func (s *Service) Close() {
	if s.browser == nil {
		return
	}
	if err := s.browser.Close(); err != nil {
		log.Printf("warning: browser close: %v", err)
	}
}

// invalidate drops the element cache after any action that may have changed
// the DOM.
func (s *Service) invalidate() {
	s.elements = make(map[int]*rod.Element)
}
