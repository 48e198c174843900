package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agarwask/SDET-GENIE/internal/config"
	"github.com/agarwask/SDET-GENIE/internal/entity"
	"github.com/agarwask/SDET-GENIE/internal/llm"
)

// brokenBrowser fails the first observation, so the run aborts before any
// model call, and records whether the session was released.
type brokenBrowser struct {
	closed bool
}

func (b *brokenBrowser) Observe() (*entity.BrowserState, error) {
	return nil, errors.New("tab crashed")
}

func (b *brokenBrowser) Click(int) error              { return nil }
func (b *brokenBrowser) Type(int, string) error       { return nil }
func (b *brokenBrowser) ReadText(int) (string, error) { return "", nil }
func (b *brokenBrowser) Scroll(string) error          { return nil }
func (b *brokenBrowser) Navigate(string) error        { return nil }
func (b *brokenBrowser) GoBack() error                { return nil }
func (b *brokenBrowser) PressKey(string) error        { return nil }
func (b *brokenBrowser) XPath(int) (string, error)    { return "", nil }
func (b *brokenBrowser) Describe(int) (string, error) { return "", nil }
func (b *brokenBrowser) Close()                       { b.closed = true }

func testApp(newBrowser func(context.Context, bool, string) (browserSession, error)) *app {
	return &app{
		cfg:        &config.Config{Headless: true, UserDataDir: "user_data"},
		llm:        llm.New("test-key", "test-model", ""),
		newBrowser: newBrowser,
	}
}

func TestRunExecution_ReleasesBrowserOnScenarioFailure(t *testing.T) {
	fake := &brokenBrowser{}
	a := testApp(func(context.Context, bool, string) (browserSession, error) {
		return fake, nil
	})

	record, err := a.runExecution(context.Background(),
		"Scenario: broken page\nGiven the page is open")

	require.Error(t, err)
	assert.Nil(t, record)
	assert.True(t, fake.closed, "browser session must be released when a scenario fails")
}

func TestRunExecution_LaunchFailure(t *testing.T) {
	launchErr := errors.New("no chromium")
	a := testApp(func(context.Context, bool, string) (browserSession, error) {
		return nil, launchErr
	})

	_, err := a.runExecution(context.Background(), "Scenario: x\nGiven a page")

	require.Error(t, err)
	assert.ErrorIs(t, err, launchErr)
}
