package codegen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agarwask/SDET-GENIE/internal/entity"
)

type fakeCompleter struct {
	reply string
	err   error
	sys   string
	user  string
	calls int
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.calls++
	f.sys = system
	f.user = user
	return f.reply, f.err
}

func sampleRecord() *entity.ExecutionRecord {
	return &entity.ExecutionRecord{
		URLs:        []string{"https://example.com/login"},
		ActionNames: []string{"Navigate to https://example.com/login", "Click element 2"},
		ElementXPaths: map[int]string{
			2: "//button[@id='login']",
			1: "//input[@name='user']",
		},
		ExtractedContent: []string{"Welcome message shown"},
		ExecutionDate:    "August 25, 2026",
	}
}

func TestParse(t *testing.T) {
	fw, err := Parse("cypress-js")
	require.NoError(t, err)
	assert.Equal(t, CypressJS, fw)

	fw, err = Parse("Selenium + Cucumber (Java)")
	require.NoError(t, err)
	assert.Equal(t, SeleniumCucumber, fw)

	_, err = Parse("mocha")
	assert.Error(t, err)
}

func TestExtensions(t *testing.T) {
	want := map[Framework]string{
		SeleniumPytestBDD: "py",
		PlaywrightPython:  "py",
		CypressJS:         "js",
		RobotFramework:    "robot",
		SeleniumCucumber:  "java",
	}
	for fw, ext := range want {
		assert.Equal(t, ext, fw.Extension(), fw)
	}
}

func TestGenerate_PromptCarriesEvidence(t *testing.T) {
	llm := &fakeCompleter{reply: "describe('login', () => {})"}
	svc := NewService(llm)

	code, err := svc.Generate(context.Background(), CypressJS,
		"Feature: Login\nScenario: Valid login", sampleRecord())

	require.NoError(t, err)
	assert.Equal(t, "describe('login', () => {})", code)

	// The model sees the scenarios, the captured XPaths (sorted by index)
	// and the framework requirements.
	assert.Contains(t, llm.user, "Feature: Login")
	assert.Contains(t, llm.user, "1 -> //input[@name='user']")
	assert.Contains(t, llm.user, "2 -> //button[@id='login']")
	assert.Contains(t, llm.user, "Cypress")
	assert.Contains(t, llm.sys, "never invent selectors")
}

func TestGenerate_MissingRecordIsPrecondition(t *testing.T) {
	llm := &fakeCompleter{}
	svc := NewService(llm)

	_, err := svc.Generate(context.Background(), CypressJS, "Feature: X", nil)

	assert.ErrorIs(t, err, ErrNoExecution)
	// The precondition is reported before any generator invocation.
	assert.Zero(t, llm.calls)
}

func TestGenerate_UnknownFramework(t *testing.T) {
	svc := NewService(&fakeCompleter{})

	_, err := svc.Generate(context.Background(), Framework("mocha"), "Feature: X", sampleRecord())

	assert.Error(t, err)
}

func TestGenerate_StripsCodeFences(t *testing.T) {
	llm := &fakeCompleter{reply: "```python\nimport pytest\n```"}
	svc := NewService(llm)

	code, err := svc.Generate(context.Background(), SeleniumPytestBDD, "Feature: X", sampleRecord())

	require.NoError(t, err)
	assert.Equal(t, "import pytest", code)
}

func TestOutputFileName(t *testing.T) {
	name := OutputFileName("Feature: User Login\nScenario: A", CypressJS)
	assert.Equal(t, "user_login_automation.js", name)

	name = OutputFileName("Scenario: no feature line", RobotFramework)
	assert.Equal(t, "automated_test_automation.robot", name)
}
