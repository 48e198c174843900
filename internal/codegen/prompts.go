package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agarwask/SDET-GENIE/internal/entity"
)

const generatorSystemPrompt = `You are a test automation engineer. You write complete, runnable automation code from executed Gherkin scenarios.

Rules:
- Use the element XPaths captured during execution as selectors; never invent selectors.
- Include all imports, setup/teardown and helper functions the code needs to run as-is.
- Implement every scenario and every step of the Gherkin document.
- Add brief comments tying code blocks to their Gherkin steps.
- Output only source code, no Markdown fences, no prose before or after.`

var frameworkInstructions = map[Framework]string{
	SeleniumPytestBDD: `Target: Python, Selenium WebDriver + pytest-bdd.
- Use @scenario / @given / @when / @then bindings for every Gherkin step.
- Use explicit WebDriverWait waits, never time.sleep.
- Locate elements with By.XPATH and the captured XPaths.
- Provide a webdriver fixture with proper teardown.`,
	PlaywrightPython: `Target: Python, Playwright (sync API) + pytest.
- Use page.locator with the captured XPaths ("xpath=" + value).
- Rely on Playwright auto-waiting; use expect() assertions for Then steps.
- Provide browser/page fixtures with proper teardown.`,
	CypressJS: `Target: JavaScript, Cypress.
- Structure as describe/it blocks, one it per scenario.
- Use cy.xpath with the captured XPaths (note the cypress-xpath plugin import).
- Express Then steps as Cypress assertions (.should).`,
	RobotFramework: `Target: Robot Framework with SeleniumLibrary.
- Produce *** Settings ***, *** Variables ***, *** Test Cases *** and *** Keywords *** sections.
- Store the captured XPaths as variables and reference them in keywords.
- One test case per scenario, steps as readable keywords.`,
	SeleniumCucumber: `Target: Java, Selenium WebDriver + Cucumber.
- Produce the step definition class with @Given/@When/@Then annotations for every step.
- Use WebDriverWait with ExpectedConditions, never Thread.sleep.
- Locate elements with By.xpath and the captured XPaths.
- Include a @Before/@After hook class managing the driver.`,
}

// buildPrompt renders the user prompt handed to the model: the Gherkin
// document, the execution evidence and the framework instructions.
func buildPrompt(fw Framework, gherkinText string, record *entity.ExecutionRecord) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Generate %s automation code for the following executed scenarios.\n\n", fw.DisplayName())
	sb.WriteString("GHERKIN SCENARIOS:\n")
	sb.WriteString(gherkinText)
	sb.WriteString("\n\nEXECUTION EVIDENCE:\n")
	sb.WriteString(summarizeRecord(record))
	sb.WriteString("\nFRAMEWORK REQUIREMENTS:\n")
	sb.WriteString(frameworkInstructions[fw])

	return sb.String()
}

// summarizeRecord renders the parts of the execution record the generator
// needs: visited URLs, the action sequence and the element XPath map.
func summarizeRecord(record *entity.ExecutionRecord) string {
	var sb strings.Builder

	if len(record.URLs) > 0 {
		sb.WriteString("Visited URLs:\n")
		for _, u := range record.URLs {
			fmt.Fprintf(&sb, "  - %s\n", u)
		}
	}

	if len(record.ActionNames) > 0 {
		sb.WriteString("Actions performed, in order:\n")
		for i, name := range record.ActionNames {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, name)
		}
	}

	if len(record.ElementXPaths) > 0 {
		sb.WriteString("Captured element XPaths (index -> xpath):\n")
		indices := make([]int, 0, len(record.ElementXPaths))
		for idx := range record.ElementXPaths {
			indices = append(indices, idx)
		}
		sort.Ints(indices)
		for _, idx := range indices {
			fmt.Fprintf(&sb, "  %d -> %s\n", idx, record.ElementXPaths[idx])
		}
	}

	if len(record.ExtractedContent) > 0 {
		sb.WriteString("Extracted content:\n")
		for _, c := range record.ExtractedContent {
			fmt.Fprintf(&sb, "  - %s\n", c)
		}
	}

	if len(record.Errors) > 0 {
		sb.WriteString("Errors observed during execution:\n")
		for _, e := range record.Errors {
			fmt.Fprintf(&sb, "  - %s\n", e)
		}
	}

	if record.ExecutionDate != "" {
		fmt.Fprintf(&sb, "Execution date: %s\n", record.ExecutionDate)
	}

	return sb.String()
}
