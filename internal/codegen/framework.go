// Package codegen turns an executed run (Gherkin text plus its execution
// record) into automation source code for one of the supported frameworks.
package codegen

import (
	"fmt"
	"sort"
	"strings"
)

// Framework identifies one supported automation target.
type Framework string

const (
	SeleniumPytestBDD Framework = "selenium-pytest-bdd"
	PlaywrightPython  Framework = "playwright-python"
	CypressJS         Framework = "cypress-js"
	RobotFramework    Framework = "robot-framework"
	SeleniumCucumber  Framework = "selenium-cucumber-java"
)

// All lists the supported frameworks in menu order.
func All() []Framework {
	return []Framework{
		SeleniumPytestBDD,
		PlaywrightPython,
		CypressJS,
		RobotFramework,
		SeleniumCucumber,
	}
}

var displayNames = map[Framework]string{
	SeleniumPytestBDD: "Selenium + PyTest BDD (Python)",
	PlaywrightPython:  "Playwright (Python)",
	CypressJS:         "Cypress (JavaScript)",
	RobotFramework:    "Robot Framework",
	SeleniumCucumber:  "Selenium + Cucumber (Java)",
}

var extensions = map[Framework]string{
	SeleniumPytestBDD: "py",
	PlaywrightPython:  "py",
	CypressJS:         "js",
	RobotFramework:    "robot",
	SeleniumCucumber:  "java",
}

var descriptions = map[Framework]string{
	SeleniumPytestBDD: "Selenium WebDriver with PyTest BDD for behavior-driven development. Best for Python teams wanting strong test organization and reporting.",
	PlaywrightPython:  "Modern browser automation with built-in waiting and cross-browser support. Excellent for modern web applications and complex scenarios.",
	CypressJS:         "JavaScript end-to-end testing with real-time reloading and automatic waiting. A fit for front-end teams.",
	RobotFramework:    "Keyword-driven testing with simple tabular syntax. Readable test cases for teams with mixed technical expertise.",
	SeleniumCucumber:  "Selenium WebDriver with Cucumber for Java, supporting BDD. Suited to Java teams and enterprise applications.",
}

// DisplayName returns the human-readable framework name.
func (f Framework) DisplayName() string { return displayNames[f] }

// Extension returns the output file extension without the dot.
func (f Framework) Extension() string { return extensions[f] }

// Description returns the one-paragraph framework summary shown in menus.
func (f Framework) Description() string { return descriptions[f] }

// Valid reports whether f names a supported framework.
func (f Framework) Valid() bool {
	_, ok := extensions[f]
	return ok
}

// Parse resolves a user-supplied framework name, accepting both the id
// ("cypress-js") and the display name ("Cypress (JavaScript)").
func Parse(s string) (Framework, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, f := range All() {
		if string(f) == needle || strings.ToLower(f.DisplayName()) == needle {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown framework %q (supported: %s)", s, supportedList())
}

func supportedList() string {
	ids := make([]string, 0, len(extensions))
	for _, f := range All() {
		ids = append(ids, string(f))
	}
	sort.Strings(ids)
	return strings.Join(ids, ", ")
}
