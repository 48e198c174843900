package qa

import "fmt"

// browserTaskTemplate wraps one scenario block into the instruction the
// browser agent receives. The XPath directions here are what populate the
// discovery channel of the trace resolver.
const browserTaskTemplate = `Execute the following Gherkin test scenario step by step in the browser:

%s

Execution rules:
1. Perform every Given/When/Then step in order against the live page.
2. Before you click or type into any element, call get_xpath_of_element for it so its XPath is recorded.
3. Use extract_content to record any page content a Then step verifies.
4. If a step fails, stop and report which step failed and why.
5. Finish with submit_task_result describing the outcome of each step.`

// BrowserTask renders the agent task instruction for one scenario block.
func BrowserTask(scenario string) string {
	return fmt.Sprintf(browserTaskTemplate, scenario)
}
