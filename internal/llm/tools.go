package llm

import "github.com/openai/openai-go/v3"

// agentTools defines the browser toolset exposed to the model. Tool names
// are part of the trace contract: the resolver classifies the raw action log
// by these exact keys.
func agentTools() []openai.ChatCompletionToolUnionParam {
	return []openai.ChatCompletionToolUnionParam{
		openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        "click_element",
			Description: openai.String("Click an element (link, button, checkbox)."),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"index": map[string]any{
						"type":        "integer",
						"description": "Element index from the DOM snapshot (the number in square brackets).",
					},
				},
				"required": []string{"index"},
			},
		}),

		openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        "input_text",
			Description: openai.String("Type text into an input or textarea, replacing its content."),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"index": map[string]any{
						"type":        "integer",
						"description": "Element index of the input field.",
					},
					"text": map[string]any{
						"type":        "string",
						"description": "Text to enter.",
					},
				},
				"required": []string{"index", "text"},
			},
		}),

		openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        "get_xpath_of_element",
			Description: openai.String("Record the XPath of an element. Call this for every element you are about to interact with so the generated test code can locate it."),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"index": map[string]any{
						"type":        "integer",
						"description": "Element index to resolve.",
					},
				},
				"required": []string{"index"},
			},
		}),

		openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        "perform_element_action",
			Description: openai.String("Perform a generic action on an element: read its text, press a key while it is focused."),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"index": map[string]any{
						"type":        "integer",
						"description": "Target element index.",
					},
					"action": map[string]any{
						"type":        "string",
						"description": "Action to perform.",
						"enum":        []string{"read_text", "press_enter"},
					},
				},
				"required": []string{"index", "action"},
			},
		}),

		openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        "navigate",
			Description: openai.String("Open a URL. Use for the scenario's starting page or when a link is not clickable."),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"url": map[string]any{
						"type":        "string",
						"description": "Full URL, e.g. https://example.com.",
					},
				},
				"required": []string{"url"},
			},
		}),

		openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        "scroll",
			Description: openai.String("Scroll the page when the needed element is not visible."),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"direction": map[string]any{
						"type":        "string",
						"description": "Scroll direction.",
						"enum":        []string{"up", "down"},
					},
				},
				"required": []string{"direction"},
			},
		}),

		openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        "press_key",
			Description: openai.String("Press a special key (for example Enter after typing)."),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"key": map[string]any{
						"type":        "string",
						"description": "Key name.",
						"enum":        []string{"enter", "escape", "tab", "backspace", "arrow_down", "arrow_up", "space"},
					},
				},
				"required": []string{"key"},
			},
		}),

		openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        "go_back",
			Description: openai.String("Go back to the previous page in the browser history."),
			Parameters: openai.FunctionParameters{
				"type":       "object",
				"properties": map[string]any{},
			},
		}),

		openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        "extract_content",
			Description: openai.String("Save a piece of page content or an observation worth keeping in the execution record."),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"content": map[string]any{
						"type":        "string",
						"description": "The content or observation to record.",
					},
				},
				"required": []string{"content"},
			},
		}),

		openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        "submit_task_result",
			Description: openai.String("Submit the final result of the scenario and finish the run."),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"final_report": map[string]any{
						"type":        "string",
						"description": "Outcome of the scenario: what happened and whether every step passed.",
					},
				},
				"required": []string{"final_report"},
			},
		}),
	}
}
