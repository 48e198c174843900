// Manual console for the browser layer: observe the indexed DOM and drive
// clicks, typing and XPath lookups by hand. Useful when debugging element
// scanning without spending LLM calls.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agarwask/SDET-GENIE/internal/browser"
)

func main() {
	ctx := context.Background()
	fmt.Println("starting browser console...")

	browserSvc, err := browser.NewService(ctx, false, "user_data")
	if err != nil {
		log.Fatalf("browser launch error: %v", err)
	}
	defer browserSvc.Close()

	startURL := "https://example.com"
	if len(os.Args) > 1 {
		startURL = os.Args[1]
	}
	if err := browserSvc.Navigate(startURL); err != nil {
		log.Printf("navigation error: %v", err)
	}

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Println("\nscanning page...")
		state, err := browserSvc.Observe()
		if err != nil {
			fmt.Printf("observe error: %v\n", err)
		} else {
			fmt.Println("=================================================================================")
			fmt.Printf("URL: %s | Title: %s\n", state.URL, state.Title)
			fmt.Println("---------------------------------------------------------------------------------")
			fmt.Println(state.DOMSummary)
			fmt.Println("=================================================================================")
		}

		fmt.Println("\ncommands: [c <id>]=click | [t <id> <text>]=type | [x <id>]=xpath | [s down/up]=scroll | [goto <url>] | [b]=back | [k <key>]")
		fmt.Print("> ")

		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue // empty input just rescans the DOM
		}

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		var actionErr error
		startTime := time.Now()

		switch cmd {
		case "q", "quit", "exit":
			fmt.Println("bye.")
			return

		case "r", "refresh":
			fmt.Println("refreshing...")
			// The next loop iteration re-observes.

		case "goto", "go":
			if len(args) == 0 {
				fmt.Println("usage: goto <url>")
				continue
			}
			url := args[0]
			if !strings.HasPrefix(url, "http") {
				url = "https://" + url
			}
			fmt.Printf("navigating to %s...\n", url)
			actionErr = browserSvc.Navigate(url)

		case "c", "click":
			id, ok := parseID(args)
			if !ok {
				continue
			}
			fmt.Printf("clicking [%d]...\n", id)
			actionErr = browserSvc.Click(id)

		case "t", "type":
			if len(args) < 2 {
				fmt.Println("usage: t <id> <text>")
				continue
			}
			id, ok := parseID(args)
			if !ok {
				continue
			}
			text := strings.Join(args[1:], " ")
			fmt.Printf("typing %q into [%d]...\n", text, id)
			actionErr = browserSvc.Type(id, text)

		case "x", "xpath":
			id, ok := parseID(args)
			if !ok {
				continue
			}
			xpath, xerr := browserSvc.XPath(id)
			if xerr != nil {
				actionErr = xerr
				break
			}
			fmt.Printf("xpath of [%d]: %s\n", id, xpath)

		case "s", "scroll":
			direction := "down"
			if len(args) > 0 {
				direction = args[0]
			}
			fmt.Printf("scrolling %s...\n", direction)
			actionErr = browserSvc.Scroll(direction)

		case "b", "back":
			fmt.Println("going back...")
			actionErr = browserSvc.GoBack()

		case "k", "key":
			if len(args) == 0 {
				fmt.Println("usage: k <key> (enter, escape, tab, backspace)")
				continue
			}
			fmt.Printf("pressing %s...\n", args[0])
			actionErr = browserSvc.PressKey(args[0])

		case "help", "h", "?":
			printHelp()
			continue // no rescan, keep the help on screen

		default:
			fmt.Println("unknown command, type 'h' for help")
			continue
		}

		duration := time.Since(startTime)
		if actionErr != nil {
			fmt.Printf("\nERROR: %v\n", actionErr)
			fmt.Println("press Enter to continue...")
			scanner.Scan()
		} else {
			fmt.Printf("\nok (%v)\n", duration)
			time.Sleep(500 * time.Millisecond)
		}
	}
}

func parseID(args []string) (int, bool) {
	if len(args) == 0 {
		fmt.Println("an element id is required, e.g. c 57")
		return 0, false
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("the element id must be a number")
		return 0, false
	}
	return id, true
}

func printHelp() {
	fmt.Println(`
commands:
---------------------------------------------
 navigation:
   goto <url>      - open a URL (e.g. goto example.com)
   b               - go back
   r               - re-scan the page

 interaction:
   c <id>          - click an element
   t <id> <text>   - type text into an element
   x <id>          - print an element's XPath
   s down / s up   - scroll the page
   k <key>         - press a key (enter, escape, tab, backspace)

 other:
   q               - quit
   h               - this help
---------------------------------------------`)
}
