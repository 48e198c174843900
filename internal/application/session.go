package application

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/agarwask/SDET-GENIE/internal/codegen"
	"github.com/agarwask/SDET-GENIE/internal/entity"
	"github.com/agarwask/SDET-GENIE/internal/qa"
)

// session is one interactive run of the pipeline. The execution record is
// replaced wholesale on every execute; code generation without a record is
// refused up front.
type session struct {
	app *app

	gherkinText string
	record      *entity.ExecutionRecord
}

// runInteractive drives the line-oriented session loop until exit or EOF.
func (a *app) runInteractive(ctx context.Context) error {
	s := &session{app: a}
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("\n==================================================")
	fmt.Println("SDET-GENIE ready. Type 'help' for commands.")
	fmt.Println("==================================================")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		fmt.Print("\ngenie> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			break // EOF
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			log.Println("shutting down...")
			break
		}

		if err := s.dispatch(ctx, line); err != nil {
			log.Printf("error: %v", err)
		}
	}

	return nil
}

func (s *session) dispatch(ctx context.Context, line string) error {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "help":
		s.printHelp()
		return nil
	case "story":
		return s.generate(ctx, rest)
	case "show":
		return s.show()
	case "execute":
		return s.execute(ctx)
	case "frameworks":
		s.printFrameworks()
		return nil
	case "code":
		return s.code(ctx, rest)
	default:
		return fmt.Errorf("unknown command %q, type 'help'", cmd)
	}
}

func (s *session) printHelp() {
	fmt.Println(`Commands:
  story <user story>   generate Gherkin scenarios from a user story
  show                 print the current scenarios
  execute              run the current scenarios in the browser
  frameworks           list supported automation frameworks
  code <framework>     generate automation code from the last execution
  exit                 quit`)
}

func (s *session) generate(ctx context.Context, story string) error {
	if story == "" {
		return fmt.Errorf("usage: story <user story text>")
	}

	log.Printf("generating scenarios for: %q", sanitize(story))
	gherkinText, err := qa.NewAgent(s.app.llm).GenerateScenarios(ctx, story)
	if err != nil {
		return err
	}

	s.gherkinText = gherkinText
	s.record = nil // the old record no longer matches the scenarios

	fmt.Println("\n" + gherkinText)
	return nil
}

func (s *session) show() error {
	if s.gherkinText == "" {
		return fmt.Errorf("no scenarios yet, use 'story' first")
	}
	fmt.Println("\n" + s.gherkinText)
	return nil
}

func (s *session) execute(ctx context.Context) error {
	if s.gherkinText == "" {
		return fmt.Errorf("no scenarios to execute, use 'story' first")
	}

	record, err := s.app.runExecution(ctx, s.gherkinText)
	if err != nil {
		return err
	}
	s.record = record

	log.Printf("run %s finished: %d actions, %d element XPaths, %d errors",
		record.RunID, len(record.ActionNames), len(record.ElementXPaths), len(record.Errors))
	return nil
}

func (s *session) printFrameworks() {
	fmt.Println("\nSupported frameworks:")
	for _, fw := range codegen.All() {
		fmt.Printf("  %-24s %s\n", fw, fw.DisplayName())
		fmt.Printf("  %-24s %s\n", "", fw.Description())
	}
}

func (s *session) code(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("usage: code <framework>, see 'frameworks'")
	}
	fw, err := codegen.Parse(name)
	if err != nil {
		return err
	}
	if s.record == nil {
		return codegen.ErrNoExecution
	}

	code, err := codegen.NewService(s.app.llm).Generate(ctx, fw, s.gherkinText, s.record)
	if err != nil {
		return err
	}

	outName := filepath.Join(s.app.cfg.OutputDir, codegen.OutputFileName(s.gherkinText, fw))
	if err := os.WriteFile(outName, []byte(code+"\n"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outName, err)
	}

	log.Printf("%s code written to %s", fw.DisplayName(), outName)
	return nil
}
