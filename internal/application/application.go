// Package application wires the pipeline together behind the genie CLI:
// a cobra command tree for scripted use and an interactive session as the
// default mode.
package application

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/agarwask/SDET-GENIE/internal/agent"
	"github.com/agarwask/SDET-GENIE/internal/browser"
	"github.com/agarwask/SDET-GENIE/internal/codegen"
	"github.com/agarwask/SDET-GENIE/internal/config"
	"github.com/agarwask/SDET-GENIE/internal/entity"
	"github.com/agarwask/SDET-GENIE/internal/llm"
	"github.com/agarwask/SDET-GENIE/internal/qa"
	"github.com/agarwask/SDET-GENIE/internal/trace"
)

// Execute runs the genie CLI and is the single entry point for cmd/app.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	return root.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "genie",
		Short: "Generate, execute and automate Gherkin scenarios with an AI browser agent",
		Long: `genie converts user stories into Gherkin scenarios, executes them in a
real browser through an AI agent, and generates automation code from the
recorded execution for several test frameworks.

Run without a subcommand for the interactive session.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return app.runInteractive(cmd.Context())
		},
	}

	root.AddCommand(newGenerateCmd(), newExecuteCmd(), newCodegenCmd())
	return root
}

// browserSession is what runExecution owns for the duration of one run: the
// agent-facing browser surface plus its release. An interface so tests can
// observe the release path without a real Chromium.
type browserSession interface {
	agent.Browser
	Close()
}

// app holds the long-lived collaborators shared by every command.
type app struct {
	cfg *config.Config
	llm *llm.Client

	newBrowser func(ctx context.Context, headless bool, userDataDir string) (browserSession, error)
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("initialization failed: %w", err)
	}
	log.Printf("configuration: model=%s base_url=%s headless=%v", cfg.Model, cfg.BaseURL, cfg.Headless)

	return &app{
		cfg:        cfg,
		llm:        llm.New(cfg.APIKey, cfg.Model, cfg.BaseURL),
		newBrowser: launchBrowser,
	}, nil
}

func launchBrowser(ctx context.Context, headless bool, userDataDir string) (browserSession, error) {
	return browser.NewService(ctx, headless, userDataDir)
}

func newGenerateCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "generate [story-file]",
		Short: "Convert a user story into Gherkin scenarios",
		Long: `Reads a user story from the given file (or stdin when no file is given)
and prints the generated Gherkin scenarios, optionally writing them to --out.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}

			story, err := readInput(args)
			if err != nil {
				return err
			}

			gherkinText, err := qa.NewAgent(app.llm).GenerateScenarios(cmd.Context(), story)
			if err != nil {
				return err
			}

			if out != "" {
				if err := os.WriteFile(out, []byte(gherkinText+"\n"), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", out, err)
				}
				log.Printf("scenarios written to %s", out)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), gherkinText)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the scenarios to a file instead of stdout")
	return cmd
}

func newExecuteCmd() *cobra.Command {
	var recordPath string

	cmd := &cobra.Command{
		Use:   "execute <gherkin-file>",
		Short: "Execute Gherkin scenarios in the browser and record the run",
		Long: `Executes every scenario of the Gherkin file through the browser agent and
writes the execution record (actions, element XPaths, extracted content) as
JSON for later code generation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			record, err := app.runExecution(cmd.Context(), string(data))
			if err != nil {
				return err
			}

			if recordPath == "" {
				recordPath = filepath.Join(app.cfg.OutputDir, "execution_record.json")
			}
			if err := writeRecord(record, recordPath); err != nil {
				return err
			}
			log.Printf("execution record written to %s", recordPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&recordPath, "record", "r", "", "path for the execution record JSON")
	return cmd
}

func newCodegenCmd() *cobra.Command {
	var frameworkName string

	cmd := &cobra.Command{
		Use:   "codegen <gherkin-file> <record-file>",
		Short: "Generate automation code from an executed run",
		Long: `Generates automation source for one framework from the Gherkin file and
the execution record produced by 'genie execute'. The output file name is
derived from the Feature title.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}

			fw, err := codegen.Parse(frameworkName)
			if err != nil {
				return err
			}

			gherkinData, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			record, err := readRecord(args[1])
			if err != nil {
				return err
			}

			code, err := codegen.NewService(app.llm).Generate(cmd.Context(), fw, string(gherkinData), record)
			if err != nil {
				return err
			}

			outPath := filepath.Join(app.cfg.OutputDir, codegen.OutputFileName(string(gherkinData), fw))
			if err := os.WriteFile(outPath, []byte(code+"\n"), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			log.Printf("%s code written to %s", fw.DisplayName(), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&frameworkName, "framework", "f", "", "target framework (see 'frameworks' in the interactive session)")
	_ = cmd.MarkFlagRequired("framework")
	return cmd
}

// runExecution owns the browser lifecycle for one multi-scenario run: the
// session is created here and released on every exit path.
func (a *app) runExecution(ctx context.Context, gherkinText string) (*entity.ExecutionRecord, error) {
	log.Println("launching browser...")
	svc, err := a.newBrowser(ctx, a.cfg.Headless, a.cfg.UserDataDir)
	if err != nil {
		return nil, fmt.Errorf("browser launch error: %w", err)
	}
	defer svc.Close()

	runner := agent.New(svc, a.llm)
	collector := trace.NewCollector(runner, qa.BrowserTask)

	date := time.Now().Format("January 2, 2006")
	return collector.Execute(ctx, gherkinText, date)
}

func readInput(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func writeRecord(record *entity.ExecutionRecord, path string) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encode execution record: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func readRecord(path string) (*entity.ExecutionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var record entity.ExecutionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parse execution record %s: %w", path, err)
	}
	return &record, nil
}

// sanitize keeps log lines single-line when echoing user input.
func sanitize(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
}
