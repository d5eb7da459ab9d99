// lmconf discovers the models served by a local LM Studio instance and
// generates configuration for GitHub Copilot (VS Code settings.json),
// OpenCode (opencode.json), Pi (models.json), and Codex (config.toml),
// with a diff preview, confirmation prompt, and dated backups.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/alecthomas/kong"

	"github.com/roelfdiedericks/lmconf/internal/fileedit"
	"github.com/roelfdiedericks/lmconf/internal/harness"
	"github.com/roelfdiedericks/lmconf/internal/lmstudio"
	. "github.com/roelfdiedericks/lmconf/internal/logging"
	"github.com/roelfdiedericks/lmconf/internal/render"
)

const version = "0.1.0"

var cli struct {
	BaseURL      string           `help:"Base URL to write in config (where the client will connect)." default:"http://localhost:1234/v1" placeholder:"URL"`
	MinContext   *int             `help:"Only include models with max_context_length >= TOKENS." placeholder:"TOKENS"`
	Tools        bool             `help:"Only include models that support tool use." xor:"tools"`
	NoTools      bool             `help:"Only include models that do not support tool use." xor:"tools"`
	Vision       bool             `help:"Only include models that support vision." xor:"vision"`
	NoVision     bool             `help:"Only include models that do not support vision." xor:"vision"`
	Settings     string           `help:"Settings target to update: code, code-insiders, opencode, pi, codex, or all." enum:"code,code-insiders,opencode,pi,codex,all," default:"" placeholder:"TARGET"`
	SettingsPath string           `help:"Path to settings file (overrides --settings auto-detect; prints a model list if neither --settings nor --settings-path is given)." type:"path" placeholder:"PATH"`
	Yes          bool             `help:"Apply changes without prompting." short:"y"`
	Debug        bool             `help:"Enable debug logging."`
	Version      kong.VersionFlag `help:"Print version and exit."`
}

func main() {
	ktx := kong.Parse(&cli,
		kong.Name("lmconf"),
		kong.Description("Generate GitHub Copilot, OpenCode, Pi, or Codex configuration from LM Studio."),
		kong.Vars{"version": version},
	)

	level := LevelInfo
	if cli.Debug {
		level = LevelDebug
	}
	Init(&Config{Level: level})

	if cli.Settings == "all" && cli.SettingsPath != "" {
		ktx.Fatalf("--settings-path cannot be used with --settings all")
	}
	if cli.MinContext != nil && *cli.MinContext < 0 {
		ktx.Fatalf("--min-context must be >= 0")
	}

	criteria := lmstudio.Criteria{
		MinContext: cli.MinContext,
		Tools:      constraint(cli.Tools, cli.NoTools),
		Vision:     constraint(cli.Vision, cli.NoVision),
	}

	client := lmstudio.New(cli.BaseURL)
	models, err := client.FetchModels(context.Background())
	if err != nil {
		reportFetchError(client.Endpoint, err)
		os.Exit(1)
	}
	filtered := lmstudio.Filter(models, criteria)

	var confirm fileedit.Confirmer = fileedit.PromptConfirmer{}
	if cli.Yes {
		confirm = fileedit.AutoConfirmer{Answer: true}
	}

	switch {
	case cli.Settings == "" && cli.SettingsPath == "":
		render.Models(os.Stdout, models, filtered, criteria)

	case cli.Settings == "all":
		pathFor := func(t harness.Target) (string, error) { return t.DefaultPath() }
		summary := runAll(harness.WriteTargets(), pathFor, filtered, cli.BaseURL, confirm)
		if summary.cancelled {
			fmt.Println("Operation cancelled by user")
			os.Exit(0)
		}
		if summary.applied == 0 && summary.failed == 0 {
			fmt.Println("No installed harness config files found. Nothing to update.")
		} else if summary.failed > 0 {
			fmt.Printf("Finished: updated %d target(s), skipped %d, failed %d.\n", summary.applied, summary.skipped, summary.failed)
		} else {
			fmt.Printf("Finished: updated %d target(s), skipped %d.\n", summary.applied, summary.skipped)
		}
		if summary.failed > 0 {
			os.Exit(1)
		}

	default:
		// --settings-path without --settings targets VS Code settings.
		target := harness.TargetCode
		if cli.Settings != "" {
			target, err = harness.ParseTarget(cli.Settings)
			if err != nil {
				ktx.Fatalf("%v", err)
			}
		}

		path := cli.SettingsPath
		if path == "" {
			path, err = target.DefaultPath()
			if err != nil {
				L_fatal("resolving default path for %s: %v", target, err)
			}
		}

		fmt.Printf("Using %s: %s\n", target.Label(), path)

		res, err := runTarget(target, path, filtered, cli.BaseURL, confirm)
		if err != nil {
			L_error("%s: %v", target, err)
			os.Exit(1)
		}
		if res == fileedit.ResultCancelled {
			fmt.Println("Operation cancelled by user")
		}
	}
}

// constraint maps a --flag/--no-flag pair onto a filter constraint.
// kong's xor groups guarantee at most one of the pair is set.
func constraint(required, excluded bool) lmstudio.Constraint {
	switch {
	case required:
		return lmstudio.Required
	case excluded:
		return lmstudio.Excluded
	default:
		return lmstudio.Any
	}
}

// runTarget generates and writes the fragment for a single target.
func runTarget(target harness.Target, path string, models []lmstudio.Model, baseURL string, confirm fileedit.Confirmer) (fileedit.Result, error) {
	switch target {
	case harness.TargetCode, harness.TargetCodeInsiders:
		cfg, err := harness.GenerateCopilotConfig(models, baseURL)
		if err != nil {
			return fileedit.ResultCancelled, err
		}
		return harness.UpdateSettingsFile(path, cfg, confirm)

	case harness.TargetOpenCode:
		provider, err := harness.GenerateOpenCodeProvider(models, baseURL)
		if err != nil {
			return fileedit.ResultCancelled, err
		}
		return harness.UpdateOpenCodeFile(path, harness.OpenCodeProviderID, provider, confirm)

	case harness.TargetPi:
		provider, err := harness.GeneratePiProvider(models, baseURL)
		if err != nil {
			return fileedit.ResultCancelled, err
		}
		return harness.UpdatePiFile(path, harness.PiProviderID, provider, confirm)

	case harness.TargetCodex:
		cfg, err := harness.GenerateCodexConfig(models, baseURL)
		if err != nil {
			return fileedit.ResultCancelled, err
		}
		return harness.UpdateCodexFile(path, cfg, confirm)
	}
	return fileedit.ResultCancelled, fmt.Errorf("unknown settings target: %s", target)
}

// allSummary is the outcome of a --settings all run.
type allSummary struct {
	applied   int
	skipped   int
	failed    int
	cancelled bool
}

// runAll updates every target whose config file exists on disk.
// Missing files are skipped with a notice; a failing target does not
// stop the remaining ones. A user cancel aborts the whole run. The
// caller maps the summary onto exit codes.
func runAll(targets []harness.Target, pathFor func(harness.Target) (string, error), models []lmstudio.Model, baseURL string, confirm fileedit.Confirmer) allSummary {
	var summary allSummary

	for _, target := range targets {
		path, err := pathFor(target)
		if err != nil {
			L_error("%s: %v", target, err)
			summary.failed++
			continue
		}

		if _, err := os.Stat(path); err != nil {
			fmt.Printf("Skipping %s: file not found at %s\n", target, path)
			summary.skipped++
			continue
		}

		fmt.Printf("Using %s: %s\n", target.Label(), path)

		res, err := runTarget(target, path, models, baseURL, confirm)
		if err != nil {
			L_error("%s: %v", target, err)
			summary.failed++
			continue
		}
		if res == fileedit.ResultCancelled {
			summary.cancelled = true
			return summary
		}
		summary.applied++
	}

	return summary
}

// reportFetchError prints actionable guidance for connection failures.
func reportFetchError(endpoint string, err error) {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		fmt.Fprintf(os.Stderr, "\nError: Could not connect to LM Studio at %s\n", endpoint)
		fmt.Fprintln(os.Stderr, "\nPlease ensure:")
		fmt.Fprintln(os.Stderr, "  1. LM Studio is running")
		fmt.Fprintln(os.Stderr, "  2. Local server is started in LM Studio")
		fmt.Fprintln(os.Stderr, "  3. Server is listening on the host/port from --base-url")
		fmt.Fprintln(os.Stderr, "\nIf LM Studio is running on a different host/port, use:")
		fmt.Fprintln(os.Stderr, "  --base-url http://HOST:PORT/v1")
		return
	}
	fmt.Fprintf(os.Stderr, "\nError connecting to LM Studio API at %s: %v\n", endpoint, err)
}
