// E2echat is an interactive terminal chat for E2E Networks hosted LLM
// endpoints. It loads credentials from flags, a YAML config, or the
// environment, keeps the session history on disk, and renders completions
// as markdown. The endpoint adapter itself lives in pkg/e2e.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/germanamz/e2echat/pkg/chatdir"
	"github.com/germanamz/e2echat/pkg/e2e"
	"github.com/germanamz/e2echat/pkg/transcript"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Handle subcommands before flag parsing.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "init":
			initCmd := flag.NewFlagSet("init", flag.ExitOnError)
			initCmd.Usage = func() {
				fmt.Fprintf(os.Stderr, "Usage: e2echat init [flags]\n\nInitialize a .e2echat directory with a config file.\n\nFlags:\n")
				initCmd.PrintDefaults()
			}
			dir := initCmd.String("dir", ".e2echat", "path to .e2echat directory")
			_ = initCmd.Parse(os.Args[2:])

			if err := runInit(*dir); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			return
		case "batch":
			if err := runBatch(ctx, os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			return
		}
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: e2echat [flags]\n       e2echat <command> [flags]\n\nFlags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands:\n  init   Initialize a .e2echat directory with a config file\n  batch  Run a batch of prompts and print the results\n")
	}

	configPath := flag.String("config", "", "path to configuration file (default: .e2echat/config.yaml or e2echat.yaml)")
	dirPath := flag.String("dir", ".e2echat", "path to .e2echat directory")
	envFile := flag.String("env", ".env", "path to .env file (ignored if missing)")
	endpointURL := flag.String("endpoint", "", "endpoint URL (overrides config)")
	apiKey := flag.String("api-key", "", "API key (overrides config)")
	model := flag.String("model", "", "model name (overrides config)")
	flag.Parse()

	if err := loadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := run(ctx, *configPath, *dirPath, *endpointURL, *apiKey, *model); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run builds the client and the transcript store and starts the TUI.
func run(ctx context.Context, configPath, dirPath, endpointURL, apiKey, model string) error {
	cfg, err := loadConfig(resolveConfigPath(configPath, dirPath))
	if err != nil {
		return err
	}

	// Flags win over config and env.
	if endpointURL != "" {
		cfg.EndpointURL = endpointURL
	}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	if model != "" {
		cfg.Model = model
	}

	client, err := e2e.New(cfg.clientConfig())
	if err != nil {
		return err
	}

	d := chatdir.New(dirPath)
	store := transcript.New(d.HistoryPath())
	if err := store.Load(); err != nil {
		return err
	}

	p := tea.NewProgram(newAppModel(ctx, client, store))

	_, err = p.Run()
	return err
}
