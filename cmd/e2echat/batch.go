package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/germanamz/e2echat/pkg/e2e"
)

// runBatch sends each prompt through the single-prompt path in order and
// prints one result per prompt. Prompts come from -f (one per line, blanks
// skipped) or from the remaining arguments.
func runBatch(ctx context.Context, args []string) error {
	batchCmd := flag.NewFlagSet("batch", flag.ExitOnError)
	batchCmd.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: e2echat batch [flags] [prompt ...]\n\nRun a batch of prompts sequentially and print the results.\n\nFlags:\n")
		batchCmd.PrintDefaults()
	}
	configPath := batchCmd.String("config", "", "path to configuration file")
	dirPath := batchCmd.String("dir", ".e2echat", "path to .e2echat directory")
	envFile := batchCmd.String("env", ".env", "path to .env file (ignored if missing)")
	promptsFile := batchCmd.String("f", "", "file with one prompt per line")

	if err := batchCmd.Parse(args); err != nil {
		return err
	}

	if err := loadDotEnv(*envFile); err != nil {
		return err
	}

	prompts := batchCmd.Args()
	if *promptsFile != "" {
		filePrompts, err := readPrompts(*promptsFile)
		if err != nil {
			return err
		}
		prompts = append(filePrompts, prompts...)
	}

	if len(prompts) == 0 {
		return fmt.Errorf("no prompts given (use -f or pass them as arguments)")
	}

	cfg, err := loadConfig(resolveConfigPath(*configPath, *dirPath))
	if err != nil {
		return err
	}

	client, err := e2e.New(cfg.clientConfig())
	if err != nil {
		return err
	}

	for i, result := range client.GenerateBatch(ctx, prompts) {
		fmt.Printf("--- [%d/%d] %s\n%s\n", i+1, len(prompts), truncate(prompts[i], 60), result)
	}

	return nil
}

// readPrompts reads one prompt per line, skipping blank lines.
func readPrompts(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // path is caller-provided input
	if err != nil {
		return nil, fmt.Errorf("open prompts file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var prompts []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			prompts = append(prompts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read prompts file: %w", err)
	}

	return prompts, nil
}
