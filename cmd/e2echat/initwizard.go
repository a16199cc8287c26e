package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"

	"github.com/germanamz/e2echat/pkg/chatdir"
	"github.com/germanamz/e2echat/pkg/e2e"
)

// wizardConfig holds the string-typed form state before conversion to
// fileConfig.
type wizardConfig struct {
	EndpointURL string
	APIKey      string //nolint:gosec // env var reference, not a secret
	Model       string
	Temperature string
	MaxTokens   string
	TopP        string
	Timeout     string
	Stop        string
}

// runWizard collects endpoint and sampling settings interactively and
// returns the config YAML to write.
func runWizard() ([]byte, error) {
	w := wizardConfig{
		EndpointURL: "${E2E_ENDPOINT_URL}",
		APIKey:      "${E2E_API_KEY}",
		Model:       e2e.DefaultModel,
		Temperature: fmt.Sprintf("%g", e2e.DefaultTemperature),
		MaxTokens:   strconv.Itoa(e2e.DefaultMaxTokens),
		TopP:        fmt.Sprintf("%g", e2e.DefaultTopP),
		Timeout:     strconv.Itoa(int(e2e.DefaultTimeout.Seconds())),
	}

	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Endpoint URL (or env var reference)").Value(&w.EndpointURL),
			huh.NewInput().Title("API key (or env var reference)").Value(&w.APIKey),
			huh.NewInput().Title("Model").Value(&w.Model),
		),
		huh.NewGroup(
			huh.NewInput().Title("Temperature").Value(&w.Temperature).Validate(validateFloat),
			huh.NewInput().Title("Max tokens").Value(&w.MaxTokens).Validate(validatePositiveInt),
			huh.NewInput().Title("Top-p").Value(&w.TopP).Validate(validateFloat),
			huh.NewInput().Title("Timeout (seconds)").Value(&w.Timeout).Validate(validatePositiveInt),
			huh.NewInput().Title("Stop sequences (comma separated, empty = none)").Value(&w.Stop),
		),
	).Run(); err != nil {
		return nil, err
	}

	cfg, err := w.toFileConfig()
	if err != nil {
		return nil, err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	return data, nil
}

func (w wizardConfig) toFileConfig() (fileConfig, error) {
	temp, err := strconv.ParseFloat(w.Temperature, 64)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid temperature %q: %w", w.Temperature, err)
	}

	maxTokens, err := strconv.Atoi(w.MaxTokens)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid max tokens %q: %w", w.MaxTokens, err)
	}

	topP, err := strconv.ParseFloat(w.TopP, 64)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid top-p %q: %w", w.TopP, err)
	}

	timeout, err := strconv.Atoi(w.Timeout)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid timeout %q: %w", w.Timeout, err)
	}

	var stop []string
	for _, s := range strings.Split(w.Stop, ",") {
		if s = strings.TrimSpace(s); s != "" {
			stop = append(stop, s)
		}
	}

	return fileConfig{
		EndpointURL:    w.EndpointURL,
		APIKey:         w.APIKey,
		Model:          w.Model,
		Temperature:    temp,
		MaxTokens:      maxTokens,
		TopP:           topP,
		TimeoutSeconds: timeout,
		Stop:           stop,
	}, nil
}

// runInit runs the wizard and writes the result into the .e2echat directory.
func runInit(dirPath string) error {
	configYAML, err := runWizard()
	if err != nil {
		return err
	}

	d := chatdir.New(dirPath)
	if err := chatdir.EnsureStructure(d); err != nil {
		return err
	}

	if err := os.WriteFile(d.ConfigPath(), configYAML, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Initialized %s\n", d.Root())

	return nil
}

func validateFloat(s string) error {
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("must be a number")
	}
	return nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive integer")
	}
	return nil
}
