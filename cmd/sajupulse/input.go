package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"SajuPulse/internal/di"
	"SajuPulse/internal/usecase"
	"SajuPulse/pkg/config"
	"SajuPulse/pkg/logger"
)

// readRequest decodes a request file into v. Files ending in .json are read
// with the JSON field names, anything else as YAML. "-" reads stdin as YAML.
func readRequest(cmd *cobra.Command, path string, v interface{}) error {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(cmd.InOrStdin())
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(b, v)
	} else {
		err = yaml.Unmarshal(b, v)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadWithEnv(configPath)
	}
	c, err := config.Default()
	if err != nil {
		return nil, err
	}
	c.ApplyEnv(os.Getenv)
	return c, c.Validate()
}

// engine builds the offline evaluator and scanner. Metrics, storage and
// publishing are left out; logs go to stderr.
type engine struct {
	eval    *usecase.Evaluator
	scanner *usecase.TimingScanner
}

func newEngine(cmd *cobra.Command) (*engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	l := logger.NewWriter(cmd.ErrOrStderr(), cfg.Logging.Level)
	astro := di.ProvideAstrology(cfg)
	return &engine{
		eval:    di.ProvideEvaluator(astro, l),
		scanner: di.ProvideTimingScanner(cfg, astro, nil, l),
	}, nil
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
