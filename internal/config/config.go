package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/hashicorp/go-multierror"

	"github.com/zudsniper/mkdatajs/internal/errs"
	"github.com/zudsniper/mkdatajs/internal/segment"
	"github.com/zudsniper/mkdatajs/internal/transcribe"
)

// APIKeyEnv names the provider secret.
const APIKeyEnv = "ASSEMBLY_AI_API_KEY"

type Config struct {
	APIKey       string        `env:"ASSEMBLY_AI_API_KEY"`
	BaseURL      string        `env:"ASSEMBLY_AI_BASE_URL" envDefault:"https://api.assemblyai.com/v2"`
	PollInterval time.Duration `env:"MKDATAJS_POLL_INTERVAL" envDefault:"3s"`
	Timeout      time.Duration `env:"MKDATAJS_TIMEOUT" envDefault:"2h"`
	MaxGap       time.Duration `env:"MKDATAJS_MAX_GAP" envDefault:"600ms"`
	MaxChars     int           `env:"MKDATAJS_MAX_CHARS" envDefault:"240"`
}

// Load parses the process environment. Call LoadDefaultEnv first to pick
// up .env files.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, &errs.ConfigurationError{Reason: "parsing env config", Err: err}
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var result *multierror.Error
	if c.MaxGap < 0 {
		result = multierror.Append(result, fmt.Errorf("max gap must not be negative, got %s", c.MaxGap))
	}
	if c.MaxChars <= 0 {
		result = multierror.Append(result, fmt.Errorf("max chars must be positive, got %d", c.MaxChars))
	}
	if c.PollInterval <= 0 {
		result = multierror.Append(result, fmt.Errorf("poll interval must be positive, got %s", c.PollInterval))
	}
	if c.Timeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	if result == nil {
		return nil
	}
	result.ErrorFormat = oneLine
	return &errs.ConfigurationError{Reason: "invalid settings", Err: result}
}

// oneLine keeps the aggregated message on a single line for the CLI.
func oneLine(es []error) string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// RequireAPIKey fails when the provider secret is absent.
func (c Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return &errs.ConfigurationError{Key: APIKeyEnv, Reason: "missing in environment/.env"}
	}
	return nil
}

func (c Config) SegmentOptions() segment.Options {
	return segment.Options{MaxGap: c.MaxGap, MaxChars: c.MaxChars}
}

func (c Config) AssemblyAI() transcribe.AssemblyAIConfig {
	return transcribe.AssemblyAIConfig{
		APIKey:       c.APIKey,
		BaseURL:      c.BaseURL,
		PollInterval: c.PollInterval,
	}
}
