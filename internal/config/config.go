// Package config loads snipref run configuration from file, environment
// and defaults. Configuration is fixed at start-up and never mutated
// mid-run.
package config

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"snipref/internal/report"
)

// Validation errors.
var (
	// ErrInvalidWorkers indicates a negative worker count.
	ErrInvalidWorkers = errors.New("workers must be zero or positive")
	// ErrInvalidDebounce indicates an unparseable watch debounce interval.
	ErrInvalidDebounce = errors.New("invalid watch debounce interval")
	// ErrInvalidSuggestionDistance indicates a negative suggestion distance.
	ErrInvalidSuggestionDistance = errors.New("suggestion distance must be zero or positive")
)

// Config is the top-level snipref configuration. Field tags use
// mapstructure for viper unmarshalling.
type Config struct {
	// IdentifierPattern is the regular expression backticked prose
	// tokens must fully match to count as references.
	IdentifierPattern string `mapstructure:"identifier_pattern"`

	// FenceChars are the characters recognized as code fence
	// delimiters. Empty selects backtick and tilde.
	FenceChars string `mapstructure:"fence_chars"`

	// FailOn selects which findings fail a run: error, warning or never.
	FailOn string `mapstructure:"fail_on"`

	// DetectLanguages enables content-based language detection for
	// untagged code blocks.
	DetectLanguages bool `mapstructure:"detect_languages"`

	// SuggestionDistance caps did-you-mean suggestions by edit
	// distance. Zero disables suggestions.
	SuggestionDistance int `mapstructure:"suggestion_distance"`

	// Workers is the batch worker count. Zero means one per CPU.
	Workers int `mapstructure:"workers"`

	// Watch holds watch-mode settings.
	Watch WatchConfig `mapstructure:"watch"`
}

// WatchConfig holds watch-mode settings.
type WatchConfig struct {
	// Debounce is the quiet interval before a changed document is
	// re-checked, as a Go duration string.
	Debounce string `mapstructure:"debounce"`
}

// Validate checks cross-field constraints after unmarshalling.
func (c *Config) Validate() error {
	_, err := regexp.Compile(c.IdentifierPattern)
	if err != nil {
		return fmt.Errorf("identifier pattern: %w", err)
	}

	_, err = report.ParseFailOn(c.FailOn)
	if err != nil {
		return err
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Workers)
	}

	if c.SuggestionDistance < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSuggestionDistance, c.SuggestionDistance)
	}

	if c.Watch.Debounce != "" {
		_, err = time.ParseDuration(c.Watch.Debounce)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDebounce, c.Watch.Debounce)
		}
	}

	return nil
}

// DebounceInterval returns the parsed watch debounce interval.
// Validate must have accepted the config first.
func (c *Config) DebounceInterval() time.Duration {
	if c.Watch.Debounce == "" {
		return defaultDebounce
	}

	interval, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return defaultDebounce
	}

	return interval
}
