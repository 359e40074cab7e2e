package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"snipref/internal/checker"
	"snipref/internal/report"
)

// configName is the config file name without extension.
const configName = ".snipref"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for snipref settings.
const envPrefix = "SNIPREF"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// defaultDebounce is the watch-mode debounce used when none is configured.
const defaultDebounce = 300 * time.Millisecond

// Load loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file
// path. Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

// applyDefaults seeds viper with the default configuration.
func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("identifier_pattern", checker.DefaultIdentifierPattern)
	viperCfg.SetDefault("fail_on", string(report.FailOnError))
	viperCfg.SetDefault("detect_languages", true)
	viperCfg.SetDefault("suggestion_distance", checker.DefaultSuggestionDistance)
	viperCfg.SetDefault("workers", 0)
	viperCfg.SetDefault("watch.debounce", defaultDebounce.String())
}

// CheckerConfig converts the loaded configuration into the checker's
// run configuration.
func (c *Config) CheckerConfig() checker.Config {
	failOn, err := report.ParseFailOn(c.FailOn)
	if err != nil {
		failOn = report.FailOnError
	}

	return checker.Config{
		IdentifierPattern:  c.IdentifierPattern,
		FenceChars:         c.FenceChars,
		FailOn:             failOn,
		DetectLanguages:    c.DetectLanguages,
		SuggestionDistance: c.SuggestionDistance,
	}
}
