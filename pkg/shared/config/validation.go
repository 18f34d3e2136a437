package config

import (
	"fmt"
	"strings"
)

// knownFormats lists every report format any command can render. Commands
// narrow this set through Output.FormatFor.
var knownFormats = []string{"text", "json", "sarif", "csv", "table"}

// ValidateConfig checks if the global configuration has valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := validateLogger(&cfg.Logger); err != nil {
		return fmt.Errorf("YAML global config: logger directive is invalid: %w", err)
	}
	if err := validateOutput(&cfg.Output); err != nil {
		return fmt.Errorf("YAML global config: output directive is invalid: %w", err)
	}
	return nil
}

// validateLogger checks the logger directive. An empty level is allowed and
// defers to the environment or the built-in default.
func validateLogger(loggerCfg *Logger) error {
	if loggerCfg == nil {
		return fmt.Errorf("logger configuration is nil")
	}
	if loggerCfg.Level == "" {
		return nil
	}
	switch strings.ToUpper(loggerCfg.Level) {
	case "TRACE", "DEBUG", "INFO", "WARN", "ERROR":
		return nil
	}
	return fmt.Errorf("unknown log level %q", loggerCfg.Level)
}

// validateOutput checks the output directive.
func validateOutput(outputCfg *Output) error {
	if outputCfg == nil {
		return fmt.Errorf("output configuration is nil")
	}
	switch outputCfg.Color {
	case "", ColorAuto, ColorOn, ColorOff:
	default:
		return fmt.Errorf("unknown color mode %q, expected one of: %s, %s, %s", outputCfg.Color, ColorAuto, ColorOn, ColorOff)
	}
	if outputCfg.Format == "" {
		return nil
	}
	for _, f := range knownFormats {
		if outputCfg.Format == f {
			return nil
		}
	}
	return fmt.Errorf("unknown output format %q, expected one of: %s", outputCfg.Format, strings.Join(knownFormats, ", "))
}
