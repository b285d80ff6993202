package conf

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type (
	// Config is the run configuration read from an mx.toml file.
	Config struct {
		// StepLimit caps the number of instructions a single execution may
		// evaluate. Zero disables the limit.
		StepLimit int64 `toml:"step_limit"`
		// Entry names a function to call after the program ran. It is looked up
		// in the table the program returned and then in the globals.
		Entry string    `toml:"entry"`
		Log   LogConfig `toml:"log"`
		// Globals seed the global bindings of every execution. Values are
		// converted with types.ToValue so nested tables and lists are allowed.
		Globals map[string]any `toml:"globals"`
	}
	// LogConfig configures the slog logger built by NewLogger.
	LogConfig struct {
		Level  string `toml:"level"`
		File   string `toml:"file"`
		Format string `toml:"format"`
	}
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		StepLimit: DEFAULTSTEPLIMIT,
		Log:       LogConfig{Level: "warn", Format: "text"},
		Globals:   map[string]any{},
	}
}

// Load decodes the TOML file at path on top of the defaults. A missing file is
// not an error when optional is set, the defaults are returned instead.
func Load(path string, optional bool) (*Config, error) {
	cfg := Default()
	if optional && !fileExists(path) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

// Parse decodes TOML source on top of the defaults.
func Parse(src string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(src, cfg); err != nil {
		return nil, fmt.Errorf("parse error in config: %w", err)
	}
	return cfg, cfg.validate()
}

func (cfg *Config) validate() error {
	if cfg.StepLimit < 0 {
		return fmt.Errorf("step_limit must not be negative, got %d", cfg.StepLimit)
	}
	if cfg.Globals == nil {
		cfg.Globals = map[string]any{}
	}
	switch cfg.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", cfg.Log.Format)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
