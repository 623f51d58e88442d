// Package settings loads the cfgkv command line tool's own settings file.
package settings

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/calumari/cfgkv"
)

// EnvVar names the environment variable holding a settings file path.
const EnvVar = "CFGKV_CONFIG"

// DefaultPath is tried when neither a flag nor EnvVar names a file.
const DefaultPath = "cfgkv.toml"

// Output formats understood by the dump command.
const (
	FormatNative = "native"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
)

// Settings holds the complete tool configuration.
type Settings struct {
	Output OutputSettings `toml:"output"`
	Parse  ParseSettings  `toml:"parse"`
	Log    LogSettings    `toml:"log"`
}

// OutputSettings controls how documents are printed.
type OutputSettings struct {
	Format string `toml:"format"`
}

// ParseSettings maps onto parser options.
type ParseSettings struct {
	LenientArrays bool  `toml:"lenient_arrays"`
	MaxSize       int64 `toml:"max_size"`
}

// LogSettings holds logging settings.
type LogSettings struct {
	Level string `toml:"level"`
}

// Default returns the settings used when no file is found.
func Default() *Settings {
	s := &Settings{}
	s.applyDefaults()
	return s
}

// Load reads settings from a TOML file. Unknown keys are reported as errors
// so that typos do not go unnoticed.
func Load(path string) (*Settings, error) {
	var s Settings
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown settings in %s: %s", path, strings.Join(keys, ", "))
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return &s, nil
}

// Resolve finds and loads the settings file. explicit (from --config) wins
// over EnvVar, which wins over DefaultPath in the working directory. When no
// file is named and DefaultPath does not exist, Default is returned and path
// is empty.
func Resolve(explicit string) (s *Settings, path string, err error) {
	path = explicit
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		if _, err := os.Stat(DefaultPath); err != nil {
			return Default(), "", nil
		}
		path = DefaultPath
	}
	path = os.ExpandEnv(path)
	if _, err := os.Stat(path); err != nil {
		return nil, "", fmt.Errorf("settings file not found: %s", path)
	}
	s, err = Load(path)
	if err != nil {
		return nil, "", err
	}
	return s, path, nil
}

func (s *Settings) applyDefaults() {
	if s.Output.Format == "" {
		s.Output.Format = FormatNative
	}
	if s.Log.Level == "" {
		s.Log.Level = "warn"
	}
}

// Validate checks field values.
func (s *Settings) Validate() error {
	if err := CheckFormat(s.Output.Format); err != nil {
		return err
	}
	if s.Parse.MaxSize < 0 {
		return fmt.Errorf("parse.max_size must not be negative")
	}
	if _, err := s.LogLevel(); err != nil {
		return err
	}
	return nil
}

// CheckFormat reports whether f names a known output format.
func CheckFormat(f string) error {
	switch f {
	case FormatNative, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want %s, %s or %s)", f, FormatNative, FormatJSON, FormatYAML)
}

// LogLevel parses Log.Level ("debug", "info", "warn", "error").
func (s *Settings) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// ParseOptions converts the settings into parser options.
func (s *Settings) ParseOptions(log *slog.Logger) []cfgkv.Option {
	opts := []cfgkv.Option{cfgkv.WithMaxSize(s.Parse.MaxSize)}
	if s.Parse.LenientArrays {
		opts = append(opts, cfgkv.WithLenientArrays())
	}
	if log != nil {
		opts = append(opts, cfgkv.WithLogger(log))
	}
	return opts
}
