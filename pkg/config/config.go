package config

import (
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/rodneyxr/brics-automaton/pkg/automaton"
	"github.com/rodneyxr/brics-automaton/pkg/errors"
	"github.com/rodneyxr/brics-automaton/pkg/observability"
)

// Config is the decoded configuration file.
type Config struct {
	Automaton Automaton `toml:"automaton"`
	Log       Log       `toml:"log"`
}

// Automaton holds the process-wide automaton policies.
type Automaton struct {
	MinimizeAlways bool   `toml:"minimize_always"`
	Minimization   string `toml:"minimization"`
	AllowMutate    bool   `toml:"allow_mutate"`
}

// Log controls the logger returned by [Config.Logger] and whether operation
// hooks write to it.
type Log struct {
	Level string `toml:"level"`
	Hooks bool   `toml:"hooks"`
}

// Default returns the settings used when no file is given: Moore
// minimization, no automatic minimization, info-level logging, no hooks.
func Default() Config {
	return Config{
		Automaton: Automaton{Minimization: automaton.MinimizeMoore.String()},
		Log:       Log{Level: log.InfoLevel.String()},
	}
}

// Load reads and validates the TOML file at path. Missing keys keep their
// [Default] values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates TOML configuration data.
func Parse(data []byte) (Config, error) {
	c := Default()
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks that the minimization algorithm and log level are known.
func (c Config) Validate() error {
	if _, ok := automaton.ParseMinimization(c.Automaton.Minimization); !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown minimization algorithm %q", c.Automaton.Minimization)
	}
	if _, err := c.level(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid log level %q", c.Log.Level)
	}
	return nil
}

func (c Config) level() (log.Level, error) {
	if c.Log.Level == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(c.Log.Level)
}

// Apply validates c and installs it: the automaton policies are set and, if
// hooks are enabled, [observability.LogHooks] writing to logger are
// registered for intersections and automaton operations; otherwise the hooks
// are reset to no-ops. A nil logger means [log.Default].
func (c Config) Apply(logger *log.Logger) error {
	if err := c.Validate(); err != nil {
		return err
	}
	m, _ := automaton.ParseMinimization(c.Automaton.Minimization)
	automaton.SetMinimization(m)
	automaton.SetMinimizeAlways(c.Automaton.MinimizeAlways)
	automaton.SetAllowMutate(c.Automaton.AllowMutate)

	if c.Log.Hooks {
		h := observability.NewLogHooks(logger)
		observability.SetIntersectionHooks(h)
		observability.SetAutomatonHooks(h)
	} else {
		observability.Reset()
	}
	return nil
}

// Logger creates a logger writing to w at the configured level, with
// timestamps formatted as "HH:MM:SS.ms". An invalid level falls back to info.
func (c Config) Logger(w io.Writer) *log.Logger {
	level, err := c.level()
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
