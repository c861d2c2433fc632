// Package cli implements the fstool command-line interface.
//
// fstool builds the bundled transducers and lets you poke at them: feed
// strings through one (rewrite), draw it or its image of some inputs as a
// Graphviz diagram (dot), or type strings interactively and watch the
// outputs change (try).
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/rodneyxr/brics-automaton/pkg/buildinfo"
	"github.com/rodneyxr/brics-automaton/pkg/config"
)

// appName is the application name used for display and completions.
const appName = "fstool"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	cfg := config.Default()
	cfg.Log.Level = level.String()
	return &CLI{Logger: cfg.Logger(w)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "fstool inspects finite state transducers over character ranges",
		Long: `fstool builds the bundled path-rewriting transducers and shows what they do:
the outputs for given inputs, a Graphviz drawing of the transducer or of the
automaton it produces, or an interactive view that updates as you type.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "TOML config file with [automaton] and [log] settings")

	root.AddCommand(c.rewriteCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.tryCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig installs the automaton policies from the config file, or the
// defaults when no file was given.
func (c *CLI) loadConfig() error {
	cfg := config.Default()
	if c.configPath != "" {
		var err error
		if cfg, err = config.Load(c.configPath); err != nil {
			return err
		}
		// Load validated the level.
		level, _ := log.ParseLevel(cfg.Log.Level)
		c.Logger.SetLevel(level)
		c.Logger.Debug("loaded config", "path", c.configPath, "minimization", cfg.Automaton.Minimization)
	}
	return cfg.Apply(c.Logger)
}
