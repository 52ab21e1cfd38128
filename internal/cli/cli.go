// Package cli implements the shapekit command-line interface.
//
// This package provides commands for inspecting and transforming the
// shapekey lists of scene documents: checking objects against expected
// lists, creating missing keys, splitting keys by vertex-group pairs, and
// tidying or pruning disposable keys. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - check: Compare an object's shapekeys against a configured list
//   - fill: Create the shapekeys the last check reported missing
//   - split: Split a shapekey in two using a vertex-group pair
//   - tidy: Move .old shapekeys to the bottom of the list
//   - prune: Delete .old shapekeys
//   - lists: Show the configured expected lists and split pairs
//   - panel: Interactive panel over a scene document
//   - viz: Render a shapekey diagram (DOT, SVG, PNG)
//   - serve: Run the HTTP API
//   - state: Manage the pending-report state directory
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pawlygon/shapekit/pkg/buildinfo"
	"github.com/pawlygon/shapekit/pkg/ops"
	"github.com/pawlygon/shapekit/pkg/pending"
	"github.com/pawlygon/shapekit/pkg/roster"
	"github.com/pawlygon/shapekit/pkg/scene"
)

// appName is the application name used for directories and display.
const appName = "shapekit"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// rosterPath overrides the default roster config location.
	rosterPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "shapekit",
		Short:        "Shapekit manages the shapekey lists of scene documents",
		Long:         `Shapekit is a CLI tool for avatar shapekey workflows: it checks scene objects against expected shapekey lists, fills in missing keys, splits keys along vertex-group pairs, and keeps .old leftovers tidy.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.rosterPath, "rosters", "", "path to a roster TOML file (default: config dir)")

	// Register all subcommands
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.fillCommand())
	root.AddCommand(c.splitCommand())
	root.AddCommand(c.tidyCommand())
	root.AddCommand(c.pruneCommand())
	root.AddCommand(c.listsCommand())
	root.AddCommand(c.panelCommand())
	root.AddCommand(c.vizCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.stateCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates an operator runner backed by the file pending store and
// the configured rosters.
func (c *CLI) newRunner() (*ops.Runner, error) {
	dir, err := stateDir()
	if err != nil {
		return nil, err
	}
	store, err := pending.NewFileStore(dir)
	if err != nil {
		return nil, err
	}
	rosters, err := c.loadRosters()
	if err != nil {
		return nil, err
	}
	return ops.NewRunner(store, rosters), nil
}

// loadRosters returns the built-in roster defaults, layered with the user's
// config file when one exists.
func (c *CLI) loadRosters() (*roster.Set, error) {
	path := c.rosterPath
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return roster.Default(), nil
		}
		path = filepath.Join(dir, "rosters.toml")
	}

	user, err := roster.Load(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return roster.Default(), nil
		}
		return nil, err
	}
	return roster.Default().Merge(user), nil
}

// loadScene reads and validates a scene document.
func (c *CLI) loadScene(path string) (*scene.Scene, error) {
	sc, err := scene.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded scene", "path", path, "objects", len(sc.Objects))
	return sc, nil
}

// saveScene writes a mutated scene document back to disk.
func (c *CLI) saveScene(path string, sc *scene.Scene) error {
	if err := scene.WriteFile(sc, path); err != nil {
		return err
	}
	c.Logger.Debug("saved scene", "path", path)
	return nil
}

// stateDir returns the pending-report directory using the XDG standard
// (~/.local/state/shapekit/).
func stateDir() (string, error) {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", appName), nil
}

// configDir returns the config directory using the XDG standard
// (~/.config/shapekit/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
