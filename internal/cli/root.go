package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/serene/internal/config"
	"github.com/idilsaglam/serene/internal/logging"
	"github.com/idilsaglam/serene/internal/model"
	"github.com/idilsaglam/serene/internal/persist"
	"github.com/idilsaglam/serene/internal/planner"
	"github.com/idilsaglam/serene/internal/store"
	"github.com/idilsaglam/serene/internal/tui"
	"github.com/idilsaglam/serene/internal/ui"
)

// App carries root flags and the resources opened for one invocation.
type App struct {
	ConfigPath string
	Dir        string
	Backend    string
	Theme      string
	LogFile    string
	LogLevel   string
	NoColor    bool

	cfg      *config.Config
	log      *slog.Logger
	kv       store.KV
	planner  *planner.Planner
	expired  int
	closeLog func() error
}

// Execute runs the command line and releases storage and log files even
// when a subcommand fails.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd, app := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.ExecuteContext(ctx)
	if cerr := app.Close(); err == nil {
		err = cerr
	}
	return err
}

func newRootCmd() (*cobra.Command, *App) {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "serene",
		Short:         "Serene Planner: a daily list that expires and a global list that doesn't",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		Example: strings.TrimSpace(`
  # Start the interactive planner
  serene

  # Scriptable commands
  serene add "Buy milk"
  serene add --list global "Learn Go"
  serene ls --list all
  serene mv 3 1
  serene rm 2
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Planner(cmd.Context())
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), p, tui.Options{Theme: app.cfg.Theme})
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd)
	}

	f := cmd.PersistentFlags()
	f.StringVar(&app.ConfigPath, "config", "", "Path to a config file (merged over ~/.serene/config.yaml and ./.serene/config.yaml)")
	f.StringVar(&app.Dir, "dir", "", "Data directory (overrides data_dir)")
	f.StringVar(&app.Backend, "backend", "", "Storage backend (json|sqlite|memory)")
	f.StringVar(&app.Theme, "theme", "", "Theme (classic|neon|mono)")
	f.StringVar(&app.LogFile, "log-file", "", "Write JSON logs to this file")
	f.StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	f.BoolVar(&app.NoColor, "no-color", false, "Disable ANSI colors in command output")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newSweepCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd, app
}

// setup resolves configuration and logging. Storage is opened lazily by
// the commands that need it.
func (a *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return err
	}
	if a.Dir != "" {
		cfg.DataDir = a.Dir
	}
	if a.Backend != "" {
		cfg.Backend = a.Backend
	}
	if a.Theme != "" {
		cfg.Theme = a.Theme
	}
	if a.LogFile != "" {
		cfg.LogFile = a.LogFile
	}
	if a.LogLevel != "" {
		cfg.LogLevel = a.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.LogFile == "" && strings.EqualFold(cfg.LogLevel, "debug") && cfg.DataDir != "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, "serene.log")
	}
	a.cfg = cfg

	ui.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	ui.SetColorForcing(false, a.NoColor)
	ui.SetTheme(cfg.Theme)

	log, closeLog, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	a.log, a.closeLog = log, closeLog
	return nil
}

// Planner opens storage on first use and returns the hydrated planner.
func (a *App) Planner(ctx context.Context) (*planner.Planner, error) {
	if a.planner != nil {
		return a.planner, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	kv, err := openKV(ctx, a.cfg)
	if err != nil {
		return nil, err
	}
	a.kv = kv
	a.log.Debug("opened storage", "backend", a.cfg.Backend, "dir", a.cfg.DataDir)

	a.planner = planner.New(persist.New(kv, a.log), planner.WithLogger(a.log))
	a.expired = a.planner.Hydrate(ctx)
	return a.planner, nil
}

func (a *App) Close() error {
	var firstErr error
	if a.kv != nil {
		if err := a.kv.Close(); err != nil {
			firstErr = fmt.Errorf("close storage: %w", err)
		}
		a.kv = nil
	}
	if a.closeLog != nil {
		if err := a.closeLog(); err != nil && firstErr == nil {
			firstErr = err
		}
		a.closeLog = nil
	}
	a.planner = nil
	return firstErr
}

func listFlag(cmd *cobra.Command, p *string) {
	cmd.Flags().StringVarP(p, "list", "l", string(model.Daily), "List to act on (daily|global)")
}
