package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iburimskiy/portfolio-field/internal/config"
	"github.com/iburimskiy/portfolio-field/internal/field"
	"github.com/iburimskiy/portfolio-field/internal/game"
	"github.com/iburimskiy/portfolio-field/internal/projects"
	"github.com/iburimskiy/portfolio-field/internal/theme"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "portfolio-field",
	Short: "Animated particle background from the portfolio site",
	Long: `portfolio-field renders the portfolio's particle background: drifting points
that flee the pointer and link up when close to each other.

Run without arguments to open the window.
Keys: Space pause, T theme, P projects, O open projects file, F stats, Esc/Q quit.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = newLogger(cfg.Logging, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runWindow,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "portfolio-field.yaml", "path to the YAML config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(snapshotCmd, serveCmd, projectsCmd, contactCmd)
}

func newLogger(lc config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if lc.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	level := zapcore.InfoLevel
	if lc.Level != "" {
		if err := level.Set(lc.Level); err != nil {
			return nil, fmt.Errorf("logging.level %q: %w", lc.Level, err)
		}
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func themeStore() *theme.Store {
	dir, err := config.StateDir()
	if err != nil {
		logger.Warn("theme will not persist", zap.Error(err))
		return nil
	}
	return theme.NewStore(dir)
}

func runWindow(cmd *cobra.Command, args []string) error {
	store := themeStore()
	current := theme.Light
	if store != nil {
		t, err := store.Load()
		if err != nil {
			logger.Warn("theme state unreadable, using light", zap.Error(err))
		}
		current = t
	}

	list, projErr := projects.Load(cfg.Projects.Path)
	if projErr != nil {
		logger.Warn("projects unavailable", zap.Error(projErr))
	}

	g := game.New(game.Options{
		Config:      cfg,
		Field:       field.New(cfg.FieldParams(), nil),
		Theme:       current,
		ThemeStore:  store,
		Projects:    list,
		ProjectsErr: projErr,
		Logger:      logger,
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	wait := func() {}
	if cfg.Projects.Watch {
		wait = watchProjects(ctx, cfg.Projects.Path, g.SetProjects)
	}
	defer func() {
		cancel()
		wait()
	}()

	logger.Info("opening window",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.String("theme", string(current)))
	return game.Run(g)
}

// watchProjects reloads the projects file in the background until ctx is
// done. The returned func blocks until no further reload can be delivered.
func watchProjects(ctx context.Context, path string, onReload projects.ReloadFunc) (wait func()) {
	w, err := projects.NewWatcher(path, 0, onReload, logger)
	if err != nil {
		logger.Warn("projects file not watched", zap.Error(err))
		return func() {}
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()
	return func() { <-done }
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", filepath.Base(os.Args[0]), err)
		os.Exit(1)
	}
}
