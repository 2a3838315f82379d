package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/blackwell-systems/aethernote/internal/config"
	"github.com/blackwell-systems/aethernote/internal/state"
	"github.com/blackwell-systems/aethernote/internal/store"
	"github.com/blackwell-systems/aethernote/internal/theme"
	"github.com/blackwell-systems/aethernote/internal/tui"
	"github.com/blackwell-systems/aethernote/internal/unified"
	"github.com/blackwell-systems/aethernote/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfg    *config.Config
	db     store.Store
	st     *state.Container
	themes *theme.Registry
	logger *zap.Logger

	flagNoColor       bool
	flagNoInteractive bool
	flagVerbose       bool
	flagConfig        string
	flagEphemeral     bool
)

// skipsStorage lists commands that run without opening the database.
var skipsStorage = map[string]bool{
	"aethernote version":     true,
	"aethernote completion":  true,
	"aethernote config init": true,
	"aethernote config show": true,
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "aethernote",
		Short: "Organize notes on bookshelves, offline",
		Long: `aethernote keeps notes on bookshelves. Each bookshelf holds shelves,
each shelf holds notes with a title, markdown content and tags.

Everything lives in a local database. Export and import move the whole
library as a JSON file.

Run 'aethernote' with no arguments to open the interactive library.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tui.ShouldUseTUI(cmd) {
				return unified.Run(unified.Deps{
					State:    st,
					Themes:   themes,
					Fetcher:  theme.NewFetcher(cfg.Themes.Timeout),
					Manifest: cfg.Themes.Manifest,
					Log:      logger,
				})
			}
			return cmd.Help()
		},
	}

	root.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
	root.PersistentFlags().BoolVar(&flagEphemeral, "ephemeral", false, "Keep the library in memory; nothing is saved")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/aethernote/config.yml)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if skipsStorage[cmd.CommandPath()] {
			return nil
		}

		logger, err = newLogger(cfg.Log, flagVerbose)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return openStorage()
	}

	root.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		closeStorage()
	}

	root.AddCommand(
		newBookshelfCmd(),
		newShelfCmd(),
		newBookCmd(),
		newSearchCmd(),
		newTagsCmd(),
		newExportCmd(),
		newImportCmd(),
		newThemeCmd(),
		newServeCmd(),
		newIndexCmd(),
		newConfigCmd(),
		newVersionCmd(),
		newCompletionCmd(),
	)
	return root
}

// Execute is the entry point called from main.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		closeStorage()
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

// newLogger writes JSON logs to the configured file; the terminal
// belongs to the TUI.
func newLogger(lc config.LogConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(lc.Level); err == nil {
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if lc.File != "" {
		if err := util.EnsureDir(filepath.Dir(lc.File)); err != nil {
			return nil, err
		}
		zc.OutputPaths = []string{lc.File}
		zc.ErrorOutputPaths = []string{lc.File}
	}
	return zc.Build()
}

func openStorage() error {
	if flagEphemeral {
		db = store.NewMem()
		return loadStorage(":memory:")
	}

	path := cfg.Storage.DBPath()
	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	d, err := store.Open(path)
	if err != nil {
		return err
	}
	db = d
	return loadStorage(d.Path())
}

func loadStorage(path string) error {
	st = state.New(db, logger)
	st.Load()

	themes = theme.NewRegistry(db, logger)
	if err := themes.LoadUser(); err != nil {
		logger.Warn("loading user themes", zap.Error(err))
	}
	logger.Debug("storage opened", zap.String("path", path))
	return nil
}

func closeStorage() {
	if db != nil {
		if err := db.Close(); err != nil && logger != nil {
			logger.Warn("closing database", zap.Error(err))
		}
		db = nil
	}
	if logger != nil {
		_ = logger.Sync()
	}
}
