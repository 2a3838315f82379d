package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/blackwell-systems/aethernote/internal/state"
	"github.com/blackwell-systems/aethernote/internal/store"
	"github.com/blackwell-systems/aethernote/internal/theme"
	"github.com/blackwell-systems/aethernote/internal/webshell"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	var (
		addr     string
		flagOpen bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a read-only offline copy of the library over HTTP",
		Long: `Serve the library as a small installable web app. Pages are rendered
once into a versioned cache under serve.cache_dir and served from there.
The database is released once the cache is filled, so other aethernote
commands keep working; send SIGHUP to re-read it into a new cache version.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = cfg.Serve.Addr()
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := loadSystemThemes(ctx, themes); err != nil {
				warn("Could not load system themes: %v", err)
			}

			src := &servedLibrary{shell: webshell.Shell{State: st, Themes: themes}}
			w := webshell.NewWorker(cfg.Serve.CacheDir, src, logger)
			if err := w.Install(ctx); err != nil {
				return fmt.Errorf("installing offline cache: %w", err)
			}
			releaseDB()

			hup := make(chan os.Signal, 1)
			signal.Notify(hup, syscall.SIGHUP)
			defer signal.Stop(hup)
			go func() {
				for {
					select {
					case <-ctx.Done():
						return
					case <-hup:
						if err := src.reload(ctx); err != nil {
							logger.Error("reloading library", zap.Error(err))
							continue
						}
						if err := w.Update(ctx); err != nil {
							logger.Error("cache update failed", zap.Error(err))
							continue
						}
						logger.Info("cache updated", zap.String("cache", w.CacheName()))
					}
				}
			}()

			srv := &http.Server{
				Addr:              addr,
				Handler:           w,
				ReadHeaderTimeout: 10 * time.Second,
			}
			errc := make(chan error, 1)
			go func() { errc <- srv.ListenAndServe() }()

			url := "http://" + addr + "/"
			ok("Serving %s from %s", url, w.CacheName())
			fmt.Println("Press Ctrl+C to stop.")
			if flagOpen {
				if err := openBrowser(url); err != nil {
					warn("Could not open browser: %v", err)
				}
			}

			select {
			case err := <-errc:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			fmt.Println()
			ok("Stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: serve.host:serve.port)")
	cmd.Flags().BoolVar(&flagOpen, "open", false, "Open the app in the default browser")
	return cmd
}

// servedLibrary is the origin behind the worker. Its shell is swapped
// wholesale on reload.
type servedLibrary struct {
	mu    sync.RWMutex
	shell webshell.Shell
}

func (s *servedLibrary) Render(path string) (webshell.Document, error) {
	s.mu.RLock()
	sh := s.shell
	s.mu.RUnlock()
	return sh.Render(path)
}

// reload re-reads the library and themes, holding the database only
// for the duration of the read.
func (s *servedLibrary) reload(ctx context.Context) error {
	if flagEphemeral {
		return nil
	}
	d, err := store.Open(cfg.Storage.DBPath())
	if err != nil {
		return err
	}
	defer d.Close()

	c := state.New(d, logger)
	c.Load()
	reg := theme.NewRegistry(d, logger)
	if err := reg.LoadUser(); err != nil {
		logger.Warn("loading user themes", zap.Error(err))
	}
	if err := loadSystemThemes(ctx, reg); err != nil {
		logger.Warn("loading system themes", zap.Error(err))
	}

	s.mu.Lock()
	s.shell = webshell.Shell{State: c, Themes: reg}
	s.mu.Unlock()
	return nil
}

func loadSystemThemes(ctx context.Context, reg *theme.Registry) error {
	if cfg.Themes.Manifest == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Themes.Timeout)
	defer cancel()
	return reg.LoadRemote(ctx, theme.NewFetcher(cfg.Themes.Timeout), cfg.Themes.Manifest)
}

// releaseDB closes the database while keeping the loaded state in memory.
func releaseDB() {
	if db == nil || flagEphemeral {
		return
	}
	if err := db.Close(); err != nil {
		logger.Warn("closing database", zap.Error(err))
	}
	db = nil
}
