package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"
)

const watchInterval = 200 * time.Millisecond

type options struct {
	confPath string
	drafts   bool
	watch    bool
	verbose  bool
	addr     string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "blog",
		Short:         "Build Joe's Blog into a static site",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, false)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.confPath, "config", defaultConfPath, "Path to the build configuration file")
	flags.BoolVar(&opts.drafts, "drafts", false, "Include content with the 'draft' flag")
	flags.BoolVar(&opts.watch, "watch", false, "Keep running and re-render the site on changes to the content directory")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Build the site and serve the output directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, true)
		},
	}
	serve.Flags().StringVar(&opts.addr, "addr", "localhost:9999", "Address to serve the site on")

	root.AddCommand(serve)
	return root
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func run(opts *options, serve bool) error {
	logger := newLogger(opts.verbose)

	conf, err := readConf(opts.confPath, logger)
	if err != nil {
		logger.Error("Invalid build configuration", "error", err)
		return err
	}

	if err := renderSite(conf, opts.drafts, logger); err != nil {
		logger.Error("Build failed", "error", err)
		return err
	}

	if opts.watch && serve {
		watchInBackground(conf, opts.drafts, logger, watchInterval)
	}

	if serve {
		return serveSite(conf.OutDir, opts.addr, logger)
	} else if opts.watch {
		// Watch mode without serve: block on the watcher
		return rerenderOnChange(conf, opts.drafts, logger, watchInterval)
	}
	return nil
}

func renderSite(conf *BuildConf, drafts bool, logger *slog.Logger) error {
	cfg := blogConfig
	s, err := ReadSite(&cfg, newModifier(&cfg, conf, blogGrammars()), conf, drafts, logger)
	if err != nil {
		return err
	}
	return s.RenderAll()
}

func serveSite(dir, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(dir)))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("Serving site", "dir", dir, "addr", "http://"+addr)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// watchInBackground rebuilds the site on changes until watching fails. The
// failure is logged and the returned channel closed.
func watchInBackground(conf *BuildConf, drafts bool, logger *slog.Logger, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := rerenderOnChange(conf, drafts, logger, interval); err != nil {
			logger.Error("Stopped watching for changes", "error", err)
		}
	}()
	return done
}

func rerenderOnChange(conf *BuildConf, drafts bool, logger *slog.Logger, interval time.Duration) error {
	logger.Info("Watching for changes", "dir", conf.ContentDir)

	w := watcher.New()
	w.SetMaxEvents(1)

	stop := make(chan struct{})
	defer close(stop)

	go func() {
		for {
			select {
			case <-stop:
				return
			case event := <-w.Event:
				logger.Debug("Content changed", "path", event.Path, "op", event.Op.String())
				if err := renderSite(conf, drafts, logger); err != nil {
					logger.Error("Rebuild failed", "error", err)
				}
			case err := <-w.Error:
				logger.Error("Watcher failed", "error", err)
			case <-w.Closed:
				return
			}
		}
	}()

	for _, dir := range []string{conf.ContentDir, conf.ThemeDir} {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := w.AddRecursive(dir); err != nil {
			return err
		}
	}

	return w.Start(interval)
}
