package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/gogpu/gglive"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "gglive",
		Short: "Live vector plot device",
		Long: `gglive - a live plot device that serves pages drawn by one host as SVG.

Configuration is read from --config, then GGLIVE_* environment variables,
then command line flags.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")

	root.AddCommand(
		newServeCmd(&configPath),
		newRenderCmd(&configPath),
		newTokenCmd(),
		newArchiveCmd(),
	)
	return root
}

// loadConfig reads the file and environment, then applies the flags the
// user set on fs, which was bound with Config.BindFlags.
func loadConfig(fs *pflag.FlagSet, path string) (gglive.Config, error) {
	cfg, err := gglive.LoadConfig(path)
	if err != nil {
		return cfg, err
	}
	over := pflag.NewFlagSet("overrides", pflag.ContinueOnError)
	cfg.BindFlags(over)

	var setErr error
	fs.Visit(func(f *pflag.Flag) {
		if over.Lookup(f.Name) == nil || setErr != nil {
			return
		}
		setErr = over.Set(f.Name, f.Value.String())
	})
	if setErr != nil {
		return cfg, setErr
	}
	return cfg, cfg.Validate()
}

// newLogger builds the process logger. An empty format picks text on a
// terminal and JSON otherwise.
func newLogger(w io.Writer, level, format string, isTerminal bool) *slog.Logger {
	lvl, err := gglive.ParseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	if format == "" {
		format = "json"
		if isTerminal {
			format = "text"
		}
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// setupLogging installs the logger for cfg as the slog and gglive default.
func setupLogging(cfg gglive.Config) *slog.Logger {
	l := newLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat, term.IsTerminal(int(os.Stderr.Fd())))
	slog.SetDefault(l)
	gglive.SetLogger(l)
	return l
}
