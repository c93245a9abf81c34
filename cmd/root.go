package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mj1618/wintitle/internal/config"
	"github.com/mj1618/wintitle/internal/logging"
	"github.com/mj1618/wintitle/internal/output"
	"github.com/mj1618/wintitle/internal/platform"
	"github.com/mj1618/wintitle/internal/version"
	"github.com/mj1618/wintitle/internal/windowinfo"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "wintitle",
	Short:        "Resolve window titles, falling back to the accessibility tree",
	Long:         "A CLI tool that reads window titles with the direct window-text call and falls back to the OS accessibility tree when that call cannot cross a process or sandbox boundary.",
	SilenceUsage: true,
}

// cfg and logger are populated by the root PersistentPreRunE.
var (
	cfg    = config.DefaultConfig()
	logger = slog.New(slog.DiscardHandler)
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: <user config dir>/wintitle/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		// Commands without a --pretty flag get false.
		output.PrettyOutput, _ = cmd.Flags().GetBool("pretty")

		path, _ := rootCmd.PersistentFlags().GetString("config")
		if path == "" {
			cfg, err = config.Load()
		} else {
			cfg, err = config.LoadFromPath(path)
		}
		if err != nil {
			return err
		}

		if level, _ := rootCmd.PersistentFlags().GetString("log-level"); level != "" {
			cfg.Log.Level = level
		}
		logger, err = logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return err
		}
		return nil
	}
}

// newWindowInfo builds a provider for the current OS from the loaded config.
// A positive timeout overrides the configured fallback budget.
func newWindowInfo(fallback bool, timeout time.Duration) (*windowinfo.Provider, error) {
	p, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = time.Duration(cfg.Fallback.Timeout)
	}
	opts := windowinfo.Options{
		Fallback: fallback && cfg.Fallback.Enabled,
		Timeout:  timeout,
		Workers:  cfg.Fallback.Workers,
	}
	return windowinfo.NewFromPlatform(p, opts, logger), nil
}
