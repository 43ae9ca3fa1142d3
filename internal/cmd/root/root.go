// Package root provides the linebar root command, which runs the progress
// bar demo, and registers the subcommands.
package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/schmitthub/linebar/internal/cmd/styles"
	versioncmd "github.com/schmitthub/linebar/internal/cmd/version"
	"github.com/schmitthub/linebar/internal/cmdutil"
	"github.com/schmitthub/linebar/internal/config"
	"github.com/schmitthub/linebar/internal/docs"
	"github.com/schmitthub/linebar/internal/iostreams"
	"github.com/schmitthub/linebar/internal/logger"
	"github.com/schmitthub/linebar/internal/progress"
	"github.com/schmitthub/linebar/internal/signals"
)

// Options holds the resolved settings for one demo run.
type Options struct {
	IOStreams *iostreams.IOStreams

	Count        int
	Delay        time.Duration
	Style        int
	Width        int
	HideCounters bool
	Clear        bool
}

// NewCmdRoot creates the root command for the linebar CLI. runF replaces
// the demo loop in tests.
func NewCmdRoot(f *cmdutil.Factory, runF func(context.Context, *Options) error) *cobra.Command {
	opts := &Options{IOStreams: f.IOStreams}
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "linebar",
		Short: "Draw a single-line progress bar that repaints in place",
		Long: `Linebar draws a progress bar on one terminal line and repaints it in place
after every update, so the terminal never scrolls.

The bar fills the whole line. Partial cells use quarter or half glyphs, and
the optional "n/total" counter suffix keeps the line width fixed as the
counter gains digits.

Settings are read from, in increasing precedence: built-in defaults, the
config file (~/.config/linebar/config.yaml or --config), LINEBAR_*
environment variables, and flags.`,
		Example: `  # Ten updates, one second apart, on an 80 column line
  linebar

  # A fast run in the block style sized to the terminal
  linebar -c 50 -d 0.05 -s 2 -w 0

  # No counters, and erase the bar when done
  linebar --hide-counters --clear`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Annotations: map[string]string{
			"versionInfo": versioncmd.Format(f.Version, f.BuildDate),
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.Config(cmd.Flags())
			if err != nil {
				return err
			}
			initializeLogger(cfg)

			logger.Debug().
				Str("version", f.Version).
				Str("command", cmd.CommandPath()).
				Msg("linebar starting")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.Config(cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return cmdutil.FlagErrorWrap(err)
			}

			opts.Count = cfg.Count
			opts.Delay = cfg.Delay
			opts.Style = cfg.Style
			opts.Width = cfg.Width
			opts.HideCounters = cfg.HideCounters
			opts.Clear = cfg.Clear

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return demoRun(cmd.Context(), opts)
		},
		Version: f.Version,
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return cmdutil.FlagErrorWrap(err)
	})

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "D", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&f.ConfigPath, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().String("log-file", "", "Also write logs to this rotating file")

	// Demo flags. Values are read back through config so env and file
	// settings apply when a flag is not given.
	cmd.Flags().IntP("count", "c", defaults.Count, "Number of updates")
	cmd.Flags().Float64P("delay", "d", defaults.Delay.Seconds(), "Seconds to wait before each update")
	cmd.Flags().IntP("style", "s", defaults.Style, fmt.Sprintf("Bar style, 0 to %d (see 'linebar styles')", len(progress.Styles)-1))
	cmd.Flags().IntP("width", "w", defaults.Width, "Line width in columns; 0 sizes to the terminal")
	cmd.Flags().Bool("hide-counters", false, `Omit the "n/total" suffix`)
	cmd.Flags().Bool("clear", false, "Erase the bar instead of ending the line when done")

	docs.SetEnvironment(cmd, environment(cmd))
	cmd.SetVersionTemplate(versioncmd.Format(f.Version, f.BuildDate))

	cmd.AddCommand(styles.NewCmdStyles(f, nil))
	cmd.AddCommand(versioncmd.NewCmdVersion(f))

	return cmd
}

func demoRun(ctx context.Context, opts *Options) error {
	ios := opts.IOStreams
	show := !opts.HideCounters

	bar, err := ios.NewProgressBar(opts.Count, progress.Options{
		Width:        opts.Width,
		Style:        opts.Style,
		ShowCounters: &show,
	}.Apply()...)
	if err != nil {
		return err
	}

	logger.SetBarActive(true)
	defer logger.SetBarActive(false)

	if err := bar.Setup(); err != nil {
		return err
	}

	var stopped error
	for !bar.Done() {
		if err := wait(ctx, opts.Delay); err != nil {
			stopped = err
			// The bar still owns the line, so this reaches the log file only.
			ios.Logger.Info().
				Int("counter", bar.Counter()).
				Int("total", bar.Total()).
				Msg("demo stopped early")
			break
		}
		if err := bar.Update(); err != nil {
			return err
		}
	}

	if opts.Clear {
		err = bar.Clear()
	} else {
		_, err = fmt.Fprintln(ios.Out)
	}
	if err != nil {
		return err
	}

	if stopped != nil {
		if signals.Interrupted(ctx) {
			return &cmdutil.ExitError{Code: cmdutil.ExitInterrupted}
		}
		return stopped
	}
	return nil
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// environment lists the LINEBAR_* variable behind each config-backed flag.
func environment(cmd *cobra.Command) []docs.EnvDoc {
	var env []docs.EnvDoc
	cmd.LocalFlags().VisitAll(func(fl *pflag.Flag) {
		if key, ok := config.FlagKey(fl.Name); ok {
			env = append(env, docs.EnvDoc{Name: config.EnvVar(key), Usage: fl.Usage})
		}
	})
	return env
}

// initializeLogger sets up console logging and, when configured, the
// rotating log file. Falls back to console-only logging on errors.
func initializeLogger(cfg *config.Demo) {
	if err := logger.InitWithFile(cfg.Debug, cfg.Log.File, cfg.Log.LoggingConfig()); err != nil {
		_ = logger.InitWithFile(cfg.Debug, "", nil)
		logger.Warn().Err(err).Msg("file logging unavailable")
	}
}
