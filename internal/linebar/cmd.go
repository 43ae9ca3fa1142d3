// Package linebar is the CLI entry point shared by the binary and the
// end-to-end tests.
package linebar

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/schmitthub/linebar/internal/cmd/root"
	"github.com/schmitthub/linebar/internal/cmdutil"
	"github.com/schmitthub/linebar/internal/iostreams"
	"github.com/schmitthub/linebar/internal/logger"
	"github.com/schmitthub/linebar/internal/signals"
)

// Build-time variables injected via ldflags
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = ""
)

const (
	exitOk    = 0
	exitError = 1
	exitUsage = 2
)

// Main is the entry point for the linebar CLI.
// It initializes the Factory, creates the root command, and executes it.
func Main() int {
	// Ensure logs are flushed on exit
	defer logger.CloseFileWriter()

	f := cmdutil.New(Version, Commit, BuildDate)

	ctx, cancel := signals.SetupSignalContext(context.Background())
	defer cancel()

	rootCmd := root.NewCmdRoot(f, nil)
	cmd, err := rootCmd.ExecuteContextC(ctx)
	return exitCode(f.IOStreams, cmd, err)
}

// exitCode reports err on stderr and maps it to a process exit status.
func exitCode(ios *iostreams.IOStreams, cmd *cobra.Command, err error) int {
	if err == nil {
		return exitOk
	}

	var exitErr *cmdutil.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var flagErr *cmdutil.FlagError
	if errors.As(err, &flagErr) {
		fmt.Fprintln(ios.ErrOut, err)
		if cmd != nil {
			usage := cmd.UsageString()
			if !strings.HasPrefix(usage, "\n") {
				fmt.Fprintln(ios.ErrOut)
			}
			fmt.Fprint(ios.ErrOut, usage)
		}
		return exitUsage
	}

	fmt.Fprintf(ios.ErrOut, "Error: %s\n", err)
	if cmd != nil {
		fmt.Fprintf(ios.ErrOut, "Run '%s --help' for usage.\n", cmd.CommandPath())
	}
	return exitError
}
