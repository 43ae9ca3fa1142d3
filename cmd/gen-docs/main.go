// gen-docs writes the linebar command reference as man pages and YAML
// without running the CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/schmitthub/linebar/internal/cmd/root"
	"github.com/schmitthub/linebar/internal/cmdutil"
	"github.com/schmitthub/linebar/internal/docs"
	"github.com/schmitthub/linebar/internal/iostreams"
	"github.com/schmitthub/linebar/internal/logger"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("gen-docs", pflag.ContinueOnError)

	var (
		flagDocPath string
		flagManPage bool
		flagYAML    bool
		flagDate    string
	)

	flags.StringVar(&flagDocPath, "doc-path", "", "Output directory for generated docs (required)")
	flags.BoolVar(&flagManPage, "man-page", false, "Generate man pages")
	flags.BoolVar(&flagYAML, "yaml", false, "Generate YAML reference")
	flags.StringVar(&flagDate, "date", "", "Man page date as YYYY-MM-DD (default: none)")

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n\n%s", filepath.Base(args[0]), flags.FlagUsages())
	}

	if err := flags.Parse(args[1:]); err != nil {
		return err
	}

	if flagDocPath == "" {
		return fmt.Errorf("--doc-path is required")
	}
	if !flagManPage && !flagYAML {
		return fmt.Errorf("at least one format must be specified (--man-page, --yaml)")
	}

	header := docs.DefaultManHeader()
	if flagDate != "" {
		d, err := time.Parse(time.DateOnly, flagDate)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
		header.Date = &d
	}

	f := &cmdutil.Factory{IOStreams: iostreams.NewIOStreams(logger.Forwarder{})}
	rootCmd := root.NewCmdRoot(f, nil)

	if flagManPage {
		dir := filepath.Join(flagDocPath, "man")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create man directory: %w", err)
		}
		if err := docs.GenManTree(rootCmd, dir, header); err != nil {
			return fmt.Errorf("failed to generate man pages: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Generated man pages in %s\n", dir)
	}

	if flagYAML {
		dir := filepath.Join(flagDocPath, "yaml")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create yaml directory: %w", err)
		}
		if err := docs.GenYamlTree(rootCmd, dir); err != nil {
			return fmt.Errorf("failed to generate YAML documentation: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Generated YAML documentation in %s\n", dir)
	}

	return nil
}
