// Package styles provides the styles command, which previews every bar style.
package styles

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/schmitthub/linebar/internal/cmdutil"
	"github.com/schmitthub/linebar/internal/iostreams"
	"github.com/schmitthub/linebar/internal/progress"
)

// previewTotal is the total used for previews, shown half done.
const previewTotal = 10

// Options holds options for the styles command.
type Options struct {
	IOStreams *iostreams.IOStreams

	Width int
}

// NewCmdStyles creates the styles command.
func NewCmdStyles(f *cmdutil.Factory, runF func(context.Context, *Options) error) *cobra.Command {
	opts := &Options{IOStreams: f.IOStreams}

	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List the available bar styles",
		Long: `Lists every bar style as a table of index, name and a preview of a
half-filled bar. Pass the index to 'linebar --style'.`,
		Example: `  # Previews 40 columns wide
  linebar styles

  # Previews sized to the terminal
  linebar styles --width 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Width < 0 {
				return cmdutil.FlagErrorf("invalid width: must not be negative, got %d", opts.Width)
			}
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return stylesRun(opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Width, "width", "w", 40, "Preview width in columns; 0 sizes to the terminal")

	return cmd
}

func stylesRun(opts *Options) error {
	ios := opts.IOStreams

	tp := ios.NewTablePrinter("STYLE", "NAME", "PREVIEW")
	for i, s := range progress.Styles {
		bar, err := ios.NewProgressBar(previewTotal, progress.WithWidth(opts.Width), progress.WithStyle(i))
		if err != nil {
			return err
		}
		tp.AddRow(strconv.Itoa(i), s.Name, bar.Render(previewTotal/2))
	}
	return tp.Render()
}
