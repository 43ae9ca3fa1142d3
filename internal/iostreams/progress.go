package iostreams

import "github.com/schmitthub/linebar/internal/progress"

// NewProgressBar creates a progress bar that paints to s.Out. Width
// detection goes through TerminalWidth unless opts fix a width.
func (s *IOStreams) NewProgressBar(total int, opts ...progress.Option) (*progress.Renderer, error) {
	opts = append([]progress.Option{progress.WithWidthProvider(s.TerminalWidth)}, opts...)
	return progress.New(total, s.Out, opts...)
}
