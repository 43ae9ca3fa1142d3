package cmdutil

import (
	"sync"

	"github.com/spf13/pflag"

	"github.com/schmitthub/linebar/internal/config"
	"github.com/schmitthub/linebar/internal/iostreams"
	"github.com/schmitthub/linebar/internal/logger"
)

// Factory provides shared dependencies for CLI commands.
// Commands copy only the fields they need into per-command Options structs.
type Factory struct {
	// Version info (set at build time via ldflags)
	Version   string
	Commit    string
	BuildDate string

	// IO streams for input/output (for testability)
	IOStreams *iostreams.IOStreams

	// ConfigPath is the value of --config; empty means the default location.
	ConfigPath string

	// Config resolves demo settings against the given flag set. The result
	// is computed once.
	Config func(fs *pflag.FlagSet) (*config.Demo, error)
}

// New creates a Factory wired to the real standard streams and config
// loader. Called once at the CLI entry point; tests build &Factory{}
// directly.
func New(version, commit, buildDate string) *Factory {
	f := &Factory{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		IOStreams: iostreams.NewIOStreams(logger.Forwarder{}),
	}

	var (
		configOnce sync.Once
		configData *config.Demo
		configErr  error
	)
	f.Config = func(fs *pflag.FlagSet) (*config.Demo, error) {
		configOnce.Do(func() {
			configData, configErr = config.Load(fs, f.ConfigPath)
		})
		return configData, configErr
	}

	return f
}
