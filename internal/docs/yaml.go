package docs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// CommandDoc represents YAML documentation structure for a command.
type CommandDoc struct {
	Name             string       `yaml:"name"`
	Synopsis         string       `yaml:"synopsis,omitempty"`
	Description      string       `yaml:"description,omitempty"`
	Usage            string       `yaml:"usage,omitempty"`
	Options          []OptionDoc  `yaml:"options,omitempty"`
	InheritedOptions []OptionDoc  `yaml:"inherited_options,omitempty"`
	Environment      []EnvDoc     `yaml:"environment,omitempty"`
	Commands         []CommandDoc `yaml:"commands,omitempty"`
	Examples         string       `yaml:"examples,omitempty"`
	SeeAlso          []string     `yaml:"see_also,omitempty"`
}

// OptionDoc represents YAML documentation for a command flag.
type OptionDoc struct {
	Name         string `yaml:"name"`
	Shorthand    string `yaml:"shorthand,omitempty"`
	DefaultValue string `yaml:"default_value,omitempty"`
	Usage        string `yaml:"usage"`
	Type         string `yaml:"type,omitempty"`
}

// GenYamlTree writes one YAML file per visible command into dir, named
// like "linebar_styles.yaml".
func GenYamlTree(cmd *cobra.Command, dir string) error {
	for _, c := range getNonHiddenCommands(cmd) {
		if err := GenYamlTree(c, dir); err != nil {
			return err
		}
	}

	filename := filepath.Join(dir, yamlFilename(cmd))
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", filename, err)
	}
	defer f.Close()

	return GenYaml(cmd, f)
}

// GenYaml generates YAML documentation for a single command.
func GenYaml(cmd *cobra.Command, w io.Writer) error {
	cmd.InitDefaultHelpCmd()
	cmd.InitDefaultHelpFlag()

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(buildCommandDoc(cmd)); err != nil {
		return err
	}
	return enc.Close()
}

func buildCommandDoc(cmd *cobra.Command) CommandDoc {
	doc := CommandDoc{
		Name:             cmd.CommandPath(),
		Synopsis:         cmd.Short,
		Description:      cmd.Long,
		Examples:         cmd.Example,
		Options:          collectFlags(cmd.NonInheritedFlags()),
		InheritedOptions: collectFlags(cmd.InheritedFlags()),
		Environment:      Environment(cmd),
	}
	if cmd.Runnable() {
		doc.Usage = cmd.UseLine()
	}

	// Subcommands are listed by name only; each has its own file.
	for _, c := range getNonHiddenCommands(cmd) {
		doc.Commands = append(doc.Commands, CommandDoc{Name: c.Name(), Synopsis: c.Short})
		doc.SeeAlso = append(doc.SeeAlso, c.CommandPath())
	}
	if cmd.HasParent() {
		doc.SeeAlso = append([]string{cmd.Parent().CommandPath()}, doc.SeeAlso...)
	}

	return doc
}

func collectFlags(fs *pflag.FlagSet) []OptionDoc {
	var opts []OptionDoc
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		opt := OptionDoc{
			Name:      f.Name,
			Shorthand: f.Shorthand,
			Usage:     f.Usage,
			Type:      f.Value.Type(),
		}
		if showDefault(f.DefValue) {
			opt.DefaultValue = f.DefValue
		}
		opts = append(opts, opt)
	})

	sort.Slice(opts, func(i, j int) bool { return opts[i].Name < opts[j].Name })
	return opts
}

func yamlFilename(cmd *cobra.Command) string {
	return strings.ReplaceAll(cmd.CommandPath(), " ", "_") + ".yaml"
}
