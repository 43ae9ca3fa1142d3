// Package docs renders reference documentation for a cobra command tree:
// man pages through go-md2man and a structured YAML reference.
package docs

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// EnvAnnotation is the cobra annotation key holding a command's
// environment overrides, one "NAME<TAB>description" pair per line.
const EnvAnnotation = "docs:environment"

// EnvDoc documents one environment variable.
type EnvDoc struct {
	Name  string `yaml:"name"`
	Usage string `yaml:"usage,omitempty"`
}

// SetEnvironment records env on cmd for the generators.
func SetEnvironment(cmd *cobra.Command, env []EnvDoc) {
	if len(env) == 0 {
		return
	}
	lines := make([]string, 0, len(env))
	for _, e := range env {
		lines = append(lines, e.Name+"\t"+e.Usage)
	}
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[EnvAnnotation] = strings.Join(lines, "\n")
}

// Environment returns the variables recorded with SetEnvironment, sorted
// by name.
func Environment(cmd *cobra.Command) []EnvDoc {
	raw := cmd.Annotations[EnvAnnotation]
	if raw == "" {
		return nil
	}
	var env []EnvDoc
	for _, line := range strings.Split(raw, "\n") {
		name, usage, _ := strings.Cut(line, "\t")
		if name == "" {
			continue
		}
		env = append(env, EnvDoc{Name: name, Usage: usage})
	}
	sort.Slice(env, func(i, j int) bool { return env[i].Name < env[j].Name })
	return env
}

func getNonHiddenCommands(cmd *cobra.Command) []*cobra.Command {
	var commands []*cobra.Command
	for _, c := range cmd.Commands() {
		if !c.Hidden && c.Name() != "help" && c.Name() != "completion" {
			commands = append(commands, c)
		}
	}
	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Name() < commands[j].Name()
	})
	return commands
}
