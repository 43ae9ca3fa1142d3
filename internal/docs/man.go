package docs

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// GenManHeader contains man page metadata
type GenManHeader struct {
	Title   string
	Section string
	Date    *time.Time
	Source  string
	Manual  string
}

// DefaultManHeader is the header used by GenManTree.
func DefaultManHeader() *GenManHeader {
	return &GenManHeader{
		Section: "1",
		Source:  "Linebar",
		Manual:  "Linebar Manual",
	}
}

// GenManTree writes a man page for cmd and every visible subcommand into
// dir, one file per command named like "linebar-styles.1".
func GenManTree(cmd *cobra.Command, dir string, header *GenManHeader) error {
	if header == nil {
		header = DefaultManHeader()
	}
	for _, c := range getNonHiddenCommands(cmd) {
		if err := GenManTree(c, dir, header); err != nil {
			return err
		}
	}

	section := header.Section
	if section == "" {
		section = "1"
	}
	filename := filepath.Join(dir, manFilename(cmd, section))
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", filename, err)
	}
	defer f.Close()

	// Each page derives its own title from the command path.
	h := *header
	h.Title = ""
	return GenMan(cmd, &h, f)
}

// GenMan generates a man page for a single command.
func GenMan(cmd *cobra.Command, header *GenManHeader, w io.Writer) error {
	h := GenManHeader{Section: "1"}
	if header != nil {
		h = *header
	}
	if h.Section == "" {
		h.Section = "1"
	}

	_, err := w.Write(md2man.Render(genManMarkdown(cmd, &h)))
	return err
}

func genManMarkdown(cmd *cobra.Command, header *GenManHeader) []byte {
	cmd.InitDefaultHelpCmd()
	cmd.InitDefaultHelpFlag()

	buf := new(bytes.Buffer)
	name := cmd.CommandPath()

	manPreamble(buf, header, name)

	buf.WriteString("# NAME\n")
	short := cmd.Short
	if short == "" {
		short = "manual page for " + name
	}
	fmt.Fprintf(buf, "%s \\- %s\n\n", name, short)

	buf.WriteString("# SYNOPSIS\n")
	buf.WriteString("**" + name + "**")
	if cmd.NonInheritedFlags().HasAvailableFlags() {
		buf.WriteString(" [OPTIONS]")
	}
	if len(getNonHiddenCommands(cmd)) > 0 {
		buf.WriteString(" [COMMAND]")
	}
	buf.WriteString("\n\n")

	if cmd.Long != "" {
		buf.WriteString("# DESCRIPTION\n")
		buf.WriteString(cmd.Long + "\n\n")
	}

	if subcommands := getNonHiddenCommands(cmd); len(subcommands) > 0 {
		buf.WriteString("# COMMANDS\n")
		for _, c := range subcommands {
			fmt.Fprintf(buf, "**%s**\n: %s\n\n", c.Name(), c.Short)
		}
	}

	manPrintOptions(buf, cmd)

	if env := Environment(cmd); len(env) > 0 {
		buf.WriteString("# ENVIRONMENT\n")
		for _, e := range env {
			fmt.Fprintf(buf, "**%s**\n: %s\n\n", e.Name, e.Usage)
		}
	}

	if cmd.Example != "" {
		buf.WriteString("# EXAMPLES\n")
		buf.WriteString("```\n" + cmd.Example + "\n```\n\n")
	}

	manPrintSeeAlso(buf, cmd, header.Section)

	return buf.Bytes()
}

func manPreamble(buf *bytes.Buffer, header *GenManHeader, name string) {
	dateStr := ""
	if header.Date != nil {
		dateStr = header.Date.Format("Jan 2006")
	}

	title := header.Title
	if title == "" {
		title = strings.ToUpper(strings.ReplaceAll(name, " ", "-"))
	}

	// pandoc-style title block: title(section) date | manual
	fmt.Fprintf(buf, "%% %s(%s) %s | %s\n\n", title, header.Section, dateStr, header.Manual)
}

func manPrintOptions(buf *bytes.Buffer, cmd *cobra.Command) {
	flags := cmd.NonInheritedFlags()
	parentFlags := cmd.InheritedFlags()
	if !flags.HasAvailableFlags() && !parentFlags.HasAvailableFlags() {
		return
	}

	buf.WriteString("# OPTIONS\n")
	manPrintFlags(buf, flags)
	manPrintFlags(buf, parentFlags)
	buf.WriteString("\n")
}

func manPrintFlags(buf *bytes.Buffer, flags *pflag.FlagSet) {
	var list []*pflag.Flag
	flags.VisitAll(func(f *pflag.Flag) {
		if !f.Hidden {
			list = append(list, f)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })

	for _, f := range list {
		format := fmt.Sprintf("**--%s**", f.Name)
		if f.Shorthand != "" {
			format = fmt.Sprintf("**-%s**, **--%s**", f.Shorthand, f.Name)
		}
		if t := f.Value.Type(); t != "bool" {
			format += fmt.Sprintf(" <%s>", t)
		}

		buf.WriteString(format + "\n")
		buf.WriteString(": " + f.Usage)
		if showDefault(f.DefValue) {
			fmt.Fprintf(buf, " (default: %s)", f.DefValue)
		}
		buf.WriteString("\n\n")
	}
}

func manPrintSeeAlso(buf *bytes.Buffer, cmd *cobra.Command, section string) {
	var refs []string
	if cmd.HasParent() {
		parent := cmd.Parent()
		refs = append(refs, manRef(parent, section))
		for _, s := range getNonHiddenCommands(parent) {
			if s.Name() != cmd.Name() {
				refs = append(refs, manRef(s, section))
			}
		}
	}
	for _, c := range getNonHiddenCommands(cmd) {
		refs = append(refs, manRef(c, section))
	}
	if len(refs) == 0 {
		return
	}

	buf.WriteString("# SEE ALSO\n")
	buf.WriteString(strings.Join(refs, ", "))
	buf.WriteString("\n")
}

func manRef(cmd *cobra.Command, section string) string {
	return fmt.Sprintf("**%s(%s)**", strings.ReplaceAll(cmd.CommandPath(), " ", "-"), section)
}

func manFilename(cmd *cobra.Command, section string) string {
	return strings.ReplaceAll(cmd.CommandPath(), " ", "-") + "." + section
}

// showDefault hides zero-ish defaults that add noise to references.
func showDefault(v string) bool {
	switch v {
	case "", "false", "0", "[]":
		return false
	}
	return true
}
