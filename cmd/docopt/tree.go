package main

import (
	"fmt"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/vito/docopt/pkg/docopt"
	"github.com/vito/docopt/pkg/ioctx"
)

var (
	branchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	leafStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func treeCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "tree <doc-file>",
		Short: "Print the normalized pattern tree for a doc",
		Long: `Parse the doc's usage section, populate the [options] shortcut, run the
normalization passes, and print the resulting pattern tree.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading doc: %w", err)
			}
			pat, err := docopt.FixedPattern(string(doc))
			if err != nil {
				return err
			}
			stdout := ioctx.StdoutFromContext(cmd.Context())
			if cfg.Debug {
				_, err := pretty.Fprintf(stdout, "%# v\n", pat)
				return err
			}
			fmt.Fprint(stdout, renderPattern(pat, 0))
			return nil
		},
	}
}

func renderPattern(p *docopt.Pattern, depth int) string {
	indent := strings.Repeat("  ", depth)
	if p.Kind.IsLeaf() {
		label := p.Name
		if p.Kind == docopt.KindOption && p.Short != "" && p.Long != "" {
			label = p.Short + ", " + p.Long
		}
		return fmt.Sprintf("%s%s %s %s\n",
			indent,
			leafStyle.Render(label),
			valueStyle.Render(p.Kind.String()),
			valueStyle.Render("= "+p.Value.String()))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s\n", indent, branchStyle.Render(p.Kind.String()))
	for _, child := range p.Children {
		b.WriteString(renderPattern(child, depth+1))
	}
	return b.String()
}
