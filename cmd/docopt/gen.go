package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vito/docopt/pkg/docopt"
	"github.com/vito/docopt/pkg/ioctx"
)

func genCmd() *cobra.Command {
	var (
		write bool
		cfg   docopt.GenConfig
	)

	cmd := &cobra.Command{
		Use:   "gen [flags] <doc-file>...",
		Short: "Generate typed argument structs from docopt help texts",
		Long: `Generate a Go source file per doc: a struct with one field per
discovered option, argument and command, plus a parse function.

Settings come from flags, or from a docopt.toml manifest found next to the
doc file (searching upward). Flags win.`,
		Example: `  # Print generated code to stdout
  docopt gen naval_fate.txt

  # Write naval_fate.go next to the doc
  docopt gen -w --package cli naval_fate.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd, args, cfg, write)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write a .go file next to each doc instead of stdout")
	cmd.Flags().StringVar(&cfg.Package, "package", "", "Package clause of the generated files")
	cmd.Flags().StringVar(&cfg.Type, "type", "", "Name of the generated struct")

	return cmd
}

func runGen(cmd *cobra.Command, docFiles []string, flags docopt.GenConfig, write bool) error {
	stdout := ioctx.StdoutFromContext(cmd.Context())

	var eg errgroup.Group
	outputs := make([]string, len(docFiles))
	for i, docFile := range docFiles {
		eg.Go(func() error {
			doc, err := os.ReadFile(docFile)
			if err != nil {
				return fmt.Errorf("reading doc: %w", err)
			}
			cfg, err := genConfigFor(docFile, flags)
			if err != nil {
				return err
			}
			code, err := docopt.GenerateCode(string(doc), cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", docFile, err)
			}
			outputs[i] = code
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for i, docFile := range docFiles {
		if !write {
			fmt.Fprint(stdout, outputs[i])
			continue
		}
		target := strings.TrimSuffix(docFile, filepath.Ext(docFile)) + ".go"
		if err := os.WriteFile(target, []byte(outputs[i]), 0o644); err != nil {
			return err
		}
		fmt.Fprintln(stdout, target)
	}
	return nil
}

// genConfigFor resolves the generation config for one doc file: the nearest
// docopt.toml provides defaults, explicit flags override.
func genConfigFor(docFile string, flags docopt.GenConfig) (docopt.GenConfig, error) {
	path, manifest, err := docopt.FindGenConfig(filepath.Dir(docFile))
	if err != nil {
		return docopt.GenConfig{}, err
	}
	cfg := docopt.GenConfig{}
	if manifest != nil {
		slog.Debug("using manifest", "path", path)
		cfg = *manifest
	}
	if flags.Package != "" {
		cfg.Package = flags.Package
	}
	if flags.Type != "" {
		cfg.Type = flags.Type
	}
	return cfg, nil
}
