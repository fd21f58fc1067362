package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/vito/docopt/pkg/docopt"
	"github.com/vito/docopt/pkg/ioctx"
)

// Config holds the root command's flags.
type Config struct {
	Debug        bool
	OptionsFirst bool
	Version      string
	NoHelp       bool
}

func main() {
	var cfg Config

	rootCmd := &cobra.Command{
		Use:   "docopt [flags] <doc-file> [-- argv...]",
		Short: "Match an argument vector against a docopt help text",
		Long: `docopt reads a program's help text, parses its usage section into a
grammar, matches the given argument vector against it, and prints the
resolved option/argument/command values as JSON.`,
		Example: `  # Match argv against a help text
  docopt naval_fate.txt -- ship new Guardian

  # Stop option parsing at the first positional
  docopt --options-first prog.txt -- run -v

  # Print the parsed pattern tree
  docopt tree naval_fate.txt

  # Generate a typed arguments struct
  docopt gen --package cli naval_fate.txt`,
		Args: cobra.MinimumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cfg.Debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			docFiles, argv := splitArgv(cmd, args)
			if len(docFiles) == 0 {
				return fmt.Errorf("a doc file is required before --")
			}
			return run(cmd.Context(), cfg, docFiles[0], argv)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&cfg.OptionsFirst, "options-first", false, "Stop option parsing at the first positional argument")
	rootCmd.Flags().StringVar(&cfg.Version, "program-version", "", "Version string reported for --version in argv")
	rootCmd.Flags().BoolVar(&cfg.NoHelp, "no-help", false, "Do not intercept -h/--help in argv")

	rootCmd.AddCommand(treeCmd(&cfg), genCmd(), nodesCmd())

	ctx := context.Background()
	ctx = ioctx.StdoutToContext(ctx, os.Stdout)
	ctx = ioctx.StderrToContext(ctx, os.Stderr)
	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

// splitArgv separates the doc-file arguments from the argv to match, which
// follows the -- terminator. Without a terminator everything after the
// first argument is treated as argv.
func splitArgv(cmd *cobra.Command, args []string) ([]string, []string) {
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		return args[:dash], args[dash:]
	}
	return args[:1], args[1:]
}

func run(ctx context.Context, cfg Config, docFile string, argv []string) error {
	doc, err := os.ReadFile(docFile)
	if err != nil {
		return fmt.Errorf("reading doc: %w", err)
	}
	slog.Debug("matching argv", "doc", docFile, "argv", argv)

	stdout := ioctx.StdoutFromContext(ctx)
	stderr := ioctx.StderrFromContext(ctx)
	args, err := docopt.Apply(string(doc), argv,
		docopt.WithHelp(!cfg.NoHelp),
		docopt.WithVersion(cfg.Version),
		docopt.WithOptionsFirst(cfg.OptionsFirst),
		docopt.WithExit(func(code int, message string) {
			if code == 0 {
				fmt.Fprintln(stdout, message)
			} else {
				fmt.Fprintln(stderr, message)
			}
			os.Exit(code)
		}),
	)
	if err != nil {
		return err
	}

	return printJSON(stdout, args)
}

func nodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nodes <doc-file>",
		Short: "Print the options, arguments and commands a doc declares",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading doc: %w", err)
			}
			nodes, err := docopt.Nodes(string(doc))
			if err != nil {
				return err
			}
			return printJSON(ioctx.StdoutFromContext(cmd.Context()), nodes)
		},
	}
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
