package docopt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"
)

// GenConfig configures code generation. It can be written by hand or read
// from a docopt.toml manifest next to the doc files.
type GenConfig struct {
	// Package is the package clause of the generated file. Defaults to
	// "main".
	Package string `toml:"package"`

	// Type is the name of the generated arguments struct. Defaults to
	// "Arguments".
	Type string `toml:"type"`
}

func (c GenConfig) withDefaults() GenConfig {
	if c.Package == "" {
		c.Package = "main"
	}
	if c.Type == "" {
		c.Type = "Arguments"
	}
	return c
}

// LoadGenConfig reads a docopt.toml manifest.
func LoadGenConfig(path string) (*GenConfig, error) {
	var cfg GenConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return &cfg, nil
}

// FindGenConfig searches for a docopt.toml starting from dir and walking up
// through parent directories. Returns the manifest path and parsed config,
// or ("", nil, nil) when there is none.
func FindGenConfig(dir string) (string, *GenConfig, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	for {
		path := filepath.Join(dir, "docopt.toml")
		if _, err := os.Stat(path); err == nil {
			cfg, err := LoadGenConfig(path)
			if err != nil {
				return "", nil, err
			}
			return path, cfg, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, nil
		}
		dir = parent
	}
}

// GenerateCode emits a Go source file with a typed arguments struct for
// the doc: one field per discovered option, argument and command, plus a
// parse function that matches argv and binds the result onto the struct.
func GenerateCode(doc string, cfg GenConfig) (string, error) {
	cfg = cfg.withDefaults()
	nodes, err := Nodes(doc)
	if err != nil {
		return "", errors.Wrap(err, "parsing doc")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by docopt gen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", cfg.Package)
	fmt.Fprintf(&b, "import (\n")
	fmt.Fprintf(&b, "\t\"github.com/vito/docopt/pkg/bind\"\n")
	fmt.Fprintf(&b, "\t\"github.com/vito/docopt/pkg/docopt\"\n")
	fmt.Fprintf(&b, ")\n\n")

	usageConst := strcase.ToLowerCamel(cfg.Type) + "Usage"
	fmt.Fprintf(&b, "const %s = %s\n\n", usageConst, quoteDoc(doc))

	fmt.Fprintf(&b, "// %s holds the arguments declared by the usage text.\n", cfg.Type)
	fmt.Fprintf(&b, "type %s struct {\n", cfg.Type)
	for _, n := range nodes {
		fmt.Fprintf(&b, "\t%s %s `docopt:%q`\n", fieldName(n), fieldType(n), n.Name)
	}
	fmt.Fprintf(&b, "}\n\n")

	fmt.Fprintf(&b, "// Parse%s matches argv against the usage text and binds the result.\n", cfg.Type)
	fmt.Fprintf(&b, "func Parse%s(argv []string, opts ...docopt.Option) (%s, error) {\n", cfg.Type, cfg.Type)
	fmt.Fprintf(&b, "\tvar args %s\n", cfg.Type)
	fmt.Fprintf(&b, "\tparsed, err := docopt.Apply(%s, argv, opts...)\n", usageConst)
	fmt.Fprintf(&b, "\tif err != nil {\n")
	fmt.Fprintf(&b, "\t\treturn args, err\n")
	fmt.Fprintf(&b, "\t}\n")
	fmt.Fprintf(&b, "\treturn args, bind.Struct(parsed, &args)\n")
	fmt.Fprintf(&b, "}\n")

	return b.String(), nil
}

// fieldName derives a field name from a node: the cleaned-up name in
// CamelCase, prefixed by the node kind so that --file, <file> and a "file"
// command can coexist.
func fieldName(n Node) string {
	var prefix string
	switch n.Kind {
	case OptionNode:
		prefix = "Opt"
	case CommandNode:
		prefix = "Cmd"
	default:
		prefix = "Arg"
	}
	return prefix + strcase.ToCamel(strings.Trim(n.Name, "-<>"))
}

func fieldType(n Node) string {
	switch n.Type {
	case BoolType:
		return "bool"
	case ListType:
		return "[]string"
	default:
		return "string"
	}
}

// quoteDoc renders the doc as a Go string literal, raw when possible.
func quoteDoc(doc string) string {
	if !strings.Contains(doc, "`") {
		return "`" + doc + "`"
	}
	return fmt.Sprintf("%q", doc)
}
