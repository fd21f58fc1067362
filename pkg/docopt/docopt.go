// Package docopt parses command-line arguments against a program's help
// text. The help text is the grammar: its usage section is parsed into a
// pattern tree, the argument vector is matched against the tree, and the
// result is a map from option, argument and command names to their values.
package docopt

import (
	"errors"
	"strings"
)

// Args is the result of a successful Apply: one entry per leaf of the
// usage pattern, including the ones that did not match (those keep their
// defaults).
type Args map[string]Value

// Bool returns the named entry as a bool. Count accumulators report true
// when non-zero.
func (a Args) Bool(name string) bool {
	switch v := a[name]; v.Kind() {
	case BoolKind, IntKind:
		return v.Truthy()
	}
	return false
}

// String returns the named entry's string payload, or "" when unset.
func (a Args) String(name string) string {
	return a[name].Str()
}

// Int returns the named entry as an int: the counter for count
// accumulators, otherwise the element count for lists.
func (a Args) Int(name string) int {
	v := a[name]
	if v.Kind() == ListKind {
		return len(v.List())
	}
	return v.Int()
}

// Strings returns the named entry's list payload as plain strings.
func (a Args) Strings(name string) []string {
	return a[name].Strings()
}

type config struct {
	help         bool
	version      string
	optionsFirst bool
	exit         Exiter
}

// Option configures Apply.
type Option func(*config)

// Exiter receives the print-and-exit events Apply produces when
// configured with WithExit: the payload of --help / --version (code 0) or
// a usage error (code 1). It is expected not to return.
type Exiter func(code int, message string)

// WithHelp controls whether -h / --help raise an ExitError carrying the
// doc text. Enabled by default.
func WithHelp(help bool) Option {
	return func(c *config) { c.help = help }
}

// WithVersion makes --version raise an ExitError carrying the given
// version string.
func WithVersion(version string) Option {
	return func(c *config) { c.version = version }
}

// WithOptionsFirst stops option parsing at the first positional argument,
// for programs whose subcommands take options of their own.
func WithOptionsFirst(optionsFirst bool) Option {
	return func(c *config) { c.optionsFirst = optionsFirst }
}

// WithExit converts errors into a call to exit instead of returning them:
// help and version text with code 0, anything else with the error's own
// exit code. The core never terminates the process itself.
func WithExit(exit Exiter) Option {
	return func(c *config) { c.exit = exit }
}

// Apply parses doc's usage section into a pattern tree, matches argv
// against it, and returns the resolved name-to-value map.
func Apply(doc string, argv []string, opts ...Option) (Args, error) {
	cfg := config{help: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	args, err := apply(doc, argv, cfg)
	if err != nil && cfg.exit != nil {
		var code int
		switch e := err.(type) {
		case *ExitError:
			code = e.Code
		case *UserError:
			code = e.Code
		case *LanguageError:
			code = e.Code
		default:
			code = 1
		}
		cfg.exit(code, err.Error())
	}
	return args, err
}

func apply(doc string, argv []string, cfg config) (Args, error) {
	usageSections := parseSection("usage:", doc)
	if len(usageSections) == 0 {
		return nil, languageErrorf(`"usage:" (case-insensitive) not found`)
	}
	if len(usageSections) > 1 {
		return nil, languageErrorf(`more than one "usage:" (case-insensitive)`)
	}
	usage := usageSections[0]

	options := newOptionSet(parseDefaults(doc))
	pat, err := parsePattern(formalUsage(usage), options)
	if err != nil {
		return nil, err
	}

	argvPatterns, err := parseArgv(newTokens(argv, true), options, cfg.optionsFirst)
	if err != nil {
		return nil, withUsage(err, usage)
	}

	patternOptions := uniquePatterns(pat.flat(KindOption))
	for _, shortcut := range pat.flat(KindOptionsShortcut) {
		docOptions := uniquePatterns(parseDefaults(doc))
		shortcut.Children = diffPatterns(docOptions, patternOptions)
	}

	if err := extras(cfg.help, cfg.version, argvPatterns, doc); err != nil {
		return nil, err
	}

	pat.fix()
	matched, left, collected := pat.match(argvPatterns, nil)
	if !matched || len(left) > 0 {
		return nil, withUsage(userErrorf(""), usage)
	}

	args := make(Args)
	for _, leaf := range pat.flat() {
		args[leaf.Name] = leaf.Value
	}
	for _, leaf := range collected {
		args[leaf.Name] = leaf.Value
	}
	return args, nil
}

// extras checks the parsed argv for the special --help / --version flags
// before matching, turning them into a normal-termination signal.
func extras(help bool, version string, argvPatterns []*Pattern, doc string) error {
	if help {
		for _, p := range argvPatterns {
			if (p.Name == "-h" || p.Name == "--help") && p.Value.Truthy() {
				return &ExitError{Message: strings.Trim(doc, "\n"), Code: 0}
			}
		}
	}
	if version != "" {
		for _, p := range argvPatterns {
			if p.Name == "--version" && p.Value.Truthy() {
				return &ExitError{Message: version, Code: 0}
			}
		}
	}
	return nil
}

// withUsage attaches the usage section to a user error so the caller can
// print it alongside the message.
func withUsage(err error, usage string) error {
	var userErr *UserError
	if errors.As(err, &userErr) {
		userErr.Usage = usage
	}
	return err
}
