package docopt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternTokenizer(t *testing.T) {
	tests := []struct {
		source string
		want   []string
	}{
		{"( [ -h ] )", []string{"(", "[", "-h", "]", ")"}},
		{"[-vqr] [FILE]", []string{"[", "-vqr", "]", "[", "FILE", "]"}},
		{"<name>...", []string{"<name>", "..."}},
		{"(set|remove)", []string{"(", "set", "|", "remove", ")"}},
		{"<my arg> --speed=<kn>", []string{"<my arg>", "--speed=<kn>"}},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tokensFromPattern(tt.source).rest(), "source: %s", tt.source)
	}
}

func TestTokensCursor(t *testing.T) {
	tok := newTokens([]string{"a", "b"}, false)
	require.True(t, tok.more())
	require.Equal(t, "a", tok.current())
	require.Equal(t, "a", tok.move())
	require.Equal(t, []string{"b"}, tok.rest())
	require.Equal(t, "b", tok.move())
	require.False(t, tok.more())
	require.Equal(t, "", tok.move())
	require.True(t, tok.currentIs(true, "anything"))
	require.False(t, tok.currentIs(false, "anything"))
}

func TestParsePattern(t *testing.T) {
	t.Run("optional flags", func(t *testing.T) {
		pat, err := parsePattern("( [ -h ] )", newOptionSet([]*Pattern{
			NewOption("-h", "", 0, BoolValue(false)),
		}))
		require.NoError(t, err)
		want := NewRequired(NewRequired(NewOptional(NewOption("-h", "", 0, BoolValue(false)))))
		require.Equal(t, want.String(), pat.String())
	})

	t.Run("alternatives collapse to either", func(t *testing.T) {
		pat, err := parsePattern("( go <x> | stop )", newOptionSet(nil))
		require.NoError(t, err)
		want := NewRequired(NewRequired(NewEither(
			NewRequired(NewCommand("go", BoolValue(false)), NewArgument("<x>", NullValue())),
			NewCommand("stop", BoolValue(false)),
		)))
		require.Equal(t, want.String(), pat.String())
	})

	t.Run("duplicate alternatives are dropped", func(t *testing.T) {
		pat, err := parsePattern("( go | go )", newOptionSet(nil))
		require.NoError(t, err)
		want := NewRequired(NewRequired(NewCommand("go", BoolValue(false))))
		require.Equal(t, want.String(), pat.String())
	})

	t.Run("ellipsis wraps the previous atom", func(t *testing.T) {
		pat, err := parsePattern("( <name> ... )", newOptionSet(nil))
		require.NoError(t, err)
		want := NewRequired(NewRequired(NewOneOrMore(NewArgument("<name>", NullValue()))))
		require.Equal(t, want.String(), pat.String())
	})

	t.Run("uppercase token is an argument", func(t *testing.T) {
		pat, err := parsePattern("( FILE )", newOptionSet(nil))
		require.NoError(t, err)
		require.Equal(t, KindArgument, pat.Children[0].Children[0].Kind)
	})

	t.Run("mixed-case token is a command", func(t *testing.T) {
		pat, err := parsePattern("( File )", newOptionSet(nil))
		require.NoError(t, err)
		require.Equal(t, KindCommand, pat.Children[0].Children[0].Kind)
	})

	t.Run("trailing garbage is a language error", func(t *testing.T) {
		_, err := parsePattern("( -a ) )", newOptionSet(nil))
		var langErr *LanguageError
		require.ErrorAs(t, err, &langErr)
		require.Contains(t, langErr.Message, "unexpected ending")
	})

	t.Run("unmatched bracket is a language error", func(t *testing.T) {
		_, err := parsePattern("( [ -a )", newOptionSet(nil))
		var langErr *LanguageError
		require.ErrorAs(t, err, &langErr)
		require.Contains(t, langErr.Message, "unmatched")
	})
}

func TestParseLong(t *testing.T) {
	verbose := NewOption("", "--verbose", 0, BoolValue(false))

	t.Run("prefix match resolves only in argv", func(t *testing.T) {
		opts := newOptionSet([]*Pattern{verbose})
		parsed, err := parseLong(newTokens([]string{"--verb"}, true), opts)
		require.NoError(t, err)
		require.Equal(t, "--verbose", parsed[0].Long)
		require.Equal(t, BoolValue(true), parsed[0].Value)
		require.Len(t, opts.opts, 1)
	})

	t.Run("pattern context mints a new option instead", func(t *testing.T) {
		opts := newOptionSet([]*Pattern{verbose})
		parsed, err := parseLong(newTokens([]string{"--verb"}, false), opts)
		require.NoError(t, err)
		require.Equal(t, "--verb", parsed[0].Long)
		require.Len(t, opts.opts, 2)
	})

	t.Run("ambiguous prefix is a user error", func(t *testing.T) {
		opts := newOptionSet([]*Pattern{
			NewOption("", "--version", 0, BoolValue(false)),
			verbose,
		})
		_, err := parseLong(newTokens([]string{"--ver"}, true), opts)
		var userErr *UserError
		require.ErrorAs(t, err, &userErr)
		require.Contains(t, userErr.Message, "not a unique prefix")
	})

	t.Run("flag rejects an attached value", func(t *testing.T) {
		opts := newOptionSet([]*Pattern{verbose})
		_, err := parseLong(newTokens([]string{"--verbose=1"}, true), opts)
		var userErr *UserError
		require.ErrorAs(t, err, &userErr)
		require.Contains(t, userErr.Message, "must not have an argument")
	})

	t.Run("valued option consumes the next token", func(t *testing.T) {
		opts := newOptionSet([]*Pattern{NewOption("", "--file", 1, NullValue())})
		parsed, err := parseLong(newTokens([]string{"--file", "f.txt"}, true), opts)
		require.NoError(t, err)
		require.Equal(t, StringValue("f.txt"), parsed[0].Value)
	})

	t.Run("valued option refuses the terminator", func(t *testing.T) {
		opts := newOptionSet([]*Pattern{NewOption("", "--file", 1, NullValue())})
		_, err := parseLong(newTokens([]string{"--file", "--"}, true), opts)
		var userErr *UserError
		require.ErrorAs(t, err, &userErr)
		require.Contains(t, userErr.Message, "requires argument")
	})
}

func TestParseShorts(t *testing.T) {
	t.Run("cluster expands to one option per letter", func(t *testing.T) {
		opts := newOptionSet(nil)
		parsed, err := parseShorts(newTokens([]string{"-abc"}, true), opts)
		require.NoError(t, err)
		require.Len(t, parsed, 3)
		for i, short := range []string{"-a", "-b", "-c"} {
			assert.Equal(t, short, parsed[i].Short)
			assert.Equal(t, BoolValue(true), parsed[i].Value)
		}
	})

	t.Run("valued short swallows the cluster remainder", func(t *testing.T) {
		opts := newOptionSet([]*Pattern{NewOption("-f", "", 1, NullValue())})
		parsed, err := parseShorts(newTokens([]string{"-fvalue"}, true), opts)
		require.NoError(t, err)
		require.Len(t, parsed, 1)
		require.Equal(t, StringValue("value"), parsed[0].Value)
	})

	t.Run("duplicate declarations are ambiguous", func(t *testing.T) {
		opts := newOptionSet([]*Pattern{
			NewOption("-f", "--first", 0, BoolValue(false)),
			NewOption("-f", "--full", 0, BoolValue(false)),
		})
		_, err := parseShorts(newTokens([]string{"-f"}, true), opts)
		var userErr *UserError
		require.ErrorAs(t, err, &userErr)
		require.Contains(t, userErr.Message, "specified ambiguously")
	})
}

func TestParseArgv(t *testing.T) {
	options := func() *optionSet {
		return newOptionSet([]*Pattern{
			NewOption("-v", "--verbose", 0, BoolValue(false)),
			NewOption("-f", "--file", 1, NullValue()),
		})
	}

	render := func(ps []*Pattern) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.String()
		}
		return out
	}

	tests := []struct {
		name         string
		argv         []string
		optionsFirst bool
		want         []*Pattern
	}{
		{
			name: "positionals",
			argv: []string{"arg1", "arg2"},
			want: []*Pattern{
				NewArgument("", StringValue("arg1")),
				NewArgument("", StringValue("arg2")),
			},
		},
		{
			name: "mixed options and positionals",
			argv: []string{"-v", "arg", "--file=f.txt"},
			want: []*Pattern{
				NewOption("-v", "--verbose", 0, BoolValue(true)),
				NewArgument("", StringValue("arg")),
				NewOption("-f", "--file", 1, StringValue("f.txt")),
			},
		},
		{
			name: "terminator keeps the rest verbatim",
			argv: []string{"-v", "--", "-f", "x"},
			want: []*Pattern{
				NewOption("-v", "--verbose", 0, BoolValue(true)),
				NewArgument("", StringValue("--")),
				NewArgument("", StringValue("-f")),
				NewArgument("", StringValue("x")),
			},
		},
		{
			name: "lone dash is a positional",
			argv: []string{"-"},
			want: []*Pattern{NewArgument("", StringValue("-"))},
		},
		{
			name:         "options first stops at the first positional",
			argv:         []string{"-v", "arg", "-f", "x"},
			optionsFirst: true,
			want: []*Pattern{
				NewOption("-v", "--verbose", 0, BoolValue(true)),
				NewArgument("", StringValue("arg")),
				NewArgument("", StringValue("-f")),
				NewArgument("", StringValue("x")),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := parseArgv(newTokens(tt.argv, true), options(), tt.optionsFirst)
			require.NoError(t, err)
			require.Equal(t, render(tt.want), render(parsed))
		})
	}
}
