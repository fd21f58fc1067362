package docopt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform(t *testing.T) {
	optA := func() *Pattern { return NewOption("-a", "", 0, BoolValue(false)) }
	optB := func() *Pattern { return NewOption("-b", "", 0, BoolValue(false)) }
	optC := func() *Pattern { return NewOption("-c", "", 0, BoolValue(false)) }
	argN := func() *Pattern { return NewArgument("N", NullValue()) }

	tests := []struct {
		name string
		in   *Pattern
		want *Pattern
	}{
		{
			name: "leaf",
			in:   optA(),
			want: NewEither(NewRequired(optA())),
		},
		{
			name: "either distributes over sequence",
			in:   NewRequired(NewEither(optA(), optB()), optC()),
			want: NewEither(NewRequired(optA(), optC()), NewRequired(optB(), optC())),
		},
		{
			name: "one or more duplicates its children",
			in:   NewOneOrMore(argN()),
			want: NewEither(NewRequired(argN(), argN())),
		},
		{
			name: "optional flattens inline",
			in:   NewOptional(optA(), NewOptional(optB())),
			want: NewEither(NewRequired(optA(), optB())),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want.String(), tt.in.transform().String())
		})
	}
}

func TestTransformYieldsOnlyRequiredBags(t *testing.T) {
	pat, err := parsePattern("( [ -a | -b ] C ... | ( options D ) )", newOptionSet(nil))
	require.NoError(t, err)

	out := pat.transform()
	require.Equal(t, KindEither, out.Kind)
	require.NotEmpty(t, out.Children)
	for _, alt := range out.Children {
		require.Equal(t, KindRequired, alt.Kind)
		for _, leaf := range alt.Children {
			assert.True(t, leaf.Kind.IsLeaf(), "unexpected branch %s", leaf)
		}
	}
}

func TestFixIdentities(t *testing.T) {
	pat := NewRequired(
		NewArgument("N", NullValue()),
		NewOptional(NewArgument("N", NullValue())),
	)
	pat.fixIdentities(nil)

	first := pat.Children[0]
	second := pat.Children[1].Children[0]
	require.Same(t, first, second)
}

func TestFixRepeatingArguments(t *testing.T) {
	t.Run("repeated argument becomes a list", func(t *testing.T) {
		pat := NewRequired(NewArgument("N", NullValue()), NewArgument("N", NullValue()))
		pat.fix()
		require.Equal(t, ListValue(), pat.Children[0].Value)
		require.Equal(t, ListValue(), pat.Children[1].Value)
	})

	t.Run("string default splits on whitespace", func(t *testing.T) {
		opt := NewOption("", "--data", 1, StringValue("x y"))
		pat := NewRequired(NewOneOrMore(opt))
		pat.fix()
		require.Equal(t, StringsValue("x", "y"), opt.Value)
	})

	t.Run("repeated command becomes a counter", func(t *testing.T) {
		pat := NewRequired(NewCommand("go", BoolValue(false)), NewCommand("go", BoolValue(false)))
		pat.fix()
		require.Equal(t, IntValue(0), pat.Children[0].Value)
	})

	t.Run("singular leaves keep their defaults", func(t *testing.T) {
		arg := NewArgument("N", NullValue())
		opt := NewOption("-a", "", 0, BoolValue(false))
		pat := NewRequired(arg, opt)
		pat.fix()
		require.Equal(t, NullValue(), pat.Children[0].Value)
		require.Equal(t, BoolValue(false), pat.Children[1].Value)
	})
}

func TestFlat(t *testing.T) {
	shortcut := NewOptionsShortcut()
	pat := NewRequired(
		NewOptional(NewOption("-a", "", 0, BoolValue(false)), shortcut),
		NewArgument("N", NullValue()),
		NewCommand("go", BoolValue(false)),
	)

	leaves := pat.flat()
	require.Len(t, leaves, 3)

	options := pat.flat(KindOption)
	require.Len(t, options, 1)
	require.Equal(t, "-a", options[0].Name)

	shortcuts := pat.flat(KindOptionsShortcut)
	require.Len(t, shortcuts, 1)
	require.Same(t, shortcut, shortcuts[0])
}

func TestPatternListHelpers(t *testing.T) {
	a := NewOption("-a", "", 0, BoolValue(false))
	b := NewOption("-b", "", 0, BoolValue(false))
	a2 := NewOption("-a", "", 0, BoolValue(false))

	require.Len(t, uniquePatterns([]*Pattern{a, a2, b}), 2)
	require.Equal(t, 2, countPatterns([]*Pattern{a, a2, b}, a))

	left := diffPatterns([]*Pattern{a, a2, b}, []*Pattern{a})
	require.Len(t, left, 2)
	require.Same(t, a2, left[0])
	require.Same(t, b, left[1])

	require.Len(t, doublePatterns([]*Pattern{a, b}), 4)
}

func TestOptionName(t *testing.T) {
	require.Equal(t, "--all", NewOption("-a", "--all", 0, BoolValue(false)).Name)
	require.Equal(t, "-a", NewOption("-a", "", 0, BoolValue(false)).Name)

	// a valued option defaults to null, not false
	require.Equal(t, NullValue(), NewOption("-f", "", 1, BoolValue(false)).Value)
	require.Equal(t, BoolValue(false), NewOption("-f", "", 0, BoolValue(false)).Value)
}
