package docopt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueKinds(t *testing.T) {
	require.True(t, NullValue().IsNull())
	require.Equal(t, BoolKind, BoolValue(true).Kind())
	require.Equal(t, 3, IntValue(3).Int())
	require.Equal(t, "x", StringValue("x").Str())
	require.Equal(t, []string{"a", "b"}, StringsValue("a", "b").Strings())

	// accessors are kind-safe
	require.Equal(t, 0, StringValue("3").Int())
	require.Equal(t, "", IntValue(3).Str())
	require.False(t, StringValue("true").Bool())
}

func TestValueTruthy(t *testing.T) {
	tests := []struct {
		value Value
		want  bool
	}{
		{NullValue(), false},
		{BoolValue(false), false},
		{BoolValue(true), true},
		{IntValue(0), false},
		{IntValue(2), true},
		{StringValue(""), false},
		{StringValue("x"), true},
		{ListValue(), false},
		{StringsValue("x"), true},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.value.Truthy(), "value: %s", tt.value)
	}
}

func TestValueString(t *testing.T) {
	require.Equal(t, "<nil>", NullValue().String())
	require.Equal(t, "true", BoolValue(true).String())
	require.Equal(t, "2", IntValue(2).String())
	require.Equal(t, "hi", StringValue("hi").String())
	require.Equal(t, "[a, b]", StringsValue("a", "b").String())
}

func TestValueEqual(t *testing.T) {
	require.True(t, StringValue("a").Equal(StringValue("a")))
	require.False(t, StringValue("a").Equal(StringValue("b")))
	require.False(t, NullValue().Equal(BoolValue(false)))

	// lists compare by display form
	require.True(t, ListValue(StringValue("1"), StringValue("2")).Equal(
		ListValue(IntValue(1), IntValue(2))))
	require.False(t, StringsValue("a").Equal(StringsValue("a", "b")))
	require.False(t, StringsValue().Equal(NullValue()))
}

func TestValueJSON(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{NullValue(), `null`},
		{BoolValue(true), `true`},
		{IntValue(2), `2`},
		{StringValue("hi"), `"hi"`},
		{StringsValue("a", "b"), `["a","b"]`},
		{ListValue(), `[]`},
	}
	for _, tt := range tests {
		out, err := json.Marshal(tt.value)
		require.NoError(t, err)
		require.Equal(t, tt.want, string(out))
	}
}
