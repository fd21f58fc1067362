package docopt

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValueKind discriminates the variants of Value.
type ValueKind int

const (
	NullKind ValueKind = iota
	BoolKind
	IntKind
	StringKind
	ListKind
)

func (k ValueKind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case IntKind:
		return "int"
	case StringKind:
		return "string"
	case ListKind:
		return "list"
	}
	return fmt.Sprintf("ValueKind(%d)", int(k))
}

// Value is the dynamically-typed value carried by pattern leaves and
// returned in the result map. It is one of: null, bool, int, string, or a
// list of values.
type Value struct {
	kind ValueKind
	b    bool
	n    int
	s    string
	list []Value
}

func NullValue() Value {
	return Value{kind: NullKind}
}

func BoolValue(b bool) Value {
	return Value{kind: BoolKind, b: b}
}

func IntValue(n int) Value {
	return Value{kind: IntKind, n: n}
}

func StringValue(s string) Value {
	return Value{kind: StringKind, s: s}
}

func ListValue(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: ListKind, list: elems}
}

// StringsValue builds a list value from plain strings.
func StringsValue(elems ...string) Value {
	list := make([]Value, len(elems))
	for i, s := range elems {
		list[i] = StringValue(s)
	}
	return Value{kind: ListKind, list: list}
}

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNull() bool { return v.kind == NullKind }

// Bool returns the boolean payload, or false for any other kind.
func (v Value) Bool() bool { return v.kind == BoolKind && v.b }

// Int returns the integer payload, or 0 for any other kind.
func (v Value) Int() int {
	if v.kind != IntKind {
		return 0
	}
	return v.n
}

// Str returns the string payload, or "" for any other kind.
func (v Value) Str() string {
	if v.kind != StringKind {
		return ""
	}
	return v.s
}

// List returns the list payload, or nil for any other kind.
func (v Value) List() []Value {
	if v.kind != ListKind {
		return nil
	}
	return v.list
}

// Strings flattens a list value into its elements' display forms.
func (v Value) Strings() []string {
	if v.kind != ListKind {
		return nil
	}
	out := make([]string, len(v.list))
	for i, e := range v.list {
		out[i] = e.String()
	}
	return out
}

// Truthy reports whether the value counts as "present": non-null, non-false,
// non-zero, non-empty. Used for the --help / --version triggers.
func (v Value) Truthy() bool {
	switch v.kind {
	case NullKind:
		return false
	case BoolKind:
		return v.b
	case IntKind:
		return v.n != 0
	case StringKind:
		return v.s != ""
	case ListKind:
		return len(v.list) > 0
	}
	return false
}

// String renders the display form. Lists compare equal iff their display
// forms are equal, so this doubles as the equality key.
func (v Value) String() string {
	switch v.kind {
	case NullKind:
		return "<nil>"
	case BoolKind:
		return strconv.FormatBool(v.b)
	case IntKind:
		return strconv.Itoa(v.n)
	case StringKind:
		return v.s
	case ListKind:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return ""
}

// Equal compares two values. Scalars compare by kind and payload; lists
// compare by display form.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case BoolKind:
		return v.b == o.b
	case IntKind:
		return v.n == o.n
	case StringKind:
		return v.s == o.s
	case ListKind:
		return v.String() == o.String()
	}
	return true
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case NullKind:
		return []byte("null"), nil
	case BoolKind:
		return json.Marshal(v.b)
	case IntKind:
		return json.Marshal(v.n)
	case StringKind:
		return json.Marshal(v.s)
	case ListKind:
		return json.Marshal(v.list)
	}
	return nil, fmt.Errorf("unknown value kind: %d", int(v.kind))
}
