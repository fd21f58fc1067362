// Package bind projects a docopt result map onto a user-defined struct.
// It is a shallow reflective adapter over the core: keys match fields
// case-insensitively after stripping option and argument punctuation, and
// values coerce to the field's scalar type.
package bind

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/vito/docopt/pkg/docopt"
)

// Struct writes args into dest, which must be a non-nil pointer to a
// struct. A field with a `docopt:"..."` tag receives the entry whose raw
// key equals the tag, and only that entry. An untagged field receives the
// entry whose canonical key (leading dashes and angle brackets stripped,
// lowercased) equals its lowercased name. Entries with no matching field
// are ignored.
func Struct(args docopt.Args, dest any) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return errors.Errorf("bind destination must be a non-nil struct pointer, got %T", dest)
	}
	elem := rv.Elem()
	typ := elem.Type()

	for key, value := range args {
		field, ok := findField(typ, key)
		if !ok {
			continue
		}
		fv := elem.FieldByIndex(field.Index)
		if !fv.CanSet() {
			continue
		}
		if err := setValue(fv, value); err != nil {
			return errors.Wrapf(err, "binding %s to field %s", key, field.Name)
		}
	}
	return nil
}

// canonical strips the punctuation docopt keys carry (-v, --verbose,
// <file>) down to a bare lowercase word.
func canonical(key string) string {
	key = strings.TrimLeft(key, "-<")
	key = strings.TrimRight(key, ">")
	return strings.ToLower(key)
}

func findField(typ reflect.Type, key string) (reflect.StructField, bool) {
	want := canonical(key)
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		if tag, ok := field.Tag.Lookup("docopt"); ok {
			if tag == key {
				return field, true
			}
			continue
		}
		if strings.ToLower(field.Name) == want {
			return field, true
		}
	}
	return reflect.StructField{}, false
}

func setValue(fv reflect.Value, value docopt.Value) error {
	switch fv.Kind() {
	case reflect.Bool:
		if value.Kind() == docopt.StringKind {
			b, err := strconv.ParseBool(value.Str())
			if err != nil {
				return errors.Wrapf(err, "cannot coerce %q to bool", value.Str())
			}
			fv.SetBool(b)
			return nil
		}
		fv.SetBool(value.Truthy())
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := intPayload(value)
		if err != nil {
			return err
		}
		if fv.OverflowInt(n) {
			return errors.Errorf("value %d overflows %s", n, fv.Type())
		}
		fv.SetInt(n)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := intPayload(value)
		if err != nil {
			return err
		}
		if n < 0 || fv.OverflowUint(uint64(n)) {
			return errors.Errorf("value %d overflows %s", n, fv.Type())
		}
		fv.SetUint(uint64(n))
		return nil

	case reflect.Float32, reflect.Float64:
		f, err := floatPayload(value)
		if err != nil {
			return err
		}
		fv.SetFloat(f)
		return nil

	case reflect.String:
		switch value.Kind() {
		case docopt.NullKind:
			fv.SetString("")
		case docopt.StringKind:
			fv.SetString(value.Str())
		default:
			fv.SetString(value.String())
		}
		return nil

	case reflect.Slice:
		if value.Kind() == docopt.NullKind {
			fv.Set(reflect.Zero(fv.Type()))
			return nil
		}
		if value.Kind() != docopt.ListKind {
			return errors.Errorf("cannot bind %s value to %s", value.Kind(), fv.Type())
		}
		elems := value.List()
		out := reflect.MakeSlice(fv.Type(), len(elems), len(elems))
		for i, elem := range elems {
			if err := setValue(out.Index(i), elem); err != nil {
				return errors.Wrapf(err, "element %d", i)
			}
		}
		fv.Set(out)
		return nil
	}
	return errors.Errorf("unsupported field type %s", fv.Type())
}

func intPayload(value docopt.Value) (int64, error) {
	switch value.Kind() {
	case docopt.NullKind:
		return 0, nil
	case docopt.BoolKind:
		if value.Bool() {
			return 1, nil
		}
		return 0, nil
	case docopt.IntKind:
		return int64(value.Int()), nil
	case docopt.StringKind:
		n, err := strconv.ParseInt(value.Str(), 10, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "cannot coerce %q to integer", value.Str())
		}
		return n, nil
	}
	return 0, errors.Errorf("cannot coerce %s value to integer", value.Kind())
}

func floatPayload(value docopt.Value) (float64, error) {
	switch value.Kind() {
	case docopt.NullKind:
		return 0, nil
	case docopt.IntKind:
		return float64(value.Int()), nil
	case docopt.StringKind:
		f, err := strconv.ParseFloat(value.Str(), 64)
		if err != nil {
			return 0, errors.Wrapf(err, "cannot coerce %q to float", value.Str())
		}
		return f, nil
	}
	return 0, errors.Errorf("cannot coerce %s value to float", value.Kind())
}
