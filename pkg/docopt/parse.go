package docopt

import (
	"strings"
)

// optionSet is the working set of known options: seeded from the options:
// section, grown as the pattern and argv parsers run into options that were
// never declared there.
type optionSet struct {
	opts []*Pattern
}

func newOptionSet(opts []*Pattern) *optionSet {
	return &optionSet{opts: opts}
}

func (s *optionSet) add(o *Pattern) {
	s.opts = append(s.opts, o)
}

func (s *optionSet) byLong(long string) []*Pattern {
	var similar []*Pattern
	for _, o := range s.opts {
		if o.Long == long {
			similar = append(similar, o)
		}
	}
	return similar
}

func (s *optionSet) byLongPrefix(prefix string) []*Pattern {
	var similar []*Pattern
	for _, o := range s.opts {
		if o.Long != "" && strings.HasPrefix(o.Long, prefix) {
			similar = append(similar, o)
		}
	}
	return similar
}

func (s *optionSet) byShort(short string) []*Pattern {
	var similar []*Pattern
	for _, o := range s.opts {
		if o.Short == short {
			similar = append(similar, o)
		}
	}
	return similar
}

// parsePattern parses a formal usage expression into a pattern tree.
func parsePattern(source string, options *optionSet) (*Pattern, error) {
	t := tokensFromPattern(source)
	result, err := parseExpr(t, options)
	if err != nil {
		return nil, err
	}
	if t.more() {
		return nil, t.errorf("unexpected ending: %s", strings.Join(t.rest(), " "))
	}
	return NewRequired(result...), nil
}

// parseExpr parses: expr ::= seq ( '|' seq )* ;
func parseExpr(t *tokens, options *optionSet) ([]*Pattern, error) {
	seq, err := parseSeq(t, options)
	if err != nil {
		return nil, err
	}
	if !t.currentIs(false, "|") {
		return seq, nil
	}
	var result []*Pattern
	if len(seq) > 1 {
		result = []*Pattern{NewRequired(seq...)}
	} else {
		result = seq
	}
	for t.currentIs(false, "|") {
		t.move()
		seq, err = parseSeq(t, options)
		if err != nil {
			return nil, err
		}
		if len(seq) > 1 {
			result = append(result, NewRequired(seq...))
		} else {
			result = append(result, seq...)
		}
	}
	result = uniquePatterns(result)
	if len(result) > 1 {
		return []*Pattern{NewEither(result...)}, nil
	}
	return result, nil
}

// parseSeq parses: seq ::= ( atom [ '...' ] )* ;
func parseSeq(t *tokens, options *optionSet) ([]*Pattern, error) {
	var result []*Pattern
	for !t.currentIs(true, "]", ")", "|") {
		atom, err := parseAtom(t, options)
		if err != nil {
			return nil, err
		}
		if t.currentIs(false, "...") {
			atom = []*Pattern{NewOneOrMore(atom...)}
			t.move()
		}
		result = append(result, atom...)
	}
	return result, nil
}

// parseAtom parses:
//
//	atom ::= '(' expr ')' | '[' expr ']' | 'options' | long | shorts | argument | command ;
func parseAtom(t *tokens, options *optionSet) ([]*Pattern, error) {
	tok := t.current()
	switch {
	case tok == "(" || tok == "[":
		t.move()
		inner, err := parseExpr(t, options)
		if err != nil {
			return nil, err
		}
		var result []*Pattern
		var closing string
		if tok == "(" {
			closing = ")"
			result = []*Pattern{NewRequired(inner...)}
		} else {
			closing = "]"
			result = []*Pattern{NewOptional(inner...)}
		}
		if moved := t.move(); moved != closing {
			return nil, t.errorf("unmatched '%s', expected: '%s' got: '%s'", tok, closing, moved)
		}
		return result, nil
	case tok == "options":
		t.move()
		return []*Pattern{NewOptionsShortcut()}, nil
	case strings.HasPrefix(tok, "--") && tok != "--":
		return parseLong(t, options)
	case strings.HasPrefix(tok, "-") && tok != "-" && tok != "--":
		return parseShorts(t, options)
	case isAngleToken(tok) || isUpperToken(tok):
		return []*Pattern{NewArgument(t.move(), NullValue())}, nil
	default:
		return []*Pattern{NewCommand(t.move(), BoolValue(false))}, nil
	}
}

// parseLong parses: long ::= '--' chars [ ( ' ' | '=' ) chars ] ;
//
// Shared between the pattern and argv parsers; only the latter may resolve
// a long option by unique prefix, and only the latter records a value on
// the parsed leaf.
func parseLong(t *tokens, options *optionSet) ([]*Pattern, error) {
	long, eq, rest := partition(t.move(), "=")
	hasValue := eq == "="
	value := rest

	similar := options.byLong(long)
	if t.argv && len(similar) == 0 {
		similar = options.byLongPrefix(long)
	}
	switch {
	case len(similar) > 1:
		names := make([]string, len(similar))
		for i, o := range similar {
			names[i] = o.Long
		}
		return nil, t.errorf("%s is not a unique prefix: %s?", long, strings.Join(names, ", "))
	case len(similar) == 0:
		argCount := 0
		if hasValue {
			argCount = 1
		}
		proto := NewOption("", long, argCount, BoolValue(false))
		options.add(proto)
		opt := proto
		if t.argv {
			if argCount > 0 {
				opt = NewOption("", long, argCount, StringValue(value))
			} else {
				opt = NewOption("", long, argCount, BoolValue(true))
			}
		}
		return []*Pattern{opt}, nil
	default:
		found := similar[0]
		opt := NewOption(found.Short, found.Long, found.ArgCount, found.Value)
		if opt.ArgCount == 0 {
			if hasValue {
				return nil, t.errorf("%s must not have an argument", opt.Long)
			}
		} else if !hasValue {
			if t.currentIs(true, "--") {
				return nil, t.errorf("%s requires argument", opt.Long)
			}
			hasValue = true
			value = t.move()
		}
		if t.argv {
			if hasValue {
				opt.Value = StringValue(value)
			} else {
				opt.Value = BoolValue(true)
			}
		}
		return []*Pattern{opt}, nil
	}
}

// parseShorts parses: shorts ::= '-' ( chars )* [ [ ' ' ] chars ] ;
//
// Each letter of the cluster resolves independently; the first one that
// takes an argument swallows the rest of the cluster (or the next token)
// as its value.
func parseShorts(t *tokens, options *optionSet) ([]*Pattern, error) {
	tok := t.move()
	cluster := strings.TrimLeft(tok, "-")
	var parsed []*Pattern
	for cluster != "" {
		short := "-" + cluster[:1]
		cluster = cluster[1:]
		similar := options.byShort(short)
		switch {
		case len(similar) > 1:
			return nil, t.errorf("%s is specified ambiguously %d times", short, len(similar))
		case len(similar) == 0:
			proto := NewOption(short, "", 0, BoolValue(false))
			options.add(proto)
			opt := proto
			if t.argv {
				opt = NewOption(short, "", 0, BoolValue(true))
			}
			parsed = append(parsed, opt)
		default:
			found := similar[0]
			opt := NewOption(found.Short, found.Long, found.ArgCount, found.Value)
			hasValue := false
			var value string
			if opt.ArgCount > 0 {
				if cluster == "" {
					if t.currentIs(true, "--") {
						return nil, t.errorf("%s requires argument", short)
					}
					value = t.move()
				} else {
					value = cluster
					cluster = ""
				}
				hasValue = true
			}
			if t.argv {
				if hasValue {
					opt.Value = StringValue(value)
				} else {
					opt.Value = BoolValue(true)
				}
			}
			parsed = append(parsed, opt)
		}
	}
	return parsed, nil
}

// parseArgv consumes an argument vector against the known options, emitting
// a flat list of option and positional-argument leaves.
//
// If optionsFirst:
//
//	argv ::= [ long | shorts ]* [ argument ]* [ '--' [ argument ]* ] ;
//
// else:
//
//	argv ::= [ long | shorts | argument ]* [ '--' [ argument ]* ] ;
func parseArgv(t *tokens, options *optionSet, optionsFirst bool) ([]*Pattern, error) {
	var parsed []*Pattern
	for t.more() {
		cur := t.current()
		switch {
		case cur == "--":
			for _, v := range t.rest() {
				parsed = append(parsed, NewArgument("", StringValue(v)))
			}
			return parsed, nil
		case strings.HasPrefix(cur, "--"):
			pl, err := parseLong(t, options)
			if err != nil {
				return nil, err
			}
			parsed = append(parsed, pl...)
		case strings.HasPrefix(cur, "-") && cur != "-":
			ps, err := parseShorts(t, options)
			if err != nil {
				return nil, err
			}
			parsed = append(parsed, ps...)
		case optionsFirst:
			for _, v := range t.rest() {
				parsed = append(parsed, NewArgument("", StringValue(v)))
			}
			return parsed, nil
		default:
			parsed = append(parsed, NewArgument("", StringValue(t.move())))
		}
	}
	return parsed, nil
}
