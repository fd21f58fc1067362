package docopt

import (
	"fmt"
	"strings"
)

// Kind discriminates the eight pattern variants. The first three are
// leaves, the rest are branches.
type Kind int

const (
	KindArgument Kind = iota
	KindCommand
	KindOption
	KindRequired
	KindOptional
	KindOptionsShortcut
	KindOneOrMore
	KindEither
)

func (k Kind) String() string {
	switch k {
	case KindArgument:
		return "Argument"
	case KindCommand:
		return "Command"
	case KindOption:
		return "Option"
	case KindRequired:
		return "Required"
	case KindOptional:
		return "Optional"
	case KindOptionsShortcut:
		return "OptionsShortcut"
	case KindOneOrMore:
		return "OneOrMore"
	case KindEither:
		return "Either"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsLeaf reports whether the kind is a terminal: Argument, Command, or
// Option.
func (k Kind) IsLeaf() bool {
	return k == KindArgument || k == KindCommand || k == KindOption
}

// Pattern is one node of the pattern tree: a tagged union over the eight
// variants. Leaves carry Name and Value (Options additionally Short, Long
// and ArgCount); branches carry Children.
type Pattern struct {
	Kind Kind

	Children []*Pattern

	Name  string
	Value Value

	Short    string
	Long     string
	ArgCount int
}

func newBranch(kind Kind, children ...*Pattern) *Pattern {
	p := &Pattern{Kind: kind}
	p.Children = make([]*Pattern, len(children))
	copy(p.Children, children)
	return p
}

func NewRequired(children ...*Pattern) *Pattern {
	return newBranch(KindRequired, children...)
}

func NewOptional(children ...*Pattern) *Pattern {
	return newBranch(KindOptional, children...)
}

func NewOptionsShortcut() *Pattern {
	return &Pattern{Kind: KindOptionsShortcut}
}

func NewOneOrMore(children ...*Pattern) *Pattern {
	return newBranch(KindOneOrMore, children...)
}

func NewEither(children ...*Pattern) *Pattern {
	return newBranch(KindEither, children...)
}

func NewArgument(name string, value Value) *Pattern {
	return &Pattern{Kind: KindArgument, Name: name, Value: value}
}

func NewCommand(name string, value Value) *Pattern {
	return &Pattern{Kind: KindCommand, Name: name, Value: value}
}

// NewOption builds an option leaf. Name resolves to the long form when one
// is present, otherwise the short form. An option that takes an argument
// defaults to null rather than false.
func NewOption(short, long string, argCount int, value Value) *Pattern {
	p := &Pattern{Kind: KindOption, Short: short, Long: long, ArgCount: argCount}
	if long != "" {
		p.Name = long
	} else {
		p.Name = short
	}
	if argCount > 0 && value.Equal(BoolValue(false)) {
		p.Value = NullValue()
	} else {
		p.Value = value
	}
	return p
}

// eq is structural equality, including the current value. Matching and
// normalization dedup by it.
func (p *Pattern) eq(o *Pattern) bool {
	if p == nil || o == nil {
		return p == o
	}
	if p.Kind != o.Kind || p.Name != o.Name ||
		p.Short != o.Short || p.Long != o.Long || p.ArgCount != o.ArgCount ||
		!p.Value.Equal(o.Value) {
		return false
	}
	if len(p.Children) != len(o.Children) {
		return false
	}
	for i := range p.Children {
		if !p.Children[i].eq(o.Children[i]) {
			return false
		}
	}
	return true
}

func (p *Pattern) String() string {
	switch {
	case p.Kind == KindOption:
		return fmt.Sprintf("Option(%s, %s, %d, %s)", p.Short, p.Long, p.ArgCount, p.Value)
	case p.Kind.IsLeaf():
		return fmt.Sprintf("%s(%s, %s)", p.Kind, p.Name, p.Value)
	default:
		parts := make([]string, len(p.Children))
		for i, c := range p.Children {
			parts[i] = c.String()
		}
		return fmt.Sprintf("%s(%s)", p.Kind, strings.Join(parts, ", "))
	}
}

// flat collects the nodes of the given kinds in tree order. With no kinds
// it collects every leaf. A branch whose kind is requested is returned
// whole, without descending into it.
func (p *Pattern) flat(kinds ...Kind) []*Pattern {
	wanted := func(k Kind) bool {
		if len(kinds) == 0 {
			return k.IsLeaf()
		}
		for _, w := range kinds {
			if w == k {
				return true
			}
		}
		return false
	}
	if wanted(p.Kind) {
		return []*Pattern{p}
	}
	if p.Kind.IsLeaf() {
		return nil
	}
	var result []*Pattern
	for _, c := range p.Children {
		result = append(result, c.flat(kinds...)...)
	}
	return result
}

// fix normalizes the tree in place: first identities, then repeating
// arguments. It must run after the options shortcut is populated and
// before matching.
func (p *Pattern) fix() {
	p.fixIdentities(nil)
	p.fixRepeatingArguments()
}

// fixIdentities rewires leaf children so that structurally equal leaves are
// the same object. Matching relies on this: accumulating into one
// occurrence must be visible at every occurrence.
func (p *Pattern) fixIdentities(uniq []*Pattern) {
	if p.Kind.IsLeaf() {
		return
	}
	if uniq == nil {
		uniq = uniquePatterns(p.flat())
	}
	for i, child := range p.Children {
		if child.Kind.IsLeaf() {
			for _, u := range uniq {
				if u.eq(child) {
					p.Children[i] = u
					break
				}
			}
		} else {
			child.fixIdentities(uniq)
		}
	}
}

// fixRepeatingArguments rewrites the initial value of every leaf that can
// match more than once within a single alternative, so that repeated
// matches accumulate: lists for valued leaves, counters for flags and
// commands.
func (p *Pattern) fixRepeatingArguments() {
	for _, alternative := range p.transform().Children {
		leaves := alternative.Children
		for _, leaf := range leaves {
			if countPatterns(leaves, leaf) < 2 {
				continue
			}
			switch {
			case leaf.Kind == KindArgument || (leaf.Kind == KindOption && leaf.ArgCount > 0):
				switch leaf.Value.Kind() {
				case StringKind:
					leaf.Value = StringsValue(strings.Fields(leaf.Value.Str())...)
				case ListKind:
					// already accumulating
				default:
					leaf.Value = ListValue()
				}
			case leaf.Kind == KindCommand || (leaf.Kind == KindOption && leaf.ArgCount == 0):
				leaf.Value = IntValue(0)
			}
		}
	}
}

// transform expands the tree into an (almost) equivalent Either of
// Required bags, each bag one concrete selection of alternatives:
//
//	((-a | -b) (-c | -d)) => (-a -c | -a -d | -b -c | -b -d)
//
// Quirks: [-a] => (-a), (-a...) => (-a -a).
func (p *Pattern) transform() *Pattern {
	var result [][]*Pattern
	groups := [][]*Pattern{{p}}
	for len(groups) > 0 {
		children := groups[0]
		groups = groups[1:]
		var branch *Pattern
		at := -1
		for i, c := range children {
			if !c.Kind.IsLeaf() {
				branch = c
				at = i
				break
			}
		}
		if branch == nil {
			result = append(result, children)
			continue
		}
		children = removePattern(children, branch)
		// the expansion takes the branch's place, keeping sibling order
		splice := func(expanded []*Pattern) []*Pattern {
			group := append(append([]*Pattern{}, children[:at]...), expanded...)
			return append(group, children[at:]...)
		}
		switch branch.Kind {
		case KindEither:
			for _, c := range branch.Children {
				groups = append(groups, splice([]*Pattern{c}))
			}
		case KindOneOrMore:
			groups = append(groups, splice(doublePatterns(branch.Children)))
		default:
			groups = append(groups, splice(branch.Children))
		}
	}
	either := make([]*Pattern, len(result))
	for i, bag := range result {
		either[i] = NewRequired(bag...)
	}
	return NewEither(either...)
}

// uniquePatterns drops duplicates, preserving first-seen order. Patterns
// dedup by display form.
func uniquePatterns(ps []*Pattern) []*Pattern {
	seen := make(map[string]bool, len(ps))
	var result []*Pattern
	for _, p := range ps {
		key := p.String()
		if !seen[key] {
			seen[key] = true
			result = append(result, p)
		}
	}
	return result
}

// diffPatterns removes one occurrence from ps for each structurally equal
// entry of remove.
func diffPatterns(ps, remove []*Pattern) []*Pattern {
	pool := make([]*Pattern, len(remove))
	copy(pool, remove)
	result := make([]*Pattern, 0, len(ps))
	for _, p := range ps {
		matched := false
		for i, r := range pool {
			if r != nil && r.eq(p) {
				pool[i] = nil
				matched = true
				break
			}
		}
		if !matched {
			result = append(result, p)
		}
	}
	return result
}

func removePattern(ps []*Pattern, p *Pattern) []*Pattern {
	return diffPatterns(ps, []*Pattern{p})
}

func countPatterns(ps []*Pattern, p *Pattern) int {
	n := 0
	for _, c := range ps {
		if c.eq(p) {
			n++
		}
	}
	return n
}

func doublePatterns(ps []*Pattern) []*Pattern {
	result := make([]*Pattern, 0, len(ps)*2)
	result = append(result, ps...)
	result = append(result, ps...)
	return result
}
