package docopt

import (
	"encoding/json"
	"fmt"
)

// NodeKind classifies a discovered leaf.
type NodeKind int

const (
	ArgumentNode NodeKind = iota
	OptionNode
	CommandNode
)

func (k NodeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k NodeKind) String() string {
	switch k {
	case ArgumentNode:
		return "argument"
	case OptionNode:
		return "option"
	case CommandNode:
		return "command"
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// ValueType is the shape of the value a node produces on a successful
// match: a flag or command yields Bool, a repeating leaf yields List,
// anything else yields String.
type ValueType int

const (
	BoolType ValueType = iota
	ListType
	StringType
)

func (t ValueType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t ValueType) String() string {
	switch t {
	case BoolType:
		return "bool"
	case ListType:
		return "list"
	case StringType:
		return "string"
	}
	return fmt.Sprintf("ValueType(%d)", int(t))
}

// Node describes one option, argument or command discovered in the doc.
type Node struct {
	Name string    `json:"name"`
	Kind NodeKind  `json:"kind"`
	Type ValueType `json:"type"`
}

// Nodes parses the doc and reports every leaf of the fully normalized
// usage pattern, one entry per distinct name in tree order.
func Nodes(doc string) ([]Node, error) {
	pat, err := FixedPattern(doc)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var nodes []Node
	for _, leaf := range pat.flat() {
		if seen[leaf.Name] {
			continue
		}
		seen[leaf.Name] = true
		nodes = append(nodes, Node{
			Name: leaf.Name,
			Kind: nodeKind(leaf),
			Type: valueType(leaf),
		})
	}
	return nodes, nil
}

// FixedPattern builds the fully normalized pattern tree for a doc: usage
// parsed, options shortcut populated, identities and repeating arguments
// fixed. This is the tree Apply matches against, minus any argv influence.
func FixedPattern(doc string) (*Pattern, error) {
	usageSections := parseSection("usage:", doc)
	if len(usageSections) == 0 {
		return nil, languageErrorf(`"usage:" (case-insensitive) not found`)
	}
	if len(usageSections) > 1 {
		return nil, languageErrorf(`more than one "usage:" (case-insensitive)`)
	}

	options := newOptionSet(parseDefaults(doc))
	pat, err := parsePattern(formalUsage(usageSections[0]), options)
	if err != nil {
		return nil, err
	}
	patternOptions := uniquePatterns(pat.flat(KindOption))
	for _, shortcut := range pat.flat(KindOptionsShortcut) {
		docOptions := uniquePatterns(parseDefaults(doc))
		shortcut.Children = diffPatterns(docOptions, patternOptions)
	}
	pat.fix()
	return pat, nil
}

func nodeKind(leaf *Pattern) NodeKind {
	switch leaf.Kind {
	case KindOption:
		return OptionNode
	case KindCommand:
		return CommandNode
	default:
		return ArgumentNode
	}
}

func valueType(leaf *Pattern) ValueType {
	switch {
	case leaf.Value.Kind() == ListKind:
		return ListType
	case leaf.Kind == KindCommand:
		return BoolType
	case leaf.Kind == KindOption && leaf.ArgCount == 0:
		return BoolType
	default:
		return StringType
	}
}
