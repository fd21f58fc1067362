package docopt

import (
	"regexp"
	"strings"
)

// tokens is a cursor over a token stream: an index into a slice with
// current/move access. It also records which kind of input it is reading,
// because a bad token in a usage pattern is the programmer's fault while a
// bad token in argv is the user's, and because long-option prefix matching
// is only allowed when reading argv.
type tokens struct {
	src  []string
	pos  int
	argv bool
}

func newTokens(src []string, argv bool) *tokens {
	return &tokens{src: src, argv: argv}
}

var (
	patternPunct = regexp.MustCompile(`([\[\]\(\)\|]|\.\.\.)`)
	patternSplit = regexp.MustCompile(`\s+|(\S*<.*?>)`)
)

// tokensFromPattern splits a formal usage expression into pattern tokens:
// brackets, parens, pipes and ellipses become tokens of their own, and
// <angle bracketed> names survive as single tokens even when they contain
// spaces.
func tokensFromPattern(source string) *tokens {
	source = patternPunct.ReplaceAllString(source, ` $1 `)
	split := patternSplit.Split(source, -1)
	match := patternSplit.FindAllStringSubmatch(source, -1)
	var result []string
	for i, s := range split {
		if len(s) > 0 {
			result = append(result, s)
		}
		if i < len(split)-1 && len(match[i][1]) > 0 {
			result = append(result, match[i][1])
		}
	}
	return newTokens(result, false)
}

// more reports whether any tokens remain.
func (t *tokens) more() bool {
	return t.pos < len(t.src)
}

// current returns the token under the cursor, or "" when exhausted. Use
// more to distinguish an empty token from the end of the stream.
func (t *tokens) current() string {
	if !t.more() {
		return ""
	}
	return t.src[t.pos]
}

// move returns the current token and advances past it.
func (t *tokens) move() string {
	tok := t.current()
	if t.more() {
		t.pos++
	}
	return tok
}

// rest returns the remaining tokens, including the current one.
func (t *tokens) rest() []string {
	return t.src[t.pos:]
}

// currentIs reports whether the current token equals one of the given
// strings. atEnd is the result when the stream is exhausted.
func (t *tokens) currentIs(atEnd bool, choices ...string) bool {
	if !t.more() {
		return atEnd
	}
	cur := t.current()
	for _, c := range choices {
		if cur == c {
			return true
		}
	}
	return false
}

// errorf builds the error appropriate to what the cursor is reading: a
// UserError for argv, a LanguageError for a usage pattern.
func (t *tokens) errorf(format string, args ...any) error {
	if t.argv {
		return userErrorf(format, args...)
	}
	return languageErrorf(format, args...)
}

func isUpperToken(s string) bool {
	hasLetter := false
	for _, r := range s {
		if 'a' <= r && r <= 'z' {
			return false
		}
		if 'A' <= r && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

func isAngleToken(s string) bool {
	return strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">")
}
