package docopt

import (
	"regexp"
	"strings"
)

// parseSection finds every block of the doc whose first line mentions name
// (case-insensitively) and accretes the indented lines that follow it.
func parseSection(name, source string) []string {
	re := regexp.MustCompile(`(?im)^([^\n]*` + regexp.QuoteMeta(name) + `[^\n]*\n?(?:[ \t].*?(?:\n|$))*)`)
	var sections []string
	for _, s := range re.FindAllString(source, -1) {
		sections = append(sections, strings.TrimSpace(s))
	}
	return sections
}

// formalUsage rewrites a usage section into a single pattern expression.
// The first token after the "usage:" marker is the program name; each
// later occurrence of it starts another alternative, so
//
//	usage: prog run <file>
//	       prog stop
//
// becomes "( run <file> ) | ( stop )".
func formalUsage(section string) string {
	_, _, section = partition(section, ":")
	tokens := strings.Fields(section)

	var b strings.Builder
	b.WriteString("( ")
	for _, tok := range tokens[1:] {
		if tok == tokens[0] {
			b.WriteString(") | ( ")
		} else {
			b.WriteString(tok + " ")
		}
	}
	b.WriteString(")")
	return b.String()
}

var optionLead = regexp.MustCompile(`\n[ \t]*(-\S+?)`)

// parseDefaults reads every options: section into option prototypes, one
// per description line that begins with a dash.
func parseDefaults(doc string) []*Pattern {
	var defaults []*Pattern
	for _, section := range parseSection("options:", doc) {
		_, _, body := partition(section, ":")
		split := optionLead.Split("\n"+body, -1)[1:]
		match := optionLead.FindAllStringSubmatch("\n"+body, -1)
		for i := range split {
			desc := match[i][1] + split[i]
			if strings.HasPrefix(desc, "-") {
				defaults = append(defaults, parseOption(desc))
			}
		}
	}
	return defaults
}

var defaultSpec = regexp.MustCompile(`(?i)\[default: (.*)\]`)

// parseOption reads one option description line. The option spec and its
// description are separated by two spaces; a "[default: X]" inside the
// description supplies the default for a valued option.
func parseOption(optionDescription string) *Pattern {
	optionDescription = strings.TrimSpace(optionDescription)
	spec, _, description := partition(optionDescription, "  ")
	spec = strings.ReplaceAll(spec, ",", " ")
	spec = strings.ReplaceAll(spec, "=", " ")

	var short, long string
	argCount := 0
	value := BoolValue(false)

	for _, s := range strings.Fields(spec) {
		switch {
		case strings.HasPrefix(s, "--"):
			long = s
		case strings.HasPrefix(s, "-"):
			short = s
		default:
			argCount = 1
		}
		if argCount > 0 {
			if m := defaultSpec.FindStringSubmatch(description); m != nil {
				value = StringValue(m[1])
			} else {
				value = NullValue()
			}
		}
	}
	return NewOption(short, long, argCount, value)
}

// partition splits s at the first occurrence of sep, like Python's
// str.partition.
func partition(s, sep string) (before, mid, after string) {
	i := strings.Index(s, sep)
	if i == -1 {
		return s, "", ""
	}
	return s[:i], sep, s[i+len(sep):]
}
