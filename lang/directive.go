package lang

import (
	"regexp"
	"strings"
)

// DirectiveKind classifies a logical line.
type DirectiveKind int

const (
	// DirectiveLiteral is text emitted after substitution.
	DirectiveLiteral DirectiveKind = iota
	// DirectiveNoop is the line "!", which emits nothing.
	DirectiveNoop
	// DirectiveIf opens a conditional block.
	DirectiveIf
	// DirectiveUnless separates the branches of a conditional block.
	DirectiveUnless
	// DirectiveEndif closes a conditional block.
	DirectiveEndif
	// DirectiveForeach opens a loop block.
	DirectiveForeach
	// DirectiveEndfor closes a loop block.
	DirectiveEndfor
	// DirectiveMalformed is an if or foreach line that does not parse.
	DirectiveMalformed
	// DirectiveUnknown is any other line starting with '#'. It is ignored.
	DirectiveUnknown
)

// String returns the name of the directive kind.
func (k DirectiveKind) String() string {
	switch k {
	case DirectiveLiteral:
		return "literal"
	case DirectiveNoop:
		return "noop"
	case DirectiveIf:
		return "if"
	case DirectiveUnless:
		return "unless"
	case DirectiveEndif:
		return "endif"
	case DirectiveForeach:
		return "foreach"
	case DirectiveEndfor:
		return "endfor"
	case DirectiveMalformed:
		return "malformed"
	case DirectiveUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Directive is a classified logical line.
type Directive struct {
	Kind DirectiveKind
	// Name is the condition of an if, or the iterable of a foreach.
	Name string
	// Var is the loop variable clause of a foreach.
	Var string
	// Keyword is the directive a malformed line was attempting ("if" or
	// "foreach").
	Keyword string
	// Line is the trimmed source line.
	Line string
}

const (
	directivePrefix = "#"
	noopLine        = "!"
)

var (
	ifPattern      = regexp.MustCompile(`(?i)^#\s*if\s+([A-Za-z0-9_]+)\s*$`)
	foreachPattern = regexp.MustCompile(`(?i)^#\s*foreach\s+([A-Za-z0-9_,]+)\s+in\s+([A-Za-z0-9_]+)`)
	unlessPattern  = regexp.MustCompile(`(?i)^#\s*unless\s*$`)
	endifPattern   = regexp.MustCompile(`(?i)^#\s*endif\s*$`)
	endforPattern  = regexp.MustCompile(`(?i)^#\s*endfor\s*$`)
)

// Recognize classifies one logical line. Surrounding whitespace is ignored.
//
// Keywords are case-insensitive and may be separated from the '#' by
// whitespace. A line whose keyword begins with "if" or "foreach" but does
// not match that directive's syntax is [DirectiveMalformed].
func Recognize(line string) Directive {
	line = strings.TrimSpace(line)
	d := Directive{Kind: DirectiveLiteral, Line: line}

	if line == noopLine {
		d.Kind = DirectiveNoop

		return d
	}

	if !strings.HasPrefix(line, directivePrefix) {
		return d
	}

	keyword := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, directivePrefix)))

	switch {
	case strings.HasPrefix(keyword, "foreach"):
		m := foreachPattern.FindStringSubmatch(line)
		if m == nil {
			d.Kind, d.Keyword = DirectiveMalformed, "foreach"

			return d
		}

		d.Kind, d.Var, d.Name = DirectiveForeach, m[1], m[2]

	case strings.HasPrefix(keyword, "if"):
		m := ifPattern.FindStringSubmatch(line)
		if m == nil {
			d.Kind, d.Keyword = DirectiveMalformed, "if"

			return d
		}

		d.Kind, d.Name = DirectiveIf, m[1]

	case unlessPattern.MatchString(line):
		d.Kind = DirectiveUnless

	case endifPattern.MatchString(line):
		d.Kind = DirectiveEndif

	case endforPattern.MatchString(line):
		d.Kind = DirectiveEndfor

	default:
		d.Kind = DirectiveUnknown
	}

	return d
}

// opens reports whether d starts a block that has a closing directive.
func (d Directive) opens() bool {
	return d.Kind == DirectiveIf || d.Kind == DirectiveForeach
}

// closes reports whether d ends a block.
func (d Directive) closes() bool {
	return d.Kind == DirectiveEndif || d.Kind == DirectiveEndfor
}
