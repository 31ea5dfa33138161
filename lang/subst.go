package lang

import (
	"log/slog"
	"regexp"
	"strings"
)

// placeholder matches <NAME> tokens in literal lines.
var placeholder = regexp.MustCompile(`<([A-Za-z0-9_]+)>`)

// Substitute replaces every <NAME> placeholder in line with the value of
// the scalar NAME. The index of line in its program is only used in errors.
//
// Placeholders are resolved left to right; each distinct token is replaced
// everywhere it occurs. Referring to an undefined name, a list or a
// dictionary is an error.
func (t Table) Substitute(line string, index int) (string, error) {
	matches := placeholder.FindAllStringSubmatch(line, -1)
	if matches == nil {
		return line, nil
	}

	done := make(map[string]struct{}, len(matches))

	for _, m := range matches {
		token, name := m[0], m[1]

		if _, ok := done[token]; ok {
			continue
		}

		done[token] = struct{}{}

		sym, ok := t[name]
		if !ok {
			return "", undefinedError(ErrUndefinedVariable, t, name, index)
		}

		switch sym.Kind {
		case KindScalar:
			line = strings.ReplaceAll(line, token, sym.String())

		case KindList:
			return "", ErrCannotPrintList.With(
				slog.String("name", name),
				slog.Int("line", index),
			)

		case KindDictionary:
			return "", ErrCannotPrintDictionary.With(
				slog.String("name", name),
				slog.Int("line", index),
			)

		default:
			return "", ErrUnhandledSymbolType.With(
				slog.String("name", name),
				slog.String("kind", sym.Kind.String()),
				slog.Int("line", index),
			)
		}
	}

	return line, nil
}
