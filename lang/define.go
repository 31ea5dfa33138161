package lang

import (
	"log/slog"
	"strings"
)

const (
	assignSep = "="
	itemSep   = ","
	pairSep   = ":"
)

// ParseDefinitions parses variable definitions into a [Table].
//
// Each non-blank line has the form NAME = VALUE. A value without a comma is
// a scalar; the literal value false is the boolean false. A comma-separated
// value is a list when none of its items contains a colon, and a dictionary
// of key:value pairs when all of them do.
func ParseDefinitions(src string) (Table, error) {
	table := make(Table)

	src = strings.TrimSpace(src)
	if src == "" {
		return table, nil
	}

	for i, line := range strings.Split(src, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		name, raw, ok := strings.Cut(line, assignSep)
		if !ok {
			return nil, ErrInvalidVariableDefinition.With(
				slog.String("definition", strings.TrimSpace(line)),
				slog.Int("line", i),
			)
		}

		name = strings.TrimSpace(name)

		if _, dup := table[name]; dup {
			return nil, ErrDuplicateVariable.With(
				slog.String("name", name),
				slog.Int("line", i),
			)
		}

		sym, err := classify(name, strings.TrimSpace(raw))
		if err != nil {
			return nil, WrapError(err).With(slog.Int("line", i))
		}

		table[name] = sym
	}

	return table, nil
}

// classify builds the symbol for one trimmed raw value.
func classify(name, raw string) (Symbol, error) {
	if !strings.Contains(raw, itemSep) {
		if raw == falseToken {
			return False(), nil
		}

		return Scalar(raw), nil
	}

	var (
		items []string
		pairs map[string]string
	)

	for _, item := range strings.Split(raw, itemSep) {
		key, val, isPair := strings.Cut(item, pairSep)

		if (isPair && items != nil) || (!isPair && pairs != nil) {
			return Symbol{}, ErrAmbiguousVariableType.With(
				slog.String("name", name),
			)
		}

		if !isPair {
			items = append(items, item)

			continue
		}

		if pairs == nil {
			pairs = make(map[string]string)
		}

		pairs[strings.TrimSpace(key)] = strings.TrimSpace(val)
	}

	if pairs != nil {
		return Symbol{Kind: KindDictionary, pairs: pairs}, nil
	}

	return Symbol{Kind: KindList, items: items}, nil
}
