package lang

import (
	"log/slog"
	"slices"

	"github.com/sahilm/fuzzy"
)

// maxSuggestions bounds the "did you mean" candidates attached to errors.
const maxSuggestions = 3

// Suggest returns up to three defined names resembling name, best first.
//
// A name is a candidate when either one is a fuzzy (in-order subsequence)
// match of the other, which catches both truncated and padded spellings.
func (t Table) Suggest(name string) []string {
	if name == "" || len(t) == 0 {
		return nil
	}

	names := t.Names()

	var out []string

	for _, m := range fuzzy.Find(name, names) {
		out = append(out, m.Str)
	}

	for _, cand := range names {
		if slices.Contains(out, cand) {
			continue
		}

		if len(fuzzy.Find(cand, []string{name})) > 0 {
			out = append(out, cand)
		}
	}

	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}

	return out
}

// undefinedError decorates an undefined-name sentinel with the name, the
// line index and any suggestions from t.
func undefinedError(sentinel *Error, t Table, name string, index int) *Error {
	err := sentinel.With(
		slog.String("name", name),
		slog.Int("line", index),
	)

	if sugg := t.Suggest(name); len(sugg) > 0 {
		err = err.With(slog.Any("suggest", sugg))
	}

	return err
}
