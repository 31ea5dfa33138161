package editor

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// maxCandidates bounds the candidate bar.
const maxCandidates = 8

// directives are the completions offered after a leading '#'.
var directives = []string{"if", "unless", "endif", "foreach", "endfor"}

// completion is what the text before the cursor is asking for.
type completion struct {
	// word is the partial text being completed.
	word string
	// close is appended after an accepted candidate.
	close string
	// candidates are the matching names, best first.
	candidates []string
}

// isNameByte reports whether b may appear in a variable name.
func isNameByte(b byte) bool {
	return b == '_' ||
		('0' <= b && b <= '9') ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z')
}

// complete returns the completion for the text of the current line up to
// the cursor. Inside an unclosed <NAME placeholder it offers variable
// names; after a leading '#' it offers directive keywords.
func complete(before string, names []string) (completion, bool) {
	if i := strings.LastIndexByte(before, '<'); i >= 0 {
		word := before[i+1:]

		if isName(word) {
			return completion{
				word:       word,
				close:      ">",
				candidates: match(word, names),
			}, true
		}
	}

	trimmed := strings.TrimLeft(before, " \t")
	if rest, ok := strings.CutPrefix(trimmed, "#"); ok {
		word := strings.TrimLeft(rest, " \t")

		if isName(word) {
			return completion{
				word:       word,
				close:      " ",
				candidates: match(word, directives),
			}, true
		}
	}

	return completion{}, false
}

func isName(s string) bool {
	for i := range len(s) {
		if !isNameByte(s[i]) {
			return false
		}
	}

	return true
}

// match returns the fuzzy matches of word among names, or every name when
// word is empty.
func match(word string, names []string) []string {
	var out []string

	if word == "" {
		out = append(out, names...)
	} else {
		for _, m := range fuzzy.Find(word, names) {
			out = append(out, m.Str)
		}
	}

	if len(out) > maxCandidates {
		out = out[:maxCandidates]
	}

	return out
}
