package lang

import (
	"maps"
	"slices"
)

// Kind identifies the shape of a [Symbol].
type Kind int

const (
	// KindScalar is a single string, or the boolean false.
	KindScalar Kind = iota
	// KindList is an ordered sequence of strings.
	KindList
	// KindDictionary is an unordered mapping of string keys to strings.
	KindDictionary
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindDictionary:
		return "dictionary"
	default:
		return "unknown"
	}
}

// falseToken is the only raw definition value parsed as a boolean.
const falseToken = "false"

// Symbol is a tagged value bound to a name in a [Table].
// Only the fields matching Kind are meaningful.
type Symbol struct {
	Kind Kind

	text  string            // KindScalar
	falsy bool              // KindScalar holding boolean false
	items []string          // KindList
	pairs map[string]string // KindDictionary
}

// Scalar returns a string scalar.
func Scalar(s string) Symbol {
	return Symbol{Kind: KindScalar, text: s}
}

// False returns the boolean false scalar.
func False() Symbol {
	return Symbol{Kind: KindScalar, text: falseToken, falsy: true}
}

// List returns a list symbol holding a copy of items.
func List(items ...string) Symbol {
	return Symbol{Kind: KindList, items: slices.Clone(items)}
}

// Dictionary returns a dictionary symbol holding a copy of pairs.
func Dictionary(pairs map[string]string) Symbol {
	return Symbol{Kind: KindDictionary, pairs: maps.Clone(pairs)}
}

// String returns the printable form of a scalar. Boolean false prints as
// "false". Lists and dictionaries have no printable form and yield "".
func (s Symbol) String() string {
	if s.Kind != KindScalar {
		return ""
	}

	return s.text
}

// IsFalse reports whether s is the boolean false scalar.
func (s Symbol) IsFalse() bool { return s.Kind == KindScalar && s.falsy }

// Truthy reports whether s passes an #if test. Every symbol is truthy
// except the boolean false scalar; the empty string and the string "false"
// written any other way are truthy.
func (s Symbol) Truthy() bool { return !s.IsFalse() }

// Items returns a copy of the elements of a list, in definition order.
func (s Symbol) Items() []string {
	if s.Kind != KindList {
		return nil
	}

	return slices.Clone(s.items)
}

// Pairs returns a copy of the entries of a dictionary.
func (s Symbol) Pairs() map[string]string {
	if s.Kind != KindDictionary {
		return nil
	}

	return maps.Clone(s.pairs)
}

// Native returns s as a plain Go value: string or bool for scalars,
// []string for lists and map[string]string for dictionaries.
func (s Symbol) Native() any {
	switch s.Kind {
	case KindScalar:
		if s.falsy {
			return false
		}

		return s.text

	case KindList:
		return s.Items()

	case KindDictionary:
		return s.Pairs()

	default:
		return nil
	}
}

// Equal reports whether s and t have the same kind and contents.
func (s Symbol) Equal(t Symbol) bool {
	if s.Kind != t.Kind {
		return false
	}

	switch s.Kind {
	case KindScalar:
		return s.falsy == t.falsy && s.text == t.text
	case KindList:
		return slices.Equal(s.items, t.items)
	case KindDictionary:
		return maps.Equal(s.pairs, t.pairs)
	default:
		return true
	}
}

// Table maps variable names to symbols.
type Table map[string]Symbol

// Lookup returns the symbol bound to name.
func (t Table) Lookup(name string) (Symbol, bool) {
	sym, ok := t[name]

	return sym, ok
}

// Names returns the defined names in sorted order.
func (t Table) Names() []string {
	return slices.Sorted(maps.Keys(t))
}

// Clone returns a shallow copy of t. Symbols are immutable, so the copy is
// fully independent.
func (t Table) Clone() Table {
	return maps.Clone(t)
}

// bind installs sym under name and returns a function that undoes it,
// restoring any binding it shadowed.
func (t Table) bind(name string, sym Symbol) (restore func()) {
	prev, shadowed := t[name]
	t[name] = sym

	return func() {
		if shadowed {
			t[name] = prev
		} else {
			delete(t, name)
		}
	}
}
