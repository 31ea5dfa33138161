package lang

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestParseDefinitions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Table
	}{
		{
			name:  "empty",
			input: "  \n\t\n",
			want:  Table{},
		},
		{
			name:  "scalar",
			input: "host = localhost",
			want:  Table{"host": Scalar("localhost")},
		},
		{
			name:  "scalar keeps inner spaces",
			input: "greeting =   hello  world  ",
			want:  Table{"greeting": Scalar("hello  world")},
		},
		{
			name:  "empty scalar",
			input: "e =",
			want:  Table{"e": Scalar("")},
		},
		{
			name:  "value with equals sign",
			input: "u = a=b",
			want:  Table{"u": Scalar("a=b")},
		},
		{
			name:  "false",
			input: "debug = false",
			want:  Table{"debug": False()},
		},
		{
			name:  "false is case-sensitive",
			input: "debug = False",
			want:  Table{"debug": Scalar("False")},
		},
		{
			name:  "list items are not trimmed",
			input: "l = a, b ,c",
			want:  Table{"l": List("a", " b ", "c")},
		},
		{
			name:  "list with empty items",
			input: "l = a,,b",
			want:  Table{"l": List("a", "", "b")},
		},
		{
			name:  "dictionary",
			input: "d = k1: v1, k2:v2",
			want:  Table{"d": Dictionary(map[string]string{"k1": "v1", "k2": "v2"})},
		},
		{
			name:  "dictionary splits on first colon",
			input: "d = a:1:2,b:3",
			want:  Table{"d": Dictionary(map[string]string{"a": "1:2", "b": "3"})},
		},
		{
			name:  "blank lines skipped",
			input: "a = 1\n\n   \nb = 2",
			want:  Table{"a": Scalar("1"), "b": Scalar("2")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDefinitions(tt.input)
			if err != nil {
				t.Fatalf("ParseDefinitions(%q) error: %v", tt.input, err)
			}

			if got == nil {
				t.Fatal("ParseDefinitions returned nil table")
			}

			if len(got) != len(tt.want) {
				t.Fatalf("got %d symbols, want %d", len(got), len(tt.want))
			}

			for name, want := range tt.want {
				sym, ok := got.Lookup(name)
				if !ok {
					t.Errorf("%q not defined", name)

					continue
				}

				if !sym.Equal(want) {
					t.Errorf("%q = %#v, want %#v", name, sym, want)
				}
			}
		})
	}
}

func TestParseDefinitions_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sentinel error
		attr     string
		want     string
		line     int64
	}{
		{
			name:     "missing equals",
			input:    "a = 1\n  nonsense  ",
			sentinel: ErrInvalidVariableDefinition,
			attr:     "definition",
			want:     "nonsense",
			line:     1,
		},
		{
			name:     "duplicate",
			input:    "a = 1\n\na = 2",
			sentinel: ErrDuplicateVariable,
			attr:     "name",
			want:     "a",
			line:     2,
		},
		{
			name:     "mixed list and dictionary",
			input:    "x=a:1,b",
			sentinel: ErrAmbiguousVariableType,
			attr:     "name",
			want:     "x",
			line:     0,
		},
		{
			name:     "mixed dictionary and list",
			input:    "ok = 1\nx = a,b:1",
			sentinel: ErrAmbiguousVariableType,
			attr:     "name",
			want:     "x",
			line:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ParseDefinitions(tt.input)
			if err == nil {
				t.Fatalf("expected error, got table %v", table)
			}

			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("error %v does not match %v", err, tt.sentinel)
			}

			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("error %T is not *Error", err)
			}

			if v, ok := e.Attr(tt.attr); !ok || v.String() != tt.want {
				t.Errorf("attr %q = %v, want %q", tt.attr, v, tt.want)
			}

			if v, ok := e.Attr("line"); !ok || v.Int64() != tt.line {
				t.Errorf("line = %v, want %d", v, tt.line)
			}
		})
	}
}

func TestParseDefinitions_ScalarRoundTrip(t *testing.T) {
	values := []string{"x", "hello world", "a:b", "<A>", "#if", "FALSE", "0", "true"}

	for _, v := range values {
		table, err := ParseDefinitions("v = " + v)
		if err != nil {
			t.Fatalf("parse %q: %v", v, err)
		}

		if got := table["v"].String(); got != v {
			t.Errorf("scalar %q parsed as %q", v, got)
		}
	}
}

// FuzzParseDefinitions checks that parsing never panics, that every failure
// is an *Error, and that any value without a comma or line break parses back
// to itself as a scalar.
func FuzzParseDefinitions(f *testing.F) {
	f.Add("x")
	f.Add("hello world")
	f.Add("a:b")
	f.Add("<A>")
	f.Add("#if")
	f.Add("FALSE")
	f.Add("false")
	f.Add("")
	f.Add("a = b = c")
	f.Add("one,two")
	f.Add("k:v,k2:v2")
	f.Add("a:1,b")
	f.Add("x = 1\nx = 2")

	f.Fuzz(func(t *testing.T, value string) {
		if !utf8.ValidString(value) {
			t.Skip("invalid UTF-8")
		}

		defer func() {
			if r := recover(); r != nil {
				t.Errorf("ParseDefinitions panicked on %q: %v", value, r)
			}
		}()

		if _, err := ParseDefinitions(value); err != nil {
			var e *Error
			if !errors.As(err, &e) {
				t.Errorf("error %T for %q is not *Error", err, value)
			}
		}

		if value != strings.TrimSpace(value) ||
			value == falseToken ||
			strings.ContainsAny(value, itemSep+"\n") {
			return
		}

		table, err := ParseDefinitions("v = " + value)
		if err != nil {
			t.Fatalf("scalar %q: %v", value, err)
		}

		sym, ok := table.Lookup("v")
		if !ok || sym.Kind != KindScalar || sym.IsFalse() {
			t.Fatalf("scalar %q parsed as %+v", value, sym)
		}

		if got := sym.String(); got != value {
			t.Errorf("scalar %q parsed as %q", value, got)
		}
	})
}
