package lang

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "message only",
			err:  ErrUndefinedVariable,
			want: "undefined variable",
		},
		{
			name: "with attributes",
			err:  ErrUndefinedVariable.With(slog.String("name", "var"), slog.Int("line", 0)),
			want: "undefined variable [name=var line=0]",
		},
		{
			name: "wrapped",
			err:  ErrReadInput.Wrap(io.ErrUnexpectedEOF),
			want: "failed to read input: unexpected EOF",
		},
		{
			name: "wrapped with attributes",
			err:  ErrReadInput.Wrap(io.ErrUnexpectedEOF).With(slog.String("source", "program")),
			want: "failed to read input [source=program]: unexpected EOF",
		},
		{
			name: "foreign error",
			err:  WrapError(io.EOF),
			want: "EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_With(t *testing.T) {
	base := ErrDuplicateVariable.With(slog.String("name", "a"))
	derived := base.With(slog.Int("line", 4))

	if _, ok := base.Attr("line"); ok {
		t.Error("With modified the receiver")
	}

	if v, ok := derived.Attr("name"); !ok || v.String() != "a" {
		t.Errorf("derived name = %v", v)
	}

	if !errors.Is(derived, ErrDuplicateVariable) {
		t.Error("derived error does not match its sentinel")
	}

	if errors.Is(derived, ErrUndefinedVariable) {
		t.Error("derived error matches an unrelated sentinel")
	}
}

func TestError_Unwrap(t *testing.T) {
	err := ErrReadInput.Wrap(io.ErrUnexpectedEOF)

	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("cause not reachable through errors.Is")
	}

	if !errors.Is(err, ErrReadInput) {
		t.Error("wrapped error does not match its sentinel")
	}
}

func TestWrapError(t *testing.T) {
	orig := ErrCannotPrintList.With(slog.String("name", "l"))

	if got := WrapError(orig); got != orig {
		t.Error("WrapError did not return the existing *Error")
	}

	foreign := WrapError(io.EOF)
	if !errors.Is(foreign, io.EOF) {
		t.Error("WrapError lost the foreign cause")
	}
}

func TestError_LogValue(t *testing.T) {
	err := ErrReadInput.Wrap(io.EOF).With(slog.String("source", "definitions"))

	v := err.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("LogValue kind = %v, want group", v.Kind())
	}

	got := map[string]string{}
	for _, a := range v.Group() {
		got[a.Key] = a.Value.String()
	}

	want := map[string]string{
		"error":  "failed to read input",
		"cause":  "EOF",
		"source": "definitions",
	}

	for k, w := range want {
		if got[k] != w {
			t.Errorf("%s = %q, want %q", k, got[k], w)
		}
	}
}
