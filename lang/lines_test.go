package lang

import (
	"slices"
	"testing"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Program
	}{
		{
			name:  "empty",
			input: "",
			want:  Program{""},
		},
		{
			name:  "trims lines",
			input: "  first  \n\tsecond\t",
			want:  Program{"first", "second"},
		},
		{
			name:  "trims whole text",
			input: "\n\n  first\n\n",
			want:  Program{"first"},
		},
		{
			name:  "keeps interior blank lines",
			input: "a\n\nb",
			want:  Program{"a", "", "b"},
		},
		{
			name:  "continuation",
			input: "line 1\nline 2 part 1 \\\nline 2 part 2",
			want:  Program{"line 1", "line 2 part 1 line 2 part 2"},
		},
		{
			name:  "chained continuation",
			input: "a\\\nb\\\nc\nd",
			want:  Program{"abc", "d"},
		},
		{
			name:  "continued line is trimmed before joining",
			input: "a \\\n   b",
			want:  Program{"a b"},
		},
		{
			name:  "continuation on last line",
			input: "a\nb\\",
			want:  Program{"a", "b\\"},
		},
		{
			name:  "crlf input",
			input: "a\r\nb\r\n",
			want:  Program{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Preprocess(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Preprocess(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestAssemble(t *testing.T) {
	tests := []struct {
		lines []string
		want  string
	}{
		{nil, ""},
		{[]string{"a"}, "a"},
		{[]string{"a", "b", ""}, "a\r\nb\r\n"},
	}

	for _, tt := range tests {
		if got := Assemble(tt.lines); got != tt.want {
			t.Errorf("Assemble(%q) = %q, want %q", tt.lines, got, tt.want)
		}
	}
}
