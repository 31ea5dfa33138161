package lang

import "testing"

func TestRecognize(t *testing.T) {
	tests := []struct {
		line string
		want Directive
	}{
		{"plain text", Directive{Kind: DirectiveLiteral}},
		{"", Directive{Kind: DirectiveLiteral}},
		{"!", Directive{Kind: DirectiveNoop}},
		{"  !  ", Directive{Kind: DirectiveNoop}},
		{"!!", Directive{Kind: DirectiveLiteral}},
		{"#if debug", Directive{Kind: DirectiveIf, Name: "debug"}},
		{"# IF  debug ", Directive{Kind: DirectiveIf, Name: "debug"}},
		{"#if", Directive{Kind: DirectiveMalformed, Keyword: "if"}},
		{"#if a b", Directive{Kind: DirectiveMalformed, Keyword: "if"}},
		{"#if a-b", Directive{Kind: DirectiveMalformed, Keyword: "if"}},
		{"#ifdef x", Directive{Kind: DirectiveMalformed, Keyword: "if"}},
		{"#unless", Directive{Kind: DirectiveUnless}},
		{"#  Unless", Directive{Kind: DirectiveUnless}},
		{"#unless x", Directive{Kind: DirectiveUnknown}},
		{"#endif", Directive{Kind: DirectiveEndif}},
		{"#ENDIF", Directive{Kind: DirectiveEndif}},
		{"#foreach p in list", Directive{Kind: DirectiveForeach, Var: "p", Name: "list"}},
		{"#ForEach p IN list", Directive{Kind: DirectiveForeach, Var: "p", Name: "list"}},
		{"#foreach p in list trailing", Directive{Kind: DirectiveForeach, Var: "p", Name: "list"}},
		{"#foreach a,b in pairs", Directive{Kind: DirectiveForeach, Var: "a,b", Name: "pairs"}},
		{"#foreach p list", Directive{Kind: DirectiveMalformed, Keyword: "foreach"}},
		{"#foreach", Directive{Kind: DirectiveMalformed, Keyword: "foreach"}},
		{"#endfor", Directive{Kind: DirectiveEndfor}},
		{"# endfor ", Directive{Kind: DirectiveEndfor}},
		{"#", Directive{Kind: DirectiveUnknown}},
		{"# a comment", Directive{Kind: DirectiveUnknown}},
		{"#endforeach", Directive{Kind: DirectiveUnknown}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := Recognize(tt.line)

			if got.Kind != tt.want.Kind {
				t.Fatalf("Recognize(%q).Kind = %v, want %v", tt.line, got.Kind, tt.want.Kind)
			}

			if got.Name != tt.want.Name || got.Var != tt.want.Var || got.Keyword != tt.want.Keyword {
				t.Errorf("Recognize(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestDirective_Nesting(t *testing.T) {
	tests := []struct {
		kind   DirectiveKind
		opens  bool
		closes bool
	}{
		{DirectiveLiteral, false, false},
		{DirectiveIf, true, false},
		{DirectiveForeach, true, false},
		{DirectiveUnless, false, false},
		{DirectiveEndif, false, true},
		{DirectiveEndfor, false, true},
		{DirectiveMalformed, false, false},
	}

	for _, tt := range tests {
		d := Directive{Kind: tt.kind}
		if d.opens() != tt.opens || d.closes() != tt.closes {
			t.Errorf("%v: opens=%v closes=%v, want %v %v",
				tt.kind, d.opens(), d.closes(), tt.opens, tt.closes)
		}
	}
}
