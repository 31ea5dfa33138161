package lang

import (
	"reflect"
	"slices"
	"testing"
)

func TestSymbol_Truthy(t *testing.T) {
	tests := []struct {
		name string
		sym  Symbol
		want bool
	}{
		{"false", False(), false},
		{"text false", Scalar("false"), true},
		{"empty", Scalar(""), true},
		{"zero", Scalar("0"), true},
		{"list", List(), true},
		{"dictionary", Dictionary(nil), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sym.Truthy(); got != tt.want {
				t.Errorf("Truthy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSymbol_Native(t *testing.T) {
	tests := []struct {
		sym  Symbol
		want any
	}{
		{Scalar("x"), "x"},
		{False(), false},
		{List("a", "b"), []string{"a", "b"}},
		{Dictionary(map[string]string{"k": "v"}), map[string]string{"k": "v"}},
	}

	for _, tt := range tests {
		t.Run(tt.sym.Kind.String(), func(t *testing.T) {
			if got := tt.sym.Native(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Native() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestSymbol_Copies(t *testing.T) {
	items := []string{"a", "b"}
	list := List(items...)
	items[0] = "changed"

	if got := list.Items(); got[0] != "a" {
		t.Errorf("List aliases its argument: %q", got)
	}

	list.Items()[1] = "changed"
	if got := list.Items(); got[1] != "b" {
		t.Errorf("Items aliases the symbol: %q", got)
	}

	if Scalar("x").Items() != nil || Scalar("x").Pairs() != nil {
		t.Error("scalar has items or pairs")
	}

	if List("a").String() != "" {
		t.Error("list has a printable form")
	}
}

func TestTable_Bind(t *testing.T) {
	table := Table{"p": Scalar("outer")}

	restore := table.bind("p", Scalar("inner"))
	if got := table["p"].String(); got != "inner" {
		t.Fatalf("bound p = %q", got)
	}

	restore()

	if got := table["p"].String(); got != "outer" {
		t.Errorf("restored p = %q, want outer", got)
	}

	restore = table.bind("q", Scalar("new"))
	restore()

	if _, ok := table.Lookup("q"); ok {
		t.Error("q still defined after restore")
	}
}

func TestTable_Names(t *testing.T) {
	table := Table{"b": Scalar(""), "a": Scalar(""), "c": Scalar("")}

	if got := table.Names(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Names() = %q", got)
	}
}
