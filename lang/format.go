package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes t in definitions syntax, one NAME = VALUE line per symbol
// in name order. Dictionary pairs are written in key order.
//
// The output parses back into an equal table with [ParseDefinitions] as
// long as scalar values contain no commas and lists have more than one
// element.
func (t Table) Format(_ context.Context, w io.Writer) error {
	for _, name := range t.Names() {
		if _, err := fmt.Fprintf(w, "%s %s %s\n",
			name, assignSep, formatSymbol(t[name])); err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes t as a JSON object. A positive indent pretty-prints it.
func (t Table) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(t.ToMap(), "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(t.ToMap())
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes t as a YAML mapping. A positive indent selects block
// style with that indentation, otherwise flow style is used.
func (t Table) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, t.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// ToMap returns t as plain Go values (see [Symbol.Native]).
func (t Table) ToMap() map[string]any {
	m := make(map[string]any, len(t))
	for name, sym := range t {
		m[name] = sym.Native()
	}

	return m
}

func formatSymbol(sym Symbol) string {
	switch sym.Kind {
	case KindList:
		return strings.Join(sym.items, itemSep)

	case KindDictionary:
		keys := slices.Sorted(maps.Keys(sym.pairs))
		pairs := make([]string, len(keys))

		for i, k := range keys {
			pairs[i] = k + pairSep + sym.pairs[k]
		}

		return strings.Join(pairs, itemSep)

	default:
		return sym.String()
	}
}
