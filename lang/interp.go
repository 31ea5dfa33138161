package lang

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/lmx/log"
)

// machine is the state of one run: the program, the symbol table it may
// temporarily extend with loop bindings, and the output buffer.
//
// Every method that consumes lines takes the index of the first line and
// returns the index of the next line to execute.
type machine struct {
	ctx    context.Context
	prog   Program
	table  Table
	out    []string
	logger log.Logger
	strict bool
}

// run executes the whole program from the first line.
func (m *machine) run() error {
	for i := 0; i < len(m.prog); {
		next, err := m.step(i)
		if err != nil {
			return err
		}

		i = next
	}

	return nil
}

// step executes the line at index i, including the whole block when the
// line opens one.
func (m *machine) step(i int) (int, error) {
	return m.exec(i, Recognize(m.prog[i]))
}

func (m *machine) exec(i int, d Directive) (int, error) {
	m.logger.TraceContext(m.ctx, "line",
		slog.Int("index", i),
		slog.String("kind", d.Kind.String()),
	)

	switch d.Kind {
	case DirectiveLiteral:
		line, err := m.table.Substitute(d.Line, i)
		if err != nil {
			return i, err
		}

		m.out = append(m.out, line)

		return i + 1, nil

	case DirectiveIf:
		return m.execIf(i, d)

	case DirectiveForeach:
		return m.execForeach(i, d)

	case DirectiveMalformed:
		if m.strict {
			return i, ErrMalformedDirective.With(
				slog.String("directive", d.Keyword),
				slog.String("text", d.Line),
				slog.Int("line", i),
			)
		}

		m.logger.WarnContext(m.ctx, "cannot process line",
			slog.String("directive", d.Keyword),
			slog.String("text", d.Line),
			slog.Int("line", i),
		)

		return i + 1, nil

	case DirectiveUnless, DirectiveEndif, DirectiveEndfor:
		m.logger.DebugContext(m.ctx, "stray closing directive ignored",
			slog.String("directive", d.Kind.String()),
			slog.Int("line", i),
		)

		return i + 1, nil

	default: // noop and unknown directives
		return i + 1, nil
	}
}

// execIf runs the conditional opened by d at index i. The condition selects
// either the lines before a same-depth #unless, or the lines between it and
// #endif. The other branch is skipped without being executed.
func (m *machine) execIf(i int, d Directive) (int, error) {
	sym, ok := m.table.Lookup(d.Name)
	if !ok {
		return i, undefinedError(ErrUndefinedVariable, m.table, d.Name, i)
	}

	m.logger.TraceContext(m.ctx, "condition",
		slog.String("name", d.Name),
		slog.Bool("truthy", sym.Truthy()),
		slog.Int("line", i),
	)

	if sym.Truthy() {
		j, stop, err := m.execUntil(i+1, i, d, DirectiveUnless, DirectiveEndif)
		if err != nil {
			return j, err
		}

		if stop == DirectiveUnless {
			j, _, err = m.skipUntil(j+1, i, d, DirectiveEndif)
			if err != nil {
				return j, err
			}
		}

		return j + 1, nil
	}

	j, stop, err := m.skipUntil(i+1, i, d, DirectiveUnless, DirectiveEndif)
	if err != nil {
		return j, err
	}

	if stop == DirectiveUnless {
		j, _, err = m.execUntil(j+1, i, d, DirectiveEndif)
		if err != nil {
			return j, err
		}
	}

	return j + 1, nil
}

// execForeach unrolls the loop opened by d at index i, executing the body
// once per list element with the loop variable bound to the element.
func (m *machine) execForeach(i int, d Directive) (int, error) {
	if strings.Contains(d.Var, itemSep) {
		return i, ErrUnsupportedLoopVariables.With(
			slog.String("vars", d.Var),
			slog.Int("line", i),
		)
	}

	sym, ok := m.table.Lookup(d.Name)
	if !ok {
		return i, undefinedError(ErrUndefinedIterable, m.table, d.Name, i)
	}

	switch sym.Kind {
	case KindList:
	case KindScalar:
		return i, ErrCannotIterateScalar.With(
			slog.String("name", d.Name),
			slog.Int("line", i),
		)
	default:
		return i, ErrUnhandledSymbolType.With(
			slog.String("name", d.Name),
			slog.String("kind", sym.Kind.String()),
			slog.Int("line", i),
		)
	}

	m.logger.TraceContext(m.ctx, "loop",
		slog.String("var", d.Var),
		slog.String("name", d.Name),
		slog.Int("count", len(sym.items)),
		slog.Int("line", i),
	)

	body := i + 1

	if len(sym.items) == 0 {
		j, _, err := m.skipUntil(body, i, d, DirectiveEndfor)
		if err != nil {
			return j, err
		}

		return j + 1, nil
	}

	restore := m.table.bind(d.Var, Scalar(sym.items[0]))
	defer restore()

	var j int

	for _, item := range sym.items {
		m.table[d.Var] = Scalar(item)

		var err error

		j, _, err = m.execUntil(body, i, d, DirectiveEndfor)
		if err != nil {
			return j, err
		}
	}

	return j + 1, nil
}

// execUntil executes lines from index j until it reaches one of the stop
// directives, and returns that line's index and kind. Nested blocks are
// executed whole by step, so only same-depth directives can stop it.
// The block opened by open at index at is reported when the program ends
// first.
func (m *machine) execUntil(
	j, at int,
	open Directive,
	stops ...DirectiveKind,
) (int, DirectiveKind, error) {
	for {
		if j >= len(m.prog) {
			return j, 0, unterminated(open, at)
		}

		d := Recognize(m.prog[j])
		if slices.Contains(stops, d.Kind) {
			return j, d.Kind, nil
		}

		next, err := m.exec(j, d)
		if err != nil {
			return next, 0, err
		}

		j = next
	}
}

// skipUntil scans lines from index j without executing them until it
// reaches one of the stop directives at the same depth. Well-formed if and
// foreach lines inside the skipped region nest with their closers.
//
// This differs from stopping at the first closer of the right kind: a
// nested block's #unless or #endif never ends the outer block. With a false
// and this program
//
//	#if a
//	#if b
//	B
//	#unless
//	notB
//	#endif
//	A
//	#unless
//	notA
//	#endif
//
// the output is "notA" rather than the inner lines leaking through.
func (m *machine) skipUntil(
	j, at int,
	open Directive,
	stops ...DirectiveKind,
) (int, DirectiveKind, error) {
	depth := 0

	for ; j < len(m.prog); j++ {
		d := Recognize(m.prog[j])

		if depth == 0 && slices.Contains(stops, d.Kind) {
			return j, d.Kind, nil
		}

		switch {
		case d.opens():
			depth++
		case d.closes() && depth > 0:
			depth--
		}
	}

	return j, 0, unterminated(open, at)
}

func unterminated(open Directive, at int) *Error {
	return ErrUnterminatedBlock.With(
		slog.String("directive", open.Kind.String()),
		slog.String("text", open.Line),
		slog.Int("line", at),
	)
}
