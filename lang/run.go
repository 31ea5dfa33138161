package lang

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/lmx/log"
)

// Option configures a run.
type Option func(*machine)

// WithLogger sets the structured logger for trace-level debugging and
// malformed-directive warnings. If not provided, the logger is zero-valued
// and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(m *machine) {
		m.logger = logger
	}
}

// WithStrict makes malformed if and foreach directives fatal
// ([ErrMalformedDirective]) instead of logging a warning and skipping the
// line.
func WithStrict(strict bool) Option {
	return func(m *machine) {
		m.strict = strict
	}
}

// Run expands program using the variables defined in definitions and
// returns the output lines joined with [Terminator].
//
// Each call is independent: no state is shared between runs, and the first
// error aborts the run without partial output. Parsed definitions are
// cached by source text.
func Run(
	ctx context.Context,
	program, definitions string,
	opts ...Option,
) (string, error) {
	m := newMachine(ctx, opts...)

	table, err := parseDefinitionsCached(ctx, m.logger, definitions)
	if err != nil {
		return "", err
	}

	return m.execute(Preprocess(program), table)
}

// Execute expands an already preprocessed program with the symbols in
// table. The table is not modified.
func Execute(
	ctx context.Context,
	prog Program,
	table Table,
	opts ...Option,
) (string, error) {
	if table == nil {
		table = make(Table)
	}

	return newMachine(ctx, opts...).execute(prog, table.Clone())
}

// RunReader is like [Run] but reads the program and definitions from
// readers. A nil reader reads as empty.
func RunReader(
	ctx context.Context,
	program, definitions io.Reader,
	opts ...Option,
) (string, error) {
	prog, err := readAll(program, "program")
	if err != nil {
		return "", err
	}

	defs, err := readAll(definitions, "definitions")
	if err != nil {
		return "", err
	}

	return Run(ctx, prog, defs, opts...)
}

func newMachine(ctx context.Context, opts ...Option) *machine {
	m := &machine{ctx: ctx}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m
}

// execute runs prog against table, which the machine owns from now on.
func (m *machine) execute(prog Program, table Table) (string, error) {
	m.prog, m.table, m.out = prog, table, nil

	m.logger.TraceContext(m.ctx, "run start",
		slog.Int("program_lines", len(prog)),
		slog.Int("symbols", len(table)),
		slog.Bool("strict", m.strict),
	)

	if err := m.run(); err != nil {
		m.logger.DebugContext(m.ctx, "run failed", slog.Any("error", err))

		return "", err
	}

	m.logger.TraceContext(m.ctx, "run complete",
		slog.Int("output_lines", len(m.out)),
	)

	return Assemble(m.out), nil
}
