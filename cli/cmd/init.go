package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/lmx/lang"
	"github.com/ardnew/lmx/log"
	"github.com/ardnew/lmx/profile"
)

// Init generates a default configuration file with current flag values.
// The file is written in the definitions syntax, one flag per line.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ErrNoContext
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok || confPath == "" {
		return ErrWriteConfig.With(slog.String("var", ConfigIdentifier)).
			Wrap(ErrNoContext)
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}
	defer file.Close()

	table := buildTable(ktx)

	err = table.Format(ctx, file)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
		slog.Int("flags", len(table)),
	)

	return nil
}

// buildTable collects the current value of every application flag.
func buildTable(ktx *kong.Context) lang.Table {
	table := make(lang.Table)

	prefixIgnore := []string{"help", "version", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if sym, ok := flagSymbol(ktx.FlagValue(flag)); ok {
			table[flag.Name] = sym
		}
	}

	return table
}

// flagSymbol converts a flag value to the symbol written for it, or reports
// false if the flag is unset.
func flagSymbol(val any) (lang.Symbol, bool) {
	switch v := val.(type) {
	case nil:
		return lang.Symbol{}, false

	case bool:
		if !v {
			return lang.False(), true
		}

		return lang.Scalar(strconv.FormatBool(v)), true

	case string:
		if v == "" {
			return lang.Symbol{}, false
		}

		return lang.Scalar(v), true

	case []string:
		switch len(v) {
		case 0:
			return lang.Symbol{}, false
		case 1:
			return lang.Scalar(v[0]), true
		default:
			return lang.List(v...), true
		}

	case fmt.Stringer:
		return lang.Scalar(v.String()), true

	default:
		return lang.Scalar(fmt.Sprint(v)), true
	}
}
