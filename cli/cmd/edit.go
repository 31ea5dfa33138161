package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/ardnew/lmx/cli/cmd/editor"
	"github.com/ardnew/lmx/log"
)

// editorRun starts the interactive editor. Tests replace it.
var editorRun = editor.Run

// Edit opens an interactive editor with a program pane, a definitions pane
// and a live output pane.
type Edit struct {
	Program string `help:"Program file loaded into the editor." short:"p" type:"path"`
	Defs    string `help:"Definitions file loaded into the editor." short:"d" type:"path"`
	Output  string `help:"Write the final expansion to this file ('-' for stdout)." short:"o" type:"path"`
	Write   bool   `help:"Save the edited program and definitions back to their files." short:"w"`
	Strict  bool   `help:"Fail on malformed #if and #foreach directives."`
}

// Run executes the edit command.
func (e *Edit) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	program, err := readOptional(e.Program)
	if err != nil {
		return err
	}

	defs, err := readOptional(e.Defs)
	if err != nil {
		return err
	}

	session, err := editorRun(ctx,
		editor.Session{Program: program, Defs: defs},
		log.With(slog.String("command", "edit")),
		e.Strict,
	)
	if err != nil {
		return err
	}

	if e.Write {
		if err := e.save(ctx, session); err != nil {
			return err
		}
	}

	if e.Output != "" {
		return writeOutput(stdout, e.Output, session.Output+"\n")
	}

	return nil
}

func (e *Edit) save(ctx context.Context, s editor.Session) error {
	for _, f := range []struct{ path, data string }{
		{e.Program, s.Program},
		{e.Defs, s.Defs},
	} {
		if f.path == "" || f.path == stdinSource {
			continue
		}

		if err := writeOutput(nil, f.path, f.data); err != nil {
			return err
		}

		log.DebugContext(ctx, "saved editor pane", slog.String("file", f.path))
	}

	return nil
}

// readOptional reads the file at path. An empty path or a file that does
// not exist yet yields empty content.
func readOptional(path string) (string, error) {
	if path == "" || path == stdinSource {
		return "", nil
	}

	data, err := os.ReadFile(path)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", nil

	case err != nil:
		return "", ErrReadSource.With(slog.String("file", path)).Wrap(err)
	}

	return string(data), nil
}
