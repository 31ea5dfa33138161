package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
)

const defaultEditor = "vi"

// editCommand implements [tea.ExecCommand]. It writes the content of one
// pane to a temporary file, opens the user's $EDITOR on it, and reads the
// result back.
type editCommand struct {
	ctxFunc func() context.Context
	pattern string
	content string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run edits the content in place. On error the content is unchanged.
func (c *editCommand) Run() error {
	f, err := os.CreateTemp(os.TempDir(), c.pattern)
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Chmod(0o600); err != nil {
		f.Close()

		return err
	}

	if _, err := f.WriteString(c.content); err != nil {
		f.Close()

		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	cmd := exec.CommandContext(c.ctxFunc(), editorCommand(), tmpPath)
	cmd.Stdin = c.stdin
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr

	if err := cmd.Run(); err != nil {
		return err
	}

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return err
	}

	c.content = strings.TrimSuffix(string(data), "\n")

	return nil
}

// editorCommand returns the user's preferred editor.
func editorCommand() string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if editor := os.Getenv(env); editor != "" {
			return editor
		}
	}

	return defaultEditor
}
