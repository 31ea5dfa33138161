package lang

import "strings"

// Terminator separates lines in the output of [Run].
const Terminator = "\r\n"

// continuation marks a physical line that continues on the next one.
const continuation = `\`

// Program is the sequence of logical lines of a template, indexed from 0.
type Program []string

// Preprocess splits src into logical lines.
//
// The whole text is trimmed, then split on newlines. Each physical line is
// trimmed, and a line ending in a backslash is joined with the line that
// follows it, without the backslash and without a separator. Joining is
// transitive, so a chain of continued lines becomes one logical line.
func Preprocess(src string) Program {
	phys := strings.Split(strings.TrimSpace(src), "\n")
	prog := make(Program, 0, len(phys))

	for _, line := range phys {
		line = strings.TrimSpace(line)

		if n := len(prog); n > 0 && strings.HasSuffix(prog[n-1], continuation) {
			prog[n-1] = strings.TrimSuffix(prog[n-1], continuation) + line

			continue
		}

		prog = append(prog, line)
	}

	return prog
}

// Assemble joins output lines with [Terminator].
func Assemble(lines []string) string {
	return strings.Join(lines, Terminator)
}
