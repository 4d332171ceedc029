package jsdoc

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CodeFormatter formats the body of an @example tag. Implementations return
// the code with every non-blank line prefixed by indent and without leading
// or trailing blank lines.
type CodeFormatter interface {
	FormatCode(ctx context.Context, code, indent string) (string, error)
}

// IndentFormatter re-indents example code without otherwise changing it.
type IndentFormatter struct{}

// FormatCode implements [CodeFormatter].
func (IndentFormatter) FormatCode(_ context.Context, code, indent string) (string, error) {
	return reindent(code, indent), nil
}

// ExecFormatter pipes example code through an external formatter command,
// such as "prettier --stdin-filepath example.js", and re-indents its output.
type ExecFormatter struct {
	// Command is the program followed by its arguments.
	Command []string
	// Dir is the working directory of the command.
	Dir string
}

// FormatCode implements [CodeFormatter].
func (f ExecFormatter) FormatCode(ctx context.Context, code, indent string) (string, error) {
	if len(f.Command) == 0 {
		return "", fmt.Errorf("%w: empty command", ErrInvalidOption)
	}

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, f.Command[0], f.Command[1:]...) //nolint:gosec // Command from user config is expected.
	cmd.Dir = f.Dir
	cmd.Stdin = strings.NewReader(reindent(code, ""))
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return "", fmt.Errorf("%s: %w: %s", f.Command[0], err, strings.TrimSpace(stderr.String()))
	}

	return reindent(stdout.String(), indent), nil
}

// reindent drops leading and trailing blank lines, removes the indentation
// common to all non-blank lines and prefixes them with indent.
func reindent(code, indent string) string {
	lines := strings.Split(strings.ReplaceAll(code, "\r\n", "\n"), "\n")

	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}

	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	common := -1

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if common < 0 || n < common {
			common = n
		}
	}

	for i, line := range lines {
		switch {
		case strings.TrimSpace(line) == "":
			lines[i] = ""
		default:
			lines[i] = indent + strings.TrimRight(line[max(common, 0):], " \t")
		}
	}

	return strings.Join(lines, "\n")
}
