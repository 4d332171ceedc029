package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"

	// Unchanged lines shown around each change.
	diffContext = 3
	// Lines searched ahead for a resynchronization point.
	diffLookahead = 5
)

var colorModes = []string{colorAuto, colorAlways, colorNever}

func (a *app) colorize() bool {
	switch a.color {
	case colorAlways:
		return true
	case colorNever:
		return false
	}

	f, ok := a.stdout.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit in int.
}

type diffLine struct {
	text string
	op   byte // ' ', '-', or '+'
}

// diffLines aligns a and b greedily, looking a few lines ahead to
// resynchronize after a change. Comment reformatting produces short local
// edits, which this handles well.
func diffLines(a, b []string) []diffLine {
	var out []diffLine

	ai, bi := 0, 0
	for ai < len(a) || bi < len(b) {
		switch {
		case ai >= len(a):
			out = append(out, diffLine{op: '+', text: b[bi]})
			bi++

		case bi >= len(b):
			out = append(out, diffLine{op: '-', text: a[ai]})
			ai++

		case a[ai] == b[bi]:
			out = append(out, diffLine{op: ' ', text: a[ai]})
			ai++
			bi++

		default:
			if n := lookahead(a[ai:], b[bi]); n > 0 {
				for _, line := range a[ai : ai+n] {
					out = append(out, diffLine{op: '-', text: line})
				}

				ai += n

				continue
			}

			if n := lookahead(b[bi:], a[ai]); n > 0 {
				for _, line := range b[bi : bi+n] {
					out = append(out, diffLine{op: '+', text: line})
				}

				bi += n

				continue
			}

			out = append(out,
				diffLine{op: '-', text: a[ai]},
				diffLine{op: '+', text: b[bi]},
			)
			ai++
			bi++
		}
	}

	return out
}

// lookahead returns the offset of want within the next few lines of lines,
// or 0.
func lookahead(lines []string, want string) int {
	for n := 1; n < diffLookahead && n < len(lines); n++ {
		if lines[n] == want {
			return n
		}
	}

	return 0
}

// writeDiff writes the changed lines between before and after with a few
// lines of context, separating distant changes with "@@".
func writeDiff(w io.Writer, name, before, after string, colored bool) error {
	var (
		header  = color.New(color.Bold)
		removed = color.New(color.FgRed)
		added   = color.New(color.FgGreen)
		hunk    = color.New(color.FgCyan)
	)

	for _, c := range []*color.Color{header, removed, added, hunk} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	lines := diffLines(strings.Split(before, "\n"), strings.Split(after, "\n"))

	show := make([]bool, len(lines))
	for i, l := range lines {
		if l.op == ' ' {
			continue
		}

		for j := max(0, i-diffContext); j <= min(len(lines)-1, i+diffContext); j++ {
			show[j] = true
		}
	}

	_, err := header.Fprintf(w, "--- %s\n+++ %s\n", name, name)
	if err != nil {
		return fmt.Errorf("writing diff: %w", err)
	}

	gap := true

	for i, l := range lines {
		if !show[i] {
			gap = true

			continue
		}

		if gap {
			_, err = hunk.Fprintln(w, "@@")
			if err != nil {
				return fmt.Errorf("writing diff: %w", err)
			}

			gap = false
		}

		switch l.op {
		case '-':
			_, err = removed.Fprintf(w, "-%s\n", l.text)
		case '+':
			_, err = added.Fprintf(w, "+%s\n", l.text)
		default:
			_, err = fmt.Fprintf(w, " %s\n", l.text)
		}

		if err != nil {
			return fmt.Errorf("writing diff: %w", err)
		}
	}

	return nil
}
