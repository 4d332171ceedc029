package jsdoc

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.jacobcolvin.com/jsdocfmt/jsdoc/mdwrap"
	"go.jacobcolvin.com/jsdocfmt/jsdoc/tags"
)

var (
	exampleCaption = regexp.MustCompile(`(?is)<caption>.*?</caption>`)
	firstWord      = regexp.MustCompile(`^\s*(\S+)`)
)

// renderer renders the entries of one comment into content lines.
type renderer struct {
	code  CodeFormatter
	table *tags.Table
	opts  Options
	// width is the display width of the comment content area.
	width int

	maxTitle, maxType, maxName int
}

// Stringify renders entries into the content lines of a comment, without the
// "/**" frame and line prefixes. Width is the display width of the content
// area. Blank lines never repeat and never end the output.
func (f *Formatter) Stringify(ctx context.Context, entries []Entry, width int) ([]string, error) {
	r := &renderer{code: f.code, table: f.table, opts: f.opts, width: width}
	r.measure(entries)

	var out []string

	for i, e := range entries {
		lines, err := r.entry(ctx, e, i == len(entries)-1)
		if err != nil {
			return nil, err
		}

		leading := true

		for _, line := range lines {
			line = strings.TrimRight(line, " \t")
			if leading && line == "" && (len(out) == 0 || out[len(out)-1] == "") {
				continue
			}

			leading = false

			out = append(out, line)
		}
	}

	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}

	return out, nil
}

// measure records the alignment column widths of alignable entries.
func (r *renderer) measure(entries []Entry) {
	for _, e := range entries {
		if e.IsSpacer() || !r.table.Role(e.Tag).Alignable {
			continue
		}

		r.maxTitle = max(r.maxTitle, mdwrap.Width(e.DisplayTag()))
		r.maxType = max(r.maxType, mdwrap.Width(typeText(e)))
		r.maxName = max(r.maxName, mdwrap.Width(e.Name))
	}
}

func (r *renderer) entry(ctx context.Context, e Entry, last bool) ([]string, error) {
	if e.IsSpacer() {
		return []string{""}, nil
	}

	var (
		role = r.table.Role(e.Tag)
		gap  = strings.Repeat(" ", r.opts.Spaces)
		typ  = typeText(e)

		titleAdj, typeAdj, nameAdj, descAdj int
	)

	if r.opts.VerticalAlignment && role.Alignable {
		titleAdj = r.maxTitle - mdwrap.Width(e.DisplayTag())

		if typ != "" {
			typeAdj = r.maxType - mdwrap.Width(typ)
		} else if r.maxType > 0 {
			descAdj += r.maxType + len(gap)
		}

		if e.Name != "" {
			nameAdj = r.maxName - mdwrap.Width(e.Name)
		} else if r.maxName > 0 {
			descAdj += r.maxName + len(gap)
		}
	}

	useTitle := e.Tag != tags.Description || r.opts.DescriptionTag

	var head strings.Builder

	if useTitle {
		head.WriteString("@" + e.DisplayTag() + pad(titleAdj))
	}

	if typ != "" {
		head.WriteString(gap + typ + pad(typeAdj))
	}

	if e.Name != "" {
		head.WriteString(gap + e.Name + pad(nameAdj))
	}

	var lines []string

	switch {
	case e.Tag == tags.Example && !r.opts.TSDoc:
		var err error

		lines, err = r.example(ctx, head.String(), e.Description)
		if err != nil {
			return nil, err
		}

	case e.Description != "":
		if useTitle {
			head.WriteString(gap + pad(descAdj))
		}

		lines = r.description(head.String(), e, role)

	default:
		lines = []string{head.String()}
	}

	if !last {
		switch {
		case e.Tag == tags.Description && r.opts.SeparateDescriptionFromTags:
			lines = append(lines, "")
		case e.Tag == tags.Example:
			lines = append(lines, "")
		}
	}

	return lines, nil
}

func (r *renderer) example(ctx context.Context, head, desc string) ([]string, error) {
	if loc := exampleCaption.FindStringIndex(desc); loc != nil {
		head += " " + strings.Join(strings.Fields(desc[loc[0]:loc[1]]), " ")
		desc = strings.TrimLeft(desc[:loc[0]]+desc[loc[1]:], " \t")
	}

	lines := []string{head}

	if strings.TrimSpace(desc) == "" {
		return lines, nil
	}

	indent := strings.Repeat(" ", r.opts.TabWidth)
	if r.opts.UseTabs {
		indent = "\t"
	}

	code, err := r.code.FormatCode(ctx, desc, indent)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormatCode, err)
	}

	if code != "" {
		lines = append(lines, strings.Split(code, "\n")...)
	}

	return lines, nil
}

func (r *renderer) description(head string, e Entry, role tags.Role) []string {
	if role.NoWrap || !r.table.Known(e.Tag) || !r.opts.FormatDescriptions {
		return verbatim(head, e.Description)
	}

	indent := "  "
	if e.Tag == tags.Description ||
		(r.opts.TSDoc && (e.Tag == tags.Example || e.Tag == tags.Remarks || e.Tag == tags.PrivateRemarks)) {
		indent = ""
	}

	opts := mdwrap.Options{
		Width:            r.width - mdwrap.Width(indent),
		Indent:           indent,
		Capitalize:       r.opts.CapitalizeDescription,
		EndWithDot:       r.opts.DescriptionWithDot,
		PreferCodeFences: r.opts.PreferCodeFences,
	}

	var word string
	if m := firstWord.FindStringSubmatch(e.Description); m != nil {
		word = m[1]
	}

	newLine := e.Tag == tags.Remarks || e.Tag == tags.PrivateRemarks ||
		// The line break before head counts toward the width.
		(e.Tag != tags.Description && 1+mdwrap.Width(head)+mdwrap.Width(word) > r.width)

	if newLine {
		wrapped := mdwrap.Wrap(e.Description, opts)
		lines := []string{head}

		if len(wrapped) > 0 {
			if wrapped[0] != "" {
				lines = append(lines, indent+wrapped[0])
			}

			lines = append(lines, wrapped[1:]...)
		}

		return lines
	}

	opts.FirstLineOffset = mdwrap.Width(head) - mdwrap.Width(indent)

	wrapped := mdwrap.Wrap(e.Description, opts)
	if len(wrapped) == 0 {
		return []string{head}
	}

	return append([]string{head + wrapped[0]}, wrapped[1:]...)
}

// verbatim appends the first description line to head and keeps the rest
// as written.
func verbatim(head, desc string) []string {
	lines := strings.Split(desc, "\n")
	lines[0] = head + lines[0]

	return lines
}

// typeText returns the type column of e: braced for regular tags, bare for
// default values.
func typeText(e Entry) string {
	if e.Type == "" {
		return ""
	}

	if !tags.IsDefault(e.Tag) {
		return "{" + e.Type + "}"
	}

	switch e.Type {
	case "[]":
		return "[ ]"
	case "{}":
		return "{ }"
	}

	return e.Type
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}

	return strings.Repeat(" ", n)
}
