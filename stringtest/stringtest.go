package stringtest

import "strings"

// Input dedents a raw string literal for use as test input.
//
// One leading and one trailing newline are dropped, the indentation common
// to all non-blank lines is removed, and whitespace-only lines become empty.
//
// Example:
//
//	src := stringtest.Input(`
//		/**
//		 * Desc
//		 */`) // -> "/**\n * Desc\n */"
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")

	common := -1

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if common < 0 || indent < common {
			common = indent
		}
	}

	for i, line := range lines {
		switch {
		case strings.TrimSpace(line) == "":
			lines[i] = ""
		case common > 0:
			lines[i] = line[common:]
		}
	}

	return strings.Join(lines, "\n")
}

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected test output with explicit line endings.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"line1",
//		"line2",
//		"line3",
//	) // -> "line1\nline2\nline3"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// JoinCRLF joins multiple strings with CRLF line endings.
// Use this to construct expected test output with explicit line endings on
// Windows.
//
// Example:
//
//	want := stringtest.JoinCRLF(
//		"line1",
//		"line2",
//		"line3",
//	) // -> "line1\r\nline2\r\nline3"
func JoinCRLF(ss ...string) string {
	return strings.Join(ss, "\r\n")
}

// DocComment builds a multi-line "/** ... */" block from its content lines.
// Every line after the opener is prefixed with indent; empty content lines
// render as a bare " *".
//
// Example:
//
//	want := stringtest.DocComment("",
//		"Desc",
//		"@returns {Object} Value.",
//	) // -> "/**\n * Desc\n * @returns {Object} Value.\n */"
func DocComment(indent string, lines ...string) string {
	var sb strings.Builder

	sb.WriteString("/**\n")

	for _, line := range lines {
		sb.WriteString(indent)

		if line == "" {
			sb.WriteString(" *\n")

			continue
		}

		sb.WriteString(" * ")
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	sb.WriteString(indent)
	sb.WriteString(" */")

	return sb.String()
}
