package jsdoc

import (
	"regexp"
	"strings"
)

var nullableType = regexp.MustCompile(`^(?:\?\s*([\w.$]+)|([\w.$]+)\s*\?)$`)

// PrepareType converts legacy JSDoc type syntax: a trailing "=" marks the
// entry optional, "Array.<T>" becomes "Array<T>", a lone "*" becomes "any",
// and "?T" or "T?" becomes "T | null". It returns the new type and whether a
// trailing "=" was removed.
func PrepareType(typ string) (string, bool) {
	typ = strings.TrimSpace(typ)

	optional := false
	if rest, ok := strings.CutSuffix(typ, "="); ok && !strings.HasSuffix(rest, "=") {
		typ, optional = strings.TrimSpace(rest), true
	}

	typ = strings.ReplaceAll(typ, ".<", "<")

	if typ == "*" {
		typ = "any"
	}

	if m := nullableType.FindStringSubmatch(typ); m != nil {
		typ = m[1] + m[2] + " | null"
	}

	return typ, optional
}

// NormalizeTypeSeparators rewrites the field separators of object literal
// types to sep, at every nesting depth. A separator becomes the separator
// character followed by one space, and separators right before a closing
// brace are dropped. String literals and separators inside other brackets,
// such as generic arguments or tuples, are left alone.
func NormalizeTypeSeparators(typ string, sep TypeSeparator) string {
	want := byte(';')
	if sep == SeparatorComma {
		want = ','
	}

	var (
		sb    strings.Builder
		stack []byte
	)

	for i := 0; i < len(typ); i++ {
		c := typ[i]

		switch c {
		case '\'', '"', '`':
			end := closingQuote(typ, i)
			sb.WriteString(typ[i:end])
			i = end - 1

			continue

		case '{', '(', '[', '<':
			stack = append(stack, c)

		case '}', ')', ']':
			if n := len(stack); n > 0 {
				stack = stack[:n-1]
			}

		case '>':
			// Arrows ("=>") never pop the stack.
			if n := len(stack); n > 0 && stack[n-1] == '<' && (i == 0 || typ[i-1] != '=') {
				stack = stack[:n-1]
			}

		case ',', ';':
			if n := len(stack); n > 0 && stack[n-1] == '{' {
				j := i + 1
				for j < len(typ) && isSpace(rune(typ[j])) {
					j++
				}

				if j < len(typ) && typ[j] != '}' {
					sb.WriteByte(want)
					sb.WriteByte(' ')

					i = j - 1
				}

				continue
			}
		}

		sb.WriteByte(c)
	}

	return sb.String()
}

// closingQuote returns the index just past the string literal starting at
// typ[start], or len(typ) when it is unterminated.
func closingQuote(typ string, start int) int {
	quote := typ[start]

	for i := start + 1; i < len(typ); i++ {
		switch typ[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		}
	}

	return len(typ)
}
