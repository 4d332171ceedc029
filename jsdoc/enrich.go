package jsdoc

import (
	"regexp"
	"strings"

	"go.jacobcolvin.com/jsdocfmt/jsdoc/tags"
)

var (
	defaultNote = regexp.MustCompile("(?:\\s*Default\\s+is\\s+`.*?`\\.?)+")
	endsClause  = regexp.MustCompile(`[.\n]$`)
)

// AddDefaultToDescription appends a "Default is `value`" note to the
// description of an optional entry with a default value, replacing notes
// added by earlier runs.
func AddDefaultToDescription(e Entry) Entry {
	if !e.Optional || e.Default == "" {
		return e
	}

	desc := defaultNote.ReplaceAllString(e.Description, "")
	if desc != "" && !endsClause.MatchString(desc) {
		desc += "."
	}

	desc += " Default is `" + e.Default + "`"
	e.Description = strings.TrimSpace(desc)

	return e
}

// AssignOptionalAndDefaultToName folds the optional marker and default value
// into the name ("[name]", "[name=value]"), or into the type ("T |
// undefined") when the entry has no name. Default-value tags instead take
// their literal value and trailing prose from the source line; see
// [ParseDefaultLiteral].
func AssignOptionalAndDefaultToName(e Entry) Entry {
	if tags.IsDefault(e.Tag) {
		for _, line := range e.Source {
			if !strings.Contains(strings.ToLower(line), "@default") {
				continue
			}

			if value, desc, ok := ParseDefaultLiteral(line); ok {
				e.Type, e.Name, e.Description = value, "", desc
			}

			break
		}

		return e
	}

	if !e.Optional {
		return e
	}

	switch {
	case e.Name == "":
		e.Type += " | undefined"
	case e.Default != "":
		e.Name = "[" + e.Name + "=" + e.Default + "]"
	default:
		e.Name = "[" + e.Name + "]"
	}

	return e
}

var defaultLiteral = regexp.MustCompile(
	"(?i)@default(?:value)?\\s+(\\[.*\\]|\\{.*\\}|\\(.*\\)|'.*'|\".*\"|`.*`|\\S+)(?:\\s+(.+))?",
)

// ParseDefaultLiteral extracts a default value and its trailing description
// from a single source line holding a @default or @defaultValue tag.
//
// The value is the first of, anchored right after the tag: a bracketed
// ([...]), braced ({...}), parenthesized ((...)) or quoted ('...', "...",
// `...`) literal, matched greedily to the last closing delimiter on the
// line, or else a single whitespace-free word. Anything after the value is
// the description. A trailing comment terminator is ignored.
func ParseDefaultLiteral(line string) (string, string, bool) {
	line = strings.TrimRightFunc(line, isSpace)
	line = strings.TrimSuffix(line, "*/")
	line = strings.TrimRightFunc(line, isSpace)

	m := defaultLiteral.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}

	return m[1], strings.TrimSpace(m[2]), true
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}
