package commentparser

import (
	"strings"
	"unicode"
)

// Spec is one tokenized "@tag" section of a doc comment.
type Spec struct {
	// Tag is the raw tag spelling without the leading "@". A missing space
	// between tag and type leaves both glued together, e.g. "returns{Object}".
	Tag         string
	Type        string
	Name        string
	Description string
	Default     string
	// Source holds the raw comment lines this section was parsed from.
	Source   []string
	Optional bool
}

// Block is a tokenized doc comment.
type Block struct {
	// Description is the free text before the first tag.
	Description string
	Tags        []Spec
	// DescriptionBlankAfter reports whether blank lines separated the
	// description from the first tag.
	DescriptionBlankAfter bool
}

// Options configures [Parse].
type Options struct {
	// SkipType reports tags whose first braced token is not a type, such as
	// @default {a: 1}. May be nil.
	SkipType func(tag string) bool
	// Fence is the code fence marker inside which "@" never starts a tag.
	// Defaults to "```".
	Fence string
}

// line is one comment line split into its raw source and its content after
// the "*" delimiter.
type line struct {
	source  string
	content string
}

// Parse tokenizes a complete doc comment ("/** ... */") with LF line endings.
// It returns false when text is not a doc comment.
func Parse(text string, opts Options) (*Block, bool) {
	if len(text) < 5 || !strings.HasPrefix(text, "/**") || !strings.HasSuffix(text, "*/") {
		return nil, false
	}

	fence := opts.Fence
	if fence == "" {
		fence = "```"
	}

	lines := splitLines(text[3 : len(text)-2])
	if n := len(lines); n > 1 && lines[n-1].content == "" {
		// Closing " */" line.
		lines = lines[:n-1]
	}

	var (
		sections [][]line
		current  []line
		inFence  bool
	)

	for _, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l.content), fence) {
			inFence = !inFence
		}

		if !inFence && startsTag(l.content) {
			sections = append(sections, current)
			current = nil
		}

		current = append(current, l)
	}

	sections = append(sections, current)

	block := &Block{}
	desc, gap := joinDescription("", sections[0], false)
	block.Description = desc
	block.DescriptionBlankAfter = gap && desc != ""

	for _, section := range sections[1:] {
		block.Tags = append(block.Tags, parseSpec(section, opts))
	}

	return block, true
}

func splitLines(body string) []line {
	raw := strings.Split(body, "\n")
	lines := make([]line, 0, len(raw))

	for i, src := range raw {
		var content string

		if i == 0 {
			content = strings.TrimLeftFunc(src, unicode.IsSpace)
			src = "/**" + src
		} else {
			content = strings.TrimLeftFunc(src, unicode.IsSpace)
			if rest, ok := strings.CutPrefix(content, "*"); ok {
				content = strings.TrimPrefix(rest, " ")
			}
		}

		if i == len(raw)-1 {
			src += "*/"
		}

		lines = append(lines, line{
			source:  src,
			content: strings.TrimRightFunc(content, unicode.IsSpace),
		})
	}

	return lines
}

// startsTag reports whether a content line opens a new tag section. Lines
// indented by two or more spaces never do, so decorators inside indented
// examples stay part of the example.
func startsTag(content string) bool {
	trimmed := strings.TrimLeft(content, " \t")
	if len(content)-len(trimmed) > 1 {
		return false
	}

	return len(trimmed) > 1 && trimmed[0] == '@' && isLetter(trimmed[1])
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func parseSpec(section []line, opts Options) Spec {
	spec := Spec{}
	for _, l := range section {
		spec.Source = append(spec.Source, l.source)
	}

	first := strings.TrimLeft(section[0].content, " \t")[1:]
	rest := section[1:]

	spec.Tag, first = cutWord(first)

	if strings.HasPrefix(first, "{") && (opts.SkipType == nil || !opts.SkipType(spec.Tag)) {
		spec.Type, first, rest = readType(first, rest)
	}

	if first != "" {
		var token string

		token, first = cutName(first)
		spec.Name, spec.Default, spec.Optional = splitName(token)
	}

	spec.Description, _ = joinDescription(first, rest, true)

	return spec
}

// cutWord splits s at its first whitespace run.
func cutWord(s string) (string, string) {
	idx := strings.IndexFunc(s, unicode.IsSpace)
	if idx < 0 {
		return s, ""
	}

	return s[:idx], strings.TrimLeftFunc(s[idx:], unicode.IsSpace)
}

// readType reads a balanced "{...}" type expression starting at s, pulling
// continuation lines when the braces do not close on the first line.
func readType(s string, rest []line) (string, string, []line) {
	buf := s
	consumed := 0

	for {
		if end := matchingClose(buf, '{', '}'); end >= 0 {
			typ := strings.TrimSpace(buf[1:end])
			after := strings.TrimLeftFunc(buf[end+1:], unicode.IsSpace)

			return typ, after, rest[consumed:]
		}

		if consumed == len(rest) {
			// Unbalanced: leave everything to the name and description.
			return "", s, rest
		}

		buf += " " + strings.TrimSpace(rest[consumed].content)
		consumed++
	}
}

// matchingClose returns the index of the bracket closing s[0], skipping
// quoted strings, or -1.
func matchingClose(s string, open, closing byte) int {
	depth := 0

	var quote byte

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}

		case c == '"' || c == '\'' || c == '`':
			quote = c

		case c == open:
			depth++

		case c == closing:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// cutName reads the name token: a balanced "[...]" optional name or a plain
// word.
func cutName(s string) (string, string) {
	if strings.HasPrefix(s, "[") {
		if end := matchingClose(s, '[', ']'); end >= 0 {
			return s[:end+1], strings.TrimLeftFunc(s[end+1:], unicode.IsSpace)
		}
	}

	return cutWord(s)
}

// splitName unpacks "[name=default]" notation.
func splitName(token string) (string, string, bool) {
	if len(token) < 2 || token[0] != '[' || token[len(token)-1] != ']' {
		return token, "", false
	}

	inner := token[1 : len(token)-1]

	name, def, found := strings.Cut(inner, "=")
	if !found {
		return strings.TrimSpace(inner), "", true
	}

	return strings.TrimSpace(name), strings.TrimSpace(def), true
}

// joinDescription joins the first-line remainder and the continuation lines
// of a section. Leading and trailing blank lines are dropped and the
// continuation lines lose their common indentation. The returned flag
// reports whether trailing blank lines were present.
func joinDescription(first string, rest []line, hasFirst bool) (string, bool) {
	contents := make([]string, 0, len(rest)+1)
	if hasFirst {
		contents = append(contents, first)
	}

	for _, l := range rest {
		contents = append(contents, l.content)
	}

	blankAfter := false

	for len(contents) > 0 && strings.TrimSpace(contents[len(contents)-1]) == "" {
		contents = contents[:len(contents)-1]
		blankAfter = true
	}

	inline := hasFirst && strings.TrimSpace(first) != ""

	start := 0
	if !inline {
		for start < len(contents) && strings.TrimSpace(contents[start]) == "" {
			start++
		}
	}

	contents = contents[start:]
	if len(contents) == 0 {
		return "", blankAfter
	}

	dedentFrom := 0
	if inline {
		dedentFrom = 1
	}

	dedent(contents[dedentFrom:])

	return strings.Join(contents, "\n"), blankAfter
}

// dedent removes the common leading indentation of the non-blank lines.
func dedent(lines []string) {
	common := -1

	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}

		indent := len(l) - len(strings.TrimLeft(l, " \t"))
		if common < 0 || indent < common {
			common = indent
		}
	}

	if common <= 0 {
		return
	}

	for i, l := range lines {
		if len(l) >= common {
			lines[i] = l[common:]
		} else {
			lines[i] = ""
		}
	}
}
