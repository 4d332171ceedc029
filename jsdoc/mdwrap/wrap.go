package mdwrap

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Options configures [Wrap].
type Options struct {
	// Indent prefixes every output line after the first. When non-empty,
	// indented code blocks are rewritten as fenced blocks, since their
	// indentation would otherwise be ambiguous.
	Indent string
	// Width is the display width available for text, excluding Indent.
	Width int
	// FirstLineOffset is the display width already used on the first line.
	FirstLineOffset int
	// Capitalize upper-cases the first word of each top-level paragraph when
	// it is a plain lower-case word.
	Capitalize bool
	// EndWithDot terminates top-level paragraphs ending in a letter or digit
	// with a ".".
	EndWithDot bool
	// Preserve returns the text unchanged apart from indentation.
	Preserve bool
	// PreferCodeFences rewrites indented code blocks as fenced blocks.
	PreferCodeFences bool
}

// Width returns the display width of s.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Wrap reflows markdown text. The first returned line continues the line
// the caller is writing; it is empty when the text must start on a new line.
// Subsequent lines are prefixed with [Options.Indent] unless blank.
func Wrap(src string, opts Options) []string {
	src = strings.Trim(src, "\n")
	if strings.TrimSpace(src) == "" {
		return nil
	}

	var lines []string

	if opts.Preserve {
		lines = strings.Split(src, "\n")
	} else {
		w := &wrapper{
			src:   []byte(src),
			opts:  opts,
			title: cases.Title(language.Und, cases.NoLower),
		}
		lines = w.document()
	}

	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = opts.Indent + lines[i]
		}
	}

	return lines
}

// markdown is a goldmark block parser without paragraph transformers, so
// link reference definitions stay in the tree as paragraphs.
var markdown = parser.NewParser(
	parser.WithBlockParsers(parser.DefaultBlockParsers()...),
	parser.WithInlineParsers(parser.DefaultInlineParsers()...),
)

type wrapper struct {
	title cases.Caser
	src   []byte
	opts  Options
}

func (w *wrapper) document() []string {
	doc := markdown.Parse(text.NewReader(w.src))

	first := doc.FirstChild()
	if first == nil {
		return nil
	}

	var lines []string

	if !isParagraph(first) || w.verbatimParagraph(first) {
		// Only running text may continue the caller's line.
		lines = append(lines, "")
	}

	return append(lines, w.blocks(doc, w.opts.Width, w.opts.FirstLineOffset, true, false)...)
}

// blocks renders the children of parent. Only the first child sees offset.
func (w *wrapper) blocks(parent ast.Node, width, offset int, top, tight bool) []string {
	var out []string

	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if n != parent.FirstChild() {
			if !tight {
				out = append(out, "")
			}

			offset = 0
		}

		out = append(out, w.block(n, width, offset, top)...)
	}

	return out
}

func (w *wrapper) block(n ast.Node, width, offset int, top bool) []string {
	switch node := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return w.paragraph(node, width, offset, top)

	case *ast.Heading:
		heading := strings.Repeat("#", node.Level)
		if content := strings.Join(strings.Fields(w.joined(node)), " "); content != "" {
			heading += " " + content
		}

		return []string{heading}

	case *ast.FencedCodeBlock:
		var info string
		if node.Info != nil {
			info = string(node.Info.Segment.Value(w.src))
		}

		return fence(info, w.rawLines(node))

	case *ast.CodeBlock:
		code := w.rawLines(node)
		if w.opts.Indent != "" || w.opts.PreferCodeFences {
			return fence("", code)
		}

		for i, line := range code {
			if line != "" {
				code[i] = "    " + line
			}
		}

		return code

	case *ast.HTMLBlock:
		lines := w.rawLines(node)
		if node.HasClosure() {
			closure := node.ClosureLine.Value(w.src)
			lines = append(lines, strings.TrimRightFunc(string(closure), unicode.IsSpace))
		}

		return lines

	case *ast.Blockquote:
		inner := w.blocks(node, width-2, 0, false, false)
		for i, line := range inner {
			if line == "" {
				inner[i] = ">"
			} else {
				inner[i] = "> " + line
			}
		}

		return inner

	case *ast.List:
		return w.list(node, width)

	case *ast.ThematicBreak:
		return []string{"---"}
	}

	return w.rawLines(n)
}

func (w *wrapper) list(list *ast.List, width int) []string {
	var out []string

	i := 0

	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		if i > 0 && !list.IsTight {
			out = append(out, "")
		}

		marker := "- "
		if list.IsOrdered() {
			marker = fmt.Sprintf("%d%c ", list.Start+i, list.Marker)
		}

		pad := strings.Repeat(" ", len(marker))
		inner := w.blocks(item, width-len(marker), 0, false, list.IsTight)

		if len(inner) == 0 {
			out = append(out, strings.TrimSpace(marker))
		}

		for j, line := range inner {
			switch {
			case j == 0:
				out = append(out, marker+line)
			case line == "":
				out = append(out, "")
			default:
				out = append(out, pad+line)
			}
		}

		i++
	}

	return out
}

func (w *wrapper) paragraph(n ast.Node, width, offset int, top bool) []string {
	if w.verbatimParagraph(n) {
		return w.rawLines(n)
	}

	words := strings.Fields(w.joined(n))
	if len(words) == 0 {
		return nil
	}

	if top && w.opts.Capitalize && lowerWord.MatchString(words[0]) {
		words[0] = w.title.String(words[0])
	}

	if top && w.opts.EndWithDot {
		last := words[len(words)-1]
		if r := []rune(last); unicode.IsLetter(r[len(r)-1]) || unicode.IsDigit(r[len(r)-1]) {
			words[len(words)-1] = last + "."
		}
	}

	return fill(words, width, offset)
}

// fill greedily packs words into lines of at most width display columns,
// the first line starting at offset. A word that would open a line as a
// markdown block marker or a tag stays on the previous line instead.
func fill(words []string, width, offset int) []string {
	var (
		lines []string
		line  strings.Builder
	)

	used := offset

	for _, word := range words {
		ww := Width(word)

		switch {
		case line.Len() == 0:
			line.WriteString(word)

			used += ww

		case used+1+ww <= width || blockMarker.MatchString(word) || strings.HasPrefix(word, "@"):
			line.WriteByte(' ')
			line.WriteString(word)

			used += 1 + ww

		default:
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString(word)

			used = ww
		}
	}

	return append(lines, line.String())
}

// verbatimParagraph reports paragraphs that must keep their line breaks:
// pipe tables and link reference definitions.
func (w *wrapper) verbatimParagraph(n ast.Node) bool {
	lines := w.rawLines(n)
	if len(lines) == 0 {
		return false
	}

	table, refs := true, true

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		table = table && strings.HasPrefix(trimmed, "|")
		refs = refs && linkReference.MatchString(trimmed)
	}

	return table || refs
}

// joined returns the text of a leaf block with its lines joined by spaces.
func (w *wrapper) joined(n ast.Node) string {
	return strings.Join(w.rawLines(n), " ")
}

// rawLines returns the source lines of a leaf block without trailing
// whitespace.
func (w *wrapper) rawLines(n ast.Node) []string {
	segments := n.Lines()
	if segments == nil {
		return nil
	}

	lines := make([]string, 0, segments.Len())
	for i := range segments.Len() {
		seg := segments.At(i)
		lines = append(lines, strings.TrimRightFunc(string(seg.Value(w.src)), unicode.IsSpace))
	}

	return lines
}

func isParagraph(n ast.Node) bool {
	kind := n.Kind()

	return kind == ast.KindParagraph || kind == ast.KindTextBlock
}

func fence(info string, code []string) []string {
	marker := "```"
	for _, line := range code {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			marker = "~~~"

			break
		}
	}

	out := make([]string, 0, len(code)+2)
	out = append(out, marker+info)
	out = append(out, code...)

	return append(out, marker)
}

var (
	lowerWord     = regexp.MustCompile(`^[a-z]+[,.:;]?$`)
	linkReference = regexp.MustCompile(`^\[[^\]]+\]:\s*\S`)
	blockMarker   = regexp.MustCompile("^(?:[-+*=_]+|#{1,6}|\\d{1,9}[.)]|[>|<].*|```.*|~~~.*)$")
)
