package jsdoc

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"go.jacobcolvin.com/jsdocfmt/jsdoc/commentparser"
	"go.jacobcolvin.com/jsdocfmt/jsdoc/tags"
)

// Comment is a block comment located in a source file.
type Comment struct {
	// Text is the raw comment, equal to src[Start:End].
	Text string
	// Language names the source language, e.g. "typescript".
	Language string
	// Start and End are byte offsets into the source.
	Start, End int
	// Line is the 1-based line the comment starts on.
	Line int
}

// CommentParser locates block comments in source code.
type CommentParser interface {
	Comments(ctx context.Context, src []byte) ([]Comment, error)
}

// CommentInput is one comment to format along with its surroundings.
type CommentInput struct {
	// Text is the raw comment text, "/**" through "*/".
	Text string
	// Indent is the whitespace preceding the comment on its first line.
	Indent string
	// After is the source text following the comment. A function signature
	// at its start orders @param tags.
	After string
	// Language selects a per-language print width.
	Language string
	// EOL is the line ending used when [Options.EndOfLine] is [EOLAuto].
	// When empty, it is detected from Text.
	EOL string
}

// Result is the outcome of formatting one comment.
type Result struct {
	// Text is the formatted comment. It is empty when the comment was
	// removed, and the unchanged input when it was skipped.
	Text        string
	Diagnostics []Diagnostic
	// Skipped reports that the input was not a doc comment.
	Skipped bool
	// Removed reports that the comment normalized to nothing.
	Removed bool
}

// Formatter normalizes and re-renders JSDoc comments. It holds no mutable
// state and is safe for concurrent use.
//
// Create instances with [NewFormatter].
type Formatter struct {
	code     CodeFormatter
	table    *tags.Table
	resolver tags.Resolver
	opts     Options
}

// Option configures a [Formatter].
type Option func(*Formatter)

// WithOptions sets the formatting options.
func WithOptions(opts Options) Option {
	return func(f *Formatter) {
		f.opts = opts
	}
}

// WithTable replaces the built-in tag classification table.
func WithTable(table *tags.Table) Option {
	return func(f *Formatter) {
		f.table = table
	}
}

// WithCodeFormatter sets the formatter used for @example bodies.
func WithCodeFormatter(code CodeFormatter) Option {
	return func(f *Formatter) {
		f.code = code
	}
}

// NewFormatter creates a [Formatter]. Without options it uses
// [DefaultOptions], [tags.Default] and [IndentFormatter].
func NewFormatter(opts ...Option) (*Formatter, error) {
	f := &Formatter{
		code:  IndentFormatter{},
		table: tags.Default(),
		opts:  DefaultOptions(),
	}

	for _, opt := range opts {
		opt(f)
	}

	err := f.opts.Validate()
	if err != nil {
		return nil, err
	}

	weights := maps.Clone(f.opts.TagsOrder)
	if weights == nil {
		weights = map[string]int{}
	}

	if !f.opts.DescriptionTag {
		// The implicit description always comes first.
		weights[tags.Description] = -1
	}

	f.table = f.table.WithWeights(weights)
	f.resolver = tags.Resolver{
		Table:     f.table,
		Mode:      f.opts.AliasTagsMode,
		Preferred: f.opts.PreferredAliases,
	}

	return f, nil
}

var (
	leadingStars = regexp.MustCompile(`^/\*\*+`)
	docComment   = regexp.MustCompile(`^/\*\*[\s\S]+?\*/$`)
	lineEndings  = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// FormatComment formats a single comment. Comments that are not doc
// comments are returned unchanged with [Result.Skipped] set.
func (f *Formatter) FormatComment(ctx context.Context, in CommentInput) (Result, error) {
	text := leadingStars.ReplaceAllString(in.Text, "/**")
	text = lineEndings.Replace(text)

	if !docComment.MatchString(text) {
		return Result{Text: in.Text, Skipped: true}, nil
	}

	block, ok := commentparser.Parse(text, commentparser.Options{SkipType: f.skipType})
	if !ok {
		slog.Debug("doc comment has no content", slog.String("text", in.Text))

		return Result{Removed: true}, nil
	}

	entries, diags := Normalize(block, f.resolver, f.opts.AliasConflictStrategy)
	for _, d := range diags {
		slog.Warn("alias conflict",
			slog.String("tag", d.Tag),
			slog.Any("error", d.Err),
		)
	}

	entries = f.arrange(entries, block, ParamsOrder(in.After))

	lines, err := f.Stringify(ctx, entries, f.contentWidth(in))
	if err != nil {
		return Result{}, err
	}

	if len(lines) == 0 {
		slog.Debug("removing empty doc comment", slog.String("comment", in.Text))

		return Result{Removed: true, Diagnostics: diags}, nil
	}

	out := f.assemble(lines, in.Indent, !strings.Contains(text, "\n"))
	if eol := f.eol(in); eol != "\n" {
		out = strings.ReplaceAll(out, "\n", eol)
	}

	return Result{Text: out, Diagnostics: diags}, nil
}

// arrange runs the passes between normalization and rendering: type
// preparation, grouping and sorting, separators, enrichment and the
// required-description filter.
func (f *Formatter) arrange(entries []Entry, block *commentparser.Block, paramsOrder []string) []Entry {
	for i := range entries {
		if entries[i].Type == "" {
			continue
		}

		typ, optional := PrepareType(entries[i].Type)
		entries[i].Type = typ
		entries[i].Optional = entries[i].Optional || optional
	}

	entries = SortTags(entries, paramsOrder, f.table)

	if block.DescriptionBlankAfter && !f.opts.SeparateDescriptionFromTags {
		if i := slices.IndexFunc(entries, isDescription); i >= 0 && i < len(entries)-1 {
			entries = slices.Insert(entries, i+1, spacer)
		}
	}

	if f.opts.SeparateReturnsFromParam {
		entries = insertSpacers(entries, func(prev, cur Entry) bool {
			return cur.Tag == tags.Returns && prev.Tag == tags.Param
		})
	}

	for i, e := range entries {
		if e.IsSpacer() {
			continue
		}

		if f.opts.AddDefaultToDescription && f.opts.FormatDescriptions {
			e = AddDefaultToDescription(e)
		}

		e = AssignOptionalAndDefaultToName(e)
		e.Type = NormalizeTypeSeparators(e.Type, f.opts.TypeSeparator)
		e.RenderTag = f.resolver.RenderTag(e.Tag, e.Source)

		entries[i] = e
	}

	if f.opts.SeparateTagGroups {
		entries = insertSpacers(entries, func(prev, cur Entry) bool {
			return prev.Tag != tags.Description && prev.Tag != tags.Example &&
				!prev.IsSpacer() && !cur.IsSpacer() && prev.Tag != cur.Tag
		})
	}

	return slices.DeleteFunc(entries, func(e Entry) bool {
		return !e.IsSpacer() && e.Description == "" && f.table.Role(e.Tag).DescriptionRequired
	})
}

func isDescription(e Entry) bool {
	return e.Tag == tags.Description
}

// insertSpacers inserts a spacer between every adjacent pair for which
// between returns true.
func insertSpacers(entries []Entry, between func(prev, cur Entry) bool) []Entry {
	out := make([]Entry, 0, len(entries))

	for i, e := range entries {
		if i > 0 && between(entries[i-1], e) {
			out = append(out, spacer)
		}

		out = append(out, e)
	}

	return out
}

func (f *Formatter) skipType(tag string) bool {
	return tags.IsDefault(f.resolver.Logical(tag))
}

// contentWidth returns the display width available after the " * " prefix
// of the comment's lines.
func (f *Formatter) contentWidth(in CommentInput) int {
	width := f.opts.PrintWidth
	if w, ok := f.opts.LanguageWidths[in.Language]; ok {
		width = w
	}

	if f.opts.DescriptionPrintWidth > 0 {
		width = f.opts.DescriptionPrintWidth
	}

	spaces := strings.Count(in.Indent, " ")
	tabs := strings.Count(in.Indent, "\t")

	return width - (spaces + tabs*f.opts.TabWidth) - len(" * ")
}

// assemble frames content lines as a comment.
func (f *Formatter) assemble(lines []string, indent string, wasSingleLine bool) string {
	single := len(lines) == 1 &&
		(f.opts.CommentLineStrategy == LineSingle ||
			(f.opts.CommentLineStrategy == LineKeep && wasSingleLine))

	if single {
		return "/** " + lines[0] + " */"
	}

	var sb strings.Builder

	sb.WriteString("/**")

	for _, line := range lines {
		sb.WriteString("\n" + indent + " *")

		if line != "" {
			sb.WriteString(" " + line)
		}
	}

	sb.WriteString("\n" + indent + " */")

	return sb.String()
}

func (f *Formatter) eol(in CommentInput) string {
	switch f.opts.EndOfLine {
	case EOLLF:
		return "\n"
	case EOLCRLF:
		return "\r\n"
	case EOLCR:
		return "\r"
	}

	if in.EOL != "" {
		return in.EOL
	}

	return DetectEOL(in.Text)
}

// DetectEOL returns the first line ending in s, or "\n" when s has none.
func DetectEOL(s string) string {
	i := strings.IndexAny(s, "\r\n")

	switch {
	case i < 0:
		return "\n"
	case s[i] == '\n':
		return "\n"
	case i+1 < len(s) && s[i+1] == '\n':
		return "\r\n"
	}

	return "\r"
}

// maxSignature bounds the source text scanned for a function signature
// after a comment.
const maxSignature = 4096

// FormatSource formats every doc comment found by parser in src. Comments
// are formatted concurrently, limited by [Options.Concurrency]. Any parser
// or example formatter error fails the whole source and no output is
// returned.
func (f *Formatter) FormatSource(ctx context.Context, src []byte, parser CommentParser) ([]byte, []Diagnostic, error) {
	comments, err := parser.Comments(ctx, src)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	eol := DetectEOL(string(src))
	results := make([]Result, len(comments))

	g, gctx := errgroup.WithContext(ctx)
	if f.opts.Concurrency > 0 {
		g.SetLimit(f.opts.Concurrency)
	}

	for i, c := range comments {
		g.Go(func() error {
			res, err := f.FormatComment(gctx, CommentInput{
				Text:     c.Text,
				Indent:   indentBefore(src, c.Start),
				After:    string(src[c.End:min(len(src), c.End+maxSignature)]),
				Language: c.Language,
				EOL:      eol,
			})
			if err != nil {
				return fmt.Errorf("comment at line %d: %w", c.Line, err)
			}

			results[i] = res

			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		return nil, nil, err
	}

	var diags []Diagnostic

	for i, res := range results {
		for _, d := range res.Diagnostics {
			d.Line = comments[i].Line
			diags = append(diags, d)
		}
	}

	out := slices.Clone(src)

	// Replace in reverse order so byte offsets remain valid.
	for i := len(comments) - 1; i >= 0; i-- {
		c, res := comments[i], results[i]
		if res.Skipped || res.Text == c.Text {
			continue
		}

		start, end := c.Start, c.End
		if res.Removed {
			start, end = lineSpan(out, start, end)
		}

		out = slices.Concat(out[:start], []byte(res.Text), out[end:])
	}

	return out, diags, nil
}

// indentBefore returns the leading whitespace of the line holding offset.
// Code between that whitespace and offset is not part of the result.
func indentBefore(src []byte, offset int) string {
	indent := ""

	for i := offset - 1; i >= 0 && src[i] != '\n' && src[i] != '\r'; i-- {
		if src[i] == ' ' || src[i] == '\t' {
			indent = string(src[i]) + indent
		} else {
			indent = ""
		}
	}

	return indent
}

// lineSpan widens [start, end) to whole lines when nothing but whitespace
// shares those lines with it.
func lineSpan(src []byte, start, end int) (int, int) {
	s := start
	for s > 0 && (src[s-1] == ' ' || src[s-1] == '\t') {
		s--
	}

	if s > 0 && src[s-1] != '\n' && src[s-1] != '\r' {
		return start, end
	}

	e := end
	for e < len(src) && (src[e] == ' ' || src[e] == '\t') {
		e++
	}

	switch {
	case e == len(src):
	case src[e] == '\r' && e+1 < len(src) && src[e+1] == '\n':
		e += 2
	case src[e] == '\n' || src[e] == '\r':
		e++
	default:
		return start, end
	}

	return s, e
}
