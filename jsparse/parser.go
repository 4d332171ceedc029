package jsparse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"go.jacobcolvin.com/jsdocfmt/jsdoc"
)

// ErrUnsupported is returned for languages without a grammar.
var ErrUnsupported = errors.New("unsupported language")

// Language names a source language with a tree-sitter grammar.
type Language string

// Supported languages. JavaScript includes JSX.
const (
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
)

// Languages lists every supported [Language].
var Languages = []Language{JavaScript, TypeScript, TSX}

var extensions = map[string]Language{
	".js":  JavaScript,
	".mjs": JavaScript,
	".cjs": JavaScript,
	".jsx": JavaScript,
	".ts":  TypeScript,
	".mts": TypeScript,
	".cts": TypeScript,
	".tsx": TSX,
}

// LanguageFor returns the language of a file path by its extension.
func LanguageFor(path string) (Language, bool) {
	lang, ok := extensions[strings.ToLower(filepath.Ext(path))]

	return lang, ok
}

// Parser locates block comments in JavaScript and TypeScript sources. It
// implements [jsdoc.CommentParser].
//
// A Parser is safe for concurrent use; each call creates its own
// tree-sitter parser.
type Parser struct {
	grammar *sitter.Language
	lang    Language
}

// NewParser creates a [Parser] for lang.
func NewParser(lang Language) (*Parser, error) {
	var grammar *sitter.Language

	switch lang {
	case JavaScript:
		grammar = javascript.GetLanguage()
	case TypeScript:
		grammar = typescript.GetLanguage()
	case TSX:
		grammar = tsx.GetLanguage()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, lang)
	}

	return &Parser{grammar: grammar, lang: lang}, nil
}

// NewParserFor creates a [Parser] for the language of path.
func NewParserFor(path string) (*Parser, error) {
	lang, ok := LanguageFor(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}

	return NewParser(lang)
}

// Language returns the language the parser was created for.
func (p *Parser) Language() Language {
	return p.lang
}

// Comments returns the block comments of src in source order. Line comments
// are not returned. Syntax errors elsewhere in the source do not prevent
// comments from being found.
func (p *Parser) Comments(ctx context.Context, src []byte) ([]jsdoc.Comment, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(p.grammar)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, errors.New("tree-sitter returned nil root node")
	}

	if root.HasError() {
		slog.Debug("source has syntax errors", slog.String("language", string(p.lang)))
	}

	var comments []jsdoc.Comment

	err = p.walk(root, src, &comments)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(comments, func(a, b jsdoc.Comment) int {
		return a.Start - b.Start
	})

	return comments, nil
}

func (p *Parser) walk(n *sitter.Node, src []byte, out *[]jsdoc.Comment) error {
	if n.Type() == "comment" {
		c, ok, err := p.comment(n, src)
		if err != nil {
			return err
		}

		if ok {
			*out = append(*out, c)
		}

		return nil
	}

	for i := range int(n.ChildCount()) {
		err := p.walk(n.Child(i), src, out)
		if err != nil {
			return err
		}
	}

	return nil
}

func (p *Parser) comment(n *sitter.Node, src []byte) (jsdoc.Comment, bool, error) {
	start, err := safecast.Conv[int](n.StartByte())
	if err != nil {
		return jsdoc.Comment{}, false, fmt.Errorf("comment start: %w", err)
	}

	end, err := safecast.Conv[int](n.EndByte())
	if err != nil {
		return jsdoc.Comment{}, false, fmt.Errorf("comment end: %w", err)
	}

	row, err := safecast.Conv[int](n.StartPoint().Row)
	if err != nil {
		return jsdoc.Comment{}, false, fmt.Errorf("comment line: %w", err)
	}

	if end > len(src) || start > end {
		return jsdoc.Comment{}, false, fmt.Errorf("comment range %d:%d out of bounds", start, end)
	}

	text := string(src[start:end])
	if !strings.HasPrefix(text, "/*") {
		return jsdoc.Comment{}, false, nil
	}

	return jsdoc.Comment{
		Text:     text,
		Language: string(p.lang),
		Start:    start,
		End:      end,
		Line:     row + 1,
	}, true, nil
}
