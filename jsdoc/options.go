package jsdoc

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"go.jacobcolvin.com/jsdocfmt/jsdoc/tags"
)

// ConflictStrategy resolves duplicate occurrences of non-repeatable alias
// groups under [tags.ModeStrict].
type ConflictStrategy string

const (
	// ConflictMerge keeps the first occurrence, backfills its empty type and
	// name from later duplicates and adopts the longest description.
	ConflictMerge ConflictStrategy = "merge"
	// ConflictFirst keeps the first occurrence.
	ConflictFirst ConflictStrategy = "first"
	// ConflictLast keeps the last occurrence.
	ConflictLast ConflictStrategy = "last"
	// ConflictError keeps the first occurrence and reports a [Diagnostic]
	// wrapping [ErrAliasConflict].
	ConflictError ConflictStrategy = "error"
)

// ConflictStrategies lists every [ConflictStrategy].
var ConflictStrategies = []ConflictStrategy{ConflictMerge, ConflictFirst, ConflictLast, ConflictError}

// TypeSeparator is the field separator used inside object literal types.
type TypeSeparator string

// Type separators.
const (
	SeparatorSemicolon TypeSeparator = "semicolon"
	SeparatorComma     TypeSeparator = "comma"
)

// TypeSeparators lists every [TypeSeparator].
var TypeSeparators = []TypeSeparator{SeparatorSemicolon, SeparatorComma}

// LineStrategy controls when a comment collapses to a single line.
type LineStrategy string

const (
	// LineSingle renders single-line content as "/** content */".
	LineSingle LineStrategy = "singleLine"
	// LineMulti always renders the multi-line form.
	LineMulti LineStrategy = "multiline"
	// LineKeep renders the single-line form only for comments that were
	// single-line already.
	LineKeep LineStrategy = "keep"
)

// LineStrategies lists every [LineStrategy].
var LineStrategies = []LineStrategy{LineSingle, LineMulti, LineKeep}

// EndOfLine selects the line ending of formatted comments.
type EndOfLine string

// Line endings. [EOLAuto] uses the first line ending found in the source.
const (
	EOLAuto EndOfLine = "auto"
	EOLLF   EndOfLine = "lf"
	EOLCRLF EndOfLine = "crlf"
	EOLCR   EndOfLine = "cr"
)

// EndOfLines lists every [EndOfLine].
var EndOfLines = []EndOfLine{EOLAuto, EOLLF, EOLCRLF, EOLCR}

// Options configures formatting. Start from [DefaultOptions].
type Options struct {
	// LanguageWidths overrides PrintWidth per source language, keyed by
	// language name as reported by the comment parser.
	LanguageWidths map[string]int
	// TagsOrder overrides tag ordering weights. Smaller weights sort first.
	TagsOrder map[string]int
	// PreferredAliases maps alias group ids to the spelling rendered in
	// prefer and strict alias modes.
	PreferredAliases      map[string]string
	EndOfLine             EndOfLine
	CommentLineStrategy   LineStrategy
	AliasTagsMode         tags.Mode
	AliasConflictStrategy ConflictStrategy
	TypeSeparator         TypeSeparator
	// Spaces is the number of spaces between tag, type, name and description.
	Spaces     int
	PrintWidth int
	// DescriptionPrintWidth overrides PrintWidth and LanguageWidths when
	// positive.
	DescriptionPrintWidth int
	TabWidth              int
	// Concurrency limits the number of comments formatted concurrently per
	// source. Zero or less means no limit.
	Concurrency int
	UseTabs     bool
	// DescriptionTag renders the description as an explicit @description tag.
	DescriptionTag     bool
	DescriptionWithDot bool
	// FormatDescriptions enables wrapping, capitalization and default notes.
	// When false, descriptions are kept as written.
	FormatDescriptions bool
	// SeparateDescriptionFromTags forces one blank line between the
	// description and the first tag. When false, an existing blank line is
	// kept and runs of blank lines collapse to one.
	SeparateDescriptionFromTags bool
	VerticalAlignment           bool
	SeparateReturnsFromParam    bool
	SeparateTagGroups           bool
	AddDefaultToDescription     bool
	CapitalizeDescription       bool
	PreferCodeFences            bool
	// TSDoc keeps @example bodies and @remarks as markdown instead of
	// treating examples as code.
	TSDoc bool
}

// DefaultOptions returns the default [Options].
func DefaultOptions() Options {
	return Options{
		EndOfLine:                   EOLAuto,
		CommentLineStrategy:         LineSingle,
		AliasTagsMode:               tags.ModeNormalize,
		AliasConflictStrategy:       ConflictMerge,
		TypeSeparator:               SeparatorSemicolon,
		Spaces:                      1,
		PrintWidth:                  80,
		TabWidth:                    2,
		FormatDescriptions:          true,
		SeparateDescriptionFromTags: true,
		AddDefaultToDescription:     true,
		CapitalizeDescription:       true,
	}
}

// Validate reports the first invalid field, wrapped in [ErrInvalidOption].
func (o Options) Validate() error {
	switch {
	case o.Spaces < 0:
		return fmt.Errorf("%w: spaces must not be negative, got %d", ErrInvalidOption, o.Spaces)
	case o.PrintWidth <= 0:
		return fmt.Errorf("%w: print width must be positive, got %d", ErrInvalidOption, o.PrintWidth)
	case o.DescriptionPrintWidth < 0:
		return fmt.Errorf("%w: description print width must not be negative, got %d",
			ErrInvalidOption, o.DescriptionPrintWidth)
	case o.TabWidth <= 0:
		return fmt.Errorf("%w: tab width must be positive, got %d", ErrInvalidOption, o.TabWidth)
	}

	for lang, w := range o.LanguageWidths {
		if w <= 0 {
			return fmt.Errorf("%w: print width for %s must be positive, got %d", ErrInvalidOption, lang, w)
		}
	}

	if err := oneOf("end of line", o.EndOfLine, EndOfLines); err != nil {
		return err
	}

	if err := oneOf("comment line strategy", o.CommentLineStrategy, LineStrategies); err != nil {
		return err
	}

	if err := oneOf("alias tags mode", o.AliasTagsMode, tags.Modes); err != nil {
		return err
	}

	if err := oneOf("alias conflict strategy", o.AliasConflictStrategy, ConflictStrategies); err != nil {
		return err
	}

	return oneOf("type separator", o.TypeSeparator, TypeSeparators)
}

func oneOf[T ~string](name string, v T, valid []T) error {
	if slices.Contains(valid, v) {
		return nil
	}

	return fmt.Errorf("%w: %s %q: must be one of %s",
		ErrInvalidOption, name, v, joinValues(valid))
}

// ParsePreferredAliases parses preferred alias spellings given either as a
// JSON object ({"returns": "return"}) or as comma-separated group=spelling
// pairs (returns=return,class=constructor).
func ParsePreferredAliases(s string) (map[string]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	out := map[string]string{}

	if strings.HasPrefix(s, "{") {
		// JSON objects are YAML flow mappings.
		if err := yaml.Unmarshal([]byte(s), &out); err != nil {
			return nil, fmt.Errorf("%w: preferred aliases: %w", ErrInvalidOption, err)
		}

		return out, nil
	}

	for pair := range strings.SplitSeq(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		group, spelling, ok := strings.Cut(pair, "=")
		group, spelling = strings.TrimSpace(group), strings.TrimSpace(spelling)

		if !ok || group == "" || spelling == "" {
			return nil, fmt.Errorf("%w: preferred alias %q: want group=spelling", ErrInvalidOption, pair)
		}

		out[group] = spelling
	}

	return out, nil
}

// ParseTagsOrder parses tag weight overrides given as comma-separated
// tag=weight pairs (param=1,returns=2).
func ParseTagsOrder(s string) (map[string]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	out := map[string]int{}

	if strings.HasPrefix(s, "{") {
		if err := yaml.Unmarshal([]byte(s), &out); err != nil {
			return nil, fmt.Errorf("%w: tags order: %w", ErrInvalidOption, err)
		}

		return out, nil
	}

	for pair := range strings.SplitSeq(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		tag, weight, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("%w: tag order %q: want tag=weight", ErrInvalidOption, pair)
		}

		w, err := strconv.Atoi(strings.TrimSpace(weight))
		if err != nil {
			return nil, fmt.Errorf("%w: tag order %q: %w", ErrInvalidOption, pair, err)
		}

		out[strings.TrimSpace(tag)] = w
	}

	return out, nil
}
