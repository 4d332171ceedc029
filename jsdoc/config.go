package jsdoc

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/jsdocfmt/jsdoc/tags"
)

// Flags holds CLI flag names for formatting configuration, allowing callers
// to customize flag names while keeping sensible defaults.
type Flags struct {
	Spaces                      string
	PrintWidth                  string
	DescriptionPrintWidth       string
	TabWidth                    string
	UseTabs                     string
	EndOfLine                   string
	DescriptionTag              string
	DescriptionWithDot          string
	FormatDescriptions          string
	SeparateDescriptionFromTags string
	VerticalAlignment           string
	CommentLineStrategy         string
	SeparateReturnsFromParam    string
	SeparateTagGroups           string
	AddDefaultToDescription     string
	CapitalizeDescription       string
	PreferCodeFences            string
	TSDoc                       string
	TagsOrder                   string
	AliasTagsMode               string
	PreferredAliases            string
	AliasConflictStrategy       string
	TypeSeparator               string
	Concurrency                 string
	ExampleCommand              string
}

// Config holds CLI flag values for formatting configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewFormatter] to create a [Formatter].
// Only flags that were set on the command line override the base options
// passed to [Config.Options], so config file values survive unset flags.
type Config struct {
	flagSet *pflag.FlagSet

	Flags                 Flags
	EndOfLine             string
	CommentLineStrategy   string
	TagsOrder             string
	AliasTagsMode         string
	PreferredAliases      string
	AliasConflictStrategy string
	TypeSeparator         string
	ExampleCommand        string

	Spaces                      int
	PrintWidth                  int
	DescriptionPrintWidth       int
	TabWidth                    int
	Concurrency                 int
	UseTabs                     bool
	DescriptionTag              bool
	DescriptionWithDot          bool
	FormatDescriptions          bool
	SeparateDescriptionFromTags bool
	VerticalAlignment           bool
	SeparateReturnsFromParam    bool
	SeparateTagGroups           bool
	AddDefaultToDescription     bool
	CapitalizeDescription       bool
	PreferCodeFences            bool
	TSDoc                       bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Spaces:                      "spaces",
		PrintWidth:                  "print-width",
		DescriptionPrintWidth:       "description-print-width",
		TabWidth:                    "tab-width",
		UseTabs:                     "use-tabs",
		EndOfLine:                   "end-of-line",
		DescriptionTag:              "description-tag",
		DescriptionWithDot:          "description-with-dot",
		FormatDescriptions:          "format-descriptions",
		SeparateDescriptionFromTags: "separate-description",
		VerticalAlignment:           "vertical-alignment",
		CommentLineStrategy:         "comment-line-strategy",
		SeparateReturnsFromParam:    "separate-returns",
		SeparateTagGroups:           "separate-tag-groups",
		AddDefaultToDescription:     "add-default-to-description",
		CapitalizeDescription:       "capitalize-description",
		PreferCodeFences:            "prefer-code-fences",
		TSDoc:                       "tsdoc",
		TagsOrder:                   "tags-order",
		AliasTagsMode:               "alias-tags-mode",
		PreferredAliases:            "preferred-aliases",
		AliasConflictStrategy:       "alias-conflict-strategy",
		TypeSeparator:               "type-separator",
		Concurrency:                 "concurrency",
		ExampleCommand:              "example-command",
	}

	return &Config{Flags: f}
}

// RegisterFlags adds formatting flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	c.flagSet = flags
	d := DefaultOptions()

	flags.IntVar(&c.Spaces, c.Flags.Spaces, d.Spaces,
		"spaces between tag, type, name and description")
	flags.IntVar(&c.PrintWidth, c.Flags.PrintWidth, d.PrintWidth,
		"maximum line width")
	flags.IntVar(&c.DescriptionPrintWidth, c.Flags.DescriptionPrintWidth, d.DescriptionPrintWidth,
		"maximum line width for comments (0 uses --"+c.Flags.PrintWidth+")")
	flags.IntVar(&c.TabWidth, c.Flags.TabWidth, d.TabWidth,
		"width of a tab, and the indentation of example code")
	flags.BoolVar(&c.UseTabs, c.Flags.UseTabs, d.UseTabs,
		"indent example code with tabs")
	flags.StringVar(&c.EndOfLine, c.Flags.EndOfLine, string(d.EndOfLine),
		"line ending: "+joinValues(EndOfLines))
	flags.BoolVar(&c.DescriptionTag, c.Flags.DescriptionTag, d.DescriptionTag,
		"render the description as an explicit @description tag")
	flags.BoolVar(&c.DescriptionWithDot, c.Flags.DescriptionWithDot, d.DescriptionWithDot,
		"end descriptions with a period")
	flags.BoolVar(&c.FormatDescriptions, c.Flags.FormatDescriptions, d.FormatDescriptions,
		"wrap and capitalize descriptions")
	flags.BoolVar(&c.SeparateDescriptionFromTags, c.Flags.SeparateDescriptionFromTags,
		d.SeparateDescriptionFromTags,
		"always put a blank line between the description and the tags")
	flags.BoolVar(&c.VerticalAlignment, c.Flags.VerticalAlignment, d.VerticalAlignment,
		"align tag types, names and descriptions in columns")
	flags.StringVar(&c.CommentLineStrategy, c.Flags.CommentLineStrategy, string(d.CommentLineStrategy),
		"when to use single-line comments: "+joinValues(LineStrategies))
	flags.BoolVar(&c.SeparateReturnsFromParam, c.Flags.SeparateReturnsFromParam, d.SeparateReturnsFromParam,
		"put a blank line between @param and @returns")
	flags.BoolVar(&c.SeparateTagGroups, c.Flags.SeparateTagGroups, d.SeparateTagGroups,
		"put a blank line between tags of different kinds")
	flags.BoolVar(&c.AddDefaultToDescription, c.Flags.AddDefaultToDescription, d.AddDefaultToDescription,
		"append default values to descriptions")
	flags.BoolVar(&c.CapitalizeDescription, c.Flags.CapitalizeDescription, d.CapitalizeDescription,
		"capitalize the first word of descriptions")
	flags.BoolVar(&c.PreferCodeFences, c.Flags.PreferCodeFences, d.PreferCodeFences,
		"render indented code blocks as fenced code")
	flags.BoolVar(&c.TSDoc, c.Flags.TSDoc, d.TSDoc,
		"treat comments as TSDoc")
	flags.StringVar(&c.TagsOrder, c.Flags.TagsOrder, "",
		"tag weight overrides as tag=weight pairs or a JSON object")
	flags.StringVar(&c.AliasTagsMode, c.Flags.AliasTagsMode, string(d.AliasTagsMode),
		"alias spelling mode: "+joinValues(tags.Modes))
	flags.StringVar(&c.PreferredAliases, c.Flags.PreferredAliases, "",
		"preferred alias spellings as group=spelling pairs or a JSON object")
	flags.StringVar(&c.AliasConflictStrategy, c.Flags.AliasConflictStrategy, string(d.AliasConflictStrategy),
		"duplicate tag handling in strict mode: "+joinValues(ConflictStrategies))
	flags.StringVar(&c.TypeSeparator, c.Flags.TypeSeparator, string(d.TypeSeparator),
		"object type field separator: "+joinValues(TypeSeparators))
	flags.IntVar(&c.Concurrency, c.Flags.Concurrency, d.Concurrency,
		"maximum comments formatted concurrently per file (0 for no limit)")
	flags.StringVar(&c.ExampleCommand, c.Flags.ExampleCommand, "",
		"command that formats @example code from stdin, e.g. \"prettier --stdin-filepath x.js\"")
}

// RegisterCompletions registers shell completions for formatting flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	fixed := map[string][]string{
		c.Flags.EndOfLine:             stringValues(EndOfLines),
		c.Flags.CommentLineStrategy:   stringValues(LineStrategies),
		c.Flags.AliasTagsMode:         stringValues(tags.Modes),
		c.Flags.AliasConflictStrategy: stringValues(ConflictStrategies),
		c.Flags.TypeSeparator:         stringValues(TypeSeparators),
	}

	for flag, values := range fixed {
		err := cmd.RegisterFlagCompletionFunc(flag,
			cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{
		c.Flags.Spaces, c.Flags.PrintWidth, c.Flags.DescriptionPrintWidth, c.Flags.TabWidth,
		c.Flags.TagsOrder, c.Flags.PreferredAliases, c.Flags.Concurrency, c.Flags.ExampleCommand,
	} {
		err := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	return nil
}

// Options returns base with every flag that was set applied on top. When
// flags were never registered, every field of the [Config] is applied.
func (c *Config) Options(base Options) (Options, error) {
	o := base

	set := func(flag string, apply func()) {
		if c.flagSet == nil || c.flagSet.Changed(flag) {
			apply()
		}
	}

	set(c.Flags.Spaces, func() { o.Spaces = c.Spaces })
	set(c.Flags.PrintWidth, func() { o.PrintWidth = c.PrintWidth })
	set(c.Flags.DescriptionPrintWidth, func() { o.DescriptionPrintWidth = c.DescriptionPrintWidth })
	set(c.Flags.TabWidth, func() { o.TabWidth = c.TabWidth })
	set(c.Flags.UseTabs, func() { o.UseTabs = c.UseTabs })
	set(c.Flags.EndOfLine, func() { o.EndOfLine = EndOfLine(c.EndOfLine) })
	set(c.Flags.DescriptionTag, func() { o.DescriptionTag = c.DescriptionTag })
	set(c.Flags.DescriptionWithDot, func() { o.DescriptionWithDot = c.DescriptionWithDot })
	set(c.Flags.FormatDescriptions, func() { o.FormatDescriptions = c.FormatDescriptions })
	set(c.Flags.SeparateDescriptionFromTags, func() { o.SeparateDescriptionFromTags = c.SeparateDescriptionFromTags })
	set(c.Flags.VerticalAlignment, func() { o.VerticalAlignment = c.VerticalAlignment })
	set(c.Flags.CommentLineStrategy, func() { o.CommentLineStrategy = LineStrategy(c.CommentLineStrategy) })
	set(c.Flags.SeparateReturnsFromParam, func() { o.SeparateReturnsFromParam = c.SeparateReturnsFromParam })
	set(c.Flags.SeparateTagGroups, func() { o.SeparateTagGroups = c.SeparateTagGroups })
	set(c.Flags.AddDefaultToDescription, func() { o.AddDefaultToDescription = c.AddDefaultToDescription })
	set(c.Flags.CapitalizeDescription, func() { o.CapitalizeDescription = c.CapitalizeDescription })
	set(c.Flags.PreferCodeFences, func() { o.PreferCodeFences = c.PreferCodeFences })
	set(c.Flags.TSDoc, func() { o.TSDoc = c.TSDoc })
	set(c.Flags.AliasTagsMode, func() { o.AliasTagsMode = tags.Mode(c.AliasTagsMode) })
	set(c.Flags.AliasConflictStrategy, func() { o.AliasConflictStrategy = ConflictStrategy(c.AliasConflictStrategy) })
	set(c.Flags.TypeSeparator, func() { o.TypeSeparator = TypeSeparator(c.TypeSeparator) })
	set(c.Flags.Concurrency, func() { o.Concurrency = c.Concurrency })

	if c.TagsOrder != "" {
		order, err := ParseTagsOrder(c.TagsOrder)
		if err != nil {
			return Options{}, err
		}

		o.TagsOrder = order
	}

	if c.PreferredAliases != "" {
		preferred, err := ParsePreferredAliases(c.PreferredAliases)
		if err != nil {
			return Options{}, err
		}

		o.PreferredAliases = preferred
	}

	return o, o.Validate()
}

// NewFormatter creates a [Formatter] from base with the flag values of this
// [Config] applied. Flag values take precedence over extra.
func (c *Config) NewFormatter(base Options, extra ...Option) (*Formatter, error) {
	o, err := c.Options(base)
	if err != nil {
		return nil, err
	}

	opts := append(slices.Clone(extra), WithOptions(o))

	if cmd := strings.Fields(c.ExampleCommand); len(cmd) > 0 {
		opts = append(opts, WithCodeFormatter(ExecFormatter{Command: cmd}))
	}

	return NewFormatter(opts...)
}

func stringValues[T ~string](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}

	return out
}

func joinValues[T ~string](values []T) string {
	return strings.Join(stringValues(values), ", ")
}
