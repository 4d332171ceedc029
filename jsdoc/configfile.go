package jsdoc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/jsdocfmt/jsdoc/tags"
)

// ConfigFileNames are the file names searched by [FindConfigFile], in
// priority order.
var ConfigFileNames = []string{".jsdocfmt.yaml", ".jsdocfmt.yml", ".jsdocfmt.toml"}

// FileConfig is the content of a configuration file. Unset fields keep the
// value of the options they are applied to.
type FileConfig struct {
	Spaces                      *int              `json:"spaces,omitempty" jsonschema:"spaces between tag, type, name and description"`
	PrintWidth                  *int              `json:"printWidth,omitempty" jsonschema:"maximum line width"`
	DescriptionPrintWidth       *int              `json:"descriptionPrintWidth,omitempty" jsonschema:"maximum line width for comments, overriding printWidth"`
	TabWidth                    *int              `json:"tabWidth,omitempty" jsonschema:"width of a tab and the indentation of example code"`
	UseTabs                     *bool             `json:"useTabs,omitempty" jsonschema:"indent example code with tabs"`
	EndOfLine                   *string           `json:"endOfLine,omitempty" jsonschema:"line ending of formatted comments"`
	DescriptionTag              *bool             `json:"descriptionTag,omitempty" jsonschema:"render the description as an explicit @description tag"`
	DescriptionWithDot          *bool             `json:"descriptionWithDot,omitempty" jsonschema:"end descriptions with a period"`
	FormatDescriptions          *bool             `json:"formatDescriptions,omitempty" jsonschema:"wrap and capitalize descriptions"`
	SeparateDescriptionFromTags *bool             `json:"separateDescriptionFromTags,omitempty" jsonschema:"always put a blank line between the description and the tags"`
	VerticalAlignment           *bool             `json:"verticalAlignment,omitempty" jsonschema:"align tag types, names and descriptions in columns"`
	CommentLineStrategy         *string           `json:"commentLineStrategy,omitempty" jsonschema:"when to use single-line comments"`
	SeparateReturnsFromParam    *bool             `json:"separateReturnsFromParam,omitempty" jsonschema:"put a blank line between @param and @returns"`
	SeparateTagGroups           *bool             `json:"separateTagGroups,omitempty" jsonschema:"put a blank line between tags of different kinds"`
	AddDefaultToDescription     *bool             `json:"addDefaultToDescription,omitempty" jsonschema:"append default values to descriptions"`
	CapitalizeDescription       *bool             `json:"capitalizeDescription,omitempty" jsonschema:"capitalize the first word of descriptions"`
	PreferCodeFences            *bool             `json:"preferCodeFences,omitempty" jsonschema:"render indented code blocks as fenced code"`
	TSDoc                       *bool             `json:"tsdoc,omitempty" jsonschema:"treat comments as TSDoc"`
	TagsOrder                   map[string]int    `json:"tagsOrder,omitempty" jsonschema:"tag weight overrides, smaller first"`
	AliasTagsMode               *string           `json:"aliasTagsMode,omitempty" jsonschema:"alias spelling mode"`
	PreferredAliases            map[string]string `json:"preferredAliases,omitempty" jsonschema:"preferred spelling per alias group"`
	AliasConflictStrategy       *string           `json:"aliasConflictStrategy,omitempty" jsonschema:"duplicate tag handling in strict mode"`
	TypeSeparator               *string           `json:"typeSeparator,omitempty" jsonschema:"object type field separator"`
	LanguageWidths              map[string]int    `json:"languageWidths,omitempty" jsonschema:"print width per source language"`
	Concurrency                 *int              `json:"concurrency,omitempty" jsonschema:"maximum comments formatted concurrently per file"`
	ExampleCommand              []string          `json:"exampleCommand,omitempty" jsonschema:"command and arguments that format @example code from stdin"`
}

// Apply returns base with every set field of fc applied.
func (fc *FileConfig) Apply(base Options) Options {
	o := base

	setPtr(&o.Spaces, fc.Spaces)
	setPtr(&o.PrintWidth, fc.PrintWidth)
	setPtr(&o.DescriptionPrintWidth, fc.DescriptionPrintWidth)
	setPtr(&o.TabWidth, fc.TabWidth)
	setPtr(&o.UseTabs, fc.UseTabs)
	setPtr(&o.DescriptionTag, fc.DescriptionTag)
	setPtr(&o.DescriptionWithDot, fc.DescriptionWithDot)
	setPtr(&o.FormatDescriptions, fc.FormatDescriptions)
	setPtr(&o.SeparateDescriptionFromTags, fc.SeparateDescriptionFromTags)
	setPtr(&o.VerticalAlignment, fc.VerticalAlignment)
	setPtr(&o.SeparateReturnsFromParam, fc.SeparateReturnsFromParam)
	setPtr(&o.SeparateTagGroups, fc.SeparateTagGroups)
	setPtr(&o.AddDefaultToDescription, fc.AddDefaultToDescription)
	setPtr(&o.CapitalizeDescription, fc.CapitalizeDescription)
	setPtr(&o.PreferCodeFences, fc.PreferCodeFences)
	setPtr(&o.TSDoc, fc.TSDoc)
	setPtr(&o.Concurrency, fc.Concurrency)

	setString(&o.EndOfLine, fc.EndOfLine)
	setString(&o.CommentLineStrategy, fc.CommentLineStrategy)
	setString(&o.AliasTagsMode, fc.AliasTagsMode)
	setString(&o.AliasConflictStrategy, fc.AliasConflictStrategy)
	setString(&o.TypeSeparator, fc.TypeSeparator)

	if fc.TagsOrder != nil {
		o.TagsOrder = fc.TagsOrder
	}

	if fc.PreferredAliases != nil {
		o.PreferredAliases = fc.PreferredAliases
	}

	if fc.LanguageWidths != nil {
		o.LanguageWidths = fc.LanguageWidths
	}

	return o
}

// FormatterOptions returns the [Formatter] options implied by fc beyond
// [Options], such as an external example code formatter.
func (fc *FileConfig) FormatterOptions(dir string) []Option {
	if len(fc.ExampleCommand) == 0 {
		return nil
	}

	return []Option{WithCodeFormatter(ExecFormatter{Command: fc.ExampleCommand, Dir: dir})}
}

func setPtr[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func setString[T ~string](dst *T, src *string) {
	if src != nil {
		*dst = T(*src)
	}
}

var resolvedSchema = sync.OnceValues(func() (*jsonschema.Resolved, error) {
	s, err := Schema()
	if err != nil {
		return nil, err
	}

	return s.Resolve(nil)
})

// Schema returns the JSON Schema of configuration files.
func Schema() (*jsonschema.Schema, error) {
	s, err := jsonschema.For[FileConfig](nil)
	if err != nil {
		return nil, fmt.Errorf("generating config schema: %w", err)
	}

	s.Title = "jsdocfmt configuration"

	enums := map[string][]any{
		"endOfLine":             anyValues(EndOfLines),
		"commentLineStrategy":   anyValues(LineStrategies),
		"aliasTagsMode":         anyValues(tags.Modes),
		"aliasConflictStrategy": anyValues(ConflictStrategies),
		"typeSeparator":         anyValues(TypeSeparators),
	}

	for name, values := range enums {
		if prop, ok := s.Properties[name]; ok {
			prop.Enum = values
		}
	}

	return s, nil
}

func anyValues[T ~string](values []T) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}

	return out
}

// ParseConfigFile decodes and validates configuration file content. The
// format is chosen by the extension of name: ".toml" for TOML, anything else
// for YAML (and therefore JSON).
func ParseConfigFile(name string, data []byte) (*FileConfig, error) {
	var raw map[string]any

	switch filepath.Ext(name) {
	case ".toml":
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrConfigFile, name, err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrConfigFile, name, err)
		}
	}

	if raw == nil {
		raw = map[string]any{}
	}

	// Round-trip through JSON so both decoders produce the value types the
	// schema validator and encoding/json expect.
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigFile, name, err)
	}

	var instance map[string]any

	err = json.Unmarshal(b, &instance)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigFile, name, err)
	}

	schema, err := resolvedSchema()
	if err != nil {
		return nil, err
	}

	err = schema.Validate(instance)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigFile, name, err)
	}

	var fc FileConfig

	err = json.Unmarshal(b, &fc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigFile, name, err)
	}

	return &fc, nil
}

// LoadConfigFile reads and parses the configuration file at path.
func LoadConfigFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path from user input is expected.
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigFile, err)
	}

	return ParseConfigFile(path, data)
}

// FindConfigFile returns the first of [ConfigFileNames] found in dir or its
// parents, or "" when there is none.
func FindConfigFile(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}

	for {
		for _, name := range ConfigFileNames {
			path := filepath.Join(dir, name)

			_, err := os.Stat(path)
			if err == nil {
				return path, nil
			}

			if !errors.Is(err, fs.ErrNotExist) {
				return "", fmt.Errorf("%w: %w", ErrConfigFile, err)
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}

		dir = parent
	}
}
