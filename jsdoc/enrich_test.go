package jsdoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/jsdocfmt/jsdoc"
	"go.jacobcolvin.com/jsdocfmt/jsdoc/tags"
)

func TestAddDefaultToDescription(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input jsdoc.Entry
		want  string
	}{
		"appends note": {
			input: jsdoc.Entry{Tag: tags.Param, Optional: true, Default: "1", Description: "Count"},
			want:  "Count. Default is `1`",
		},
		"keeps existing period": {
			input: jsdoc.Entry{Tag: tags.Param, Optional: true, Default: "1", Description: "Count."},
			want:  "Count. Default is `1`",
		},
		"replaces earlier note": {
			input: jsdoc.Entry{
				Tag: tags.Param, Optional: true, Default: "2",
				Description: "Count. Default is `1`",
			},
			want: "Count. Default is `2`",
		},
		"empty description": {
			input: jsdoc.Entry{Tag: tags.Param, Optional: true, Default: "'a'"},
			want:  "Default is `'a'`",
		},
		"required entry is unchanged": {
			input: jsdoc.Entry{Tag: tags.Param, Default: "1", Description: "Count"},
			want:  "Count",
		},
		"no default is unchanged": {
			input: jsdoc.Entry{Tag: tags.Param, Optional: true, Description: "Count"},
			want:  "Count",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, jsdoc.AddDefaultToDescription(tc.input).Description)
		})
	}
}

func TestAssignOptionalAndDefaultToName(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input jsdoc.Entry
		want  jsdoc.Entry
	}{
		"optional name": {
			input: jsdoc.Entry{Tag: tags.Param, Name: "a", Optional: true},
			want:  jsdoc.Entry{Tag: tags.Param, Name: "[a]", Optional: true},
		},
		"optional name with default": {
			input: jsdoc.Entry{Tag: tags.Param, Name: "a", Default: "1", Optional: true},
			want:  jsdoc.Entry{Tag: tags.Param, Name: "[a=1]", Default: "1", Optional: true},
		},
		"optional without name widens type": {
			input: jsdoc.Entry{Tag: tags.Returns, Type: "string", Optional: true},
			want:  jsdoc.Entry{Tag: tags.Returns, Type: "string | undefined", Optional: true},
		},
		"required is unchanged": {
			input: jsdoc.Entry{Tag: tags.Param, Name: "a", Default: "1"},
			want:  jsdoc.Entry{Tag: tags.Param, Name: "a", Default: "1"},
		},
		"default tag takes literal from source": {
			input: jsdoc.Entry{
				Tag:         tags.DefaultTag,
				Description: "{a: 1} the value",
				Source:      []string{" * @default {a: 1} the value"},
			},
			want: jsdoc.Entry{
				Tag:         tags.DefaultTag,
				Type:        "{a: 1}",
				Description: "the value",
				Source:      []string{" * @default {a: 1} the value"},
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, jsdoc.AssignOptionalAndDefaultToName(tc.input))
		})
	}
}

func TestParseDefaultLiteral(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		line      string
		wantValue string
		wantDesc  string
		wantOK    bool
	}{
		"bare word": {
			line: " * @default 42", wantValue: "42", wantOK: true,
		},
		"bare word with description": {
			line: " * @default true when unset", wantValue: "true", wantDesc: "when unset", wantOK: true,
		},
		"array": {
			line: " * @default [1, 2] numbers", wantValue: "[1, 2]", wantDesc: "numbers", wantOK: true,
		},
		"object": {
			line: " * @defaultValue {a: 'b'}", wantValue: "{a: 'b'}", wantOK: true,
		},
		"parenthesized": {
			line: "@default (a) => a", wantValue: "(a)", wantDesc: "=> a", wantOK: true,
		},
		"single quoted": {
			line: "@default 'a b' text", wantValue: "'a b'", wantDesc: "text", wantOK: true,
		},
		"double quoted": {
			line: `@default "x"`, wantValue: `"x"`, wantOK: true,
		},
		"template literal": {
			line: "@default `x` y", wantValue: "`x`", wantDesc: "y", wantOK: true,
		},
		"comment terminator ignored": {
			line: "/** @default 5 */", wantValue: "5", wantOK: true,
		},
		"case insensitive tag": {
			line: "@DEFAULTVALUE 1", wantValue: "1", wantOK: true,
		},
		"no value": {
			line: " * @default",
		},
		"no tag": {
			line: " * plain text",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			value, desc, ok := jsdoc.ParseDefaultLiteral(tc.line)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantValue, value)
			assert.Equal(t, tc.wantDesc, desc)
		})
	}
}
