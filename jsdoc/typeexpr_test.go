package jsdoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/jsdocfmt/jsdoc"
)

func TestNormalizeTypeSeparators(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input     string
		semicolon string
		comma     string
	}{
		"nested object literal": {
			input:     "{object:'value'; nested:{a:'b', c:'d'}}",
			semicolon: "{object:'value'; nested:{a:'b'; c:'d'}}",
			comma:     "{object:'value', nested:{a:'b', c:'d'}}",
		},
		"trailing separator dropped": {
			input:     "{ a: string; b: number; }",
			semicolon: "{ a: string; b: number }",
			comma:     "{ a: string, b: number }",
		},
		"generic arguments untouched": {
			input:     "Map<string, {a: 1, b: 2}>",
			semicolon: "Map<string, {a: 1; b: 2}>",
			comma:     "Map<string, {a: 1, b: 2}>",
		},
		"function parameters untouched": {
			input:     "{cb: (a, b) => void; n: number}",
			semicolon: "{cb: (a, b) => void; n: number}",
			comma:     "{cb: (a, b) => void, n: number}",
		},
		"string literals untouched": {
			input:     "{a: 'x;y', b: \"1,2\"}",
			semicolon: "{a: 'x;y'; b: \"1,2\"}",
			comma:     "{a: 'x;y', b: \"1,2\"}",
		},
		"tuple untouched": {
			input:     "[string, number]",
			semicolon: "[string, number]",
			comma:     "[string, number]",
		},
		"plain type": {
			input:     "string",
			semicolon: "string",
			comma:     "string",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.semicolon, jsdoc.NormalizeTypeSeparators(tc.input, jsdoc.SeparatorSemicolon))
			assert.Equal(t, tc.comma, jsdoc.NormalizeTypeSeparators(tc.input, jsdoc.SeparatorComma))
		})
	}
}

func TestPrepareType(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input        string
		want         string
		wantOptional bool
	}{
		"plain":                   {input: "string", want: "string"},
		"optional marker":         {input: "number=", want: "number", wantOptional: true},
		"legacy generic":          {input: "Array.<string>", want: "Array<string>"},
		"any":                     {input: "*", want: "any"},
		"leading nullable":        {input: "?string", want: "string | null"},
		"trailing nullable":       {input: "Foo.Bar?", want: "Foo.Bar | null"},
		"arrow type keeps equals": {input: "() => void", want: "() => void"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, optional := jsdoc.PrepareType(tc.input)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantOptional, optional)
		})
	}
}
