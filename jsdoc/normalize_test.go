package jsdoc_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/jsdocfmt/jsdoc"
	"go.jacobcolvin.com/jsdocfmt/jsdoc/commentparser"
	"go.jacobcolvin.com/jsdocfmt/jsdoc/tags"
)

var ignoreSource = cmpopts.IgnoreFields(jsdoc.Entry{}, "Source")

func TestNormalize(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		block *commentparser.Block
		mode  tags.Mode
		want  []jsdoc.Entry
	}{
		"nameless tag folds name into description": {
			block: &commentparser.Block{Tags: []commentparser.Spec{
				{Tag: "file", Name: "Full", Description: " screen widget"},
			}},
			want: []jsdoc.Entry{
				{Tag: tags.File, Description: "Full screen widget"},
			},
		},
		"nameless tag keeps optional name brackets": {
			block: &commentparser.Block{Tags: []commentparser.Spec{
				{Tag: "returns", Name: "x", Default: "1", Optional: true, Description: "value"},
			}},
			want: []jsdoc.Entry{
				{Tag: tags.Returns, Description: "[x=1] value"},
			},
		},
		"typeless tag folds type into description": {
			block: &commentparser.Block{Tags: []commentparser.Spec{
				{Tag: "since", Type: "v2", Description: "stable"},
			}},
			want: []jsdoc.Entry{
				{Tag: tags.Since, Description: "{v2} stable"},
			},
		},
		"glued type is split from tag": {
			block: &commentparser.Block{Tags: []commentparser.Spec{
				{Tag: "returns{Object}", Name: "Value", Description: "of the node"},
			}},
			want: []jsdoc.Entry{
				{Tag: tags.Returns, Type: "Object", Description: "Value of the node"},
			},
		},
		"aliases resolve to logical tags": {
			block: &commentparser.Block{Tags: []commentparser.Spec{
				{Tag: "arg", Type: "string", Name: "a"},
				{Tag: "return", Type: "number"},
			}},
			want: []jsdoc.Entry{
				{Tag: tags.Param, Type: "string", Name: "a"},
				{Tag: tags.Returns, Type: "number"},
			},
		},
		"descriptions fold into one leading entry": {
			block: &commentparser.Block{
				Description: "Block text.",
				Tags: []commentparser.Spec{
					{Tag: "param", Name: "a"},
					{Tag: "desc", Description: "Tag text."},
				},
			},
			want: []jsdoc.Entry{
				{Tag: tags.Description, Description: "Block text.\n\nTag text."},
				{Tag: tags.Param, Name: "a"},
			},
		},
		"description tag without block description": {
			block: &commentparser.Block{Tags: []commentparser.Spec{
				{Tag: "description", Description: "Only tag text."},
			}},
			want: []jsdoc.Entry{
				{Tag: tags.Description, Description: "Only tag text."},
			},
		},
		"hyphen separator is removed": {
			block: &commentparser.Block{Tags: []commentparser.Spec{
				{Tag: "param", Name: "a", Description: "- the value"},
			}},
			want: []jsdoc.Entry{
				{Tag: tags.Param, Name: "a", Description: "the value"},
			},
		},
		"hyphen list is kept": {
			block: &commentparser.Block{Tags: []commentparser.Spec{
				{Tag: "param", Name: "a", Description: "- one\n- two"},
			}},
			want: []jsdoc.Entry{
				{Tag: tags.Param, Name: "a", Description: "- one\n- two"},
			},
		},
		"duplicates are kept outside strict mode": {
			block: &commentparser.Block{Tags: []commentparser.Spec{
				{Tag: "returns", Type: "A"},
				{Tag: "return", Type: "B"},
			}},
			mode: tags.ModePrefer,
			want: []jsdoc.Entry{
				{Tag: tags.Returns, Type: "A"},
				{Tag: tags.Returns, Type: "B"},
			},
		},
		"repeatable groups are kept in strict mode": {
			block: &commentparser.Block{Tags: []commentparser.Spec{
				{Tag: "param", Name: "a"},
				{Tag: "arg", Name: "b"},
			}},
			mode: tags.ModeStrict,
			want: []jsdoc.Entry{
				{Tag: tags.Param, Name: "a"},
				{Tag: tags.Param, Name: "b"},
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			mode := tc.mode
			if mode == "" {
				mode = tags.ModeNormalize
			}

			r := tags.Resolver{Table: tags.Default(), Mode: mode}

			got, diags := jsdoc.Normalize(tc.block, r, jsdoc.ConflictMerge)
			assert.Empty(t, diags)

			if diff := cmp.Diff(tc.want, got, ignoreSource); diff != "" {
				t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeConflicts(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		specs     []commentparser.Spec
		strategy  jsdoc.ConflictStrategy
		want      []jsdoc.Entry
		wantDiags int
	}{
		"merge backfills type and adopts longest description": {
			specs: []commentparser.Spec{
				{Tag: "returns", Type: "number", Description: "0123456789"},
				{Tag: "return", Description: "01234567890123456789"},
			},
			strategy: jsdoc.ConflictMerge,
			want: []jsdoc.Entry{
				{Tag: tags.Returns, Type: "number", Description: "01234567890123456789"},
			},
		},
		"merge takes type from later duplicate": {
			specs: []commentparser.Spec{
				{Tag: "returns", Description: "short"},
				{Tag: "return", Type: "number", Description: "tiny"},
			},
			strategy: jsdoc.ConflictMerge,
			want: []jsdoc.Entry{
				{Tag: tags.Returns, Type: "number", Description: "short"},
			},
		},
		"first keeps first occurrence": {
			specs: []commentparser.Spec{
				{Tag: "returns", Type: "A", Description: "x"},
				{Tag: "return", Type: "B", Description: "y"},
			},
			strategy: jsdoc.ConflictFirst,
			want: []jsdoc.Entry{
				{Tag: tags.Returns, Type: "A", Description: "x"},
			},
		},
		"last keeps last occurrence": {
			specs: []commentparser.Spec{
				{Tag: "returns", Type: "A", Description: "x"},
				{Tag: "return", Type: "B", Description: "y"},
			},
			strategy: jsdoc.ConflictLast,
			want: []jsdoc.Entry{
				{Tag: tags.Returns, Type: "B", Description: "y"},
			},
		},
		"error keeps first occurrence and reports": {
			specs: []commentparser.Spec{
				{Tag: "extends", Name: "A"},
				{Tag: "augments", Name: "B"},
				{Tag: "param", Name: "c"},
			},
			strategy: jsdoc.ConflictError,
			want: []jsdoc.Entry{
				{Tag: tags.Extends, Name: "A"},
				{Tag: tags.Param, Name: "c"},
			},
			wantDiags: 1,
		},
		"other tags keep their positions": {
			specs: []commentparser.Spec{
				{Tag: "param", Name: "a"},
				{Tag: "returns", Type: "A"},
				{Tag: "throws", Type: "Error"},
				{Tag: "return", Type: "B"},
			},
			strategy: jsdoc.ConflictLast,
			want: []jsdoc.Entry{
				{Tag: tags.Param, Name: "a"},
				{Tag: tags.Throws, Type: "Error"},
				{Tag: tags.Returns, Type: "B"},
			},
		},
	}

	r := tags.Resolver{Table: tags.Default(), Mode: tags.ModeStrict}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, diags := jsdoc.Normalize(&commentparser.Block{Tags: tc.specs}, r, tc.strategy)

			if diff := cmp.Diff(tc.want, got, ignoreSource); diff != "" {
				t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
			}

			require.Len(t, diags, tc.wantDiags)

			for _, d := range diags {
				require.ErrorIs(t, d, jsdoc.ErrAliasConflict)
				assert.Equal(t, tags.Extends, d.Tag)
			}
		})
	}
}
