package tags_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/jsdocfmt/jsdoc/tags"
)

func TestResolverLogical(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"alias resolves to canonical": {
			input: "return",
			want:  tags.Returns,
		},
		"alias is case insensitive": {
			input: "ARG",
			want:  tags.Param,
		},
		"augments resolves to extends": {
			input: "augments",
			want:  tags.Extends,
		},
		"known tag gets canonical casing": {
			input: "typeparam",
			want:  tags.TypeParam,
		},
		"defaultValue keeps its own tag": {
			input: "defaultvalue",
			want:  tags.DefaultValue,
		},
		"unknown tag is unchanged": {
			input: "customTag",
			want:  "customTag",
		},
	}

	r := tags.Resolver{Table: tags.Default(), Mode: tags.ModeNormalize}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, r.Logical(tc.input))
		})
	}
}

func TestResolverRenderTag(t *testing.T) {
	t.Parallel()

	preferred := map[string]string{"returns": "return", "class": "constructor"}

	tcs := map[string]struct {
		mode    tags.Mode
		logical string
		source  []string
		want    string
	}{
		"normalize never overrides": {
			mode:    tags.ModeNormalize,
			logical: tags.Returns,
			source:  []string{" * @return {number} x"},
			want:    "",
		},
		"prefer uses preferred spelling": {
			mode:    tags.ModePrefer,
			logical: tags.Returns,
			want:    "return",
		},
		"prefer falls back to canonical": {
			mode:    tags.ModePrefer,
			logical: tags.Fires,
			want:    tags.Fires,
		},
		"prefer ignores tags without a group": {
			mode:    tags.ModePrefer,
			logical: tags.See,
			want:    "",
		},
		"strict behaves like prefer": {
			mode:    tags.ModeStrict,
			logical: tags.Class,
			want:    "constructor",
		},
		"preserve recovers source spelling": {
			mode:    tags.ModePreserve,
			logical: tags.Returns,
			source:  []string{" * @Return {number} x"},
			want:    "return",
		},
		"preserve falls back to logical tag": {
			mode:    tags.ModePreserve,
			logical: tags.Description,
			want:    tags.Description,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := tags.Resolver{Table: tags.Default(), Mode: tc.mode, Preferred: preferred}
			assert.Equal(t, tc.want, r.RenderTag(tc.logical, tc.source))
		})
	}
}

func TestDefaultTable(t *testing.T) {
	t.Parallel()

	table := tags.Default()

	t.Run("roles", func(t *testing.T) {
		t.Parallel()

		assert.True(t, table.Role(tags.File).Nameless)
		assert.True(t, table.Role(tags.Returns).Nameless)
		assert.False(t, table.Role(tags.Param).Nameless)
		assert.True(t, table.Role(tags.Example).Typeless)
		assert.True(t, table.Role(tags.Param).Alignable)
		assert.True(t, table.Role(tags.Typedef).GroupHead)
		assert.True(t, table.Role(tags.Param).GroupCondition)
		assert.False(t, table.Role(tags.Returns).GroupHead)
		assert.True(t, table.Role(tags.Borrows).NoWrap)
		assert.Equal(t, tags.Role{}, table.Role("customTag"))
	})

	t.Run("weights", func(t *testing.T) {
		t.Parallel()

		assert.Less(t, table.Weight(tags.Description), table.Weight(tags.Param))
		assert.Less(t, table.Weight(tags.Param), table.Weight(tags.Returns))
		assert.Less(t, table.Weight(tags.Returns), table.Weight("customTag"))
		assert.Less(t, table.Weight("customTag"), table.Weight(tags.Todo))
		assert.True(t, table.Known(tags.Param))
		assert.False(t, table.Known("customTag"))
	})

	t.Run("groups", func(t *testing.T) {
		t.Parallel()

		id, ok := table.GroupOf("Exception")
		require.True(t, ok)
		assert.Equal(t, "throws", id)

		g, ok := table.Group("returns")
		require.True(t, ok)
		assert.True(t, g.NonRepeatable)
		assert.Equal(t, tags.Returns, table.CanonicalOf("returns"))
		assert.Equal(t, "unknown", table.CanonicalOf("unknown"))
	})
}

func TestNewTable(t *testing.T) {
	t.Parallel()

	table := tags.New(
		map[string]tags.Role{"a": {GroupHead: true}},
		map[string]int{"a": 1, "b": 5},
		[]tags.AliasGroup{{ID: "a", Canonical: "a", Aliases: []string{"alpha"}}},
	)

	assert.True(t, table.Role("a").GroupHead)
	assert.Equal(t, 6, table.Weight("unknown"))

	id, ok := table.GroupOf("ALPHA")
	require.True(t, ok)
	assert.Equal(t, "a", id)
}

func TestOriginalSpelling(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		source []string
		want   string
		ok     bool
	}{
		"first tag on first line": {
			source: []string{" * @Returns {x} y"},
			want:   "returns",
			ok:     true,
		},
		"skips lines without tags": {
			source: []string{"/**", " * @yield value"},
			want:   "yield",
			ok:     true,
		},
		"no tag": {
			source: []string{" * plain text"},
			ok:     false,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, ok := tags.OriginalSpelling(tc.source)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTableWithWeights(t *testing.T) {
	t.Parallel()

	base := tags.Default()
	table := base.WithWeights(map[string]int{
		tags.Returns: 1,
		"custom":     2,
		"other":      100,
	})

	assert.Equal(t, 1, table.Weight(tags.Returns))
	assert.Equal(t, 2, table.Weight("custom"))
	assert.True(t, table.Known("custom"))
	assert.Equal(t, 100, table.Weight("unknown"))
	assert.Equal(t, 42, base.Weight(tags.Returns))
	assert.False(t, base.Known("custom"))
	assert.Same(t, base, base.WithWeights(nil))
}
