package jsdoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/jsdocfmt/jsdoc"
)

func TestOptionsValidate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		modify  func(*jsdoc.Options)
		wantErr bool
	}{
		"defaults": {
			modify: func(*jsdoc.Options) {},
		},
		"negative spaces": {
			modify:  func(o *jsdoc.Options) { o.Spaces = -1 },
			wantErr: true,
		},
		"zero print width": {
			modify:  func(o *jsdoc.Options) { o.PrintWidth = 0 },
			wantErr: true,
		},
		"zero tab width": {
			modify:  func(o *jsdoc.Options) { o.TabWidth = 0 },
			wantErr: true,
		},
		"bad language width": {
			modify:  func(o *jsdoc.Options) { o.LanguageWidths = map[string]int{"tsx": -4} },
			wantErr: true,
		},
		"unknown end of line": {
			modify:  func(o *jsdoc.Options) { o.EndOfLine = "native" },
			wantErr: true,
		},
		"unknown line strategy": {
			modify:  func(o *jsdoc.Options) { o.CommentLineStrategy = "always" },
			wantErr: true,
		},
		"unknown alias mode": {
			modify:  func(o *jsdoc.Options) { o.AliasTagsMode = "loose" },
			wantErr: true,
		},
		"unknown type separator": {
			modify:  func(o *jsdoc.Options) { o.TypeSeparator = "pipe" },
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			opts := jsdoc.DefaultOptions()
			tc.modify(&opts)

			err := opts.Validate()
			if tc.wantErr {
				require.ErrorIs(t, err, jsdoc.ErrInvalidOption)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestParsePreferredAliases(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		want    map[string]string
		wantErr bool
	}{
		"empty": {
			input: "",
		},
		"pairs": {
			input: "returns=return, class=constructor",
			want:  map[string]string{"returns": "return", "class": "constructor"},
		},
		"json": {
			input: `{"returns": "return"}`,
			want:  map[string]string{"returns": "return"},
		},
		"missing spelling": {
			input:   "returns=",
			wantErr: true,
		},
		"not a pair": {
			input:   "returns",
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := jsdoc.ParsePreferredAliases(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, jsdoc.ErrInvalidOption)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseTagsOrder(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		want    map[string]int
		wantErr bool
	}{
		"pairs": {
			input: "param=1, returns=2",
			want:  map[string]int{"param": 1, "returns": 2},
		},
		"json": {
			input: `{"example": 50, "other": 10}`,
			want:  map[string]int{"example": 50, "other": 10},
		},
		"bad weight": {
			input:   "param=first",
			wantErr: true,
		},
		"trailing junk": {
			input:   "param=1x",
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := jsdoc.ParseTagsOrder(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, jsdoc.ErrInvalidOption)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
