package jsdoc_test

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/jsdocfmt/jsdoc"
	"go.jacobcolvin.com/jsdocfmt/stringtest"
)

func TestIndentFormatter(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		code   string
		indent string
		want   string
	}{
		"adds indent": {
			code:   "a();\nb();",
			indent: "  ",
			want:   "  a();\n  b();",
		},
		"removes common indent": {
			code:   "    if (x) {\n      y();\n    }",
			indent: "  ",
			want:   stringtest.JoinLF("  if (x) {", "    y();", "  }"),
		},
		"drops blank edges and keeps inner blank lines empty": {
			code:   "\n\na();\n   \nb();\n\n",
			indent: "\t",
			want:   "\ta();\n\n\tb();",
		},
		"blank code": {
			code:   "\n  \n",
			indent: "  ",
			want:   "",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := jsdoc.IndentFormatter{}.FormatCode(t.Context(), tc.code, tc.indent)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExecFormatter(t *testing.T) {
	t.Parallel()

	t.Run("empty command", func(t *testing.T) {
		t.Parallel()

		_, err := jsdoc.ExecFormatter{}.FormatCode(t.Context(), "a();", "")
		require.ErrorIs(t, err, jsdoc.ErrInvalidOption)
	})

	t.Run("pipes through command", func(t *testing.T) {
		t.Parallel()

		cat, err := exec.LookPath("cat")
		if err != nil {
			t.Skip("cat not available")
		}

		got, err := jsdoc.ExecFormatter{Command: []string{cat}}.FormatCode(t.Context(), "  a();\n  b();", "  ")
		require.NoError(t, err)
		assert.Equal(t, "  a();\n  b();", got)
	})

	t.Run("command failure", func(t *testing.T) {
		t.Parallel()

		sh, err := exec.LookPath("sh")
		if err != nil {
			t.Skip("sh not available")
		}

		_, err = jsdoc.ExecFormatter{Command: []string{sh, "-c", "echo bad >&2; exit 3"}}.
			FormatCode(t.Context(), "a();", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad")
	})
}
