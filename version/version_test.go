package version_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/jsdocfmt/version"
)

// Not parallel: the test mutates package state.
func TestString(t *testing.T) {
	old, oldDate := version.Version, version.BuildDate

	t.Cleanup(func() {
		version.Version, version.BuildDate = old, oldDate
	})

	version.Version = "v1.2.3"
	version.BuildDate = "2026-01-02"

	got := version.String()
	assert.Contains(t, got, "v1.2.3")
	assert.Contains(t, got, "built 2026-01-02")
	assert.Contains(t, got, "revision "+version.Revision)
	assert.Contains(t, got, runtime.GOOS+"/"+runtime.GOARCH)

	version.Version = ""
	version.BuildDate = ""

	got = version.String()
	assert.NotContains(t, got, "built")
	assert.NotEmpty(t, got)
}
