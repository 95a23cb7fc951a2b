package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// LoadFixture reads testdata/name relative to the calling package.
func LoadFixture(tb testing.TB, name string) []byte {
	tb.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		tb.Fatalf("load fixture %s: %v", name, err)
	}
	return data
}
