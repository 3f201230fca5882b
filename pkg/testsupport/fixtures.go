package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

// LoadFixture reads testdata/name relative to the calling package.
func LoadFixture(t testing.TB, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return data
}

// LoadYAML decodes testdata/name into v.
func LoadYAML(t testing.TB, name string, v any) {
	t.Helper()
	if err := yaml.Unmarshal(LoadFixture(t, name), v); err != nil {
		t.Fatalf("decode fixture %s: %v", name, err)
	}
}
