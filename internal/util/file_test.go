package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadIntFromFile(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "temp1_input")
	assert.NoError(t, os.WriteFile(path, []byte("38000\n"), 0o644))

	// WHEN
	value, err := ReadIntFromFile(path)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 38000, value)
}

func TestReadIntFromFileMissing(t *testing.T) {
	// WHEN
	_, err := ReadIntFromFile("/this/path/does/not/exist")

	// THEN
	assert.Error(t, err)
}

func TestReadIntFromFileEmpty(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "temp1_input")
	assert.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

	// WHEN
	_, err := ReadIntFromFile(path)

	// THEN
	assert.Error(t, err)
}

func TestExpandGlobPlainPath(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "temp1_input")
	assert.NoError(t, os.WriteFile(path, []byte("1"), 0o644))

	// WHEN
	resolved, err := ExpandGlob(path)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, path, resolved)
}

func TestExpandGlobPattern(t *testing.T) {
	// GIVEN
	// mimics the hwmon layout where the hwmon number is unstable
	dir := t.TempDir()
	assert.NoError(t, os.MkdirAll(filepath.Join(dir, "hwmon3"), 0o755))
	target := filepath.Join(dir, "hwmon3", "temp1_input")
	assert.NoError(t, os.WriteFile(target, []byte("45000"), 0o644))

	// WHEN
	resolved, err := ExpandGlob(filepath.Join(dir, "hwmon*", "temp1_input"))

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, target, resolved)
}

func TestExpandGlobNoMatch(t *testing.T) {
	// WHEN
	_, err := ExpandGlob(filepath.Join(t.TempDir(), "hwmon*", "temp1_input"))

	// THEN
	assert.Error(t, err)
}
