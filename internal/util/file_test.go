package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteFileAtomic_NewFile(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "trajectory.csv")

	// WHEN
	err := WriteFileAtomic(filePath, strings.NewReader("tick,target\n"))

	// THEN
	assert.NoError(t, err)
	content, err := os.ReadFile(filePath)
	assert.NoError(t, err)
	assert.Equal(t, "tick,target\n", string(content))
}

func TestWriteFileAtomic_Replace(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "trajectory.csv")
	err := os.WriteFile(filePath, []byte("old"), 0644)
	assert.NoError(t, err)

	// WHEN
	err = WriteFileAtomic(filePath, strings.NewReader("new"))

	// THEN
	assert.NoError(t, err)
	content, _ := os.ReadFile(filePath)
	assert.Equal(t, "new", string(content))
}

func TestEnsureParentDir(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "a", "b", "pid2go.db")

	// WHEN
	err := EnsureParentDir(filePath)

	// THEN
	assert.NoError(t, err)
	info, err := os.Stat(filepath.Dir(filePath))
	assert.NoError(t, err)
	assert.True(t, info.IsDir())
}
