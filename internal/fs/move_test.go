package fs

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestFile creates a test file with given content
func createTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestMove(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "source.txt")
	dst := filepath.Join(dir, "nested", "deeper", "destination.txt")
	createTestFile(t, src, "test content")

	require.NoError(t, Move(src, dst, MoveOptions{}))

	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err), "source should not exist after move")

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "test content", string(content))
}

func TestMoveDirectory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tree")
	createTestFile(t, filepath.Join(src, "a.txt"), "a")
	createTestFile(t, filepath.Join(src, "sub", "b.txt"), "b")
	dst := filepath.Join(dir, "moved")

	require.NoError(t, Move(src, dst, MoveOptions{}))

	content, err := os.ReadFile(filepath.Join(dst, "sub", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(content))
	assert.NoDirExists(t, src)
}

func TestMoveErrors(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing.txt")
	createTestFile(t, existing, "keep")
	src := filepath.Join(dir, "src.txt")
	createTestFile(t, src, "new")

	tests := []struct {
		name string
		src  string
		dst  string
		want error
	}{
		{"empty source", "", existing, ErrInvalidPath},
		{"empty destination", src, "", ErrInvalidPath},
		{"missing source", filepath.Join(dir, "missing"), filepath.Join(dir, "out"), ErrSourceNotFound},
		{"existing destination", src, existing, ErrDestinationExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Move(tt.src, tt.dst, MoveOptions{AllowCrossDev: true})
			assert.ErrorIs(t, err, tt.want)
		})
	}

	content, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(content))
	assert.FileExists(t, src)
}

func TestMoveExistingDestinationNamesPaths(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	createTestFile(t, src, "new")
	createTestFile(t, dst, "old")

	err := Move(src, dst, MoveOptions{})
	require.True(t, IsDestinationExists(err))

	var moveErr *MoveError
	require.ErrorAs(t, err, &moveErr)
	assert.Equal(t, src, moveErr.Src)
	assert.Equal(t, dst, moveErr.Dst)
}

func TestMoveForce(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	createTestFile(t, src, "new")
	createTestFile(t, dst, "old")

	require.NoError(t, Move(src, dst, MoveOptions{Force: true}))

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestMoveSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	createTestFile(t, target, "target")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	dst := filepath.Join(dir, "trash", "link")
	require.NoError(t, Move(link, dst, MoveOptions{}))

	info, err := os.Lstat(dst)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "moved path should still be a link")
	assert.FileExists(t, target)
}

func TestCopyAndDelete(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tree")
	createTestFile(t, filepath.Join(src, "a.txt"), "a")
	dst := filepath.Join(dir, "copy")

	require.NoError(t, copyAndDelete(src, dst))

	assert.NoDirExists(t, src)
	content, err := os.ReadFile(filepath.Join(dst, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(content))
}

func TestMoveErrorUnwrap(t *testing.T) {
	err := error(&MoveError{Op: "rename", Src: "a", Dst: "b", Err: ErrCrossDeviceMove})
	assert.True(t, IsCrossDevice(err))
	assert.False(t, IsDestinationExists(err))

	var moveErr *MoveError
	require.True(t, errors.As(err, &moveErr))
	assert.Equal(t, "rename", moveErr.Op)
	assert.Contains(t, err.Error(), `from "a" to "b"`)
}
