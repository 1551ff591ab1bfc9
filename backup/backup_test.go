package backup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/xxh3"
)

func TestCopyAndVerify(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "db.txt")
	dst := filepath.Join(dir, "db_backup.txt")
	require.NoError(t, os.WriteFile(src, []byte("T3OeM2"), 0644))

	res, err := Copy(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Bytes)
	assert.Equal(t, xxh3.HashString("T3OeM2"), res.Checksum)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "T3OeM2", string(data))
	require.NoError(t, Verify(dst, res.Checksum))

	require.NoError(t, os.WriteFile(dst, []byte("tampered"), 0644))
	assert.ErrorIs(t, Verify(dst, res.Checksum), ErrChecksumMismatch)
}

func TestCopyMissingSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "db.txt")

	res, err := Copy(src, filepath.Join(dir, "copy.txt"))
	require.NoError(t, err)
	assert.Zero(t, res.Bytes)
	_, err = os.Stat(src)
	assert.NoError(t, err)
}

func TestRestore(t *testing.T) {
	dir := t.TempDir()
	storePath := filepath.Join(dir, "db.txt")
	backupPath := filepath.Join(dir, "db_backup.txt")

	_, err := Restore(backupPath, storePath)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(backupPath, []byte("saved"), 0644))
	require.NoError(t, os.WriteFile(storePath, []byte("broken"), 0644))
	_, err = Restore(backupPath, storePath)
	require.NoError(t, err)

	data, _ := os.ReadFile(storePath)
	assert.Equal(t, "saved", string(data))
}
