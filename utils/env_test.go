package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathsFallBackToDefaults(t *testing.T) {
	t.Setenv("CAFE_DB_PATH", "")
	t.Setenv("CAFE_BACKUP_PATH", "")
	t.Setenv("CAFE_SCHEMA", "")

	assert.Equal(t, DefaultStorePath, GetStorePath())
	assert.Equal(t, DefaultBackupPath, GetBackupPath())
	assert.Empty(t, GetSchemaPath())
}

func TestPathsFromEnvironment(t *testing.T) {
	t.Setenv("CAFE_DB_PATH", "/tmp/records.txt")
	t.Setenv("CAFE_BACKUP_PATH", "/tmp/records.bak")
	t.Setenv("CAFE_SCHEMA", "catalog.yaml")

	assert.Equal(t, "/tmp/records.txt", GetStorePath())
	assert.Equal(t, "/tmp/records.bak", GetBackupPath())
	assert.Equal(t, "catalog.yaml", GetSchemaPath())
}

func TestGetDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := GetDatabaseURL()
	assert.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://localhost/cafe")
	url, err := GetDatabaseURL()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/cafe", url)
}

func TestGetBackupOnStart(t *testing.T) {
	for value, want := range map[string]bool{"": false, "0": false, "no": false, "1": true, "true": true} {
		t.Setenv("CAFE_BACKUP_ON_START", value)
		assert.Equal(t, want, GetBackupOnStart(), value)
	}
}
