package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Gastos Table")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(mf.UpPath, "_add_gastos_table.up.sql"))
	assert.True(t, strings.HasSuffix(mf.DownPath, "_add_gastos_table.down.sql"))
	assert.Len(t, mf.Version, 14)

	for _, path := range []string{mf.UpPath, mf.DownPath} {
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "Add Gastos Table")
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"add gastos table", "add_gastos_table"},
		{"Add-Gastos--Table", "add_gastos_table"},
		{"trailing separator ", "trailing_separator"},
		{"números y más!", "nmeros_y_ms"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.in), tt.in)
	}
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing directory is empty, not an error", func(t *testing.T) {
		migrations, err := ListMigrations(filepath.Join(dir, "nope"))
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})

	t.Run("lists up/down pairs once", func(t *testing.T) {
		for _, name := range []string{
			"000001_init.up.sql",
			"000001_init.down.sql",
			"000002_add_gastos.up.sql",
			"000002_add_gastos.down.sql",
			"notes.txt",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0644))
		}

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_init", "000002_add_gastos"}, migrations)
	})
}
