package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfledger/librarian-go/internal/config"
)

// chdirTemp runs the test from an empty directory so a librarian.yaml in
// the repository root cannot leak into config loading.
func chdirTemp(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)

	return dir
}

func Test_Load_Defaults(t *testing.T) {
	// arrange
	chdirTemp(t)

	// act
	cfg, err := config.Load()

	// assert
	require.NoError(t, err)
	assert.Equal(t, "library_data.json", cfg.Storage.DataFile)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func Test_Load_EnvironmentOverridesDefaults(t *testing.T) {
	// arrange
	chdirTemp(t)
	t.Setenv("LIBRARIAN_STORAGE_DATA_FILE", "/tmp/other.json")
	t.Setenv("LIBRARIAN_LOGGING_LEVEL", "debug")

	// act
	cfg, err := config.Load()

	// assert
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.json", cfg.Storage.DataFile)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func Test_Load_ReadsConfigFile(t *testing.T) {
	// arrange
	dir := chdirTemp(t)
	content := "storage:\n  data_file: from_file.json\nlogging:\n  level: warn\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "librarian.yaml"), []byte(content), 0o644))

	// act
	cfg, err := config.Load()

	// assert
	require.NoError(t, err)
	assert.Equal(t, "from_file.json", cfg.Storage.DataFile)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func Test_Load_Error_OnInvalidLogLevel(t *testing.T) {
	// arrange
	chdirTemp(t)
	t.Setenv("LIBRARIAN_LOGGING_LEVEL", "loud")

	// act
	_, err := config.Load()

	// assert
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validating config")
}
