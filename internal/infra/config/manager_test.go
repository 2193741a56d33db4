package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/brutal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_LocalConfigInfo(t *testing.T) {
	t.Run("returns info when file exists", func(t *testing.T) {
		workDir := t.TempDir()
		configContent := "[log]\nlevel = \"debug\""
		writeFile(t, domain.LocalConfigPath(workDir), configContent)

		info := NewManagerWithGlobalDir(workDir, "").LocalConfigInfo()

		assert.Equal(t, domain.LocalConfigPath(workDir), info.Path)
		assert.Equal(t, configContent, info.Content)
		assert.True(t, info.Exists)
	})

	t.Run("returns info when file does not exist", func(t *testing.T) {
		workDir := t.TempDir()

		info := NewManagerWithGlobalDir(workDir, "").LocalConfigInfo()

		assert.Equal(t, domain.LocalConfigPath(workDir), info.Path)
		assert.Empty(t, info.Content)
		assert.False(t, info.Exists)
	})
}

func TestManager_GlobalConfigInfo(t *testing.T) {
	t.Run("returns empty info when global dir is empty", func(t *testing.T) {
		info := NewManagerWithGlobalDir(t.TempDir(), "").GlobalConfigInfo()

		assert.Empty(t, info.Path)
		assert.False(t, info.Exists)
	})

	t.Run("returns info when file exists", func(t *testing.T) {
		globalDir := t.TempDir()
		writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), "[tui]\nshow_help = false")

		info := NewManagerWithGlobalDir(t.TempDir(), globalDir).GlobalConfigInfo()

		assert.True(t, info.Exists)
		assert.Contains(t, info.Content, "show_help")
	})
}

func TestManager_InitLocalConfig(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		workDir := t.TempDir()
		manager := NewManagerWithGlobalDir(workDir, "")

		require.NoError(t, manager.InitLocalConfig())

		content, err := os.ReadFile(domain.LocalConfigPath(workDir))
		require.NoError(t, err)
		assert.Equal(t, domain.ConfigTemplate(), string(content))
	})

	t.Run("returns error when file exists", func(t *testing.T) {
		workDir := t.TempDir()
		writeFile(t, domain.LocalConfigPath(workDir), "existing")

		err := NewManagerWithGlobalDir(workDir, "").InitLocalConfig()

		assert.ErrorIs(t, err, domain.ErrConfigExists)
	})
}

func TestManager_InitGlobalConfig(t *testing.T) {
	t.Run("creates parent directory", func(t *testing.T) {
		globalDir := filepath.Join(t.TempDir(), "nested", "brutal")
		manager := NewManagerWithGlobalDir(t.TempDir(), globalDir)

		require.NoError(t, manager.InitGlobalConfig())

		assert.True(t, manager.GlobalConfigInfo().Exists)
	})

	t.Run("fails without global dir", func(t *testing.T) {
		err := NewManagerWithGlobalDir(t.TempDir(), "").InitGlobalConfig()

		assert.Error(t, err)
	})
}
