package skills

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	t.Cleanup(viper.Reset)

	tmpDir := t.TempDir()
	for _, name := range []string{"workflows-git", "pdf"} {
		writeSkillFile(t, filepath.Join(tmpDir, name), simpleSkill(name, "Skill "+name))
	}

	t.Run("configured dirs and allowlist", func(t *testing.T) {
		viper.Reset()
		viper.Set("skills.dirs", []string{tmpDir})
		viper.Set("skills.allowed", []string{"workflows-*", "command-spec-kit"})

		discovery, err := Initialize(context.Background())
		require.NoError(t, err)

		names, err := discovery.ListSkillNames(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"workflows-git", "command-spec-kit"}, names)
	})

	t.Run("builtins disabled", func(t *testing.T) {
		viper.Reset()
		viper.Set("skills.dirs", []string{tmpDir})
		viper.Set("skills.builtins", false)

		discovery, err := Initialize(context.Background())
		require.NoError(t, err)

		names, err := discovery.ListSkillNames(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"pdf", "workflows-git"}, names)
	})

	t.Run("defaults", func(t *testing.T) {
		viper.Reset()

		discovery, err := Initialize(context.Background())
		require.NoError(t, err)
		assert.Len(t, discovery.skillDirs, 2)
		assert.True(t, discovery.builtins)
	})

	t.Run("invalid allowlist", func(t *testing.T) {
		viper.Reset()
		viper.Set("skills.dirs", []string{tmpDir})
		viper.Set("skills.allowed", []string{"[z-a"})

		_, err := Initialize(context.Background())
		assert.Error(t, err)
	})
}
