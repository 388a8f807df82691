package advice

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules(t *testing.T) {
	r := DefaultRules()

	require.NoError(t, r.Validate())
	assert.Equal(t, "FinAssist KB", r.Source)
	assert.Equal(t, []string{"-", "•", "*"}, r.Bullets.Markers)
	assert.Equal(t, Caps{Allocation: 3, Strong: 5, Weak: 3, Minimal: 2}, r.Caps)
	assert.Len(t, r.Topics, 4)
	assert.Len(t, r.Annotations, 4)
	assert.Contains(t, r.FastPath.Answer, "50% to needs, 30% to wants, 20% to savings")
}

func TestLoadRules(t *testing.T) {
	write := func(t *testing.T, body string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}

	t.Run("Empty path gives defaults", func(t *testing.T) {
		r, err := LoadRules("")

		require.NoError(t, err)
		assert.Equal(t, DefaultRules(), r)
	})

	t.Run("File overrides listed keys only", func(t *testing.T) {
		path := write(t, "source: Household Handbook\nfast_path:\n  patterns: [\"70/20/10\"]\n  answer: \"Spend 70%, save 20%, give 10%.\"\n")

		r, err := LoadRules(path)

		require.NoError(t, err)
		assert.Equal(t, "Household Handbook", r.Source)
		assert.Equal(t, []string{"70/20/10"}, r.FastPath.Patterns)
		assert.Equal(t, DefaultRules().Topics, r.Topics)
		assert.Equal(t, 5, r.Caps.Strong)
	})

	t.Run("Invalid caps are rejected", func(t *testing.T) {
		path := write(t, "caps:\n  allocation: 3\n  strong: 0\n  weak: 3\n  minimal: 2\n")

		_, err := LoadRules(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "caps must be positive")
	})

	t.Run("Malformed YAML", func(t *testing.T) {
		path := write(t, "topics: [unterminated\n")

		_, err := LoadRules(path)

		assert.Error(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadRules(filepath.Join(t.TempDir(), "nope.yaml"))

		assert.Error(t, err)
	})
}
