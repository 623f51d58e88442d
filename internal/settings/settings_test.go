package settings

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfgkv.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, FormatNative, s.Output.Format)
	assert.Equal(t, "warn", s.Log.Level)
	assert.False(t, s.Parse.LenientArrays)
	assert.Zero(t, s.Parse.MaxSize)
	require.NoError(t, s.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("full file", func(t *testing.T) {
		path := writeFile(t, `
[output]
format = "yaml"

[parse]
lenient_arrays = true
max_size = 4096

[log]
level = "debug"
`)
		s, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, FormatYAML, s.Output.Format)
		assert.True(t, s.Parse.LenientArrays)
		assert.Equal(t, int64(4096), s.Parse.MaxSize)

		level, err := s.LogLevel()
		require.NoError(t, err)
		assert.Equal(t, slog.LevelDebug, level)
	})

	t.Run("missing fields get defaults", func(t *testing.T) {
		s, err := Load(writeFile(t, "[parse]\nmax_size = 10\n"))
		require.NoError(t, err)
		assert.Equal(t, FormatNative, s.Output.Format)
		assert.Equal(t, "warn", s.Log.Level)
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		_, err := Load(writeFile(t, "[output]\nformatt = \"json\"\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "output.formatt")
	})

	t.Run("invalid values", func(t *testing.T) {
		for _, content := range []string{
			"[output]\nformat = \"xml\"\n",
			"[parse]\nmax_size = -1\n",
			"[log]\nlevel = \"loud\"\n",
		} {
			_, err := Load(writeFile(t, content))
			assert.Error(t, err, content)
		}
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := Load(writeFile(t, "[output\n"))
		assert.Error(t, err)
	})
}

func TestResolve(t *testing.T) {
	t.Run("nothing configured gives defaults", func(t *testing.T) {
		t.Setenv(EnvVar, "")
		s, path, err := Resolve("")
		require.NoError(t, err)
		assert.Empty(t, path)
		assert.Equal(t, Default(), s)
	})

	t.Run("explicit path wins over environment", func(t *testing.T) {
		envPath := writeFile(t, "[output]\nformat = \"yaml\"\n")
		flagPath := writeFile(t, "[output]\nformat = \"json\"\n")
		t.Setenv(EnvVar, envPath)

		s, path, err := Resolve(flagPath)
		require.NoError(t, err)
		assert.Equal(t, flagPath, path)
		assert.Equal(t, FormatJSON, s.Output.Format)

		s, path, err = Resolve("")
		require.NoError(t, err)
		assert.Equal(t, envPath, path)
		assert.Equal(t, FormatYAML, s.Output.Format)
	})

	t.Run("named file must exist", func(t *testing.T) {
		_, _, err := Resolve(filepath.Join(t.TempDir(), "missing.toml"))
		assert.Error(t, err)
	})
}

func TestParseOptions(t *testing.T) {
	s := Default()
	assert.Len(t, s.ParseOptions(nil), 1)

	s.Parse.LenientArrays = true
	opts := s.ParseOptions(slog.Default())
	assert.Len(t, opts, 3)
}
