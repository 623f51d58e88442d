package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDump(t *testing.T) {
	t.Run("native by default", func(t *testing.T) {
		out, _, err := run(t, "dump", sampleFile)
		require.NoError(t, err)
		assert.Equal(t, sampleNative, out)
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := run(t, "dump", "--format", "json", sampleFile)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "{\n"))
		assert.Equal(t, 2, strings.Count(out, `"name"`))
		assert.Contains(t, out, `"weights":`)
	})

	t.Run("yaml", func(t *testing.T) {
		out, _, err := run(t, "dump", "-f", "yaml", commentsFile)
		require.NoError(t, err)
		assert.Equal(t, "{}", strings.TrimSpace(out))
	})

	t.Run("unknown format", func(t *testing.T) {
		_, _, err := run(t, "dump", "--format", "xml", sampleFile)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown output format "xml"`)
	})

	t.Run("needs a file", func(t *testing.T) {
		_, _, err := run(t, "dump")
		assert.Error(t, err)
	})
}

func TestGet(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"first match wins", []string{"name"}, "'edge-proxy'\n"},
		{"raw text", []string{"name", "--raw"}, "edge-proxy\n"},
		{"hex integer", []string{"port"}, "8080\n"},
		{"decimal", []string{"ratio"}, "0.75\n"},
		{"whole array", []string{"weights", "--array"}, "[1,2.5,'auto']\n"},
		{"array element", []string{"weights", "-a", "--index", "1"}, "2.5\n"},
		{"array element zero", []string{"mirrors", "-a", "-i", "0", "-r"}, "eu-1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"get", sampleFile}, tt.args...)
			out, _, err := run(t, args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	errTests := []struct {
		name string
		args []string
		msg  string
	}{
		{"missing key", []string{"nope"}, `no primitive entry "nope"`},
		{"kind mismatch", []string{"mirrors"}, `no primitive entry "mirrors"`},
		{"array kind mismatch", []string{"port", "--array"}, `no array entry "port"`},
		{"index without array", []string{"port", "--index", "0"}, "--index requires --array"},
		{"index out of range", []string{"mirrors", "-a", "-i", "2"}, `index 2 out of range for "mirrors" (length 2)`},
		{"negative index", []string{"mirrors", "-a", "-i", "-1"}, "out of range"},
		{"empty array", []string{"empty", "-a", "-i", "0"}, "(length 0)"},
	}
	for _, tt := range errTests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"get", sampleFile}, tt.args...)
			_, _, err := run(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestCheck(t *testing.T) {
	t.Run("all files valid", func(t *testing.T) {
		out, _, err := run(t, "check", sampleFile, commentsFile)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "ok   "+sampleFile+" (8 entries)", lines[0])
		assert.Equal(t, "ok   "+commentsFile+" (0 entries)", lines[1])
	})

	t.Run("reports every failure", func(t *testing.T) {
		out, _, err := run(t, "check", brokenFile, sampleFile, "missing.cfg")
		require.Error(t, err)
		assert.Equal(t, "2 of 3 files failed", err.Error())
		assert.Equal(t, 2, strings.Count(out, "FAIL "))
		assert.Contains(t, out, "broken.cfg:3:1")
		assert.Contains(t, out, "missing.cfg")
	})

	t.Run("needs at least one file", func(t *testing.T) {
		_, _, err := run(t, "check")
		assert.Error(t, err)
	})
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "cfgkv v"+Version)
	assert.Contains(t, out, "Go Version:")
}
