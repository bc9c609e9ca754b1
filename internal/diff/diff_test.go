package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifiedIdentical(t *testing.T) {
	text, err := Unified([]byte("a\nb\n"), []byte("a\nb\n"), "/tmp/mcp.json")
	require.NoError(t, err)
	assert.Empty(t, text, "identical contents should produce no diff")
}

func TestUnifiedChange(t *testing.T) {
	text, err := Unified([]byte("a\nb\nc\n"), []byte("a\nB\nc\n"), "/tmp/mcp.json")
	require.NoError(t, err)

	assert.Contains(t, text, "--- /tmp/mcp.json")
	assert.Contains(t, text, "+++ /tmp/mcp.json\n")
	assert.Contains(t, text, "-b\n")
	assert.Contains(t, text, "+B\n")
}

func TestUnifiedNewFile(t *testing.T) {
	text, err := Unified(nil, []byte("{}\n"), "/tmp/mcp.json")
	require.NoError(t, err)

	assert.Contains(t, text, "+++ /tmp/mcp.json (new)")
	assert.Contains(t, text, "+{}\n")
}

func TestUnifiedEmptyExistingFile(t *testing.T) {
	// A present-but-empty file is not "new".
	text, err := Unified([]byte{}, []byte("{}\n"), "/tmp/mcp.json")
	require.NoError(t, err)
	assert.NotContains(t, text, "(new)")
}
