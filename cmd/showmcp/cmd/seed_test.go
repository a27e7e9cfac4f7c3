package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useFileStore points the CLI at a temporary file store for one test.
func useFileStore(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SHOWMCP_STORE_DRIVER", "file")
	t.Setenv("SHOWMCP_STORE_PATH", dir)
	return dir
}

func TestSeedCmd_WritesSampleRecords(t *testing.T) {
	dir := useFileStore(t)

	out, err := executeCommand(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 3 project record(s)")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestSeedCmd_RejectsMemoryStore(t *testing.T) {
	t.Setenv("SHOWMCP_STORE_DRIVER", "memory")

	_, err := executeCommand(t, "seed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not persist")
}

func TestSeedCmd_ImportFile(t *testing.T) {
	useFileStore(t)

	seedPath := filepath.Join(t.TempDir(), "records.json")
	payload := `[{
		"id": "blog",
		"title": "Static Blog Engine",
		"tags": ["blog"],
		"content": {"root": {"children": [
			{"tag": "h2", "text": "Rendering"},
			{"type": "paragraph", "children": [{"type": "text", "text": "Markdown rendered at build time."}]}
		]}}
	}]`
	require.NoError(t, os.WriteFile(seedPath, []byte(payload), 0o644))

	out, err := executeCommand(t, "seed", "--file", seedPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 1 project record(s)")
}

func TestIndexCmd_AfterSeed(t *testing.T) {
	useFileStore(t)

	_, err := executeCommand(t, "seed")
	require.NoError(t, err)

	out, err := executeCommand(t, "index")
	require.NoError(t, err)
	assert.Contains(t, out, "Realtime Chat Platform")
	assert.Contains(t, out, "fingerprint:")
	assert.Contains(t, out, "react")
}

func TestIndexCmd_UnknownProject(t *testing.T) {
	useFileStore(t)

	_, err := executeCommand(t, "index", "ghost")
	assert.Error(t, err)
}

func TestSearchCmd_AfterSeed(t *testing.T) {
	useFileStore(t)

	_, err := executeCommand(t, "seed")
	require.NoError(t, err)

	out, err := executeCommand(t, "search", "react")
	require.NoError(t, err)
	assert.Contains(t, out, "chat-platform")
}

func TestSearchCmd_JSONFormat(t *testing.T) {
	useFileStore(t)

	_, err := executeCommand(t, "seed")
	require.NoError(t, err)

	out, err := executeCommand(t, "search", "kubernetes", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"project_id": "cli-deployer"`)
}

func TestSummaryCmd_AfterSeed(t *testing.T) {
	useFileStore(t)

	_, err := executeCommand(t, "seed")
	require.NoError(t, err)

	out, err := executeCommand(t, "summary", "analytics-dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Analytics Dashboard")
	assert.Contains(t, out, "Visualization")
}
