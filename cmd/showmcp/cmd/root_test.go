package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showfolio/showmcp/pkg/version"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	root := NewRootCmd()

	want := []string{"serve", "index", "search", "summary", "seed", "version"}
	var got []string
	for _, c := range root.Commands() {
		got = append(got, c.Name())
	}
	for _, name := range want {
		assert.Contains(t, got, name)
	}
}

func TestRootCmd_VersionFlag(t *testing.T) {
	out, err := executeCommand(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "showmcp version")
	assert.Contains(t, out, version.Version)
}

func TestVersionCmd_Short(t *testing.T) {
	out, err := executeCommand(t, "version", "--short")
	require.NoError(t, err)
	assert.Contains(t, out, version.Version)
}

func TestVersionCmd_JSON(t *testing.T) {
	out, err := executeCommand(t, "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"version"`)
}

func TestSearchCmd_RequiresQuery(t *testing.T) {
	_, err := executeCommand(t, "search")
	assert.Error(t, err)
}

func TestSummaryCmd_RequiresProjectID(t *testing.T) {
	_, err := executeCommand(t, "summary")
	assert.Error(t, err)
}
