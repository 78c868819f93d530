package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTrace(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "buffers.trace")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestPlanCommand(t *testing.T) {
	path := writeTrace(t, "10 0 1\n20 1 2\n5 2 3\n")

	stdout, _, err := runCommand(t, "--no-color", "--trace", path, "plan")
	require.NoError(t, err)

	assert.Contains(t, stdout, "arena size: 30 bytes for 3 buffers")
	// The largest buffer seeds at offset 0; the other two share offset 20.
	assert.Regexp(t, `(?m)^\s+1\s+20\s+1\s+2\s+0$`, stdout)
	assert.Regexp(t, `(?m)^\s+0\s+10\s+0\s+1\s+20$`, stdout)
	assert.Regexp(t, `(?m)^\s+2\s+5\s+2\s+3\s+20$`, stdout)
}

func TestVizCommand(t *testing.T) {
	path := writeTrace(t, "40 0 0\n40 1 1\n")

	stdout, _, err := runCommand(t, "--no-color", "--trace", path, "viz", "--width", "80")
	require.NoError(t, err)

	assert.Contains(t, stdout, "arena: 40 bytes")
	assert.Contains(t, stdout, "   0  "+repeat('0', 40)+repeat('.', 40))
	assert.Contains(t, stdout, "   1  "+repeat('1', 40)+repeat('.', 40))
	assert.NotContains(t, stdout, "!")
}

func TestPlanCommandBadTrace(t *testing.T) {
	path := writeTrace(t, "not a trace\n")

	_, _, err := runCommand(t, "--no-color", "--trace", path, "plan")
	assert.Error(t, err)
}

func TestPlanCommandMissingFile(t *testing.T) {
	_, _, err := runCommand(t, "--no-color", "--trace", filepath.Join(t.TempDir(), "absent"), "plan")
	assert.Error(t, err)
}

func TestPlanCommandCapacity(t *testing.T) {
	path := writeTrace(t, "10 0 1\n20 1 2\n5 2 3\n")

	_, stderr, err := runCommand(t, "--no-color", "--trace", path, "--capacity", "2", "plan")
	require.Error(t, err)
	assert.Contains(t, stderr, "too many buffers")
}

func repeat(c byte, n int) string {
	return string(bytes.Repeat([]byte{c}, n))
}
