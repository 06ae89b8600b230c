package transcript

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleRecordsBothDirections(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(NewScannerReader(strings.NewReader("add\r\nfrance\n")), &out)

	c.Println("The card:")
	line, err := c.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "add", line)

	c.Printf("The pair (%q:%q) has been added.", "france", "paris")
	line, err = c.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "france", line)

	_, err = c.ReadLine()
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "The card:\nThe pair (\"france\":\"paris\") has been added.\n", out.String())
	assert.Equal(t, []string{
		"The card:",
		"add",
		`The pair ("france":"paris") has been added.`,
		"france",
	}, c.Transcript().Lines())
}

func TestPrintlnKeepsPercent(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(NewScannerReader(strings.NewReader("")), &out)

	c.Println("100% done")
	assert.Equal(t, "100% done\n", out.String())
	assert.Equal(t, []string{"100% done"}, c.Transcript().Lines())
}

func TestTranscriptSave(t *testing.T) {
	tr := &Transcript{}
	tr.Append("first")
	tr.Append("second")

	path := filepath.Join(t.TempDir(), "session.log")
	require.NoError(t, os.WriteFile(path, []byte("stale contents\n"), 0o644))
	require.NoError(t, tr.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
	assert.Equal(t, 2, tr.Len())
}

func TestTranscriptSaveMissingDir(t *testing.T) {
	tr := &Transcript{}
	err := tr.Save(filepath.Join(t.TempDir(), "missing", "session.log"))
	assert.Error(t, err)
}

func TestLinesIsACopy(t *testing.T) {
	tr := &Transcript{}
	tr.Append("a")
	lines := tr.Lines()
	lines[0] = "changed"
	assert.Equal(t, []string{"a"}, tr.Lines())
}
