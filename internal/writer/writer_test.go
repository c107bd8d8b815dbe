package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_CreatesFileWithParents(t *testing.T) {
	w := New(t.TempDir())

	status, err := w.Write("src/schemas/widgets.ts", "export {};\n", false)
	require.NoError(t, err)
	assert.Equal(t, Written, status)

	data, err := os.ReadFile(filepath.Join(w.Root, "src", "schemas", "widgets.ts"))
	require.NoError(t, err)
	assert.Equal(t, "export {};\n", string(data))
}

func TestWriter_SkipsExistingWithoutForce(t *testing.T) {
	w := New(t.TempDir())

	_, err := w.Write("out.ts", "original", false)
	require.NoError(t, err)

	status, err := w.Write("out.ts", "replacement", false)
	require.NoError(t, err)
	assert.Equal(t, Skipped, status)

	content, err := w.Read("out.ts")
	require.NoError(t, err)
	assert.Equal(t, "original", content, "skipped write must not touch the file")
}

func TestWriter_ForceOverwrites(t *testing.T) {
	w := New(t.TempDir())

	_, err := w.Write("out.ts", "original", false)
	require.NoError(t, err)

	status, err := w.Write("out.ts", "replacement", true)
	require.NoError(t, err)
	assert.Equal(t, Written, status)

	content, err := w.Read("out.ts")
	require.NoError(t, err)
	assert.Equal(t, "replacement", content)
}

func TestWriter_PutIsUnconditional(t *testing.T) {
	w := New(t.TempDir())

	require.NoError(t, w.Put("hub/index.ts", "v1"))
	require.NoError(t, w.Put("hub/index.ts", "v2"))

	content, err := w.Read("hub/index.ts")
	require.NoError(t, err)
	assert.Equal(t, "v2", content)
}

func TestWriter_ExistsAndRead(t *testing.T) {
	w := New(t.TempDir())

	assert.False(t, w.Exists("missing.ts"))
	_, err := w.Read("missing.ts")
	assert.Error(t, err)

	require.NoError(t, w.Put("present.ts", "x"))
	assert.True(t, w.Exists("present.ts"))
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "written", Written.String())
	assert.Equal(t, "skipped", Skipped.String())
}
