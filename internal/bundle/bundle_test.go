package bundle

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

func extract(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	gzr, err := gzip.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer gzr.Close()

	files := map[string][]byte{}
	tr := tar.NewReader(gzr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		content, err := io.ReadAll(tr)
		require.NoError(t, err)
		files[hdr.Name] = content
	}
	return files
}

func TestWrite_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "row-001.json"), []byte(`{"icm":3}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "row-002.csv"), []byte("Parameter,Value\n"), 0o644))
	// Subdirectories are skipped.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, dir))

	files := extract(t, buf.Bytes())
	require.Len(t, files, 2)
	require.Equal(t, []byte(`{"icm":3}`), files["row-001.json"])
	require.Equal(t, []byte("Parameter,Value\n"), files["row-002.csv"])
}

func TestWrite_Reproducible(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.txt", "a.txt", "b.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}

	var first, second bytes.Buffer
	require.NoError(t, Write(&first, dir))
	require.NoError(t, Write(&second, dir))
	require.Equal(t, first.Bytes(), second.Bytes())

	// Entries come out in sorted name order.
	var order []string
	gzr, err := gzip.NewReader(bytes.NewReader(first.Bytes()))
	require.NoError(t, err)
	tr := tar.NewReader(gzr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		order = append(order, hdr.Name)
	}
	require.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, order)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.txt"), []byte("hello"), 0o644))

	archive := filepath.Join(t.TempDir(), "reports.tar.gz")
	require.NoError(t, WriteFile(archive, dir))

	data, err := os.ReadFile(archive)
	require.NoError(t, err)
	files := extract(t, data)
	require.Equal(t, []byte("hello"), files["report.txt"])
}

func TestWrite_MissingDir(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, Write(&buf, filepath.Join(t.TempDir(), "missing")))
}
