package seed

import (
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gzipLines compresses lines, one per row.
func gzipLines(t *testing.T, lines []string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	for _, line := range lines {
		_, err := gzipWriter.Write([]byte(line + "\n"))
		require.NoError(t, err)
	}
	require.NoError(t, gzipWriter.Close())

	return buf.Bytes()
}

// createSeedFile writes a gzipped seed file into a temp dir.
func createSeedFile(t *testing.T, filename string, lines []string) string {
	t.Helper()

	filePath := filepath.Join(t.TempDir(), filename)
	require.NoError(t, os.WriteFile(filePath, gzipLines(t, lines), 0o644))

	return filePath
}

func TestFileLoader_Load_Success(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	filePath := createSeedFile(t, "catalog.jsonl.gz", []string{
		`{"name":"Desk Lamp","description":"LED lamp","category":"Home","price":24.5,"image":"/img/lamp.png"}`,
		``,
		`{"name":"Trail Shoes","description":"Waterproof","category":"Outdoor","price":89}`,
	})

	records, err := loader.Load(context.Background(), filePath)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Desk Lamp", records[0].Name)
	assert.Equal(t, "/img/lamp.png", records[0].Image)
	require.NotNil(t, records[0].Price)
	assert.Equal(t, 24.5, *records[0].Price)
	assert.Equal(t, "Outdoor", records[1].Category)
}

func TestFileLoader_Load_FileNotFound(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	records, err := loader.Load(context.Background(), "/nonexistent/catalog.jsonl.gz")

	assert.Error(t, err)
	assert.Nil(t, records)
	assert.Contains(t, err.Error(), "failed to open seed file")
}

func TestFileLoader_Load_NotGzipped(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	filePath := filepath.Join(t.TempDir(), "plain.jsonl")
	require.NoError(t, os.WriteFile(filePath, []byte(`{"name":"x"}`+"\n"), 0o644))

	records, err := loader.Load(context.Background(), filePath)

	assert.Error(t, err)
	assert.Nil(t, records)
	assert.Contains(t, err.Error(), "failed to create gzip reader")
}

func TestFileLoader_Load_InvalidLine(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	filePath := createSeedFile(t, "broken.jsonl.gz", []string{
		`{"name":"Desk Lamp","description":"LED lamp","category":"Home","price":24.5}`,
		`{"name":`,
	})

	records, err := loader.Load(context.Background(), filePath)

	assert.Error(t, err)
	assert.Nil(t, records)
	assert.Contains(t, err.Error(), "line 2")
}

func TestFileLoader_Load_EmptyFile(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	filePath := createSeedFile(t, "empty.jsonl.gz", nil)

	records, err := loader.Load(context.Background(), filePath)

	require.NoError(t, err)
	assert.Empty(t, records)
}
