package xl

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveDir(t *testing.T) {
	ws := NewWorksheet()
	require.NoError(t, ws.AddRow("a", 1))

	dir := t.TempDir()
	require.NoError(t, ws.Save(NewDirStorage(dir), "sheet1"))

	b, err := os.ReadFile(filepath.Join(dir, "xl", "worksheets", "sheet1.xml"))
	require.NoError(t, err)
	assert.Equal(t, ws.Bytes(), b)
}

func TestSaveZip(t *testing.T) {
	ws := NewWorksheet()
	require.NoError(t, ws.AddRow("a", 1))

	var bb bytes.Buffer
	zs := NewZipStorage(&bb)
	require.NoError(t, ws.Save(zs, "Data"))
	require.NoError(t, zs.Close())

	zr, err := zip.NewReader(bytes.NewReader(bb.Bytes()), int64(bb.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, "xl/worksheets/Data.xml", zr.File[0].Name)

	f, err := zr.File[0].Open()
	require.NoError(t, err)
	defer f.Close()
	b, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, ws.Bytes(), b)
}

func TestSaveInvalidSheetName(t *testing.T) {
	tests := []struct {
		name  string
		sheet string
		msg   string
	}{
		{"empty", "", "empty"},
		{"too long", "this sheet name is far too long to fit", "exceeds 31"},
		{"leading apostrophe", "'quoted", "apostrophe"},
		{"trailing apostrophe", "quoted'", "apostrophe"},
		{"slash", "a/b", `"/"`},
		{"bracket", "x[1]", `"["`},
	}
	ws := NewWorksheet()
	dir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ws.Save(NewDirStorage(dir), tt.sheet)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.NoError(t, validateSheetName("Ünïcode sheet name, 31 chars..."))
}
