package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/adnsv/go-xlsheet/xl"
)

func TestSniffComma(t *testing.T) {
	for in, want := range map[string]rune{
		"a,b,c\n1,2,3":      ',',
		"name;date\nx;y":    ';',
		"a\tb\n":            '\t',
		"2024-01-01|5\n":    '|',
		"\"quoted\",x\n":    ',',
		"single\nline":      ',',
		"first name;age\n1": ';',
	} {
		assert.Equal(t, want, sniffComma([]byte(in)), in)
	}
}

func TestCopyRows(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(fn, []byte("name;born;score\nÁrvíztűrő;1999-12-31;7.5\n"), 0644))

	cr, err := openCsv(fn, "utf-8")
	require.NoError(t, err)
	defer cr.Close()

	ws := xl.NewWorksheet()
	require.NoError(t, copyRows(context.Background(), ws, cr, "2006-01-02"))
	assert.Equal(t, 2, ws.Rows())

	cells := ws.SheetData().Elements()[1].Elements()
	require.Len(t, cells, 3)
	s, ok := cells[1].Attr("s")
	assert.True(t, ok)
	assert.Equal(t, "1", s)
	assert.Equal(t, "36525", cells[1].Elements()[0].Text())
	assert.Equal(t, "7.5", cells[2].Elements()[0].Text())
	assert.Contains(t, ws.String(), "Árvíztűrő")
}

func TestOpenCsvCharset(t *testing.T) {
	raw, err := charmap.ISO8859_2.NewEncoder().String("név,őszi\n")
	require.NoError(t, err)
	fn := filepath.Join(t.TempDir(), "latin2.csv")
	require.NoError(t, os.WriteFile(fn, []byte(raw), 0644))

	cr, err := openCsv(fn, "iso-8859-2")
	require.NoError(t, err)
	defer cr.Close()
	rec, err := cr.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"név", "őszi"}, rec)

	_, err = openCsv(fn, "no-such-charset")
	assert.Error(t, err)
}

func TestOutput(t *testing.T) {
	ws := xl.NewWorksheet()
	require.NoError(t, ws.AddRow("a"))
	dir := t.TempDir()

	out := filepath.Join(dir, "sheet.xml")
	require.NoError(t, output(ws, out, "", "sheet1"))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, ws.String(), string(b))

	zipName := filepath.Join(dir, "sheet.zip")
	require.NoError(t, output(ws, zipName, "", "sheet1"))
	fi, err := os.Stat(zipName)
	require.NoError(t, err)
	assert.NotZero(t, fi.Size())

	require.NoError(t, output(ws, "", filepath.Join(dir, "pkg"), "sheet1"))
	_, err = os.Stat(filepath.Join(dir, "pkg", "xl", "worksheets", "sheet1.xml"))
	assert.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(b), "<?xml"))
}
