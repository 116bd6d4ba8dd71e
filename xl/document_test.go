package xl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend(t *testing.T) {
	doc, err := NewDocument(NamespaceSpreadsheet, "worksheet")
	require.NoError(t, err)

	cols, err := doc.Append("cols", nil, nil)
	require.NoError(t, err)
	assert.Same(t, doc.Root(), cols.Parent())
	assert.Equal(t, NamespaceSpreadsheet, cols.Space)

	col, err := doc.Append("col", map[string]string{"width": "12", "max": "2", "min": "1"}, cols)
	require.NoError(t, err)
	assert.Same(t, cols, col.Parent())
	assert.Equal(t, []Attr{{"max", "2"}, {"min", "1"}, {"width", "12"}}, col.Attrs())
	assert.Equal(t, []*Element{col}, cols.Elements())
}

func TestAppendInvalidName(t *testing.T) {
	doc, err := NewDocument(NamespaceSpreadsheet, "worksheet")
	require.NoError(t, err)

	_, err = doc.Append("1row", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = doc.Append("row", map[string]string{"bad key": "1"}, nil)
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.Empty(t, doc.Root().Children())

	_, err = NewDocument(NamespaceSpreadsheet, "")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestSetAttr(t *testing.T) {
	e := &Element{Name: "c"}
	require.NoError(t, e.SetAttr("s", "1"))
	require.NoError(t, e.SetAttr("r", "A1"))
	require.NoError(t, e.SetAttr("s", "5"))
	assert.Equal(t, []Attr{{"s", "5"}, {"r", "A1"}}, e.Attrs())

	v, ok := e.Attr("s")
	assert.True(t, ok)
	assert.Equal(t, "5", v)
	_, ok = e.Attr("t")
	assert.False(t, ok)

	assert.ErrorIs(t, e.SetAttr("-s", "1"), ErrInvalidName)
}

func TestSetText(t *testing.T) {
	doc, err := NewDocument(NamespaceSpreadsheet, "worksheet")
	require.NoError(t, err)
	v, err := doc.Append("v", nil, nil)
	require.NoError(t, err)

	txt := doc.SetText(v, 45292.5)
	assert.Equal(t, "45292.5", txt.Data)
	assert.Equal(t, []Node{txt}, v.Children())
	assert.Equal(t, "45292.5", v.Text())
	assert.Empty(t, v.Elements())
}

func TestCheckName(t *testing.T) {
	for _, s := range []string{"c", "sheetData", "xmlns:r", "xml:space", "_x", "a-b.c1", "été", "x·y"} {
		assert.NoError(t, checkName(s), s)
	}
	for _, s := range []string{"", "1a", "-a", ".a", "a b", "a<b", "a\"", "a=b", "\xff"} {
		assert.ErrorIs(t, checkName(s), ErrInvalidName, s)
	}
}

func TestRenderNestedNamespace(t *testing.T) {
	doc, err := NewDocument(NamespaceSpreadsheet, "worksheet")
	require.NoError(t, err)
	ext, err := doc.Append("extLst", nil, nil)
	require.NoError(t, err)
	ext.appendChild(&Element{Space: "urn:example", Name: "ext"})

	assert.Contains(t, doc.String(), `xmlns="urn:example"`)
	assert.Contains(t, doc.String(), `xmlns="`+NamespaceSpreadsheet+`"`)
}

func TestCheckText(t *testing.T) {
	tests := []struct {
		name string
		s    string
		ok   bool
	}{
		{"empty", "", true},
		{"whitespace controls", "a\tb\nc\rd", true},
		{"multilingual", "Grüße, 世界 😀", true},
		{"private use", "", true},
		{"nul", "\x00", false},
		{"unit separator", "\x1f", false},
		{"invalid utf8", "\xff", false},
		{"noncharacter", "￾", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkText(tt.s)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidChar)
			}
		})
	}
}
