package xl

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

const (
	NamespaceSpreadsheet   = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	NamespaceRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// Node is a piece of document content: either an *Element or a *Text.
type Node interface {
	parentElement() *Element
}

// Attr is a single attribute of an element. Name may carry a prefix
// (for example "xmlns:r" or "xml:space").
type Attr struct {
	Name  string
	Value string
}

// Element is a namespaced XML element. Attributes and children keep the
// order in which they were added.
type Element struct {
	Space string // namespace URI
	Name  string // local name

	attrs    []Attr
	children []Node
	parent   *Element
}

// Text is literal character data. Escaping happens on Render.
type Text struct {
	Data string

	parent *Element
}

func (e *Element) parentElement() *Element { return e.parent }
func (t *Text) parentElement() *Element { return t.parent }

func (e *Element) Parent() *Element { return e.parent }

// SetAttr sets the attribute key to value, replacing an existing value in place.
func (e *Element) SetAttr(key, value string) error {
	if err := checkName(key); err != nil {
		return err
	}
	e.setAttr(key, value)
	return nil
}

func (e *Element) setAttr(key, value string) {
	for i := range e.attrs {
		if e.attrs[i].Name == key {
			e.attrs[i].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, Attr{Name: key, Value: value})
}

func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name == key {
			return a.Value, true
		}
	}
	return "", false
}

// Attrs returns a copy of the attribute list.
func (e *Element) Attrs() []Attr {
	return append([]Attr(nil), e.attrs...)
}

func (e *Element) Children() []Node {
	return append([]Node(nil), e.children...)
}

// Elements returns the child elements, skipping text.
func (e *Element) Elements() []*Element {
	var list []*Element
	for _, c := range e.children {
		if ce, ok := c.(*Element); ok {
			list = append(list, ce)
		}
	}
	return list
}

// Text returns the concatenated character data of the direct text children.
func (e *Element) Text() string {
	var s string
	for _, c := range e.children {
		if t, ok := c.(*Text); ok {
			s += t.Data
		}
	}
	return s
}

func (e *Element) appendChild(n Node) {
	switch n := n.(type) {
	case *Element:
		n.parent = e
	case *Text:
		n.parent = e
	}
	e.children = append(e.children, n)
}

// inline reports whether the subtree holds at most one element per level.
// Such subtrees are kept on a single line when the output is indented.
func (e *Element) inline() bool {
	n := 0
	for _, c := range e.children {
		if ce, ok := c.(*Element); ok {
			n++
			if n > 1 || !ce.inline() {
				return false
			}
		}
	}
	return true
}

// Document is an in-memory XML document. The declaration is fixed:
// version 1.0, UTF-8, standalone.
type Document struct {
	// FormatOutput selects indented output on Render.
	FormatOutput bool

	root *Element
}

// NewDocument returns a document holding a single root element
// name in namespace space.
func NewDocument(space, name string) (*Document, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	return &Document{root: &Element{Space: space, Name: name}}, nil
}

func (d *Document) Root() *Element { return d.root }

// Append creates a new element tag in the root's namespace, sets attrs on
// it (in key order) and appends it to parent. A nil parent means the root.
func (d *Document) Append(tag string, attrs map[string]string, parent *Element) (*Element, error) {
	if err := checkName(tag); err != nil {
		return nil, err
	}
	if parent == nil {
		parent = d.root
	}
	e := &Element{Space: d.root.Space, Name: tag}
	err := enumerate(attrs, func(k, v string) error {
		return e.SetAttr(k, v)
	})
	if err != nil {
		return nil, fmt.Errorf("<%s>: %w", tag, err)
	}
	parent.appendChild(e)
	return e, nil
}

// SetText appends a text node holding the literal string form of v.
func (d *Document) SetText(e *Element, v any) *Text {
	t := &Text{Data: fmt.Sprint(v)}
	e.appendChild(t)
	return t
}

// checkName validates s against the XML 1.0 Name production.
func checkName(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	for i, r := range s {
		if r == utf8.RuneError || !unicode.Is(nameChar, r) || (i == 0 && !unicode.Is(nameStartChar, r)) {
			return fmt.Errorf("%w: %q", ErrInvalidName, s)
		}
	}
	return nil
}

// checkText reports text that is not valid UTF-8 or holds a rune outside
// the XML 1.0 Char production.
func checkText(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: invalid UTF-8 %q", ErrInvalidChar, s)
	}
	for _, r := range s {
		switch {
		case r == '\t', r == '\n', r == '\r':
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= 0x10FFFF:
		default:
			return fmt.Errorf("%w: %U in %q", ErrInvalidChar, r, s)
		}
	}
	return nil
}

var nameStartChar = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: ':', Hi: ':', Stride: 1},
		{Lo: 'A', Hi: 'Z', Stride: 1},
		{Lo: '_', Hi: '_', Stride: 1},
		{Lo: 'a', Hi: 'z', Stride: 1},
		{Lo: 0xC0, Hi: 0xD6, Stride: 1},
		{Lo: 0xD8, Hi: 0xF6, Stride: 1},
		{Lo: 0xF8, Hi: 0x2FF, Stride: 1},
		{Lo: 0x370, Hi: 0x37D, Stride: 1},
		{Lo: 0x37F, Hi: 0x1FFF, Stride: 1},
		{Lo: 0x200C, Hi: 0x200D, Stride: 1},
		{Lo: 0x2070, Hi: 0x218F, Stride: 1},
		{Lo: 0x2C00, Hi: 0x2FEF, Stride: 1},
		{Lo: 0x3001, Hi: 0xD7FF, Stride: 1},
		{Lo: 0xF900, Hi: 0xFDCF, Stride: 1},
		{Lo: 0xFDF0, Hi: 0xFFFD, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x10000, Hi: 0xEFFFF, Stride: 1},
	},
	LatinOffset: 6,
}

var nameChar = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: '-', Hi: '.', Stride: 1},
		{Lo: '0', Hi: ':', Stride: 1},
		{Lo: 'A', Hi: 'Z', Stride: 1},
		{Lo: '_', Hi: '_', Stride: 1},
		{Lo: 'a', Hi: 'z', Stride: 1},
		{Lo: 0xB7, Hi: 0xB7, Stride: 1},
		{Lo: 0xC0, Hi: 0xD6, Stride: 1},
		{Lo: 0xD8, Hi: 0xF6, Stride: 1},
		{Lo: 0xF8, Hi: 0x37D, Stride: 1},
		{Lo: 0x37F, Hi: 0x1FFF, Stride: 1},
		{Lo: 0x200C, Hi: 0x200D, Stride: 1},
		{Lo: 0x203F, Hi: 0x2040, Stride: 1},
		{Lo: 0x2070, Hi: 0x218F, Stride: 1},
		{Lo: 0x2C00, Hi: 0x2FEF, Stride: 1},
		{Lo: 0x3001, Hi: 0xD7FF, Stride: 1},
		{Lo: 0xF900, Hi: 0xFDCF, Stride: 1},
		{Lo: 0xFDF0, Hi: 0xFFFD, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x10000, Hi: 0xEFFFF, Stride: 1},
	},
	LatinOffset: 8,
}
