package xl

import (
	"bytes"
	"io"
	"slices"

	"github.com/adnsv/srw/xml"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
)

// Render writes the document as XML. Rendering does not touch the tree,
// so it may be repeated and may run concurrently with other renders.
func (d *Document) Render(out io.Writer) error {
	_, err := out.Write(d.Bytes())
	return err
}

func (d *Document) Bytes() []byte {
	bb := bytes.Buffer{}
	cfg := xml.WriterConfig{}
	if d.FormatOutput {
		cfg.Indent = xml.Indent2Spaces
	}
	x := xml.NewWriter(&bb, cfg)
	x.XmlStandaloneDecl()

	var write func(e *Element, space string, breakLine bool)
	write = func(e *Element, space string, breakLine bool) {
		tag := e.Name
		if breakLine {
			tag = "+" + tag
		}
		x.OTag(xml.NameString(tag))
		if e.Space != space {
			x.Attr("xmlns", e.Space)
		}
		for _, a := range e.attrs {
			x.Attr(xml.NameString(a.Name), a.Value)
		}
		nested := d.FormatOutput && !e.inline()
		for _, c := range e.children {
			switch c := c.(type) {
			case *Text:
				x.Write(c.Data)
			case *Element:
				write(c, e.Space, nested)
			}
		}
		x.CTag()
	}
	write(d.root, "", false)

	return bb.Bytes()
}

func (d *Document) String() string {
	return string(d.Bytes())
}

func enumerate[M ~map[K]V, K constraints.Ordered, V any](m M, callback func(k K, v V) error) error {
	keys := maps.Keys(m)
	slices.Sort(keys)
	for _, k := range keys {
		err := callback(k, m[k])
		if err != nil {
			return err
		}
	}
	return nil
}
