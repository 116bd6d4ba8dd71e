package xl

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// Worksheet builds the XML of a single spreadsheetml worksheet, one row at
// a time. Values are written as inline strings, numbers or date-times
// depending on their type (see AddRow).
//
// A Worksheet is not safe for concurrent mutation. Rendering does not
// modify it.
type Worksheet struct {
	doc       *Document
	sheetData *Element

	logger   *slog.Logger
	cellRefs bool

	dateTimeFormatID int
	dateCells        []*Element // every emitted date-time <c>

	nextRowNumber int // 1-based, incremented as we add rows
}

type Option func(*Worksheet)

// WithDateTimeFormatID sets the style id referenced by date-time cells.
// The id must be defined in the workbook's styles; the default is 1.
func WithDateTimeFormatID(id int) Option {
	return func(ws *Worksheet) { ws.dateTimeFormatID = id }
}

// WithFormatOutput selects indented output instead of the compact default.
func WithFormatOutput(on bool) Option {
	return func(ws *Worksheet) { ws.doc.FormatOutput = on }
}

// WithCellReferences adds an A1-style r attribute to every cell.
func WithCellReferences(on bool) Option {
	return func(ws *Worksheet) { ws.cellRefs = on }
}

func WithLogger(logger *slog.Logger) Option {
	return func(ws *Worksheet) {
		if logger != nil {
			ws.logger = logger
		}
	}
}

// NewWorksheet returns an empty worksheet: the document, its <worksheet>
// root and the <sheetData> container exist from the start.
func NewWorksheet(opts ...Option) *Worksheet {
	ws := &Worksheet{
		logger:           slog.New(slog.DiscardHandler),
		dateTimeFormatID: 1,
		nextRowNumber:    1,
	}
	ws.setup()
	for _, o := range opts {
		o(ws)
	}
	return ws
}

func (ws *Worksheet) setup() {
	root := &Element{Space: NamespaceSpreadsheet, Name: "worksheet"}
	root.setAttr("xmlns:r", NamespaceRelationships)
	ws.doc = &Document{root: root}

	ws.sheetData = &Element{Space: NamespaceSpreadsheet, Name: "sheetData"}
	root.appendChild(ws.sheetData)
}

func (ws *Worksheet) Document() *Document { return ws.doc }
func (ws *Worksheet) Root() *Element { return ws.doc.root }
func (ws *Worksheet) SheetData() *Element { return ws.sheetData }
func (ws *Worksheet) DateTimeFormatID() int { return ws.dateTimeFormatID }

// Rows returns the number of rows added so far.
func (ws *Worksheet) Rows() int { return ws.nextRowNumber - 1 }

// SetFormatOutput switches between indented and compact output.
func (ws *Worksheet) SetFormatOutput(on bool) { ws.doc.FormatOutput = on }

// SetDateTimeFormatID changes the style id of all date-time cells,
// including the ones already written.
func (ws *Worksheet) SetDateTimeFormatID(id int) {
	ws.dateTimeFormatID = id
	s := strconv.Itoa(id)
	for _, c := range ws.dateCells {
		c.setAttr("s", s)
	}
	ws.logger.Debug("date-time format", "id", id, "cells", len(ws.dateCells))
}

// AddRow appends a row holding one cell per value, in order:
//
//   - Typed values (and maps with "type" and "value" keys) are written as
//     their declared kind.
//   - Numbers, and strings that hold a decimal number, become number cells.
//   - time.Time values become date-time cells referencing the date-time
//     format id.
//   - Everything else is converted to a string and written inline.
//
// An empty row still takes a row number. When a value fails, the cells
// before it stay in the row.
func (ws *Worksheet) AddRow(values ...any) error {
	row, r, err := ws.newRow()
	if err != nil {
		return err
	}
	for i, v := range values {
		if err := ws.addCell(row, i+1, r, v); err != nil {
			return fmt.Errorf("%s: %w", CellRef(i+1, r), err)
		}
	}
	return nil
}

// AddRows calls AddRow for each row and stops at the first error. Rows
// added before the failure are kept.
func (ws *Worksheet) AddRows(rows [][]any) error {
	for _, values := range rows {
		if err := ws.AddRow(values...); err != nil {
			return err
		}
	}
	return nil
}

func (ws *Worksheet) addCell(row *Element, col, r int, v any) error {
	cv, err := classify(v)
	if err != nil {
		return err
	}
	attrs := map[string]string{}
	if ws.cellRefs {
		attrs["r"] = CellRef(col, r)
	}
	switch cv.kind {
	case CellKindString:
		return ws.addStringCell(row, attrs, cv.text)
	case CellKindNumber:
		return ws.addNumberCell(row, attrs, cv.text)
	case CellKindDateTime:
		return ws.addDateTimeCell(row, attrs, cv.text)
	}
	return fmt.Errorf("%w: %s", ErrUnknownCellType, cv.kind)
}

// <c t="inlineStr"><is><t>text</t></is></c>
func (ws *Worksheet) addStringCell(row *Element, attrs map[string]string, text string) error {
	if err := checkText(text); err != nil {
		return err
	}
	attrs["t"] = "inlineStr"
	c, err := ws.doc.Append("c", attrs, row)
	if err != nil {
		return err
	}
	is, err := ws.doc.Append("is", nil, c)
	if err != nil {
		return err
	}
	var tAttrs map[string]string
	if text != strings.TrimSpace(text) {
		tAttrs = map[string]string{"xml:space": "preserve"}
	}
	t, err := ws.doc.Append("t", tAttrs, is)
	if err != nil {
		return err
	}
	ws.doc.SetText(t, text)
	return nil
}

// <c><v>number</v></c>
func (ws *Worksheet) addNumberCell(row *Element, attrs map[string]string, text string) error {
	c, err := ws.doc.Append("c", attrs, row)
	if err != nil {
		return err
	}
	v, err := ws.doc.Append("v", nil, c)
	if err != nil {
		return err
	}
	ws.doc.SetText(v, text)
	return nil
}

// <c s="id"><v>serial</v></c>
func (ws *Worksheet) addDateTimeCell(row *Element, attrs map[string]string, serial string) error {
	attrs["s"] = strconv.Itoa(ws.dateTimeFormatID)
	c, err := ws.doc.Append("c", attrs, row)
	if err != nil {
		return err
	}
	ws.dateCells = append(ws.dateCells, c)
	v, err := ws.doc.Append("v", nil, c)
	if err != nil {
		return err
	}
	ws.doc.SetText(v, serial)
	return nil
}

// Render writes the worksheet XML to w.
func (ws *Worksheet) Render(w io.Writer) error { return ws.doc.Render(w) }

// WriteTo implements io.WriterTo.
func (ws *Worksheet) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(ws.doc.Bytes())
	return int64(n), err
}

func (ws *Worksheet) Bytes() []byte { return ws.doc.Bytes() }
func (ws *Worksheet) String() string { return ws.doc.String() }
