package xl

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CellKind is the encoding a cell value is written with.
type CellKind int

// Cell kinds enumeration.
const (
	CellKindUnset CellKind = iota
	CellKindString
	CellKindNumber
	CellKindDateTime
)

func (k CellKind) String() string {
	switch k {
	case CellKindString:
		return "string"
	case CellKindNumber:
		return "number"
	case CellKindDateTime:
		return "datetime"
	}
	return fmt.Sprintf("CellKind(%d)", int(k))
}

// ParseCellKind maps the type names "string", "number" and "datetime" to
// their kind.
func ParseCellKind(s string) (CellKind, error) {
	switch s {
	case "string":
		return CellKindString, nil
	case "number":
		return CellKindNumber, nil
	case "datetime":
		return CellKindDateTime, nil
	}
	return CellKindUnset, fmt.Errorf("%w: %q", ErrUnknownCellType, s)
}

// Typed forces Value to be written as Kind, bypassing inference.
//
// A map[string]any with both "type" and "value" keys is treated the same way,
// with "type" holding the kind name.
type Typed struct {
	Kind  CellKind
	Value any
}

// AsString writes v as an inline string, even when it looks like a number.
func AsString(v any) Typed { return Typed{Kind: CellKindString, Value: v} }

// AsNumber writes v as a number. v must be numeric.
func AsNumber(v any) Typed { return Typed{Kind: CellKindNumber, Value: v} }

// AsDateTime writes v as a date cell. A numeric v is taken as an already
// computed serial date.
func AsDateTime(v any) Typed { return Typed{Kind: CellKindDateTime, Value: v} }

// cellValue is a classified value together with the text of its cell.
type cellValue struct {
	kind CellKind
	text string
}

// classify picks the cell kind for v: explicit override first, then
// numbers, then date-times; everything else becomes a string.
func classify(v any) (cellValue, error) {
	v = unwrap(v)
	switch x := v.(type) {
	case Typed:
		return classifyAs(x.Kind, x.Value)
	case *Typed:
		return classifyAs(x.Kind, x.Value)
	case map[string]any:
		typ, hasType := x["type"]
		val, hasValue := x["value"]
		if hasType && hasValue {
			kind, err := ParseCellKind(stringify(typ))
			if err != nil {
				return cellValue{}, err
			}
			return classifyAs(kind, val)
		}
	}

	if s, ok, err := numberText(v); err != nil {
		return cellValue{}, err
	} else if ok {
		return cellValue{kind: CellKindNumber, text: s}, nil
	}
	if t, ok := dateTime(v); ok {
		return dateTimeValue(t)
	}
	return cellValue{kind: CellKindString, text: stringify(v)}, nil
}

func classifyAs(kind CellKind, v any) (cellValue, error) {
	v = unwrap(v)
	switch kind {
	case CellKindString:
		switch x := v.(type) {
		case string:
			return cellValue{kind: kind, text: x}, nil
		case json.Number:
			return cellValue{kind: kind, text: string(x)}, nil
		case []byte:
			return cellValue{kind: kind, text: string(x)}, nil
		}
		if s, ok, _ := numberText(v); ok {
			return cellValue{kind: kind, text: s}, nil
		}
		return cellValue{kind: kind, text: stringify(v)}, nil

	case CellKindNumber:
		s, ok, err := numberText(v)
		if err != nil {
			return cellValue{}, err
		}
		if !ok {
			return cellValue{}, fmt.Errorf("%w: %v (%T)", ErrNotNumeric, v, v)
		}
		return cellValue{kind: kind, text: s}, nil

	case CellKindDateTime:
		if t, ok := dateTime(v); ok {
			return dateTimeValue(t)
		}
		s, ok, err := numberText(v)
		if err != nil {
			return cellValue{}, err
		}
		if !ok {
			return cellValue{}, fmt.Errorf("%w: %v (%T)", ErrInvalidDateTime, v, v)
		}
		return cellValue{kind: kind, text: s}, nil
	}
	return cellValue{}, fmt.Errorf("%w: %s", ErrUnknownCellType, kind)
}

func dateTimeValue(t time.Time) (cellValue, error) {
	serial, err := ExcelSerial(t)
	if err != nil {
		return cellValue{}, err
	}
	return cellValue{kind: CellKindDateTime, text: formatFloat(serial, 64)}, nil
}

// unwrap resolves driver.Valuer values (sql.Null* and friends) once.
// Nil pointers become nil.
func unwrap(v any) any {
	if v == nil {
		return nil
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil
	}
	if vr, ok := v.(driver.Valuer); ok {
		if vv, err := vr.Value(); err == nil {
			return vv
		}
	}
	return v
}

// numberText returns the literal written into <v> for numeric values.
// Strings count as numeric when they hold a plain decimal number.
func numberText(v any) (string, bool, error) {
	switch x := v.(type) {
	case nil, bool:
		return "", false, nil
	case decimal.Decimal:
		return x.String(), true, nil
	case json.Number:
		return numericString(string(x))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true, nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", false, fmt.Errorf("%w: %v", ErrNotNumeric, f)
		}
		return formatFloat(f, rv.Type().Bits()), true, nil
	case reflect.String:
		return numericString(rv.String())
	}
	return "", false, nil
}

func numericString(s string) (string, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "_xX") {
		return "", false, nil
	}
	if _, err := decimal.NewFromString(s); err != nil {
		return "", false, nil
	}
	return s, true, nil
}

func formatFloat(f float64, bitSize int) string {
	return strconv.FormatFloat(f, 'f', -1, bitSize)
}

func dateTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case *time.Time:
		return *x, true
	}
	return time.Time{}, false
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	case error:
		return x.Error()
	}
	return fmt.Sprint(v)
}
