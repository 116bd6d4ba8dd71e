package xl

import "errors"

var (
	// ErrInvalidName is returned when a tag or attribute name is not a valid XML name.
	ErrInvalidName = errors.New("invalid XML name")

	// ErrUnknownCellType is returned for a type override that names
	// anything but string, number or datetime.
	ErrUnknownCellType = errors.New("unknown cell type")

	// ErrInvalidChar is returned for string cells holding characters that
	// XML 1.0 cannot carry, such as most C0 controls.
	ErrInvalidChar = errors.New("character not allowed in XML")

	ErrNotNumeric      = errors.New("value is not numeric")
	ErrInvalidDateTime = errors.New("invalid date-time value")
	ErrTooManyRows     = errors.New("too many rows")
)
