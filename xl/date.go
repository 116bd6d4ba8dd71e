package xl

import (
	"fmt"
	"time"
)

// excelBaseDate is the Julian day number of 1899-12-31, serial day 0.
const excelBaseDate = 2415020

// ExcelSerial converts t to the Excel 1900 date system: whole days since
// 1899-12-31 plus the time of day as a fraction. Every date from
// 1900-03-01 on is one day higher than the calendar implies, because
// Excel treats 1900 as a leap year. Components are taken in t's own
// location; fractional seconds are dropped.
func ExcelSerial(t time.Time) (float64, error) {
	if t.IsZero() {
		return 0, fmt.Errorf("%w: zero time", ErrInvalidDateTime)
	}
	year, m, day := t.Date()
	if year < 1000 || year > 9999 {
		return 0, fmt.Errorf("%w: year %d out of range", ErrInvalidDateTime, year)
	}
	month := int(m)
	hour, minute, second := t.Clock()

	// decided on the calendar month, before the shift below
	leap1900 := 1
	if year == 1900 && month <= 2 {
		leap1900 = 0
	}

	// years start in March
	if month > 2 {
		month -= 3
	} else {
		month += 9
		year--
	}
	century, decade := year/100, year%100

	days := (146097*century)/4 + (1461*decade)/4 + (153*month+2)/5 + day + 1721119 - excelBaseDate + leap1900
	frac := float64(hour*3600+minute*60+second) / 86400

	return float64(days) + frac, nil
}
