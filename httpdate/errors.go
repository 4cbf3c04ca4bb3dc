package httpdate

// ParseError classifies why an HTTP-date could not be parsed. The values are
// comparable, so callers can test them with == or errors.Is.
type ParseError uint8

const (
	// StructuralMismatch means the input matches none of the three layouts:
	// wrong length, misplaced delimiter, or a non-digit in a numeric field.
	StructuralMismatch ParseError = iota + 1
	// InvalidDate means a field is outside its calendar range, such as
	// month 13, hour 24 or 29 Feb in a common year.
	InvalidDate
	// UnknownMonthName means the month token is not one of Jan..Dec.
	UnknownMonthName
	// YearOutOfRange means the year is before 1970 or after 9999.
	YearOutOfRange
)

func (e ParseError) Error() string {
	switch e {
	case StructuralMismatch:
		return "httpdate: malformed HTTP-date"
	case InvalidDate:
		return "httpdate: invalid calendar date"
	case UnknownMonthName:
		return "httpdate: unknown month name"
	case YearOutOfRange:
		return "httpdate: year out of range"
	}
	return "httpdate: parse error"
}

// FormatError reports why a timestamp could not be formatted.
type FormatError uint8

// OutOfRange means the timestamp is past MaxTimestamp.
const OutOfRange FormatError = 1

func (e FormatError) Error() string {
	if e == OutOfRange {
		return "httpdate: timestamp beyond year 9999"
	}
	return "httpdate: format error"
}
