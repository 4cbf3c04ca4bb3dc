package httpdate

// layout identifies which of the three HTTP-date grammars an input has.
type layout uint8

const (
	layoutUnknown layout = iota
	layoutIMF            // Sun, 06 Nov 1994 08:49:37 GMT
	layoutRFC850         // Sunday, 06-Nov-94 08:49:37 GMT
	layoutASCTime        // Sun Nov  6 08:49:37 1994
)

const (
	asctimeLen = 24

	// Bytes following the weekday in an RFC 850 date: ", 06-Nov-94 08:49:37 GMT".
	rfc850Tail = 24

	minLongDay = len("Monday")
	maxLongDay = len("Wednesday")
)

// detect picks the layout from length and delimiter positions alone. For
// RFC 850 it also returns the length of the weekday name.
func detect(b []byte) (layout, int) {
	switch {
	case len(b) == Len && b[3] == ',':
		return layoutIMF, 3
	case len(b) == asctimeLen && b[3] == ' ':
		return layoutASCTime, 3
	}
	for i := minLongDay; i <= maxLongDay && i < len(b); i++ {
		if b[i] != ',' {
			continue
		}
		if len(b) == i+rfc850Tail && b[i+4] == '-' {
			return layoutRFC850, i
		}
		break
	}
	return layoutUnknown, 0
}

// Parse decodes an HTTP-date in IMF-fixdate, RFC 850 or asctime form and
// returns seconds since the Unix epoch. The weekday name is checked for
// shape only; the date fields alone determine the result.
func Parse(b []byte) (uint64, error) {
	l, wd := detect(b)
	switch l {
	case layoutIMF:
		return parseIMF(b)
	case layoutRFC850:
		return parseRFC850(b, wd)
	case layoutASCTime:
		return parseASCTime(b)
	}
	return 0, StructuralMismatch
}

// ParseString is like Parse but takes a string.
func ParseString(s string) (uint64, error) {
	return Parse([]byte(s))
}

// Sun, 06 Nov 1994 08:49:37 GMT
func parseIMF(b []byte) (uint64, error) {
	if !letters(b[0:3]) || b[4] != ' ' || b[7] != ' ' || b[11] != ' ' || b[16] != ' ' ||
		string(b[25:]) != " GMT" {
		return 0, StructuralMismatch
	}
	day, ok := digits(b[5:7])
	if !ok {
		return 0, StructuralMismatch
	}
	year, ok := digits(b[12:16])
	if !ok {
		return 0, StructuralMismatch
	}
	hour, minute, second, ok := clock(b[17:25])
	if !ok {
		return 0, StructuralMismatch
	}
	month, ok := lookupMonth(b[8:11])
	if !ok {
		return 0, UnknownMonthName
	}
	return civilToTimestamp(year, month, day, hour, minute, second)
}

// Sunday, 06-Nov-94 08:49:37 GMT
func parseRFC850(b []byte, wd int) (uint64, error) {
	if !letters(b[:wd]) {
		return 0, StructuralMismatch
	}
	r := b[wd+2:]
	if b[wd+1] != ' ' || r[2] != '-' || r[6] != '-' || r[9] != ' ' || string(r[18:]) != " GMT" {
		return 0, StructuralMismatch
	}
	day, ok := digits(r[0:2])
	if !ok {
		return 0, StructuralMismatch
	}
	yy, ok := digits(r[7:9])
	if !ok {
		return 0, StructuralMismatch
	}
	hour, minute, second, ok := clock(r[10:18])
	if !ok {
		return 0, StructuralMismatch
	}
	month, ok := lookupMonth(r[3:6])
	if !ok {
		return 0, UnknownMonthName
	}
	return civilToTimestamp(expandYear(yy), month, day, hour, minute, second)
}

// Sun Nov  6 08:49:37 1994
func parseASCTime(b []byte) (uint64, error) {
	if !letters(b[0:3]) || b[7] != ' ' || b[10] != ' ' || b[19] != ' ' {
		return 0, StructuralMismatch
	}
	var day int
	var ok bool
	if b[8] == ' ' {
		day, ok = digits(b[9:10])
	} else {
		day, ok = digits(b[8:10])
	}
	if !ok {
		return 0, StructuralMismatch
	}
	hour, minute, second, ok := clock(b[11:19])
	if !ok {
		return 0, StructuralMismatch
	}
	year, ok := digits(b[20:24])
	if !ok {
		return 0, StructuralMismatch
	}
	month, ok := lookupMonth(b[4:7])
	if !ok {
		return 0, UnknownMonthName
	}
	return civilToTimestamp(year, month, day, hour, minute, second)
}

// expandYear maps a two-digit RFC 850 year: 00-69 to 2000-2069 and 70-99
// to 1970-1999.
func expandYear(yy int) int {
	if yy < 70 {
		return 2000 + yy
	}
	return 1900 + yy
}

// clock parses "HH:MM:SS".
func clock(b []byte) (hour, minute, second int, ok bool) {
	if b[2] != ':' || b[5] != ':' {
		return 0, 0, 0, false
	}
	if hour, ok = digits(b[0:2]); !ok {
		return 0, 0, 0, false
	}
	if minute, ok = digits(b[3:5]); !ok {
		return 0, 0, 0, false
	}
	if second, ok = digits(b[6:8]); !ok {
		return 0, 0, 0, false
	}
	return hour, minute, second, true
}

// digits parses b as an unsigned decimal number. Every byte must be a digit.
func digits(b []byte) (int, bool) {
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func letters(b []byte) bool {
	for _, c := range b {
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}

// lookupMonth returns the 1-based month for a case-sensitive three-letter
// abbreviation.
func lookupMonth(b []byte) (int, bool) {
	for i := 0; i < len(shortMonthNames); i += 3 {
		if string(b) == shortMonthNames[i:i+3] {
			return i/3 + 1, true
		}
	}
	return 0, false
}
