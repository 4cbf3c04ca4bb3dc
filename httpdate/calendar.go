package httpdate

import "strconv"

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour

	daysPer400Years = 365*400 + 97
	daysPer100Years = 365*100 + 24
	daysPer4Years   = 365*4 + 1

	// baseYear is 1 mod 400, so 400-year cycles counted from it line up
	// with the Gregorian leap rules.
	baseYear = 1601

	// Days from 1601-01-01 to 1970-01-01.
	baseToEpochDays = 134774

	minYear = 1970
	maxYear = 9999
)

// MaxTimestamp is the last second that fits in an IMF-fixdate,
// 9999-12-31T23:59:59Z.
const MaxTimestamp uint64 = 253402300799

// A Weekday specifies a day of the week (Sunday = 0, ...).
type Weekday uint8

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var longDayNames = [7]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// String returns the English name of the day ("Sunday", "Monday", ...).
func (d Weekday) String() string {
	if d <= Saturday {
		return longDayNames[d]
	}
	return "%!Weekday(" + strconv.Itoa(int(d)) + ")"
}

// daysBefore[m] counts the days in a non-leap year before month m+1 begins.
var daysBefore = [13]uint16{
	0,
	31,
	31 + 28,
	31 + 28 + 31,
	31 + 28 + 31 + 30,
	31 + 28 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31 + 30,
	365,
}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the number of days in month (1-12) of year, or 0 if month
// is out of range.
func DaysIn(month, year int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeap(year) {
		return 29
	}
	return int(daysBefore[month] - daysBefore[month-1])
}

// civil is a broken-down UTC instant.
type civil struct {
	year    int
	month   int
	day     int
	hour    int
	minute  int
	second  int
	weekday Weekday
}

// timestampToCivil decomposes ts. The caller guarantees ts <= MaxTimestamp.
func timestampToCivil(ts uint64) civil {
	days := ts / secondsPerDay
	rem := ts % secondsPerDay

	c := civil{
		hour:    int(rem / secondsPerHour),
		minute:  int(rem % secondsPerHour / secondsPerMinute),
		second:  int(rem % secondsPerMinute),
		weekday: Weekday((days + 4) % 7),
	}

	d := days + baseToEpochDays

	n := d / daysPer400Years
	y := 400 * n
	d -= daysPer400Years * n

	// The last 100-year cycle of each 400 has one extra day.
	n = d / daysPer100Years
	if n == 4 {
		n = 3
	}
	y += 100 * n
	d -= daysPer100Years * n

	n = d / daysPer4Years
	y += 4 * n
	d -= daysPer4Years * n

	// Likewise the last year of each 4-year cycle.
	n = d / 365
	if n == 4 {
		n = 3
	}
	y += n
	d -= 365 * n

	c.year = int(y) + baseYear

	yday := int(d)
	c.month = 1
	for ; c.month < 12; c.month++ {
		n := DaysIn(c.month, c.year)
		if yday < n {
			break
		}
		yday -= n
	}
	c.day = yday + 1
	return c
}

// daysSinceEpoch counts the days from 1970-01-01 to January 1st of year.
// year must be at least 1970.
func daysSinceEpoch(year int) uint64 {
	y := uint64(year - baseYear)
	days := 365*y + y/4 - y/100 + y/400
	return days - baseToEpochDays
}

// civilToTimestamp validates the fields and converts them to seconds since
// the epoch. Field errors take precedence over the year range.
func civilToTimestamp(year, month, day, hour, minute, second int) (uint64, error) {
	if month < 1 || month > 12 {
		return 0, InvalidDate
	}
	if day < 1 || day > DaysIn(month, year) {
		return 0, InvalidDate
	}
	if hour < 0 || hour >= 24 || minute < 0 || minute >= 60 || second < 0 || second >= 60 {
		return 0, InvalidDate
	}
	if year < minYear || year > maxYear {
		return 0, YearOutOfRange
	}

	days := daysSinceEpoch(year) + uint64(daysBefore[month-1]) + uint64(day-1)
	if month > 2 && IsLeap(year) {
		days++
	}

	ts := days*secondsPerDay +
		uint64(hour)*secondsPerHour +
		uint64(minute)*secondsPerMinute +
		uint64(second)
	return ts, nil
}
