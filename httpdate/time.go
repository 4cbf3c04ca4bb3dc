package httpdate

import "time"

// FormatTime returns t as an IMF-fixdate, truncated to the second. Times
// before the epoch or after MaxTimestamp yield OutOfRange.
func FormatTime(t time.Time) (string, error) {
	sec := t.Unix()
	if sec < 0 {
		return "", OutOfRange
	}
	var buf [Len]byte
	if err := Format(uint64(sec), &buf); err != nil {
		return "", err
	}
	return string(buf[:]), nil
}

// ParseTime parses an HTTP-date in any of the accepted layouts and returns
// it as a UTC time.Time.
func ParseTime(s string) (time.Time, error) {
	ts, err := ParseString(s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(ts), 0).UTC(), nil
}
