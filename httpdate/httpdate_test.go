package httpdate

import (
	"bytes"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var knownDates = []struct {
	ts   uint64
	text string
}{
	{784111777, "Sun, 06 Nov 1994 08:49:37 GMT"},
	{1475419451, "Sun, 02 Oct 2016 14:44:11 GMT"},
	{1431704061, "Fri, 15 May 2015 15:34:21 GMT"},
	{MaxTimestamp, "Fri, 31 Dec 9999 23:59:59 GMT"},

	// Epoch and the second after it
	{0, "Thu, 01 Jan 1970 00:00:00 GMT"},
	{1, "Thu, 01 Jan 1970 00:00:01 GMT"},

	// First leap day after the epoch
	{68169599, "Mon, 28 Feb 1972 23:59:59 GMT"},
	{68169600, "Tue, 29 Feb 1972 00:00:00 GMT"},
	{68169601, "Tue, 29 Feb 1972 00:00:01 GMT"},
	{68255999, "Tue, 29 Feb 1972 23:59:59 GMT"},
	{68256000, "Wed, 01 Mar 1972 00:00:00 GMT"},
	{68256001, "Wed, 01 Mar 1972 00:00:01 GMT"},

	// Second leap day after the epoch
	{194399999, "Sat, 28 Feb 1976 23:59:59 GMT"},
	{194400000, "Sun, 29 Feb 1976 00:00:00 GMT"},
	{194400001, "Sun, 29 Feb 1976 00:00:01 GMT"},
	{194486399, "Sun, 29 Feb 1976 23:59:59 GMT"},
	{194486400, "Mon, 01 Mar 1976 00:00:00 GMT"},
	{194486401, "Mon, 01 Mar 1976 00:00:01 GMT"},

	// 2000 is divisible by 400
	{951782399, "Mon, 28 Feb 2000 23:59:59 GMT"},
	{951782400, "Tue, 29 Feb 2000 00:00:00 GMT"},
	{951782401, "Tue, 29 Feb 2000 00:00:01 GMT"},
	{951868800, "Wed, 01 Mar 2000 00:00:00 GMT"},
	{978307199, "Sun, 31 Dec 2000 23:59:59 GMT"},

	{1456704000, "Mon, 29 Feb 2016 00:00:00 GMT"},
}

func TestFormatKnownDates(t *testing.T) {
	for _, tt := range knownDates {
		t.Run(tt.text, func(t *testing.T) {
			var buf [Len]byte
			require.NoError(t, Format(tt.ts, &buf))
			assert.Equal(t, tt.text, string(buf[:]))
		})
	}
}

func TestParseKnownDates(t *testing.T) {
	for _, tt := range knownDates {
		t.Run(tt.text, func(t *testing.T) {
			ts, err := ParseString(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.ts, ts)
		})
	}
}

func TestParseAllLayoutsAgree(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"IMF-fixdate", "Sun, 06 Nov 1994 08:49:37 GMT"},
		{"RFC 850", "Sunday, 06-Nov-94 08:49:37 GMT"},
		{"asctime", "Sun Nov  6 08:49:37 1994"},
		{"asctime zero padded day", "Sun Nov 06 08:49:37 1994"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := ParseString(tt.text)
			require.NoError(t, err)
			assert.Equal(t, uint64(784111777), ts)
		})
	}
}

func TestParseIgnoresWeekdayValue(t *testing.T) {
	want, err := ParseString("Fri, 15 May 2015 15:34:21 GMT")
	require.NoError(t, err)

	for _, text := range []string{
		"Mon, 15 May 2015 15:34:21 GMT",
		"Xyz, 15 May 2015 15:34:21 GMT",
		"Monday, 15-May-15 15:34:21 GMT",
		"Fridayx, 15-May-15 15:34:21 GMT",
		"Saturnday, 15-May-15 15:34:21 GMT",
		"Sun May 15 15:34:21 2015",
	} {
		ts, err := ParseString(text)
		require.NoError(t, err, text)
		assert.Equal(t, want, ts, text)
	}
}

func TestParseLeapYears(t *testing.T) {
	ts, err := ParseString("Tue, 29 Feb 2000 00:00:00 GMT")
	require.NoError(t, err)
	assert.Equal(t, uint64(951782400), ts)

	ts, err = ParseString("Mon, 29 Feb 2016 00:00:00 GMT")
	require.NoError(t, err)
	assert.Equal(t, uint64(1456704000), ts)

	_, err = ParseString("Thu, 29 Feb 1900 00:00:00 GMT")
	assert.Equal(t, InvalidDate, err)

	_, err = ParseString("Wed, 29 Feb 2017 00:00:00 GMT")
	assert.Equal(t, InvalidDate, err)

	_, err = ParseString("Sat, 29 Feb 2100 00:00:00 GMT")
	assert.Equal(t, InvalidDate, err)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"empty", "", StructuralMismatch},
		{"weekday only", "Sun", StructuralMismatch},
		{"five digit year", "Sat, 01 Jan 10000 00:00:00", StructuralMismatch},
		{"missing GMT", "Sun, 06 Nov 1994 08:49:37 UTC", StructuralMismatch},
		{"lowercase gmt", "Sun, 06 Nov 1994 08:49:37 gmt", StructuralMismatch},
		{"leading garbage", ".Sun, 06 Nov 1994 08:49:37 GMT", StructuralMismatch},
		{"trailing garbage", "Sun, 06 Nov 1994 08:49:37 GMT.", StructuralMismatch},
		{"bad clock separator", "Sun Nov 10 08*00:00 2000", StructuralMismatch},
		{"bad rfc850 separator", "Sunday, 06-Nov-94 08+49:37 GMT", StructuralMismatch},
		{"sign in day", "Sun, +6 Nov 1994 08:49:37 GMT", StructuralMismatch},
		{"digit weekday", "123, 06 Nov 1994 08:49:37 GMT", StructuralMismatch},
		{"rfc850 short weekday", "Sun, 06-Nov-94 08:49:37 GMT", StructuralMismatch},
		{"rfc850 weekday with digit", "Friday1, 15-May-15 15:34:21 GMT", StructuralMismatch},
		{"rfc850 weekday too long", "Fridayxyzw, 15-May-15 15:34:21 GMT", StructuralMismatch},
		{"rfc850 weekday too short", "Frida, 15-May-15 15:34:21 GMT", StructuralMismatch},
		{"rfc850 four digit year", "Sunday, 06-Nov-1994 08:49:37 GMT", StructuralMismatch},
		{"asctime bad day", "Sun Nov  x 08:49:37 1994", StructuralMismatch},
		{"unknown month", "Sun, 06 Foo 1994 08:49:37 GMT", UnknownMonthName},
		{"lowercase month", "Sun, 06 nov 1994 08:49:37 GMT", UnknownMonthName},
		{"rfc850 unknown month", "Sunday, 06-NOV-94 08:49:37 GMT", UnknownMonthName},
		{"asctime unknown month", "Sun Now  6 08:49:37 1994", UnknownMonthName},
		{"day 32", "Fri, 32 May 2015 15:34:21 GMT", InvalidDate},
		{"day 0", "Fri, 00 May 2015 15:34:21 GMT", InvalidDate},
		{"day 31 in april", "Fri, 31 Apr 2015 15:34:21 GMT", InvalidDate},
		{"hour 24", "Fri, 15 May 2015 24:00:00 GMT", InvalidDate},
		{"minute 60", "Fri, 15 May 2015 15:60:00 GMT", InvalidDate},
		{"leap second", "Fri, 15 May 2015 15:34:60 GMT", InvalidDate},
		{"asctime day 0", "Sun Nov  0 08:49:37 1994", InvalidDate},
		{"before epoch", "Wed, 31 Dec 1969 23:59:59 GMT", YearOutOfRange},
		{"year zero", "Sat, 01 Jan 0000 00:00:00 GMT", YearOutOfRange},
		{"asctime far past", "Sun Nov 10 08:00:00 1000", YearOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := ParseString(tt.text)
			assert.Equal(t, tt.want, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, ts)
		})
	}
}

func TestParseMalformedNeverPanics(t *testing.T) {
	inputs := [][]byte{
		nil,
		{},
		bytes.Repeat([]byte{0}, Len),
		bytes.Repeat([]byte{0xff}, Len),
		bytes.Repeat([]byte{'9'}, Len),
		bytes.Repeat([]byte{'9'}, asctimeLen),
		bytes.Repeat([]byte{','}, 64),
		bytes.Repeat([]byte("Wednesday, "), 1<<12),
		[]byte("Wednesday,                     "),
		[]byte("\xe2\x80\x94, 06 Nov 1994 08:49:37 GMT"),
	}
	for _, valid := range []string{
		"Sun, 06 Nov 1994 08:49:37 GMT",
		"Sunday, 06-Nov-94 08:49:37 GMT",
		"Sun Nov  6 08:49:37 1994",
	} {
		for i := 0; i < len(valid); i++ {
			inputs = append(inputs, []byte(valid[:i]))
		}
	}

	for _, in := range inputs {
		assert.NotPanics(t, func() {
			_, err := Parse(in)
			assert.Error(t, err, "%q", in)
		})
	}
}

func TestExpandYear(t *testing.T) {
	assert.Equal(t, 2000, expandYear(0))
	assert.Equal(t, 2069, expandYear(69))
	assert.Equal(t, 1970, expandYear(70))
	assert.Equal(t, 1999, expandYear(99))

	ts, err := ParseString("Thursday, 01-Jan-70 00:00:00 GMT")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), ts)

	ts, err = ParseString("Saturday, 01-Jan-00 00:00:00 GMT")
	require.NoError(t, err)
	assert.Equal(t, uint64(946684800), ts)
}

func TestFormatBoundary(t *testing.T) {
	var buf [Len]byte
	require.NoError(t, Format(MaxTimestamp, &buf))
	assert.Equal(t, "Fri, 31 Dec 9999 23:59:59 GMT", string(buf[:]))

	for _, ts := range []uint64{MaxTimestamp + 1, MaxTimestamp + 86400, 1<<64 - 1} {
		buf = [Len]byte{}
		assert.Equal(t, OutOfRange, Format(ts, &buf))
		assert.Equal(t, [Len]byte{}, buf, "buffer must stay untouched")
	}
}

func TestAppendFormat(t *testing.T) {
	b, err := AppendFormat([]byte("Date: "), 1431704061)
	require.NoError(t, err)
	assert.Equal(t, "Date: Fri, 15 May 2015 15:34:21 GMT", string(b))

	b, err = AppendFormat([]byte("Date: "), MaxTimestamp+1)
	assert.ErrorIs(t, err, OutOfRange)
	assert.Equal(t, "Date: ", string(b))
}

// Compares against the time package across the whole range, both on a
// coarse stride and day by day over the years with the most leap-rule edges.
func TestRoundTripAgainstTimePackage(t *testing.T) {
	check := func(ts uint64) {
		var buf [Len]byte
		require.NoError(t, Format(ts, &buf))

		want := time.Unix(int64(ts), 0).UTC().Format(http.TimeFormat)
		require.Equal(t, want, string(buf[:]), "ts=%d", ts)

		got, err := Parse(buf[:])
		require.NoError(t, err, "ts=%d", ts)
		require.Equal(t, ts, got)
	}

	const stride = 7919*secondsPerHour + 17
	for ts := uint64(0); ts <= MaxTimestamp; ts += stride {
		check(ts)
	}
	for ts := uint64(0); ts < 135*365*secondsPerDay; ts += secondsPerDay - 1 {
		check(ts)
	}
	for ts := MaxTimestamp - 3*366*secondsPerDay; ts <= MaxTimestamp; ts += secondsPerDay/2 + 1 {
		check(ts)
	}
	check(MaxTimestamp)
}

func TestParseASCTimeAgainstTimePackage(t *testing.T) {
	for ts := int64(0); ts < 60*365*secondsPerDay; ts += 3*secondsPerDay + 4321 {
		tm := time.Unix(ts, 0).UTC()

		got, err := ParseString(tm.Format(time.ANSIC))
		require.NoError(t, err, tm.Format(time.ANSIC))
		require.Equal(t, uint64(ts), got)

		got, err = ParseString(tm.Format("Monday, 02-Jan-06 15:04:05 GMT"))
		require.NoError(t, err)
		require.Equal(t, uint64(ts), got)
	}
}

func TestCalendarHelpers(t *testing.T) {
	assert.True(t, IsLeap(2000))
	assert.True(t, IsLeap(2016))
	assert.False(t, IsLeap(1900))
	assert.False(t, IsLeap(2015))

	assert.Equal(t, 29, DaysIn(2, 2000))
	assert.Equal(t, 28, DaysIn(2, 1900))
	assert.Equal(t, 31, DaysIn(12, 9999))
	assert.Equal(t, 30, DaysIn(4, 2015))
	assert.Equal(t, 0, DaysIn(13, 2015))
	assert.Equal(t, 0, DaysIn(0, 2015))

	c := timestampToCivil(0)
	assert.Equal(t, civil{year: 1970, month: 1, day: 1, weekday: Thursday}, c)
	assert.Equal(t, "Thursday", c.weekday.String())

	c = timestampToCivil(MaxTimestamp)
	assert.Equal(t, civil{year: 9999, month: 12, day: 31, hour: 23, minute: 59, second: 59, weekday: Friday}, c)
}

func TestTimeAdapters(t *testing.T) {
	tm := time.Date(2015, time.May, 15, 15, 34, 21, 999, time.FixedZone("X", 3600))
	s, err := FormatTime(tm)
	require.NoError(t, err)
	assert.Equal(t, "Fri, 15 May 2015 14:34:21 GMT", s)

	_, err = FormatTime(time.Date(1969, time.December, 31, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, OutOfRange)

	parsed, err := ParseTime("Fri May 15 14:34:21 2015")
	require.NoError(t, err)
	assert.True(t, tm.Truncate(time.Second).Equal(parsed))
	assert.Equal(t, time.UTC, parsed.Location())

	_, err = ParseTime(strings.Repeat("x", 29))
	assert.ErrorIs(t, err, StructuralMismatch)
}

func TestNoAllocations(t *testing.T) {
	in := []byte("Sunday, 06-Nov-94 08:49:37 GMT")
	var buf [Len]byte
	allocs := testing.AllocsPerRun(100, func() {
		ts, _ := Parse(in)
		_ = Format(ts, &buf)
		_, _ = Parse(buf[:3])
	})
	assert.Zero(t, allocs)
}
