package tritonhttp

import (
	"net/textproto"
	"time"

	"datehdr/httpdate"
)

// CanonicalHeaderKey returns the canonical format of the
// header key s. The canonicalization converts the first
// letter and any letter following a hyphen to upper case;
// the rest are converted to lowercase. For example, the
// canonical key for "content-type" is "Content-Type".
func CanonicalHeaderKey(s string) string {
	return textproto.CanonicalMIMEHeaderKey(s)
}

// FormatTime formats t as an IMF-fixdate for the "Date" and
// "Last-Modified" headers. Times outside what an IMF-fixdate can
// hold are clamped to the epoch or to the end of year 9999.
func FormatTime(t time.Time) string {
	var ts uint64
	switch sec := t.Unix(); {
	case sec < 0:
		ts = 0
	case uint64(sec) > httpdate.MaxTimestamp:
		ts = httpdate.MaxTimestamp
	default:
		ts = uint64(sec)
	}

	var buf [httpdate.Len]byte
	if err := httpdate.Format(ts, &buf); err != nil {
		panic("tritonhttp: clamped timestamp rejected: " + err.Error())
	}
	return string(buf[:])
}

// ParseTime parses an HTTP-date header value in any of the three
// formats HTTP/1.1 recipients must accept. It backs the typed
// If-Modified-Since field of Request.
func ParseTime(value string) (time.Time, error) {
	return httpdate.ParseTime(value)
}
