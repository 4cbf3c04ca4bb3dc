// Package httpdate converts between Unix timestamps and HTTP-date header
// values (RFC 9110 §5.6.7).
//
// Parse accepts the three layouts a recipient must understand:
//
//	Sun, 06 Nov 1994 08:49:37 GMT    IMF-fixdate
//	Sunday, 06-Nov-94 08:49:37 GMT   RFC 850
//	Sun Nov  6 08:49:37 1994         asctime
//
// Format only produces IMF-fixdate. Timestamps are unsigned seconds since
// 1970-01-01T00:00:00Z and must not exceed MaxTimestamp (the end of year
// 9999). Neither function allocates or panics, whatever the input.
package httpdate
