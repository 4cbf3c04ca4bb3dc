package httpdate

// Len is the length of an IMF-fixdate, e.g. "Sun, 06 Nov 1994 08:49:37 GMT".
const Len = 29

const shortDayNames = "SunMonTueWedThuFriSat"

const shortMonthNames = "JanFebMarAprMayJunJulAugSepOctNovDec"

func n00(buf []byte, n int) {
	buf[0] = byte('0' + n/10)
	buf[1] = byte('0' + n%10)
}

// Format writes ts as an IMF-fixdate into out. If ts is past MaxTimestamp
// it returns OutOfRange and leaves out untouched.
func Format(ts uint64, out *[Len]byte) error {
	if ts > MaxTimestamp {
		return OutOfRange
	}
	c := timestampToCivil(ts)

	wd := int(c.weekday) * 3
	copy(out[0:3], shortDayNames[wd:wd+3])
	out[3] = ','
	out[4] = ' '
	n00(out[5:7], c.day)
	out[7] = ' '
	m := (c.month - 1) * 3
	copy(out[8:11], shortMonthNames[m:m+3])
	out[11] = ' '
	n00(out[12:14], c.year/100)
	n00(out[14:16], c.year%100)
	out[16] = ' '
	n00(out[17:19], c.hour)
	out[19] = ':'
	n00(out[20:22], c.minute)
	out[22] = ':'
	n00(out[23:25], c.second)
	copy(out[25:], " GMT")
	return nil
}

// AppendFormat appends the IMF-fixdate of ts to dst. On error dst is
// returned unchanged.
func AppendFormat(dst []byte, ts uint64) ([]byte, error) {
	var buf [Len]byte
	if err := Format(ts, &buf); err != nil {
		return dst, err
	}
	return append(dst, buf[:]...), nil
}
