package common

import "time"

// UnixDateString formats unix seconds as date text, e.g. "Mon May 01 2023".
func UnixDateString(sec int64) string {
	return time.Unix(sec, 0).UTC().Format("Mon Jan 02 2006")
}

// UnixMillisDateString formats unix milliseconds as date text.
func UnixMillisDateString(ms int64) string {
	return UnixDateString(ms / 1000)
}

// SplitDateTime splits a combined stamp like "2023-05-01T14:30:00" (or with a
// space separator) into its date and time substrings. A stamp too short to
// carry a time part yields an empty time.
func SplitDateTime(s string) (date, clock string) {
	if len(s) <= 10 {
		return s, ""
	}
	date = s[:10]
	if len(s) >= 19 {
		clock = s[11:19]
	} else {
		clock = s[11:]
	}
	return date, clock
}
