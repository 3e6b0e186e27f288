package common

import "testing"

func TestUnixDateString(t *testing.T) {
	// 2023-05-01T00:00:00Z
	if got := UnixDateString(1682899200); got != "Mon May 01 2023" {
		t.Errorf("got %q, want %q", got, "Mon May 01 2023")
	}
}

func TestSplitDateTime(t *testing.T) {
	cases := []struct {
		in    string
		date  string
		clock string
	}{
		{"2023-05-01T14:30:00", "2023-05-01", "14:30:00"},
		{"2023-05-01 14:30:00", "2023-05-01", "14:30:00"},
		{"2023-05-01", "2023-05-01", ""},
		{"", "", ""},
		{"2023-05-01T14:30", "2023-05-01", "14:30"},
	}
	for _, c := range cases {
		date, clock := SplitDateTime(c.in)
		if date != c.date || clock != c.clock {
			t.Errorf("SplitDateTime(%q) = %q, %q; want %q, %q", c.in, date, clock, c.date, c.clock)
		}
	}
}
