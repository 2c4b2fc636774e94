package schedule

import (
	"errors"
	"testing"
)

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"identical", Interval{540, 600}, Interval{540, 600}, true},
		{"contained", Interval{540, 600}, Interval{550, 590}, true},
		{"partial front", Interval{540, 600}, Interval{570, 630}, true},
		{"partial back", Interval{570, 630}, Interval{540, 600}, true},
		{"disjoint", Interval{540, 600}, Interval{660, 720}, false},
		{"touching end to start", Interval{540, 600}, Interval{600, 660}, false},
		{"touching start to end", Interval{600, 660}, Interval{540, 600}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
			// The predicate is symmetric.
			if got := tc.b.Overlaps(tc.a); got != tc.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tc.b, tc.a, got, tc.want)
			}
		})
	}
}

func TestParseMinutes(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"9:30", 570, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseMinutes(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidRange) {
				t.Errorf("ParseMinutes(%q) error = %v, want ErrInvalidRange", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMinutes(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMinutes(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormatMinutesRoundTrip(t *testing.T) {
	for _, m := range []int{0, 1, 59, 60, 570, 1439} {
		s := FormatMinutes(m)
		got, err := ParseMinutes(s)
		if err != nil {
			t.Fatalf("ParseMinutes(FormatMinutes(%d)) error: %v", m, err)
		}
		if got != m {
			t.Errorf("round trip %d -> %q -> %d", m, s, got)
		}
	}
}

func TestParseInterval(t *testing.T) {
	iv, err := ParseInterval("09:00", "10:00")
	if err != nil {
		t.Fatalf("ParseInterval: %v", err)
	}
	if iv.Start != 540 || iv.End != 600 {
		t.Errorf("ParseInterval = %v, want {540 600}", iv)
	}

	for _, tc := range [][2]string{
		{"10:00", "09:00"}, // inverted
		{"10:00", "10:00"}, // empty
		{"ten", "11:00"},
		{"10:00", "eleven"},
	} {
		if _, err := ParseInterval(tc[0], tc[1]); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("ParseInterval(%q, %q) error = %v, want ErrInvalidRange", tc[0], tc[1], err)
		}
	}
}

func TestParseDay(t *testing.T) {
	day, err := ParseDay("2024-06-01")
	if err != nil {
		t.Fatalf("ParseDay: %v", err)
	}
	if day != "2024-06-01" {
		t.Errorf("ParseDay = %q", day)
	}
	for _, in := range []string{"2024-13-01", "2024-06-32", "June 1st", ""} {
		if _, err := ParseDay(in); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("ParseDay(%q) error = %v, want ErrInvalidRange", in, err)
		}
	}
}
