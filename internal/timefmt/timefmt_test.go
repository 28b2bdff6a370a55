package timefmt

import (
	"errors"
	"testing"
	"time"
)

func TestParseLayouts(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"1/21/2020 6:00", time.Date(2020, 1, 21, 6, 0, 0, 0, time.UTC)},
		{"01/21/2020 06:00:00 PM", time.Date(2020, 1, 21, 18, 0, 0, 0, time.UTC)},
		{"1/21/20 6:05", time.Date(2020, 1, 21, 6, 5, 0, 0, time.UTC)},
		{"Jan 21, 2020, 6:00 AM", time.Date(2020, 1, 21, 6, 0, 0, 0, time.UTC)},
		{"Jan 21, 2020, 6:00", time.Date(2020, 1, 21, 6, 0, 0, 0, time.UTC)},
		{"20200121", time.Date(2020, 1, 21, 0, 0, 0, 0, time.UTC)},
		{"1/21/2020", time.Date(2020, 1, 21, 0, 0, 0, 0, time.UTC)},
		{"2020/01/21 6:00 PM", time.Date(2020, 1, 21, 18, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseNumericAndMonthNameAgree(t *testing.T) {
	a, err := Parse("1/21/2020 6:00")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Parse("Jan 21, 2020, 6:00 AM")
	if err != nil {
		t.Fatal(err)
	}
	if YearMonthDay(a) != "20200121" || YearMonthDay(b) != "20200121" {
		t.Fatalf("dates differ: %s %s", YearMonthDay(a), YearMonthDay(b))
	}
	if a.Hour() != 6 || b.Hour() != 6 || a.Minute() != 0 || b.Minute() != 0 {
		t.Fatalf("times differ: %v %v", a, b)
	}
}

func TestParseRejectsPartialMatch(t *testing.T) {
	for _, in := range []string{"", "1/21/2020 6:00 extra", "2020-01-21", "13/45/2020", "tomorrow"} {
		_, err := Parse(in)
		var pe *DateParseError
		if !errors.As(err, &pe) {
			t.Fatalf("Parse(%q) err = %v, want DateParseError", in, err)
		}
		if pe.Value != in {
			t.Fatalf("error value = %q", pe.Value)
		}
	}
}

func TestFormatters(t *testing.T) {
	ts := time.Date(2020, 7, 4, 14, 7, 33, 0, time.UTC)
	if got := AccessDate(ts); got != "07/04/2020" {
		t.Fatalf("AccessDate = %q", got)
	}
	if got := AccessTime(ts); got != "02:07:00 PM" {
		t.Fatalf("AccessTime = %q", got)
	}
	if got := YearMonthDay(ts); got != "20200704" {
		t.Fatalf("YearMonthDay = %q", got)
	}
	back, err := Parse(AccessDate(ts) + " " + AccessTime(ts))
	if err != nil || back.Hour() != 14 || back.Minute() != 7 {
		t.Fatalf("round trip = %v, %v", back, err)
	}
}

func TestDistances(t *testing.T) {
	a := time.Date(2020, 1, 21, 6, 0, 0, 0, time.UTC)
	b := time.Date(2020, 3, 3, 23, 59, 0, 0, time.UTC)
	if got := DaysBetween(a, b); got != 42 {
		t.Fatalf("DaysBetween = %d", got)
	}
	if got := MinutesApart(a, a.Add(45*time.Minute)); got != 45 {
		t.Fatalf("MinutesApart = %d", got)
	}
}
