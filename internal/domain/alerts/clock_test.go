package alerts

import "testing"

func TestParseClock_RoundTrip(t *testing.T) {
	inputs := []string{
		"2025-03-10 08:00",
		"2024-12-31 23:59",
		"2025-01-01 00:00",
	}
	for _, in := range inputs {
		parsed, ok := ParseClock(in)
		if !ok {
			t.Fatalf("ParseClock(%q) failed", in)
		}
		if got := FormatClock(parsed); got != in {
			t.Errorf("round trip %q = %q", in, got)
		}
	}
}

func TestParseClock_Malformed(t *testing.T) {
	inputs := []string{
		"",
		"not-a-time",
		"2025-03-10",
		"08:00",
		"2025-13-40 99:99",
		"2025-03-10T08:00:00Z",
	}
	for _, in := range inputs {
		if _, ok := ParseClock(in); ok {
			t.Errorf("ParseClock(%q) ok = true, want false", in)
		}
	}
}
