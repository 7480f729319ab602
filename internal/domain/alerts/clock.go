package alerts

import "time"

// ClockLayout is the single time layout carried through patient schedules.
// All instants are naive local time; no timezone conversion happens anywhere
// in the engine.
const ClockLayout = "2006-01-02 15:04"

// ParseClock parses a schedule time string. Malformed input reports ok=false
// instead of an error; callers skip the event and keep going, so bad
// historical data never aborts a feed computation.
func ParseClock(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(ClockLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatClock renders an instant back into the schedule layout.
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}
