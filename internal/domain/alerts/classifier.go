package alerts

import "time"

// Classify stamps an event with its status relative to now.
//
// An event in the past with a completion at or after its due instant is
// completed; past with no such completion is missed. An event due in the
// same minute as now is due now. Everything in the future is upcoming,
// annotated with whole minutes remaining. Each scheduled time of a
// medication is classified independently, so one medication can hold both
// missed and upcoming entries at once.
func Classify(ev Event, now time.Time) Classified {
	c := Classified{
		Event:        ev,
		SecondsDelta: int64(ev.Due.Sub(now) / time.Second),
	}

	switch {
	case ev.Due.Truncate(time.Minute).Equal(now.Truncate(time.Minute)):
		if completedBy(ev, ev.Due) {
			c.Status = StatusCompleted
		} else {
			c.Status = StatusDueNow
		}
	case c.SecondsDelta < 0:
		if completedBy(ev, ev.Due) {
			c.Status = StatusCompleted
		} else {
			c.Status = StatusMissed
		}
	default:
		c.Status = StatusUpcoming
		c.MinutesLeft = int(c.SecondsDelta / 60)
	}
	return c
}

// ClassifyAll classifies every event against the same now.
func ClassifyAll(events []Event, now time.Time) []Classified {
	out := make([]Classified, 0, len(events))
	for _, ev := range events {
		out = append(out, Classify(ev, now))
	}
	return out
}

func completedBy(ev Event, due time.Time) bool {
	return ev.Completion != nil && !ev.Completion.Before(due)
}
