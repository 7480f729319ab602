package alerts

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

var testNow = time.Date(2025, 3, 10, 8, 5, 0, 0, time.Local)

func doseEvent(due time.Time, completion *time.Time) Event {
	return Event{
		PatientID:  uuid.New(),
		Kind:       KindMedicationDose,
		Label:      "Paracetamol",
		Detail:     "500mg",
		Due:        due,
		Completion: completion,
	}
}

func TestClassify_PastWithoutCompletionIsMissed(t *testing.T) {
	due := testNow.Add(-5 * time.Minute)
	c := Classify(doseEvent(due, nil), testNow)

	if c.Status != StatusMissed {
		t.Fatalf("status = %s, want %s", c.Status, StatusMissed)
	}
	if c.SecondsDelta != -300 {
		t.Errorf("secondsDelta = %d, want -300", c.SecondsDelta)
	}
	if c.MinutesLate() != 5 {
		t.Errorf("minutesLate = %d, want 5", c.MinutesLate())
	}
}

func TestClassify_CompletionAtOrAfterDueIsCompleted(t *testing.T) {
	due := testNow.Add(-5 * time.Minute)

	exact := due
	if c := Classify(doseEvent(due, &exact), testNow); c.Status != StatusCompleted {
		t.Errorf("completion == due: status = %s, want %s", c.Status, StatusCompleted)
	}

	after := due.Add(2 * time.Minute)
	if c := Classify(doseEvent(due, &after), testNow); c.Status != StatusCompleted {
		t.Errorf("completion after due: status = %s, want %s", c.Status, StatusCompleted)
	}
}

func TestClassify_CompletionBeforeDueStillMissed(t *testing.T) {
	due := testNow.Add(-5 * time.Minute)
	before := due.Add(-time.Hour)
	if c := Classify(doseEvent(due, &before), testNow); c.Status != StatusMissed {
		t.Errorf("stale completion: status = %s, want %s", c.Status, StatusMissed)
	}
}

func TestClassify_SameMinuteIsDueNow(t *testing.T) {
	// Due later in the same wall-clock minute as now.
	due := time.Date(2025, 3, 10, 8, 5, 45, 0, time.Local)
	c := Classify(doseEvent(due, nil), testNow)
	if c.Status != StatusDueNow {
		t.Errorf("status = %s, want %s", c.Status, StatusDueNow)
	}
}

func TestClassify_FutureIsUpcomingWithMinutesLeft(t *testing.T) {
	cases := []struct {
		delta   time.Duration
		minutes int
	}{
		{90 * time.Second, 1},
		{10 * time.Minute, 10},
		{59 * time.Second, 0}, // still next minute, floor to zero
		{2 * time.Hour, 120},
	}
	for _, tc := range cases {
		due := testNow.Add(tc.delta)
		c := Classify(doseEvent(due, nil), testNow)
		if tc.delta >= time.Minute && c.Status != StatusUpcoming {
			t.Errorf("delta %v: status = %s, want %s", tc.delta, c.Status, StatusUpcoming)
			continue
		}
		if c.Status == StatusUpcoming && c.MinutesLeft != tc.minutes {
			t.Errorf("delta %v: minutesLeft = %d, want %d", tc.delta, c.MinutesLeft, tc.minutes)
		}
	}
}

func TestClassify_MixedTimesClassifiedIndependently(t *testing.T) {
	taken := testNow.Add(-3 * time.Hour)
	med := Event{
		Kind:       KindMedicationDose,
		Label:      "Metformin",
		Completion: &taken,
	}

	past := med
	past.Due = testNow.Add(-2 * time.Hour)
	future := med
	future.Due = testNow.Add(30 * time.Minute)

	got := ClassifyAll([]Event{past, future}, testNow)
	if got[0].Status != StatusMissed {
		t.Errorf("past dose: status = %s, want %s", got[0].Status, StatusMissed)
	}
	if got[1].Status != StatusUpcoming {
		t.Errorf("future dose: status = %s, want %s", got[1].Status, StatusUpcoming)
	}
}
