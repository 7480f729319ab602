package alerts

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func classifiedDose(pid uuid.UUID, label string, due time.Time, now time.Time) Classified {
	return Classify(Event{
		PatientID: pid,
		Kind:      KindMedicationDose,
		Label:     label,
		Due:       due,
	}, now)
}

func TestBuildFeed_Ordering(t *testing.T) {
	pid := uuid.New()
	now := testNow

	classified := []Classified{
		classifiedDose(pid, "upcoming-late", now.Add(45*time.Minute), now),
		classifiedDose(pid, "missed-recent", now.Add(-10*time.Minute), now),
		classifiedDose(pid, "upcoming-soon", now.Add(15*time.Minute), now),
		classifiedDose(pid, "missed-worst", now.Add(-3*time.Hour), now),
		classifiedDose(pid, "due-now", now.Add(20*time.Second), now),
	}
	emergencies := []Event{{PatientID: pid, Kind: KindEmergency, Label: "High Heart Rate", Due: now}}

	feed := BuildFeed(classified, emergencies, nil, time.Hour)

	if len(feed.Emergencies) != 1 {
		t.Fatalf("expected 1 emergency, got %d", len(feed.Emergencies))
	}
	want := []string{"missed-worst", "missed-recent", "due-now", "upcoming-soon", "upcoming-late"}
	if len(feed.Alerts) != len(want) {
		t.Fatalf("expected %d alerts, got %d", len(want), len(feed.Alerts))
	}
	for i, label := range want {
		if feed.Alerts[i].Label != label {
			t.Errorf("alerts[%d] = %q, want %q", i, feed.Alerts[i].Label, label)
		}
	}
}

func TestBuildFeed_CompletedExcluded(t *testing.T) {
	pid := uuid.New()
	due := testNow.Add(-time.Hour)
	taken := testNow.Add(-30 * time.Minute)
	c := Classify(Event{PatientID: pid, Kind: KindMedicationDose, Label: "med", Due: due, Completion: &taken}, testNow)

	feed := BuildFeed([]Classified{c}, nil, nil, time.Hour)
	if len(feed.Alerts) != 0 {
		t.Errorf("completed event must not appear in the feed, got %d alerts", len(feed.Alerts))
	}
}

func TestBuildFeed_NearDueWindow(t *testing.T) {
	pid := uuid.New()
	inside := classifiedDose(pid, "inside", testNow.Add(30*time.Minute), testNow)
	outside := classifiedDose(pid, "outside", testNow.Add(2*time.Hour), testNow)

	feed := BuildFeed([]Classified{inside, outside}, nil, nil, time.Hour)
	if len(feed.Alerts) != 1 || feed.Alerts[0].Label != "inside" {
		t.Errorf("expected only the near-due event, got %+v", feed.Alerts)
	}
}

func TestBuildFeed_DismissedFilteredButCounted(t *testing.T) {
	pid := uuid.New()
	due := testNow.Add(-10 * time.Minute)
	c := classifiedDose(pid, "missed", due, testNow)
	id := AlertID(pid, "missed", due)

	feed := BuildFeed([]Classified{c}, nil, map[string]bool{id: true}, time.Hour)
	if len(feed.Alerts) != 0 {
		t.Errorf("dismissed alert must be filtered, got %d", len(feed.Alerts))
	}
	if feed.DismissedCount != 1 {
		t.Errorf("dismissedCount = %d, want 1", feed.DismissedCount)
	}
	if feed.TotalComputed != 1 {
		t.Errorf("totalComputed = %d, want 1", feed.TotalComputed)
	}
}

func TestBuildFeed_EmergenciesNeverDismissed(t *testing.T) {
	pid := uuid.New()
	ev := Event{PatientID: pid, Kind: KindEmergency, Label: "High Heart Rate", Due: testNow}
	id := AlertID(pid, ev.Label, ev.Due)

	feed := BuildFeed(nil, []Event{ev}, map[string]bool{id: true}, time.Hour)
	if len(feed.Emergencies) != 1 {
		t.Errorf("emergency must survive dismissal, got %d", len(feed.Emergencies))
	}
}

func TestAlertID_Deterministic(t *testing.T) {
	pid := uuid.New()
	due := time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local)

	if AlertID(pid, "Paracetamol", due) != AlertID(pid, "Paracetamol", due) {
		t.Error("same occurrence must hash to the same id")
	}
	if AlertID(pid, "Paracetamol", due) == AlertID(pid, "Paracetamol", due.Add(24*time.Hour)) {
		t.Error("next day's dose must get a fresh id")
	}
	if AlertID(pid, "Paracetamol", due) == AlertID(uuid.New(), "Paracetamol", due) {
		t.Error("different patients must get different ids")
	}
}
