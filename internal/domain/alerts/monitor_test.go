package alerts

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/careboard/careboard/internal/domain/patient"
)

func reading(hr int, temp float64) *patient.VitalReading {
	return &patient.VitalReading{
		ID:          uuid.New(),
		PatientID:   uuid.New(),
		HeartRate:   hr,
		BPSystolic:  120,
		BPDiastolic: 80,
		Temperature: temp,
		RecordedAt:  time.Date(2025, 3, 10, 7, 30, 0, 0, time.Local),
	}
}

func TestThresholds_NilReading(t *testing.T) {
	if got := DefaultThresholds().Check(nil); got != nil {
		t.Errorf("expected no events for nil reading, got %d", len(got))
	}
}

func TestThresholds_BoundaryIsStrict(t *testing.T) {
	th := DefaultThresholds()

	if got := th.Check(reading(100, 37.0)); len(got) != 0 {
		t.Errorf("hr 100: expected no events, got %d", len(got))
	}
	if got := th.Check(reading(72, 38.0)); len(got) != 0 {
		t.Errorf("temp 38.0: expected no events, got %d", len(got))
	}
}

func TestThresholds_HighHeartRate(t *testing.T) {
	got := DefaultThresholds().Check(reading(101, 37.0))
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got[0].Kind != KindEmergency {
		t.Errorf("kind = %s, want %s", got[0].Kind, KindEmergency)
	}
	if got[0].Label != "High Heart Rate" {
		t.Errorf("label = %q", got[0].Label)
	}
}

func TestThresholds_HighTemperature(t *testing.T) {
	got := DefaultThresholds().Check(reading(72, 38.1))
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got[0].Label != "High Temperature" {
		t.Errorf("label = %q", got[0].Label)
	}
}

func TestThresholds_BothCrossed(t *testing.T) {
	got := DefaultThresholds().Check(reading(110, 39.0))
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
}

func TestThresholds_Configurable(t *testing.T) {
	th := Thresholds{MaxHeartRate: 120, MaxTemperature: 39.5}
	if got := th.Check(reading(110, 39.0)); len(got) != 0 {
		t.Errorf("custom limits: expected no events, got %d", len(got))
	}
}
