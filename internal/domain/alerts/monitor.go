package alerts

import (
	"fmt"

	"github.com/careboard/careboard/internal/domain/patient"
)

// Thresholds are the clinical limits checked against the latest reading.
// Both boundaries are strict: a reading exactly at the limit is normal.
type Thresholds struct {
	MaxHeartRate   int
	MaxTemperature float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{MaxHeartRate: 100, MaxTemperature: 38.0}
}

// Check inspects the most recent reading and emits one emergency event per
// crossed threshold. A nil reading (patient with no history) emits nothing.
// Emergencies are a point-in-time safety check, independent of scheduling.
func (t Thresholds) Check(r *patient.VitalReading) []Event {
	if r == nil {
		return nil
	}
	var events []Event
	if r.HeartRate > t.MaxHeartRate {
		events = append(events, Event{
			PatientID: r.PatientID,
			Kind:      KindEmergency,
			Label:     "High Heart Rate",
			Detail:    fmt.Sprintf("%d bpm (limit %d)", r.HeartRate, t.MaxHeartRate),
			Due:       r.RecordedAt,
		})
	}
	if r.Temperature > t.MaxTemperature {
		events = append(events, Event{
			PatientID: r.PatientID,
			Kind:      KindEmergency,
			Label:     "High Temperature",
			Detail:    fmt.Sprintf("%.1f C (limit %.1f)", r.Temperature, t.MaxTemperature),
			Due:       r.RecordedAt,
		})
	}
	return events
}
