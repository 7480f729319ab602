package alerts

import (
	"fmt"

	"github.com/careboard/careboard/internal/domain/patient"
)

// Snapshot is everything the engine reads about one patient, fetched once
// per computation so the whole pass sees a consistent view.
type Snapshot struct {
	Patient     *patient.Patient
	Medications []*patient.Medication
	// Readings newest first.
	Readings    []*patient.VitalReading
	Obligations []*patient.VitalObligation
}

// Collect enumerates every schedulable occurrence in the snapshot: one
// event per (medication, scheduled time) pair, one per recent vitals
// reading (up to checkCount), and one per vital obligation. Scheduled times
// that fail to parse are skipped. An empty snapshot yields an empty slice.
func Collect(s Snapshot, checkCount int) []Event {
	var events []Event

	for _, m := range s.Medications {
		for _, ts := range m.Times {
			due, ok := ParseClock(ts)
			if !ok {
				continue
			}
			events = append(events, Event{
				PatientID:  m.PatientID,
				Kind:       KindMedicationDose,
				Label:      m.Name,
				Detail:     m.Dose,
				Due:        due,
				Completion: m.LastTaken,
			})
		}
	}

	for i, r := range s.Readings {
		if i >= checkCount {
			break
		}
		recorded := r.RecordedAt
		events = append(events, Event{
			PatientID:  r.PatientID,
			Kind:       KindVitalsCheck,
			Label:      "Vitals Check",
			Detail:     fmt.Sprintf("HR %d, BP %d/%d, Temp %.1f", r.HeartRate, r.BPSystolic, r.BPDiastolic, r.Temperature),
			Due:        recorded,
			Completion: &recorded,
		})
	}

	for _, o := range s.Obligations {
		ev := Event{
			PatientID: o.PatientID,
			Kind:      KindVitalsCheck,
			Label:     o.Name,
			Detail:    "Scheduled check",
		}
		switch o.Status {
		case patient.ObligationTaken:
			if o.Time == nil {
				continue
			}
			ev.Due = *o.Time
			ev.Completion = o.Time
		case patient.ObligationPending:
			// A pending check is due as of when it was requested.
			if o.UpdatedAt.IsZero() {
				continue
			}
			ev.Due = o.UpdatedAt
		default:
			continue
		}
		events = append(events, ev)
	}

	return events
}
