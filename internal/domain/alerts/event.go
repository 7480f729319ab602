package alerts

import (
	"time"

	"github.com/google/uuid"
)

// Event kinds.
type Kind string

const (
	KindMedicationDose Kind = "medication_dose"
	KindVitalsCheck    Kind = "vitals_check"
	KindEmergency      Kind = "emergency"
)

// Schedule statuses assigned by Classify.
type Status string

const (
	StatusMissed    Status = "missed"
	StatusDueNow    Status = "due_now"
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
)

// Event is one schedulable occurrence derived from a patient's record:
// a (medication, scheduled time) pair, a vitals check, or an emergency
// threshold hit. Events are rebuilt from scratch on every feed computation
// and never persisted.
type Event struct {
	PatientID uuid.UUID
	Kind      Kind
	Label     string
	Detail    string
	Due       time.Time
	// Completion is the instant the occurrence was satisfied, when known:
	// a medication's last_taken or a vital check's recorded time.
	Completion *time.Time
}

// Classified is an Event stamped with its status relative to a single
// sampled "now".
type Classified struct {
	Event
	Status Status
	// SecondsDelta is due minus now, signed; negative means past due.
	SecondsDelta int64
	// MinutesLeft is floor(SecondsDelta/60) for upcoming events, zero
	// otherwise.
	MinutesLeft int
}

// MinutesLate reports how far past due a missed event is.
func (c Classified) MinutesLate() int {
	if c.SecondsDelta >= 0 {
		return 0
	}
	return int(-c.SecondsDelta / 60)
}
