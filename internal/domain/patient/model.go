package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table.
type Patient struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Age       int       `db:"age" json:"age"`
	Gender    *string   `db:"gender" json:"gender,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Medication maps to the medication table. Scheduled times live in the
// medication_time table, one row per scheduled instant, and are carried here
// as strings in the "2006-01-02 15:04" layout. Malformed entries are
// tolerated; the alert engine skips what it cannot parse.
type Medication struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	PatientID uuid.UUID  `db:"patient_id" json:"patient_id"`
	Name      string     `db:"name" json:"name"`
	Dose      string     `db:"dose" json:"dose"`
	Times     []string   `json:"times"`
	LastTaken *time.Time `db:"last_taken" json:"last_taken,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// VitalReading maps to the vital_reading table. Readings are append-only
// historical samples; the newest reading is authoritative for emergency
// threshold checks.
type VitalReading struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	HeartRate   int       `db:"heart_rate" json:"heart_rate"`
	BPSystolic  int       `db:"bp_systolic" json:"bp_systolic"`
	BPDiastolic int       `db:"bp_diastolic" json:"bp_diastolic"`
	Temperature float64   `db:"temperature" json:"temperature"`
	RecordedAt  time.Time `db:"recorded_at" json:"recorded_at"`
}

// Vital obligation statuses.
const (
	ObligationPending = "Pending"
	ObligationTaken   = "Taken"
)

// VitalObligation maps to the vital_obligation table: one row per
// (patient, vital name), updated in place, never duplicated.
type VitalObligation struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	PatientID uuid.UUID  `db:"patient_id" json:"patient_id"`
	Name      string     `db:"name" json:"name"`
	Status    string     `db:"status" json:"status"`
	Value     *string    `db:"value" json:"value,omitempty"`
	Time      *time.Time `db:"time" json:"time,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}
