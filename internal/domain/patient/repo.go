package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("patient not found")
	ErrMedicationNotFound = errors.New("medication not found")
)

// Atomic runs fn as a single unit of work, rolling back every write fn
// made when it returns an error. A nil Atomic runs fn directly.
type Atomic func(ctx context.Context, fn func(ctx context.Context) error) error

// Repository is the persistence port for patients.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
}

// MedicationRepository is the persistence port for medications and their
// scheduled times.
type MedicationRepository interface {
	Create(ctx context.Context, m *Medication) error
	GetByID(ctx context.Context, id uuid.UUID) (*Medication, error)
	Update(ctx context.Context, m *Medication) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Medication, error)
}

// VitalReadingRepository is the persistence port for vital sign readings.
// ListByPatient returns readings newest first.
type VitalReadingRepository interface {
	Create(ctx context.Context, r *VitalReading) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit int) ([]*VitalReading, error)
}

// VitalObligationRepository is the persistence port for per-patient vital
// check obligations. Upsert keys on (patient_id, name).
type VitalObligationRepository interface {
	Upsert(ctx context.Context, o *VitalObligation) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*VitalObligation, error)
}
