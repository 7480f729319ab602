package patient

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var validGenders = map[string]bool{
	"male":   true,
	"female": true,
	"other":  true,
}

var validObligationStatuses = map[string]bool{
	ObligationPending: true,
	ObligationTaken:   true,
}

// Service implements patient registry business logic.
type Service struct {
	repo        Repository
	meds        MedicationRepository
	readings    VitalReadingRepository
	obligations VitalObligationRepository
	atomic      Atomic
}

func NewService(repo Repository, meds MedicationRepository, readings VitalReadingRepository, obligations VitalObligationRepository, atomic Atomic) *Service {
	return &Service{repo: repo, meds: meds, readings: readings, obligations: obligations, atomic: atomic}
}

func (s *Service) inUnit(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.atomic == nil {
		return fn(ctx)
	}
	return s.atomic(ctx, fn)
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if err := s.validate(p); err != nil {
		return err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.repo.Create(ctx, p)
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	if err := s.validate(p); err != nil {
		return err
	}
	existing, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) validate(p *Patient) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Age < 0 || p.Age > 150 {
		return fmt.Errorf("age must be between 0 and 150")
	}
	if p.Gender != nil && !validGenders[*p.Gender] {
		return fmt.Errorf("invalid gender: %s", *p.Gender)
	}
	return nil
}

// AddMedication attaches a medication with its scheduled dose times to a
// patient. Times use the "2006-01-02 15:04" layout; entries are stored as
// given and validated lazily by the schedule engine.
func (s *Service) AddMedication(ctx context.Context, m *Medication) error {
	if m.Name == "" {
		return fmt.Errorf("medication name is required")
	}
	if len(m.Times) == 0 {
		return fmt.Errorf("at least one scheduled time is required")
	}
	if _, err := s.repo.GetByID(ctx, m.PatientID); err != nil {
		return err
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	return s.meds.Create(ctx, m)
}

func (s *Service) ListMedications(ctx context.Context, patientID uuid.UUID) ([]*Medication, error) {
	if _, err := s.repo.GetByID(ctx, patientID); err != nil {
		return nil, err
	}
	return s.meds.ListByPatient(ctx, patientID)
}

// MarkMedicationTaken records that the patient took a dose now. The engine
// treats every scheduled time at or before last_taken as completed.
func (s *Service) MarkMedicationTaken(ctx context.Context, medicationID uuid.UUID, takenAt time.Time) (*Medication, error) {
	m, err := s.meds.GetByID(ctx, medicationID)
	if err != nil {
		return nil, err
	}
	m.LastTaken = &takenAt
	m.UpdatedAt = time.Now()
	if err := s.meds.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) RemoveMedication(ctx context.Context, medicationID uuid.UUID) error {
	if _, err := s.meds.GetByID(ctx, medicationID); err != nil {
		return err
	}
	return s.meds.Delete(ctx, medicationID)
}

// RecordReading appends a vital sign reading and marks the patient's
// pending vital obligations taken as of the reading time.
func (s *Service) RecordReading(ctx context.Context, r *VitalReading) error {
	if r.HeartRate < 20 || r.HeartRate > 250 {
		return fmt.Errorf("heart rate out of range: %d", r.HeartRate)
	}
	if r.BPSystolic < 50 || r.BPSystolic > 260 {
		return fmt.Errorf("systolic pressure out of range: %d", r.BPSystolic)
	}
	if r.BPDiastolic < 30 || r.BPDiastolic > 160 {
		return fmt.Errorf("diastolic pressure out of range: %d", r.BPDiastolic)
	}
	if r.Temperature < 30 || r.Temperature > 45 {
		return fmt.Errorf("temperature out of range: %.1f", r.Temperature)
	}
	if _, err := s.repo.GetByID(ctx, r.PatientID); err != nil {
		return err
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.RecordedAt.IsZero() {
		r.RecordedAt = time.Now()
	}
	// The reading and the obligations it settles land together or not
	// at all.
	return s.inUnit(ctx, func(ctx context.Context) error {
		if err := s.readings.Create(ctx, r); err != nil {
			return err
		}
		obs, err := s.obligations.ListByPatient(ctx, r.PatientID)
		if err != nil {
			return err
		}
		for _, o := range obs {
			if o.Status != ObligationPending {
				continue
			}
			o.Status = ObligationTaken
			t := r.RecordedAt
			o.Time = &t
			o.UpdatedAt = time.Now()
			if err := s.obligations.Upsert(ctx, o); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Service) ListReadings(ctx context.Context, patientID uuid.UUID, limit int) ([]*VitalReading, error) {
	if _, err := s.repo.GetByID(ctx, patientID); err != nil {
		return nil, err
	}
	return s.readings.ListByPatient(ctx, patientID, limit)
}

// UpsertObligation creates or updates the single obligation row for
// (patient, vital name).
func (s *Service) UpsertObligation(ctx context.Context, o *VitalObligation) error {
	if o.Name == "" {
		return fmt.Errorf("vital name is required")
	}
	if o.Status == "" {
		o.Status = ObligationPending
	}
	if !validObligationStatuses[o.Status] {
		return fmt.Errorf("invalid obligation status: %s", o.Status)
	}
	if _, err := s.repo.GetByID(ctx, o.PatientID); err != nil {
		return err
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	now := time.Now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
	return s.obligations.Upsert(ctx, o)
}

func (s *Service) ListObligations(ctx context.Context, patientID uuid.UUID) ([]*VitalObligation, error) {
	if _, err := s.repo.GetByID(ctx, patientID); err != nil {
		return nil, err
	}
	return s.obligations.ListByPatient(ctx, patientID)
}
