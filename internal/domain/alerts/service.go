package alerts

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/careboard/careboard/internal/domain/patient"
)

// Options tune the engine. Zero values fall back to the observed defaults.
type Options struct {
	NearDueWindow time.Duration
	CheckCount    int
	Thresholds    Thresholds
}

func (o Options) withDefaults() Options {
	if o.NearDueWindow <= 0 {
		o.NearDueWindow = time.Hour
	}
	if o.CheckCount <= 0 {
		o.CheckCount = 3
	}
	if o.Thresholds == (Thresholds{}) {
		o.Thresholds = DefaultThresholds()
	}
	return o
}

// Service runs the full alert computation for a patient: collect events,
// classify against a single sampled now, layer emergencies on top, merge,
// and filter through the dismissal store.
type Service struct {
	patients    patient.Repository
	meds        patient.MedicationRepository
	readings    patient.VitalReadingRepository
	obligations patient.VitalObligationRepository
	dismissals  DismissalStore
	opts        Options
}

func NewService(
	patients patient.Repository,
	meds patient.MedicationRepository,
	readings patient.VitalReadingRepository,
	obligations patient.VitalObligationRepository,
	dismissals DismissalStore,
	opts Options,
) *Service {
	return &Service{
		patients:    patients,
		meds:        meds,
		readings:    readings,
		obligations: obligations,
		dismissals:  dismissals,
		opts:        opts.withDefaults(),
	}
}

func (s *Service) snapshot(ctx context.Context, patientID uuid.UUID) (Snapshot, error) {
	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return Snapshot{}, err
	}
	meds, err := s.meds.ListByPatient(ctx, patientID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load medications: %w", err)
	}
	readings, err := s.readings.ListByPatient(ctx, patientID, s.opts.CheckCount)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load readings: %w", err)
	}
	obligations, err := s.obligations.ListByPatient(ctx, patientID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load obligations: %w", err)
	}
	return Snapshot{Patient: p, Medications: meds, Readings: readings, Obligations: obligations}, nil
}

// Feed computes the ordered alert feed for one patient. now is sampled once
// by the caller and used consistently through the whole pass.
func (s *Service) Feed(ctx context.Context, patientID uuid.UUID, now time.Time) (*Feed, error) {
	snap, err := s.snapshot(ctx, patientID)
	if err != nil {
		return nil, err
	}

	events := Collect(snap, s.opts.CheckCount)
	classified := ClassifyAll(events, now)

	var latest *patient.VitalReading
	if len(snap.Readings) > 0 {
		latest = snap.Readings[0]
	}
	emergencies := s.opts.Thresholds.Check(latest)

	dismissed, err := s.dismissals.DismissedSet(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("load dismissals: %w", err)
	}

	feed := BuildFeed(classified, emergencies, dismissed, s.opts.NearDueWindow)
	return &feed, nil
}

// Acknowledge records a dismissal. Repeated acknowledgements of the same id
// are no-ops. Emergency alerts accept the call but are never filtered from
// the feed.
func (s *Service) Acknowledge(ctx context.Context, patientID uuid.UUID, alertID string) error {
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		return err
	}
	return s.dismissals.Dismiss(ctx, patientID, alertID)
}

// ScheduleEntry is one row of the full upcoming-schedules table. Unlike the
// feed, the schedule lists every event regardless of the near-due window or
// dismissal state.
type ScheduleEntry struct {
	Kind        Kind   `json:"kind"`
	Status      Status `json:"status"`
	Label       string `json:"label"`
	Detail      string `json:"detail,omitempty"`
	Due         string `json:"due"`
	MinutesLate int    `json:"minutes_late,omitempty"`
	MinutesLeft int    `json:"minutes_left,omitempty"`
}

// Schedule returns every classified event for the patient ordered by due
// instant.
func (s *Service) Schedule(ctx context.Context, patientID uuid.UUID, now time.Time) ([]ScheduleEntry, error) {
	snap, err := s.snapshot(ctx, patientID)
	if err != nil {
		return nil, err
	}
	classified := ClassifyAll(Collect(snap, s.opts.CheckCount), now)
	sort.SliceStable(classified, func(i, j int) bool {
		return classified[i].Due.Before(classified[j].Due)
	})

	entries := make([]ScheduleEntry, 0, len(classified))
	for _, c := range classified {
		entries = append(entries, ScheduleEntry{
			Kind:        c.Kind,
			Status:      c.Status,
			Label:       c.Label,
			Detail:      c.Detail,
			Due:         FormatClock(c.Due),
			MinutesLate: c.MinutesLate(),
			MinutesLeft: c.MinutesLeft,
		})
	}
	return entries, nil
}

// SummaryRow is one patient's line in the admin overview.
type SummaryRow struct {
	PatientID       uuid.UUID `json:"patient_id"`
	PatientName     string    `json:"patient_name"`
	MissedDoses     int       `json:"missed_doses"`
	DueNowDoses     int       `json:"due_now_doses"`
	PendingVitals   int       `json:"pending_vitals"`
	EmergencyAlerts int       `json:"emergency_alerts"`
}

// Summary walks every patient and tallies missed doses, pending vital
// checks, and active emergencies. Patients with nothing outstanding are
// still listed so the overview shows the whole ward.
func (s *Service) Summary(ctx context.Context, now time.Time) ([]SummaryRow, error) {
	const pageSize = 200

	var rows []SummaryRow
	for offset := 0; ; offset += pageSize {
		patients, _, err := s.patients.List(ctx, pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("list patients: %w", err)
		}
		if len(patients) == 0 {
			break
		}
		for _, p := range patients {
			row, err := s.summarize(ctx, p, now)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
		if len(patients) < pageSize {
			break
		}
	}
	return rows, nil
}

func (s *Service) summarize(ctx context.Context, p *patient.Patient, now time.Time) (SummaryRow, error) {
	row := SummaryRow{PatientID: p.ID, PatientName: p.Name}

	snap, err := s.snapshot(ctx, p.ID)
	if err != nil {
		return row, err
	}
	for _, c := range ClassifyAll(Collect(snap, s.opts.CheckCount), now) {
		switch {
		case c.Kind == KindMedicationDose && c.Status == StatusMissed:
			row.MissedDoses++
		case c.Kind == KindMedicationDose && c.Status == StatusDueNow:
			row.DueNowDoses++
		}
	}
	for _, o := range snap.Obligations {
		if o.Status == patient.ObligationPending {
			row.PendingVitals++
		}
	}
	if len(snap.Readings) > 0 {
		row.EmergencyAlerts = len(s.opts.Thresholds.Check(snap.Readings[0]))
	}
	return row, nil
}
