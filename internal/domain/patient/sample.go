package patient

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

var sampleNames = []string{
	"Ravi Sharma", "Anita Desai", "John Mathew", "Priya Nair", "Arun Kumar",
	"Meera Joshi", "David Thomas", "Lakshmi Menon", "Suresh Patel", "Kavita Rao",
}

var sampleMeds = []struct {
	name string
	dose string
}{
	{"Paracetamol", "500mg"},
	{"Amoxicillin", "250mg"},
	{"Metformin", "850mg"},
	{"Atorvastatin", "10mg"},
	{"Lisinopril", "5mg"},
}

var sampleVitals = []string{"Heart Rate", "Blood Pressure", "Temperature"}

// Seed populates the registry with n demo patients, each carrying
// medications scheduled around now, a short vitals history, and pending
// check obligations. Dose times span the recent past through the next
// three days so every alert state shows up on a fresh install.
func Seed(ctx context.Context, svc *Service, n int, now time.Time) error {
	rng := rand.New(rand.NewSource(now.UnixNano()))
	for i := 0; i < n; i++ {
		p := &Patient{
			ID:   uuid.New(),
			Name: sampleNames[i%len(sampleNames)],
			Age:  20 + rng.Intn(60),
		}
		if err := svc.Create(ctx, p); err != nil {
			return fmt.Errorf("seed patient %d: %w", i, err)
		}

		medCount := 1 + rng.Intn(3)
		for j := 0; j < medCount; j++ {
			sm := sampleMeds[rng.Intn(len(sampleMeds))]
			m := &Medication{
				PatientID: p.ID,
				Name:      sm.name,
				Dose:      sm.dose,
				Times:     sampleDoseTimes(rng, now),
			}
			if err := svc.AddMedication(ctx, m); err != nil {
				return fmt.Errorf("seed medication for %s: %w", p.Name, err)
			}
		}

		for k := 0; k < 3+rng.Intn(4); k++ {
			r := &VitalReading{
				PatientID:   p.ID,
				HeartRate:   60 + rng.Intn(55),
				BPSystolic:  100 + rng.Intn(50),
				BPDiastolic: 60 + rng.Intn(35),
				Temperature: 36.0 + rng.Float64()*2.5,
				RecordedAt:  now.Add(-time.Duration(rng.Intn(72)) * time.Hour),
			}
			if err := svc.RecordReading(ctx, r); err != nil {
				return fmt.Errorf("seed reading for %s: %w", p.Name, err)
			}
		}

		for _, name := range sampleVitals {
			status := ObligationTaken
			if rng.Intn(2) == 0 {
				status = ObligationPending
			}
			o := &VitalObligation{PatientID: p.ID, Name: name, Status: status}
			if status == ObligationTaken {
				t := now.Add(-time.Duration(rng.Intn(24)) * time.Hour)
				o.Time = &t
			}
			if err := svc.UpsertObligation(ctx, o); err != nil {
				return fmt.Errorf("seed obligation for %s: %w", p.Name, err)
			}
		}
	}
	return nil
}

func sampleDoseTimes(rng *rand.Rand, now time.Time) []string {
	count := 2 + rng.Intn(3)
	times := make([]string, 0, count)
	for i := 0; i < count; i++ {
		offset := time.Duration(rng.Intn(96)-24) * time.Hour
		times = append(times, now.Add(offset).Format("2006-01-02 15:04"))
	}
	return times
}
