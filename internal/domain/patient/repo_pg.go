package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careboard/careboard/internal/platform/db"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// -- Patient Repository --

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const patientCols = `id, name, age, gender, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient (id, name, age, gender, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		p.ID, p.Name, p.Age, p.Gender, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET name=$2, age=$3, gender=$4, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.Age, p.Gender,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patient ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		var p Patient
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		patients = append(patients, &p)
	}
	return patients, total, rows.Err()
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// -- Medication Repository --

type medRepoPG struct {
	pool *pgxpool.Pool
}

func NewMedicationRepo(pool *pgxpool.Pool) MedicationRepository {
	return &medRepoPG{pool: pool}
}

func (r *medRepoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

// inTx keeps the medication row and its medication_time children moving
// together. Joins an ambient transaction when one is in flight.
func (r *medRepoPG) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if db.TxFromContext(ctx) != nil {
		return fn(ctx)
	}
	return db.RunInTx(ctx, r.pool, fn)
}

const medCols = `id, patient_id, name, dose, last_taken, created_at, updated_at`

func (r *medRepoPG) Create(ctx context.Context, m *Medication) error {
	return r.inTx(ctx, func(ctx context.Context) error {
		_, err := r.conn(ctx).Exec(ctx, `
			INSERT INTO medication (id, patient_id, name, dose, last_taken, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			m.ID, m.PatientID, m.Name, m.Dose, m.LastTaken, m.CreatedAt, m.UpdatedAt,
		)
		if err != nil {
			return err
		}
		return r.replaceTimes(ctx, m)
	})
}

func (r *medRepoPG) replaceTimes(ctx context.Context, m *Medication) error {
	if _, err := r.conn(ctx).Exec(ctx, `DELETE FROM medication_time WHERE medication_id = $1`, m.ID); err != nil {
		return err
	}
	for i, ts := range m.Times {
		if _, err := r.conn(ctx).Exec(ctx, `
			INSERT INTO medication_time (medication_id, position, scheduled_at)
			VALUES ($1,$2,$3)`, m.ID, i, ts); err != nil {
			return err
		}
	}
	return nil
}

func (r *medRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Medication, error) {
	m, err := scanMedication(r.conn(ctx).QueryRow(ctx, `SELECT `+medCols+` FROM medication WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMedicationNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadTimes(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *medRepoPG) loadTimes(ctx context.Context, m *Medication) error {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT scheduled_at FROM medication_time
		WHERE medication_id = $1 ORDER BY position`, m.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var ts string
		if err := rows.Scan(&ts); err != nil {
			return err
		}
		m.Times = append(m.Times, ts)
	}
	return rows.Err()
}

func (r *medRepoPG) Update(ctx context.Context, m *Medication) error {
	return r.inTx(ctx, func(ctx context.Context) error {
		_, err := r.conn(ctx).Exec(ctx, `
			UPDATE medication SET name=$2, dose=$3, last_taken=$4, updated_at=NOW()
			WHERE id = $1`,
			m.ID, m.Name, m.Dose, m.LastTaken,
		)
		if err != nil {
			return err
		}
		return r.replaceTimes(ctx, m)
	})
}

func (r *medRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	return r.inTx(ctx, func(ctx context.Context) error {
		if _, err := r.conn(ctx).Exec(ctx, `DELETE FROM medication_time WHERE medication_id = $1`, id); err != nil {
			return err
		}
		_, err := r.conn(ctx).Exec(ctx, `DELETE FROM medication WHERE id = $1`, id)
		return err
	})
}

func (r *medRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Medication, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+medCols+` FROM medication WHERE patient_id = $1 ORDER BY created_at`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meds []*Medication
	for rows.Next() {
		var m Medication
		if err := rows.Scan(&m.ID, &m.PatientID, &m.Name, &m.Dose, &m.LastTaken, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		meds = append(meds, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, m := range meds {
		if err := r.loadTimes(ctx, m); err != nil {
			return nil, err
		}
	}
	return meds, nil
}

func scanMedication(row pgx.Row) (*Medication, error) {
	var m Medication
	err := row.Scan(&m.ID, &m.PatientID, &m.Name, &m.Dose, &m.LastTaken, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// -- VitalReading Repository --

type readingRepoPG struct {
	pool *pgxpool.Pool
}

func NewVitalReadingRepo(pool *pgxpool.Pool) VitalReadingRepository {
	return &readingRepoPG{pool: pool}
}

func (r *readingRepoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *readingRepoPG) Create(ctx context.Context, v *VitalReading) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO vital_reading (id, patient_id, heart_rate, bp_systolic, bp_diastolic, temperature, recorded_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		v.ID, v.PatientID, v.HeartRate, v.BPSystolic, v.BPDiastolic, v.Temperature, v.RecordedAt,
	)
	return err
}

func (r *readingRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit int) ([]*VitalReading, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, patient_id, heart_rate, bp_systolic, bp_diastolic, temperature, recorded_at
		FROM vital_reading WHERE patient_id = $1 ORDER BY recorded_at DESC LIMIT $2`, patientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []*VitalReading
	for rows.Next() {
		var v VitalReading
		if err := rows.Scan(&v.ID, &v.PatientID, &v.HeartRate, &v.BPSystolic, &v.BPDiastolic, &v.Temperature, &v.RecordedAt); err != nil {
			return nil, err
		}
		readings = append(readings, &v)
	}
	return readings, rows.Err()
}

// -- VitalObligation Repository --

type obligationRepoPG struct {
	pool *pgxpool.Pool
}

func NewVitalObligationRepo(pool *pgxpool.Pool) VitalObligationRepository {
	return &obligationRepoPG{pool: pool}
}

func (r *obligationRepoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *obligationRepoPG) Upsert(ctx context.Context, o *VitalObligation) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO vital_obligation (id, patient_id, name, status, value, time, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (patient_id, name) DO UPDATE SET
			status = EXCLUDED.status,
			value = EXCLUDED.value,
			time = EXCLUDED.time,
			updated_at = EXCLUDED.updated_at`,
		o.ID, o.PatientID, o.Name, o.Status, o.Value, o.Time, o.CreatedAt, o.UpdatedAt,
	)
	return err
}

func (r *obligationRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*VitalObligation, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, patient_id, name, status, value, time, created_at, updated_at
		FROM vital_obligation WHERE patient_id = $1 ORDER BY name`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var obs []*VitalObligation
	for rows.Next() {
		var o VitalObligation
		if err := rows.Scan(&o.ID, &o.PatientID, &o.Name, &o.Status, &o.Value, &o.Time, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		obs = append(obs, &o)
	}
	return obs, rows.Err()
}
