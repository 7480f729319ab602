package alerts

import (
	"context"

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

// pgStore persists dismissals in the alert_dismissal table so
// acknowledgements survive restarts.
type pgStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) DismissalStore {
	return &pgStore{pool: pool}
}

func (s *pgStore) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return s.pool
}

func (s *pgStore) Dismiss(ctx context.Context, patientID uuid.UUID, alertID string) error {
	_, err := s.conn(ctx).Exec(ctx, `
		INSERT INTO alert_dismissal (alert_id, patient_id, dismissed_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (alert_id) DO NOTHING`,
		alertID, patientID,
	)
	return err
}

func (s *pgStore) DismissedSet(ctx context.Context, patientID uuid.UUID) (map[string]bool, error) {
	rows, err := s.conn(ctx).Query(ctx, `SELECT alert_id FROM alert_dismissal WHERE patient_id = $1`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		set[id] = true
	}
	return set, rows.Err()
}
