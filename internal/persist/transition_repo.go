package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransitionRow is one enter or leave event in the journal.
type TransitionRow struct {
	RunID      uuid.UUID
	ShapeID    string
	Direction  string // "enter" or "leave"
	OccurredAt time.Time
}

type TransitionRepo struct {
	db *DB
}

func NewTransitionRepo(db *DB) *TransitionRepo {
	return &TransitionRepo{db: db}
}

// InsertBatch writes rows with a single COPY.
func (r *TransitionRepo) InsertBatch(ctx context.Context, rows []TransitionRow) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := r.db.Pool.CopyFrom(ctx,
		pgx.Identifier{"colshape_transitions"},
		[]string{"run_id", "shape_id", "direction", "occurred_at"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			row := rows[i]
			return []any{[16]byte(row.RunID), row.ShapeID, row.Direction, row.OccurredAt}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy transitions: %w", err)
	}
	return nil
}

