package persist

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	directionEnter = "enter"
	directionLeave = "leave"

	maxBatch = 256
)

// TransitionStore persists journal batches.
type TransitionStore interface {
	InsertBatch(ctx context.Context, rows []TransitionRow) error
}

// Journal records enter/leave transitions asynchronously. OnEnter/OnLeave
// only enqueue, so the polling goroutine never waits on the database; when
// the queue is full the transition is dropped and counted.
type Journal struct {
	runID         uuid.UUID
	store         TransitionStore
	queue         chan TransitionRow
	flushInterval time.Duration
	log           *zap.Logger
	dropped       atomic.Int64
	now           func() time.Time
}

func NewJournal(store TransitionStore, queueSize int, flushInterval time.Duration, log *zap.Logger) *Journal {
	if queueSize <= 0 {
		queueSize = 1024
	}
	if flushInterval <= 0 {
		flushInterval = time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Journal{
		runID:         uuid.New(),
		store:         store,
		queue:         make(chan TransitionRow, queueSize),
		flushInterval: flushInterval,
		log:           log,
		now:           time.Now,
	}
}

// RunID identifies this process's rows in the journal.
func (j *Journal) RunID() uuid.UUID { return j.runID }

// Dropped returns the number of transitions lost to a full queue.
func (j *Journal) Dropped() int64 { return j.dropped.Load() }

func (j *Journal) OnEnter(id string) { j.record(id, directionEnter) }
func (j *Journal) OnLeave(id string) { j.record(id, directionLeave) }

func (j *Journal) record(id, direction string) {
	row := TransitionRow{RunID: j.runID, ShapeID: id, Direction: direction, OccurredAt: j.now()}
	select {
	case j.queue <- row:
	default:
		j.dropped.Add(1)
		j.log.Warn("journal queue full, transition dropped",
			zap.String("shape", id),
			zap.String("direction", direction),
		)
	}
}

// Run drains the queue into the store until ctx is cancelled, flushing
// every flush interval or whenever a batch fills up. Rows still queued at
// cancellation get one last flush.
func (j *Journal) Run(ctx context.Context) {
	ticker := time.NewTicker(j.flushInterval)
	defer ticker.Stop()

	batch := make([]TransitionRow, 0, maxBatch)
	for {
		select {
		case row := <-j.queue:
			batch = append(batch, row)
			if len(batch) >= maxBatch {
				batch = j.flush(ctx, batch)
			}
		case <-ticker.C:
			batch = j.flush(ctx, batch)
		case <-ctx.Done():
			j.drain(batch)
			return
		}
	}
}

func (j *Journal) drain(batch []TransitionRow) {
	for {
		select {
		case row := <-j.queue:
			batch = append(batch, row)
		default:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			j.flush(ctx, batch)
			return
		}
	}
}

func (j *Journal) flush(ctx context.Context, batch []TransitionRow) []TransitionRow {
	if len(batch) == 0 {
		return batch
	}
	if err := j.store.InsertBatch(ctx, batch); err != nil {
		j.log.Error("journal flush failed", zap.Int("rows", len(batch)), zap.Error(err))
	}
	return batch[:0]
}
