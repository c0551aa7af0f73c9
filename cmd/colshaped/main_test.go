package main

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	coresys "github.com/l1jgo/colshape/internal/core/system"
	"github.com/l1jgo/colshape/internal/persist"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	mu   sync.Mutex
	rows int
}

func (s *countingStore) InsertBatch(_ context.Context, rows []persist.TransitionRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows += len(rows)
	return nil
}

func (s *countingStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows
}

// journalingSystem records one transition per tick.
type journalingSystem struct {
	journal *persist.Journal
	ticks   atomic.Int64
}

func (s *journalingSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *journalingSystem) Update(_ time.Duration) {
	s.journal.OnEnter("zone")
	s.ticks.Add(1)
}

func TestStopInOrderKeepsLastTicks(t *testing.T) {
	for i := 0; i < 20; i++ {
		store := &countingStore{}
		journal := persist.NewJournal(store, 1<<16, time.Hour, nil)
		sys := &journalingSystem{journal: journal}

		runner := coresys.NewRunner()
		runner.Register(sys)
		poller := coresys.NewPoller(runner, time.Millisecond, nil)

		ctx, cancel := context.WithCancel(context.Background())
		journalCtx, cancelJournal := context.WithCancel(context.Background())

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			journal.Run(journalCtx)
		}()
		poller.Start(ctx)

		require.Eventually(t, func() bool { return sys.ticks.Load() >= 3 }, time.Second, time.Millisecond)

		cancel()
		stopInOrder(poller, cancelJournal, &wg)

		require.EqualValues(t, sys.ticks.Load(), store.count())
		require.Zero(t, journal.Dropped())
	}
}
