package usecase

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/iho/amlguard/internal/domain"
)

// ErrStreamClosed is returned when a transaction is submitted after Close.
var ErrStreamClosed = errors.New("stream is closed")

// Stream fans transactions out to single-goroutine lanes sharded by a hash
// of the sender account. Transactions for one account always land on the
// same lane, preserving the per-account ordering the automaton and graph
// reasoning depend on, while different accounts process in parallel.
//
// One lane reproduces the strictly ordered single-threaded baseline.
type Stream struct {
	pipeline *Pipeline
	sink     AlertSink
	logger   zerolog.Logger

	lanes []chan job
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

type job struct {
	ctx   context.Context
	tx    domain.Transaction
	reply chan result
}

type result struct {
	alert *domain.Alert
	err   error
}

// NewStream starts laneCount worker lanes over the pipeline. sink may be
// nil when alerts are only consumed synchronously by callers.
func NewStream(pipeline *Pipeline, sink AlertSink, laneCount int, logger zerolog.Logger) *Stream {
	if laneCount <= 0 {
		laneCount = 1
	}

	s := &Stream{
		pipeline: pipeline,
		sink:     sink,
		logger:   logger,
		lanes:    make([]chan job, laneCount),
	}

	for i := range s.lanes {
		ch := make(chan job, 64)
		s.lanes[i] = ch
		s.wg.Add(1)
		go s.run(ch)
	}

	return s
}

// Process routes the transaction through its owning lane and waits for the
// decision. The returned alert, if any, has already been handed to the sink.
func (s *Stream) Process(ctx context.Context, tx domain.Transaction) (*domain.Alert, error) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, ErrStreamClosed
	}

	j := job{ctx: ctx, tx: tx, reply: make(chan result, 1)}
	s.lanes[s.lane(tx.FromAccount)] <- j
	s.mu.RUnlock()

	select {
	case res := <-j.reply:
		return res.alert, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close drains the lanes and stops the workers. Further Process calls fail
// with ErrStreamClosed.
func (s *Stream) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for _, ch := range s.lanes {
		close(ch)
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Stream) run(ch chan job) {
	defer s.wg.Done()

	for j := range ch {
		alert, err := s.pipeline.Process(j.ctx, j.tx)
		if alert != nil && s.sink != nil {
			if sinkErr := s.sink.Emit(j.ctx, alert); sinkErr != nil {
				s.logger.Error().Err(sinkErr).Str("alert_id", alert.ID).Msg("alert sink failed")
			}
		}
		j.reply <- result{alert: alert, err: err}
	}
}

func (s *Stream) lane(account string) int {
	h := fnv.New32a()
	h.Write([]byte(account))
	return int(h.Sum32() % uint32(len(s.lanes)))
}
