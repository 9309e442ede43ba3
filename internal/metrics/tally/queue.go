package tally

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Count is an aggregated number of evaluations for one label on one UTC day.
type Count struct {
	Day   time.Time
	Label string
	N     int
}

// Sink persists aggregated counts.
type Sink interface {
	AddBatch(ctx context.Context, counts []Count) error
}

type event struct {
	label string
	at    time.Time
}

const (
	batchSize  = 100
	flushEvery = 250 * time.Millisecond
	writeTO    = 500 * time.Millisecond
)

type Queue struct {
	sink   Sink
	ch     chan event
	done   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
	stop   sync.Once
	OnDrop func()

	now func() time.Time
}

func New(sink Sink) *Queue {
	return &Queue{sink: sink, now: time.Now}
}

// Start spins up N workers with a buffered channel.
// Suggested: buf=10000, workers=2
func (q *Queue) Start(buf, workers int) {
	q.once.Do(func() {
		q.ch = make(chan event, buf)
		q.done = make(chan struct{})
		for i := 0; i < workers; i++ {
			q.wg.Add(1)
			go q.worker()
		}
	})
}

// Enqueue tries to queue an evaluation label without blocking.
// If the buffer is full, the event is dropped (acceptable for metrics).
func (q *Queue) Enqueue(label string) {
	if q == nil || q.ch == nil || label == "" {
		return
	}
	select {
	case q.ch <- event{label: label, at: q.now().UTC()}:
	default:
		if q.OnDrop != nil {
			q.OnDrop()
		}
	}
}

// Shutdown signals workers to stop, flushes remaining events, and waits.
func (q *Queue) Shutdown() {
	if q == nil || q.done == nil {
		return
	}
	q.stop.Do(func() { close(q.done) })
	q.wg.Wait()
}

func (q *Queue) worker() {
	defer q.wg.Done()
	tk := time.NewTicker(flushEvery)
	defer tk.Stop()

	batch := make([]event, 0, batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := q.write(batch); err != nil {
			// best-effort; counts are metrics
			zap.L().Warn("tally flush failed", zap.Int("events", len(batch)), zap.Error(err))
		}
		batch = batch[:0]
	}

	for {
		select {
		case <-q.done:
			// drain quickly then flush
			for {
				select {
				case ev := <-q.ch:
					batch = append(batch, ev)
					if len(batch) >= batchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		case ev := <-q.ch:
			batch = append(batch, ev)
			if len(batch) >= batchSize {
				flush()
			}
		case <-tk.C:
			flush()
		}
	}
}

func (q *Queue) write(batch []event) error {
	counts := aggregate(batch)
	ctx, cancel := context.WithTimeout(context.Background(), writeTO)
	defer cancel()
	return q.sink.AddBatch(ctx, counts)
}

// aggregate folds events into one Count per (day, label), in first-seen order.
func aggregate(batch []event) []Count {
	type key struct {
		day   time.Time
		label string
	}
	idx := make(map[key]int, 4)
	out := make([]Count, 0, 4)
	for _, ev := range batch {
		y, m, d := ev.at.Date()
		k := key{day: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), label: ev.label}
		if i, ok := idx[k]; ok {
			out[i].N++
			continue
		}
		idx[k] = len(out)
		out = append(out, Count{Day: k.day, Label: k.label, N: 1})
	}
	return out
}
