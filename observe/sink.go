package observe

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/dshills/dispatchkit/dispatch"
)

// Noop is a metrics sink that discards every recording.
type Noop[E any] struct{}

// Record implements dispatch.MetricsSink.
func (Noop[E]) Record(E, dispatch.Outcome) {}

// Multi fans each recording out to several sinks in order.
type Multi[E any] []dispatch.MetricsSink[E]

// Record implements dispatch.MetricsSink.
func (m Multi[E]) Record(evt E, o dispatch.Outcome) {
	for _, sink := range m {
		if sink != nil {
			sink.Record(evt, o)
		}
	}
}

// LogSink writes each outcome to a logger at debug level. A nil logger
// disables it.
type LogSink[E any] struct {
	logger *slog.Logger
}

// NewLog creates a logging metrics sink.
func NewLog[E any](logger *slog.Logger) *LogSink[E] {
	return &LogSink[E]{logger: logger}
}

// Record implements dispatch.MetricsSink.
func (s *LogSink[E]) Record(_ E, o dispatch.Outcome) {
	if s.logger == nil {
		return
	}
	s.logger.Debug("dispatch",
		slog.String("result", o.Result.String()),
		slog.Bool("rejected", o.Rejected),
		slog.Int("targets", o.Targets),
		slog.Duration("elapsed", o.Elapsed),
		slog.Any("error", o.Err),
	)
}

// Buffered decouples a sink from the dispatch path: Record enqueues without
// blocking and a single drainer goroutine feeds the inner sink. When the
// buffer is full the recording is dropped and counted rather than ever
// stalling a dispatch.
type Buffered[E any] struct {
	inner   dispatch.MetricsSink[E]
	queue   chan buffered[E]
	dropped atomic.Uint64
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

type buffered[E any] struct {
	evt E
	o   dispatch.Outcome
}

// NewBuffered wraps inner with a buffer of the given size (a non-positive
// size gets a small default) and starts the drainer.
func NewBuffered[E any](inner dispatch.MetricsSink[E], size int) *Buffered[E] {
	if size <= 0 {
		size = 256
	}
	b := &Buffered[E]{
		inner: inner,
		queue: make(chan buffered[E], size),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go b.drain()
	return b
}

// Record implements dispatch.MetricsSink. It never blocks: a full buffer or
// a closed sink drops the recording and counts it.
func (b *Buffered[E]) Record(evt E, o dispatch.Outcome) {
	select {
	case <-b.stop:
		b.dropped.Add(1)
		return
	default:
	}
	select {
	case b.queue <- buffered[E]{evt: evt, o: o}:
	default:
		b.dropped.Add(1)
	}
}

// Dropped reports how many recordings were discarded.
func (b *Buffered[E]) Dropped() uint64 {
	return b.dropped.Load()
}

// Close stops accepting recordings and blocks until the buffer has drained
// into the inner sink. Close is idempotent.
func (b *Buffered[E]) Close() {
	b.once.Do(func() {
		close(b.stop)
		<-b.done
	})
}

func (b *Buffered[E]) drain() {
	defer close(b.done)
	for {
		select {
		case rec := <-b.queue:
			b.inner.Record(rec.evt, rec.o)
		case <-b.stop:
			for {
				select {
				case rec := <-b.queue:
					b.inner.Record(rec.evt, rec.o)
				default:
					return
				}
			}
		}
	}
}
