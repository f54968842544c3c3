package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandeepkv93/taskflow/internal/clock"
	"github.com/sandeepkv93/taskflow/internal/model"
)

// DefaultInterval is the period between reminder scans.
const DefaultInterval = 60 * time.Second

var ErrEngineStopped = errors.New("scheduler: engine stopped")

// Scanner reconciles reminders against the latest committed state and marks
// the due ones as triggered, returning what fired.
type Scanner interface {
	ScanReminders(ctx context.Context, now time.Time) ([]Due, error)
}

// Sink receives every fired reminder. Implementations must not block for long.
type Sink interface {
	Notify(task model.Task, reminder model.Reminder, firedAt time.Time)
}

type Event struct {
	Task     model.Task
	Reminder model.Reminder
	FiredAt  time.Time
}

type EngineConfig struct {
	Interval time.Duration
	Buffer   int
	Clock    clock.Clock
	Sink     Sink
	OnError  func(error)
}

type Engine struct {
	scanner Scanner
	cfg     EngineConfig

	mu        sync.Mutex
	scanMu    sync.Mutex
	out       chan Event
	stopCh    chan struct{}
	doneCh    chan struct{}
	started   bool
	stopped   bool
	outClosed bool
	dropped   uint64
	scans     uint64
}

func NewEngine(scanner Scanner, cfg EngineConfig) *Engine {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = 1
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.RealClock{}
	}
	return &Engine{
		scanner: scanner,
		cfg:     cfg,
		out:     make(chan Event, cfg.Buffer),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// C delivers fired reminders. It is closed once the engine stops.
func (e *Engine) C() <-chan Event {
	return e.out
}

// Start scans once immediately, then every interval until ctx is done or Stop
// is called.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started || e.stopped {
		return
	}
	e.started = true
	go e.loop(ctx)
}

// Stop cancels the timer and waits for an in-flight scan to finish. No scan
// runs after Stop returns.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	started := e.started
	e.mu.Unlock()
	if started {
		<-e.doneCh
	} else {
		e.closeOut()
	}
	// wait out a manual scan still in flight
	e.scanMu.Lock()
	e.scanMu.Unlock()
}

// RunOnce performs one scan now and returns how many reminders fired.
func (e *Engine) RunOnce(ctx context.Context) (int, error) {
	e.scanMu.Lock()
	defer e.scanMu.Unlock()

	e.mu.Lock()
	stopped := e.stopped
	e.mu.Unlock()
	if stopped {
		return 0, ErrEngineStopped
	}

	now := e.cfg.Clock.Now()
	due, err := e.scanner.ScanReminders(ctx, now)
	atomic.AddUint64(&e.scans, 1)
	if err != nil {
		return 0, err
	}
	for _, d := range due {
		if e.cfg.Sink != nil {
			e.cfg.Sink.Notify(d.Task, d.Reminder, now)
		}
		e.emit(Event{Task: d.Task, Reminder: d.Reminder, FiredAt: now})
	}
	return len(due), nil
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

// Scans counts completed scan attempts, successful or not.
func (e *Engine) Scans() uint64 {
	return atomic.LoadUint64(&e.scans)
}

func (e *Engine) loop(ctx context.Context) {
	defer close(e.doneCh)
	defer e.closeOut()

	e.tick(ctx)

	ticker := time.NewTicker(e.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			select {
			case <-e.stopCh:
				return
			default:
			}
			e.tick(ctx)
		case <-e.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (e *Engine) tick(ctx context.Context) {
	if _, err := e.RunOnce(ctx); err != nil && !errors.Is(err, ErrEngineStopped) && e.cfg.OnError != nil {
		e.cfg.OnError(err)
	}
}

func (e *Engine) emit(ev Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.outClosed {
		atomic.AddUint64(&e.dropped, 1)
		return
	}
	select {
	case e.out <- ev:
	default:
		atomic.AddUint64(&e.dropped, 1)
	}
}

func (e *Engine) closeOut() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.outClosed {
		e.outClosed = true
		close(e.out)
	}
}
