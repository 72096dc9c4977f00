// Package loop drives a particle field at a fixed frame rate on its own
// goroutine, with an explicit Start/Stop lifecycle.
package loop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/iburimskiy/portfolio-field/internal/field"
)

var (
	ErrNoSurface = errors.New("loop: no drawing surface")
	ErrRunning   = errors.New("loop: already running")
	ErrStopped   = errors.New("loop: stopped")
)

type State int32

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	default:
		return "stopped"
	}
}

// Event is an input applied to the field between frames.
type Event interface {
	apply(f *field.Field)
}

type PointerMoved struct{ X, Y float64 }

type PointerLeft struct{}

type Resized struct{ W, H int }

func (e PointerMoved) apply(f *field.Field) { f.SetPointer(e.X, e.Y) }
func (PointerLeft) apply(f *field.Field)    { f.ClearPointer() }
func (e Resized) apply(f *field.Field)      { f.Resize(e.W, e.H) }

// PresentFunc is called after every rendered frame, on the loop goroutine.
type PresentFunc func() error

// Loop owns a field once started: all mutation happens on its goroutine.
type Loop struct {
	field    *field.Field
	surface  field.Surface
	interval time.Duration
	present  PresentFunc
	logger   *zap.Logger

	events chan Event
	state  atomic.Int32

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	err    error

	frames atomic.Uint64
}

// New prepares a loop. interval is the frame period; present may be nil.
func New(f *field.Field, s field.Surface, interval time.Duration, present PresentFunc, logger *zap.Logger) *Loop {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = time.Second / 60
	}
	done := make(chan struct{})
	close(done)
	return &Loop{
		field:    f,
		surface:  s,
		interval: interval,
		present:  present,
		logger:   logger,
		events:   make(chan Event, 64),
		done:     done,
	}
}

func (l *Loop) State() State { return State(l.state.Load()) }

// Start schedules frames until Stop is called, ctx is cancelled or present
// fails. A missing surface is reported once here rather than every frame.
func (l *Loop) Start(ctx context.Context) error {
	if l.surface == nil {
		l.logger.Error("animation disabled", zap.Error(ErrNoSurface))
		return ErrNoSurface
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.state.CompareAndSwap(int32(Stopped), int32(Running)) {
		return ErrRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})
	l.err = nil
	l.frames.Store(0)

	go l.run(ctx, l.done)
	return nil
}

// Stop cancels the frame callback and waits for the loop goroutine to exit.
// It is safe to call more than once.
func (l *Loop) Stop() {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	<-done
}

// Done is closed when the current run ends.
func (l *Loop) Done() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}

// Err returns the error that ended the last run, if any.
func (l *Loop) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Frames returns how many frames the current or last run rendered.
func (l *Loop) Frames() uint64 { return l.frames.Load() }

// Send queues an input event for the next frame. Events queued while the
// loop is stopped apply on the next Start; once that queue is full Send
// returns ErrStopped instead of waiting for a loop that is not running.
func (l *Loop) Send(ctx context.Context, ev Event) error {
	select {
	case l.events <- ev:
		return nil
	default:
	}
	select {
	case l.events <- ev:
		return nil
	case <-l.Done():
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loop) run(ctx context.Context, done chan struct{}) {
	ticker := time.NewTicker(l.interval)
	var runErr error
	defer func() {
		ticker.Stop()
		l.mu.Lock()
		l.err = runErr
		if l.cancel != nil {
			l.cancel()
			l.cancel = nil
		}
		l.state.Store(int32(Stopped))
		l.mu.Unlock()
		close(done)
	}()

	w, h := l.field.Size()
	l.logger.Debug("loop started",
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Int("particles", l.field.Len()),
		zap.Duration("interval", l.interval))

	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("loop stopped", zap.Uint64("frames", l.frames.Load()))
			return
		case ev := <-l.events:
			ev.apply(l.field)
			if r, ok := ev.(Resized); ok {
				l.logger.Debug("field resized",
					zap.Int("width", r.W),
					zap.Int("height", r.H),
					zap.Int("particles", l.field.Len()))
			}
		case <-ticker.C:
			l.field.Frame(l.surface)
			frames := l.frames.Add(1)
			if l.present == nil {
				continue
			}
			if err := l.present(); err != nil {
				runErr = fmt.Errorf("present frame %d: %w", frames, err)
				l.logger.Warn("loop aborted", zap.Error(runErr))
				return
			}
		}
	}
}
