package timer

import (
	"log"
	"sync"
	"time"

	"github.com/lowaak/flowlift/internal/go_func_utils"
)

// Loop is the real-time Executor: a goroutine that runs posted functions in
// the order they were posted. Timer callbacks are posted back into the loop,
// so everything the engine does happens on this one goroutine.
type Loop struct {
	logger *log.Logger

	mu      sync.Mutex
	pending []func()
	closed  bool

	wake         chan struct{}
	doneChan     chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

func NewLoop(logger *log.Logger) *Loop {
	if logger == nil {
		panic("Loop: logger cannot be nil")
	}
	l := &Loop{
		logger:   logger,
		wake:     make(chan struct{}, 1),
		doneChan: make(chan struct{}),
	}
	l.wg.Add(1)
	go_func_utils.SafeGo(logger, "timer loop", func() { l.run() })
	return l
}

// Post queues fn to run on the loop. Functions posted after Shutdown are dropped.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.pending = append(l.pending, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Call runs fn on the loop and waits for it to return. It reports false if
// the loop was shut down before fn ran. Never call it from the loop itself.
func (l *Loop) Call(fn func()) bool {
	ran := make(chan struct{})
	l.Post(func() {
		fn()
		close(ran)
	})
	select {
	case <-ran:
		return true
	case <-l.doneChan:
		return false
	}
}

// AfterFunc posts fn to the loop once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(clampDelay(d), func() { l.Post(fn) })
}

// Shutdown stops the loop goroutine. Safe to call multiple times.
func (l *Loop) Shutdown() {
	l.shutdownOnce.Do(func() {
		l.mu.Lock()
		l.closed = true
		l.pending = nil
		l.mu.Unlock()

		close(l.doneChan)
		l.wg.Wait()
		l.logger.Printf("Loop: Shutdown complete")
	})
}

func (l *Loop) run() {
	defer l.wg.Done()

	for {
		select {
		case <-l.doneChan:
			return
		case <-l.wake:
			for {
				fn := l.next()
				if fn == nil {
					break
				}
				fn()
			}
		}
	}
}

// next pops the oldest posted function, or nil when the queue is empty or
// the loop is closing.
func (l *Loop) next() func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || len(l.pending) == 0 {
		return nil
	}
	fn := l.pending[0]
	l.pending[0] = nil
	l.pending = l.pending[1:]
	return fn
}
