package simulation

import (
	"slices"
	"sync"
	"time"
)

// Clock supplies wall-clock time for event timestamps.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Scheduler runs task every interval until the returned cancel is called.
// Implementations must never run two invocations of task at once.
type Scheduler interface {
	Schedule(interval time.Duration, task func()) (cancel func())
}

// TickerScheduler drives task from a time.Ticker on one goroutine. A slow
// task delays the next tick; ticks are dropped, never overlapped. Cancel
// blocks until an in-flight task returns and must not be called from
// within task.
type TickerScheduler struct{}

func (TickerScheduler) Schedule(interval time.Duration, task func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		defer close(finished)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
			}
			// A cancel racing the tick wins.
			select {
			case <-done:
				return
			default:
			}
			task()
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
		<-finished
	}
}

// ManualScheduler never fires on its own; Fire runs the scheduled tasks
// synchronously. Used to single-step a simulation.
type ManualScheduler struct {
	mu    sync.Mutex
	tasks map[int]func()
	next  int
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{tasks: make(map[int]func())}
}

func (m *ManualScheduler) Schedule(_ time.Duration, task func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.next
	m.next++
	m.tasks[id] = task
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.tasks, id)
	}
}

// Fire runs every scheduled task n times, in scheduling order.
func (m *ManualScheduler) Fire(n int) {
	for range n {
		m.mu.Lock()
		ids := make([]int, 0, len(m.tasks))
		for id := range m.tasks {
			ids = append(ids, id)
		}
		m.mu.Unlock()
		slices.Sort(ids)

		for _, id := range ids {
			m.mu.Lock()
			task, ok := m.tasks[id]
			m.mu.Unlock()
			if ok {
				task()
			}
		}
	}
}

// Pending returns the number of scheduled, uncancelled tasks.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}
