// ABOUTME: Rotation state machine over queue, bounded history, and current article
// ABOUTME: Auto-advances on a timer; manual navigation restarts the countdown

package rotate

import (
	"context"
	"sync"
	"time"

	"github.com/harper/newsticker/internal/models"
)

const (
	// DefaultInterval is the auto-advance cadence.
	DefaultInterval = 15 * time.Second

	// DefaultHistoryCap bounds the backward-navigation history.
	DefaultHistoryCap = 50
)

// Options tunes a Ticker. Zero values select the defaults.
type Options struct {
	Interval   time.Duration
	HistoryCap int
	SeenCap    int
	Clock      Clock
}

// Ticker owns the ordered pool of distinct articles and the one-at-a-time
// rotation over it. All state is guarded by a single mutex: reads snapshot the
// current article, mutations emit at most one change notification each.
//
// Navigation is one-directional once advanced: Retreat walks backward through
// history without touching the queue, and a following Advance pulls the next
// queue item rather than returning along history. Items skipped that way stay
// skipped; this mirrors the behavior the desktop app shipped with and is kept
// for compatibility even though it can skip a previously viewed article.
type Ticker struct {
	mu      sync.Mutex
	queue   []models.Article
	history []models.Article
	current *models.Article
	// histPos is the index of current within history after a Retreat, or -1
	// when current came straight off the queue.
	histPos    int
	paused     bool
	historyCap int
	seen       *SeenLinks

	interval time.Duration
	clock    Clock
	updates  chan struct{}
	restart  chan struct{}
}

// New creates a stopped Ticker; call Run to start auto-advance.
func New(opts Options) *Ticker {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.HistoryCap <= 0 {
		opts.HistoryCap = DefaultHistoryCap
	}
	if opts.Clock == nil {
		opts.Clock = RealClock()
	}
	return &Ticker{
		histPos:    -1,
		historyCap: opts.HistoryCap,
		seen:       NewSeenLinks(opts.SeenCap),
		interval:   opts.Interval,
		clock:      opts.Clock,
		updates:    make(chan struct{}, 1),
		restart:    make(chan struct{}, 1),
	}
}

// Updates returns the change-notification channel. It carries no payload;
// receivers re-read Current. Notifications coalesce when the receiver lags.
func (t *Ticker) Updates() <-chan struct{} {
	return t.updates
}

// Current snapshots the article on display. ok is false before the first
// advance.
func (t *Ticker) Current() (article models.Article, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return models.Article{}, false
	}
	return *t.current, true
}

// Advance moves to the next queued article and restarts the auto-advance
// countdown. With an empty queue it is a no-op: current is unchanged and no
// notification is emitted.
func (t *Ticker) Advance() {
	t.mu.Lock()
	if t.advanceLocked() {
		t.notifyLocked()
	}
	t.mu.Unlock()
	t.restartCountdown()
}

// Retreat moves one step backward through history, never consuming from the
// queue, and restarts the auto-advance countdown. Without a prior entry it is
// a no-op.
func (t *Ticker) Retreat() {
	t.mu.Lock()
	changed := false
	switch {
	case t.current == nil || len(t.history) == 0:
		// nothing to go back to
	case t.histPos == -1:
		t.histPos = len(t.history) - 1
		changed = true
	case t.histPos > 0:
		t.histPos--
		changed = true
	}
	if changed {
		article := t.history[t.histPos]
		t.current = &article
		t.notifyLocked()
	}
	t.mu.Unlock()
	t.restartCountdown()
}

// Pause suspends auto-advance. Manual navigation still works.
func (t *Ticker) Pause() {
	t.mu.Lock()
	t.paused = true
	t.mu.Unlock()
}

// Resume re-enables auto-advance. The next automatic step is a full interval
// away, not the remainder of the pre-pause countdown.
func (t *Ticker) Resume() {
	t.mu.Lock()
	t.paused = false
	t.mu.Unlock()
	t.restartCountdown()
}

// Paused reports whether auto-advance is suspended.
func (t *Ticker) Paused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.paused
}

// Merge appends articles not already seen (by link) to the back of the queue
// in the given order, and advances once if nothing is on display yet. Returns
// the number of articles queued. Late results from a superseded refresh merge
// the same way; they never reset rotation state.
func (t *Ticker) Merge(articles []models.Article) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	queued := 0
	for _, article := range articles {
		if t.seen.Has(article.Link) {
			continue
		}
		t.seen.Add(article.Link)
		t.queue = append(t.queue, article)
		queued++
	}

	if t.current == nil && len(t.queue) > 0 {
		if t.advanceLocked() {
			t.notifyLocked()
		}
	}

	return queued
}

// QueueLen returns the number of articles waiting to rotate in.
func (t *Ticker) QueueLen() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.queue)
}

// HistoryLen returns the number of articles available for backward navigation.
func (t *Ticker) HistoryLen() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.history)
}

// SeenLen returns the size of the seen-link set, for diagnostics.
func (t *Ticker) SeenLen() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seen.Len()
}

// Run drives auto-advance until ctx is cancelled. Manual navigation and
// Resume restart the countdown so the next automatic step is always a full
// interval after the last user action.
func (t *Ticker) Run(ctx context.Context) {
	timer := t.clock.NewTimer(t.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C():
			t.mu.Lock()
			if !t.paused {
				if t.advanceLocked() {
					t.notifyLocked()
				}
			}
			t.mu.Unlock()
			timer.Reset(t.interval)
		case <-t.restart:
			if !timer.Stop() {
				select {
				case <-timer.C():
				default:
				}
			}
			timer.Reset(t.interval)
		}
	}
}

// advanceLocked dequeues into current, pushing the prior current onto history
// first. Reports whether current changed. Caller holds t.mu.
func (t *Ticker) advanceLocked() bool {
	if len(t.queue) == 0 {
		return false
	}

	if t.current != nil {
		t.history = append(t.history, *t.current)
		if len(t.history) > t.historyCap {
			t.history = t.history[1:]
		}
	}
	t.histPos = -1

	next := t.queue[0]
	t.queue = t.queue[1:]
	t.current = &next
	return true
}

// notifyLocked emits a coalescing change notification. Caller holds t.mu.
func (t *Ticker) notifyLocked() {
	select {
	case t.updates <- struct{}{}:
	default:
	}
}

// restartCountdown asks the Run loop to start a fresh full interval.
func (t *Ticker) restartCountdown() {
	select {
	case t.restart <- struct{}{}:
	default:
	}
}
