// Package scroll decides when a chat view is far enough from its newest
// line to offer a jump-to-bottom affordance, and notifies subscribers when
// that changes.
package scroll

import "sync"

// ThresholdPixels is how close to the bottom, in pixels of a graphical
// chat view, still counts as "at bottom".
const ThresholdPixels = 30

// LinePixels is the assumed pixel height of one terminal line.
const LinePixels = 16

// DefaultThreshold is ThresholdPixels in terminal lines, rounded up. All
// thresholds passed to AtBottom and NewTracker are counted in lines.
const DefaultThreshold = (ThresholdPixels + LinePixels - 1) / LinePixels

// Position describes a scrollable view in lines.
type Position struct {
	ContentHeight int // total lines of content
	Offset        int // index of the first visible line
	ViewHeight    int // visible lines
}

// AtBottom reports whether p is within threshold lines of the end.
func AtBottom(p Position, threshold int) bool {
	return p.ContentHeight-p.Offset <= p.ViewHeight+threshold
}

// Tracker watches positions and publishes the affordance visibility.
type Tracker struct {
	mu        sync.Mutex
	threshold int
	visible   bool
	nextID    int
	subs      map[int]func(visible bool)
	closed    bool
}

// NewTracker creates a Tracker; threshold <= 0 selects DefaultThreshold.
func NewTracker(threshold int) *Tracker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Tracker{
		threshold: threshold,
		subs:      make(map[int]func(bool)),
	}
}

// Subscription is a handle returned by Subscribe.
type Subscription struct {
	t  *Tracker
	id int
}

// Unsubscribe stops notifications. Calling it more than once is harmless.
func (s Subscription) Unsubscribe() {
	if s.t == nil {
		return
	}
	s.t.mu.Lock()
	delete(s.t.subs, s.id)
	s.t.mu.Unlock()
}

// Subscribe registers fn for visibility changes. fn runs synchronously
// inside Update. Subscribing to a closed tracker returns an inert handle.
func (t *Tracker) Subscribe(fn func(visible bool)) Subscription {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return Subscription{}
	}
	t.nextID++
	t.subs[t.nextID] = fn
	return Subscription{t: t, id: t.nextID}
}

// Update records a new position and notifies subscribers if visibility
// flipped. It returns the current visibility.
func (t *Tracker) Update(p Position) bool {
	t.mu.Lock()
	if t.closed {
		visible := t.visible
		t.mu.Unlock()
		return visible
	}

	visible := !AtBottom(p, t.threshold)
	changed := visible != t.visible
	t.visible = visible

	var fns []func(bool)
	if changed {
		fns = make([]func(bool), 0, len(t.subs))
		for _, fn := range t.subs {
			fns = append(fns, fn)
		}
	}
	t.mu.Unlock()

	for _, fn := range fns {
		fn(visible)
	}
	return visible
}

// Visible returns the last published visibility.
func (t *Tracker) Visible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visible
}

// Subscribers returns the number of live subscriptions.
func (t *Tracker) Subscribers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs)
}

// Close drops every subscription; the tracker ignores later updates.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.subs = make(map[int]func(bool))
}
