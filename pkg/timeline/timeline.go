// Package timeline holds the immutable, month-ordered event store and the
// event classifier.
package timeline

// Frame is one month of events.
type Frame struct {
	Month  string  `json:"month" yaml:"month"`
	Events []Event `json:"events" yaml:"events"`
}

// Count returns the number of events in the frame.
func (f Frame) Count() int {
	return len(f.Events)
}

// MonthCount is the per-month tally that drives the mini-chart.
type MonthCount struct {
	Month string `json:"month" yaml:"month"`
	Count int    `json:"count" yaml:"count"`
}

// Timeline is the ordered sequence of frames. It is never mutated after New,
// so it can be shared freely. Callers must not modify returned event slices.
type Timeline struct {
	frames []Frame
	total  int
}

// New copies the frames, fills in missing event lists and classifies every
// event exactly once.
func New(frames []Frame) *Timeline {
	t := &Timeline{frames: make([]Frame, len(frames))}
	for i, f := range frames {
		events := make([]Event, len(f.Events))
		for j, e := range f.Events {
			e.Category = Classify(e.Name)
			e.Month = f.Month
			events[j] = e
		}
		t.frames[i] = Frame{Month: f.Month, Events: events}
		t.total += len(events)
	}
	return t
}

// Len returns the number of frames.
func (t *Timeline) Len() int {
	if t == nil {
		return 0
	}
	return len(t.frames)
}

// Empty reports whether the timeline has no frames.
func (t *Timeline) Empty() bool {
	return t.Len() == 0
}

// Frame returns the frame at index i.
func (t *Timeline) Frame(i int) (Frame, bool) {
	if i < 0 || i >= t.Len() {
		return Frame{}, false
	}
	return t.frames[i], true
}

// Frames returns a copy of the frame sequence.
func (t *Timeline) Frames() []Frame {
	out := make([]Frame, t.Len())
	copy(out, t.frames)
	return out
}

// Counts returns the event count of every month in order.
func (t *Timeline) Counts() []MonthCount {
	counts := make([]MonthCount, t.Len())
	for i, f := range t.frames {
		counts[i] = MonthCount{Month: f.Month, Count: f.Count()}
	}
	return counts
}

// FirstNonEmpty returns the index of the first frame with at least one
// event, or 0 when there is none.
func (t *Timeline) FirstNonEmpty() int {
	for i, f := range t.frames {
		if f.Count() > 0 {
			return i
		}
	}
	return 0
}

// Range returns the first and last month keys.
func (t *Timeline) Range() (start, end string) {
	if t.Empty() {
		return "", ""
	}
	return t.frames[0].Month, t.frames[len(t.frames)-1].Month
}

// TotalEvents returns the number of events across all frames.
func (t *Timeline) TotalEvents() int {
	if t == nil {
		return 0
	}
	return t.total
}

// IndexOf returns the index of the frame with the given month key.
func (t *Timeline) IndexOf(month string) (int, bool) {
	for i, f := range t.frames {
		if f.Month == month {
			return i, true
		}
	}
	return 0, false
}

// CategoryCounts tallies events per category over the whole timeline.
func (t *Timeline) CategoryCounts() map[Category]int {
	counts := make(map[Category]int, len(categoryColors))
	for _, f := range t.frames {
		for _, e := range f.Events {
			counts[e.Category]++
		}
	}
	return counts
}
