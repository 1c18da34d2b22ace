package event

import "io"

// SliceSource replays a fixed list of events. It is mostly useful for
// feeding hand-built streams to the reader.
type SliceSource struct {
	events []Event
	pos    int
	// Err, when set, is returned once the events are exhausted instead of io.EOF.
	Err error
}

// FromSlice returns a Source replaying events in order.
func FromSlice(events ...Event) *SliceSource {
	return &SliceSource{events: append([]Event(nil), events...)}
}

func (s *SliceSource) Next() (Event, error) {
	if s.pos >= len(s.events) {
		if s.Err != nil {
			return Event{}, s.Err
		}
		return Event{}, io.EOF
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, nil
}

// Recorder is a Sink that keeps every event it receives.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Emit(ev Event) error {
	r.Events = append(r.Events, ev)
	return nil
}

// Kinds returns the kinds of the recorded events in order.
func (r *Recorder) Kinds() []Kind {
	out := make([]Kind, len(r.Events))
	for i, ev := range r.Events {
		out[i] = ev.Kind
	}
	return out
}
