package engine

import (
	"fmt"

	"github.com/reoring/yamltree/event"
)

// Enforcement wrapper for event.Source to apply nesting depth limits in a
// streaming fashion, before the reader recurses into a collection.

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	// MaxDepth is the maximum number of open collections; 0 disables the check.
	MaxDepth int
	// MaxEvents bounds the total number of content events; 0 disables the check.
	MaxEvents int
}

// Enabled reports whether any limit is set.
func (o EnforceOptions) Enabled() bool { return o.MaxDepth > 0 || o.MaxEvents > 0 }

// WrapWithEnforcement returns a Source that fails with an *event.SyntaxError
// once a limit is exceeded. The wrapped source is returned unchanged when no
// limit is set.
func WrapWithEnforcement(inner event.Source, opt EnforceOptions) event.Source {
	if !opt.Enabled() {
		return inner
	}
	return &enforcingSource{inner: inner, opt: opt}
}

type enforcingSource struct {
	inner  event.Source
	opt    EnforceOptions
	depth  int
	events int
	err    error
}

func (e *enforcingSource) Next() (event.Event, error) {
	if e.err != nil {
		return event.Event{}, e.err
	}
	ev, err := e.inner.Next()
	if err != nil {
		return ev, err
	}
	switch ev.Kind {
	case event.KindSequenceStart, event.KindMappingStart:
		e.depth++
		if e.opt.MaxDepth > 0 && e.depth > e.opt.MaxDepth {
			return e.fail(fmt.Sprintf("maximum nesting depth of %d exceeded", e.opt.MaxDepth), ev.Start)
		}
	case event.KindSequenceEnd, event.KindMappingEnd:
		if e.depth > 0 {
			e.depth--
		}
	}
	switch ev.Kind {
	case event.KindScalar, event.KindAlias, event.KindSequenceStart, event.KindMappingStart:
		e.events++
		if e.opt.MaxEvents > 0 && e.events > e.opt.MaxEvents {
			return e.fail(fmt.Sprintf("maximum number of %d values exceeded", e.opt.MaxEvents), ev.Start)
		}
	}
	return ev, nil
}

func (e *enforcingSource) fail(problem string, m event.Mark) (event.Event, error) {
	e.err = &event.SyntaxError{Problem: problem, ProblemMark: m}
	return event.Event{}, e.err
}
