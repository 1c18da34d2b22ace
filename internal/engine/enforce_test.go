package engine

import (
	"errors"
	"io"
	"testing"

	"github.com/reoring/yamltree/event"
)

func m(line int) event.Mark { return event.Mark{Line: line, Column: 1} }

func nested(depth int) *event.SliceSource {
	evs := []event.Event{event.StreamStart(), event.DocumentStart(m(1))}
	for i := 0; i < depth; i++ {
		evs = append(evs, event.SequenceStart(event.Block, m(i+1)))
	}
	evs = append(evs, event.Scalar("x", event.StylePlain, m(depth+1)))
	for i := 0; i < depth; i++ {
		evs = append(evs, event.SequenceEnd(m(depth+1)))
	}
	evs = append(evs, event.DocumentEnd(m(depth+1)), event.StreamEnd())
	return event.FromSlice(evs...)
}

func drain(src event.Source) error {
	for {
		if _, err := src.Next(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func TestEnforce_Disabled_ReturnsInner(t *testing.T) {
	src := nested(3)
	if got := WrapWithEnforcement(src, EnforceOptions{}); got != event.Source(src) {
		t.Fatalf("expected the inner source back when no limit is set")
	}
}

func TestEnforce_MaxDepth(t *testing.T) {
	if err := drain(WrapWithEnforcement(nested(3), EnforceOptions{MaxDepth: 3})); err != nil {
		t.Fatalf("depth 3 should pass: %v", err)
	}
	err := drain(WrapWithEnforcement(nested(4), EnforceOptions{MaxDepth: 3}))
	var se *event.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
	if se.ProblemMark.Line != 4 {
		t.Fatalf("expected failure at the 4th collection, got %v", se.ProblemMark)
	}
}

func TestEnforce_MaxEvents(t *testing.T) {
	err := drain(WrapWithEnforcement(nested(2), EnforceOptions{MaxEvents: 2}))
	if err == nil {
		t.Fatalf("expected value limit error")
	}
	if err := drain(WrapWithEnforcement(nested(2), EnforceOptions{MaxEvents: 3})); err != nil {
		t.Fatalf("3 values should pass: %v", err)
	}
}

func TestEnforce_StickyError(t *testing.T) {
	src := WrapWithEnforcement(nested(2), EnforceOptions{MaxDepth: 1})
	var first error
	for i := 0; i < 10 && first == nil; i++ {
		_, first = src.Next()
	}
	if _, again := src.Next(); again != first {
		t.Fatalf("expected the same error on subsequent calls")
	}
}
