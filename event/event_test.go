package event_test

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/yamltree/event"
)

func TestKind_String(t *testing.T) {
	if got := event.KindMappingStart.String(); got != "MappingStart" {
		t.Fatalf("got %q", got)
	}
	if got := event.Kind(99).String(); got != "Kind(99)" {
		t.Fatalf("got %q", got)
	}
	if got := event.StyleFolded.String(); got != "folded" {
		t.Fatalf("got %q", got)
	}
}

func TestEvent_String(t *testing.T) {
	m := event.Mark{Line: 2, Column: 5}
	tests := []struct {
		ev   event.Event
		want string
	}{
		{event.Scalar("x y", event.StyleSingleQuoted, m), `Scalar("x y", single-quoted) at line 2, column 5`},
		{event.Alias("base", m), "Alias(*base) at line 2, column 5"},
		{event.MappingEnd(m), "MappingEnd at line 2, column 5"},
	}
	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Fatalf("got %q, want %q", got, tt.want)
		}
	}
}

func TestEvent_WithAnchorAndTagCopy(t *testing.T) {
	base := event.SequenceStart(event.Flow, event.Mark{Line: 1, Column: 1})
	ev := base.WithAnchor("a").WithTag("!t")
	if base.Anchor != "" || base.Tag != "" {
		t.Fatalf("original modified: %+v", base)
	}
	if ev.Anchor != "a" || ev.Tag != "!t" || ev.CollectionStyle != event.Flow {
		t.Fatalf("got %+v", ev)
	}
}

func TestSliceSource(t *testing.T) {
	src := event.FromSlice(event.StreamStart(), event.StreamEnd())
	var got []event.Kind
	for {
		ev, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, ev.Kind)
	}
	if diff := cmp.Diff([]event.Kind{event.KindStreamStart, event.KindStreamEnd}, got); diff != "" {
		t.Fatalf("kinds (-want +got):\n%s", diff)
	}

	boom := errors.New("boom")
	src = event.FromSlice(event.StreamStart())
	src.Err = boom
	if _, err := src.Next(); err != nil {
		t.Fatal(err)
	}
	if _, err := src.Next(); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestRecorder(t *testing.T) {
	var r event.Recorder
	for _, ev := range []event.Event{event.StreamStart(), event.Comment("c"), event.StreamEnd()} {
		if err := r.Emit(ev); err != nil {
			t.Fatal(err)
		}
	}
	want := []event.Kind{event.KindStreamStart, event.KindComment, event.KindStreamEnd}
	if diff := cmp.Diff(want, r.Kinds()); diff != "" {
		t.Fatalf("kinds (-want +got):\n%s", diff)
	}
}

func TestErrors(t *testing.T) {
	e := &event.SyntaxError{Problem: "bad", ProblemMark: event.Mark{Line: 3, Column: 1}}
	if got := e.Error(); got != "bad at line 3, column 1" {
		t.Fatalf("got %q", got)
	}
	e.HasContext, e.Context, e.ContextMark = true, "while parsing", event.Mark{Line: 1, Column: 1}
	if got := e.Error(); got != "while parsing at line 1, column 1: bad at line 3, column 1" {
		t.Fatalf("got %q", got)
	}
	ua := &event.UnknownAnchorError{Anchor: "x", Mark: event.Mark{Line: 1, Column: 4}}
	if got := ua.Error(); got != "unknown anchor 'x' referenced at line 1, column 4" {
		t.Fatalf("got %q", got)
	}
}
