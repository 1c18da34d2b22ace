package yamlv3_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/yamltree/event"
	"github.com/reoring/yamltree/source/yamlv3"
)

func drain(t *testing.T, src event.Source) []event.Event {
	t.Helper()
	var out []event.Event
	for {
		ev, err := src.Next()
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
		out = append(out, ev)
	}
}

func TestSource_Events(t *testing.T) {
	evs := drain(t, yamlv3.NewReader(strings.NewReader("a: &x 1\nb: *x\nc: !t [\"q\"]\nd: !!str 2\n")))

	var kinds []event.Kind
	for _, ev := range evs {
		kinds = append(kinds, ev.Kind)
	}
	require.Equal(t, []event.Kind{
		event.KindStreamStart, event.KindDocumentStart, event.KindMappingStart,
		event.KindScalar, event.KindScalar,
		event.KindScalar, event.KindAlias,
		event.KindScalar, event.KindSequenceStart, event.KindScalar, event.KindSequenceEnd,
		event.KindScalar, event.KindScalar,
		event.KindMappingEnd, event.KindDocumentEnd, event.KindStreamEnd,
	}, kinds)

	require.Equal(t, event.Mark{Line: 1, Column: 1}, evs[3].Start)
	require.Equal(t, "x", evs[4].Anchor)
	require.Empty(t, evs[4].Tag, "implicit tags are not reported")
	require.Equal(t, event.Mark{Line: 2, Column: 1}, evs[5].Start)
	require.Equal(t, "x", evs[6].Value)
	require.Equal(t, event.Mark{Line: 2, Column: 4}, evs[6].Start)
	require.Equal(t, "!t", evs[8].Tag)
	require.Equal(t, event.Flow, evs[8].CollectionStyle)
	require.Equal(t, event.StyleDoubleQuoted, evs[9].Style)
	require.Equal(t, "!!str", evs[12].Tag)
	require.True(t, evs[12].IsPlain())
}

func TestSource_EmptyDocument(t *testing.T) {
	evs := drain(t, yamlv3.NewBytes([]byte("")))
	require.Len(t, evs, 2)
	require.Equal(t, event.KindStreamStart, evs[0].Kind)
	require.Equal(t, event.KindStreamEnd, evs[1].Kind)
}

func TestSource_Errors(t *testing.T) {
	_, err := readAll(yamlv3.NewBytes([]byte("a: 1\nb: *nope\n")))
	var ua *event.UnknownAnchorError
	require.ErrorAs(t, err, &ua)
	require.Equal(t, "nope", ua.Anchor)
	require.Equal(t, event.Mark{Line: 2, Column: 4}, ua.Mark)

	_, err = readAll(yamlv3.NewBytes([]byte("a: [1, 2\n")))
	var se *event.SyntaxError
	require.ErrorAs(t, err, &se)
	require.NotEmpty(t, se.Problem)
	require.False(t, strings.HasPrefix(se.Problem, "yaml:"))
}

func readAll(src event.Source) ([]event.Event, error) {
	var out []event.Event
	for {
		ev, err := src.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, ev)
	}
}

func emitAll(t *testing.T, s event.Sink, evs ...event.Event) {
	t.Helper()
	for _, ev := range evs {
		require.NoError(t, s.Emit(ev))
	}
}

var zero event.Mark

func TestSink_Writes(t *testing.T) {
	var buf bytes.Buffer
	s := yamlv3.NewSink(&buf, yamlv3.SinkOptions{Indent: 2})
	emitAll(t, s,
		event.StreamStart(), event.DocumentStart(zero), event.MappingStart(event.Block, zero),
		event.Comment("base value"),
		event.Scalar("base", event.StylePlain, zero), event.Scalar("1", event.StylePlain, zero).WithAnchor("b"),
		event.Scalar("ref", event.StylePlain, zero), event.Alias("b", zero),
		event.Scalar("list", event.StylePlain, zero), event.SequenceStart(event.Block, zero),
		event.Scalar("x", event.StyleSingleQuoted, zero),
		event.Scalar("y", event.StylePlain, zero).WithTag("!t"),
		event.SequenceEnd(zero),
		event.MappingEnd(zero), event.DocumentEnd(zero), event.StreamEnd(),
	)
	require.Equal(t, "# base value\nbase: &b 1\nref: *b\nlist:\n  - 'x'\n  - !t y\n", buf.String())

	require.Error(t, s.Emit(event.StreamStart()), "emit after stream end")
}

func TestSink_CompactSequences(t *testing.T) {
	var buf bytes.Buffer
	s := yamlv3.NewSink(&buf, yamlv3.SinkOptions{Indent: 2, CompactSequences: true})
	emitAll(t, s,
		event.StreamStart(), event.DocumentStart(zero), event.MappingStart(event.Block, zero),
		event.Scalar("list", event.StylePlain, zero), event.SequenceStart(event.Block, zero),
		event.Scalar("x", event.StyleSingleQuoted, zero),
		event.MappingStart(event.Block, zero),
		event.Scalar("a", event.StylePlain, zero), event.Scalar("1", event.StylePlain, zero),
		event.Scalar("b", event.StylePlain, zero), event.Scalar("2", event.StylePlain, zero),
		event.MappingEnd(zero),
		event.SequenceEnd(zero),
		event.MappingEnd(zero), event.DocumentEnd(zero), event.StreamEnd(),
	)
	require.Equal(t, "list:\n- 'x'\n- a: 1\n  b: 2\n", buf.String())
}

func TestSink_Errors(t *testing.T) {
	var buf bytes.Buffer
	s := yamlv3.NewSink(&buf, yamlv3.SinkOptions{})
	emitAll(t, s, event.StreamStart(), event.DocumentStart(zero), event.SequenceStart(event.Flow, zero))
	require.ErrorIs(t, s.Emit(event.MappingEnd(zero)), yamlv3.ErrUnbalanced)
	require.ErrorIs(t, s.Emit(event.DocumentEnd(zero)), yamlv3.ErrUnbalanced)

	emitAll(t, s, event.DocumentStart(zero))
	require.Error(t, s.Emit(event.Alias("missing", zero)))
	emitAll(t, s, event.DocumentEnd(zero), event.StreamEnd())
	require.Empty(t, buf.String(), "empty documents are not written")
}
