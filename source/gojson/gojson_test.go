package gojson_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/yamltree/event"
	"github.com/reoring/yamltree/source/gojson"
)

func collect(src event.Source) ([]event.Event, error) {
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

func TestSource_Events(t *testing.T) {
	evs, err := collect(gojson.NewBytes([]byte(`{"name": "x", "ids": [1, 2.5, true, null]}`)))
	require.NoError(t, err)

	type got struct {
		Kind  event.Kind
		Value string
		Style event.ScalarStyle
	}
	var flat []got
	for _, ev := range evs {
		flat = append(flat, got{ev.Kind, ev.Value, ev.Style})
	}
	require.Equal(t, []got{
		{event.KindStreamStart, "", event.StylePlain},
		{event.KindDocumentStart, "", event.StylePlain},
		{event.KindMappingStart, "", event.StylePlain},
		{event.KindScalar, "name", event.StyleDoubleQuoted},
		{event.KindScalar, "x", event.StyleDoubleQuoted},
		{event.KindScalar, "ids", event.StyleDoubleQuoted},
		{event.KindSequenceStart, "", event.StylePlain},
		{event.KindScalar, "1", event.StylePlain},
		{event.KindScalar, "2.5", event.StylePlain},
		{event.KindScalar, "true", event.StylePlain},
		{event.KindScalar, "null", event.StylePlain},
		{event.KindSequenceEnd, "", event.StylePlain},
		{event.KindMappingEnd, "", event.StylePlain},
		{event.KindDocumentEnd, "", event.StylePlain},
		{event.KindStreamEnd, "", event.StylePlain},
	}, flat)
	require.Equal(t, event.Flow, evs[2].CollectionStyle)
	require.Equal(t, event.Mark{Line: 1, Column: 1}, evs[2].Start)
}

func TestSource_SyntaxError(t *testing.T) {
	_, err := collect(gojson.NewBytes([]byte(`{"a": }`)))
	var se *event.SyntaxError
	require.ErrorAs(t, err, &se)
}

func TestDriver(t *testing.T) {
	d := gojson.Driver()
	require.Equal(t, "go-json", d.Name())
	evs, err := collect(d.NewBytes([]byte(`"solo"`)))
	require.NoError(t, err)
	require.Len(t, evs, 5)
	require.Equal(t, "solo", evs[2].Value)
}
