// Package gojson provides a JSON event source backed by goccy/go-json.
// JSON documents are a subset of YAML, so the produced events can be read
// by the yamltree node reader unchanged: strings become double-quoted
// scalars, numbers, booleans and null become plain scalars, and objects and
// arrays become flow mappings and sequences.
package gojson

import (
	"bytes"
	"errors"
	"io"
	"sort"
	"strconv"

	j "github.com/goccy/go-json"

	"github.com/reoring/yamltree/event"
)

type source struct {
	data     []byte
	dec      *j.Decoder
	newlines []int
	queue    []event.Event
	depth    int
	prevEnd  int
	started  bool
	finished bool
	inDoc    bool
	err      error
}

// NewReader wraps an io.Reader into an event.Source for JSON. The input is
// buffered so that token offsets can be mapped to lines and columns.
func NewReader(r io.Reader) event.Source {
	b, err := io.ReadAll(r)
	if err != nil {
		return &source{err: err}
	}
	return NewBytes(b)
}

// NewBytes wraps a byte slice into an event.Source for JSON.
func NewBytes(b []byte) event.Source {
	dec := j.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	s := &source{data: b, dec: dec}
	for i, c := range b {
		if c == '\n' {
			s.newlines = append(s.newlines, i)
		}
	}
	return s
}

func (s *source) Next() (event.Event, error) {
	if s.err != nil {
		return event.Event{}, s.err
	}
	if len(s.queue) > 0 {
		ev := s.queue[0]
		s.queue = s.queue[1:]
		return ev, nil
	}
	if !s.started {
		s.started = true
		return event.StreamStart(), nil
	}
	if s.finished {
		return event.Event{}, io.EOF
	}
	start := s.tokenStart()
	tok, err := s.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			s.finished = true
			return event.StreamEnd(), nil
		}
		s.err = &event.SyntaxError{Problem: err.Error(), ProblemMark: s.mark(start)}
		return event.Event{}, s.err
	}
	s.prevEnd = int(s.dec.InputOffset())
	m := s.mark(start)
	if !s.inDoc {
		s.inDoc = true
		s.queue = append(s.queue, event.DocumentStart(m))
	}
	s.queue = append(s.queue, s.translate(tok, m))
	if s.depth == 0 {
		s.inDoc = false
		s.queue = append(s.queue, event.DocumentEnd(m))
	}
	return s.Next()
}

func (s *source) translate(tok j.Token, m event.Mark) event.Event {
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.depth++
			return event.MappingStart(event.Flow, m)
		case '}':
			s.depth--
			return event.MappingEnd(m)
		case '[':
			s.depth++
			return event.SequenceStart(event.Flow, m)
		case ']':
			s.depth--
			return event.SequenceEnd(m)
		}
	case string:
		return event.Scalar(v, event.StyleDoubleQuoted, m)
	case j.Number:
		return event.Scalar(string(v), event.StylePlain, m)
	case float64:
		return event.Scalar(strconv.FormatFloat(v, 'g', -1, 64), event.StylePlain, m)
	case bool:
		return event.Scalar(strconv.FormatBool(v), event.StylePlain, m)
	}
	return event.Scalar("null", event.StylePlain, m)
}

// tokenStart skips separators after the previous token so the next token's
// mark points at its first byte.
func (s *source) tokenStart() int {
	i := s.prevEnd
	for i < len(s.data) {
		switch s.data[i] {
		case ' ', '\t', '\r', '\n', ',', ':':
			i++
			continue
		}
		break
	}
	return i
}

func (s *source) mark(off int) event.Mark {
	line := sort.Search(len(s.newlines), func(i int) bool { return s.newlines[i] >= off })
	col := off + 1
	if line > 0 {
		col = off - s.newlines[line-1]
	}
	return event.Mark{Line: line + 1, Column: col}
}
