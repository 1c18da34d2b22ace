// Package yamlv3 adapts yaml.v3 to the event vocabulary used by yamltree:
// documents are parsed into yaml.Node trees and flattened into events, and
// emitted events are assembled back into yaml.Node trees for the encoder.
// Reading uses gopkg.in/yaml.v3. Writing uses go.yaml.in/yaml/v3, its
// maintained continuation, for compact sequence indentation.
package yamlv3

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reoring/yamltree/event"
)

type sourceState int

const (
	stateInit sourceState = iota
	stateStreaming
	stateDone
)

type source struct {
	data  []byte
	dec   *yaml.Decoder
	queue []event.Event
	state sourceState
	err   error
}

// NewReader wraps an io.Reader into an event.Source. The input is buffered
// in full so that error positions can be recovered from the raw text.
func NewReader(r io.Reader) event.Source {
	b, err := io.ReadAll(r)
	if err != nil {
		return &source{err: err}
	}
	return NewBytes(b)
}

// NewBytes wraps a byte slice into an event.Source.
func NewBytes(b []byte) event.Source {
	return &source{data: b, dec: yaml.NewDecoder(bytes.NewReader(b))}
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
	switch s.state {
	case stateInit:
		s.state = stateStreaming
		return event.StreamStart(), nil
	case stateStreaming:
		var doc yaml.Node
		if err := s.dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				s.state = stateDone
				return event.StreamEnd(), nil
			}
			s.err = s.translate(err)
			return event.Event{}, s.err
		}
		s.flatten(&doc)
		return s.Next()
	default:
		return event.Event{}, io.EOF
	}
}

func (s *source) push(ev event.Event) { s.queue = append(s.queue, ev) }

func markOf(n *yaml.Node) event.Mark {
	m := event.Mark{Line: n.Line, Column: n.Column}
	if m.Line < 1 {
		m.Line = 1
	}
	if m.Column < 1 {
		m.Column = 1
	}
	return m
}

func (s *source) flatten(n *yaml.Node) {
	m := markOf(n)
	switch n.Kind {
	case yaml.DocumentNode:
		s.push(event.DocumentStart(m))
		if len(n.Content) == 0 {
			s.push(event.Scalar("", event.StylePlain, m))
		}
		for _, c := range n.Content {
			s.flatten(c)
		}
		s.push(event.DocumentEnd(m))
	case yaml.ScalarNode:
		s.push(decorate(event.Scalar(n.Value, scalarStyleOf(n.Style), m), n))
	case yaml.SequenceNode:
		s.push(decorate(event.SequenceStart(collectionStyleOf(n.Style), m), n))
		for _, c := range n.Content {
			s.flatten(c)
		}
		s.push(event.SequenceEnd(endMark(n)))
	case yaml.MappingNode:
		s.push(decorate(event.MappingStart(collectionStyleOf(n.Style), m), n))
		for _, c := range n.Content {
			s.flatten(c)
		}
		s.push(event.MappingEnd(endMark(n)))
	case yaml.AliasNode:
		s.push(event.Alias(n.Value, m))
	}
}

// decorate copies the anchor and any explicit tag of n onto ev. Tags that
// yaml.v3 resolved implicitly are not reported.
func decorate(ev event.Event, n *yaml.Node) event.Event {
	ev.Anchor = n.Anchor
	if n.Style&yaml.TaggedStyle != 0 {
		ev.Tag = n.Tag
	}
	return ev
}

func endMark(n *yaml.Node) event.Mark {
	if len(n.Content) == 0 {
		return markOf(n)
	}
	return markOf(n.Content[len(n.Content)-1])
}

func scalarStyleOf(st yaml.Style) event.ScalarStyle {
	switch {
	case st&yaml.DoubleQuotedStyle != 0:
		return event.StyleDoubleQuoted
	case st&yaml.SingleQuotedStyle != 0:
		return event.StyleSingleQuoted
	case st&yaml.LiteralStyle != 0:
		return event.StyleLiteral
	case st&yaml.FoldedStyle != 0:
		return event.StyleFolded
	default:
		return event.StylePlain
	}
}

func collectionStyleOf(st yaml.Style) event.CollectionStyle {
	if st&yaml.FlowStyle != 0 {
		return event.Flow
	}
	return event.Block
}

// yaml.v3 reports parse failures as "yaml: line N: problem" without column
// information or the parser's context description.
var (
	lineErrRe    = regexp.MustCompile(`^yaml: (?:line (\d+): )?(.*)$`)
	unknownAlias = regexp.MustCompile(`^yaml: unknown anchor '(.*)' referenced$`)
)

func (s *source) translate(err error) error {
	msg := err.Error()
	if m := unknownAlias.FindStringSubmatch(msg); m != nil {
		return &event.UnknownAnchorError{Anchor: m[1], Mark: s.findAlias(m[1])}
	}
	m := lineErrRe.FindStringSubmatch(msg)
	if m == nil {
		return &event.SyntaxError{Problem: msg, ProblemMark: event.Mark{Line: 1, Column: 1}}
	}
	line := 1
	if m[1] != "" {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil && n > 0 {
			line = n
		}
	}
	return &event.SyntaxError{Problem: m[2], ProblemMark: event.Mark{Line: line, Column: s.firstColumn(line)}}
}

// findAlias locates the first "*name" reference in the raw input.
func (s *source) findAlias(name string) event.Mark {
	needle := "*" + name
	for i, line := range strings.Split(string(s.data), "\n") {
		from := 0
		for {
			idx := strings.Index(line[from:], needle)
			if idx < 0 {
				break
			}
			end := from + idx + len(needle)
			if end == len(line) || strings.ContainsRune(" \t\r,]}#", rune(line[end])) {
				return event.Mark{Line: i + 1, Column: from + idx + 1}
			}
			from = end
		}
	}
	return event.Mark{Line: 1, Column: 1}
}

// firstColumn returns the column of the first non-blank character on line.
func (s *source) firstColumn(line int) int {
	lines := strings.Split(string(s.data), "\n")
	if line < 1 || line > len(lines) {
		return 1
	}
	text := lines[line-1]
	trimmed := strings.TrimLeft(text, " \t")
	if trimmed == "" {
		return 1
	}
	return len(text) - len(trimmed) + 1
}
