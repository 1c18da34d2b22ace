package yamltree

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/reoring/yamltree/event"
)

// Parser gives the node reader one-event lookahead over an event.Source and
// translates source failures into *Error values located at the caller's path.
// Comment events are skipped.
type Parser struct {
	src    event.Source
	peeked *event.Event
}

// NewParser consumes the stream and document start events. A stream that
// ends without a document fails with empty_document.
func NewParser(src event.Source) (*Parser, error) {
	p := &Parser{src: src}
	root := RootPath()
	if _, err := p.ConsumeOfType(event.KindStreamStart, root); err != nil {
		return nil, err
	}
	next, err := p.Peek(root)
	if err != nil {
		return nil, err
	}
	if next.Kind == event.KindStreamEnd {
		return nil, errEmptyDocument()
	}
	if _, err := p.ConsumeOfType(event.KindDocumentStart, root); err != nil {
		return nil, err
	}
	return p, nil
}

// Peek returns the next event without consuming it.
func (p *Parser) Peek(path Path) (event.Event, error) {
	if p.peeked != nil {
		return *p.peeked, nil
	}
	for {
		ev, err := p.src.Next()
		if err != nil {
			return event.Event{}, translateSourceError(err, path)
		}
		if ev.Kind == event.KindComment {
			continue
		}
		p.peeked = &ev
		return ev, nil
	}
}

// Consume returns the next event and advances past it.
func (p *Parser) Consume(path Path) (event.Event, error) {
	ev, err := p.Peek(path)
	if err != nil {
		return event.Event{}, err
	}
	p.peeked = nil
	return ev, nil
}

// ConsumeOfType consumes the next event and fails with malformed_yaml when
// it is not of the expected kind.
func (p *Parser) ConsumeOfType(kind event.Kind, path Path) (event.Event, error) {
	ev, err := p.Consume(path)
	if err != nil {
		return event.Event{}, err
	}
	if ev.Kind != kind {
		return event.Event{}, errMalformed(path.WithError(locationOf(ev.Start)),
			fmt.Sprintf("Unexpected %s, expected %s", ev.Kind, kind))
	}
	return ev, nil
}

// EnsureEndOfStream consumes the document end and stream end events. Any
// further document is rejected; only one document per stream is supported.
func (p *Parser) EnsureEndOfStream() error {
	root := RootPath()
	if _, err := p.ConsumeOfType(event.KindDocumentEnd, root); err != nil {
		return err
	}
	ev, err := p.Consume(root)
	if err != nil {
		return err
	}
	switch ev.Kind {
	case event.KindStreamEnd:
		return nil
	case event.KindDocumentStart:
		return errMalformed(root.WithError(locationOf(ev.Start)),
			"Unexpected document start: only one document per stream is supported")
	}
	return errMalformed(root.WithError(locationOf(ev.Start)),
		fmt.Sprintf("Unexpected %s, expected %s", ev.Kind, event.KindStreamEnd))
}

func locationOf(m event.Mark) Location {
	loc := Location{Line: m.Line, Column: m.Column}
	if loc.Line < 1 {
		loc.Line = 1
	}
	if loc.Column < 1 {
		loc.Column = 1
	}
	return loc
}

const indentationHint = " (is the indentation level of this line or a line nearby incorrect?)"

// Low-level messages that are usually caused by misplaced indentation.
var indentationProblems = []string{
	"mapping values are not allowed here",
	"mapping values are not allowed in this context",
	"did not find expected key",
	"did not find expected '-' indicator",
	"block sequence entries are not allowed in this context",
	"expected <block end>, but found '<block mapping start>'",
	"expected <block end>, but found '<block sequence start>'",
	"expected <block end>, but found '-'",
}

func problemWithHint(problem string) (string, string) {
	for _, p := range indentationProblems {
		if strings.HasPrefix(problem, p) {
			return problem + indentationHint, strings.TrimSpace(indentationHint)
		}
	}
	return problem, ""
}

func translateSourceError(err error, path Path) error {
	if errors.Is(err, io.EOF) {
		return errMalformed(path, "Unexpected end of input")
	}
	var se *event.SyntaxError
	if errors.As(err, &se) {
		problem, hint := problemWithHint(se.Problem)
		msg := capitalize(problem)
		if se.HasContext {
			var b strings.Builder
			fmt.Fprintf(&b, "%s at %s:\n", capitalize(se.Context), locationOf(se.ContextMark))
			if se.ContextSnippet != "" {
				b.WriteString(se.ContextSnippet)
				b.WriteString("\n")
			}
			b.WriteString(msg)
			msg = b.String()
		}
		e := errMalformed(path.WithError(locationOf(se.ProblemMark)), msg)
		e.Hint = hint
		e.Cause = err
		return e
	}
	var ue *event.UnknownAnchorError
	if errors.As(err, &ue) {
		e := errUnknownAnchor(path.WithError(locationOf(ue.Mark)), ue.Anchor)
		e.Cause = err
		return e
	}
	if ye, ok := AsError(err); ok {
		return ye
	}
	e := errMalformed(path, err.Error())
	e.Cause = err
	return e
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
