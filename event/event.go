package event

import "fmt"

// Kind represents event kinds produced by a YAML event source.
type Kind int

const (
	KindStreamStart Kind = iota
	KindStreamEnd
	KindDocumentStart
	KindDocumentEnd
	KindScalar
	KindSequenceStart
	KindSequenceEnd
	KindMappingStart
	KindMappingEnd
	KindAlias
	KindComment
)

var kindNames = [...]string{
	KindStreamStart:   "StreamStart",
	KindStreamEnd:     "StreamEnd",
	KindDocumentStart: "DocumentStart",
	KindDocumentEnd:   "DocumentEnd",
	KindScalar:        "Scalar",
	KindSequenceStart: "SequenceStart",
	KindSequenceEnd:   "SequenceEnd",
	KindMappingStart:  "MappingStart",
	KindMappingEnd:    "MappingEnd",
	KindAlias:         "Alias",
	KindComment:       "Comment",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ScalarStyle is the presentation style of a scalar event.
type ScalarStyle int

const (
	StylePlain ScalarStyle = iota
	StyleSingleQuoted
	StyleDoubleQuoted
	StyleLiteral
	StyleFolded
)

func (s ScalarStyle) String() string {
	switch s {
	case StylePlain:
		return "plain"
	case StyleSingleQuoted:
		return "single-quoted"
	case StyleDoubleQuoted:
		return "double-quoted"
	case StyleLiteral:
		return "literal"
	case StyleFolded:
		return "folded"
	}
	return fmt.Sprintf("ScalarStyle(%d)", int(s))
}

// CollectionStyle is the presentation style of a sequence or mapping.
type CollectionStyle int

const (
	Block CollectionStyle = iota
	Flow
)

// Mark is a 1-based position in the input.
type Mark struct {
	Line   int
	Column int
}

func (m Mark) String() string { return fmt.Sprintf("line %d, column %d", m.Line, m.Column) }

// Event is a single parse or emission event.
//
// Value holds the scalar text for KindScalar, the anchor name for KindAlias
// and the comment text (without the leading '#') for KindComment.
// Tag is only set when the tag was given explicitly in the input.
type Event struct {
	Kind            Kind
	Value           string
	Anchor          string
	Tag             string
	Style           ScalarStyle
	CollectionStyle CollectionStyle
	Start           Mark
}

// IsPlain reports whether a scalar event was written without quotes or a
// block indicator.
func (e Event) IsPlain() bool { return e.Style == StylePlain }

func (e Event) String() string {
	switch e.Kind {
	case KindScalar:
		return fmt.Sprintf("%s(%q, %s) at %s", e.Kind, e.Value, e.Style, e.Start)
	case KindAlias:
		return fmt.Sprintf("%s(*%s) at %s", e.Kind, e.Value, e.Start)
	default:
		return fmt.Sprintf("%s at %s", e.Kind, e.Start)
	}
}

// Source yields events in document order. Implementations return io.EOF
// only after KindStreamEnd has been delivered.
type Source interface {
	Next() (Event, error)
}

// Sink receives emission events in document order.
type Sink interface {
	Emit(Event) error
}

// Convenience constructors used by sources and by tests.

func StreamStart() Event { return Event{Kind: KindStreamStart, Start: Mark{1, 1}} }
func StreamEnd() Event   { return Event{Kind: KindStreamEnd, Start: Mark{1, 1}} }

func DocumentStart(m Mark) Event { return Event{Kind: KindDocumentStart, Start: m} }
func DocumentEnd(m Mark) Event   { return Event{Kind: KindDocumentEnd, Start: m} }

func Scalar(value string, style ScalarStyle, m Mark) Event {
	return Event{Kind: KindScalar, Value: value, Style: style, Start: m}
}

func SequenceStart(style CollectionStyle, m Mark) Event {
	return Event{Kind: KindSequenceStart, CollectionStyle: style, Start: m}
}
func SequenceEnd(m Mark) Event { return Event{Kind: KindSequenceEnd, Start: m} }

func MappingStart(style CollectionStyle, m Mark) Event {
	return Event{Kind: KindMappingStart, CollectionStyle: style, Start: m}
}
func MappingEnd(m Mark) Event { return Event{Kind: KindMappingEnd, Start: m} }

func Alias(anchor string, m Mark) Event { return Event{Kind: KindAlias, Value: anchor, Start: m} }

func Comment(text string) Event { return Event{Kind: KindComment, Value: text} }

// WithAnchor returns a copy of e carrying the given anchor.
func (e Event) WithAnchor(anchor string) Event {
	e.Anchor = anchor
	return e
}

// WithTag returns a copy of e carrying the given explicit tag.
func (e Event) WithTag(tag string) Event {
	e.Tag = tag
	return e
}
