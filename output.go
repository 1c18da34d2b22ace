package yamltree

import (
	"math"
	"strconv"

	"github.com/reoring/yamltree/event"
)

// StructureKind distinguishes the structures an Encoder can begin.
type StructureKind int

const (
	StructureClass  StructureKind = iota // fixed fields, keys written from element names
	StructureList                        // sequence of elements
	StructureMap                         // alternating key and value elements
	StructureObject                      // singleton without fields
)

func (k StructureKind) String() string {
	switch k {
	case StructureClass:
		return "class"
	case StructureList:
		return "list"
	case StructureMap:
		return "map"
	case StructureObject:
		return "object"
	}
	return "StructureKind(" + strconv.Itoa(int(k)) + ")"
}

// Element describes one field of a class structure.
type Element struct {
	Name string
	// Comments are written as one comment line each before the field.
	Comments []string
}

// Descriptor describes a structure passed to BeginStructure.
type Descriptor struct {
	Kind     StructureKind
	Name     string
	Elements []Element
}

// Encoder is the callback surface a serialization driver uses to write a
// value. Output is the implementation backed by an event.Sink.
type Encoder interface {
	BeginStructure(desc *Descriptor) error
	EncodeElement(desc *Descriptor, index int) error
	EndStructure(desc *Descriptor) error

	EncodeNull() error
	EncodeBool(v bool) error
	EncodeInt(v int64) error
	EncodeUint(v uint64) error
	EncodeFloat(v float64, bitSize int) error
	EncodeChar(r rune) error
	EncodeString(s string) error
	EncodeEnum(name string) error

	// SetPolymorphicTypeName records the concrete type name of the value
	// encoded next.
	SetPolymorphicTypeName(name string)
	ShouldEncodeElementDefault(desc *Descriptor, index int) bool
}

// Output writes encoder callbacks as events to a sink using the writing
// options of a Config. Close must be called once encoding is finished or
// has failed.
type Output struct {
	sink        event.Sink
	cfg         Config
	pendingType string
	closed      bool
}

var _ Encoder = (*Output)(nil)

// NewOutput starts a stream with a single document on sink.
func NewOutput(sink event.Sink, cfg Config) (*Output, error) {
	o := &Output{sink: sink, cfg: cfg}
	if err := o.emit(event.StreamStart()); err != nil {
		return nil, err
	}
	if err := o.emit(event.DocumentStart(event.Mark{})); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Output) emit(ev event.Event) error {
	if err := o.sink.Emit(ev); err != nil {
		if _, ok := AsError(err); ok {
			return err
		}
		e := errEncode("%v", err)
		e.Cause = err
		return e
	}
	return nil
}

func (o *Output) rename(s string) string {
	if o.cfg.NamingStrategy == nil {
		return s
	}
	return o.cfg.NamingStrategy(s)
}

func (o *Output) emitScalar(value string, style event.ScalarStyle, tag string) error {
	ev := event.Scalar(o.rename(value), style, event.Mark{})
	if tag != "" {
		ev = ev.WithTag(tag)
	}
	return o.emit(ev)
}

// takeScalarTag consumes the pending type name for a value that is not a
// map or class. Only the tag style can record it.
func (o *Output) takeScalarTag() (string, error) {
	if o.pendingType == "" {
		return "", nil
	}
	name := o.pendingType
	o.pendingType = ""
	if o.cfg.PolymorphismStyle == PolymorphismProperty {
		return "", errEncode("Value of type '%s' can't be used with property polymorphism: only structures can carry a '%s' property.",
			name, o.cfg.PolymorphismPropertyName)
	}
	return "!" + name, nil
}

func (o *Output) plain(value string) error {
	tag, err := o.takeScalarTag()
	if err != nil {
		return err
	}
	return o.emitScalar(value, event.StylePlain, tag)
}

func (o *Output) quoted(value string, style event.ScalarStyle) error {
	tag, err := o.takeScalarTag()
	if err != nil {
		return err
	}
	return o.emitScalar(value, style, tag)
}

func (o *Output) EncodeNull() error { return o.plain("null") }

func (o *Output) EncodeBool(v bool) error { return o.plain(strconv.FormatBool(v)) }

func (o *Output) EncodeInt(v int64) error { return o.plain(strconv.FormatInt(v, 10)) }

func (o *Output) EncodeUint(v uint64) error { return o.plain(strconv.FormatUint(v, 10)) }

func (o *Output) EncodeFloat(v float64, bitSize int) error {
	return o.plain(FormatFloat(v, bitSize))
}

// FormatFloat renders v in its canonical scalar form, using .inf, -.inf and
// .nan for the special values.
func FormatFloat(v float64, bitSize int) string {
	switch {
	case math.IsInf(v, 1):
		return ".inf"
	case math.IsInf(v, -1):
		return "-.inf"
	case math.IsNaN(v):
		return ".nan"
	}
	return strconv.FormatFloat(v, 'g', -1, bitSize)
}

func (o *Output) EncodeChar(r rune) error { return o.quoted(string(r), o.cfg.quotedStyle()) }

func (o *Output) EncodeString(s string) error { return o.quoted(s, o.cfg.stringStyle(s)) }

func (o *Output) EncodeEnum(name string) error { return o.quoted(name, o.cfg.quotedStyle()) }

func (o *Output) SetPolymorphicTypeName(name string) { o.pendingType = name }

func (o *Output) ShouldEncodeElementDefault(*Descriptor, int) bool { return o.cfg.EncodeDefaults }

func (o *Output) BeginStructure(desc *Descriptor) error {
	switch desc.Kind {
	case StructureList:
		tag, err := o.takeScalarTag()
		if err != nil {
			return err
		}
		ev := event.SequenceStart(sequenceStyles[o.cfg.SequenceStyle], event.Mark{})
		if tag != "" {
			ev = ev.WithTag(tag)
		}
		return o.emit(ev)
	case StructureClass, StructureMap, StructureObject:
		name := o.pendingType
		o.pendingType = ""
		ev := event.MappingStart(event.Block, event.Mark{})
		if name != "" && o.cfg.PolymorphismStyle == PolymorphismTag {
			ev = ev.WithTag("!" + name)
		}
		if err := o.emit(ev); err != nil {
			return err
		}
		if name != "" && o.cfg.PolymorphismStyle == PolymorphismProperty {
			if err := o.emitScalar(o.cfg.PolymorphismPropertyName, event.StylePlain, ""); err != nil {
				return err
			}
			return o.emitScalar(name, o.cfg.quotedStyle(), "")
		}
		return nil
	}
	return errEncode("Unsupported structure kind %s", desc.Kind)
}

// EncodeElement writes the comments and key of a class field. Other
// structures need no per-element events.
func (o *Output) EncodeElement(desc *Descriptor, index int) error {
	if desc.Kind != StructureClass || index < 0 || index >= len(desc.Elements) {
		return nil
	}
	el := desc.Elements[index]
	for _, c := range el.Comments {
		if err := o.emit(event.Comment(c)); err != nil {
			return err
		}
	}
	return o.emitScalar(el.Name, event.StylePlain, "")
}

func (o *Output) EndStructure(desc *Descriptor) error {
	if desc.Kind == StructureList {
		return o.emit(event.SequenceEnd(event.Mark{}))
	}
	return o.emit(event.MappingEnd(event.Mark{}))
}

// EncodeNode writes a node tree. Scalars follow the string style rules so
// that the written text reads back as an equivalent tree.
func (o *Output) EncodeNode(n Node) error { return o.encodeNode(n, "") }

func (o *Output) encodeNode(n Node, tag string) error {
	switch v := n.(type) {
	case *Null:
		return o.emitScalar("null", event.StylePlain, tag)
	case *Scalar:
		return o.emitScalar(v.content, o.cfg.stringStyle(v.content), tag)
	case *List:
		ev := event.SequenceStart(sequenceStyles[o.cfg.SequenceStyle], event.Mark{})
		if tag != "" {
			ev = ev.WithTag(tag)
		}
		if err := o.emit(ev); err != nil {
			return err
		}
		for _, it := range v.items {
			if err := o.encodeNode(it, ""); err != nil {
				return err
			}
		}
		return o.emit(event.SequenceEnd(event.Mark{}))
	case *Map:
		ev := event.MappingStart(event.Block, event.Mark{})
		if tag != "" {
			ev = ev.WithTag(tag)
		}
		if err := o.emit(ev); err != nil {
			return err
		}
		for _, e := range v.entries {
			if err := o.encodeNode(e.Key, ""); err != nil {
				return err
			}
			if err := o.encodeNode(e.Value, ""); err != nil {
				return err
			}
		}
		return o.emit(event.MappingEnd(event.Mark{}))
	case *Tagged:
		return o.encodeNode(v.inner, v.tag)
	}
	return errEncode("Unsupported node %T", n)
}

// Close ends the document and the stream. The stream end is emitted even
// when ending the document fails, so the sink can release its writer.
// Calling Close more than once has no further effect.
func (o *Output) Close() error {
	if o.closed {
		return nil
	}
	o.closed = true
	docErr := o.emit(event.DocumentEnd(event.Mark{}))
	if err := o.emit(event.StreamEnd()); docErr == nil {
		return err
	}
	return docErr
}
