package yamlv3

import (
	"errors"
	"fmt"
	"io"
	"strings"

	yaml "go.yaml.in/yaml/v3"

	"github.com/reoring/yamltree/event"
)

// SinkOptions configures the yaml.v3 backed event sink.
type SinkOptions struct {
	// Indent is the number of spaces per nesting level (yaml.v3 accepts 2..9;
	// other values fall back to its default of 4).
	Indent int
	// CompactSequences writes block sequence entries under a map key at the
	// key's column instead of one indent level deeper.
	CompactSequences bool
}

// ErrUnbalanced is returned when a document ends while collections are open.
var ErrUnbalanced = errors.New("yamlv3: unbalanced document")

// Sink assembles emitted events into yaml.Node documents and writes each
// completed document through a yaml.v3 Encoder.
type Sink struct {
	enc      *yaml.Encoder
	doc      *yaml.Node
	stack    []*yaml.Node
	comments []string
	anchors  map[string]*yaml.Node
	closed   bool
	written  bool
}

var _ event.Sink = (*Sink)(nil)

// NewSink returns a Sink writing YAML text to w.
func NewSink(w io.Writer, opts SinkOptions) *Sink {
	enc := yaml.NewEncoder(w)
	if opts.Indent > 0 {
		enc.SetIndent(opts.Indent)
	}
	if opts.CompactSequences {
		enc.CompactSeqIndent()
	}
	return &Sink{enc: enc, anchors: map[string]*yaml.Node{}}
}

func (s *Sink) Emit(ev event.Event) error {
	if s.closed {
		return fmt.Errorf("yamlv3: emit %s after stream end", ev.Kind)
	}
	switch ev.Kind {
	case event.KindStreamStart:
		return nil
	case event.KindDocumentStart:
		s.doc = &yaml.Node{Kind: yaml.DocumentNode}
		s.stack = []*yaml.Node{s.doc}
		return nil
	case event.KindComment:
		s.comments = append(s.comments, ev.Value)
		return nil
	case event.KindScalar:
		n := &yaml.Node{Kind: yaml.ScalarNode, Value: ev.Value, Style: styleFor(ev.Style)}
		return s.add(n, ev)
	case event.KindSequenceStart:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		if ev.CollectionStyle == event.Flow {
			n.Style |= yaml.FlowStyle
		}
		if err := s.add(n, ev); err != nil {
			return err
		}
		s.stack = append(s.stack, n)
		return nil
	case event.KindMappingStart:
		n := &yaml.Node{Kind: yaml.MappingNode}
		if ev.CollectionStyle == event.Flow {
			n.Style |= yaml.FlowStyle
		}
		if err := s.add(n, ev); err != nil {
			return err
		}
		s.stack = append(s.stack, n)
		return nil
	case event.KindSequenceEnd:
		return s.pop(yaml.SequenceNode)
	case event.KindMappingEnd:
		return s.pop(yaml.MappingNode)
	case event.KindAlias:
		target, ok := s.anchors[ev.Value]
		if !ok {
			return fmt.Errorf("yamlv3: alias to unknown anchor %q", ev.Value)
		}
		return s.add(&yaml.Node{Kind: yaml.AliasNode, Value: ev.Value, Alias: target}, ev)
	case event.KindDocumentEnd:
		if s.doc == nil {
			return fmt.Errorf("yamlv3: document end without document start")
		}
		doc := s.doc
		balanced := len(s.stack) == 1
		s.doc, s.stack, s.comments = nil, nil, nil
		if !balanced {
			return ErrUnbalanced
		}
		if len(doc.Content) == 0 {
			return nil
		}
		s.written = true
		return s.enc.Encode(doc)
	case event.KindStreamEnd:
		s.closed = true
		// yaml.v3 cannot close an encoder that never started a stream.
		if !s.written {
			return nil
		}
		return s.enc.Close()
	}
	return fmt.Errorf("yamlv3: unsupported event %s", ev.Kind)
}

func (s *Sink) add(n *yaml.Node, ev event.Event) error {
	if len(s.stack) == 0 {
		return fmt.Errorf("yamlv3: %s outside of a document", ev.Kind)
	}
	if ev.Tag != "" {
		n.Tag = ev.Tag
		n.Style |= yaml.TaggedStyle
	}
	if ev.Anchor != "" {
		n.Anchor = ev.Anchor
		s.anchors[ev.Anchor] = n
	}
	if len(s.comments) > 0 {
		lines := make([]string, len(s.comments))
		for i, c := range s.comments {
			lines[i] = "# " + c
		}
		n.HeadComment = strings.Join(lines, "\n")
		s.comments = nil
	}
	parent := s.stack[len(s.stack)-1]
	parent.Content = append(parent.Content, n)
	return nil
}

func (s *Sink) pop(kind yaml.Kind) error {
	if len(s.stack) < 2 || s.stack[len(s.stack)-1].Kind != kind {
		return ErrUnbalanced
	}
	s.stack = s.stack[:len(s.stack)-1]
	return nil
}

func styleFor(st event.ScalarStyle) yaml.Style {
	switch st {
	case event.StyleSingleQuoted:
		return yaml.SingleQuotedStyle
	case event.StyleDoubleQuoted:
		return yaml.DoubleQuotedStyle
	case event.StyleLiteral:
		return yaml.LiteralStyle
	case event.StyleFolded:
		return yaml.FoldedStyle
	default:
		return 0
	}
}
