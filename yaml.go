package yamltree

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/reoring/yamltree/event"
	"github.com/reoring/yamltree/internal/engine"
	"github.com/reoring/yamltree/source/yamlv3"
)

// Yaml reads and writes documents with a fixed Config. It holds no per-call
// state and is safe for concurrent use.
type Yaml struct {
	cfg    Config
	logger log.Logger
	driver Driver
}

// Option customizes a Yaml instance.
type Option func(*Yaml)

// WithLogger sets the logger used for debug output.
func WithLogger(l log.Logger) Option {
	return func(y *Yaml) {
		if l != nil {
			y.logger = l
		}
	}
}

// WithDriver sets the driver used to turn input into events, overriding the
// global driver.
func WithDriver(d Driver) Option { return func(y *Yaml) { y.driver = d } }

// New validates cfg and returns a Yaml using it.
func New(cfg Config, opts ...Option) (*Yaml, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	y := &Yaml{cfg: cfg, logger: log.NewNopLogger()}
	for _, o := range opts {
		o(y)
	}
	return y, nil
}

var defaultYaml = &Yaml{cfg: DefaultConfig(), logger: log.NewNopLogger()}

// Default returns a Yaml using DefaultConfig.
func Default() *Yaml { return defaultYaml }

// Config returns a copy of the configuration.
func (y *Yaml) Config() Config { return y.cfg }

func (y *Yaml) getDriver() Driver {
	if y.driver != nil {
		return y.driver
	}
	return CurrentDriver()
}

// ParseToNode reads a single document from text.
func (y *Yaml) ParseToNode(text string) (Node, error) {
	return y.ReadNode(y.getDriver().NewReader(strings.NewReader(text)))
}

// ParseBytesToNode reads a single document from b.
func (y *Yaml) ParseBytesToNode(b []byte) (Node, error) {
	return y.ReadNode(y.getDriver().NewBytes(b))
}

// ParseReaderToNode reads a single document from r.
func (y *Yaml) ParseReaderToNode(r io.Reader) (Node, error) {
	return y.ReadNode(y.getDriver().NewReader(r))
}

// ReadNode reads exactly one document from src and verifies that the
// stream ends after it.
func (y *Yaml) ReadNode(src event.Source) (Node, error) {
	src = engine.WrapWithEnforcement(src, engine.EnforceOptions{MaxDepth: y.cfg.MaxDepth, MaxEvents: y.cfg.MaxValues})
	p, err := NewParser(src)
	if err != nil {
		return nil, err
	}
	n, err := NewNodeReader(p, y.cfg, y.logger).Read()
	if err != nil {
		return nil, err
	}
	if err := p.EnsureEndOfStream(); err != nil {
		return nil, err
	}
	level.Debug(y.logger).Log("msg", "document read", "root", KindOf(n))
	return n, nil
}

// Unmarshal reads a document from data and decodes it into out.
func (y *Yaml) Unmarshal(data []byte, out any) error {
	n, err := y.ParseBytesToNode(data)
	if err != nil {
		return err
	}
	return y.DecodeFromNode(context.Background(), n, out)
}

// DecodeFromNode decodes n into the value pointed to by out.
func (y *Yaml) DecodeFromNode(ctx context.Context, n Node, out any) error {
	return DecodeNode(ctx, y.cfg, n, out)
}

// DecodeWithMeta is DecodeFromNode that also reports which struct fields
// were present, null or defaulted.
func (y *Yaml) DecodeWithMeta(ctx context.Context, n Node, out any) (PresenceMap, error) {
	return decodeNode(ctx, &y.cfg, n, out, true)
}

// Marshal encodes v as a YAML document.
func (y *Yaml) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := y.Encode(context.Background(), &buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes v as a YAML document to w.
func (y *Yaml) Encode(ctx context.Context, w io.Writer, v any) error {
	return y.EncodeToSink(ctx, y.NewSink(w), v)
}

// NewSink returns the yaml.v3 sink configured with the indent sizes.
func (y *Yaml) NewSink(w io.Writer) event.Sink {
	return yamlv3.NewSink(w, yamlv3.SinkOptions{
		Indent:           y.cfg.IndentSize,
		CompactSequences: y.cfg.SequenceBlockIndent == 0,
	})
}

// EncodeToSink writes v as events to sink. The document and stream are
// closed even when encoding fails; the first error is returned.
func (y *Yaml) EncodeToSink(ctx context.Context, sink event.Sink, v any) (err error) {
	return y.withOutput(sink, func(o *Output) error { return EncodeValue(ctx, o, y.cfg, v) })
}

// MarshalNode writes a node tree as a YAML document.
func (y *Yaml) MarshalNode(n Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := y.EncodeNode(&buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeNode writes a node tree as a YAML document to w.
func (y *Yaml) EncodeNode(w io.Writer, n Node) error {
	return y.withOutput(y.NewSink(w), func(o *Output) error { return o.EncodeNode(n) })
}

func (y *Yaml) withOutput(sink event.Sink, fn func(*Output) error) (err error) {
	o, err := NewOutput(sink, y.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := o.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(o)
}
