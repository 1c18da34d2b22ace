package yamltree

import (
	"fmt"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/reoring/yamltree/event"
)

// NodeReader builds one document's node tree from a Parser. A NodeReader
// owns its anchor table and must not be shared between goroutines.
type NodeReader struct {
	parser          *Parser
	extensionPrefix string
	allowAnchors    bool
	maxAliases      int
	logger          log.Logger

	anchors map[string]Node
	aliases int
}

// NewNodeReader returns a reader over p using the reading options of cfg.
// A nil logger discards debug output.
func NewNodeReader(p *Parser, cfg Config, logger log.Logger) *NodeReader {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &NodeReader{
		parser:          p,
		extensionPrefix: cfg.ExtensionDefinitionPrefix,
		allowAnchors:    cfg.AllowAnchorsAndAliases,
		maxAliases:      cfg.MaxAliasCount,
		logger:          logger,
		anchors:         map[string]Node{},
	}
}

// Read reads exactly one node at the root path. The caller is responsible
// for calling Parser.EnsureEndOfStream afterwards.
func (r *NodeReader) Read() (Node, error) {
	return r.readNode(RootPath())
}

func (r *NodeReader) readNode(path Path) (Node, error) {
	n, _, err := r.readNodeWithAnchor(path)
	return n, err
}

// readNodeWithAnchor also returns the anchor defined on the consumed event.
func (r *NodeReader) readNodeWithAnchor(path Path) (Node, string, error) {
	ev, err := r.parser.Consume(path)
	if err != nil {
		return nil, "", err
	}
	var n Node
	switch ev.Kind {
	case event.KindScalar:
		n = readScalar(ev, path)
	case event.KindSequenceStart:
		n, err = r.readSequence(ev, path)
	case event.KindMappingStart:
		n, err = r.readMapping(ev, path)
	case event.KindAlias:
		n, err = r.resolveAlias(ev, path)
		return n, "", err
	default:
		return nil, "", errMalformed(path.WithError(locationOf(ev.Start)), fmt.Sprintf("Unexpected %s", ev.Kind))
	}
	if err != nil {
		return nil, "", err
	}
	if ev.Anchor != "" {
		if err := r.registerAnchor(ev, n, path); err != nil {
			return nil, "", err
		}
	}
	return n, ev.Anchor, nil
}

func isNullText(s string) bool { return s == "null" || s == "" || s == "~" }

func readScalar(ev event.Event, path Path) Node {
	var n Node
	if ev.IsPlain() && isNullText(ev.Value) {
		n = NewNull(path)
	} else {
		n = NewScalar(ev.Value, path)
	}
	if ev.Tag != "" {
		n = NewTagged(ev.Tag, n, path)
	}
	return n
}

func (r *NodeReader) readSequence(start event.Event, path Path) (Node, error) {
	var items []Node
	for i := 0; ; i++ {
		next, err := r.parser.Peek(path)
		if err != nil {
			return nil, err
		}
		if next.Kind == event.KindSequenceEnd {
			if _, err := r.parser.Consume(path); err != nil {
				return nil, err
			}
			break
		}
		item, err := r.readNode(path.WithListEntry(i, locationOf(next.Start)))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	var n Node = NewList(items, path)
	if start.Tag != "" {
		n = NewTagged(start.Tag, n, path)
	}
	return n, nil
}

const mergeKey = "<<"

func (r *NodeReader) readMapping(start event.Event, path Path) (Node, error) {
	var entries []MapEntry
	for {
		next, err := r.parser.Peek(path)
		if err != nil {
			return nil, err
		}
		if next.Kind == event.KindMappingEnd {
			if _, err := r.parser.Consume(path); err != nil {
				return nil, err
			}
			break
		}
		key, err := r.readKey(path)
		if err != nil {
			return nil, err
		}
		valueStart, err := r.parser.Peek(key.Path())
		if err != nil {
			return nil, err
		}
		valueLoc := locationOf(valueStart.Start)
		var valuePath Path
		switch {
		case key.Content() == mergeKey && valueStart.Kind == event.KindAlias:
			valuePath = path.WithAliasMerge(valueStart.Value, valueLoc)
		case key.Content() == mergeKey:
			valuePath = path.WithInlineMerge(valueLoc)
		default:
			valuePath = key.Path().WithMapElementValue(valueLoc)
		}
		value, anchor, err := r.readNodeWithAnchor(valuePath)
		if err != nil {
			return nil, err
		}
		if path.IsRoot() && r.extensionPrefix != "" && strings.HasPrefix(key.Content(), r.extensionPrefix) {
			if anchor == "" {
				return nil, errMissingAnchorForExtension(key.Path(), key.Content(), r.extensionPrefix)
			}
			level.Debug(r.logger).Log("msg", "registered extension anchor", "key", key.Content(), "anchor", anchor)
			continue
		}
		entries = append(entries, MapEntry{Key: key, Value: value})
	}
	merged, err := doMerges(entries)
	if err != nil {
		return nil, err
	}
	m, err := NewMap(merged, path)
	if err != nil {
		return nil, err
	}
	var n Node = m
	if start.Tag != "" {
		n = NewTagged(start.Tag, n, path)
	}
	return n, nil
}

func (r *NodeReader) readKey(path Path) (*Scalar, error) {
	ev, err := r.parser.Consume(path)
	if err != nil {
		return nil, err
	}
	loc := locationOf(ev.Start)
	if ev.Kind != event.KindScalar || ev.Tag != "" || (ev.IsPlain() && (ev.Value == "null" || ev.Value == "~")) {
		return nil, errMalformed(path.WithError(loc),
			"Property name must not be a list, map, null or tagged value. (To use 'null' as a property name, enclose it in quotes.)")
	}
	key := NewScalar(ev.Value, path.WithMapElementKey(ev.Value, loc))
	if ev.Anchor != "" {
		if err := r.registerAnchor(ev, key, key.Path()); err != nil {
			return nil, err
		}
	}
	return key, nil
}

// registerAnchor binds the anchor of ev to n, replacing any earlier binding.
// Aliases resolved before the redefinition keep the node they resolved to.
func (r *NodeReader) registerAnchor(ev event.Event, n Node, path Path) error {
	if !r.allowAnchors {
		return errForbiddenAnchorOrAlias(path.WithError(locationOf(ev.Start)))
	}
	if _, redefined := r.anchors[ev.Anchor]; redefined {
		level.Debug(r.logger).Log("msg", "anchor redefined", "anchor", ev.Anchor, "path", path.String())
	}
	r.anchors[ev.Anchor] = n
	return nil
}

func (r *NodeReader) resolveAlias(ev event.Event, path Path) (Node, error) {
	loc := locationOf(ev.Start)
	if !r.allowAnchors {
		return nil, errForbiddenAnchorOrAlias(path.WithError(loc))
	}
	target, ok := r.anchors[ev.Value]
	if !ok {
		return nil, errUnknownAnchor(path.WithError(loc), ev.Value)
	}
	if isCollection(target) {
		r.aliases++
		if r.maxAliases > 0 && r.aliases > r.maxAliases {
			return nil, errAliasLimit(path.WithError(loc), r.maxAliases)
		}
	}
	return target.WithPath(path.WithAliasReference(ev.Value, loc).WithAliasDefinition(ev.Value, target.Location())), nil
}

// isCollection reports whether n is a list or map, possibly tagged. Only
// aliases to collections can multiply the size of a document.
func isCollection(n Node) bool {
	if t, ok := n.(*Tagged); ok {
		n = t.Inner()
	}
	switch n.(type) {
	case *List, *Map:
		return true
	}
	return false
}
