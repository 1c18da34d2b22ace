package yamltree

import (
	"fmt"
	"strings"
)

// Node is an element of a parsed document: *Scalar, *Null, *List, *Map or
// *Tagged. Nodes are immutable; WithPath returns a rebased copy.
type Node interface {
	// Path is the structural path at which the node was read.
	Path() Path
	// Location is shorthand for Path().EndLocation().
	Location() Location
	// WithPath returns an equivalent node relocated to p. Children whose
	// paths extend the receiver's path are relocated as well.
	WithPath(p Path) Node
	// EquivalentContentTo compares content, ignoring paths. List order is
	// significant, map key order is not.
	EquivalentContentTo(other Node) bool
	// ContentString renders the content only, e.g. {name: 'x', tags: ['a']}.
	ContentString() string
	// String renders the node together with its path and location.
	String() string

	isNode()
}

type nodeBase struct{ path Path }

func (b nodeBase) Path() Path         { return b.path }
func (b nodeBase) Location() Location { return b.path.EndLocation() }
func (nodeBase) isNode()              {}

// KindOf names the variant of n as used in messages: "scalar", "null",
// "list", "map" or "tagged".
func KindOf(n Node) string {
	switch n.(type) {
	case *Scalar:
		return "scalar"
	case *Null:
		return "null"
	case *List:
		return "list"
	case *Map:
		return "map"
	case *Tagged:
		return "tagged"
	}
	return fmt.Sprintf("%T", n)
}

// rebaseChild moves child from under old to under newBase. Children that
// were not read below old keep their own path.
func rebaseChild(child Node, old, newBase Path) Node {
	p, ok := child.Path().rebase(old, newBase)
	if !ok {
		return child
	}
	return child.WithPath(p)
}

// ---- Scalar ----

// Scalar is a non-null scalar value. Its content is the unparsed text.
type Scalar struct {
	nodeBase
	content string
}

func NewScalar(content string, path Path) *Scalar {
	return &Scalar{nodeBase: nodeBase{path: path}, content: content}
}

func (s *Scalar) Content() string { return s.content }

func (s *Scalar) WithPath(p Path) Node { return NewScalar(s.content, p) }

func (s *Scalar) EquivalentContentTo(other Node) bool {
	o, ok := other.(*Scalar)
	return ok && o.content == s.content
}

func (s *Scalar) ContentString() string { return "'" + s.content + "'" }

func (s *Scalar) String() string {
	return fmt.Sprintf("scalar @ %s (%s) : %s", s.path, s.Location(), s.content)
}

// ---- Null ----

// Null is an explicit or implicit null value.
type Null struct{ nodeBase }

func NewNull(path Path) *Null { return &Null{nodeBase{path: path}} }

func (n *Null) WithPath(p Path) Node { return NewNull(p) }

func (n *Null) EquivalentContentTo(other Node) bool {
	_, ok := other.(*Null)
	return ok
}

func (n *Null) ContentString() string { return "null" }

func (n *Null) String() string { return fmt.Sprintf("null @ %s (%s)", n.path, n.Location()) }

// ---- List ----

// List is a sequence of nodes.
type List struct {
	nodeBase
	items []Node
}

func NewList(items []Node, path Path) *List {
	return &List{nodeBase: nodeBase{path: path}, items: append([]Node(nil), items...)}
}

// Items returns a copy of the list items.
func (l *List) Items() []Node { return append([]Node(nil), l.items...) }

func (l *List) Len() int { return len(l.items) }

func (l *List) At(i int) Node { return l.items[i] }

func (l *List) WithPath(p Path) Node {
	items := make([]Node, len(l.items))
	for i, it := range l.items {
		items[i] = rebaseChild(it, l.path, p)
	}
	return &List{nodeBase: nodeBase{path: p}, items: items}
}

func (l *List) EquivalentContentTo(other Node) bool {
	o, ok := other.(*List)
	if !ok || len(o.items) != len(l.items) {
		return false
	}
	for i := range l.items {
		if !l.items[i].EquivalentContentTo(o.items[i]) {
			return false
		}
	}
	return true
}

func (l *List) ContentString() string {
	parts := make([]string, len(l.items))
	for i, it := range l.items {
		parts[i] = it.ContentString()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (l *List) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "list @ %s (%s) : [", l.path, l.Location())
	for i, it := range l.items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(it.String())
	}
	b.WriteString("]")
	return b.String()
}

// ---- Map ----

// MapEntry is one key/value pair of a Map.
type MapEntry struct {
	Key   *Scalar
	Value Node
}

// Map is an ordered mapping from scalar keys to nodes. Keys are unique by
// content.
type Map struct {
	nodeBase
	entries []MapEntry
	index   map[string]int
}

// NewMap builds a map, failing with duplicate_key when two keys have the
// same content. The error is reported at the later key.
func NewMap(entries []MapEntry, path Path) (*Map, error) {
	m := &Map{nodeBase: nodeBase{path: path}, entries: make([]MapEntry, 0, len(entries)), index: make(map[string]int, len(entries))}
	for _, e := range entries {
		if i, dup := m.index[e.Key.content]; dup {
			return nil, errDuplicateKey(e.Key, m.entries[i].Key)
		}
		m.index[e.Key.content] = len(m.entries)
		m.entries = append(m.entries, e)
	}
	return m, nil
}

// Entries returns a copy of the entries in document order.
func (m *Map) Entries() []MapEntry { return append([]MapEntry(nil), m.entries...) }

func (m *Map) Len() int { return len(m.entries) }

// Keys returns the key contents in document order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Key.content
	}
	return out
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Node, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

// GetKey returns the key node for key, which carries the key's location.
func (m *Map) GetKey(key string) (*Scalar, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Key, true
}

// GetScalar returns the value stored under key when it is a scalar.
func (m *Map) GetScalar(key string) (*Scalar, bool) {
	n, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	s, ok := n.(*Scalar)
	return s, ok
}

func (m *Map) WithPath(p Path) Node {
	out := &Map{nodeBase: nodeBase{path: p}, entries: make([]MapEntry, len(m.entries)), index: m.index}
	for i, e := range m.entries {
		k := rebaseChild(e.Key, m.path, p).(*Scalar)
		out.entries[i] = MapEntry{Key: k, Value: rebaseChild(e.Value, m.path, p)}
	}
	return out
}

func (m *Map) EquivalentContentTo(other Node) bool {
	o, ok := other.(*Map)
	if !ok || len(o.entries) != len(m.entries) {
		return false
	}
	for _, e := range m.entries {
		v, ok := o.Get(e.Key.content)
		if !ok || !e.Value.EquivalentContentTo(v) {
			return false
		}
	}
	return true
}

func (m *Map) ContentString() string {
	parts := make([]string, len(m.entries))
	for i, e := range m.entries {
		parts[i] = e.Key.ContentString() + ": " + e.Value.ContentString()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (m *Map) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "map @ %s (%s) : {", m.path, m.Location())
	for i, e := range m.entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.Key.String())
		b.WriteString(" -> ")
		b.WriteString(e.Value.String())
	}
	b.WriteString("}")
	return b.String()
}

// ---- Tagged ----

// Tagged wraps a node that carried an explicit tag such as !thing or !!str.
type Tagged struct {
	nodeBase
	tag   string
	inner Node
}

func NewTagged(tag string, inner Node, path Path) *Tagged {
	return &Tagged{nodeBase: nodeBase{path: path}, tag: tag, inner: inner}
}

func (t *Tagged) Tag() string { return t.tag }

func (t *Tagged) Inner() Node { return t.inner }

func (t *Tagged) WithPath(p Path) Node {
	return NewTagged(t.tag, rebaseChild(t.inner, t.path, p), p)
}

func (t *Tagged) EquivalentContentTo(other Node) bool {
	o, ok := other.(*Tagged)
	return ok && o.tag == t.tag && t.inner.EquivalentContentTo(o.inner)
}

func (t *Tagged) ContentString() string { return t.tag + " " + t.inner.ContentString() }

func (t *Tagged) String() string {
	return fmt.Sprintf("tagged '%s' @ %s (%s) : %s", t.tag, t.path, t.Location(), t.inner.String())
}
