package yamltree

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Location is a 1-based line and column in the input document.
type Location struct {
	Line   int
	Column int
}

func (l Location) String() string { return fmt.Sprintf("line %d, column %d", l.Line, l.Column) }

// Segment is one step of a Path. The set of implementations is closed.
type Segment interface {
	isSegment()
}

type (
	// RootSegment is the first segment of every path.
	RootSegment struct{}
	// ListEntrySegment selects an item of a list.
	ListEntrySegment struct {
		Index    int
		Location Location
	}
	// MapElementKeySegment selects the key of a map entry.
	MapElementKeySegment struct {
		Key      string
		Location Location
	}
	// MapElementValueSegment selects the value belonging to the preceding key.
	MapElementValueSegment struct {
		Location Location
	}
	// AliasReferenceSegment records where an alias was used.
	AliasReferenceSegment struct {
		Anchor   string
		Location Location
	}
	// AliasDefinitionSegment records where the aliased anchor was defined.
	AliasDefinitionSegment struct {
		Anchor   string
		Location Location
	}
	// InlineMergeSegment is the value of a '<<' entry written in place.
	InlineMergeSegment struct {
		Location Location
	}
	// AliasMergeSegment is the value of a '<<' entry given as an alias.
	AliasMergeSegment struct {
		Anchor   string
		Location Location
	}
	// ErrorSegment pins the exact location of a failure below its parent.
	ErrorSegment struct {
		Location Location
	}
)

func (RootSegment) isSegment()            {}
func (ListEntrySegment) isSegment()       {}
func (MapElementKeySegment) isSegment()   {}
func (MapElementValueSegment) isSegment() {}
func (AliasReferenceSegment) isSegment()  {}
func (AliasDefinitionSegment) isSegment() {}
func (InlineMergeSegment) isSegment()     {}
func (AliasMergeSegment) isSegment()      {}
func (ErrorSegment) isSegment()           {}

// SegmentLocation returns the location carried by seg; RootSegment has none.
func SegmentLocation(seg Segment) (Location, bool) {
	switch s := seg.(type) {
	case RootSegment:
		return Location{}, false
	case ListEntrySegment:
		return s.Location, true
	case MapElementKeySegment:
		return s.Location, true
	case MapElementValueSegment:
		return s.Location, true
	case AliasReferenceSegment:
		return s.Location, true
	case AliasDefinitionSegment:
		return s.Location, true
	case InlineMergeSegment:
		return s.Location, true
	case AliasMergeSegment:
		return s.Location, true
	case ErrorSegment:
		return s.Location, true
	}
	return Location{}, false
}

// ErrInvalidPath is returned by NewPath when the segments do not start with
// exactly one RootSegment.
var ErrInvalidPath = errors.New("yamltree: invalid path")

// Path records how a node was reached from the document root. Paths are
// immutable: every With* method returns a new Path.
type Path struct {
	segments []Segment
}

// RootPath returns the path of the document root.
func RootPath() Path { return Path{segments: []Segment{RootSegment{}}} }

// NewPath builds a path from explicit segments.
func NewPath(segments ...Segment) (Path, error) {
	if len(segments) == 0 {
		return Path{}, fmt.Errorf("%w: path must not be empty", ErrInvalidPath)
	}
	if _, ok := segments[0].(RootSegment); !ok {
		return Path{}, fmt.Errorf("%w: first segment must be the root segment", ErrInvalidPath)
	}
	for i, seg := range segments[1:] {
		if seg == nil {
			return Path{}, fmt.Errorf("%w: segment %d is nil", ErrInvalidPath, i+1)
		}
		if _, ok := seg.(RootSegment); ok {
			return Path{}, fmt.Errorf("%w: root segment may only appear at the start", ErrInvalidPath)
		}
	}
	return Path{segments: append([]Segment(nil), segments...)}, nil
}

func (p Path) segs() []Segment {
	if len(p.segments) == 0 {
		return []Segment{RootSegment{}}
	}
	return p.segments
}

// Segments returns a copy of the path's segments.
func (p Path) Segments() []Segment { return append([]Segment(nil), p.segs()...) }

// Len returns the number of segments including the root.
func (p Path) Len() int { return len(p.segs()) }

// IsRoot reports whether the path consists of the root segment only.
func (p Path) IsRoot() bool { return p.Len() == 1 }

// Last returns the final segment.
func (p Path) Last() Segment {
	s := p.segs()
	return s[len(s)-1]
}

// EndLocation returns the location of the last segment, or line 1 column 1
// for the root path.
func (p Path) EndLocation() Location {
	if loc, ok := SegmentLocation(p.Last()); ok {
		return loc
	}
	return Location{Line: 1, Column: 1}
}

// Parent returns the path without its last segment. The root is its own parent.
func (p Path) Parent() Path {
	s := p.segs()
	if len(s) == 1 {
		return p
	}
	return Path{segments: s[:len(s)-1:len(s)-1]}
}

func (p Path) with(seg Segment) Path {
	s := p.segs()
	out := make([]Segment, len(s), len(s)+1)
	copy(out, s)
	return Path{segments: append(out, seg)}
}

func (p Path) WithListEntry(index int, loc Location) Path {
	return p.with(ListEntrySegment{Index: index, Location: loc})
}

func (p Path) WithMapElementKey(key string, loc Location) Path {
	return p.with(MapElementKeySegment{Key: key, Location: loc})
}

func (p Path) WithMapElementValue(loc Location) Path {
	return p.with(MapElementValueSegment{Location: loc})
}

func (p Path) WithAliasReference(anchor string, loc Location) Path {
	return p.with(AliasReferenceSegment{Anchor: anchor, Location: loc})
}

func (p Path) WithAliasDefinition(anchor string, loc Location) Path {
	return p.with(AliasDefinitionSegment{Anchor: anchor, Location: loc})
}

func (p Path) WithInlineMerge(loc Location) Path {
	return p.with(InlineMergeSegment{Location: loc})
}

func (p Path) WithAliasMerge(anchor string, loc Location) Path {
	return p.with(AliasMergeSegment{Anchor: anchor, Location: loc})
}

func (p Path) WithError(loc Location) Path {
	return p.with(ErrorSegment{Location: loc})
}

// Equal reports whether both paths have identical segments.
func (p Path) Equal(other Path) bool {
	a, b := p.segs(), other.segs()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is a leading part of p.
func (p Path) HasPrefix(prefix Path) bool {
	a, b := p.segs(), prefix.segs()
	if len(b) > len(a) {
		return false
	}
	for i := range b {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// rebase replaces the leading old segments of p with newBase. ok is false
// when p does not start with old.
func (p Path) rebase(old, newBase Path) (Path, bool) {
	if !p.HasPrefix(old) {
		return p, false
	}
	rest := p.segs()[old.Len():]
	base := newBase.segs()
	out := make([]Segment, 0, len(base)+len(rest))
	out = append(out, base...)
	out = append(out, rest...)
	return Path{segments: out}, true
}

// String renders the path for humans, e.g. "servers[1].port" or
// "base->&defaults.colour". Trailing error segments are not rendered.
func (p Path) String() string {
	s := p.segs()
	for len(s) > 1 {
		if _, ok := s[len(s)-1].(ErrorSegment); !ok {
			break
		}
		s = s[:len(s)-1]
	}
	if len(s) == 1 {
		return "<root>"
	}
	var b strings.Builder
	for _, seg := range s[1:] {
		switch v := seg.(type) {
		case ListEntrySegment:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(v.Index))
			b.WriteByte(']')
		case MapElementKeySegment:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(v.Key)
		case AliasReferenceSegment:
			b.WriteString("->&")
			b.WriteString(v.Anchor)
		case InlineMergeSegment:
			b.WriteString("(>> merged inline)")
		case AliasMergeSegment:
			b.WriteString("(>> merged &")
			b.WriteString(v.Anchor)
			b.WriteByte(')')
		case MapElementValueSegment, AliasDefinitionSegment, ErrorSegment, RootSegment:
		}
	}
	if b.Len() == 0 {
		return "<root>"
	}
	return b.String()
}

// GoString renders every segment with its location, for debugging.
func (p Path) GoString() string {
	var b strings.Builder
	for i, seg := range p.segs() {
		if i > 0 {
			b.WriteString(" / ")
		}
		switch v := seg.(type) {
		case RootSegment:
			b.WriteString("root")
		case ListEntrySegment:
			fmt.Fprintf(&b, "[%d]@%d:%d", v.Index, v.Location.Line, v.Location.Column)
		case MapElementKeySegment:
			fmt.Fprintf(&b, "key(%s)@%d:%d", v.Key, v.Location.Line, v.Location.Column)
		case MapElementValueSegment:
			fmt.Fprintf(&b, "value@%d:%d", v.Location.Line, v.Location.Column)
		case AliasReferenceSegment:
			fmt.Fprintf(&b, "*%s@%d:%d", v.Anchor, v.Location.Line, v.Location.Column)
		case AliasDefinitionSegment:
			fmt.Fprintf(&b, "&%s@%d:%d", v.Anchor, v.Location.Line, v.Location.Column)
		case InlineMergeSegment:
			fmt.Fprintf(&b, "merge@%d:%d", v.Location.Line, v.Location.Column)
		case AliasMergeSegment:
			fmt.Fprintf(&b, "merge(*%s)@%d:%d", v.Anchor, v.Location.Line, v.Location.Column)
		case ErrorSegment:
			fmt.Fprintf(&b, "error@%d:%d", v.Location.Line, v.Location.Column)
		}
	}
	return b.String()
}
