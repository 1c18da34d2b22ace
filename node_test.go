package yamltree_test

import (
	"testing"

	"github.com/reoring/yamltree"
)

func TestNode_EquivalentContentTo(t *testing.T) {
	root := yamltree.RootPath()
	elsewhere := root.WithListEntry(3, loc(9, 9))
	a := yamltree.NewScalar("a", root)
	b := yamltree.NewScalar("b", root)

	tests := []struct {
		name string
		x, y yamltree.Node
		want bool
	}{
		{"reflexive", a, a, true},
		{"path blind", a, yamltree.NewScalar("a", elsewhere), true},
		{"different content", a, b, false},
		{"null vs scalar", yamltree.NewNull(root), yamltree.NewScalar("null", root), false},
		{"null vs null", yamltree.NewNull(root), yamltree.NewNull(elsewhere), true},
		{"list order matters", yamltree.NewList([]yamltree.Node{a, b}, root), yamltree.NewList([]yamltree.Node{b, a}, root), false},
		{"list equal", yamltree.NewList([]yamltree.Node{a, b}, root), yamltree.NewList([]yamltree.Node{a, b}, elsewhere), true},
		{"tag matters", yamltree.NewTagged("!x", a, root), yamltree.NewTagged("!y", a, root), false},
		{"tagged vs untagged", yamltree.NewTagged("!x", a, root), a, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.x.EquivalentContentTo(tt.y); got != tt.want {
				t.Fatalf("EquivalentContentTo = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNode_MapOrderIsInsignificant(t *testing.T) {
	x := mustParse(t, "{a: 1, b: [x, y]}")
	y := mustParse(t, "b: [x, y]\na: 1\n")
	if !x.EquivalentContentTo(y) || !y.EquivalentContentTo(x) {
		t.Fatalf("%s and %s should be equivalent", x.ContentString(), y.ContentString())
	}
	if x.EquivalentContentTo(mustParse(t, "{a: 1, b: [y, x]}")) {
		t.Fatalf("list order inside maps must matter")
	}
	if x.EquivalentContentTo(mustParse(t, "{a: 1}")) {
		t.Fatalf("maps of different size compared equal")
	}
}

func TestNewMap_DuplicateKeys(t *testing.T) {
	root := yamltree.RootPath()
	k1 := yamltree.NewScalar("k", root.WithMapElementKey("k", loc(1, 1)))
	k2 := yamltree.NewScalar("k", root.WithMapElementKey("k", loc(2, 1)))
	v := yamltree.NewNull(root)
	_, err := yamltree.NewMap([]yamltree.MapEntry{{Key: k1, Value: v}, {Key: k2, Value: v}}, root)
	ye := mustError(t, err, yamltree.CodeDuplicateKey)
	if ye.Location() != loc(2, 1) {
		t.Fatalf("duplicate reported at %v, want the later key", ye.Location())
	}
	if ye.Params["key"] != "k" || ye.Params["line"] != "1" {
		t.Fatalf("params = %v", ye.Params)
	}
}

func TestMap_Accessors(t *testing.T) {
	m := asMap(t, mustParse(t, "name: x\nlist: [1]\n"))
	if s, ok := m.GetScalar("name"); !ok || s.Content() != "x" {
		t.Fatalf("GetScalar(name) = %v, %v", s, ok)
	}
	if _, ok := m.GetScalar("list"); ok {
		t.Fatalf("GetScalar on a list value succeeded")
	}
	k, ok := m.GetKey("list")
	if !ok || k.Location() != loc(2, 1) {
		t.Fatalf("GetKey(list) = %v", k)
	}
	if m.Len() != 2 || len(m.Entries()) != 2 {
		t.Fatalf("len = %d", m.Len())
	}
}

func TestNode_ContentStringAndKind(t *testing.T) {
	n := mustParse(t, "a: [x, ~]\nb: !t {c: d}\n")
	if got, want := n.ContentString(), "{'a': ['x', null], 'b': !t {'c': 'd'}}"; got != want {
		t.Fatalf("ContentString = %s, want %s", got, want)
	}
	m := asMap(t, n)
	kinds := map[string]string{"a": "list", "b": "tagged"}
	for k, want := range kinds {
		if got := yamltree.KindOf(get(t, m, k)); got != want {
			t.Fatalf("KindOf(%s) = %s, want %s", k, got, want)
		}
	}
}

func TestNode_WithPathRebasesChildren(t *testing.T) {
	l := mustParse(t, "[a, [b]]").(*yamltree.List)
	moved := l.WithPath(yamltree.RootPath().WithMapElementKey("x", loc(5, 1)).WithMapElementValue(loc(5, 4)))
	inner := moved.(*yamltree.List).At(1).(*yamltree.List).At(0)
	if got := inner.Path().String(); got != "x[1][0]" {
		t.Fatalf("rebased path = %q", got)
	}
	if inner.Location() != loc(1, 6) {
		t.Fatalf("rebased child lost its location: %v", inner.Location())
	}
}

func TestToValue(t *testing.T) {
	n := mustParse(t, "a: 1\nb: [true, x]\nc: ~\nd: !t 2.5\n")
	raw := yamltree.ToValue(n).(map[string]any)
	if raw["a"] != "1" || raw["c"] != nil || raw["d"] != "2.5" {
		t.Fatalf("ToValue = %#v", raw)
	}
	typed := yamltree.InferValue(n).(map[string]any)
	if typed["a"] != int64(1) || typed["d"] != 2.5 {
		t.Fatalf("InferValue = %#v", typed)
	}
	if b := typed["b"].([]any); b[0] != true || b[1] != "x" {
		t.Fatalf("InferValue list = %#v", b)
	}
}
