package yamltree_test

import (
	"testing"

	"github.com/reoring/yamltree"
	"github.com/reoring/yamltree/source/gojson"
)

func TestDriver_SetAndRestore(t *testing.T) {
	if got := yamltree.CurrentDriver().Name(); got != "yaml.v3" {
		t.Fatalf("default driver = %q", got)
	}
	yamltree.SetDriver(gojson.Driver())
	defer yamltree.UseDefaultDriver()

	n, err := yamltree.Default().ParseToNode(`{"a": [1, null]}`)
	if err != nil {
		t.Fatalf("ParseToNode: %v", err)
	}
	if got := n.ContentString(); got != "{'a': ['1', null]}" {
		t.Fatalf("content = %s", got)
	}
	// JSON has no comments, so YAML-only syntax fails under this driver.
	if _, err := yamltree.Default().ParseToNode("a: 1 # note"); err == nil {
		t.Fatalf("YAML input accepted by the JSON driver")
	}

	yamltree.UseDefaultDriver()
	if got := yamltree.CurrentDriver().Name(); got != "yaml.v3" {
		t.Fatalf("restored driver = %q", got)
	}
}
