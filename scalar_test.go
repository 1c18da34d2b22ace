package yamltree_test

import (
	"math"
	"testing"

	"github.com/reoring/yamltree"
)

func scalar(s string) *yamltree.Scalar {
	return yamltree.NewScalar(s, yamltree.RootPath().WithMapElementKey("v", loc(1, 1)).WithMapElementValue(loc(1, 4)))
}

func TestScalar_IntegerGrammar(t *testing.T) {
	accept := map[string]int64{
		"0": 0, "123": 123, "-17": -17, "0x1F": 31, "0xff": 255, "-0x10": -16, "0o17": 15, "-0o7": -7,
	}
	for text, want := range accept {
		got, err := scalar(text).ToInt64()
		if err != nil || got != want {
			t.Fatalf("ToInt64(%q) = %d, %v; want %d", text, got, err, want)
		}
	}
	for _, text := range []string{"", "+1", "1.0", "0x", "0o8", "1_000", "abc", " 1", "0b101"} {
		_, err := scalar(text).ToInt64()
		ye := mustError(t, err, yamltree.CodeInvalidScalar)
		if ye.Params["value"] != text {
			t.Fatalf("error for %q does not echo the text: %v", text, ye.Params)
		}
	}
	if _, err := scalar("3000000000").ToInt32(); err == nil {
		t.Fatalf("ToInt32 accepted an out-of-range value")
	}
	if _, err := scalar("-1").ToUint64(); err == nil {
		t.Fatalf("ToUint64 accepted a negative value")
	}
}

func TestScalar_FloatAndBool(t *testing.T) {
	floats := map[string]float64{"1.5": 1.5, "-2": -2, ".5": .5, "1e3": 1000, "+1.0E-2": 0.01, ".inf": math.Inf(1), "-.Inf": math.Inf(-1)}
	for text, want := range floats {
		got, err := scalar(text).ToFloat64()
		if err != nil || got != want {
			t.Fatalf("ToFloat64(%q) = %v, %v", text, got, err)
		}
	}
	if f, err := scalar(".NaN").ToFloat64(); err != nil || !math.IsNaN(f) {
		t.Fatalf(".NaN = %v, %v", f, err)
	}
	if _, err := scalar("1.2.3").ToFloat64(); err == nil {
		t.Fatalf("accepted 1.2.3")
	}

	for text, want := range map[string]bool{"true": true, "True": true, "TRUE": true, "false": false, "FALSE": false} {
		if got, err := scalar(text).ToBool(); err != nil || got != want {
			t.Fatalf("ToBool(%q) = %v, %v", text, got, err)
		}
	}
	for _, text := range []string{"yes", "tRuE", "1", ""} {
		if _, err := scalar(text).ToBool(); err == nil {
			t.Fatalf("ToBool(%q) succeeded", text)
		}
	}
}

func TestScalar_ToChar(t *testing.T) {
	if r, err := scalar("é").ToChar(); err != nil || r != 'é' {
		t.Fatalf("ToChar = %q, %v", r, err)
	}
	for _, text := range []string{"", "ab"} {
		if _, err := scalar(text).ToChar(); err == nil {
			t.Fatalf("ToChar(%q) succeeded", text)
		}
	}
}

func TestScalar_ErrorLocation(t *testing.T) {
	_, err := scalar("x").ToInt64()
	ye := mustError(t, err, yamltree.CodeInvalidScalar)
	if ye.Location() != loc(1, 4) || ye.Message != "Value 'x' is not a valid integer value." {
		t.Fatalf("error = %v", ye)
	}
}

func TestRequireKinds(t *testing.T) {
	n := mustParse(t, "[1]")
	if _, err := yamltree.RequireList(n); err != nil {
		t.Fatal(err)
	}
	_, err := yamltree.RequireMap(n)
	ye := mustError(t, err, yamltree.CodeIncorrectType)
	if ye.Message != "Expected an object, but got a list." {
		t.Fatalf("message = %q", ye.Message)
	}
}

func TestIsAmbiguous(t *testing.T) {
	for _, s := range []string{"", "#x", "12", "-0x1f", "1.5", "1e3", "null", "~", "True", "no", "Y", "off", ".inf", ".NaN"} {
		if !yamltree.IsAmbiguous(s) {
			t.Fatalf("IsAmbiguous(%q) = false", s)
		}
	}
	for _, s := range []string{"hello", "a#b", "1.2.3", "nulls", "yes please"} {
		if yamltree.IsAmbiguous(s) {
			t.Fatalf("IsAmbiguous(%q) = true", s)
		}
	}
}
