package codec

import (
	"context"
	"reflect"
	"testing"
	"time"
)

func TestTimeRFC3339_Codec_Basic(t *testing.T) {
	c := TimeRFC3339()
	ctx := context.Background()

	in := "2025-01-01T00:00:00Z"
	got, err := c.Decode(ctx, in)
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if !got.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time: %v", got)
	}

	out, err := c.Encode(ctx, got)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if out != in {
		t.Fatalf("roundtrip mismatch: %s != %s", out, in)
	}
}

func TestTimeRFC3339_NormalizesToUTC(t *testing.T) {
	c := TimeRFC3339()
	got, err := c.Decode(context.Background(), "2025-01-01T09:00:00+09:00")
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	out, _ := c.Encode(context.Background(), got)
	if out != "2025-01-01T00:00:00Z" {
		t.Fatalf("unexpected canonical form: %s", out)
	}
}

func TestTimeRFC3339_Invalid(t *testing.T) {
	if _, err := TimeRFC3339().Decode(context.Background(), "yesterday"); err == nil {
		t.Fatalf("expected error for non-RFC3339 text")
	}
}

func TestDuration_Codec(t *testing.T) {
	c := Duration()
	d, err := c.Decode(context.Background(), "1h30m")
	if err != nil || d != 90*time.Minute {
		t.Fatalf("decode err=%v d=%v", err, d)
	}
	s, _ := c.Encode(context.Background(), d)
	if s != "1h30m0s" {
		t.Fatalf("unexpected encoding: %s", s)
	}
	if _, err := c.Decode(context.Background(), "soon"); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

type colour string

func TestRegistry_LookupAndErase(t *testing.T) {
	r := Default()
	s, ok := r.Lookup(reflect.TypeFor[time.Duration]())
	if !ok {
		t.Fatalf("duration codec not registered")
	}
	v, err := s.DecodeAny(context.Background(), "2s")
	if err != nil || v.(time.Duration) != 2*time.Second {
		t.Fatalf("decode err=%v v=%v", err, v)
	}
	if _, err := s.EncodeAny(context.Background(), "not a duration"); err == nil {
		t.Fatalf("expected type mismatch error")
	}

	if _, ok := r.Lookup(reflect.TypeFor[colour]()); ok {
		t.Fatalf("colour should not be registered yet")
	}
	Register(r, Text[colour]())
	s, ok = r.Lookup(reflect.TypeFor[colour]())
	if !ok {
		t.Fatalf("colour codec not registered")
	}
	out, err := s.EncodeAny(context.Background(), colour("red"))
	if err != nil || out != "red" {
		t.Fatalf("encode err=%v out=%q", err, out)
	}
}

func TestRegistry_NilLookup(t *testing.T) {
	var r *Registry
	if _, ok := r.Lookup(reflect.TypeFor[time.Time]()); ok {
		t.Fatalf("nil registry must not find codecs")
	}
}
