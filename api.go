package yamltree

import (
	"bytes"
	"context"
	"reflect"

	"github.com/reoring/yamltree/event"
)

// ParseFrom is the primary typed entry point. It reads one document from
// src and decodes it into a T.
func ParseFrom[T any](ctx context.Context, y *Yaml, src event.Source) (T, error) {
	var zero T
	n, err := y.ReadNode(src)
	if err != nil {
		return zero, err
	}
	var v T
	if err := y.DecodeFromNode(ctx, n, &v); err != nil {
		return zero, err
	}
	return v, nil
}

// ParseFromWithMeta collects presence metadata alongside the decoded value.
func ParseFromWithMeta[T any](ctx context.Context, y *Yaml, src event.Source) (Decoded[T], error) {
	n, err := y.ReadNode(src)
	if err != nil {
		return Decoded[T]{}, err
	}
	var v T
	pm, err := y.DecodeWithMeta(ctx, n, &v)
	if err != nil {
		return Decoded[T]{}, err
	}
	return Decoded[T]{Value: v, Presence: pm}, nil
}

// Parse decodes a document held in memory into a T.
func Parse[T any](ctx context.Context, y *Yaml, data []byte) (T, error) {
	return ParseFrom[T](ctx, y, y.getDriver().NewBytes(data))
}

// ParseWithMeta is Parse with presence metadata.
func ParseWithMeta[T any](ctx context.Context, y *Yaml, data []byte) (Decoded[T], error) {
	return ParseFromWithMeta[T](ctx, y, y.getDriver().NewBytes(data))
}

// MarshalValue is a typed wrapper around Yaml.Marshal. When T is an
// interface registered in Config.Types, the concrete type name is written.
func MarshalValue[T any](y *Yaml, v T) ([]byte, error) {
	var buf bytes.Buffer
	err := y.withOutput(y.NewSink(&buf), func(o *Output) error {
		s := &encodeState{ctx: context.Background(), enc: o, cfg: &y.cfg}
		return s.encode(reflect.ValueOf(&v).Elem())
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
