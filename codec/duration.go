package codec

import (
	"context"
	"fmt"
	"time"
)

// Duration returns a Codec for time.Duration using Go duration syntax ("1h30m").
func Duration() Codec[time.Duration] { return durationCodec{} }

type durationCodec struct{}

func (durationCodec) Decode(_ context.Context, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration: %w", err)
	}
	return d, nil
}

func (durationCodec) Encode(_ context.Context, d time.Duration) (string, error) {
	return d.String(), nil
}

// Text returns a Codec that passes scalar text through unchanged. It is
// useful for registering named string types that should bypass the default
// handling.
func Text[B ~string]() Codec[B] { return textCodec[B]{} }

type textCodec[B ~string] struct{}

func (textCodec[B]) Decode(_ context.Context, s string) (B, error) { return B(s), nil }
func (textCodec[B]) Encode(_ context.Context, b B) (string, error) { return string(b), nil }
