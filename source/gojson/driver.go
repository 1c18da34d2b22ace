package gojson

import (
	"io"

	"github.com/reoring/yamltree/event"
)

// JSONDriver is backed by goccy/go-json. It satisfies yamltree.Driver and
// can be installed with yamltree.SetDriver or yamltree.WithDriver.
type JSONDriver struct{}

// Driver returns the go-json driver.
func Driver() JSONDriver { return JSONDriver{} }

func (JSONDriver) NewReader(r io.Reader) event.Source { return NewReader(r) }
func (JSONDriver) NewBytes(b []byte) event.Source     { return NewBytes(b) }
func (JSONDriver) Name() string                       { return "go-json" }
