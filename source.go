package yamltree

import (
	"io"
	"sync"

	"github.com/reoring/yamltree/event"
	"github.com/reoring/yamltree/source/yamlv3"
)

// Driver converts raw input into an event.Source via a pluggable SPI. The
// default implementation is based on gopkg.in/yaml.v3 and may be swapped
// with SetDriver, or per Yaml instance with WithDriver.
type Driver interface {
	NewReader(r io.Reader) event.Source
	NewBytes(b []byte) event.Source
	Name() string
}

var (
	driverMu      sync.RWMutex
	currentDriver Driver = defaultDriver{}
)

// SetDriver replaces the global driver; nil values are ignored.
func SetDriver(d Driver) {
	if d == nil {
		return
	}
	driverMu.Lock()
	currentDriver = d
	driverMu.Unlock()
}

// UseDefaultDriver restores the default yaml.v3-backed driver.
func UseDefaultDriver() {
	driverMu.Lock()
	currentDriver = defaultDriver{}
	driverMu.Unlock()
}

// CurrentDriver returns the global driver.
func CurrentDriver() Driver {
	driverMu.RLock()
	d := currentDriver
	driverMu.RUnlock()
	return d
}

// defaultDriver wraps the yaml.v3 implementation.
type defaultDriver struct{}

func (defaultDriver) NewReader(r io.Reader) event.Source { return yamlv3.NewReader(r) }
func (defaultDriver) NewBytes(b []byte) event.Source     { return yamlv3.NewBytes(b) }
func (defaultDriver) Name() string                       { return "yaml.v3" }
