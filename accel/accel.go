package accel

import (
	"errors"
	"fmt"
	"sort"

	"github.com/achilleasa/go-bvh/types"
)

var (
	ErrEmptyPrimitiveSet = errors.New("accel: cannot build accelerator from empty primitive set")
)

// The Accelerator interface is implemented by all spatial indices that can
// answer nearest-hit ray queries against a primitive set.
type Accelerator interface {
	// Build the index from a primitive set. Building is a synchronous,
	// single-threaded preprocessing step; it must not overlap with any
	// Intersect call on the same instance. Calling Build again replaces
	// any previously built index.
	Build(set PrimitiveSet) error

	// Find the nearest primitive intersection along a ray, sampling
	// primitives at the given time value. Queries are read-only and may
	// be issued concurrently from multiple goroutines once Build has
	// completed.
	Intersect(time float32, ray types.Ray) (Intersection, bool)

	// Get the accelerator name used for registry lookups.
	Name() string
}

// Accelerator factories indexed by name.
var factories = make(map[string]func() Accelerator)

// Register an accelerator factory under a unique name.
func register(name string, factory func() Accelerator) {
	factories[name] = factory
}

// Create an accelerator instance by name.
func New(name string) (Accelerator, error) {
	factory, exists := factories[name]
	if !exists {
		return nil, fmt.Errorf("accel: unknown accelerator %q", name)
	}
	return factory(), nil
}

// Get the sorted list of registered accelerator names.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
