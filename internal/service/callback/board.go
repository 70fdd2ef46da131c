// Package callback passes picker results back to the screen that opened the
// picker. Every value is read at most once.
package callback

import (
	"sync"
	"time"

	"field-delivery-sync/internal/domain"
)

// Board is a transient key-value map. The zero value is ready to use.
type Board struct {
	mu     sync.Mutex
	values map[string]any
}

// NewBoard returns an empty Board.
func NewBoard() *Board {
	return &Board{}
}

// Set stores v under key, replacing any previous value.
func (b *Board) Set(key string, v any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.values == nil {
		b.values = make(map[string]any)
	}
	b.values[key] = v
}

// Get returns the value under key without removing it.
func (b *Board) Get(key string) (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.values[key]
	return v, ok
}

// Clear removes key.
func (b *Board) Clear(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.values, key)
}

// take reads and removes key in one step.
func (b *Board) take(key string) (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.values[key]
	if ok {
		delete(b.values, key)
	}
	return v, ok
}

// Key is a typed board key.
type Key[T any] struct {
	name string
}

// NewKey returns a key named name.
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

// Name returns the board key.
func (k Key[T]) Name() string { return k.name }

// Put stores v under k.
func Put[T any](b *Board, k Key[T], v T) {
	b.Set(k.name, v)
}

// Take reads and clears the value under k. A value of another type stored
// through the untyped API is cleared and reported as missing.
func Take[T any](b *Board, k Key[T]) (T, bool) {
	var zero T
	v, ok := b.take(k.name)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// LocationSelection is the result of the route picker.
type LocationSelection struct {
	From       string
	To         string
	DistanceKm float64
}

// TimeSelection is the result of the departure/arrival picker.
type TimeSelection struct {
	Departure time.Time
	Delivery  time.Time
}

// Picker keys used by the create and edit flows.
var (
	VehicleSelect  = NewKey[domain.TransportModel]("vehicle-select")
	ServicesSelect = NewKey[[]domain.Service]("services-select")
	PackageSelect  = NewKey[domain.PackageType]("package-select")
	LocationSelect = NewKey[LocationSelection]("location-select")
	TimeSelect     = NewKey[TimeSelection]("time-select")
)

// Apply moves every pending picker result onto d and reports whether any
// was there. Picked times also set the travel time.
func Apply(b *Board, d *domain.Delivery) bool {
	applied := false
	if v, ok := Take(b, VehicleSelect); ok {
		d.VehicleModel = v.Name
		applied = true
	}
	if v, ok := Take(b, PackageSelect); ok {
		d.PackageType = v.Name
		applied = true
	}
	if v, ok := Take(b, ServicesSelect); ok {
		d.Services = append([]domain.Service(nil), v...)
		applied = true
	}
	if v, ok := Take(b, LocationSelect); ok {
		d.FromLocation = v.From
		d.ToLocation = v.To
		d.Distance = v.DistanceKm
		applied = true
	}
	if v, ok := Take(b, TimeSelect); ok {
		d.DepartureTime = v.Departure
		d.DeliveryTime = v.Delivery
		if !v.Departure.IsZero() && !v.Delivery.IsZero() {
			d.Duration = domain.MinutesBetween(v.Departure, v.Delivery)
		}
		applied = true
	}
	return applied
}
