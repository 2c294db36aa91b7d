// Package geo carries the map-side location math: haversine distance, the
// recentring threshold that keeps low-precision fixes from jittering the
// view, and the marker styling rules for location suggestions.
package geo

import (
	"math"
	"sync"
)

// DefaultCenter is the fallback map center (São Paulo) used when no user
// fix is available.
var DefaultCenter = Point{Lat: -23.5505, Lng: -46.6333}

// RecenterThresholdMeters is the minimum displacement between two fixes
// before the map view follows the user marker.
const RecenterThresholdMeters = 50.0

const earthRadiusMeters = 6371e3

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Haversine returns the great-circle distance between two points in meters.
func Haversine(a, b Point) float64 {
	phi1 := a.Lat * math.Pi / 180
	phi2 := b.Lat * math.Pi / 180
	dPhi := (b.Lat - a.Lat) * math.Pi / 180
	dLambda := (b.Lng - a.Lng) * math.Pi / 180

	s := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(s), math.Sqrt(1-s))

	return earthRadiusMeters * c
}

// ShouldRecenter reports whether the view should follow a new fix given the
// previously rendered position.
func ShouldRecenter(prev, next Point) bool {
	return Haversine(prev, next) > RecenterThresholdMeters
}

// Tracker holds the last rendered user position and decides, fix by fix,
// whether the consuming view should recenter. The last received fix wins;
// once Stop is called, late fixes are discarded.
type Tracker struct {
	mu      sync.Mutex
	has     bool
	last    Point
	stopped bool
}

// Observe records a fix and reports whether the view should recenter on it.
// The first fix always recenters.
func (t *Tracker) Observe(p Point) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return false
	}
	if !t.has {
		t.has = true
		t.last = p
		return true
	}
	if ShouldRecenter(t.last, p) {
		t.last = p
		return true
	}
	t.last = p
	return false
}

// Stop ties the tracker to the consuming view's teardown: any fix arriving
// afterwards is dropped.
func (t *Tracker) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
}

// Current returns the last observed fix, or the default center before any
// fix arrived.
func (t *Tracker) Current() Point {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.has {
		return DefaultCenter
	}
	return t.last
}
