package config

import "time"

const (
	WindowWidth  = 1280
	WindowHeight = 720

	// Live capture stream rate.
	StreamFPS = 60

	// Encoder hint passed to video sinks.
	VideoBitsPerSecond = 12_000_000

	DefaultLoopSeconds = 4.0

	// Particle depth range
	ZMax      = 3000.0
	NearPlane = 10.0

	// Upper bound on generated particles, whatever the config asks for
	MaxStarCount = 20000

	// Fixed stop count bounds
	MinStops = 2
	MaxStops = 5

	// Grain slider range
	MaxGrain = 0.5

	// Stop colour appended by AddStop
	NewStopColor = "#ffffff"
)

// loopDuration converts seconds to a duration, substituting the default for
// non-positive input so a zero from a bad edit never divides the phase by 0.
func loopDuration(seconds float64) time.Duration {
	if seconds <= 0 {
		seconds = DefaultLoopSeconds
	}
	return time.Duration(seconds * float64(time.Second))
}
