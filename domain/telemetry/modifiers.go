package telemetry

import "hash/fnv"

// ModifierSet is the bundle of per-driver numeric biases that make generated
// telemetry differ consistently between drivers. It is derived once per
// driver name and is immutable for the duration of a generation call.
type ModifierSet struct {
	// DriverSeed is a stable integer in [0, 999] derived from the driver
	// name. Two different names may share a seed; the mapping is a
	// repeatable low-cardinality partition, not a cryptographic hash.
	DriverSeed int `json:"driver_seed"`

	// Performance is in [-10, 9]. Positive means a faster driver.
	Performance int `json:"performance_modifier"`

	// Speed and LapTime are scaled projections of Performance.
	Speed   float64 `json:"speed_modifier"`
	LapTime float64 `json:"lap_time_modifier"`

	// Consistency is in [1, 5]. Higher values damp per-lap noise.
	Consistency int `json:"consistency_modifier"`
}

// DriverSeed maps a driver name to a stable seed in [0, 999] using FNV-1a
// over the name's UTF-8 bytes. Unlike a language built-in string hash, the
// mapping is identical across runs, processes and implementations.
func DriverSeed(driverName string) int {
	h := fnv.New32a()
	h.Write([]byte(driverName))
	return int(h.Sum32() % 1000)
}

// DeriveModifiers computes the ModifierSet for a driver name. It accepts any
// string, including the empty string, and never fails. The name is used
// as given; case normalization is the caller's concern.
func DeriveModifiers(driverName string) ModifierSet {
	seed := DriverSeed(driverName)
	performance := (seed % 20) - 10

	return ModifierSet{
		DriverSeed:  seed,
		Performance: performance,
		Speed:       float64(performance) * 1.5,
		LapTime:     float64(performance) * 0.15,
		Consistency: (seed % 5) + 1,
	}
}
