package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveModifiersStable(t *testing.T) {
	first := DeriveModifiers("Test Driver")

	for i := 0; i < 1000; i++ {
		assert.Equal(t, first, DeriveModifiers("Test Driver"))
	}
}

func TestDeriveModifiersRanges(t *testing.T) {
	names := []string{
		"", "Test Driver", "Lewis Hamilton", "Max Verstappen",
		"Fernando Alonso", "Charles Leclerc", "日本語の名前", "a",
	}

	for _, name := range names {
		mods := DeriveModifiers(name)

		assert.GreaterOrEqual(t, mods.DriverSeed, 0, "seed for %q", name)
		assert.LessOrEqual(t, mods.DriverSeed, 999, "seed for %q", name)
		assert.GreaterOrEqual(t, mods.Performance, -10, "performance for %q", name)
		assert.LessOrEqual(t, mods.Performance, 9, "performance for %q", name)
		assert.GreaterOrEqual(t, mods.Consistency, 1, "consistency for %q", name)
		assert.LessOrEqual(t, mods.Consistency, 5, "consistency for %q", name)

		assert.Equal(t, float64(mods.Performance)*1.5, mods.Speed)
		assert.Equal(t, float64(mods.Performance)*0.15, mods.LapTime)
	}
}

func TestDriverSeedCaseSensitive(t *testing.T) {
	// Seeding treats the name as-is; normalization is the caller's concern.
	a := DriverSeed("lewis hamilton")
	b := DriverSeed("Lewis Hamilton")
	assert.NotEqual(t, a, b)
}
