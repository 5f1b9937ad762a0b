package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clamp(tt.value, tt.min, tt.max))
		})
	}
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(0))
	assert.True(t, IsFinite(-1e308))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(1)))
	assert.False(t, IsFinite(math.Inf(-1)))
}

func TestNearlyEqual(t *testing.T) {
	assert.True(t, NearlyEqual(1.0, 1.0+1e-13, 1e-12))
	assert.True(t, NearlyEqual(1e6, 1e6+1e-7, 1e-12))
	assert.False(t, NearlyEqual(1.0, 1.1, 1e-3))
	assert.True(t, NearlyEqual(0, 1e-13, 0))
}

func TestDBConversions(t *testing.T) {
	assert.InDelta(t, -6.0, LinearToDB(DBToLinear(-6)), 1e-10)
	assert.True(t, math.IsInf(LinearToDB(0), -1))
	assert.True(t, math.IsNaN(LinearToDB(-1)))

	assert.InDelta(t, 3.0103, LinearPowerToDB(2), 1e-4)
	assert.True(t, math.IsInf(LinearPowerToDB(0), -1))
	assert.True(t, math.IsNaN(LinearPowerToDB(-1)))
}

func TestGainDB(t *testing.T) {
	assert.InDelta(t, 6.0206, GainDB(2, 1), 1e-4)
	assert.InDelta(t, -6.0206, GainDB(-0.5, 1), 1e-4)
	assert.Zero(t, GainDB(0, 0))
	assert.True(t, math.IsInf(GainDB(1, 0), 1))
}
