//go:build wcdebug

// Package assert provides per-sample contract checks that are compiled in
// only with the wcdebug build tag.
package assert

import (
	"fmt"
	"math"
)

// Enabled reports whether checks panic.
const Enabled = true

// Finite panics if v is NaN or infinite.
func Finite(name string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		panic(fmt.Sprintf("%s is not finite: %v", name, v))
	}
}
