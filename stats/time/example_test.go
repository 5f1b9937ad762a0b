package time_test

import (
	"fmt"

	timestats "github.com/cwbudde/wavechild670/stats/time"
)

func ExampleCalculate() {
	s := timestats.Calculate([]float64{1, -1, 1, -1})
	fmt.Printf("rms=%.1f zc=%d slew=%.1f\n", s.RMS, s.ZeroCrossings, s.MaxSlew)

	// Output:
	// rms=1.0 zc=3 slew=2.0
}

func ExampleStreamingStats() {
	s := timestats.NewStreamingStats()
	s.Update([]float64{1, -1})
	s.Update([]float64{1, -1})
	m := s.Result()
	fmt.Printf("len=%d dc=%.1f zc=%d\n", m.Length, m.DC, m.ZeroCrossings)

	// Output:
	// len=4 dc=0.0 zc=3
}
