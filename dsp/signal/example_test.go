package signal_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/wavechild670/dsp/core"
	"github.com/cwbudde/wavechild670/dsp/signal"
)

func ExampleGenerator_Sine() {
	g := signal.NewGenerator(core.WithSampleRate(1000))
	x, err := g.Sine(250, 1, 5)
	if err != nil {
		panic(err)
	}
	if math.Abs(x[4]) < 1e-12 {
		x[4] = 0
	}

	fmt.Printf("%.0f %.0f %.0f %.0f %.0f\n", x[0], x[1], x[2], x[3], x[4])

	// Output:
	// 0 1 0 -1 0
}

func ExampleInterleave() {
	frames, err := signal.Interleave([]float64{1, 2}, []float64{3, 4})
	if err != nil {
		panic(err)
	}

	fmt.Println(frames)

	// Output:
	// [1 3 2 4]
}
