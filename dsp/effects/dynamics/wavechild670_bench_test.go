package dynamics

import (
	"io"
	"math"
	"testing"

	"github.com/sirupsen/logrus"
)

func BenchmarkWavechild670Process(b *testing.B) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	w, err := NewWavechild670(48000, DefaultParameters(), WithLogger(logger))
	if err != nil {
		b.Fatal(err)
	}

	buf := make([]float64, 2*512)
	for i := range 512 {
		x := 0.5 * math.Sin(2*math.Pi*1000*float64(i)/48000)
		buf[2*i], buf[2*i+1] = x, x
	}

	out := make([]float64, len(buf))

	b.ReportAllocs()
	b.SetBytes(int64(len(buf) * 8))
	b.ResetTimer()

	for range b.N {
		err := w.Process(buf, out)
		if err != nil {
			b.Fatal(err)
		}
	}
}
