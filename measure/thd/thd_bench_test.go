package thd

import (
	"strconv"
	"testing"
)

func BenchmarkAnalyzeSignal(b *testing.B) {
	for _, n := range []int{1024, 4096, 16384} {
		b.Run("n_"+strconv.Itoa(n), func(b *testing.B) {
			signal := sine(n, 48000, map[int]float64{1: 0.5, 2: 0.01, 3: 0.005}, 1000)
			cfg := Config{SampleRate: 48000, FundamentalFreq: 1000}

			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				_, _ = AnalyzeSignal(signal, cfg)
			}
		})
	}
}
