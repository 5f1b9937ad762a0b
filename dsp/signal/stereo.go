package signal

import "fmt"

// Interleave joins two channels into L/R frames.
func Interleave(left, right []float64) ([]float64, error) {
	if len(left) != len(right) {
		return nil, fmt.Errorf("interleave channel lengths differ: %d vs %d", len(left), len(right))
	}

	out := make([]float64, 2*len(left))
	for i := range left {
		out[2*i] = left[i]
		out[2*i+1] = right[i]
	}

	return out, nil
}

// Deinterleave splits L/R frames into two channels.
func Deinterleave(frames []float64) (left, right []float64, err error) {
	if len(frames)%2 != 0 {
		return nil, nil, fmt.Errorf("deinterleave needs an even length: %d", len(frames))
	}

	n := len(frames) / 2
	left = make([]float64, n)
	right = make([]float64, n)

	for i := range n {
		left[i] = frames[2*i]
		right[i] = frames[2*i+1]
	}

	return left, right, nil
}
