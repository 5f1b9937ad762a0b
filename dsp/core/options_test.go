package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(96000), WithBlockSize(2048), nil)
	assert.InDelta(t, 96000.0, cfg.SampleRate, 0)
	assert.Equal(t, 2048, cfg.BlockSize)
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(0), WithBlockSize(-1))
	assert.Equal(t, DefaultProcessorConfig(), cfg)
}

func TestBlocks(t *testing.T) {
	cfg := ApplyProcessorOptions(WithBlockSize(4))

	var spans [][2]int
	cfg.Blocks(10, func(start, end int) {
		spans = append(spans, [2]int{start, end})
	})

	assert.Equal(t, [][2]int{{0, 4}, {4, 8}, {8, 10}}, spans)
}
