package main

import (
	"bytes"
	"strings"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevels(t *testing.T) {
	lv, err := parseLevels(" -20, -6 ,0,")
	require.NoError(t, err)
	assert.Equal(t, []float64{-20, -6, 0}, lv)

	_, err = parseLevels("")
	require.ErrorIs(t, err, errNoLevels)

	_, err = parseLevels("-6,loud")
	require.Error(t, err)
}

func TestStaticCurveCompressesLoudInput(t *testing.T) {
	logger, _ := logtest.NewNullLogger()

	points, err := staticCurve(options{
		sampleRate: 48000,
		freq:       1000,
		preset:     1,
		ac:         0.5,
		dc:         2,
		levels:     []float64{-40, 0},
	}, logger)
	require.NoError(t, err)
	require.Len(t, points, 2)

	quiet, loud := points[0], points[1]

	assert.Greater(t, quiet.gainDB, loud.gainDB)
	assert.Greater(t, loud.envelope, quiet.envelope)
	assert.GreaterOrEqual(t, loud.thdPercent, 0.0)
	assert.Positive(t, loud.outputPeak)

	var buf bytes.Buffer

	require.NoError(t, printCurve(&buf, points))
	assert.Equal(t, 4, strings.Count(buf.String(), "\n"))
}

func TestStaticCurveRejectsBadOptions(t *testing.T) {
	logger, _ := logtest.NewNullLogger()

	_, err := staticCurve(options{sampleRate: 48000, freq: 1000, preset: 1}, logger)
	require.ErrorIs(t, err, errNoLevels)

	_, err = staticCurve(options{sampleRate: 48000, freq: 1000, preset: 9, levels: []float64{0}}, logger)
	require.Error(t, err)
}

func TestPrintPresets(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, printPresets(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[1], "1 "))
	assert.Contains(t, lines[1], "0.300")
}
