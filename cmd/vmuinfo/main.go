// Command vmuinfo prints the static behaviour of the Wavechild670
// emulation and its time-constant presets.
//
// Usage:
//
//	vmuinfo [flags]
//
// For every input level a tone is run through a warmed-up, linked
// processor. The settled half of the output is measured for level, gain,
// control voltage and harmonic distortion.
//
// Examples:
//
//	vmuinfo
//	vmuinfo -levels -30,-20,-10,0 -dc 1 -ac 2
//	vmuinfo -feedforward -preset 4 -freq 440
//	vmuinfo -presets
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/wavechild670/dsp/circuit"
	"github.com/cwbudde/wavechild670/dsp/core"
	"github.com/cwbudde/wavechild670/dsp/effects/dynamics"
	"github.com/cwbudde/wavechild670/dsp/signal"
	"github.com/cwbudde/wavechild670/measure/thd"
	timestats "github.com/cwbudde/wavechild670/stats/time"
)

const settleSeconds = 1.0

var errNoLevels = errors.New("vmuinfo: no input levels")

type options struct {
	sampleRate  float64
	freq        float64
	preset      int
	ac          float64
	dc          float64
	feedforward bool
	levels      []float64
}

type curvePoint struct {
	inputDB    float64
	outputDB   float64
	gainDB     float64
	envelope   float64
	thdPercent float64
	crestDB    float64
	outputPeak float64
}

func main() {
	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	freq := flag.Float64("freq", 1000, "test tone frequency in Hz")
	preset := flag.Int("preset", 1, "time constant preset (1-6)")
	ac := flag.Float64("ac", dynamics.DefaultParameters().ACThresholdA, "AC threshold (sidechain gain scale)")
	dc := flag.Float64("dc", dynamics.DefaultParameters().DCThresholdA, "DC threshold (rectifier bias, volts)")
	feedforward := flag.Bool("feedforward", false, "use feedforward instead of feedback topology")
	levels := flag.String("levels", "-40,-30,-20,-12,-6,-3,0", "comma separated tone peak levels in dBFS")
	presets := flag.Bool("presets", false, "list time constant presets and exit")
	verbose := flag.Bool("v", false, "log processor activity to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: vmuinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the static curve of the Wavechild670 emulation.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  vmuinfo -levels -30,-20,-10,0\n")
		fmt.Fprintf(os.Stderr, "  vmuinfo -feedforward -preset 4\n")
		fmt.Fprintf(os.Stderr, "  vmuinfo -presets\n")
	}
	flag.Parse()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)

	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if *presets {
		err := printPresets(os.Stdout)
		if err != nil {
			logger.WithError(err).Fatal("Failed to print presets")
		}

		return
	}

	lv, err := parseLevels(*levels)
	if err != nil {
		logger.WithError(err).Fatal("Invalid levels")
	}

	opts := options{
		sampleRate:  *rate,
		freq:        *freq,
		preset:      *preset,
		ac:          *ac,
		dc:          *dc,
		feedforward: *feedforward,
		levels:      lv,
	}

	points, err := staticCurve(opts, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to measure static curve")
	}

	err = printCurve(os.Stdout, points)
	if err != nil {
		logger.WithError(err).Fatal("Failed to print static curve")
	}
}

func parseLevels(s string) ([]float64, error) {
	var out []float64

	for field := range strings.SplitSeq(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("vmuinfo: level %q: %w", field, err)
		}

		out = append(out, v)
	}

	if len(out) == 0 {
		return nil, errNoLevels
	}

	return out, nil
}

func (o options) parameters() dynamics.Parameters {
	p := dynamics.DefaultParameters()
	p.ACThresholdA, p.ACThresholdB = o.ac, o.ac
	p.DCThresholdA, p.DCThresholdB = o.dc, o.dc
	p.TimeConstantSelectA, p.TimeConstantSelectB = o.preset, o.preset
	p.SidechainLink = true

	if o.feedforward {
		p.Topology = dynamics.DynamicsTopologyFeedforward
	}

	return p
}

// staticCurve measures one point per input level on a fresh processor.
func staticCurve(o options, logger logrus.FieldLogger) ([]curvePoint, error) {
	if len(o.levels) == 0 {
		return nil, errNoLevels
	}

	gen := signal.NewGenerator(core.WithSampleRate(o.sampleRate), core.WithBlockSize(512))
	samples := int(settleSeconds * o.sampleRate)
	points := make([]curvePoint, 0, len(o.levels))

	for _, level := range o.levels {
		w, err := dynamics.NewWavechild670(o.sampleRate, o.parameters(), dynamics.WithLogger(logger))
		if err != nil {
			return nil, err
		}

		err = w.WarmUp(dynamics.DefaultWarmUpSeconds)
		if err != nil {
			return nil, err
		}

		tone, err := gen.Sine(o.freq, core.DBToLinear(level), samples)
		if err != nil {
			return nil, err
		}

		frames, err := signal.Interleave(tone, tone)
		if err != nil {
			return nil, err
		}

		out := make([]float64, len(frames))
		inStats := timestats.NewStreamingStats()
		outStats := timestats.NewStreamingStats()

		var procErr error

		tailStart := -1

		gen.Config().Blocks(samples, func(start, end int) {
			if procErr != nil {
				return
			}

			procErr = w.Process(frames[2*start:2*end], out[2*start:2*end])
			if procErr != nil || start < samples/2 {
				return
			}

			if tailStart < 0 {
				tailStart = start
			}

			left, _, err := signal.Deinterleave(out[2*start : 2*end])
			if err != nil {
				procErr = err
				return
			}

			inStats.Update(tone[start:end])
			outStats.Update(left)
		})

		if procErr != nil {
			return nil, procErr
		}

		if tailStart < 0 {
			return nil, fmt.Errorf("vmuinfo: sample rate too low to measure: %f", o.sampleRate)
		}

		left, _, err := signal.Deinterleave(out[2*tailStart:])
		if err != nil {
			return nil, err
		}

		dist, err := thd.AnalyzeSignal(left, thd.Config{SampleRate: o.sampleRate, FundamentalFreq: o.freq})
		if err != nil {
			return nil, err
		}

		in, res := inStats.Result(), outStats.Result()
		envelope, _ := w.LevelCapVoltages()

		points = append(points, curvePoint{
			inputDB:    in.RMS_dB,
			outputDB:   res.RMS_dB,
			gainDB:     core.GainDB(res.RMS, in.RMS),
			envelope:   envelope,
			thdPercent: 100 * dist.THD,
			crestDB:    res.CrestFactor_dB,
			outputPeak: w.Metrics().OutputPeak,
		})
	}

	return points, nil
}

func printCurve(out io.Writer, points []curvePoint) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	_, err := fmt.Fprintf(tw, "In RMS [dB]\tOut RMS [dB]\tGain [dB]\tEnvelope [V]\tTHD [%%]\tCrest [dB]\tOut Peak\n")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(tw, "-----------\t------------\t---------\t------------\t-------\t----------\t--------\n")
	if err != nil {
		return err
	}

	for _, p := range points {
		_, err = fmt.Fprintf(tw, "%.2f\t%.2f\t%.2f\t%.3f\t%.3f\t%.2f\t%.4f\n",
			p.inputDB,
			p.outputDB,
			p.gainDB,
			p.envelope,
			p.thdPercent,
			p.crestDB,
			p.outputPeak,
		)
		if err != nil {
			return err
		}
	}

	return tw.Flush()
}

func printPresets(out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	_, err := fmt.Fprintf(tw, "Preset\tC1 [uF]\tR1 [kOhm]\tC2 [uF]\tR2 [kOhm]\tC3 [uF]\tR3 [kOhm]\tRelease [s]\n")
	if err != nil {
		return err
	}

	for n := 1; n <= circuit.NumTimeConstantPresets; n++ {
		c, err := circuit.TimeConstantPreset(n)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(tw, "%d\t%.1f\t%.0f\t%.1f\t%.0f\t%.1f\t%.0f\t%.3f\n",
			n,
			c.C1*1e6, c.R1/1e3,
			c.C2*1e6, c.R2/1e3,
			c.C3*1e6, c.R3/1e3,
			c.ReleaseTime(),
		)
		if err != nil {
			return err
		}
	}

	return tw.Flush()
}
