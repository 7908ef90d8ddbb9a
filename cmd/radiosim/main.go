// Command radiosim wires a simulated tuner, a chosen demodulation mode,
// and a dummy audio sink together and runs one block through the
// resulting pipeline, printing the recovered SNR and stereo flag — a
// runnable instance of spec.md §8's concrete end-to-end scenarios
// (SPEC_FULL.md §14), not a new product feature. Flag parsing follows
// the pflag style of doismellburning-samoyed's appserver/atest commands.
package main

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"hz.tools/radio"
	"hz.tools/radio/controller"
	"hz.tools/radio/region"
	"hz.tools/radio/source"
	"hz.tools/rf"
)

// printingSink is a dummy sink.Sink (spec §6.2): it does not play audio
// anywhere, it only records the last block it was handed so main can
// report on it.
type printingSink struct {
	rate      float64
	volume    float64
	lastLeft  []float64
	lastRight []float64
}

func (s *printingSink) SampleRate() float64 { return s.rate }
func (s *printingSink) Play(left, right []float64) error {
	s.lastLeft = left
	s.lastRight = right
	return nil
}
func (s *printingSink) SetVolume(v float64) { s.volume = v }
func (s *printingSink) Volume() float64     { return s.volume }

// toneGenerator synthesizes an unmodulated or FM/AM-style tone depending
// on the scheme, centred at the tuned frequency, used as the simulated
// source's Generator for every mode this command supports.
func toneGenerator(scheme radio.Scheme, toneHz, deviationHz float64) source.Generator {
	return func(centre rf.Hz, sampleRate float64, n int, startSample int64) (i, q []float64) {
		i = make([]float64, n)
		q = make([]float64, n)
		switch scheme {
		case radio.WBFM, radio.NBFM:
			phase := 0.0
			for k := 0; k < n; k++ {
				t := float64(startSample+int64(k)) / sampleRate
				freq := deviationHz * math.Sin(2*math.Pi*toneHz*t)
				phase += 2 * math.Pi * freq / sampleRate
				i[k] = math.Cos(phase)
				q[k] = math.Sin(phase)
			}
		case radio.AM:
			for k := 0; k < n; k++ {
				t := float64(startSample+int64(k)) / sampleRate
				mod := 1 + math.Sin(2*math.Pi*toneHz*t)
				i[k] = mod
				q[k] = 0
			}
		default: // USB, LSB, CW
			for k := 0; k < n; k++ {
				t := float64(startSample+int64(k)) / sampleRate
				angle := 2 * math.Pi * toneHz * t
				i[k] = math.Cos(angle)
				q[k] = math.Sin(angle)
			}
		}
		return i, q
	}
}

func buildMode(scheme string, bandwidth, deviation float64, stereo bool, squelch int) (radio.Mode, error) {
	switch scheme {
	case "wbfm":
		return radio.NewWBFM(stereo), nil
	case "nbfm":
		return radio.NewNBFM(rf.Hz(deviation), squelch), nil
	case "am":
		return radio.NewAM(rf.Hz(bandwidth), squelch), nil
	case "usb":
		return radio.NewUSB(rf.Hz(bandwidth), squelch), nil
	case "lsb":
		return radio.NewLSB(rf.Hz(bandwidth), squelch), nil
	case "cw":
		return radio.NewCW(rf.Hz(bandwidth), 0), nil
	default:
		return radio.Mode{}, fmt.Errorf("radiosim: unknown scheme %q", scheme)
	}
}

func schemeOf(s string) radio.Scheme {
	switch s {
	case "nbfm":
		return radio.NBFM
	case "am":
		return radio.AM
	case "usb":
		return radio.USB
	case "lsb":
		return radio.LSB
	case "cw":
		return radio.CW
	default:
		return radio.WBFM
	}
}

func main() {
	var (
		scheme     = pflag.String("mode", "wbfm", "demodulation scheme: wbfm, nbfm, am, usb, lsb, cw")
		inRate     = pflag.Float64("rate", 1_024_000, "simulated tuner sample rate, Hz")
		outRate    = pflag.Float64("out-rate", 48000, "audio sample rate, Hz")
		centre     = pflag.Float64("centre", 93_900_000, "tuned centre frequency, Hz")
		tone       = pflag.Float64("tone", 1000, "audio tone frequency to synthesize, Hz")
		deviation  = pflag.Float64("deviation", 75000, "FM deviation, Hz (wbfm/nbfm only)")
		bandwidth  = pflag.Float64("bandwidth", 15000, "mode bandwidth, Hz (am/usb/lsb/cw)")
		squelch    = pflag.Int("squelch", 0, "squelch level, 0-6")
		stereo     = pflag.Bool("stereo", false, "enable WBFM stereo decoding")
		regionName = pflag.String("region", "world", "de-emphasis region preset: "+fmt.Sprint(region.Names()))
		blockLen   = pflag.Int("block", 65536, "samples per block read from the simulated tuner")
	)
	pflag.Parse()

	mode, err := buildMode(*scheme, *bandwidth, *deviation, *stereo, *squelch)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	preset, _ := region.Lookup(*regionName)

	gen := toneGenerator(schemeOf(*scheme), *tone, *deviation)
	tuner := source.NewSimulated(gen, rf.Hz(*inRate), rf.Hz(*centre))
	adapter := source.NewAdapter(tuner, 4)

	snk := &printingSink{rate: *outRate}

	ctl, err := controller.New(controller.Config{
		InRate: rf.Hz(*inRate),
		Mode:   mode,
		Sink:   snk,
		Region: preset,
		Logger: log.Default(),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	stereoFound := false
	ctl.OnStereoStatus(func(stereo bool) { stereoFound = stereo })

	ctx := context.Background()
	f, err := adapter.ReadBlock(ctx, *blockLen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := ctl.Receive(f); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("mode=%s samples=%d stereo=%v snr=%.3f\n",
		mode.Scheme, len(snk.lastLeft), stereoFound, ctl.LastSNR())
}
