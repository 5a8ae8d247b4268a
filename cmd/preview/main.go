// Command preview renders a short demo pulse schedule at audio-rate
// parameters and plays the resulting I channel, so a developer can listen
// to a rendered pulse shape instead of reading raw sample arrays. It is a
// debugging aid over toy audio-rate numbers, not RF up-conversion: the
// core never assumes any particular fs/f0 unit.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/kbergen/pulseforge"
	intaudio "github.com/kbergen/pulseforge/internal/audio"
	"github.com/kbergen/pulseforge/internal/schedule"
)

func main() {
	var (
		sampleRate = flag.Float64("sample-rate", 48000, "audio-rate sample rate, Hz")
		tone       = flag.Float64("tone", 440, "carrier frequency, Hz")
		pulseWidth = flag.Float64("width", 0.05, "pulse rise/fall width, seconds")
		plateau    = flag.Float64("plateau", 0.2, "pulse plateau duration, seconds")
		gap        = flag.Float64("gap", 0.1, "spacing between repeated pulses, seconds")
		count      = flag.Int("count", 4, "number of repeated pulses")
	)
	flag.Parse()

	req, err := demoRequest(*sampleRate, *tone, *pulseWidth, *plateau, *gap, *count)
	if err != nil {
		log.Fatal(err)
	}

	out, err := pulseforge.Run(req)
	if err != nil {
		log.Fatal(err)
	}
	wf := out["preview"]

	src := &waveSource{samples: wf.I}
	pl, err := intaudio.NewPlayer(int(*sampleRate), src)
	if err != nil {
		log.Fatal(err)
	}
	pl.Play()

	for pl.IsPlaying() {
		time.Sleep(50 * time.Millisecond)
	}
}

// demoRequest builds a single channel with a Hann-shaped pulse repeated
// count times, spaced gap apart, at audio-rate parameters so the rendered
// I channel is directly audible.
func demoRequest(sampleRate, f0, width, plateau, gap float64, count int) (pulseforge.Request, error) {
	n := int((width+plateau+gap)*float64(count)*sampleRate) + int(sampleRate/10)
	ch := pulseforge.Channel{Name: "preview", F0: f0, SampleRate: sampleRate, N: n}

	play, err := schedule.NewPlay(0, 0, width, plateau, 0, 0, 1, 0, false)
	if err != nil {
		return pulseforge.Request{}, err
	}
	rep, err := schedule.NewRepeat(play, count, gap)
	if err != nil {
		return pulseforge.Request{}, err
	}

	return pulseforge.Request{
		Channels: []pulseforge.Channel{ch},
		Shapes:   []pulseforge.Shape{{Kind: pulseforge.Hann}},
		Root:     rep,
		Options:  pulseforge.DefaultOptions(),
	}, nil
}

// waveSource adapts a pre-rendered sample slice to audio.SampleSource,
// playing it once through in mono (duplicated to both stereo channels)
// and reporting Finished once exhausted.
type waveSource struct {
	samples []float64
	pos     int
}

func (w *waveSource) Process(dst []float32) {
	frames := len(dst) / 2
	for i := 0; i < frames; i++ {
		var v float32
		if w.pos < len(w.samples) {
			v = float32(w.samples[w.pos])
			w.pos++
		}
		dst[i*2] = v
		dst[i*2+1] = v
	}
}

func (w *waveSource) Finished() bool { return w.pos >= len(w.samples) }
