package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Sound timings
const (
	TickDuration  = 12 * time.Millisecond
	TickAttack    = 1 * time.Millisecond
	TickRelease   = 10 * time.Millisecond
	ChimeDuration = 600 * time.Millisecond
	ChimeAttack   = 5 * time.Millisecond
	ChimeRelease  = 550 * time.Millisecond
	ChimeGap      = 250 * time.Millisecond
)

const (
	tickFrequency  = 2000.0
	chimeFrequency = 659.25 // E5
	chimeOvertone  = 1318.5 // E6
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates an oscillator lasting duration
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with an attack ramp and a release tail within duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero or less is silent
// math.Log2(0) is -Inf, so silence is flagged instead of computed
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateTickSound generates a short high click
func CreateTickSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewOscillator(tickFrequency, TickDuration, WaveSquare, rate)
	shaped := NewEnvelope(osc, TickDuration, TickAttack, TickRelease, rate)

	return newVolume(shaped, cfg.Volume*0.3)
}

// CreateChimeSound generates count bell strikes separated by ChimeGap
func CreateChimeSound(cfg *AudioConfig, count int) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	strikes := make([]beep.Streamer, 0, 2*count)
	for i := 0; i < count; i++ {
		fund := NewEnvelope(NewOscillator(chimeFrequency, ChimeDuration, WaveSine, rate),
			ChimeDuration, ChimeAttack, ChimeRelease, rate)
		over := NewEnvelope(NewOscillator(chimeOvertone, ChimeDuration, WaveSine, rate),
			ChimeDuration, ChimeAttack, ChimeRelease/2, rate)

		if i > 0 {
			strikes = append(strikes, beep.Silence(rate.N(ChimeGap)))
		}
		strikes = append(strikes, beep.Mix(newVolume(fund, 0.7), newVolume(over, 0.3)))
	}

	return newVolume(beep.Seq(strikes...), cfg.Volume)
}
