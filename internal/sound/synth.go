package sound

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave selects an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length tone.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     Wave
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator returns a streamer producing duration worth of the given wave.
func NewOscillator(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + int64(duration))),
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
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
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

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s with a linear attack and release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.total - e.release

	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.release > 0 && e.position >= releaseStart {
			vol = math.Max(float64(e.total-e.position)/float64(e.release), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is a shaped oscillator with short fades to avoid clicks.
func tone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	fade := d / 8
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, fade, fade*2, rate)
}

// Sound effects, one per game event.

func shootSound(rate beep.SampleRate) beep.Streamer {
	return newVolume(tone(880, 40*time.Millisecond, WaveSquare, rate), 0.3)
}

func damageSound(rate beep.SampleRate) beep.Streamer {
	return newVolume(tone(220, 80*time.Millisecond, WaveSaw, rate), 0.4)
}

func killSound(rate beep.SampleRate) beep.Streamer {
	return beep.Mix(
		newVolume(tone(0, 200*time.Millisecond, WaveNoise, rate), 0.35),
		newVolume(tone(90, 200*time.Millisecond, WaveSine, rate), 0.5),
	)
}

func playerHitSound(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		newVolume(tone(196, 150*time.Millisecond, WaveSaw, rate), 0.5),
		newVolume(tone(147, 150*time.Millisecond, WaveSaw, rate), 0.5),
		newVolume(tone(98, 300*time.Millisecond, WaveSaw, rate), 0.5),
	)
}

func levelClearedSound(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		newVolume(tone(659.25, 100*time.Millisecond, WaveSquare, rate), 0.3),
		newVolume(tone(987.77, 200*time.Millisecond, WaveSquare, rate), 0.3),
	)
}

func gameWonSound(rate beep.SampleRate) beep.Streamer {
	notes := []float64{523.25, 659.25, 783.99, 1046.50}
	seq := make([]beep.Streamer, 0, len(notes))
	for i, f := range notes {
		d := 120 * time.Millisecond
		if i == len(notes)-1 {
			d = 400 * time.Millisecond
		}
		seq = append(seq, newVolume(tone(f, d, WaveSine, rate), 0.5))
	}
	return beep.Seq(seq...)
}
