package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/divide-conquer/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
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

// NewOscillator creates a wave generator that drains after duration
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
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
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

// NewEnvelope shapes s over duration with the given attack and release ramps
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	rel := min(rate.N(release), total-att)
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	if left := e.totalSamples - e.position; len(samples) > left {
		samples = samples[:left]
	}

	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		} else if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain; math.Log2(0) is -Inf so zero maps to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is one shaped oscillator note
func tone(freq float64, d time.Duration, wave WaveType, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, constants.SoundAttack, release, rate)
}

// CreateLineStartSound is a short rising blip
func CreateLineStartSound(rate beep.SampleRate) beep.Streamer {
	half := constants.LineStartSoundDuration / 2
	return beep.Seq(
		tone(660, half, WaveSine, 0, rate),
		tone(990, half, WaveSine, constants.SoundRelease, rate),
	)
}

// CreateLineHitSound is a low harsh buzz
func CreateLineHitSound(rate beep.SampleRate) beep.Streamer {
	return tone(110, constants.LineHitSoundDuration, WaveSaw, constants.SoundRelease, rate)
}

// CreateSplitSound is a two-note chime with a noise tick on top
func CreateSplitSound(rate beep.SampleRate) beep.Streamer {
	half := constants.SplitSoundDuration / 2
	chime := beep.Seq(
		tone(523.25, half, WaveSquare, constants.SoundRelease, rate),
		tone(783.99, half, WaveSquare, constants.SoundRelease, rate),
	)
	tick := newVolume(tone(0, constants.SoundRelease, WaveNoise, constants.SoundRelease, rate), 0.3)
	return beep.Mix(newVolume(chime, 0.7), tick)
}

// CreateLevelCompleteSound is a rising major arpeggio
func CreateLevelCompleteSound(rate beep.SampleRate) beep.Streamer {
	step := constants.LevelCompleteSoundDuration / 4
	return beep.Seq(
		tone(523.25, step, WaveSquare, constants.SoundRelease, rate),
		tone(659.25, step, WaveSquare, constants.SoundRelease, rate),
		tone(783.99, step, WaveSquare, constants.SoundRelease, rate),
		tone(1046.5, step, WaveSine, constants.SoundLongRelease, rate),
	)
}

// CreateGameOverSound is a falling minor line
func CreateGameOverSound(rate beep.SampleRate) beep.Streamer {
	step := constants.GameOverSoundDuration / 3
	return beep.Seq(
		tone(392, step, WaveSaw, constants.SoundRelease, rate),
		tone(311.13, step, WaveSaw, constants.SoundRelease, rate),
		tone(196, step, WaveSaw, constants.SoundLongRelease, rate),
	)
}

// Effect returns the streamer for t at volume in [0, 1], nil for an unknown type
func Effect(t SoundType, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch t {
	case SoundLineStart:
		s = CreateLineStartSound(rate)
	case SoundLineHit:
		s = CreateLineHitSound(rate)
	case SoundSplit:
		s = CreateSplitSound(rate)
	case SoundLevelComplete:
		s = CreateLevelCompleteSound(rate)
	case SoundGameOver:
		s = CreateGameOverSound(rate)
	default:
		return nil
	}
	return newVolume(s, volume*constants.EffectVolumeScale)
}
