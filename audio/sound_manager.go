// Package audio synthesises the game's sound effects and plays them through the speaker
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/divide-conquer/constants"
	"github.com/lixenwraith/divide-conquer/game"
	"github.com/lixenwraith/divide-conquer/vmath"
)

const sampleRate = beep.SampleRate(constants.SampleRate)

// SoundManager plays effects through a shared mixer
// Every method is safe before Initialize and after Cleanup; calls then do nothing
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	volume      float64
	lastPlayed  [soundTypeCount]time.Time
	now         func() time.Time
}

// NewSoundManager creates a manager at volume in [0, 1]
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: vmath.Clamp(volume, 0, 1),
		now:    time.Now,
	}
}

// Initialize opens the speaker; failure leaves the manager silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(constants.SpeakerBuffer)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup drops queued effects and stops playback
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker Close; an empty mixer produces silence
	sm.initialized = false
}

// SetMuted silences or restores effects
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
}

// ToggleMute flips mute and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	return sm.muted
}

func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

func (sm *SoundManager) Volume() float64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.volume
}

// allow applies the per-effect gap so bursts of identical events play once; caller holds mu
func (sm *SoundManager) allow(t SoundType, now time.Time) bool {
	if t < 0 || t >= soundTypeCount {
		return false
	}
	if last := sm.lastPlayed[t]; !last.IsZero() && now.Sub(last) < constants.MinSoundGap {
		return false
	}
	sm.lastPlayed[t] = now
	return true
}

// Play queues an effect; reports whether it was queued
func (sm *SoundManager) Play(t SoundType) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted || sm.volume <= 0 {
		return false
	}
	if !sm.allow(t, sm.now()) {
		return false
	}

	s := Effect(t, sampleRate, sm.volume)
	if s == nil {
		return false
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	return true
}

func (sm *SoundManager) PlayLineStart()     { sm.Play(SoundLineStart) }
func (sm *SoundManager) PlayLineHit()       { sm.Play(SoundLineHit) }
func (sm *SoundManager) PlaySplit()         { sm.Play(SoundSplit) }
func (sm *SoundManager) PlayLevelComplete() { sm.Play(SoundLevelComplete) }
func (sm *SoundManager) PlayGameOver()      { sm.Play(SoundGameOver) }

// HandleEvent maps session events to effects; registered as a game.EventSink
func (sm *SoundManager) HandleEvent(ev game.Event) {
	switch ev.Type {
	case game.EventLineStart:
		sm.PlayLineStart()
	case game.EventLineHit:
		sm.PlayLineHit()
	case game.EventSplit:
		sm.PlaySplit()
	case game.EventLevelComplete:
		sm.PlayLevelComplete()
	case game.EventGameOver:
		sm.PlayGameOver()
	}
}
