package constants

import "time"

// Audio Output
const (
	// SampleRate is the speaker sample rate
	SampleRate = 48000

	// SpeakerBuffer is the speaker buffer duration
	SpeakerBuffer = 100 * time.Millisecond

	// MinSoundGap is the minimum gap between two plays of the same effect
	MinSoundGap = 50 * time.Millisecond
)

// Effect Durations
const (
	LineStartSoundDuration     = 80 * time.Millisecond
	LineHitSoundDuration       = 150 * time.Millisecond
	SplitSoundDuration         = 250 * time.Millisecond
	LevelCompleteSoundDuration = 600 * time.Millisecond
	GameOverSoundDuration      = 900 * time.Millisecond
)

// Effect Shaping
const (
	SoundAttack       = 5 * time.Millisecond
	SoundRelease      = 40 * time.Millisecond
	SoundLongRelease  = 200 * time.Millisecond
	DefaultVolume     = 0.6
	EffectVolumeScale = 0.5 // Headroom so overlapping effects do not clip
)
