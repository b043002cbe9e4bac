package audio

// SoundType identifies a synthesised effect
type SoundType int

const (
	SoundLineStart SoundType = iota
	SoundLineHit
	SoundSplit
	SoundLevelComplete
	SoundGameOver
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundLineStart:
		return "line_start"
	case SoundLineHit:
		return "line_hit"
	case SoundSplit:
		return "split"
	case SoundLevelComplete:
		return "level_complete"
	case SoundGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
