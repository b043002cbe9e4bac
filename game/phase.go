package game

// Phase is the session state machine position
type Phase uint8

const (
	PhaseIdle          Phase = iota // No game started
	PhaseReady                      // Countdown before balls move
	PhaseRunning                    // Balls move, lines may be started
	PhasePaused                     // Frozen; resumes to the phase it paused from
	PhaseLevelComplete              // Summary hold before the next level
	PhaseGameOver                   // Out of lives
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseReady:
		return "Ready"
	case PhaseRunning:
		return "Running"
	case PhasePaused:
		return "Paused"
	case PhaseLevelComplete:
		return "LevelComplete"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

var validTransitions = map[Phase][]Phase{
	PhaseIdle:          {PhaseReady},
	PhaseReady:         {PhaseRunning, PhasePaused},
	PhaseRunning:       {PhasePaused, PhaseLevelComplete, PhaseGameOver},
	PhasePaused:        {PhaseReady, PhaseRunning},
	PhaseLevelComplete: {PhaseReady},
	PhaseGameOver:      {PhaseReady},
}

// CanTransition checks if a phase transition is valid
func CanTransition(from, to Phase) bool {
	for _, p := range validTransitions[from] {
		if p == to {
			return true
		}
	}
	return false
}
