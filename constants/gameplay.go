package constants

import "time"

// Ball Engine Defaults
const (
	// BallSpeed is the speed every ball gets at reset, in cells per second
	BallSpeed = 12.0

	// BallRadius is the collision radius of a ball, in cells
	BallRadius = 0.5

	// LineSpeed is how fast each end of a growing line advances, in cells per second
	LineSpeed = 20.0

	// BallContacts enables ball-vs-ball reflection
	BallContacts = true
)

// Level Rules
const (
	// StartBalls is the ball count at level 1; each level adds one
	StartBalls = 2

	// LevelUpThreshold is the filled fraction that completes a level
	LevelUpThreshold = 0.8

	// ReadyCountdown is the pause before balls start moving on a new level
	ReadyCountdown = 2 * time.Second

	// LevelCompleteHold is how long the level summary stays up before the next level
	LevelCompleteHold = 3 * time.Second

	// ParTimePerBall is the time bonus budget per ball in a level
	ParTimePerBall = 20 * time.Second
)

// Scoring
const (
	// FillPoints is awarded per level per fully filled play area
	FillPoints = 100

	// TimeBonusPerSecond is awarded per level per second under par
	TimeBonusPerSecond = 10
)
