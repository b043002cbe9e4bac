package render

import "github.com/gdamore/tcell/v2"

// RGB color definitions
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38) // Tokyo Night background

	// Live regions alternate between two close shades so adjacent regions stay distinguishable
	RgbRegionA = tcell.NewRGBColor(30, 32, 46)
	RgbRegionB = tcell.NewRGBColor(36, 40, 59)

	RgbFilled        = tcell.NewRGBColor(65, 72, 104)
	RgbBall          = tcell.NewRGBColor(255, 158, 100) // Orange
	RgbLineH         = tcell.NewRGBColor(125, 207, 255) // Cyan
	RgbLineV         = tcell.NewRGBColor(187, 154, 247) // Purple
	RgbCursorOK      = tcell.NewRGBColor(158, 206, 106) // Green
	RgbCursorBlocked = tcell.NewRGBColor(247, 118, 142) // Red
	RgbHitFlash      = tcell.NewRGBColor(120, 20, 30)

	RgbStatusBg    = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbStatusText  = tcell.NewRGBColor(0, 0, 0)
	RgbMeterEmpty  = tcell.NewRGBColor(60, 60, 60)
	RgbOverlayBg   = tcell.NewRGBColor(15, 15, 25)
	RgbOverlayText = tcell.NewRGBColor(192, 202, 245)
	RgbOverlayHead = tcell.NewRGBColor(224, 175, 104)
	RgbMetrics     = tcell.NewRGBColor(180, 180, 180) // Brighter gray
)

// GetFillMeterColor returns the meter color at progress toward the level threshold
// Red below half, through yellow, to green at the threshold
func GetFillMeterColor(progress float64) tcell.Color {
	if progress <= 0.0 {
		return tcell.NewRGBColor(0, 0, 0) // Black for unfilled
	}
	if progress > 1.0 {
		progress = 1.0
	}

	if progress < 0.5 { // Red to Yellow
		t := progress / 0.5
		return tcell.NewRGBColor(int32(200+55*t), int32(50+165*t), 40)
	}
	// Yellow to Green
	t := (progress - 0.5) / 0.5
	return tcell.NewRGBColor(int32(255-97*t), int32(215-9*t), int32(40+66*t))
}
