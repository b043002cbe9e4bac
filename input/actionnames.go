package input

// actionRegistry maps canonical action names to KeyEntry structs
// Used by the [keys] config loader to resolve action strings to bindings
var actionRegistry = map[string]KeyEntry{
	// Unbind sentinel
	"none": {},

	"quit":           {IntentQuit, MotionNone},
	"restart":        {IntentRestart, MotionNone},
	"pause":          {IntentPause, MotionNone},
	"toggle_sound":   {IntentToggleSound, MotionNone},
	"toggle_metrics": {IntentToggleMetrics, MotionNone},

	"motion_left":      {IntentMotion, MotionLeft},
	"motion_right":     {IntentMotion, MotionRight},
	"motion_up":        {IntentMotion, MotionUp},
	"motion_down":      {IntentMotion, MotionDown},
	"motion_row_start": {IntentMotion, MotionRowStart},
	"motion_row_end":   {IntentMotion, MotionRowEnd},
	"motion_top":       {IntentMotion, MotionTop},
	"motion_bottom":    {IntentMotion, MotionBottom},
	"motion_center":    {IntentMotion, MotionCenter},

	"line_horizontal": {IntentLineHorizontal, MotionNone},
	"line_vertical":   {IntentLineVertical, MotionNone},
}
