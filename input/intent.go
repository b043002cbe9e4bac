package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit          // q, Esc, Ctrl+C
	IntentRestart       // r
	IntentPause         // p
	IntentToggleSound   // s
	IntentToggleMetrics // m
	IntentResize        // Terminal resize event

	// Cursor
	IntentMotion   // h,j,k,l,0,$,g,G,arrows with optional count
	IntentCursorTo // Mouse movement

	// Line starts at the cursor, or at the pointer when Pointer is set
	IntentLineHorizontal // -, space, left click
	IntentLineVertical   // |, v, right click
)

// MotionOp identifies cursor motion
type MotionOp uint8

const (
	MotionNone   MotionOp = iota
	MotionLeft            // h, Left arrow
	MotionRight           // l, Right arrow
	MotionUp              // k, Up arrow
	MotionDown            // j, Down arrow
	MotionRowStart        // 0, Home
	MotionRowEnd          // $, End
	MotionTop             // g
	MotionBottom          // G
	MotionCenter          // c
)

// Intent represents a parsed semantic action
type Intent struct {
	Type    IntentType
	Motion  MotionOp
	Count   int  // Effective count (minimum 1)
	Pointer bool // X, Y carry a mouse cell
	X, Y    int
}
