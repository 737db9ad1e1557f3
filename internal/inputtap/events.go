package inputtap

import "github.com/leonard/asahi-map/internal/layout"

// KeyEvent is the raw (scancode, value) pair the Input Tap delivers to its
// sink, tagged with the source device.
type KeyEvent struct {
	Code   layout.KeyCode
	Value  int32 // 0=up, 1=down, 2=repeat
	Device string // source device name, for logging only
}
