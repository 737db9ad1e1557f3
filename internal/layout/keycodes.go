// Package layout holds the immutable scancode <-> character table shared by
// the analyzer and the executor, plus the raw Linux evdev key codes the rest
// of the daemon is built on.
package layout

// KeyCode is a Linux evdev key code (see linux/input-event-codes.h).
type KeyCode = uint16

// Key codes used directly by the analyzer and executor. Only the subset the
// daemon cares about: the 33 printable keys of the layout table, the
// modifiers, and the handful of control keys that drive word-boundary and
// hotkey detection.
const (
	KeyEsc        KeyCode = 1
	Key1          KeyCode = 2
	Key2          KeyCode = 3
	Key3          KeyCode = 4
	Key4          KeyCode = 5
	Key5          KeyCode = 6
	Key6          KeyCode = 7
	Key7          KeyCode = 8
	Key8          KeyCode = 9
	Key9          KeyCode = 10
	Key0          KeyCode = 11
	KeyMinus      KeyCode = 12
	KeyEqual      KeyCode = 13
	KeyBackspace  KeyCode = 14
	KeyTab        KeyCode = 15
	KeyQ          KeyCode = 16
	KeyW          KeyCode = 17
	KeyE          KeyCode = 18
	KeyR          KeyCode = 19
	KeyT          KeyCode = 20
	KeyY          KeyCode = 21
	KeyU          KeyCode = 22
	KeyI          KeyCode = 23
	KeyO          KeyCode = 24
	KeyP          KeyCode = 25
	KeyLeftBrace  KeyCode = 26
	KeyRightBrace KeyCode = 27
	KeyEnter      KeyCode = 28
	KeyLeftCtrl   KeyCode = 29
	KeyA          KeyCode = 30
	KeyS          KeyCode = 31
	KeyD          KeyCode = 32
	KeyF          KeyCode = 33
	KeyG          KeyCode = 34
	KeyH          KeyCode = 35
	KeyJ          KeyCode = 36
	KeyK          KeyCode = 37
	KeyL          KeyCode = 38
	KeySemicolon  KeyCode = 39
	KeyApostrophe KeyCode = 40
	KeyGrave      KeyCode = 41
	KeyLeftShift  KeyCode = 42
	KeyBackslash  KeyCode = 43
	KeyZ          KeyCode = 44
	KeyX          KeyCode = 45
	KeyC          KeyCode = 46
	KeyV          KeyCode = 47
	KeyB          KeyCode = 48
	KeyN          KeyCode = 49
	KeyM          KeyCode = 50
	KeyComma      KeyCode = 51
	KeyDot        KeyCode = 52
	KeySlash      KeyCode = 53
	KeyRightShift KeyCode = 54
	KeyLeftAlt    KeyCode = 56
	KeySpace      KeyCode = 57
	KeyCapsLock   KeyCode = 58
	KeyRightCtrl  KeyCode = 97
	KeyRightAlt   KeyCode = 100
	KeyPause      KeyCode = 119
	KeyLeftMeta   KeyCode = 125
	KeyRightMeta  KeyCode = 126
)

// IsModifier reports whether code is one of the eight modifier keys tracked
// by the analyzer (left/right shift, control, alt, meta). Modifiers never
// enter the word buffer.
func IsModifier(code KeyCode) bool {
	switch code {
	case KeyLeftShift, KeyRightShift,
		KeyLeftCtrl, KeyRightCtrl,
		KeyLeftAlt, KeyRightAlt,
		KeyLeftMeta, KeyRightMeta:
		return true
	}
	return false
}

// IsWordBoundary reports whether code is a word-boundary key (space, enter,
// tab, comma, dot).
func IsWordBoundary(code KeyCode) bool {
	switch code {
	case KeySpace, KeyEnter, KeyTab, KeyComma, KeyDot:
		return true
	}
	return false
}
