// Package executor realizes Analyzer results against the host: it owns the
// virtully keyboard device and translates an Action into the key sequence
// that performs it. Low-level primitives are grounded on
// original_source/punto/daemon/injector.py; the virtual-keyboard
// device wrapper narrows uinput.Keyboard's full method set down to the
// KeyDown/KeyUp pair this package actually drives.
package executor

import (
	"fmt"
	"log/slog"
	"unicode"

	"github.com/bendahl/uinput"

	"github.com/leonard/asahi-map/internal/layout"
)

// DeviceName is the name the virtual keyboard registers under, and the
// string internal/inputtap excludes from device discovery so injected
// events are never fed back into the analyzer.
const DeviceName = "puntogo-virtual-keyboard"

const keyBackspace = int(layout.KeyBackspace)

// keyer is the slice of uinput.Keyboard this package actually drives,
// narrowed out so tests can substitute a fake without touching /dev/uinput.
type keyer interface {
	KeyDown(key int) error
	KeyUp(key int) error
	Close() error
}

// Executor injects key events through a uinput virtual keyboard.
type Executor struct {
	keyboard keyer
	logger   *slog.Logger
}

// New creates the virtual keyboard device at path (typically /dev/uinput).
func New(path string, logger *slog.Logger) (*Executor, error) {
	kb, err := uinput.CreateKeyboard(path, []byte(DeviceName))
	if err != nil {
		return nil, fmt.Errorf("creating virtual keyboard: %w", err)
	}
	return &Executor{keyboard: kb, logger: logger}, nil
}

// Close releases the virtual keyboard device.
func (e *Executor) Close() error {
	return e.keyboard.Close()
}

// sendKey presses and/or releases a single key code, matching injector.py's
// send_key(press, release) signature.
func (e *Executor) sendKey(code int, press, release bool) error {
	if press {
		if err := e.keyboard.KeyDown(code); err != nil {
			return err
		}
	}
	if release {
		if err := e.keyboard.KeyUp(code); err != nil {
			return err
		}
	}
	return nil
}

// Tap presses and releases a single key.
func (e *Executor) Tap(code layout.KeyCode) error {
	return e.sendKey(int(code), true, true)
}

// SendCombo holds modifiers down, taps key, then releases modifiers in
// reverse order.
func (e *Executor) SendCombo(modifiers []layout.KeyCode, key layout.KeyCode) error {
	for _, mod := range modifiers {
		if err := e.sendKey(int(mod), true, false); err != nil {
			return err
		}
	}
	if err := e.Tap(key); err != nil {
		return err
	}
	for i := len(modifiers) - 1; i >= 0; i-- {
		if err := e.sendKey(int(modifiers[i]), false, true); err != nil {
			return err
		}
	}
	return nil
}

// Backspace taps Backspace count times.
func (e *Executor) Backspace(count int) error {
	for i := 0; i < count; i++ {
		if err := e.sendKey(keyBackspace, true, true); err != nil {
			return err
		}
	}
	return nil
}

// SwitchLayoutChord presses every key in chord, then releases them in
// reverse order, matching injector.py's switch_layout.
func (e *Executor) SwitchLayoutChord(chord []layout.KeyCode) error {
	for _, k := range chord {
		if err := e.sendKey(int(k), true, false); err != nil {
			return err
		}
	}
	for i := len(chord) - 1; i >= 0; i-- {
		if err := e.sendKey(int(chord[i]), false, true); err != nil {
			return err
		}
	}
	return nil
}

// TypeSequence taps every scancode in order, used to retype a buffer after
// switching layout.
func (e *Executor) TypeSequence(codes []layout.KeyCode) error {
	for _, code := range codes {
		if err := e.Tap(code); err != nil {
			return err
		}
	}
	return nil
}

// TypeString types text one character at a time by resolving each rune to
// its layout scancode (shifted when the rune requires it), logging and
// skipping any character absent from the layout table.
func (e *Executor) TypeString(text string) error {
	for _, r := range text {
		code, shift, ok := resolveChar(r)
		if !ok {
			e.logger.Warn("cannot type character: no keycode found", "char", string(r))
			continue
		}
		if shift {
			if err := e.sendKey(int(layout.KeyLeftShift), true, false); err != nil {
				return err
			}
		}
		if err := e.Tap(code); err != nil {
			return err
		}
		if shift {
			if err := e.sendKey(int(layout.KeyLeftShift), false, true); err != nil {
				return err
			}
		}
	}
	return nil
}

// digitKeys maps '0'-'9' to their scancodes, used by TypeString for digits in
// replacement text.
var digitKeys = map[rune]layout.KeyCode{
	'0': layout.Key0, '1': layout.Key1, '2': layout.Key2, '3': layout.Key3,
	'4': layout.Key4, '5': layout.Key5, '6': layout.Key6, '7': layout.Key7,
	'8': layout.Key8, '9': layout.Key9,
}

// resolveChar finds the scancode and shift-state needed to type r: space and
// digits have fixed scancodes, characters of the layout table resolve through
// it (upper case via its lower-case scancode plus Shift), and anything else is
// reported as unresolved.
func resolveChar(r rune) (layout.KeyCode, bool, bool) {
	if r == ' ' {
		return layout.KeySpace, false, true
	}
	if code, ok := digitKeys[r]; ok {
		return code, false, true
	}
	if unicode.IsUpper(r) {
		if code, ok := layout.ScancodeForChar(unicode.ToLower(r)); ok {
			return code, true, true
		}
		return 0, false, false
	}
	if code, ok := layout.ScancodeForChar(r); ok {
		return code, false, true
	}
	return 0, false, false
}
