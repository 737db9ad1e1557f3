package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/leonard/asahi-map/internal/layout"
)

// selectionCopyDelay and selectionPasteDelay bound the clipboard round trip
// used by RealizeSelectionRoundTrip, matching service.py's
// _perform_selection_correction (asyncio.sleep(0.3) / asyncio.sleep(0.1)).
const (
	selectionCopyDelay  = 300 * time.Millisecond
	selectionPasteDelay = 100 * time.Millisecond
)

// RealizeSwitch implements the SWITCH_LAYOUT / CORRECT_WRONG_LAYOUT action:
// erase the buffered word, send the layout-switch chord, retype the buffer,
// and play the switch sound. flipShadow and resetBuffer are owned by the
// service orchestrator and invoked as callbacks so this package never
// mutates state it does not own. resetBuffer always fires, even on an
// injection error, so the Analyzer's buffer never diverges from on-screen
// state. Grounded on service.py's _perform_switch.
func (e *Executor) RealizeSwitch(payload []layout.KeyCode, switchChord []layout.KeyCode, playSwitchSound, flipShadow, resetBuffer func()) error {
	defer resetBuffer()

	if err := e.Backspace(len(payload)); err != nil {
		return fmt.Errorf("backspacing buffer: %w", err)
	}
	if err := e.SwitchLayoutChord(switchChord); err != nil {
		return fmt.Errorf("sending switch chord: %w", err)
	}
	flipShadow()
	if playSwitchSound != nil {
		playSwitchSound()
	}
	return e.TypeSequence(payload)
}

// RealizeReplace implements the REPLACE_TEXT action: erase the buffered
// word plus the delimiter that triggered autoreplace, then type the
// replacement text. Grounded on service.py's inline REPLACE_TEXT handling in
// on_input_event.
func (e *Executor) RealizeReplace(payload []layout.KeyCode, text string) error {
	if err := e.Backspace(len(payload) + 1); err != nil {
		return fmt.Errorf("backspacing buffer: %w", err)
	}
	return e.TypeString(text)
}

// ClipboardReader reads the system clipboard/primary selection; satisfied by
// *clipboard.Manager.
type ClipboardReader interface {
	GetText() (string, bool)
}

// ClipboardWriter writes text to the clipboard; satisfied by
// *clipboard.Manager.
type ClipboardWriter interface {
	SetText(text string) error
}

// RealizeSelectionRoundTrip implements the advanced hotkey actions
// (transliterate, invert case, number-to-words, and manual layout switch)
// when no word buffer is attached: copy the active selection, transform it,
// and paste it back. Grounded on service.py's _perform_selection_correction.
func (e *Executor) RealizeSelectionRoundTrip(ctx context.Context, cb ClipboardReader, cbWriter ClipboardWriter, transform func(string) (string, bool)) error {
	if err := e.SendCombo([]layout.KeyCode{layout.KeyLeftCtrl}, layout.KeyC); err != nil {
		return fmt.Errorf("sending copy combo: %w", err)
	}

	select {
	case <-time.After(selectionCopyDelay):
	case <-ctx.Done():
		return ctx.Err()
	}

	text, ok := cb.GetText()
	if !ok || text == "" {
		return errEmptySelection
	}

	newText, changed := transform(text)
	if !changed || newText == text {
		return nil
	}

	if err := cbWriter.SetText(newText); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}

	select {
	case <-time.After(selectionPasteDelay):
	case <-ctx.Done():
		return ctx.Err()
	}

	return e.SendCombo([]layout.KeyCode{layout.KeyLeftCtrl}, layout.KeyV)
}

var errEmptySelection = fmt.Errorf("executor: clipboard empty or inaccessible")
