// Package analyzer implements the Word Analyzer: a stateful per-word
// scancode buffer that classifies key events into typed recommendations
// for the Action Executor.
package analyzer

import (
	"log/slog"

	"github.com/leonard/asahi-map/internal/layout"
)

// Event is a single physical key event as delivered by the Input Tap.
type Event struct {
	Code  layout.KeyCode
	Value int32 // 0=up, 1=down, 2=repeat
}

func (e Event) isUp() bool { return e.Value == 0 }

// Analyzer is the Word Analyzer state machine. One instance is owned by the
// Service Orchestrator and reconstructed whenever the config snapshot
// changes, which acceptably discards the buffer.
type Analyzer struct {
	logger *slog.Logger

	buffer    []layout.KeyCode
	modifiers map[layout.KeyCode]bool
	paused    bool

	switchChord []layout.KeyCode
	autocorrect map[string]string
	autoreplace map[string]string
}

// New creates an Analyzer bound to the given config fields. switchChord may
// be empty, which disables manual layout-switch chord detection entirely.
func New(logger *slog.Logger, switchChord []layout.KeyCode, autocorrect, autoreplace map[string]string) *Analyzer {
	return &Analyzer{
		logger:      logger,
		modifiers:   make(map[layout.KeyCode]bool, 8),
		switchChord: switchChord,
		autocorrect: autocorrect,
		autoreplace: autoreplace,
	}
}

// SetPaused pauses or resumes the analyzer. Pausing clears the buffer;
// transitions log at INFO.
func (a *Analyzer) SetPaused(paused bool) {
	if paused && !a.paused {
		a.logger.Info("analyzer paused by exclusion rule")
		a.reset()
	} else if !paused && a.paused {
		a.logger.Info("analyzer resumed")
	}
	a.paused = paused
}

// Reset clears the word buffer. Exported so the Service Orchestrator can
// reset the buffer after the Executor completes a rewrite.
func (a *Analyzer) Reset() {
	a.reset()
}

func (a *Analyzer) reset() {
	a.buffer = a.buffer[:0]
}

// BufferLen returns the current word buffer length.
func (a *Analyzer) BufferLen() int {
	return len(a.buffer)
}

// ProcessKey ingests one key event and returns the recommended action. The
// nine rules below are evaluated in order, grounded on
// punto/daemon/analyzer.py:InputAnalyzer.process_key.
func (a *Analyzer) ProcessKey(ev Event) Result {
	// 1. Paused: no-op.
	if a.paused {
		return none()
	}

	// 2. Modifiers never enter the buffer.
	if layout.IsModifier(ev.Code) {
		if ev.Value == 1 {
			a.modifiers[ev.Code] = true
		} else if ev.Value == 0 {
			delete(a.modifiers, ev.Code)
		}
		return none()
	}

	// 3. Key-up for a non-modifier: ignore.
	if ev.isUp() {
		return none()
	}

	// 4. Manual layout-switch chord.
	if len(a.switchChord) > 0 && ev.Code == a.switchChord[len(a.switchChord)-1] {
		if a.allHeld(a.switchChord[:len(a.switchChord)-1]) {
			a.reset()
			return Result{Action: ActionLayoutChanged}
		}
	}

	// 5. PAUSE hotkey.
	if ev.Code == layout.KeyPause {
		return a.handleHotkey()
	}

	// 6. Backspace.
	if ev.Code == layout.KeyBackspace {
		if len(a.buffer) > 0 {
			a.buffer = a.buffer[:len(a.buffer)-1]
		}
		return none()
	}

	// 7. Word boundary: try replacement, then always clear.
	if layout.IsWordBoundary(ev.Code) {
		res := a.checkReplacement()
		a.reset()
		if res != nil {
			return *res
		}
		return none()
	}

	// 8. Not in the layout table: clear and no-op.
	if !layout.IsPrintable(ev.Code) {
		a.reset()
		return none()
	}

	// 9. Append and (maybe) score.
	a.buffer = append(a.buffer, ev.Code)
	return a.analyzeBuffer()
}

func (a *Analyzer) allHeld(mods []layout.KeyCode) bool {
	for _, m := range mods {
		if !a.modifiers[m] {
			return false
		}
	}
	return true
}

func (a *Analyzer) handleHotkey() Result {
	ctrl := a.modifiers[layout.KeyLeftCtrl] || a.modifiers[layout.KeyRightCtrl]
	shift := a.modifiers[layout.KeyLeftShift] || a.modifiers[layout.KeyRightShift]
	alt := a.modifiers[layout.KeyLeftAlt] || a.modifiers[layout.KeyRightAlt]

	action := ActionCorrectWrongLayout
	switch {
	case ctrl && shift:
		action = ActionTransliterate
	case ctrl:
		action = ActionInvertCase
	case alt:
		action = ActionNumToWords
	case shift:
		action = ActionInvertCase
	}

	if len(a.buffer) > 0 {
		payload := make([]layout.KeyCode, len(a.buffer))
		copy(payload, a.buffer)
		return Result{Action: action, Payload: payload}
	}
	return Result{Action: action}
}

func (a *Analyzer) analyzeBuffer() Result {
	if len(a.buffer) < 3 {
		return none()
	}

	s0 := layout.Primary(a.buffer)
	s1 := layout.Secondary(a.buffer)

	switch verdict(s0, s1) {
	case 0:
		return Result{
			Action:            ActionSwitchLayout,
			TargetLayoutIndex: 0,
			Confidence:        0.8,
			Payload:           a.copyBuffer(),
		}
	case 1:
		return Result{
			Action:            ActionSwitchLayout,
			TargetLayoutIndex: 1,
			Confidence:        0.8,
			Payload:           a.copyBuffer(),
		}
	default:
		return none()
	}
}

// checkReplacement queries autoreplace then autocorrect against both
// renderings of the buffer, autoreplace first.
func (a *Analyzer) checkReplacement() *Result {
	if len(a.buffer) == 0 {
		return nil
	}

	s0 := layout.Primary(a.buffer)
	s1 := layout.Secondary(a.buffer)
	payload := a.copyBuffer()

	if text, ok := a.autoreplace[s0]; ok {
		return &Result{Action: ActionReplaceText, Payload: payload, TextPayload: text, Confidence: 1.0}
	}
	if text, ok := a.autoreplace[s1]; ok {
		return &Result{Action: ActionReplaceText, Payload: payload, TextPayload: text, Confidence: 1.0}
	}
	if text, ok := a.autocorrect[s0]; ok {
		return &Result{Action: ActionReplaceText, Payload: payload, TextPayload: text, Confidence: 1.0}
	}
	if text, ok := a.autocorrect[s1]; ok {
		return &Result{Action: ActionReplaceText, Payload: payload, TextPayload: text, Confidence: 1.0}
	}
	return nil
}

func (a *Analyzer) copyBuffer() []layout.KeyCode {
	payload := make([]layout.KeyCode, len(a.buffer))
	copy(payload, a.buffer)
	return payload
}
