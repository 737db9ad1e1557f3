package analyzer

import (
	"io"
	"log/slog"
	"testing"

	"github.com/leonard/asahi-map/internal/layout"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func down(code layout.KeyCode) Event { return Event{Code: code, Value: 1} }
func up(code layout.KeyCode) Event   { return Event{Code: code, Value: 0} }

func TestAutoSwitchOnGibberish(t *testing.T) {
	a := New(testLogger(), nil, nil, nil)

	codes := []layout.KeyCode{layout.KeyG, layout.KeyH, layout.KeyB, layout.KeyD, layout.KeyT, layout.KeyN}
	var last Result
	for _, c := range codes {
		last = a.ProcessKey(down(c))
	}

	require.Equal(t, ActionSwitchLayout, last.Action)
	require.Equal(t, 1, last.TargetLayoutIndex)
	require.Equal(t, codes, last.Payload)
	require.InDelta(t, 0.8, last.Confidence, 1e-9)
}

func TestNoSwitchOnValidEnglish(t *testing.T) {
	a := New(testLogger(), nil, nil, nil)

	for _, c := range []layout.KeyCode{layout.KeyH, layout.KeyE, layout.KeyL, layout.KeyL, layout.KeyO} {
		res := a.ProcessKey(down(c))
		require.Equal(t, ActionNone, res.Action)
	}

	res := a.ProcessKey(down(layout.KeySpace))
	require.Equal(t, ActionNone, res.Action)
	require.Equal(t, 0, a.BufferLen())
}

func TestAutoreplace(t *testing.T) {
	a := New(testLogger(), nil, nil, map[string]string{"omw": "on my way"})

	for _, c := range []layout.KeyCode{layout.KeyO, layout.KeyM, layout.KeyW} {
		a.ProcessKey(down(c))
	}
	res := a.ProcessKey(down(layout.KeySpace))

	require.Equal(t, ActionReplaceText, res.Action)
	require.Equal(t, "on my way", res.TextPayload)
	require.Equal(t, []layout.KeyCode{layout.KeyO, layout.KeyM, layout.KeyW}, res.Payload)
	require.Equal(t, 0, a.BufferLen())
}

func TestAutoreplaceBeatsAutocorrect(t *testing.T) {
	a := New(testLogger(), nil,
		map[string]string{"omw": "autocorrect-wins"},
		map[string]string{"omw": "autoreplace-wins"},
	)
	for _, c := range []layout.KeyCode{layout.KeyO, layout.KeyM, layout.KeyW} {
		a.ProcessKey(down(c))
	}
	res := a.ProcessKey(down(layout.KeySpace))
	require.Equal(t, "autoreplace-wins", res.TextPayload)
}

func TestManualLayoutSwitchRecognition(t *testing.T) {
	chord := []layout.KeyCode{layout.KeyLeftMeta, layout.KeySpace}
	a := New(testLogger(), chord, nil, nil)

	res := a.ProcessKey(down(layout.KeyLeftMeta))
	require.Equal(t, ActionNone, res.Action)

	res = a.ProcessKey(down(layout.KeySpace))
	require.Equal(t, ActionLayoutChanged, res.Action)
	require.Equal(t, 0, a.BufferLen())
}

func TestSelectionTransliterationHotkey(t *testing.T) {
	a := New(testLogger(), nil, nil, nil)

	a.ProcessKey(down(layout.KeyLeftCtrl))
	a.ProcessKey(down(layout.KeyLeftShift))
	res := a.ProcessKey(down(layout.KeyPause))

	require.Equal(t, ActionTransliterate, res.Action)
	require.Nil(t, res.Payload)
}

func TestHotkeyWithBufferAttachesPayload(t *testing.T) {
	a := New(testLogger(), nil, nil, nil)

	a.ProcessKey(down(layout.KeyH))
	a.ProcessKey(down(layout.KeyI))
	a.ProcessKey(down(layout.KeyLeftCtrl))
	res := a.ProcessKey(down(layout.KeyPause))

	require.Equal(t, ActionInvertCase, res.Action)
	require.Equal(t, []layout.KeyCode{layout.KeyH, layout.KeyI}, res.Payload)
}

func TestExclusionPause(t *testing.T) {
	a := New(testLogger(), nil, nil, nil)
	a.SetPaused(true)

	res := a.ProcessKey(down(layout.KeyG))
	require.Equal(t, ActionNone, res.Action)
	require.Equal(t, 0, a.BufferLen())
}

func TestBoundaryBufferLengthsNeverSwitch(t *testing.T) {
	a := New(testLogger(), nil, nil, nil)

	res := a.ProcessKey(down(layout.KeyQ))
	require.Equal(t, ActionNone, res.Action)
	res = a.ProcessKey(down(layout.KeyW))
	require.Equal(t, ActionNone, res.Action)
}

func TestModifierDownUpLeavesBufferUnchanged(t *testing.T) {
	a := New(testLogger(), nil, nil, nil)
	a.ProcessKey(down(layout.KeyQ))
	require.Equal(t, 1, a.BufferLen())

	a.ProcessKey(down(layout.KeyLeftShift))
	a.ProcessKey(up(layout.KeyLeftShift))
	require.Equal(t, 1, a.BufferLen())
}

func TestBackspaceOnEmptyBufferIsNoop(t *testing.T) {
	a := New(testLogger(), nil, nil, nil)
	res := a.ProcessKey(down(layout.KeyBackspace))
	require.Equal(t, ActionNone, res.Action)
	require.Equal(t, 0, a.BufferLen())
}

func TestBackspacePopsBuffer(t *testing.T) {
	a := New(testLogger(), nil, nil, nil)
	a.ProcessKey(down(layout.KeyQ))
	a.ProcessKey(down(layout.KeyW))
	a.ProcessKey(down(layout.KeyBackspace))
	require.Equal(t, 1, a.BufferLen())
}

func TestEmptySwitchChordDisablesManualSwitch(t *testing.T) {
	a := New(testLogger(), nil, nil, nil)
	res := a.ProcessKey(down(layout.KeySpace))
	require.Equal(t, ActionNone, res.Action)
}

func TestNonLayoutKeyClearsBuffer(t *testing.T) {
	a := New(testLogger(), nil, nil, nil)
	a.ProcessKey(down(layout.KeyQ))
	a.ProcessKey(down(layout.KeyEsc))
	require.Equal(t, 0, a.BufferLen())
}
