package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leonard/asahi-map/internal/analyzer"
	"github.com/leonard/asahi-map/internal/config"
	"github.com/leonard/asahi-map/internal/executor"
	"github.com/leonard/asahi-map/internal/layout"
)

type fakeRealizer struct {
	switched  bool
	replaced  bool
	selection bool
	lastText  string
}

func (f *fakeRealizer) RealizeSwitch(payload, chord []layout.KeyCode, playSwitchSound, flipShadow, resetBuffer func()) error {
	f.switched = true
	flipShadow()
	if playSwitchSound != nil {
		playSwitchSound()
	}
	resetBuffer()
	return nil
}

func (f *fakeRealizer) RealizeReplace(payload []layout.KeyCode, text string) error {
	f.replaced = true
	f.lastText = text
	return nil
}

func (f *fakeRealizer) RealizeSelectionRoundTrip(ctx context.Context, cb executor.ClipboardReader, cbWriter executor.ClipboardWriter, transform func(string) (string, bool)) error {
	f.selection = true
	return nil
}

func (f *fakeRealizer) Close() error { return nil }

type fakeSound struct {
	plays []string
}

func (f *fakeSound) Play(event string) { f.plays = append(f.plays, event) }
func (f *fakeSound) SetEnabled(bool)   {}

func newTestService() (*Service, *fakeRealizer, *fakeSound) {
	cfg := config.Default()
	rz := &fakeRealizer{}
	snd := &fakeSound{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := &Service{
		logger:        logger,
		cfg:           cfg,
		exec:          rz,
		sound:         snd,
		analyzerState: analyzer.New(logger, cfg.SwitchChord, cfg.Autocorrect, cfg.Autoreplace),
	}
	return svc, rz, snd
}

func down(code layout.KeyCode) inputTapEvent { return inputTapEvent{code, 1} }

// inputTapEvent mirrors inputtap.KeyEvent's fields needed for these tests.
type inputTapEvent struct {
	code  layout.KeyCode
	value int32
}

func (e inputTapEvent) toEvent() analyzer.Event {
	return analyzer.Event{Code: e.code, Value: e.value}
}

func TestAutoSwitchInvokesRealizerAndFlipsShadow(t *testing.T) {
	svc, rz, snd := newTestService()
	ctx := context.Background()

	// Type 6 scancodes forming gibberish Russian-layout-looking text.
	for _, c := range []layout.KeyCode{layout.KeyG, layout.KeyH, layout.KeyB, layout.KeyD, layout.KeyT, layout.KeyN} {
		res := svc.analyzerState.ProcessKey(down(c).toEvent())
		svc.dispatchForTest(ctx, res)
	}

	require.True(t, rz.switched)
	require.Equal(t, 1, svc.ShadowLayout())
	require.Equal(t, []string{"switch"}, snd.plays)
}

func TestSkipsSwitchWhenAlreadyInTargetLayout(t *testing.T) {
	svc, rz, _ := newTestService()
	ctx := context.Background()
	svc.shadowLayout = 0

	res := analyzer.Result{Action: analyzer.ActionSwitchLayout, TargetLayoutIndex: 0, Payload: []layout.KeyCode{layout.KeyG}}
	svc.dispatchForTest(ctx, res)

	require.False(t, rz.switched)
}

func TestAutoSwitchDisabledSuppressesRealizer(t *testing.T) {
	svc, rz, _ := newTestService()
	svc.cfg.AutoSwitchEnabled = false
	ctx := context.Background()

	res := analyzer.Result{Action: analyzer.ActionSwitchLayout, TargetLayoutIndex: 1, Payload: []layout.KeyCode{layout.KeyG}}
	svc.dispatchForTest(ctx, res)

	require.False(t, rz.switched)
}

func TestReplaceTextInvokesRealizerAndResetsBuffer(t *testing.T) {
	svc, rz, _ := newTestService()
	ctx := context.Background()

	res := analyzer.Result{Action: analyzer.ActionReplaceText, Payload: []layout.KeyCode{layout.KeyD, layout.KeyD}, TextPayload: "Добрый день"}
	svc.dispatchForTest(ctx, res)

	require.True(t, rz.replaced)
	require.Equal(t, "Добрый день", rz.lastText)
}

func TestLayoutChangedFlipsShadowWithoutRealizer(t *testing.T) {
	svc, rz, _ := newTestService()
	ctx := context.Background()

	res := analyzer.Result{Action: analyzer.ActionLayoutChanged}
	svc.dispatchForTest(ctx, res)

	require.Equal(t, 1, svc.ShadowLayout())
	require.False(t, rz.switched)
}

func TestAdvancedHotkeyWithBufferWarnsInsteadOfSelection(t *testing.T) {
	svc, rz, _ := newTestService()
	ctx := context.Background()

	res := analyzer.Result{Action: analyzer.ActionInvertCase, Payload: []layout.KeyCode{layout.KeyA}}
	svc.dispatchForTest(ctx, res)

	require.False(t, rz.selection)
}

func TestAdvancedHotkeyWithoutBufferTriggersSelectionRoundTrip(t *testing.T) {
	svc, rz, _ := newTestService()
	ctx := context.Background()

	res := analyzer.Result{Action: analyzer.ActionInvertCase}
	svc.dispatchForTest(ctx, res)

	require.True(t, rz.selection)
}

// dispatchForTest exposes handleEvent's dispatch switch directly on an
// already-computed Result, bypassing the Analyzer/inputtap.KeyEvent
// plumbing so these tests can drive each branch precisely.
func (s *Service) dispatchForTest(ctx context.Context, res analyzer.Result) {
	s.dispatch(ctx, res)
}
