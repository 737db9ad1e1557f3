// Package service wires the Analyzer, Input Tap, Action Executor, clipboard,
// sound, and window collaborators into the running daemon: the Service
// Orchestrator. Grounded on original_source/punto/daemon/service.py's
// PuntoService and a typical single-binary main.go wiring idiom.
package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/leonard/asahi-map/internal/analyzer"
	"github.com/leonard/asahi-map/internal/clipboard"
	"github.com/leonard/asahi-map/internal/config"
	"github.com/leonard/asahi-map/internal/converters"
	"github.com/leonard/asahi-map/internal/executor"
	"github.com/leonard/asahi-map/internal/inputtap"
	"github.com/leonard/asahi-map/internal/layout"
	"github.com/leonard/asahi-map/internal/soundengine"
	"github.com/leonard/asahi-map/internal/window"
)

// windowPollInterval matches service.py's `await asyncio.sleep(1)` window
// exception check cadence.
const windowPollInterval = 1 * time.Second

// realizer is the slice of *executor.Executor the orchestrator drives,
// narrowed out so tests can substitute a fake without touching /dev/uinput.
type realizer interface {
	RealizeSwitch(payload []layout.KeyCode, switchChord []layout.KeyCode, playSwitchSound, flipShadow, resetBuffer func()) error
	RealizeReplace(payload []layout.KeyCode, text string) error
	RealizeSelectionRoundTrip(ctx context.Context, cb executor.ClipboardReader, cbWriter executor.ClipboardWriter, transform func(string) (string, bool)) error
	Close() error
}

// windowSource reports the active window title; satisfied by *window.Detector.
type windowSource interface {
	ActiveWindowTitle(ctx context.Context) (string, bool)
}

// soundPlayer plays a named notification sound; satisfied by *soundengine.Engine.
type soundPlayer interface {
	Play(event string)
	SetEnabled(enabled bool)
}

// Service owns the process-wide shadow layout belief and dispatches every
// Analyzer result to the Executor.
type Service struct {
	logger *slog.Logger

	configDir string
	cfg       *config.Config

	exec      realizer
	clip      *clipboard.Manager
	sound     soundPlayer
	winDetect windowSource
	tap       *inputtap.Tap

	mu            sync.Mutex
	analyzerState *analyzer.Analyzer
	shadowLayout  int // 0=EN, 1=RU; owned solely by the Service Orchestrator
}

// New constructs the Service from an already-loaded config and its
// collaborators. uinputPath is typically "/dev/uinput"; soundAssetsDir is
// where click.wav/switch.wav/error.wav live.
func New(logger *slog.Logger, cfg *config.Config, uinputPath, soundAssetsDir string) (*Service, error) {
	exec, err := executor.New(uinputPath, logger)
	if err != nil {
		return nil, err
	}

	svc := &Service{
		logger:    logger,
		configDir: cfg.Dir(),
		cfg:       cfg,
		exec:      exec,
		clip:      clipboard.New(logger),
		sound:     soundengine.New(soundAssetsDir, cfg.SoundEnabled, logger),
		winDetect: window.New(logger),
		tap:       inputtap.New(logger, executor.DeviceName),
	}
	svc.analyzerState = analyzer.New(logger, cfg.SwitchChord, cfg.Autocorrect, cfg.Autoreplace)
	return svc, nil
}

// Run starts the input tap and window-exception poll loop, blocking until
// ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	events := s.tap.Start(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.pollWindowExceptions(ctx)
	}()

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return s.exec.Close()
		case ev, ok := <-events:
			if !ok {
				wg.Wait()
				return s.exec.Close()
			}
			s.handleEvent(ctx, ev)
		}
	}
}

// Reload re-reads configuration from disk and rebuilds the Analyzer,
// matching service.py's reload_config (triggered by the orchestrator on
// SIGHUP). Rebuilding discards the buffer, which is an acceptable cost.
func (s *Service) Reload() error {
	cfg, err := config.Load(filepath.Join(s.configDir, "config.yaml"))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.sound.SetEnabled(cfg.SoundEnabled)
	s.analyzerState = analyzer.New(s.logger, cfg.SwitchChord, cfg.Autocorrect, cfg.Autoreplace)
	s.logger.Info("configuration reloaded")
	return nil
}

func (s *Service) handleEvent(ctx context.Context, ev inputtap.KeyEvent) {
	s.mu.Lock()
	res := s.analyzerState.ProcessKey(analyzer.Event{Code: ev.Code, Value: ev.Value})
	s.mu.Unlock()

	s.dispatch(ctx, res)
}

// dispatch realizes a single Analyzer result against its action table.
func (s *Service) dispatch(ctx context.Context, res analyzer.Result) {
	switch res.Action {
	case analyzer.ActionNone:
		return

	case analyzer.ActionLayoutChanged:
		s.mu.Lock()
		s.shadowLayout = 1 - s.shadowLayout
		s.mu.Unlock()
		s.logger.Info("layout changed manually", "shadow_layout", s.shadowLayout)

	case analyzer.ActionSwitchLayout:
		s.mu.Lock()
		autoEnabled := s.cfg.AutoSwitchEnabled
		current := s.shadowLayout
		s.mu.Unlock()
		if !autoEnabled {
			return
		}
		if res.TargetLayoutIndex == current {
			s.logger.Debug("skipping switch, already in target layout", "layout", current)
			return
		}
		s.logger.Info("auto-switching layout", "target", res.TargetLayoutIndex, "confidence", res.Confidence)
		s.realizeSwitch(res.Payload)

	case analyzer.ActionCorrectWrongLayout:
		if len(res.Payload) > 0 {
			s.realizeSwitch(res.Payload)
			return
		}
		s.realizeSelection(ctx, converters.SwitchLayout)

	case analyzer.ActionReplaceText:
		s.logger.Info("auto-replacing text", "replacement", res.TextPayload)
		if err := s.exec.RealizeReplace(res.Payload, res.TextPayload); err != nil {
			s.logger.Warn("realize replace failed", "error", err)
		}
		s.mu.Lock()
		s.analyzerState.Reset()
		s.mu.Unlock()

	case analyzer.ActionTransliterate, analyzer.ActionInvertCase, analyzer.ActionNumToWords:
		if len(res.Payload) > 0 {
			s.logger.Warn("advanced word modification not implemented, select text instead")
			return
		}
		s.realizeSelection(ctx, selectionTransform(res.Action))
	}
}

func selectionTransform(action analyzer.Action) func(string) (string, bool) {
	switch action {
	case analyzer.ActionTransliterate:
		return func(s string) (string, bool) { return converters.Transliterate(s), true }
	case analyzer.ActionInvertCase:
		return func(s string) (string, bool) { return converters.InvertCase(s), true }
	case analyzer.ActionNumToWords:
		return converters.NumberToWords
	default:
		return func(s string) (string, bool) { return s, false }
	}
}

func (s *Service) realizeSwitch(payload []layout.KeyCode) {
	s.mu.Lock()
	chord := s.cfg.SwitchChord
	s.mu.Unlock()

	flipShadow := func() {
		s.mu.Lock()
		s.shadowLayout = 1 - s.shadowLayout
		s.mu.Unlock()
	}
	resetBuffer := func() {
		s.mu.Lock()
		s.analyzerState.Reset()
		s.mu.Unlock()
	}
	playSwitch := func() { s.sound.Play("switch") }

	if err := s.exec.RealizeSwitch(payload, chord, playSwitch, flipShadow, resetBuffer); err != nil {
		s.logger.Warn("realize switch failed", "error", err)
	}
}

func (s *Service) realizeSelection(ctx context.Context, transform func(string) (string, bool)) {
	if err := s.exec.RealizeSelectionRoundTrip(ctx, s.clip, s.clip, transform); err != nil {
		s.logger.Warn("realize selection round trip failed", "error", err)
	}
}

func (s *Service) pollWindowExceptions(ctx context.Context) {
	ticker := time.NewTicker(windowPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			title, ok := s.winDetect.ActiveWindowTitle(ctx)
			if !ok {
				continue
			}
			s.mu.Lock()
			blocked := s.cfg.IsWindowException(title)
			s.analyzerState.SetPaused(blocked)
			s.mu.Unlock()
		}
	}
}

// ShadowLayout reports the Service's current belief about the host's active
// layout (0=EN, 1=RU), for diagnostics/tests.
func (s *Service) ShadowLayout() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shadowLayout
}
