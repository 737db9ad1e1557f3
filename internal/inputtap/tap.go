// Package inputtap discovers physical keyboard devices under /dev/input and
// streams their key events to a sink channel, re-sweeping periodically so
// hot-plugged keyboards are picked up without a restart. Generalizes a
// single-shot discovery pass into the recurring scan loop
// original_source/punto/daemon/input_handler.py runs under asyncio.
package inputtap

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	evdev "github.com/holoplot/go-evdev"

	"github.com/leonard/asahi-map/internal/layout"
)

// sweepInterval controls how often the tap re-scans /dev/input for
// keyboards that were not present (or not yet accessible) at startup.
const sweepInterval = 5 * time.Second

type openDevice struct {
	path   string
	name   string
	device *evdev.InputDevice
	cancel context.CancelFunc
}

// Tap owns the set of opened input devices and fans their key events into a
// single sink channel.
type Tap struct {
	logger        *slog.Logger
	ownDeviceName string

	mu      sync.Mutex
	devices map[string]*openDevice

	sink chan KeyEvent
}

// New creates a Tap. ownDeviceName is the name the virtual keyboard
// registers under: events the service itself injects must never be fed
// back into the Analyzer, so it is matched case-insensitively as a
// substring against discovered device names to exclude them.
func New(logger *slog.Logger, ownDeviceName string) *Tap {
	return &Tap{
		logger:        logger,
		ownDeviceName: ownDeviceName,
		devices:       make(map[string]*openDevice),
		sink:          make(chan KeyEvent, 256),
	}
}

// Start launches the sweep loop and returns the event sink. The returned
// channel is closed when ctx is cancelled and every reader goroutine has
// exited.
func (t *Tap) Start(ctx context.Context) <-chan KeyEvent {
	t.sweep()

	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				t.closeAll()
				close(t.sink)
				return
			case <-ticker.C:
				t.sweep()
			}
		}
	}()

	return t.sink
}

// sweep opens any not-yet-tracked keyboard device under /dev/input and
// starts a reader goroutine for it.
func (t *Tap) sweep() {
	matches, err := filepath.Glob("/dev/input/event*")
	if err != nil {
		t.logger.Error("globbing input devices", "error", err)
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, path := range matches {
		if _, tracked := t.devices[path]; tracked {
			continue
		}

		dev, err := evdev.Open(path)
		if err != nil {
			continue
		}

		name, err := dev.Name()
		if err != nil {
			dev.Close()
			continue
		}

		if !isKeyboard(dev) {
			dev.Close()
			continue
		}

		if t.ownDeviceName != "" && strings.Contains(strings.ToLower(name), strings.ToLower(t.ownDeviceName)) {
			dev.Close()
			continue
		}

		readerCtx, cancel := context.WithCancel(context.Background())
		od := &openDevice{path: path, name: name, device: dev, cancel: cancel}
		t.devices[path] = od

		t.logger.Info("input tap found keyboard", "name", name, "path", path)
		go t.readLoop(readerCtx, od)
	}
}

// isKeyboard requires both KEY_A and KEY_ENTER among the
// device's capable codes, matching
// original_source/punto/daemon/input_handler.py's _is_keyboard
// (`KEY_A in supported_keys and KEY_ENTER in supported_keys`). A device
// advertising only one of the two (e.g. a macro pad with a single letter
// key) is not a keyboard.
func isKeyboard(dev *evdev.InputDevice) bool {
	hasLetter := false
	hasEnter := false

	for _, typ := range dev.CapableTypes() {
		if typ != evdev.EV_KEY {
			continue
		}
		for _, code := range dev.CapableEvents(evdev.EV_KEY) {
			switch {
			case code == evdev.EvCode(layout.KeyA):
				hasLetter = true
			case code == evdev.EvCode(layout.KeyEnter):
				hasEnter = true
			}
		}
	}

	return hasLetter && hasEnter
}

func (t *Tap) readLoop(ctx context.Context, od *openDevice) {
	defer func() {
		od.device.Close()
		t.mu.Lock()
		delete(t.devices, od.path)
		t.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		ev, err := od.device.ReadOne()
		if err != nil {
			t.logger.Debug("input tap device closed", "name", od.name, "error", err)
			return
		}

		if ev.Type != evdev.EV_KEY {
			continue
		}

		select {
		case t.sink <- KeyEvent{Code: uint16(ev.Code), Value: ev.Value, Device: od.name}:
		case <-ctx.Done():
			return
		}
	}
}

func (t *Tap) closeAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for path, od := range t.devices {
		od.cancel()
		od.device.Close()
		delete(t.devices, path)
	}
}

// DeviceCount reports the number of keyboards currently open, for
// diagnostics/tests.
func (t *Tap) DeviceCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.devices)
}
