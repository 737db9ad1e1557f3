// Package clipboard implements the clipboard collaborator: opaque get/set
// access to the selection (X11) or clipboard (Wayland), backed by whichever
// external tool is available on the host. Grounded on
// original_source/punto/core/clipboard.py, which shells out to wl-clipboard
// on Wayland and xclip on X11 for the same reason this does: neither the Go
// ecosystem nor the stdlib exposes X11 PRIMARY selection or the Wayland
// clipboard portal, so an external tool is the only portable option.
package clipboard

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/atotto/clipboard"
)

// readWriteTimeout bounds every external clipboard command's subprocess.
const readWriteTimeout = 1 * time.Second

type backend int

const (
	backendNone backend = iota
	backendWayland
	backendX11
)

// Manager is the clipboard collaborator. It detects its backend once at
// construction, matching ClipboardManager._detect_backend.
type Manager struct {
	backend backend
	logger  *slog.Logger
}

// New probes PATH for wl-copy/wl-paste, then xclip, and remembers whichever
// is found first.
func New(logger *slog.Logger) *Manager {
	m := &Manager{logger: logger}

	if lookPath("wl-copy") && lookPath("wl-paste") {
		m.backend = backendWayland
	} else if lookPath("xclip") {
		m.backend = backendX11
	} else {
		m.backend = backendNone
	}

	logger.Info("clipboard manager initialized", "backend", m.backendName())
	return m
}

func lookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func (m *Manager) backendName() string {
	switch m.backend {
	case backendWayland:
		return "wayland"
	case backendX11:
		return "x11"
	default:
		return "none"
	}
}

// GetText returns the current PRIMARY selection text on X11; on Wayland and
// in the no-tool fallback it reads the regular clipboard instead, not the
// primary selection. It returns false if the read times out or fails.
// Grounded on ClipboardManager.get_text.
func (m *Manager) GetText() (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), readWriteTimeout)
	defer cancel()

	var args []string
	var name string
	switch m.backend {
	case backendWayland:
		name, args = "wl-paste", []string{"--no-newline"}
	case backendX11:
		name, args = "xclip", []string{"-selection", "primary", "-o"}
	default:
		// No external tool found: fall back to the regular (non-primary)
		// system clipboard via atotto/clipboard, matching the SetText
		// fallback below.
		text, err := clipboard.ReadAll()
		if err != nil {
			return "", false
		}
		return text, true
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		m.logger.Warn("clipboard read failed", "backend", m.backendName(), "error", err)
		return "", false
	}
	return out.String(), true
}

// SetText writes text to the clipboard (and, on X11, to both the CLIPBOARD
// and PRIMARY selections for consistency). Grounded on
// ClipboardManager.set_text.
func (m *Manager) SetText(text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), readWriteTimeout)
	defer cancel()

	switch m.backend {
	case backendWayland:
		cmd := exec.CommandContext(ctx, "wl-copy")
		cmd.Stdin = strings.NewReader(text)
		return cmd.Run()
	case backendX11:
		cmd := exec.CommandContext(ctx, "xclip", "-selection", "clipboard", "-i")
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err != nil {
			return err
		}
		primary := exec.CommandContext(ctx, "xclip", "-selection", "primary", "-i")
		primary.Stdin = strings.NewReader(text)
		return primary.Run()
	default:
		// No external tool found: fall back to the regular (non-primary)
		// system clipboard via the portable atotto/clipboard library, so
		// SetText still has some effect on hosts without wl-clipboard/xclip.
		return clipboard.WriteAll(text)
	}
}
