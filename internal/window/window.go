// Package window detects the title of the currently active window, used by
// the service orchestrator's window-exception poll. Grounded on
// original_source/punto/core/window.py, which shells out to xdotool; this
// adds a best-effort freedesktop portal probe via godbus/dbus/v5 for Wayland
// compositors xdotool cannot see, since no pure-Go X11/Wayland window query
// exists anywhere in the retrieved pack.
package window

import (
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
)

const probeTimeout = 500 * time.Millisecond

// Detector reports the active window's title.
type Detector struct {
	xdotoolPath string
	logger      *slog.Logger
}

// New probes PATH for xdotool; when it is absent the detector still
// functions, using only the portal probe, in the spirit of window.py's
// cmd=None fallback.
func New(logger *slog.Logger) *Detector {
	d := &Detector{logger: logger}
	if path, err := exec.LookPath("xdotool"); err == nil {
		d.xdotoolPath = path
	}
	return d
}

// ActiveWindowTitle returns the foreground window's title. It tries xdotool
// (X11) first and falls back to a freedesktop portal dbus call (Wayland)
// when xdotool is unavailable or fails.
func (d *Detector) ActiveWindowTitle(ctx context.Context) (string, bool) {
	if d.xdotoolPath != "" {
		if title, ok := d.xdotoolTitle(ctx); ok {
			return title, true
		}
	}
	return d.portalTitle()
}

func (d *Detector) xdotoolTitle(ctx context.Context) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	idOut, err := exec.CommandContext(ctx, d.xdotoolPath, "getactivewindow").Output()
	if err != nil {
		return "", false
	}
	wid := strings.TrimSpace(string(idOut))
	if wid == "" {
		return "", false
	}

	nameOut, err := exec.CommandContext(ctx, d.xdotoolPath, "getwindowname", wid).Output()
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(nameOut)), true
}

// portalTitle makes a best-effort query against
// org.freedesktop.impl.portal.Desktop for the focused window's title.
// Most compositors do not implement this interface; a failure here simply
// means the window-exception check is skipped for this poll tick.
func (d *Detector) portalTitle() (string, bool) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return "", false
	}
	defer conn.Close()

	obj := conn.Object("org.freedesktop.impl.portal.Desktop", "/org/freedesktop/portal/desktop")
	var title string
	if err := obj.Call("org.freedesktop.impl.portal.Desktop.GetActiveWindowTitle", 0).Store(&title); err != nil {
		return "", false
	}
	if title == "" {
		return "", false
	}
	return title, true
}
