// Package soundengine implements the sound collaborator: a best-effort,
// non-blocking "click"/"switch"/"error" player. Grounded on
// original_source/punto/core/sound.py, which shells out to paplay/aplay on
// a detached thread.
package soundengine

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// playTimeout bounds a single player subprocess; a stuck player (e.g. a
// broken PulseAudio socket) must never pile up detached goroutines.
const playTimeout = 3 * time.Second

// Engine plays short notification sounds on a detached worker per event:
// playback never blocks the caller.
type Engine struct {
	enabled   bool
	player    string
	assetsDir string
	logger    *slog.Logger
}

// New probes PATH for paplay then aplay and remembers the asset directory
// sound files are read from.
func New(assetsDir string, enabled bool, logger *slog.Logger) *Engine {
	e := &Engine{enabled: enabled, assetsDir: assetsDir, logger: logger}

	if p, err := exec.LookPath("paplay"); err == nil {
		e.player = p
	} else if p, err := exec.LookPath("aplay"); err == nil {
		e.player = p
	}

	logger.Info("sound engine initialized", "player", e.player)
	return e
}

// SetEnabled toggles sound playback, applied on the next Play call.
func (e *Engine) SetEnabled(enabled bool) {
	e.enabled = enabled
}

// Play plays event as assetsDir/<event>.wav on a detached goroutine. Missing
// files and playback errors are swallowed: sound is strictly best-effort.
func (e *Engine) Play(event string) {
	if !e.enabled || e.player == "" {
		return
	}
	go e.playSync(event)
}

func (e *Engine) playSync(event string) {
	path := filepath.Join(e.assetsDir, fmt.Sprintf("%s.wav", event))

	ctx, cancel := context.WithTimeout(context.Background(), playTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.player, path)
	// Run the player in its own process group so a timeout kills the whole
	// subtree (some players fork helper processes) instead of leaking them.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-done:
	case <-ctx.Done():
		if cmd.Process != nil {
			_ = unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
		}
		<-done
	}
}
