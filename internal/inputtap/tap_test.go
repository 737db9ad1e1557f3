package inputtap

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewStartsWithNoDevices(t *testing.T) {
	tap := New(testLogger(), "puntogo-virtual-keyboard")
	require.Equal(t, 0, tap.DeviceCount())
}

func TestStartClosesSinkOnCancel(t *testing.T) {
	tap := New(testLogger(), "puntogo-virtual-keyboard")

	ctx, cancel := context.WithCancel(context.Background())
	events := tap.Start(ctx)
	cancel()

	select {
	case _, ok := <-events:
		require.False(t, ok, "sink should be closed once ctx is cancelled")
	case <-time.After(2 * time.Second):
		t.Fatal("sink was not closed within timeout")
	}

	require.Equal(t, 0, tap.DeviceCount())
}
