package window

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestActiveWindowTitleReturnsWithinTwoSeconds(t *testing.T) {
	d := New(slog.New(slog.NewTextHandler(io.Discard, nil)))

	start := time.Now()
	_, _ = d.ActiveWindowTitle(context.Background())
	require.Less(t, time.Since(start), 2*time.Second)
}
