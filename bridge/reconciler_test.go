package bridge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hintmgrd/compositor"
	"hintmgrd/dispatch"
	"hintmgrd/driver"
	"hintmgrd/hint"
	"hintmgrd/rect"
)

func newTestRig(t *testing.T) (chan dispatch.Command, *compositor.Compositor) {
	t.Helper()
	c := compositor.New(hint.New(hint.Y4, hint.Threshold, false), rect.New(0, 0, 1000, 1000))
	d := dispatch.New(c, driver.NewNull())
	commands := make(chan dispatch.Command, 16)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go d.Run(ctx, commands)

	return commands, c
}

func TestReconcilerAddsNewWindows(t *testing.T) {
	commands, c := newTestRig(t)
	r := NewReconciler(commands)
	source := NewStaticSource()

	source.Push([]WindowSnapshot{
		{ID: "w1", PID: 100, AppID: "term", Title: "Terminal", Area: rect.New(0, 0, 200, 200), Visible: true},
	})

	require.NoError(t, r.processTree(context.Background(), source))

	assert.Len(t, c.Windows(), 1)
	assert.Contains(t, r.windowKeys, "w1")
}

func TestReconcilerUpdatesChangedWindow(t *testing.T) {
	commands, c := newTestRig(t)
	r := NewReconciler(commands)
	source := NewStaticSource()

	source.Push([]WindowSnapshot{
		{ID: "w1", PID: 100, AppID: "term", Title: "Terminal", Area: rect.New(0, 0, 200, 200), Visible: true},
	})
	require.NoError(t, r.processTree(context.Background(), source))

	source.Push([]WindowSnapshot{
		{ID: "w1", PID: 100, AppID: "term", Title: "Terminal", Area: rect.New(0, 0, 400, 400), Visible: true},
	})
	require.NoError(t, r.processTree(context.Background(), source))

	windows := c.Windows()
	require.Len(t, windows, 1)
	assert.Equal(t, rect.New(0, 0, 400, 400), windows[0].Data.Area)
}

func TestReconcilerRemovesStaleWindowsAndApps(t *testing.T) {
	commands, c := newTestRig(t)
	r := NewReconciler(commands)
	source := NewStaticSource()

	source.Push([]WindowSnapshot{
		{ID: "w1", PID: 100, AppID: "term", Area: rect.New(0, 0, 200, 200), Visible: true},
	})
	require.NoError(t, r.processTree(context.Background(), source))
	require.Len(t, c.Windows(), 1)

	source.Push([]WindowSnapshot{})
	require.NoError(t, r.processTree(context.Background(), source))

	// The removals carry no reply; a query queued behind them waits
	// until the dispatcher has applied them.
	flushed := make(chan hint.Hint, 1)
	commands <- dispatch.GetDefaultHint{Reply: flushed}
	<-flushed

	assert.Empty(t, c.Windows())
	assert.Empty(t, r.windowKeys)
	assert.Empty(t, r.appKeys)
}
