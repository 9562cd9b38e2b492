package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// testLogger implements Logger for testing
type testLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *testLogger) Debug(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("DEBUG: %s %v", msg, keysAndValues))
}

func (l *testLogger) Info(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("INFO: %s %v", msg, keysAndValues))
}

func (l *testLogger) Error(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("ERROR: %s %v", msg, keysAndValues))
}

func (l *testLogger) all() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.messages, "\n")
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *testLogger) {
	t.Helper()
	logger := &testLogger{}
	d, err := New(logger)
	require.NoError(t, err)
	t.Cleanup(d.Close)
	return d, logger
}

func TestDispatcher_SyncHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)

	var got Job
	d.Register("render", func(ctx context.Context, j Job) error {
		got = j
		return nil
	})

	require.NoError(t, d.Dispatch(context.Background(), Job{Command: "render", Args: []string{"corsair.yaml"}}))
	assert.Equal(t, []string{"corsair.yaml"}, got.Args)
	assert.False(t, got.Queued.IsZero())
}

func TestDispatcher_SyncHandlerError(t *testing.T) {
	d, _ := newTestDispatcher(t)
	boom := errors.New("boom")
	d.Register("render", func(ctx context.Context, j Job) error { return boom })

	assert.ErrorIs(t, d.Dispatch(context.Background(), Job{Command: "render"}), boom)
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	d, _ := newTestDispatcher(t)
	err := d.Dispatch(context.Background(), Job{Command: "publish"})
	assert.ErrorContains(t, err, "unknown command: publish")
}

func TestDispatcher_HasHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)
	d.Register("render", func(ctx context.Context, j Job) error { return nil })

	assert.True(t, d.HasHandler("render"))
	assert.False(t, d.HasHandler("catalog"))
}

func TestDispatcher_BufferedHandler(t *testing.T) {
	defer goleak.VerifyNone(t)

	d, _ := newTestDispatcher(t)

	var processed atomic.Int32
	d.Register("render", func(ctx context.Context, j Job) error {
		processed.Add(1)
		return nil
	}, Buffered(100))

	for i := 0; i < 3; i++ {
		require.NoError(t, d.Dispatch(context.Background(), Job{Command: "render"}))
	}

	d.Close()
	assert.Equal(t, int32(3), processed.Load())
}

func TestDispatcher_BufferedKeepsOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	d, _ := newTestDispatcher(t)

	var mu sync.Mutex
	var order []string
	d.Register("render", func(ctx context.Context, j Job) error {
		mu.Lock()
		defer mu.Unlock()
		order = append(order, j.Args[0])
		return nil
	}, Buffered(10), Blocking())

	for _, name := range []string{"a.yaml", "b.yaml", "c.yaml"} {
		require.NoError(t, d.Dispatch(context.Background(), Job{Command: "render", Args: []string{name}}))
	}

	d.Close()
	assert.Equal(t, []string{"a.yaml", "b.yaml", "c.yaml"}, order)
}

func TestDispatcher_BufferedDropsWhenFull(t *testing.T) {
	d, _ := newTestDispatcher(t)

	started := make(chan struct{})
	block := make(chan struct{})
	var once sync.Once
	d.Register("render", func(ctx context.Context, j Job) error {
		once.Do(func() { close(started) })
		<-block
		return nil
	}, Buffered(2))

	// one job in the handler, two in the queue
	require.NoError(t, d.Dispatch(context.Background(), Job{Command: "render"}))
	<-started
	require.NoError(t, d.Dispatch(context.Background(), Job{Command: "render"}))
	require.NoError(t, d.Dispatch(context.Background(), Job{Command: "render"}))

	err := d.Dispatch(context.Background(), Job{Command: "render"})
	assert.ErrorContains(t, err, "queue full: render")

	close(block)
}

func TestDispatcher_QueuedJobSurvivesCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	d, _ := newTestDispatcher(t)

	var ctxErr atomic.Value
	d.Register("render", func(ctx context.Context, j Job) error {
		ctxErr.Store(fmt.Sprint(ctx.Err()))
		return nil
	}, Buffered(1), Blocking())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, d.Dispatch(ctx, Job{Command: "render"}))
	cancel()

	d.Close()
	assert.Equal(t, "<nil>", ctxErr.Load())
}

func TestDispatcher_DispatchAfterClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	d, _ := newTestDispatcher(t)
	d.Register("render", func(ctx context.Context, j Job) error { return nil }, Buffered(1))

	d.Close()
	d.Close()
	assert.ErrorIs(t, d.Dispatch(context.Background(), Job{Command: "render"}), ErrClosed)
}

func TestDispatcher_Logged(t *testing.T) {
	d, logger := newTestDispatcher(t)

	d.Register("ok", func(ctx context.Context, j Job) error { return nil }, Logged())
	d.Register("fail", func(ctx context.Context, j Job) error { return errors.New("bad unit") }, Logged())

	require.NoError(t, d.Dispatch(context.Background(), Job{Command: "ok", Queued: time.Now()}))
	require.Error(t, d.Dispatch(context.Background(), Job{Command: "fail"}))

	out := logger.all()
	assert.Contains(t, out, "DEBUG: handling job")
	assert.Contains(t, out, "DEBUG: job complete")
	assert.Contains(t, out, "ERROR: job failed")
	assert.Contains(t, out, "bad unit")
}
