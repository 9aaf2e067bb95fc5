package scheduler

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cssterm/cssterm/config"
	"github.com/cssterm/cssterm/driver"
	"github.com/cssterm/cssterm/internal/errs"
)

func testConfig() config.EngineConfig {
	cfg := config.Default()
	cfg.TargetFPS = 1000 // keep test wall-clock short
	cfg.IdleAfterFrames = 2
	cfg.IdleMaxMillis = 20
	cfg.EventBudgetPerFrame = 8
	return cfg
}

func TestRunExitsOnChannelClose(t *testing.T) {
	events := make(chan driver.Event)
	close(events)

	s := New(testConfig(), events, func(driver.Event) bool { return false }, func(bool) error { return nil }, nil, nil)
	err := s.Run()
	assert.NoError(t, err)
}

func TestRunExitsOnShutdownEvent(t *testing.T) {
	events := make(chan driver.Event, 1)
	events <- driver.ShutdownEvent{}

	var renderCalls int32
	s := New(testConfig(), events, func(driver.Event) bool { return true }, func(bool) error {
		atomic.AddInt32(&renderCalls, 1)
		return nil
	}, nil, nil)

	err := s.Run()
	assert.NoError(t, err)
	assert.EqualValues(t, 0, renderCalls, "a render must not run after shutdown is observed")
}

func TestRunRendersOnlyWhenEventMarksDirty(t *testing.T) {
	events := make(chan driver.Event, 2)
	events <- driver.KeyEvent{Code: driver.KeyChar, Rune: 'a'}
	events <- driver.ShutdownEvent{}

	var renderCalls int32
	onEvent := func(ev driver.Event) bool {
		_, isKey := ev.(driver.KeyEvent)
		return isKey
	}
	s := New(testConfig(), events, onEvent, func(bool) error {
		atomic.AddInt32(&renderCalls, 1)
		return nil
	}, nil, nil)

	require.NoError(t, s.Run())
	assert.EqualValues(t, 1, renderCalls)
}

func TestRunRetriesOnceOnIoErrorThenGivesUp(t *testing.T) {
	events := make(chan driver.Event, 1)
	events <- driver.KeyEvent{Code: driver.KeyChar, Rune: 'a'}

	var calls int32
	render := func(full bool) error {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			assert.False(t, full, "first attempt should not force a full redraw")
			return &errs.IoError{Op: "write", Err: errors.New("broken pipe")}
		}
		assert.True(t, full, "retry should force a full redraw")
		return &errs.IoError{Op: "write", Err: errors.New("broken pipe")}
	}

	s := New(testConfig(), events, func(driver.Event) bool { return true }, render, nil, nil)
	err := s.Run()

	require.Error(t, err)
	assert.EqualValues(t, 2, calls)
}

func TestRunRecoversAfterSuccessfulRetry(t *testing.T) {
	events := make(chan driver.Event, 2)
	events <- driver.KeyEvent{Code: driver.KeyChar, Rune: 'a'}
	events <- driver.ShutdownEvent{}

	var calls int32
	render := func(full bool) error {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			return &errs.IoError{Op: "write", Err: errors.New("broken pipe")}
		}
		return nil
	}

	s := New(testConfig(), events, func(driver.Event) bool { return true }, render, nil, nil)
	require.NoError(t, s.Run())
	assert.EqualValues(t, 2, calls)
}

func TestCoalesceCollapsesConsecutiveResize(t *testing.T) {
	batch := coalesce(nil, driver.ResizeEvent{Cols: 80, Rows: 24})
	batch = coalesce(batch, driver.ResizeEvent{Cols: 100, Rows: 40})

	require.Len(t, batch, 1)
	assert.Equal(t, driver.ResizeEvent{Cols: 100, Rows: 40}, batch[0])
}

func TestCoalesceCollapsesConsecutiveMouseMove(t *testing.T) {
	batch := coalesce(nil, driver.MouseEvent{Action: driver.MouseMove, X: 1, Y: 1})
	batch = coalesce(batch, driver.MouseEvent{Action: driver.MouseMove, X: 2, Y: 2})

	require.Len(t, batch, 1)
	assert.Equal(t, 2, batch[0].(driver.MouseEvent).X)
}

func TestCoalesceNeverDropsKeyEvents(t *testing.T) {
	batch := coalesce(nil, driver.KeyEvent{Code: driver.KeyChar, Rune: 'a'})
	batch = coalesce(batch, driver.KeyEvent{Code: driver.KeyChar, Rune: 'b'})

	assert.Len(t, batch, 2)
}

func TestCoalesceDoesNotMergeMouseMoveWithMousePress(t *testing.T) {
	batch := coalesce(nil, driver.MouseEvent{Action: driver.MouseMove, X: 1, Y: 1})
	batch = coalesce(batch, driver.MouseEvent{Action: driver.MousePress, Button: driver.MouseLeft, X: 1, Y: 1})

	assert.Len(t, batch, 2)
}

func TestDrainTimesOutWithNoEvents(t *testing.T) {
	events := make(chan driver.Event)
	s := New(testConfig(), events, func(driver.Event) bool { return false }, func(bool) error { return nil }, nil, nil)

	start := time.Now()
	batch, shutdown := s.drain(10 * time.Millisecond)
	elapsed := time.Since(start)

	assert.False(t, shutdown)
	assert.Empty(t, batch)
	assert.GreaterOrEqual(t, elapsed, 10*time.Millisecond)
}
