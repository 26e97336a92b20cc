package game

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
)

func TestSchedulerFiresWithToken(t *testing.T) {
	mock := clock.NewMock()
	ts := NewTurnScheduler(mock)

	var fired []uint64
	ts.Schedule(30*time.Second, 7, func(token uint64) {
		fired = append(fired, token)
	})

	mock.Add(29 * time.Second)
	assert.Empty(t, fired)

	mock.Add(time.Second)
	assert.Equal(t, []uint64{7}, fired)
	assert.Zero(t, ts.Outstanding(7))
}

func TestSchedulerHandleStop(t *testing.T) {
	mock := clock.NewMock()
	ts := NewTurnScheduler(mock)

	fired := false
	h := ts.Schedule(time.Second, 1, func(uint64) { fired = true })
	h.Stop()

	mock.Add(2 * time.Second)
	assert.False(t, fired)
	assert.Zero(t, ts.Outstanding(1))
}

func TestSchedulerCancelAllByToken(t *testing.T) {
	mock := clock.NewMock()
	ts := NewTurnScheduler(mock)

	var fired []uint64
	record := func(token uint64) { fired = append(fired, token) }
	ts.Schedule(time.Second, 1, record)
	ts.Schedule(time.Second, 1, record)
	ts.Schedule(time.Second, 2, record)

	ts.CancelAll(1)
	assert.Zero(t, ts.Outstanding(1))
	assert.Equal(t, 1, ts.Outstanding(2))

	mock.Add(time.Second)
	assert.Equal(t, []uint64{2}, fired)
}
