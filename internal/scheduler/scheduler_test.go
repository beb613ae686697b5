package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	calls atomic.Int32
	n     int
	err   error
}

func (f *fakePublisher) PublishDue(ctx context.Context) (int, error) {
	f.calls.Add(1)
	return f.n, f.err
}

func TestScheduler_AddRejectsBadSpec(t *testing.T) {
	s := New(time.Second)
	err := s.Add("every now and then", PublishDueJob(&fakePublisher{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), PublishDueJobName)
}

func TestScheduler_Next(t *testing.T) {
	s := New(time.Second)
	require.NoError(t, s.Add("@every 1m", PublishDueJob(&fakePublisher{})))

	s.Start()
	defer s.Stop(context.Background())

	next, ok := s.Next(PublishDueJobName)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), next, 5*time.Second)

	_, ok = s.Next("unknown")
	assert.False(t, ok)
}

func TestScheduler_RunsJobOnSchedule(t *testing.T) {
	pub := &fakePublisher{n: 2}
	s := New(time.Second)
	require.NoError(t, s.Add("@every 1s", PublishDueJob(pub)))

	s.Start()
	defer s.Stop(context.Background())

	assert.Eventually(t, func() bool { return pub.calls.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
}

func TestScheduler_RunNow(t *testing.T) {
	s := New(time.Second)

	var gotDeadline bool
	s.RunNow(JobFunc{
		JobName: "tick",
		Fn: func(ctx context.Context) error {
			_, gotDeadline = ctx.Deadline()
			return nil
		},
	})
	assert.True(t, gotDeadline)

	pub := &fakePublisher{err: errors.New("db down")}
	s.RunNow(PublishDueJob(pub))
	assert.Equal(t, int32(1), pub.calls.Load())
}

func TestScheduler_RecoversPanics(t *testing.T) {
	var runs atomic.Int32
	s := New(time.Second)
	require.NoError(t, s.Add("@every 1s", JobFunc{
		JobName: "panicky",
		Fn: func(ctx context.Context) error {
			runs.Add(1)
			panic("boom")
		},
	}))

	s.Start()
	defer s.Stop(context.Background())

	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, 4*time.Second, 50*time.Millisecond)
}

func TestScheduler_StopCancelsRunningJobs(t *testing.T) {
	s := New(0)
	started := make(chan struct{})
	cancelled := make(chan struct{})
	require.NoError(t, s.Add("@every 1s", JobFunc{
		JobName: "slow",
		Fn: func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			close(cancelled)
			return ctx.Err()
		},
	}))

	s.Start()
	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("job never started")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	s.Stop(stopCtx)

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("running job was not cancelled")
	}
}
