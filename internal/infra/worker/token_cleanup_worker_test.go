package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockInviteExpirer struct{ mock.Mock }

func (m *MockInviteExpirer) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockResetPurger struct{ mock.Mock }

func (m *MockResetPurger) PurgeStale(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func TestTokenCleanupWorker_RunOnce(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	invites := new(MockInviteExpirer)
	resets := new(MockResetPurger)
	invites.On("DeactivateExpired", mock.Anything, now).Return(int64(2), nil)
	resets.On("PurgeStale", mock.Anything, now).Return(int64(0), nil)

	w := NewTokenCleanupWorker(invites, resets, time.Minute)
	w.now = func() time.Time { return now }
	w.RunOnce(context.Background())

	invites.AssertExpectations(t)
	resets.AssertExpectations(t)
}

func TestTokenCleanupWorker_InviteFailureStillPurgesResets(t *testing.T) {
	invites := new(MockInviteExpirer)
	resets := new(MockResetPurger)
	invites.On("DeactivateExpired", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))
	resets.On("PurgeStale", mock.Anything, mock.Anything).Return(int64(3), nil)

	NewTokenCleanupWorker(invites, resets, time.Minute).RunOnce(context.Background())

	resets.AssertCalled(t, "PurgeStale", mock.Anything, mock.Anything)
}

func TestTokenCleanupWorker_StartStopsOnCancel(t *testing.T) {
	invites := new(MockInviteExpirer)
	resets := new(MockResetPurger)
	invites.On("DeactivateExpired", mock.Anything, mock.Anything).Return(int64(0), nil)
	ran := make(chan struct{}, 1)
	resets.On("PurgeStale", mock.Anything, mock.Anything).Return(int64(0), nil).Run(func(mock.Arguments) {
		select {
		case ran <- struct{}{}:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewTokenCleanupWorker(invites, resets, time.Hour).Start(ctx)
		close(done)
	}()

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("first pass did not run")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
