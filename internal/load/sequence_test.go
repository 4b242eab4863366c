package load

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestThenFeedsOutputForward(t *testing.T) {
	parse := Step[string, int](func(_ context.Context, in string) (int, error) {
		return strconv.Atoi(in)
	})
	double := Step[int, int](func(_ context.Context, in int) (int, error) {
		return in * 2, nil
	})
	out, err := Then(parse, double)(context.Background(), "21")
	require.NoError(t, err)
	require.Equal(t, 42, out)
}

func TestThenSkipsNextOnFailure(t *testing.T) {
	boom := errors.New("boom")
	var called atomic.Bool
	first := Named("resolve", Step[string, string](func(context.Context, string) (string, error) {
		return "", boom
	}))
	next := Step[string, string](func(context.Context, string) (string, error) {
		called.Store(true)
		return "never", nil
	})
	_, err := Then(first, next)(context.Background(), "x")
	require.ErrorIs(t, err, boom)
	require.False(t, called.Load())

	var stage *StageError
	require.ErrorAs(t, err, &stage)
	require.Equal(t, "resolve", stage.Stage)
}

func TestThenStopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	first := Step[int, int](func(context.Context, int) (int, error) {
		cancel()
		return 1, nil
	})
	next := Step[int, int](func(context.Context, int) (int, error) {
		t.Fatal("next step ran after cancellation")
		return 0, nil
	})
	_, err := Then(first, next)(ctx, 0)
	require.ErrorIs(t, err, context.Canceled)
}

func TestBothWaitsForBoth(t *testing.T) {
	a, b, err := Both(context.Background(),
		func(context.Context) (string, error) {
			time.Sleep(20 * time.Millisecond)
			return "slow", nil
		},
		func(context.Context) (int, error) { return 7, nil },
	)
	require.NoError(t, err)
	require.Equal(t, "slow", a)
	require.Equal(t, 7, b)
}

func TestBothDropsPartialResults(t *testing.T) {
	boom := errors.New("boom")
	a, b, err := Both(context.Background(),
		func(context.Context) (string, error) { return "ok", nil },
		func(context.Context) (int, error) { return 0, boom },
	)
	require.ErrorIs(t, err, boom)
	require.Empty(t, a)
	require.Zero(t, b)
}

func TestDetachRoutesErrorsToHandler(t *testing.T) {
	errs := make(chan error, 1)
	boom := errors.New("refresh failed")
	Detach(context.Background(), func(context.Context) error { return boom }, func(err error) { errs <- err })
	select {
	case err := <-errs:
		require.ErrorIs(t, err, boom)
	case <-time.After(time.Second):
		t.Fatal("detached error never reported")
	}
}

func TestDetachRecoversPanics(t *testing.T) {
	errs := make(chan error, 1)
	Detach(context.Background(), func(context.Context) error { panic("bad") }, func(err error) { errs <- err })
	select {
	case err := <-errs:
		require.Contains(t, err.Error(), "panicked")
	case <-time.After(time.Second):
		t.Fatal("panic never reported")
	}
}
