// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package task

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartDeliversOneOutcome(t *testing.T) {
	ch := Start(context.Background(), func(ctx context.Context) Outcome {
		return Outcome{Message: "Done - 3 pages", Reveal: "/tmp/out"}
	})

	got, ok := <-ch
	require.True(t, ok)
	assert.Equal(t, Outcome{Message: "Done - 3 pages", Reveal: "/tmp/out"}, got)

	_, ok = <-ch
	assert.False(t, ok, "channel should be closed after the outcome")
}

func TestStartRunsOffCaller(t *testing.T) {
	release := make(chan struct{})
	ch := Start(context.Background(), func(ctx context.Context) Outcome {
		<-release
		return Outcome{Message: "finished"}
	})

	// The caller is free while the task blocks.
	select {
	case <-ch:
		t.Fatal("outcome delivered before the task finished")
	default:
	}
	close(release)
	assert.Equal(t, "finished", (<-ch).Message)
}

func TestRunPropagatesError(t *testing.T) {
	boom := errors.New("decode failed")
	got := Run(context.Background(), func(ctx context.Context) Outcome {
		return Outcome{Err: boom}
	})
	assert.ErrorIs(t, got.Err, boom)
}

func TestRunRecoversPanic(t *testing.T) {
	got := Run(context.Background(), func(ctx context.Context) Outcome {
		panic("nil image")
	})
	require.Error(t, got.Err)
	assert.Contains(t, got.Err.Error(), "nil image")
}

func TestRunPassesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	got := Run(ctx, func(ctx context.Context) Outcome {
		return Outcome{Message: ctx.Value(key{}).(string)}
	})
	assert.Equal(t, "v", got.Message)
}
