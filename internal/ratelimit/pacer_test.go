// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacer_SpacesCalls(t *testing.T) {
	p := NewPacer(40 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, p.Wait(ctx))
	}
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 70*time.Millisecond, "three calls need two intervals")
	assert.Greater(t, p.Waited(), time.Duration(0))
}

func TestPacer_FirstCallImmediate(t *testing.T) {
	p := NewPacer(time.Hour)

	start := time.Now()
	require.NoError(t, p.Wait(context.Background()))
	assert.Less(t, time.Since(start), time.Second)
}

func TestPacer_Disabled(t *testing.T) {
	for _, p := range []*Pacer{NewPacer(0), NewPacer(-time.Second), nil} {
		for i := 0; i < 100; i++ {
			require.NoError(t, p.Wait(context.Background()))
		}
		assert.Equal(t, time.Duration(0), p.Waited())
	}
}

func TestPacer_Canceled(t *testing.T) {
	p := NewPacer(time.Hour)
	require.NoError(t, p.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Wait(ctx), context.Canceled)

	disabled := NewPacer(0)
	assert.ErrorIs(t, disabled.Wait(ctx), context.Canceled)
}
