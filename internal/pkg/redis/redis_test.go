package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientGetSet(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	c, err := Connect(ctx, "redis://"+mr.Addr())
	require.NoError(t, err)
	defer c.Close()

	val, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, val)

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	val, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	mr.FastForward(2 * time.Minute)
	val, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestConnectFailures(t *testing.T) {
	_, err := Connect(context.Background(), "not-a-url")
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	_, err = Connect(context.Background(), "redis://"+addr)
	assert.Error(t, err)
}
