package patch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RestoreOrder(t *testing.T) {
	reg := NewRegistry()
	var order []int
	reg.Add(func() { order = append(order, 1) })
	reg.Add(func() { order = append(order, 2) }, func() { order = append(order, 3) })
	require.Equal(t, 3, reg.Len())

	reg.RestoreAll(context.Background())

	assert.Equal(t, []int{1, 2, 3}, order, "handles must run in registration order")
	assert.Equal(t, 0, reg.Len())
}

// A failing undo must not block the remaining handles, and the registry
// must still be empty afterwards.
func TestRegistry_FailingUndoDoesNotBlockRest(t *testing.T) {
	reg := NewRegistry()
	secondRan := false
	reg.Add(func() { panic("undo exploded") })
	reg.Add(func() { secondRan = true })

	require.NotPanics(t, func() {
		reg.RestoreAll(context.Background())
	})

	assert.True(t, secondRan)
	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_RestoreAllIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	invocations := 0
	reg.Add(func() { invocations++ })

	ctx := context.Background()
	reg.RestoreAll(ctx)
	reg.RestoreAll(ctx)

	assert.Equal(t, 1, invocations, "no handle may be invoked twice")
	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_AddIgnoresNil(t *testing.T) {
	reg := NewRegistry()
	reg.Add(nil)
	reg.Add(func() {}, nil)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_ClearDropsWithoutInvoking(t *testing.T) {
	reg := NewRegistry()
	invoked := false
	reg.Add(func() { invoked = true })

	reg.Clear()
	reg.RestoreAll(context.Background())

	assert.False(t, invoked)
}
