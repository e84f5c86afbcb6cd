package patch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLayer mimics a facade sub-namespace: exported func fields are method
// slots, everything else is ineligible.
type fakeLayer struct {
	Query  func(where string) (string, error)
	Sum    func(nums ...int) int
	Empty  func() error
	Name   string
	hidden func()
}

type fakeBase struct {
	Shared func() string
}

// fakeControl promotes Shared from an embedded struct; patching it through
// fakeControl must be rejected.
type fakeControl struct {
	fakeBase
	Show func() string
}

func newFakeLayer() *fakeLayer {
	return &fakeLayer{
		Query: func(where string) (string, error) {
			if where == "" {
				return "", errors.New("empty where clause")
			}
			return "rows:" + where, nil
		},
		Sum: func(nums ...int) int {
			total := 0
			for _, n := range nums {
				total += n
			}
			return total
		},
	}
}

func TestApply_PreconditionFailures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		target any
		method string
	}{
		{"nil target", nil, "Query"},
		{"non-pointer target", fakeLayer{}, "Query"},
		{"nil pointer", (*fakeLayer)(nil), "Query"},
		{"missing method", newFakeLayer(), "NoSuchMethod"},
		{"non-func field", newFakeLayer(), "Name"},
		{"unexported field", newFakeLayer(), "hidden"},
		{"nil slot", newFakeLayer(), "Empty"},
		{"promoted slot", &fakeControl{}, "Shared"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotPanics(t, func() {
				undo, ok := Apply(ctx, tt.target, tt.method)
				assert.False(t, ok)
				assert.Nil(t, undo)
			})
		})
	}
}

func TestApply_TransparentOnSuccess(t *testing.T) {
	ctx := context.Background()
	layer := newFakeLayer()

	undo, ok := Apply(ctx, layer, "Query", WithLabel("namespace.layer.Query"))
	require.True(t, ok)
	require.NotNil(t, undo)

	got, err := layer.Query("1=1")
	require.NoError(t, err)
	assert.Equal(t, "rows:1=1", got, "patched call must return the original result unchanged")
}

func TestApply_TransparentOnError(t *testing.T) {
	ctx := context.Background()
	layer := newFakeLayer()
	sentinel := errors.New("backend unavailable")
	layer.Query = func(string) (string, error) { return "", sentinel }

	_, ok := Apply(ctx, layer, "Query")
	require.True(t, ok)

	_, err := layer.Query("1=1")
	assert.Same(t, sentinel, err, "the original error must be re-raised unchanged")
}

// statusError is a concrete value-type error, the shape some client
// libraries return instead of the error interface.
type statusError struct{ code int }

func (e statusError) Error() string { return fmt.Sprintf("status %d", e.code) }

func TestApply_TransparentWithConcreteErrorResult(t *testing.T) {
	ctx := context.Background()
	target := &struct {
		Check func() statusError
	}{}
	target.Check = func() statusError { return statusError{code: 404} }

	_, ok := Apply(ctx, target, "Check")
	require.True(t, ok)

	require.NotPanics(t, func() {
		assert.Equal(t, statusError{code: 404}, target.Check())
	})
}

func TestApply_PanicReRaised(t *testing.T) {
	ctx := context.Background()
	layer := newFakeLayer()
	layer.Query = func(string) (string, error) { panic("boom") }

	_, ok := Apply(ctx, layer, "Query")
	require.True(t, ok)

	require.PanicsWithValue(t, "boom", func() {
		_, _ = layer.Query("1=1")
	})
}

func TestApply_VariadicSlot(t *testing.T) {
	ctx := context.Background()
	layer := newFakeLayer()

	_, ok := Apply(ctx, layer, "Sum")
	require.True(t, ok)

	assert.Equal(t, 6, layer.Sum(1, 2, 3))
	assert.Equal(t, 0, layer.Sum())
}

func TestApply_UndoRestoresOriginal(t *testing.T) {
	ctx := context.Background()
	layer := newFakeLayer()
	calls := 0
	layer.Query = func(where string) (string, error) {
		calls++
		return where, nil
	}

	undo, ok := Apply(ctx, layer, "Query")
	require.True(t, ok)

	_, _ = layer.Query("a")
	require.Equal(t, 1, calls)

	undo()
	got, err := layer.Query("b")
	require.NoError(t, err)
	assert.Equal(t, "b", got)
	assert.Equal(t, 2, calls, "the restored slot must be the original implementation")

	// A second undo is a safe no-op.
	require.NotPanics(t, func() { undo() })
}

func TestApply_Transform(t *testing.T) {
	ctx := context.Background()
	layer := newFakeLayer()

	_, ok := Apply(ctx, layer, "Query", WithTransform(func(results []any) []any {
		results[0] = "rewritten"
		return results
	}))
	require.True(t, ok)

	got, err := layer.Query("1=1")
	require.NoError(t, err)
	assert.Equal(t, "rewritten", got)
}

func TestApply_TransformWrongShapeKeepsOriginal(t *testing.T) {
	ctx := context.Background()
	layer := newFakeLayer()

	_, ok := Apply(ctx, layer, "Query", WithTransform(func([]any) []any {
		return nil
	}))
	require.True(t, ok)

	got, err := layer.Query("1=1")
	require.NoError(t, err)
	assert.Equal(t, "rows:1=1", got, "a malformed transform must not break the call")
}

func TestMethodsWithLogging_PatchesEligibleSlotsOnly(t *testing.T) {
	ctx := context.Background()
	layer := newFakeLayer() // Query and Sum bound, Empty nil

	undos := MethodsWithLogging(ctx, layer, "namespace.layer")
	assert.Len(t, undos, 2)

	got, err := layer.Query("1=1")
	require.NoError(t, err)
	assert.Equal(t, "rows:1=1", got)

	for _, undo := range undos {
		undo()
	}
}

func TestMethodsWithLogging_BadTarget(t *testing.T) {
	assert.Empty(t, MethodsWithLogging(context.Background(), 42, "nonsense"))
}
