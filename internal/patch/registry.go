package patch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vk/patchgridgo/internal/ctxlog"
)

// Registry collects the undo handles installed during one scenario run so
// its teardown can revert every wrap in a single call. A registry is owned
// by exactly one run; concurrent runs patching a shared namespace are not
// synchronized against each other.
type Registry struct {
	mu    sync.Mutex
	undos []Undo
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends undo handles in the order they were created. Nil handles are
// ignored so call sites can pass Apply results straight through.
func (r *Registry) Add(undos ...Undo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, undo := range undos {
		if undo != nil {
			r.undos = append(r.undos, undo)
		}
	}
}

// Len reports the number of registered handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.undos)
}

// Clear drops all handles without invoking them.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.undos = nil
}

// RestoreAll invokes every registered handle exactly once, in registration
// order. A handle that panics is logged and does not block the remaining
// handles — teardown must be total even under partial failure. The
// registry is empty afterwards, so a second call is a safe no-op.
func (r *Registry) RestoreAll(ctx context.Context) {
	r.mu.Lock()
	undos := r.undos
	r.undos = nil
	r.mu.Unlock()

	logger := ctxlog.FromContext(ctx)
	if len(undos) == 0 {
		logger.Debug("No patches to restore.")
		return
	}

	logger.Debug("Restoring patched methods.", "count", len(undos))
	for i, undo := range undos {
		restore(logger, i, undo)
	}
	logger.Debug("All patches restored.")
}

func restore(logger *slog.Logger, index int, undo Undo) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Patch restore failed, continuing with remaining handles.",
				"index", index, "panic", r)
		}
	}()
	undo()
}
