package patch

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/vk/patchgridgo/internal/ctxlog"
)

// Undo restores a patched method slot to its pre-patch value. Calling it
// more than once, or after the target has been re-created, is a safe no-op.
type Undo func()

// Option configures how a slot is wrapped.
type Option func(*options)

type options struct {
	label     string
	transform func(results []any) []any
}

// WithLabel sets the human-readable path label used in log entries, e.g.
// "namespace.layer.Identify". Defaults to "<TargetType>.<field>".
func WithLabel(label string) Option {
	return func(o *options) { o.label = label }
}

// WithTransform installs a result transformation: the wrapper hands the
// original call's results to fn and returns whatever fn produces. The
// patch stops being observationally transparent, so every use must
// document what it rewrites. fn must return the same number of values; a
// mismatched slice is logged and discarded, keeping the original results.
func WithTransform(fn func(results []any) []any) Option {
	return func(o *options) { o.transform = fn }
}

// Apply wraps the named method slot on target with logging and timing
// advice. target must be a non-nil pointer to a struct declaring an
// exported, non-nil function field with that name on the struct itself —
// fields promoted from embedded structs are rejected, so a shared base is
// never patched through one of its users. On any precondition failure
// Apply logs the reason and reports ok=false without an error or panic.
//
// The wrapper forwards arguments unchanged, logs the outcome and the
// elapsed duration — inspecting a trailing error result when the slot has
// one — and returns the original results untouched unless a transform was
// installed. A panic from the original is logged with its duration and
// re-raised as-is.
func Apply(ctx context.Context, target any, method string, opts ...Option) (Undo, bool) {
	logger := ctxlog.FromContext(ctx)

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	slot, ok := findSlot(logger, target, method)
	if !ok {
		return nil, false
	}

	label := o.label
	if label == "" {
		label = fmt.Sprintf("%s.%s", reflect.TypeOf(target).Elem().Name(), method)
	}

	orig := reflect.ValueOf(slot.Interface())
	wrapper := reflect.MakeFunc(slot.Type(), func(args []reflect.Value) []reflect.Value {
		return invoke(logger, label, orig, args, o.transform)
	})
	slot.Set(wrapper)
	logger.Debug("Patched method slot.", "method", label)

	var once sync.Once
	undo := func() {
		once.Do(func() {
			// The slot may already hold something else if the target was
			// re-created; restoring the captured original is still safe.
			defer func() { recover() }()
			slot.Set(orig)
			logger.Debug("Restored method slot.", "method", label)
		})
	}
	return undo, true
}

// MethodsWithLogging patches every eligible method slot on target with the
// default logging and timing advice. Ineligible fields (non-func, nil,
// unexported, promoted) are skipped per slot. The undo handles come back
// in field declaration order.
func MethodsWithLogging(ctx context.Context, target any, label string, opts ...Option) []Undo {
	logger := ctxlog.FromContext(ctx)

	v := reflect.ValueOf(target)
	if !validTarget(v) {
		logger.Warn("Patch target is not a pointer to a struct, nothing to patch.", "label", label)
		return nil
	}

	var undos []Undo
	elemType := v.Elem().Type()
	for i := 0; i < elemType.NumField(); i++ {
		field := elemType.Field(i)
		if !field.IsExported() || field.Type.Kind() != reflect.Func {
			continue
		}
		slotOpts := append([]Option{WithLabel(label + "." + field.Name)}, opts...)
		if undo, ok := Apply(ctx, target, field.Name, slotOpts...); ok {
			undos = append(undos, undo)
		}
	}
	logger.Debug("Patched method slots with logging.", "label", label, "count", len(undos))
	return undos
}

// findSlot resolves the named field to a settable func value, enforcing
// the applier's preconditions. Failures are logged, never returned.
func findSlot(logger *slog.Logger, target any, method string) (reflect.Value, bool) {
	v := reflect.ValueOf(target)
	if !validTarget(v) {
		logger.Warn("Patch skipped: target is not a pointer to a struct.", "method", method)
		return reflect.Value{}, false
	}

	elem := v.Elem()
	field, found := elem.Type().FieldByName(method)
	if !found {
		logger.Warn("Patch skipped: no such method slot.", "target", elem.Type().Name(), "method", method)
		return reflect.Value{}, false
	}
	if len(field.Index) > 1 {
		logger.Warn("Patch skipped: slot is promoted from an embedded struct.",
			"target", elem.Type().Name(), "method", method)
		return reflect.Value{}, false
	}
	if !field.IsExported() || field.Type.Kind() != reflect.Func {
		logger.Warn("Patch skipped: field is not an exported function slot.",
			"target", elem.Type().Name(), "method", method)
		return reflect.Value{}, false
	}

	slot := elem.FieldByIndex(field.Index)
	if slot.IsNil() {
		logger.Warn("Patch skipped: method slot is nil.", "target", elem.Type().Name(), "method", method)
		return reflect.Value{}, false
	}
	return slot, true
}

func validTarget(v reflect.Value) bool {
	return v.Kind() == reflect.Pointer && !v.IsNil() && v.Elem().Kind() == reflect.Struct
}

// invoke is the around advice installed on every patched slot.
func invoke(logger *slog.Logger, label string, orig reflect.Value, args []reflect.Value, transform func([]any) []any) []reflect.Value {
	start := time.Now()
	logger.Debug("▶️ Calling patched method.", "method", label, "args", len(args))

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Patched method panicked.",
				"method", label, "duration", time.Since(start), "panic", r)
			panic(r)
		}
	}()

	var results []reflect.Value
	if orig.Type().IsVariadic() {
		results = orig.CallSlice(args)
	} else {
		results = orig.Call(args)
	}
	elapsed := time.Since(start)

	if err := trailingError(results); err != nil {
		logger.Warn("Patched method returned error.", "method", label, "duration", elapsed, "error", err)
	} else {
		logger.Debug("✅ Patched method completed.", "method", label, "duration", elapsed)
	}

	if transform != nil {
		results = transformResults(logger, label, orig.Type(), results, transform)
	}
	return results
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// trailingError extracts a non-nil error from the final result, if the
// slot's signature has one. Concrete error types need care: IsNil panics
// on non-nilable kinds, and a struct implementing error is never nil.
func trailingError(results []reflect.Value) error {
	if len(results) == 0 {
		return nil
	}
	last := results[len(results)-1]
	if !last.Type().Implements(errorType) {
		return nil
	}
	switch last.Kind() {
	case reflect.Interface, reflect.Pointer:
		if last.IsNil() {
			return nil
		}
	}
	return last.Interface().(error)
}

// transformResults applies a documented result transformation, converting
// through []any so call sites never handle reflect values. The call itself
// is never broken: a transform returning the wrong shape is dropped.
func transformResults(logger *slog.Logger, label string, fnType reflect.Type, results []reflect.Value, transform func([]any) []any) []reflect.Value {
	raw := make([]any, len(results))
	for i, r := range results {
		raw[i] = r.Interface()
	}

	replaced := transform(raw)
	if len(replaced) != len(results) {
		logger.Error("Result transform returned wrong number of values, keeping original results.",
			"method", label, "want", len(results), "got", len(replaced))
		return results
	}

	out := make([]reflect.Value, len(replaced))
	for i, r := range replaced {
		if r == nil {
			out[i] = reflect.Zero(fnType.Out(i))
			continue
		}
		rv := reflect.ValueOf(r)
		if !rv.Type().AssignableTo(fnType.Out(i)) {
			logger.Error("Result transform returned incompatible value, keeping original results.",
				"method", label, "index", i, "want", fnType.Out(i).String(), "got", rv.Type().String())
			return results
		}
		out[i] = rv
	}
	return out
}
