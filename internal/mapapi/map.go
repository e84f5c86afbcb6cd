package mapapi

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/vk/patchgridgo/internal/ctxlog"
)

// ErrNamespaceNotReady is returned when a map is constructed or loaded
// before the namespace has been published.
var ErrNamespaceNotReady = errors.New("mapapi: namespace not ready")

// MapOptions configures one constructed map view.
type MapOptions struct {
	Basemap  string
	Extent   Extent
	LayerIDs []int
}

// Map is one constructed map view over the service. Construction is cheap;
// Load performs the service round-trip.
type Map struct {
	ns     *Namespace
	opts   MapOptions
	legend *Legend
	loaded atomic.Bool
}

// NewMap constructs a map view over an already published namespace.
func NewMap(ns *Namespace, opts MapOptions) *Map {
	return &Map{ns: ns, opts: opts}
}

// Load blocks until the map's layer metadata is available, the analog of
// the service's own "loaded" signal. It goes through the layer namespace's
// Legend slot, so any advice installed there observes every map load.
func (m *Map) Load(ctx context.Context) error {
	if m.ns == nil || m.ns.Layer == nil {
		return ErrNamespaceNotReady
	}

	legend, err := m.ns.Layer.Legend(ctx)
	if err != nil {
		return err
	}
	m.legend = legend
	m.loaded.Store(true)

	ctxlog.FromContext(ctx).Debug("Map loaded.",
		"basemap", m.opts.Basemap, "layers", len(m.opts.LayerIDs), "legend_layers", len(legend.Layers))
	return nil
}

// Loaded reports whether Load has completed successfully.
func (m *Map) Loaded() bool {
	return m.loaded.Load()
}

// Legend returns the legend captured during Load, or nil before it.
func (m *Map) Legend() *Legend {
	return m.legend
}

// Options returns the options the map was constructed with.
func (m *Map) Options() MapOptions {
	return m.opts
}

// Destroy releases the view. The namespace stays live — it is shared.
func (m *Map) Destroy() {
	m.loaded.Store(false)
	m.legend = nil
}
