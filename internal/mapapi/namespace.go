package mapapi

import (
	"sync/atomic"

	"resty.dev/v3"
)

// Namespace is the root of the mapping service's client object graph. Its
// sub-namespaces hold the method slots that scenarios patch.
type Namespace struct {
	Info ServiceInfo

	Wrap    *Wrap
	Control *Control
	Layer   *Layer
}

func newNamespace(client *resty.Client, baseURL string, info ServiceInfo) *Namespace {
	return &Namespace{
		Info:    info,
		Wrap:    newWrap(client, baseURL),
		Control: newControl(client, baseURL),
		Layer:   newLayer(client, baseURL, info.Layers),
	}
}

// Handle is the shared accessor for an asynchronously published namespace.
// It is nil-safe: a Handle exists before the namespace does, and readers
// poll it until the loader publishes.
type Handle struct {
	ptr atomic.Pointer[Namespace]
}

// Get returns the namespace, or nil while it has not been published.
func (h *Handle) Get() *Namespace {
	return h.ptr.Load()
}

// Ready reports whether the namespace and all of its sub-namespaces are
// populated. This is the predicate scenarios hand to await.WaitFor.
func (h *Handle) Ready() bool {
	ns := h.Get()
	return ns != nil && ns.Wrap != nil && ns.Control != nil && ns.Layer != nil
}

func (h *Handle) publish(ns *Namespace) {
	h.ptr.Store(ns)
}
