// Package catalog fetches the backend viewer configuration and arranges
// its layer entries into the folder-grouped tree the layer-catalog control
// renders. The document schema is fixed by the backend and opaque beyond
// the fields read here.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vk/patchgridgo/internal/ctxlog"
	"resty.dev/v3"
)

// Document is the viewer configuration served by the backend config
// service.
type Document struct {
	Title    string    `json:"title"`
	Services []Service `json:"mapServices"`
}

// Service is one map service referenced by the configuration.
type Service struct {
	Name   string       `json:"name"`
	URL    string       `json:"url"`
	Layers []LayerEntry `json:"layers"`
}

// LayerEntry is one layer row of a service. Group names an optional folder
// the entry is displayed under; Order is an explicit sort hint within its
// folder, lower first.
type LayerEntry struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Group   string `json:"group,omitempty"`
	Order   int    `json:"order,omitempty"`
	Visible bool   `json:"visible"`
}

// Fetch retrieves and decodes the configuration document at url.
func Fetch(ctx context.Context, client *resty.Client, url string) (*Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Fetching catalog configuration.", "url", url)

	res, err := client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog config: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetch catalog config: unexpected status %d", res.StatusCode())
	}

	var doc Document
	if err := json.Unmarshal(res.Bytes(), &doc); err != nil {
		return nil, fmt.Errorf("decode catalog config: %w", err)
	}

	logger.Debug("Catalog configuration loaded.", "title", doc.Title, "services", len(doc.Services))
	return &doc, nil
}

// VisibleLayerIDs returns the IDs of every visible layer of the named
// service, in document order. An unknown service yields nil.
func (d *Document) VisibleLayerIDs(serviceName string) []int {
	for _, svc := range d.Services {
		if svc.Name != serviceName {
			continue
		}
		var ids []int
		for _, layer := range svc.Layers {
			if layer.Visible {
				ids = append(ids, layer.ID)
			}
		}
		return ids
	}
	return nil
}
