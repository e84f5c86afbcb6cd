package mapapi

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"resty.dev/v3"
)

// Control is the control sub-namespace: map widgets such as the basemap
// gallery and the feature-info popup. Widget templates resolve through a
// per-control override table so scenarios can swap in their own markup
// before constructing a map.
type Control struct {
	client  *resty.Client
	baseURL string

	mu        sync.Mutex
	templates map[string]string

	FetchBasemaps func(ctx context.Context) ([]Basemap, error)
	TemplateFor   func(control string) string
}

func newControl(client *resty.Client, baseURL string) *Control {
	c := &Control{
		client:    client,
		baseURL:   baseURL,
		templates: make(map[string]string),
	}
	c.FetchBasemaps = c.fetchBasemaps
	c.TemplateFor = c.templateFor
	return c
}

// SetTemplate overrides the markup template used for a named control. An
// empty path removes the override.
func (c *Control) SetTemplate(control, path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if path == "" {
		delete(c.templates, control)
		return
	}
	c.templates[control] = path
}

func (c *Control) templateFor(control string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if path, ok := c.templates[control]; ok {
		return path
	}
	return "templates/" + control + ".html"
}

func (c *Control) fetchBasemaps(ctx context.Context) ([]Basemap, error) {
	res, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("f", "json").
		Get(c.baseURL + "/basemaps")
	if err != nil {
		return nil, fmt.Errorf("fetch basemaps: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetch basemaps: unexpected status %d", res.StatusCode())
	}

	var payload struct {
		Basemaps []Basemap `json:"basemaps"`
	}
	if err := json.Unmarshal(res.Bytes(), &payload); err != nil {
		return nil, fmt.Errorf("decode basemaps response: %w", err)
	}
	return payload.Basemaps, nil
}
