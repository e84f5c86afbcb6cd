package mapapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"resty.dev/v3"
)

// worldWidth is the longitudinal span of one world copy in degrees.
const worldWidth = 360.0

// Wrap is the wrap sub-namespace: dateline normalization and coordinate
// projection. Projection is delegated to the service's geometry endpoint —
// the harness never re-implements projection math.
type Wrap struct {
	client  *resty.Client
	baseURL string

	Normalize func(e Extent) Extent
	Project   func(ctx context.Context, p Point, toSRID int) (*Point, error)
}

func newWrap(client *resty.Client, baseURL string) *Wrap {
	w := &Wrap{client: client, baseURL: baseURL}
	w.Normalize = w.normalize
	w.Project = w.project
	return w
}

// normalize shifts an extent that crossed the dateline back into the
// canonical world copy, preserving its width.
func (w *Wrap) normalize(e Extent) Extent {
	for e.XMin < -worldWidth/2 {
		e.XMin += worldWidth
		e.XMax += worldWidth
	}
	for e.XMin >= worldWidth/2 {
		e.XMin -= worldWidth
		e.XMax -= worldWidth
	}
	return e
}

func (w *Wrap) project(ctx context.Context, p Point, toSRID int) (*Point, error) {
	res, err := w.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"f":        "json",
			"geometry": fmt.Sprintf("%g,%g", p.X, p.Y),
			"inSR":     strconv.Itoa(p.SRID),
			"outSR":    strconv.Itoa(toSRID),
		}).
		Get(w.baseURL + "/project")
	if err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("project: unexpected status %d", res.StatusCode())
	}

	var out Point
	if err := json.Unmarshal(res.Bytes(), &out); err != nil {
		return nil, fmt.Errorf("decode project response: %w", err)
	}
	return &out, nil
}
