package mapapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"resty.dev/v3"
)

// Layer is the layer sub-namespace: query, identify, export and legend
// operations against the service's layer endpoints. The exported func
// fields are method slots; constructors bind them to the unexported
// default implementations below.
type Layer struct {
	client  *resty.Client
	baseURL string
	infos   []LayerInfo

	Query       func(ctx context.Context, layerID int, where string) (*FeatureSet, error)
	Identify    func(ctx context.Context, p IdentifyParams) (*IdentifyResult, error)
	ExportImage func(ctx context.Context, p ExportParams) (*ImageResult, error)
	Legend      func(ctx context.Context) (*Legend, error)
}

func newLayer(client *resty.Client, baseURL string, infos []LayerInfo) *Layer {
	l := &Layer{client: client, baseURL: baseURL, infos: infos}
	l.Query = l.query
	l.Identify = l.identify
	l.ExportImage = l.exportImage
	l.Legend = l.legend
	return l
}

// Infos returns the service's layer metadata as loaded.
func (l *Layer) Infos() []LayerInfo {
	return l.infos
}

func (l *Layer) query(ctx context.Context, layerID int, where string) (*FeatureSet, error) {
	res, err := l.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"f":     "json",
			"where": where,
		}).
		Get(fmt.Sprintf("%s/%d/query", l.baseURL, layerID))
	if err != nil {
		return nil, fmt.Errorf("query layer %d: %w", layerID, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("query layer %d: unexpected status %d", layerID, res.StatusCode())
	}

	var fs FeatureSet
	if err := json.Unmarshal(res.Bytes(), &fs); err != nil {
		return nil, fmt.Errorf("decode query response: %w", err)
	}
	return &fs, nil
}

func (l *Layer) identify(ctx context.Context, p IdentifyParams) (*IdentifyResult, error) {
	layerIDs := make([]string, len(p.LayerIDs))
	for i, id := range p.LayerIDs {
		layerIDs[i] = strconv.Itoa(id)
	}

	res, err := l.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"f":         "json",
			"geometry":  fmt.Sprintf("%g,%g", p.Location.X, p.Location.Y),
			"tolerance": strconv.Itoa(p.Tolerance),
			"layers":    strings.Join(layerIDs, ","),
		}).
		Get(l.baseURL + "/identify")
	if err != nil {
		return nil, fmt.Errorf("identify: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("identify: unexpected status %d", res.StatusCode())
	}

	var ir IdentifyResult
	if err := json.Unmarshal(res.Bytes(), &ir); err != nil {
		return nil, fmt.Errorf("decode identify response: %w", err)
	}
	return &ir, nil
}

func (l *Layer) exportImage(ctx context.Context, p ExportParams) (*ImageResult, error) {
	format := p.Format
	if format == "" {
		format = "png"
	}

	res, err := l.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"f":      "json",
			"bbox":   fmt.Sprintf("%g,%g,%g,%g", p.Extent.XMin, p.Extent.YMin, p.Extent.XMax, p.Extent.YMax),
			"size":   fmt.Sprintf("%d,%d", p.Width, p.Height),
			"format": format,
		}).
		Get(l.baseURL + "/export")
	if err != nil {
		return nil, fmt.Errorf("export image: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("export image: unexpected status %d", res.StatusCode())
	}

	var img ImageResult
	if err := json.Unmarshal(res.Bytes(), &img); err != nil {
		return nil, fmt.Errorf("decode export response: %w", err)
	}
	return &img, nil
}

func (l *Layer) legend(ctx context.Context) (*Legend, error) {
	res, err := l.client.R().
		SetContext(ctx).
		SetQueryParam("f", "json").
		Get(l.baseURL + "/legend")
	if err != nil {
		return nil, fmt.Errorf("legend: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("legend: unexpected status %d", res.StatusCode())
	}

	var leg Legend
	if err := json.Unmarshal(res.Bytes(), &leg); err != nil {
		return nil, fmt.Errorf("decode legend response: %w", err)
	}
	return &leg, nil
}
