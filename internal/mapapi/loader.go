package mapapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vk/patchgridgo/internal/ctxlog"
	"resty.dev/v3"
)

// Loader fetches the service's root metadata and publishes the finished
// namespace on a Handle. Start is the script-load analog: the namespace
// appears some time after the call returns, or never.
type Loader struct {
	client  *resty.Client
	baseURL string
}

// NewLoader returns a loader for the service rooted at baseURL.
func NewLoader(client *resty.Client, baseURL string) *Loader {
	return &Loader{client: client, baseURL: baseURL}
}

// Start begins loading in the background and returns the handle
// immediately. On failure the handle stays empty and the error is only
// logged; callers detect the condition through their own polling budget.
func (l *Loader) Start(ctx context.Context) *Handle {
	h := &Handle{}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading map API namespace.", "url", l.baseURL)

	go func() {
		info, err := l.fetchInfo(ctx)
		if err != nil {
			logger.Warn("Map API namespace failed to load.", "url", l.baseURL, "error", err)
			return
		}
		h.publish(newNamespace(l.client, l.baseURL, *info))
		logger.Debug("Map API namespace published.",
			"service", info.Name, "version", info.CurrentVersion, "layers", len(info.Layers))
	}()
	return h
}

// Load is the synchronous variant of Start, for callers with no polling
// budget of their own.
func (l *Loader) Load(ctx context.Context) (*Handle, error) {
	info, err := l.fetchInfo(ctx)
	if err != nil {
		return nil, err
	}
	h := &Handle{}
	h.publish(newNamespace(l.client, l.baseURL, *info))
	return h, nil
}

func (l *Loader) fetchInfo(ctx context.Context) (*ServiceInfo, error) {
	res, err := l.client.R().
		SetContext(ctx).
		SetQueryParam("f", "json").
		Get(l.baseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch service info: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetch service info: unexpected status %d", res.StatusCode())
	}

	var info ServiceInfo
	if err := json.Unmarshal(res.Bytes(), &info); err != nil {
		return nil, fmt.Errorf("decode service info: %w", err)
	}
	return &info, nil
}
