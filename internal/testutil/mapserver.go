// Package testutil provides shared fixtures for harness tests: log
// capture and a canned mapping-service server.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// MapServiceInfoJSON is the canned root metadata document served by
// NewMapServer.
const MapServiceInfoJSON = `{
	"mapName": "DemoMap",
	"currentVersion": 11.2,
	"fullExtent": {"xmin": -120, "ymin": 30, "xmax": -100, "ymax": 50},
	"layers": [
		{"id": 0, "name": "Parcels"},
		{"id": 1, "name": "Roads"},
		{"id": 2, "name": "Hydrants"}
	]
}`

// NewMapServer starts an httptest server mimicking the mapping service's
// REST surface: root metadata plus legend, basemaps, identify, query,
// export and project endpoints with fixed payloads. The server is torn
// down with the test.
func NewMapServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	serveJSON := func(pattern, payload string) {
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(payload))
		})
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(MapServiceInfoJSON))
	})
	serveJSON("/legend", `{"layers": [
		{"layerId": 0, "layerName": "Parcels"},
		{"layerId": 1, "layerName": "Roads"}
	]}`)
	serveJSON("/basemaps", `{"basemaps": [
		{"id": "streets", "title": "Streets"},
		{"id": "imagery", "title": "Imagery"}
	]}`)
	serveJSON("/identify", `{"results": [
		{"layerId": 0, "layerName": "Parcels", "attributes": {"PIN": "123-456", "OWNER": "City"}}
	]}`)
	serveJSON("/export", `{"href": "/images/export1.png", "width": 400, "height": 300,
		"extent": {"xmin": -120, "ymin": 30, "xmax": -100, "ymax": 50}}`)
	serveJSON("/project", `{"x": -12913060.932019, "y": 4865942.279503, "spatialReference": 3857}`)
	serveJSON("/0/query", `{"fields": [{"name": "PIN", "alias": "Parcel Number"}],
		"features": [{"attributes": {"PIN": "123-456"}}, {"attributes": {"PIN": "789-012"}}]}`)
	serveJSON("/1/query", `{"features": []}`)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}
