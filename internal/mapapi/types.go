package mapapi

// Extent is a bounding box in the coordinate system identified by SRID.
type Extent struct {
	XMin float64 `json:"xmin"`
	YMin float64 `json:"ymin"`
	XMax float64 `json:"xmax"`
	YMax float64 `json:"ymax"`
	SRID int     `json:"spatialReference,omitempty"`
}

// Point is a single coordinate pair.
type Point struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	SRID int     `json:"spatialReference,omitempty"`
}

// Field describes one attribute column of a layer.
type Field struct {
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
	Type  string `json:"type,omitempty"`
}

// Feature is a single result row. Attributes are opaque to the harness.
type Feature struct {
	LayerID    int            `json:"layerId,omitempty"`
	LayerName  string         `json:"layerName,omitempty"`
	Attributes map[string]any `json:"attributes"`
}

// FeatureSet is the payload of a layer query.
type FeatureSet struct {
	Fields   []Field   `json:"fields,omitempty"`
	Features []Feature `json:"features"`
}

// IdentifyParams selects the features at a map location.
type IdentifyParams struct {
	Location  Point
	Tolerance int
	LayerIDs  []int
}

// IdentifyResult is the payload of an identify call.
type IdentifyResult struct {
	Results []Feature `json:"results"`
}

// ExportParams requests a rendered map image.
type ExportParams struct {
	Extent Extent
	Width  int
	Height int
	Format string
}

// ImageResult describes a rendered map image hosted by the service.
type ImageResult struct {
	Href   string `json:"href"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Extent Extent `json:"extent"`
}

// LegendLayer is one layer's legend entry.
type LegendLayer struct {
	LayerID   int    `json:"layerId"`
	LayerName string `json:"layerName"`
	Swatches  []struct {
		Label string `json:"label"`
		Image string `json:"imageData,omitempty"`
	} `json:"legend,omitempty"`
}

// Legend is the payload of a legend call.
type Legend struct {
	Layers []LegendLayer `json:"layers"`
}

// Basemap describes one entry of the service's basemap gallery.
type Basemap struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// LayerInfo is the service's own metadata for one layer.
type LayerInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ServiceInfo is the subset of the service's root metadata the client
// consumes. Everything else in the document is ignored.
type ServiceInfo struct {
	Name           string      `json:"mapName"`
	CurrentVersion float64     `json:"currentVersion"`
	FullExtent     Extent      `json:"fullExtent"`
	Layers         []LayerInfo `json:"layers"`
}
