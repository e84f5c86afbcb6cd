package app

import (
	"github.com/vk/patchgridgo/internal/scenario"
	"github.com/vk/patchgridgo/scenarios/basemap_gallery"
	"github.com/vk/patchgridgo/scenarios/feature_info"
	"github.com/vk/patchgridgo/scenarios/layer_catalog"
	"github.com/vk/patchgridgo/scenarios/method_timing"
)

// coreModules is the definitive list of all scenarios that are compiled
// into the patchgridgo binary.
var coreModules = []scenario.Module{
	&basemap_gallery.Module{},
	&layer_catalog.Module{},
	&feature_info.Module{},
	&method_timing.Module{},
}
