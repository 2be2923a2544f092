package component

// RenderLayer orders drawing. Lower indexes draw first; entities on the same
// layer draw in creation order.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
