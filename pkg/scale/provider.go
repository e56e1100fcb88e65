package scale

// Provider is the entire contract between the chart core and any
// renderer or input layer: four pure functions converting between
// data coordinates and pixel coordinates for the current view.
type Provider interface {
	// ScaleX converts a fractional candle index to a pixel x.
	ScaleX(index float64) float64

	// ScaleY converts a price to a pixel y (y grows downward).
	ScaleY(price float64) float64

	// UnscaleX converts a pixel x back to a fractional candle index.
	UnscaleX(x float64) float64

	// UnscaleY converts a pixel y back to a price.
	UnscaleY(y float64) float64
}
