package tool

import "math"

// Point is a position in data coordinates: fractional candle index
// and price.
type Point struct {
	Index float64 `json:"index"`
	Price float64 `json:"price"`
}

func (p Point) Finite() bool {
	return !math.IsNaN(p.Index) && !math.IsInf(p.Index, 0) &&
		!math.IsNaN(p.Price) && !math.IsInf(p.Price, 0)
}

func clonePoints(pts []Point) []Point {
	if pts == nil {
		return nil
	}
	out := make([]Point, len(pts))
	copy(out, pts)
	return out
}
