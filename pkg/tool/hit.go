package tool

import (
	"math"

	"github.com/c9s/chartview/pkg/scale"
)

// project converts a data point to pixel space.
func project(p scale.Provider, pt Point) (x, y float64) {
	return p.ScaleX(pt.Index), p.ScaleY(pt.Price)
}

// segmentDistance is the distance from (px, py) to the finite segment
// (x1, y1)-(x2, y2).
func segmentDistance(px, py, x1, y1, x2, y2 float64) float64 {
	return projectedDistance(px, py, x1, y1, x2, y2, 0, 1)
}

// rayDistance treats the segment as unbounded past (x2, y2).
func rayDistance(px, py, x1, y1, x2, y2 float64) float64 {
	return projectedDistance(px, py, x1, y1, x2, y2, 0, math.Inf(1))
}

// lineDistance treats the segment as an infinite line.
func lineDistance(px, py, x1, y1, x2, y2 float64) float64 {
	return projectedDistance(px, py, x1, y1, x2, y2, math.Inf(-1), math.Inf(1))
}

// projectedDistance projects the cursor onto the line through the two
// endpoints, clamps the parameter to [tMin, tMax], and returns the
// distance to the clamped point.
func projectedDistance(px, py, x1, y1, x2, y2, tMin, tMax float64) float64 {
	dx, dy := x2-x1, y2-y1
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-x1, py-y1)
	}

	t := ((px-x1)*dx + (py-y1)*dy) / lenSq
	t = math.Min(math.Max(t, tMin), tMax)

	return math.Hypot(px-(x1+t*dx), py-(y1+t*dy))
}

// nearestHandle returns the index of the first handle within epsilon
// of the cursor, or NoHandle.
func nearestHandle(p scale.Provider, handles []Point, x, y, epsilon float64) int {
	best := NoHandle
	bestDist := epsilon
	for i, h := range handles {
		hx, hy := project(p, h)
		if d := math.Hypot(x-hx, y-hy); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// inExpandedBox tests a point against the bounding box of two pixel
// corners, expanded by epsilon on all sides.
func inExpandedBox(px, py, x1, y1, x2, y2, epsilon float64) bool {
	minX, maxX := math.Min(x1, x2), math.Max(x1, x2)
	minY, maxY := math.Min(y1, y2), math.Max(y1, y2)
	return px >= minX-epsilon && px <= maxX+epsilon &&
		py >= minY-epsilon && py <= maxY+epsilon
}

// twoPointHit is the shared body for line-like two-point tools.
func twoPointHit(p scale.Provider, start, end Point, x, y, epsilon float64,
	distance func(px, py, x1, y1, x2, y2 float64) float64) (bool, int) {

	handles := []Point{start, end}
	if h := nearestHandle(p, handles, x, y, epsilon); h != NoHandle {
		return true, h
	}

	x1, y1 := project(p, start)
	x2, y2 := project(p, end)
	if distance(x, y, x1, y1, x2, y2) < epsilon {
		return true, NoHandle
	}
	return false, NoHandle
}
