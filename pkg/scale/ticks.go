package scale

import (
	"math"
	"strconv"
)

// Tick is one axis label: a data-space value, its pixel position on
// the axis, and a formatted label.
type Tick struct {
	Value float64
	Pixel float64
	Label string
}

// niceStep rounds a raw step up to the nearest value on the
// {1, 2, 5, 10} x 10^k ladder. When floor is set it rounds down
// instead.
func niceStep(raw float64, floor bool) float64 {
	if raw <= 0 || !isFinite(raw) {
		return 1
	}

	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	norm := raw / mag

	ladder := []float64{1, 2, 5, 10}
	if floor {
		step := ladder[0]
		for _, m := range ladder {
			if m*mag <= raw+epsilonRange {
				step = m
			}
		}
		return step * mag
	}

	for _, m := range ladder {
		if m >= norm-epsilonRange {
			return m * mag
		}
	}
	return 10 * mag
}

// tickCount picks the target tick count from the pixel budget,
// bounded by the configured tick range.
func tickCount(pixelExtent float64, opts Options) int {
	count := int(pixelExtent / opts.PixelsPerTick)
	if count < opts.MinTicks {
		count = opts.MinTicks
	}
	if count > opts.MaxTicks {
		count = opts.MaxTicks
	}
	return count
}

// genTicks generates nice tick values covering [min, max]. The step
// is rounded up on the 1/2/5/10 ladder; if that starves the axis
// below the configured minimum it falls back to rounding down. The
// trade is deliberate: a slightly off tick count for visually stable
// spacing across zoom levels.
func genTicks(min, max float64, opts Options, pixelExtent float64) ([]float64, float64) {
	if max-min <= 0 || !isFinite(min) || !isFinite(max) {
		return nil, 0
	}

	count := tickCount(pixelExtent, opts)
	raw := (max - min) / float64(count)

	step := niceStep(raw, false)
	values := stepValues(min, max, step)
	for len(values) > opts.MaxTicks {
		step = niceStep(step*1.5, false)
		values = stepValues(min, max, step)
	}
	if len(values) < opts.MinTicks {
		if down := niceStep(raw, true); down < step {
			if v := stepValues(min, max, down); len(v) <= opts.MaxTicks {
				return v, down
			}
		}
	}
	return values, step
}

func stepValues(min, max, step float64) []float64 {
	var values []float64
	tolerance := step * 1e-6
	for v := math.Floor(min/step) * step; v <= max+tolerance; v += step {
		if v < min-tolerance {
			continue
		}
		values = append(values, v)
	}
	return values
}

// formatTickLabel renders a tick value with decimals scaled inversely
// to the step magnitude, so labels stay stable while zooming.
func formatTickLabel(v, step float64) string {
	decimals := 0
	if step > 0 && step < 1 {
		decimals = int(math.Ceil(-math.Log10(step)))
		if decimals > 8 {
			decimals = 8
		}
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
