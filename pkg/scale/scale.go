// Package scale implements the price and time axes of the chart: the
// mapping between data coordinates (candle index, price) and pixel
// coordinates under zoom and pan.
package scale

import (
	"math"

	log "github.com/sirupsen/logrus"
)

const (
	// DefaultBaseSpacing is the candle width in pixels at zoom factor 1.
	DefaultBaseSpacing = 8.0

	epsilonRange = 1e-9
)

// Options are the recognized per-axis settings. Unrecognized config
// keys never reach this struct; missing fields take defaults and
// out-of-range values are corrected, never fatal.
type Options struct {
	MarginFraction float64 `json:"marginFraction" yaml:"marginFraction"`
	PixelsPerTick  float64 `json:"pixelsPerTick" yaml:"pixelsPerTick"`
	MinTicks       int     `json:"minTicks" yaml:"minTicks"`
	MaxTicks       int     `json:"maxTicks" yaml:"maxTicks"`

	// MinSpacing and MaxSpacing bound the zoom factor as
	// spacing/baseSpacing. Zero means automatic bounds.
	MinSpacing float64 `json:"minSpacing" yaml:"minSpacing"`
	MaxSpacing float64 `json:"maxSpacing" yaml:"maxSpacing"`

	Logarithmic   bool `json:"logarithmic" yaml:"logarithmic"`
	AllowNegative bool `json:"allowNegative" yaml:"allowNegative"`
}

func DefaultPriceOptions() Options {
	return Options{
		MarginFraction: 0.1,
		PixelsPerTick:  50,
		MinTicks:       3,
		MaxTicks:       12,
	}
}

func DefaultTimeOptions() Options {
	return Options{
		MarginFraction: 0.0,
		PixelsPerTick:  80,
		MinTicks:       3,
		MaxTicks:       10,
		MinSpacing:     0.5,
		MaxSpacing:     64,
	}
}

// Sanitize corrects non-finite or out-of-range options against the
// given defaults.
func (o Options) Sanitize(defaults Options) Options {
	if !isFinite(o.MarginFraction) || o.MarginFraction < 0 || o.MarginFraction >= 1 {
		log.Warnf("scale: invalid marginFraction %v, using %v", o.MarginFraction, defaults.MarginFraction)
		o.MarginFraction = defaults.MarginFraction
	}
	if !isFinite(o.PixelsPerTick) || o.PixelsPerTick <= 0 {
		o.PixelsPerTick = defaults.PixelsPerTick
	}
	if o.MinTicks < 2 {
		o.MinTicks = defaults.MinTicks
	}
	if o.MaxTicks < o.MinTicks {
		o.MaxTicks = defaults.MaxTicks
		if o.MaxTicks < o.MinTicks {
			o.MaxTicks = o.MinTicks
		}
	}
	if !isFinite(o.MinSpacing) || o.MinSpacing < 0 {
		o.MinSpacing = defaults.MinSpacing
	}
	if !isFinite(o.MaxSpacing) || o.MaxSpacing < o.MinSpacing {
		o.MaxSpacing = defaults.MaxSpacing
		if o.MaxSpacing < o.MinSpacing {
			o.MaxSpacing = o.MinSpacing
		}
	}
	return o
}

// clampZoom bounds the zoom factor to [MinSpacing/baseSpacing,
// MaxSpacing/baseSpacing]. Zero spacing options fall back to fixed
// zoom bounds.
func (o Options) clampZoom(zoom, baseSpacing float64) float64 {
	lo, hi := 0.05, 50.0
	if baseSpacing > 0 {
		if o.MinSpacing > 0 {
			lo = o.MinSpacing / baseSpacing
		}
		if o.MaxSpacing > 0 {
			hi = o.MaxSpacing / baseSpacing
		}
	}
	if hi < lo {
		hi = lo
	}
	return math.Min(math.Max(zoom, lo), hi)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
