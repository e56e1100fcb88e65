package types

import (
	"fmt"
	"math"
)

type Direction int

const DirectionUp = 1
const DirectionNone = 0
const DirectionDown = -1

// Candle is one OHLCV bar. The chart addresses candles by slice index,
// never by time, so StartTime is carried for labels only.
type Candle struct {
	StartTime MillisecondTimestamp `json:"startTime"`

	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

func (c *Candle) Direction() Direction {
	switch {
	case c.Close > c.Open:
		return DirectionUp
	case c.Close < c.Open:
		return DirectionDown
	}
	return DirectionNone
}

func (c *Candle) Mid() float64 {
	return (c.High + c.Low) / 2
}

func (c *Candle) Valid() bool {
	for _, v := range []float64{c.Open, c.High, c.Low, c.Close} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return c.Low <= c.High
}

func (c *Candle) String() string {
	return fmt.Sprintf("O: %.4f | H: %.4f | L: %.4f | C: %.4f | V: %.4f",
		c.Open, c.High, c.Low, c.Close, c.Volume)
}

// CandleWindow is the slice of candles currently loaded into a chart.
type CandleWindow []Candle

func (w CandleWindow) Highest() float64 {
	high := math.Inf(-1)
	for i := range w {
		if w[i].High > high {
			high = w[i].High
		}
	}
	return high
}

func (w CandleWindow) Lowest() float64 {
	low := math.Inf(1)
	for i := range w {
		if w[i].Low < low {
			low = w[i].Low
		}
	}
	return low
}

func (w CandleWindow) Closes() []float64 {
	closes := make([]float64, len(w))
	for i := range w {
		closes[i] = w[i].Close
	}
	return closes
}

// PriceExtrema returns every finite high and low in the window, the
// input the price scale derives its visible range from.
func (w CandleWindow) PriceExtrema() []float64 {
	values := make([]float64, 0, len(w)*2)
	for i := range w {
		if !w[i].Valid() {
			continue
		}
		values = append(values, w[i].High, w[i].Low)
	}
	return values
}
