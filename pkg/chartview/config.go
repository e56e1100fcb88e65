package chartview

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/c9s/chartview/pkg/drawing"
	"github.com/c9s/chartview/pkg/scale"
)

// Config is the widget configuration. Missing keys take defaults,
// out-of-range values are corrected on Sanitize, and unrecognized keys
// are ignored by the YAML decoder, so an old or hand-edited config
// file never prevents the chart from coming up.
type Config struct {
	// Width and Height are the pane size in pixels.
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`

	PriceAxis scale.Options   `json:"priceAxis" yaml:"priceAxis"`
	TimeAxis  scale.Options   `json:"timeAxis" yaml:"timeAxis"`
	Drawing   drawing.Options `json:"drawing" yaml:"drawing"`
}

func DefaultConfig() Config {
	return Config{
		Width:     1024,
		Height:    640,
		PriceAxis: scale.DefaultPriceOptions(),
		TimeAxis:  scale.DefaultTimeOptions(),
		Drawing:   drawing.DefaultOptions(),
	}
}

// Sanitize corrects invalid values against the defaults. Axis and
// drawing options carry their own correction rules; only the pane
// size is handled here.
func (c Config) Sanitize() Config {
	def := DefaultConfig()
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}
	return c
}

// ParseConfig decodes a YAML config document and sanitizes it.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "chartview: can not parse config")
	}
	return cfg.Sanitize(), nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), errors.Wrapf(err, "chartview: can not read config %s", path)
	}
	return ParseConfig(data)
}
