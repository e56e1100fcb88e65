package cmd

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/c9s/chartview/pkg/chartview"
	"github.com/c9s/chartview/pkg/types"
)

// loadChartConfig builds the widget config from the --config flag,
// falling back to defaults when no file is given.
func loadChartConfig(configFile string) (chartview.Config, error) {
	if configFile == "" {
		return chartview.DefaultConfig(), nil
	}
	return chartview.LoadConfig(configFile)
}

// readCandles loads a JSON candle array from a file.
func readCandles(path string) ([]types.Candle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "can not read candle file %s", path)
	}

	var candles []types.Candle
	if err := json.Unmarshal(data, &candles); err != nil {
		return nil, errors.Wrapf(err, "can not parse candle file %s", path)
	}

	log.Infof("loaded %d candles from %s", len(candles), path)
	return candles, nil
}
