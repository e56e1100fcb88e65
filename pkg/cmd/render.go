package cmd

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/c9s/chartview/pkg/chartview"
	"github.com/c9s/chartview/pkg/render"
)

func init() {
	RenderCmd.Flags().String("candles", "", "JSON candle file (required)")
	RenderCmd.Flags().String("tools", "", "tool snapshot file to overlay")
	RenderCmd.Flags().String("output", "chart.png", "output PNG path")
	RenderCmd.Flags().String("title", "chartview", "chart title")
	RootCmd.AddCommand(RenderCmd)
}

var RenderCmd = &cobra.Command{
	Use:          "render",
	Short:        "render candles and tool snapshot to a PNG",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		candleFile, _ := cmd.Flags().GetString("candles")
		if candleFile == "" {
			return errors.New("--candles is required")
		}

		cfg, err := loadChartConfig(viper.GetString("config"))
		if err != nil {
			return err
		}

		candles, err := readCandles(candleFile)
		if err != nil {
			return err
		}

		chart := chartview.New(cfg)
		chart.SetCandles(candles)

		if toolFile, _ := cmd.Flags().GetString("tools"); toolFile != "" {
			snapshot, err := os.ReadFile(toolFile)
			if err != nil {
				return errors.Wrapf(err, "can not read tool snapshot %s", toolFile)
			}
			if err := chart.Engine().Deserialize(snapshot); err != nil {
				return errors.Wrap(err, "invalid tool snapshot")
			}
		}

		output, _ := cmd.Flags().GetString("output")
		title, _ := cmd.Flags().GetString("title")

		f, err := os.Create(output)
		if err != nil {
			return errors.Wrapf(err, "can not create %s", output)
		}
		defer f.Close()

		if err := render.NewCanvas(chart, title).Render(f); err != nil {
			return errors.Wrap(err, "render failed")
		}

		log.Infof("wrote %s", output)
		return nil
	},
}
