package cmd

import (
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/c9s/chartview/pkg/chartview"
	"github.com/c9s/chartview/pkg/server"
)

func init() {
	ServeCmd.Flags().String("bind", ":8080", "server bind address")
	ServeCmd.Flags().String("candles", "", "JSON candle file to preload")
	ServeCmd.Flags().String("title", "chartview", "chart title")
	RootCmd.AddCommand(ServeCmd)
}

var ServeCmd = &cobra.Command{
	Use:          "serve",
	Short:        "run the chart HTTP host",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadChartConfig(viper.GetString("config"))
		if err != nil {
			return err
		}

		chart := chartview.New(cfg)

		if candleFile, _ := cmd.Flags().GetString("candles"); candleFile != "" {
			candles, err := readCandles(candleFile)
			if err != nil {
				return err
			}
			chart.SetCandles(candles)
		}

		bind, _ := cmd.Flags().GetString("bind")
		title, _ := cmd.Flags().GetString("title")

		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		log.Infof("serving chart on %s", bind)
		return server.New(chart, title).Run(ctx, bind)
	},
}
