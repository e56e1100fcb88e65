package metrics

import "github.com/prometheus/client_golang/prometheus"

var ToolsCreatedCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "chartview_tools_created_total",
		Help: "number of finalized drawing tools",
	}, []string{"kind"})

var SnapshotErrorsCounter = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "chartview_snapshot_errors_total",
		Help: "number of rejected tool snapshots",
	})

var HistoryDepthGauge = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "chartview_history_depth",
		Help: "current undo stack depth",
	})

var ZoomRequestsDroppedCounter = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "chartview_zoom_requests_dropped_total",
		Help: "zoom requests superseded before a paint flush",
	})

var PointerEventsCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "chartview_pointer_events_total",
		Help: "pointer events ingested by the engine",
	}, []string{"kind"})

func init() {
	prometheus.MustRegister(
		ToolsCreatedCounter,
		SnapshotErrorsCounter,
		HistoryDepthGauge,
		ZoomRequestsDroppedCounter,
		PointerEventsCounter,
	)
}
