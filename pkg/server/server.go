// Package server exposes a chart widget over HTTP: a small REST
// surface for snapshots, undo/redo and PNG export, a websocket for
// the interactive event stream, and Prometheus metrics. It is a host
// around the core, the core itself stays transport-free.
package server

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/c9s/chartview/pkg/chartview"
	"github.com/c9s/chartview/pkg/render"
	"github.com/c9s/chartview/pkg/types"
)

// Server hosts one chart widget. The chart core is single-threaded;
// every handler serializes through mu.
type Server struct {
	chart *chartview.Chart
	title string

	mu sync.Mutex
}

func New(chart *chartview.Chart, title string) *Server {
	return &Server{chart: chart, title: title}
}

// Run serves until the context is canceled.
func (s *Server) Run(ctx context.Context, bind string) error {
	srv := &http.Server{
		Addr:    bind,
		Handler: s.newEngine(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("server shutdown error")
		}
	}()

	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) newEngine() *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowMethods:     []string{"GET", "POST"},
		AllowWebSockets:  true,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/api/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.GET("/api/chart", s.getChart)
	r.GET("/api/chart/tools", s.getTools)
	r.POST("/api/chart/tools", s.postTools)
	r.POST("/api/chart/candles", s.postCandles)
	r.POST("/api/chart/undo", s.postUndo)
	r.POST("/api/chart/redo", s.postRedo)
	r.GET("/api/chart.png", s.getPNG)

	r.GET("/ws", s.serveWS)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

func (s *Server) state() gin.H {
	engine := s.chart.Engine()
	return gin.H{
		"view":      s.chart.View(),
		"candles":   len(s.chart.Candles()),
		"mode":      engine.Mode().String(),
		"tools":     len(engine.Tools()),
		"undoDepth": engine.UndoDepth(),
		"redoDepth": engine.RedoDepth(),
	}
}

func (s *Server) getChart(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.state())
}

func (s *Server) getTools(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.chart.Engine().Serialize()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json", snapshot)
}

// postTools imports a tool snapshot, all or nothing: an invalid
// snapshot is rejected with 400 and the previous tools stay intact.
func (s *Server) postTools(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.chart.Engine().Deserialize(data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.state())
}

func (s *Server) postCandles(c *gin.Context) {
	var candles []types.Candle
	if err := c.BindJSON(&candles); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing candles"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.chart.SetCandles(candles)
	c.JSON(http.StatusOK, s.state())
}

func (s *Server) postUndo(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok := s.chart.Engine().Undo()
	resp := s.state()
	resp["ok"] = ok
	c.JSON(http.StatusOK, resp)
}

func (s *Server) postRedo(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok := s.chart.Engine().Redo()
	resp := s.state()
	resp["ok"] = ok
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getPNG(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := render.NewCanvas(s.chart, s.title).Render(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
