package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/chartview/pkg/chartview"
	"github.com/c9s/chartview/pkg/drawing"
	"github.com/c9s/chartview/pkg/tool"
	"github.com/c9s/chartview/pkg/types"
)

func newTestServer(t *testing.T) (*Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	candles := make([]types.Candle, 50)
	for i := range candles {
		candles[i] = types.Candle{Open: 100, High: 110, Low: 90, Close: 105, Volume: 1}
	}

	chart := chartview.New(chartview.DefaultConfig())
	chart.SetCandles(candles)

	s := New(chart, "test")
	return s, s.newEngine()
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body []byte) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var payload map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	}
	return w, payload
}

func TestPing(t *testing.T) {
	_, r := newTestServer(t)

	w, payload := doJSON(t, r, http.MethodGet, "/api/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", payload["message"])
}

func TestGetChart(t *testing.T) {
	_, r := newTestServer(t)

	w, payload := doJSON(t, r, http.MethodGet, "/api/chart", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(50), payload["candles"])
	assert.Equal(t, "chart", payload["mode"])
	assert.Equal(t, float64(1), payload["undoDepth"])
}

func TestPostToolsAllOrNothing(t *testing.T) {
	s, r := newTestServer(t)

	valid, err := json.Marshal([]map[string]any{
		{"id": "hl", "kind": "horizontal-line", "price": 100.0},
	})
	require.NoError(t, err)

	w, payload := doJSON(t, r, http.MethodPost, "/api/chart/tools", valid)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), payload["tools"])

	// one valid and one degenerate entry: the whole import is rejected
	invalid, err := json.Marshal([]map[string]any{
		{"id": "hl2", "kind": "horizontal-line", "price": 120.0},
		{"id": "bad", "kind": "trendline",
			"start": map[string]float64{"index": 1, "price": 5},
			"end":   map[string]float64{"index": 1, "price": 5}},
	})
	require.NoError(t, err)

	w, payload = doJSON(t, r, http.MethodPost, "/api/chart/tools", invalid)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, payload["error"], "trendline")

	// previous state intact
	tools := s.chart.Engine().Tools()
	require.Len(t, tools, 1)
	assert.Equal(t, "hl", tools[0].GetMeta().ID)
}

func TestGetToolsRoundTrip(t *testing.T) {
	_, r := newTestServer(t)

	snapshot, err := json.Marshal([]map[string]any{
		{"id": "hl", "kind": "horizontal-line", "price": 100.0},
	})
	require.NoError(t, err)

	w, _ := doJSON(t, r, http.MethodPost, "/api/chart/tools", snapshot)
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/chart/tools", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var envs []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envs))
	require.Len(t, envs, 1)
	assert.Equal(t, "hl", envs[0]["id"])
}

func TestUndoRedo(t *testing.T) {
	s, r := newTestServer(t)

	engine := s.chart.Engine()
	engine.SetMode(drawing.ModeDraw)
	engine.SetActiveKind(tool.KindHorizontalLine)
	engine.HandlePointer(drawing.PointerEvent{Kind: drawing.PointerDown, X: 100, Y: 100, Buttons: 1})
	require.Len(t, engine.Tools(), 1)

	w, payload := doJSON(t, r, http.MethodPost, "/api/chart/undo", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, payload["ok"])
	assert.Equal(t, float64(0), payload["tools"])

	w, payload = doJSON(t, r, http.MethodPost, "/api/chart/redo", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, payload["ok"])
	assert.Equal(t, float64(1), payload["tools"])

	// redo stack is empty now
	_, payload = doJSON(t, r, http.MethodPost, "/api/chart/redo", nil)
	assert.Equal(t, false, payload["ok"])
}

func TestPostCandles(t *testing.T) {
	_, r := newTestServer(t)

	candles, err := json.Marshal([]map[string]any{
		{"open": 10.0, "high": 20.0, "low": 10.0, "close": 20.0, "volume": 1.0},
		{"open": 20.0, "high": 20.0, "low": 10.0, "close": 10.0, "volume": 1.0},
	})
	require.NoError(t, err)

	w, payload := doJSON(t, r, http.MethodPost, "/api/chart/candles", candles)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), payload["candles"])

	w, _ = doJSON(t, r, http.MethodPost, "/api/chart/candles", []byte("not json"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPNG(t *testing.T) {
	_, r := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/chart.png", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	require.Greater(t, rec.Body.Len(), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, rec.Body.Bytes()[:4])
}

func TestMetricsEndpoint(t *testing.T) {
	_, r := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestWebsocketInteraction(t *testing.T) {
	s, r := newTestServer(t)

	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	send := func(req wsRequest) wsResponse {
		require.NoError(t, conn.WriteJSON(req))
		var resp wsResponse
		require.NoError(t, conn.ReadJSON(&resp))
		return resp
	}

	resp := send(wsRequest{Type: "mode", Mode: "draw"})
	assert.Empty(t, resp.Error)

	resp = send(wsRequest{Type: "kind", Kind: "horizontal-line"})
	assert.Empty(t, resp.Error)

	resp = send(wsRequest{Type: "pointer", Pointer: &drawing.PointerEvent{
		Kind: drawing.PointerDown, X: 100, Y: 200, Buttons: 1,
	}})
	assert.Empty(t, resp.Error)
	assert.Equal(t, 1, resp.Tools)
	assert.Equal(t, 2, resp.UndoDepth)

	resp = send(wsRequest{Type: "wheel", AnchorX: 512, Factor: 2})
	assert.Empty(t, resp.Error)

	resp = send(wsRequest{Type: "bogus"})
	assert.NotEmpty(t, resp.Error)

	require.Len(t, s.chart.Engine().Tools(), 1)
}
