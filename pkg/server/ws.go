package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/c9s/chartview/pkg/chartview"
	"github.com/c9s/chartview/pkg/drawing"
	"github.com/c9s/chartview/pkg/tool"
)

// moveEventRate caps how many pointer-move events per second reach
// the engine over one connection. Down/up events always pass: a
// dropped move only coarsens a stroke, a dropped down/up would corrupt
// the gesture state machine.
const moveEventRate = 120

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsRequest is one inbound interaction message.
type wsRequest struct {
	Type string `json:"type"` // pointer, wheel, priceZoom, pan, mode, kind

	Pointer *drawing.PointerEvent `json:"pointer,omitempty"`

	AnchorX float64 `json:"anchorX,omitempty"`
	AnchorY float64 `json:"anchorY,omitempty"`
	Factor  float64 `json:"factor,omitempty"`

	DX float64 `json:"dx,omitempty"`
	DY float64 `json:"dy,omitempty"`

	Mode string `json:"mode,omitempty"`
	Kind string `json:"kind,omitempty"`
}

// wsResponse is the state notification written after each applied
// message.
type wsResponse struct {
	Type      string         `json:"type"`
	View      chartview.View `json:"view"`
	Tools     int            `json:"tools"`
	UndoDepth int            `json:"undoDepth"`
	Error     string         `json:"error,omitempty"`
}

func (s *Server) serveWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Error("websocket upgrade failed")
		return
	}
	defer conn.Close()

	limiter := rate.NewLimiter(rate.Limit(moveEventRate), moveEventRate)

	for {
		var req wsRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("websocket read error")
			}
			return
		}

		resp := s.apply(&req, limiter)
		if err := conn.WriteJSON(resp); err != nil {
			log.WithError(err).Warn("websocket write error")
			return
		}
	}
}

func (s *Server) apply(req *wsRequest, limiter *rate.Limiter) wsResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	engine := s.chart.Engine()
	var applyErr string

	switch req.Type {
	case "pointer":
		if req.Pointer == nil {
			applyErr = "missing pointer payload"
			break
		}
		if req.Pointer.Kind == drawing.PointerMove && !limiter.Allow() {
			break
		}
		s.chart.HandlePointer(*req.Pointer)

	case "wheel":
		s.chart.HandleWheel(req.AnchorX, req.Factor)
		s.chart.Flush()

	case "priceZoom":
		s.chart.ZoomPriceAt(req.AnchorY, req.Factor)

	case "pan":
		s.chart.HandlePan(req.DX, req.DY)

	case "mode":
		mode, ok := drawing.ParseMode(req.Mode)
		if !ok {
			applyErr = "unknown mode " + req.Mode
			break
		}
		engine.SetMode(mode)

	case "kind":
		engine.SetActiveKind(tool.Kind(req.Kind))

	default:
		applyErr = "unknown message type " + req.Type
	}

	return wsResponse{
		Type:      "state",
		View:      s.chart.View(),
		Tools:     len(engine.Tools()),
		UndoDepth: engine.UndoDepth(),
		Error:     applyErr,
	}
}
