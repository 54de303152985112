package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/MeKo-Tech/mosaic/internal/assembler"
	"github.com/MeKo-Tech/mosaic/internal/document"
	"github.com/gorilla/websocket"
)

// WebSocket upgrader with reasonable defaults.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin in development
		// In production, you should check against allowed origins
		return true
	},
}

// WebSocketAssembleResponse represents an assembly response or progress
// update sent over WebSocket.
type WebSocketAssembleResponse struct {
	Type      string  `json:"type"`
	Status    string  `json:"status"` // "processing", "completed", "error"
	Progress  float64 `json:"progress,omitempty"`
	Result    any     `json:"result,omitempty"`
	Error     string  `json:"error,omitempty"`
	RequestID string  `json:"request_id,omitempty"`
}

// assembleWebSocketHandler handles WebSocket connections for assembly
// with per-page progress streaming.
func (s *Server) assembleWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("WebSocket connection established", "remote_addr", r.RemoteAddr)

	s.handleWebSocketConnection(conn)
}

// handleWebSocketConnection processes messages from a WebSocket connection.
func (s *Server) handleWebSocketConnection(conn *websocket.Conn) {
	// Read deadline prevents hanging connections
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				slog.Error("WebSocket error", "error", err)
			}
			break
		}

		websocketMessagesTotal.WithLabelValues("received").Inc()

		if messageType == websocket.TextMessage {
			s.handleWebSocketMessage(conn, data)
		}
	}
}

// handleWebSocketMessage runs one assembly request, streaming per-page
// progress before the final document.
func (s *Server) handleWebSocketMessage(conn *websocket.Conn, data []byte) {
	in, err := assembler.ParseInput(data)
	if err != nil {
		s.sendWebSocketResponse(conn, WebSocketAssembleResponse{
			Type:   "assemble_response",
			Status: "error",
			Error:  fmt.Sprintf("failed to parse request: %v", err),
		})
		return
	}

	requestID := strconv.FormatInt(time.Now().UnixNano(), 10)
	start := time.Now()

	s.sendWebSocketResponse(conn, WebSocketAssembleResponse{
		Type:      "assemble_response",
		Status:    "processing",
		Progress:  0.0,
		RequestID: requestID,
	})

	// Pages are assembled sequentially here so progress maps directly to
	// page completion; page order in the output is unaffected.
	a := s.assemblerFor(in.DetectionOrigin)
	doc := document.New(a.Origin())
	for i, page := range in.Pages {
		blocks, err := a.AssemblePage(i, page)
		if err != nil {
			assembleRequestsTotal.WithLabelValues("websocket", "error").Inc()
			s.sendWebSocketResponse(conn, WebSocketAssembleResponse{
				Type:      "assemble_response",
				Status:    "error",
				Error:     err.Error(),
				RequestID: requestID,
			})
			return
		}
		doc.Append(blocks...)
		s.sendWebSocketResponse(conn, WebSocketAssembleResponse{
			Type:      "assemble_response",
			Status:    "processing",
			Progress:  float64(i+1) / float64(len(in.Pages)),
			RequestID: requestID,
		})
	}

	assembleRequestsTotal.WithLabelValues("websocket", "success").Inc()
	assembleDuration.WithLabelValues("websocket").Observe(time.Since(start).Seconds())
	assemblePages.Observe(float64(len(in.Pages)))
	assembleBlocks.Observe(float64(len(doc.Content)))

	s.sendWebSocketResponse(conn, WebSocketAssembleResponse{
		Type:      "assemble_response",
		Status:    "completed",
		Progress:  1.0,
		Result:    doc,
		RequestID: requestID,
	})
}

// sendWebSocketResponse marshals and sends a response message.
func (s *Server) sendWebSocketResponse(conn *websocket.Conn, resp WebSocketAssembleResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		slog.Error("Failed to marshal WebSocket response", "error", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("Failed to send WebSocket message", "error", err)
		return
	}
	websocketMessagesTotal.WithLabelValues("sent").Inc()
}
