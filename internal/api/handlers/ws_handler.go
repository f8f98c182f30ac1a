package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/prepmate/prepmate/internal/services"
	"github.com/prepmate/prepmate/internal/utils"
)

type WSHandler struct {
	svc      services.InterviewService
	upgrader websocket.Upgrader
}

func NewWSHandler(svc services.InterviewService) *WSHandler {
	return &WSHandler{
		svc: svc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type wsClientMsg struct {
	Type    string `json:"type"` // message|end_session
	Content string `json:"content"`
}

type wsServerMsg struct {
	Type    string `json:"type"` // chunk|done|error
	Content string `json:"content,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteJSON(v)
}

// SessionWS streams interviewer turns over a WebSocket: the client sends a
// message, reply chunks arrive as they are generated, and a final done frame
// carries the complete reply.
func (h *WSHandler) SessionWS(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sessionID := c.Param("session_id")
	if sessionID == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "WSHandler.SessionWS", "missing session_id", nil))
		return
	}

	// authorize session ownership before upgrading
	if _, err := h.svc.Get(c.Request.Context(), userID, sessionID); err != nil {
		writeError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, data, rerr := conn.ReadMessage()
		if rerr != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var msg wsClientMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = wc.writeJSON(wsServerMsg{Type: "error", Code: string(utils.CodeInvalidArgument), Message: "invalid json"})
			continue
		}

		switch msg.Type {
		case "message":
			if msg.Content == "" {
				_ = wc.writeJSON(wsServerMsg{Type: "error", Code: string(utils.CodeInvalidArgument), Message: "content is required"})
				continue
			}

			var full string
			err := h.svc.SendMessageStreaming(ctx, userID, sessionID, msg.Content, func(chunk string) {
				full += chunk
				_ = wc.writeJSON(wsServerMsg{Type: "chunk", Content: chunk})
			})
			if err != nil {
				code := string(utils.CodeInternal)
				message := "failed to generate reply"
				var ae *utils.AppError
				if errors.As(err, &ae) {
					code = string(ae.Code)
					message = ae.Message
				}
				_ = wc.writeJSON(wsServerMsg{Type: "error", Code: code, Message: message})
				continue
			}
			_ = wc.writeJSON(wsServerMsg{Type: "done", Content: full})

		case "end_session":
			if _, err := h.svc.Complete(ctx, userID, sessionID); err != nil {
				_ = wc.writeJSON(wsServerMsg{Type: "error", Code: string(utils.CodeInternal), Message: "failed to complete session"})
				continue
			}
			_ = wc.writeJSON(wsServerMsg{Type: "done", Message: "session completed"})
			return

		default:
			_ = wc.writeJSON(wsServerMsg{Type: "error", Code: string(utils.CodeInvalidArgument), Message: "unknown message type"})
		}
	}
}
