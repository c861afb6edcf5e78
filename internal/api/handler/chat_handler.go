package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cohost-ai/rental-api/internal/api/metrics"
	"github.com/cohost-ai/rental-api/internal/core/ports"
	"github.com/cohost-ai/rental-api/internal/infrastructure/realtime"
)

const (
	writeWait      = 10 * time.Second
	maxFrameSize   = 64 << 10
	replyQueueSize = 4
)

// Broadcaster is the part of the realtime hub a connection subscribes to.
type Broadcaster interface {
	Subscribe() *realtime.Subscriber
	Unsubscribe(s *realtime.Subscriber)
}

type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type userMessage struct {
	Prompt string `json:"prompt"`
}

// ChatHandler upgrades GET /ws to a websocket. Each connection answers
// user_message frames with ai_response and also receives hub broadcasts.
type ChatHandler struct {
	assistant ports.AssistantService
	hub       Broadcaster
	upgrader  websocket.Upgrader
	log       zerolog.Logger
}

func NewChatHandler(assistant ports.AssistantService, hub Broadcaster, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		assistant: assistant,
		hub:       hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log,
	}
}

// Serve upgrades the connection and runs it until the client goes away.
//
// @Summary      Realtime chat and booking feed (websocket)
// @Tags         realtime
// @Success      101
// @Router       /ws [get]
func (h *ChatHandler) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		return nil
	}
	conn.SetReadLimit(maxFrameSize)

	metrics.RealtimeConnections.Inc()
	defer metrics.RealtimeConnections.Dec()

	sub := h.hub.Subscribe()
	replies := make(chan realtime.Envelope, replyQueueSize)
	done := make(chan struct{})

	go h.writeLoop(conn, sub, replies, done)

	ctx := c.Request().Context()
	for {
		var in inboundFrame
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug().Err(err).Msg("websocket read")
			}
			break
		}
		if in.Event != realtime.EventUserMsg {
			continue
		}

		var msg userMessage
		_ = json.Unmarshal(in.Data, &msg)
		reply := h.assistant.Chat(ctx, msg.Prompt)

		select {
		case replies <- realtime.Envelope{Event: realtime.EventAIResponse, Data: map[string]string{"response": reply}}:
		case <-done:
		}
	}

	h.hub.Unsubscribe(sub)
	close(replies)
	<-done
	return nil
}

// writeLoop is the only goroutine that writes to conn. It exits once replies
// is closed, or on the first write error.
func (h *ChatHandler) writeLoop(conn *websocket.Conn, sub *realtime.Subscriber, replies <-chan realtime.Envelope, done chan<- struct{}) {
	defer close(done)
	defer conn.Close()

	broadcasts := sub.Messages()
	for {
		select {
		case env, ok := <-replies:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(env); err != nil {
				return
			}
		case msg, ok := <-broadcasts:
			if !ok {
				broadcasts = nil
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}
}
