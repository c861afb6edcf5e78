package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cohost-ai/rental-api/internal/core/domain"
	"github.com/cohost-ai/rental-api/internal/infrastructure/realtime"
)

func dialChat(t *testing.T, assistant *stubAssistant) (*websocket.Conn, *realtime.Hub) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := realtime.NewHub(zerolog.Nop())
	hub.Start(ctx)

	e := echo.New()
	e.GET("/ws", NewChatHandler(assistant, hub, zerolog.Nop()).Serve)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn, hub
}

type frame struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data"`
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return f
}

func TestChatHandler_UserMessage(t *testing.T) {
	assistant := &stubAssistant{}
	conn, _ := dialChat(t, assistant)

	if err := conn.WriteJSON(map[string]any{"event": "user_message", "data": map[string]string{"prompt": "hi"}}); err != nil {
		t.Fatalf("write: %v", err)
	}

	f := readFrame(t, conn)
	if f.Event != realtime.EventAIResponse {
		t.Fatalf("expected ai_response, got %q", f.Event)
	}
	if f.Data["response"] != "echo: hi" {
		t.Fatalf("unexpected response %v", f.Data)
	}
}

func TestChatHandler_IgnoresUnknownEvents(t *testing.T) {
	assistant := &stubAssistant{}
	conn, _ := dialChat(t, assistant)

	_ = conn.WriteJSON(map[string]any{"event": "ping", "data": map[string]string{}})
	_ = conn.WriteJSON(map[string]any{"event": "user_message", "data": map[string]string{"prompt": "second"}})

	f := readFrame(t, conn)
	if f.Data["response"] != "echo: second" {
		t.Fatalf("unexpected response %v", f.Data)
	}
	if n := assistant.calls(); n != 1 {
		t.Fatalf("expected a single chat call, got %d", n)
	}
}

func TestChatHandler_ReceivesBookingBroadcast(t *testing.T) {
	conn, hub := dialChat(t, &stubAssistant{})

	// A round trip guarantees the connection has subscribed before publishing.
	_ = conn.WriteJSON(map[string]any{"event": "user_message", "data": map[string]string{"prompt": "ready?"}})
	readFrame(t, conn)

	hub.PublishBooking(domain.Booking{ID: 3, Total: 450})

	f := readFrame(t, conn)
	if f.Event != realtime.EventNewBooking {
		t.Fatalf("expected new_booking, got %q", f.Event)
	}
	b, _ := f.Data["booking"].(map[string]any)
	if b["id"] != 3.0 || b["total"] != 450.0 {
		t.Fatalf("unexpected booking %v", b)
	}
}
