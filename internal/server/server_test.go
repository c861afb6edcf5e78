package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/cohost-ai/rental-api/internal/pkg/config"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	return newServer(t).Handler()
}

func newServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		Port:          "0",
		JWTSecret:     "test-secret",
		TokenTTL:      24 * time.Hour,
		RemoteTimeout: time.Second,
		Store:         config.StoreConfig{Backend: config.StoreMemory},
		Rates:         config.RatesConfig{BaseURL: "http://127.0.0.1:1", FallbackRate: 278.5},
		Payout:        config.PayoutConfig{IBAN: "PK36JCMA0000000000000000", AccountName: "Co-host Payouts"},
	}
	s, err := New(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	t.Cleanup(func() { s.close(context.Background()) })
	return s
}

func do(t *testing.T, h http.Handler, method, path, body, token string) (int, map[string]any) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s %s: invalid json %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code, out
}

func TestScenario_RegisterLoginBookStats(t *testing.T) {
	h := newTestServer(t)

	code, body := do(t, h, http.MethodPost, "/api/register", `{"email":"a@b.com","password":"pw"}`, "")
	if code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d %v", code, body)
	}
	if tok, _ := body["token"].(string); tok == "" {
		t.Fatalf("register: missing token")
	}

	code, body = do(t, h, http.MethodPost, "/api/register", `{"email":"a@b.com","password":"other"}`, "")
	if code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", code)
	}

	code, body = do(t, h, http.MethodPost, "/api/login", `{"email":"a@b.com","password":"pw"}`, "")
	if code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d %v", code, body)
	}
	user, _ := body["user"].(map[string]any)
	if user["role"] != "host" || user["email"] != "a@b.com" {
		t.Fatalf("login: unexpected user %v", user)
	}
	token, _ := body["token"].(string)

	code, body = do(t, h, http.MethodPost, "/api/book", `{"property_id":1,"nights":2}`, token)
	if code != http.StatusOK {
		t.Fatalf("book: expected 200, got %d %v", code, body)
	}
	booking, _ := body["booking"].(map[string]any)
	if booking["total"] != 598.0 {
		t.Fatalf("book: expected total 598, got %v", booking["total"])
	}

	code, body = do(t, h, http.MethodGet, "/api/owner-stats", "", "")
	if code != http.StatusOK {
		t.Fatalf("owner-stats: expected 200, got %d", code)
	}
	if body["bookings"] != 1.0 || body["revenue"] != 598.0 {
		t.Fatalf("owner-stats: unexpected totals %v", body)
	}
	if body["owner_profit"] != 418.6 || body["platform_profit"] != 179.4 {
		t.Fatalf("owner-stats: unexpected split %v", body)
	}

	code, body = do(t, h, http.MethodGet, "/api/my-bookings", "", token)
	if code != http.StatusOK {
		t.Fatalf("my-bookings: expected 200, got %d", code)
	}
	if list, _ := body["bookings"].([]any); len(list) != 1 {
		t.Fatalf("my-bookings: expected 1 booking, got %v", body["bookings"])
	}
}

func TestRoutes_Unauthorized(t *testing.T) {
	h := newTestServer(t)

	for _, tok := range []string{"", "garbage"} {
		code, body := do(t, h, http.MethodPost, "/api/book", `{"property_id":1,"nights":1}`, tok)
		if code != http.StatusUnauthorized {
			t.Fatalf("book with %q: expected 401, got %d", tok, code)
		}
		if _, ok := body["error"]; !ok {
			t.Fatalf("expected error envelope, got %v", body)
		}
	}

	code, _ := do(t, h, http.MethodPost, "/api/login", `{"email":"nobody@b.com","password":"pw"}`, "")
	if code != http.StatusUnauthorized {
		t.Fatalf("login unknown: expected 401, got %d", code)
	}
}

func TestRoutes_BookErrors(t *testing.T) {
	h := newTestServer(t)
	_, body := do(t, h, http.MethodPost, "/api/register", `{"email":"x@y.com","password":"pw"}`, "")
	token, _ := body["token"].(string)

	if code, _ := do(t, h, http.MethodPost, "/api/book", `{"property_id":99,"nights":1}`, token); code != http.StatusNotFound {
		t.Fatalf("unknown property: expected 404, got %d", code)
	}
	if code, _ := do(t, h, http.MethodPost, "/api/book", `{"property_id":1,"nights":-1}`, token); code != http.StatusBadRequest {
		t.Fatalf("negative nights: expected 400, got %d", code)
	}
	if code, _ := do(t, h, http.MethodPost, "/api/book", `{"property_id":1,"nights":0}`, token); code != http.StatusBadRequest {
		t.Fatalf("zero nights: expected 400, got %d", code)
	}
	code, body := do(t, h, http.MethodPost, "/api/book", `{"property_id":2}`, token)
	if code != http.StatusOK {
		t.Fatalf("default nights: expected 200, got %d", code)
	}
	if b, _ := body["booking"].(map[string]any); b["nights"] != 1.0 || b["total"] != 180.0 {
		t.Fatalf("default nights: unexpected booking %v", b)
	}
}

func TestRoutes_CatalogAndFallbacks(t *testing.T) {
	h := newTestServer(t)

	code, body := do(t, h, http.MethodGet, "/api/featured", "", "")
	if code != http.StatusOK || len(body["properties"].([]any)) != 3 {
		t.Fatalf("featured: unexpected %d %v", code, body)
	}

	_, body = do(t, h, http.MethodPost, "/api/search", `{"query":"KARACHI"}`, "")
	if props := body["properties"].([]any); len(props) != 1 {
		t.Fatalf("search: expected 1 match, got %v", props)
	}
	_, body = do(t, h, http.MethodPost, "/api/search", `{"query":"atlantis"}`, "")
	if props := body["properties"].([]any); len(props) != 3 {
		t.Fatalf("search fallback: expected full catalog, got %v", props)
	}

	form := url.Values{"title": {"Lake Hut"}, "location": {"Hunza"}, "price": {"120.5"}}
	req := httptest.NewRequest(http.MethodPost, "/api/list-property", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list-property: expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	var listed struct {
		Property struct {
			ID         int     `json:"id"`
			Price      float64 `json:"price"`
			OwnerEmail string  `json:"owner_email"`
		} `json:"property"`
		PriceSource string `json:"price_source"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if listed.Property.ID != 4 || listed.Property.Price != 120.5 || listed.PriceSource != "submitted" {
		t.Fatalf("list-property: unexpected %+v", listed)
	}
	if listed.Property.OwnerEmail != "unknown@host.com" {
		t.Fatalf("list-property: expected default owner, got %q", listed.Property.OwnerEmail)
	}

	_, body = do(t, h, http.MethodPost, "/api/ai-pricing", `{"location":"Lahore"}`, "")
	if body["price"] != 250.0 {
		t.Fatalf("ai-pricing: expected fallback 250, got %v", body["price"])
	}
	_, body = do(t, h, http.MethodPost, "/api/translate", `{"text":"hola","target":"en"}`, "")
	if body["translation"] != "hola" {
		t.Fatalf("translate: expected input echoed, got %v", body["translation"])
	}
}

func TestRoutes_Payments(t *testing.T) {
	h := newTestServer(t)

	code, body := do(t, h, http.MethodPost, "/api/process-payment", `{"amount":100}`, "")
	if code != http.StatusOK {
		t.Fatalf("process-payment: expected 200, got %d", code)
	}
	if body["owner_share"] != "$70.00 (70%) → Property Owner" {
		t.Fatalf("unexpected owner share %v", body["owner_share"])
	}
	if body["iban"] != "PK36JCMA0000000000000000" {
		t.Fatalf("unexpected iban %v", body["iban"])
	}
	if code, _ := do(t, h, http.MethodPost, "/api/process-payment", `{"amount":0}`, ""); code != http.StatusBadRequest {
		t.Fatalf("zero amount: expected 400, got %d", code)
	}

	code, body = do(t, h, http.MethodPost, "/api/wu-to-jazzcash", `{"mtcn":"1234567890","amount_usd":10}`, "")
	if code != http.StatusOK {
		t.Fatalf("wu-to-jazzcash: expected 200, got %d %v", code, body)
	}
	if body["pkr_amount"] != 2785.0 || body["rate_source"] != "fallback" {
		t.Fatalf("wu-to-jazzcash: unexpected %v", body)
	}
	for _, bad := range []string{
		`{"mtcn":"12345","amount_usd":10}`,
		`{"mtcn":"12345abcde","amount_usd":10}`,
		`{"mtcn":"1234567890","amount_usd":0}`,
	} {
		if code, _ := do(t, h, http.MethodPost, "/api/wu-to-jazzcash", bad, ""); code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", bad, code)
		}
	}

	_, body = do(t, h, http.MethodGet, "/api/owner-stats", "", "")
	if body["revenue"] != 10.0 || body["visitors"] != 1244.0 || body["seo_score"] != "98%" {
		t.Fatalf("owner-stats after deposit: unexpected %v", body)
	}
}

func TestRoutes_StatusAndHealth(t *testing.T) {
	h := newTestServer(t)

	code, body := do(t, h, http.MethodGet, "/", "", "")
	if code != http.StatusOK {
		t.Fatalf("status: expected 200, got %d", code)
	}
	if eps, _ := body["endpoints"].([]any); len(eps) == 0 {
		t.Fatalf("status: expected endpoint list")
	}
	if code, _ := do(t, h, http.MethodGet, "/health", "", ""); code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", code)
	}
	if code, _ := do(t, h, http.MethodGet, "/health/ready", "", ""); code != http.StatusOK {
		t.Fatalf("ready: expected 200, got %d", code)
	}
}

func TestRoutes_WebSocketReceivesBookings(t *testing.T) {
	s := newServer(t)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	type frame struct {
		Event string         `json:"event"`
		Data  map[string]any `json:"data"`
	}
	read := func() frame {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			t.Fatalf("read frame: %v", err)
		}
		return f
	}

	// A reply proves the connection is subscribed before booking.
	if err := conn.WriteJSON(map[string]any{"event": "user_message", "data": map[string]string{"prompt": "hi"}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if f := read(); f.Event != "ai_response" || f.Data["response"] != "AI is thinking... Try again." {
		t.Fatalf("unexpected reply %+v", f)
	}

	_, body := do(t, s.Handler(), http.MethodPost, "/api/register", `{"email":"ws@b.com","password":"pw"}`, "")
	token, _ := body["token"].(string)
	if code, _ := do(t, s.Handler(), http.MethodPost, "/api/book", `{"property_id":1,"nights":2}`, token); code != http.StatusOK {
		t.Fatalf("book: expected 200, got %d", code)
	}

	f := read()
	if f.Event != "new_booking" {
		t.Fatalf("expected new_booking, got %q", f.Event)
	}
	if b, _ := f.Data["booking"].(map[string]any); b["total"] != 598.0 {
		t.Fatalf("unexpected booking frame %v", f.Data)
	}
}
