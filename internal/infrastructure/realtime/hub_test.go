package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cohost-ai/rental-api/internal/core/domain"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := NewHub(zerolog.Nop())
	h.Start(ctx)
	return h
}

func receive(t *testing.T, s *Subscriber) []byte {
	t.Helper()
	select {
	case msg, ok := <-s.Messages():
		if !ok {
			t.Fatalf("subscriber channel closed")
		}
		return msg
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for broadcast")
	}
	return nil
}

func TestHub_PublishBookingReachesAllSubscribers(t *testing.T) {
	h := startHub(t)
	a, b := h.Subscribe(), h.Subscribe()

	h.PublishBooking(domain.Booking{ID: 7, UserID: "u1", Nights: 2, Total: 598})

	for _, s := range []*Subscriber{a, b} {
		var got struct {
			Event string `json:"event"`
			Data  struct {
				Booking domain.Booking `json:"booking"`
			} `json:"data"`
		}
		if err := json.Unmarshal(receive(t, s), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Event != EventNewBooking {
			t.Fatalf("expected %s, got %s", EventNewBooking, got.Event)
		}
		if got.Data.Booking.ID != 7 || got.Data.Booking.Total != 598 {
			t.Fatalf("unexpected booking %+v", got.Data.Booking)
		}
	}
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	h := startHub(t)
	s := h.Subscribe()

	h.Unsubscribe(s)

	select {
	case _, ok := <-s.Messages():
		if ok {
			t.Fatalf("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatalf("channel not closed")
	}
}

func TestHub_SlowSubscriberDoesNotBlockPublisher(t *testing.T) {
	h := startHub(t)
	slow := h.Subscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*4; i++ {
			h.PublishBooking(domain.Booking{ID: i + 1})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("publisher blocked on a slow subscriber")
	}

	// the buffer still holds the frames that fit
	if msg := receive(t, slow); len(msg) == 0 {
		t.Fatalf("expected a buffered frame")
	}
}

func TestHub_SubscribeAfterStopReturnsClosed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub(zerolog.Nop())
	h.Start(ctx)
	cancel()
	<-h.done

	s := h.Subscribe()
	if _, ok := <-s.Messages(); ok {
		t.Fatalf("expected closed channel from stopped hub")
	}
}
