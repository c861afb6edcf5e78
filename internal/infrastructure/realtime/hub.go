package realtime

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/cohost-ai/rental-api/internal/api/metrics"
	"github.com/cohost-ai/rental-api/internal/core/domain"
)

const (
	channelBuffer    = 256
	subscriberBuffer = 16

	EventNewBooking = "new_booking"
	EventUserMsg    = "user_message"
	EventAIResponse = "ai_response"
)

// Envelope is the frame exchanged with realtime clients.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Subscriber receives encoded broadcast frames. Its channel is closed when the
// subscriber is removed or the hub stops.
type Subscriber struct {
	send chan []byte
}

func (s *Subscriber) Messages() <-chan []byte { return s.send }

// Hub fans broadcast frames out to every subscriber from a single goroutine.
// Publishing never blocks: a full hub queue or a full subscriber buffer drops
// the frame for that path.
type Hub struct {
	broadcast   chan []byte
	register    chan *Subscriber
	unregister  chan *Subscriber
	done        chan struct{}
	subscribers map[*Subscriber]struct{}
	log         zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		broadcast:   make(chan []byte, channelBuffer),
		register:    make(chan *Subscriber),
		unregister:  make(chan *Subscriber),
		done:        make(chan struct{}),
		subscribers: make(map[*Subscriber]struct{}),
		log:         log,
	}
}

// Start launches the run loop. It stops when ctx is cancelled.
func (h *Hub) Start(ctx context.Context) {
	go h.run(ctx)
}

func (h *Hub) Subscribe() *Subscriber {
	s := &Subscriber{send: make(chan []byte, subscriberBuffer)}
	select {
	case h.register <- s:
	case <-h.done:
		close(s.send)
	}
	return s
}

func (h *Hub) Unsubscribe(s *Subscriber) {
	select {
	case h.unregister <- s:
	case <-h.done:
	}
}

// PublishBooking implements ports.BookingPublisher.
func (h *Hub) PublishBooking(b domain.Booking) {
	h.Broadcast(Envelope{Event: EventNewBooking, Data: map[string]any{"booking": b}})
}

func (h *Hub) Broadcast(env Envelope) {
	msg, err := json.Marshal(env)
	if err != nil {
		h.log.Error().Err(err).Str("event", env.Event).Msg("encode broadcast")
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		metrics.RealtimeDroppedTotal.Inc()
		h.log.Warn().Str("event", env.Event).Msg("hub queue full, dropping broadcast")
	}
}

func (h *Hub) run(ctx context.Context) {
	defer func() {
		close(h.done)
		for s := range h.subscribers {
			close(s.send)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case s := <-h.register:
			h.subscribers[s] = struct{}{}
		case s := <-h.unregister:
			if _, ok := h.subscribers[s]; ok {
				delete(h.subscribers, s)
				close(s.send)
			}
		case msg := <-h.broadcast:
			for s := range h.subscribers {
				select {
				case s.send <- msg:
				default:
					metrics.RealtimeDroppedTotal.Inc()
				}
			}
		}
	}
}
