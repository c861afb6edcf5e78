package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cohost-ai/rental-api/internal/api/metrics"
	"github.com/cohost-ai/rental-api/internal/core/domain"
	"github.com/cohost-ai/rental-api/internal/core/ports"
)

type BookingService struct {
	properties ports.PropertyRepository
	ledger     ports.LedgerRepository
	publisher  ports.BookingPublisher
	log        zerolog.Logger
	now        func() time.Time
}

// NewBookingService wires the booking use case. publisher may be nil.
func NewBookingService(
	properties ports.PropertyRepository,
	ledger ports.LedgerRepository,
	publisher ports.BookingPublisher,
	log zerolog.Logger,
) *BookingService {
	return &BookingService{
		properties: properties,
		ledger:     ledger,
		publisher:  publisher,
		log:        log,
		now:        time.Now,
	}
}

const defaultNights = 1

// Book confirms a stay. Nights defaults to 1 when omitted; no availability or
// overlap checks are made.
func (s *BookingService) Book(ctx context.Context, in ports.BookInput) (*domain.Booking, error) {
	nights := defaultNights
	if in.Nights != nil {
		nights = *in.Nights
	}
	if nights < 1 {
		return nil, fmt.Errorf("%w: nights must be at least 1", domain.ErrInvalidInput)
	}

	prop, err := s.properties.Get(ctx, in.PropertyID)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		UserID:    in.UserID,
		Property:  prop,
		Nights:    nights,
		Total:     prop.Price * float64(nights),
		Timestamp: s.now().UTC(),
		Status:    domain.BookingStatusConfirmed,
	}
	if err := s.ledger.Append(ctx, booking); err != nil {
		s.log.Error().Err(err).Int("property_id", prop.ID).Msg("failed to record booking")
		return nil, fmt.Errorf("book: %w", err)
	}

	metrics.BookingsCreatedTotal.Inc()
	s.log.Info().
		Int("booking_id", booking.ID).
		Int("property_id", prop.ID).
		Str("user_id", in.UserID).
		Float64("total", booking.Total).
		Msg("booking confirmed")

	if s.publisher != nil {
		s.publisher.PublishBooking(*booking)
	}
	return booking, nil
}

// ListForUser returns the bookings made by userID, oldest first.
func (s *BookingService) ListForUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	entries, err := s.ledger.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	out := make([]domain.Booking, 0)
	for _, e := range entries {
		if b, ok := e.(*domain.Booking); ok && b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}
