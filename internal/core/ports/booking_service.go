package ports

import (
	"context"

	"github.com/cohost-ai/rental-api/internal/core/domain"
)

// BookInput is a booking request from an authenticated user. A nil Nights
// means the caller did not send one.
type BookInput struct {
	UserID     string
	PropertyID int
	Nights     *int
}

type BookingService interface {
	Book(ctx context.Context, in BookInput) (*domain.Booking, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Booking, error)
}

// BookingPublisher receives every confirmed booking.
type BookingPublisher interface {
	PublishBooking(b domain.Booking)
}
