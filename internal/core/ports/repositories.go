package ports

import (
	"context"

	"github.com/cohost-ai/rental-api/internal/core/domain"
)

// UserRepository persists accounts keyed by email.
type UserRepository interface {
	// Create fails with domain.ErrUserExists when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// PropertyRepository holds the catalog in insertion order.
type PropertyRepository interface {
	// Insert assigns the next id (count+1) and stores a copy of p.
	Insert(ctx context.Context, p domain.Property) (domain.Property, error)
	// Get fails with domain.ErrPropertyNotFound for unknown ids.
	Get(ctx context.Context, id int) (domain.Property, error)
	List(ctx context.Context) ([]domain.Property, error)
}

// LedgerRepository is the append-only sequence of bookings and deposits.
type LedgerRepository interface {
	// Append assigns the entry its sequence (ledger length + 1) and stores it.
	Append(ctx context.Context, entry domain.LedgerEntry) error
	List(ctx context.Context) ([]domain.LedgerEntry, error)
}
