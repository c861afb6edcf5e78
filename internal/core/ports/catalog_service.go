package ports

import (
	"context"

	"github.com/cohost-ai/rental-api/internal/core/domain"
)

// CreateListingInput carries a host's new listing as submitted.
type CreateListingInput struct {
	Title      string
	Location   string
	Price      float64
	OwnerEmail string
}

// ListingResult is the stored property plus how its price was decided.
type ListingResult struct {
	Property domain.Property
	// PriceSource is "ai" when the suggested price was applied, "submitted" otherwise.
	PriceSource string
}

type CatalogService interface {
	Featured(ctx context.Context) ([]domain.Property, error)
	Search(ctx context.Context, query string) ([]domain.Property, error)
	CreateListing(ctx context.Context, in CreateListingInput) (*ListingResult, error)
}
