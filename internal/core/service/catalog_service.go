package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cohost-ai/rental-api/internal/api/metrics"
	"github.com/cohost-ai/rental-api/internal/core/domain"
	"github.com/cohost-ai/rental-api/internal/core/ports"
)

const (
	featuredCount = 3

	PriceSourceAI        = "ai"
	PriceSourceSubmitted = "submitted"
)

type CatalogService struct {
	repo    ports.PropertyRepository
	pricing ports.TextGenerator
	log     zerolog.Logger
}

func NewCatalogService(repo ports.PropertyRepository, pricing ports.TextGenerator, log zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, pricing: pricing, log: log}
}

// Featured returns the first properties of the catalog in insertion order.
func (s *CatalogService) Featured(ctx context.Context) ([]domain.Property, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("featured: %w", err)
	}
	if len(all) > featuredCount {
		all = all[:featuredCount]
	}
	return all, nil
}

// Search matches query case-insensitively against title or location. When
// nothing matches the whole catalog is returned instead of an empty result.
func (s *CatalogService) Search(ctx context.Context, query string) ([]domain.Property, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	q := strings.ToLower(query)
	matched := make([]domain.Property, 0, len(all))
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Location), q) {
			matched = append(matched, p)
		}
	}
	if len(matched) == 0 {
		return all, nil
	}
	return matched, nil
}

// CreateListing stores a new property. The nightly price is replaced by the
// pricing model's suggestion when one can be obtained.
func (s *CatalogService) CreateListing(ctx context.Context, in ports.CreateListingInput) (*ports.ListingResult, error) {
	title := strings.TrimSpace(in.Title)
	location := strings.TrimSpace(in.Location)
	if title == "" || location == "" || !(in.Price > 0) || math.IsInf(in.Price, 0) {
		return nil, fmt.Errorf("%w: title, location and a positive price are required", domain.ErrInvalidInput)
	}

	owner := strings.TrimSpace(in.OwnerEmail)
	if owner == "" {
		owner = domain.DefaultOwnerEmail
	}

	price, source := s.suggestListingPrice(ctx, title, location, in.Price)

	stored, err := s.repo.Insert(ctx, domain.Property{
		Title:      title,
		Location:   location,
		Price:      price,
		OwnerEmail: owner,
	})
	if err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}

	metrics.ListingsCreatedTotal.WithLabelValues(source).Inc()
	s.log.Info().
		Int("property_id", stored.ID).
		Str("price_source", source).
		Float64("price", stored.Price).
		Msg("property listed")

	return &ports.ListingResult{Property: stored, PriceSource: source}, nil
}

func (s *CatalogService) suggestListingPrice(ctx context.Context, title, location string, submitted float64) (float64, string) {
	prompt := fmt.Sprintf(
		"Suggest optimal nightly price for '%s' in %s. Current $%s. Return only a number.",
		title, location, strconv.FormatFloat(submitted, 'f', -1, 64),
	)

	reply, err := s.pricing.Generate(ctx, prompt)
	if err != nil {
		degrade(s.log, capabilityAI, "list_property", err)
		return submitted, PriceSourceSubmitted
	}

	suggested, err := parsePrice(reply)
	if err != nil {
		degrade(s.log, capabilityAI, "list_property", fmt.Errorf("%w: unparseable price %q", domain.ErrRemoteUnavailable, reply))
		return submitted, PriceSourceSubmitted
	}
	return math.Round(suggested), PriceSourceAI
}
