package handler

import (
	"time"

	"github.com/cohost-ai/rental-api/internal/core/domain"
)

// errorResponse mirrors the envelope rendered by the API error handler.
type errorResponse struct {
	Error string `json:"error"`
}

// ── Identity ─────────────────────────────────────────────────────────────────

type credentialsRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

type userSummary struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  userSummary `json:"user"`
}

// ── Catalog ──────────────────────────────────────────────────────────────────

type searchRequest struct {
	Query string `json:"query"`
}

type propertiesResponse struct {
	Properties []domain.Property `json:"properties"`
}

// listPropertyRequest is submitted as a form, not JSON.
type listPropertyRequest struct {
	Title    string  `form:"title"    validate:"required"`
	Location string  `form:"location" validate:"required"`
	Price    float64 `form:"price"    validate:"gt=0"`
	Email    string  `form:"email"`
}

type listPropertyResponse struct {
	Message     string          `json:"message"`
	Property    domain.Property `json:"property"`
	PriceSource string          `json:"price_source"`
}

// ── Bookings ─────────────────────────────────────────────────────────────────

type bookRequest struct {
	PropertyID int  `json:"property_id"`
	Nights     *int `json:"nights"`
}

type bookResponse struct {
	Booking domain.Booking `json:"booking"`
	Message string         `json:"message"`
}

type bookingsResponse struct {
	Bookings []domain.Booking `json:"bookings"`
}

// ── Payments ─────────────────────────────────────────────────────────────────

type paymentRequest struct {
	Amount float64 `json:"amount" validate:"gt=0"`
}

type paymentResponse struct {
	Status         string    `json:"status"`
	Total          string    `json:"total"`
	OwnerShare     string    `json:"owner_share"`
	PlatformShare  string    `json:"platform_share"`
	OwnerAmount    float64   `json:"owner_amount"`
	PlatformAmount float64   `json:"platform_amount"`
	IBAN           string    `json:"iban"`
	AccountName    string    `json:"account_name"`
	Timestamp      time.Time `json:"timestamp"`
}

type depositRequest struct {
	MTCN      string  `json:"mtcn"       validate:"required,len=10,number"`
	AmountUSD float64 `json:"amount_usd" validate:"gt=0"`
}

type depositResponse struct {
	Success     bool    `json:"success"`
	PKRAmount   float64 `json:"pkr_amount"`
	Rate        float64 `json:"rate"`
	RateSource  string  `json:"rate_source"`
	IBAN        string  `json:"iban"`
	AccountName string  `json:"account_name"`
	Message     string  `json:"message"`
}

type ownerStatsResponse struct {
	Visitors       int      `json:"visitors"`
	Bookings       int      `json:"bookings"`
	Revenue        float64  `json:"revenue"`
	OwnerProfit    float64  `json:"owner_profit"`
	PlatformProfit float64  `json:"platform_profit"`
	SEOScore       string   `json:"seo_score"`
	Placeholders   []string `json:"placeholders"`
}

// ── Assistant ────────────────────────────────────────────────────────────────

type translateRequest struct {
	Text   string `json:"text"`
	Target string `json:"target"`
}

type translateResponse struct {
	Translation string `json:"translation"`
}

type pricingRequest struct {
	Location string `json:"location"`
}

type pricingResponse struct {
	Price float64 `json:"price"`
}
