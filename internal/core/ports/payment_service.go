package ports

import (
	"context"
	"time"
)

// PayoutAccount is the destination account shown to payers.
type PayoutAccount struct {
	IBAN        string
	AccountName string
}

// SplitResult is the 70/30 breakdown of a payment.
type SplitResult struct {
	Amount        float64
	OwnerShare    float64
	PlatformShare float64
	Payout        PayoutAccount
	ProcessedAt   time.Time
}

// ConvertInput is a Western Union transfer to be paid out in PKR.
type ConvertInput struct {
	MTCN      string
	AmountUSD float64
}

// ConversionResult is the outcome of a deposit.
type ConversionResult struct {
	PKRAmount  float64
	Rate       float64
	RateSource string
	Payout     PayoutAccount
}

// OwnerStats aggregates the ledger. Visitors and SEOScore are placeholders,
// not measurements.
type OwnerStats struct {
	Bookings       int
	Revenue        float64
	OwnerProfit    float64
	PlatformProfit float64
	Visitors       int
	SEOScore       string
	Placeholders   []string
}

type PaymentService interface {
	SplitPayment(ctx context.Context, amount float64) (*SplitResult, error)
	ConvertAndDeposit(ctx context.Context, in ConvertInput) (*ConversionResult, error)
	OwnerStats(ctx context.Context) (*OwnerStats, error)
}
