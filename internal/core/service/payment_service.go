package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cohost-ai/rental-api/internal/api/metrics"
	"github.com/cohost-ai/rental-api/internal/core/domain"
	"github.com/cohost-ai/rental-api/internal/core/ports"
)

const (
	// DefaultFallbackRate is the USD→PKR rate used when no live rate is available.
	DefaultFallbackRate = 278.5

	RateSourceLive     = "live"
	RateSourceFallback = "fallback"

	mtcnLength = 10
)

// Placeholder traffic figures. They are not measured anywhere.
const (
	placeholderVisitorBase       = 1234
	placeholderVisitorsPerRecord = 10
	placeholderSEOScore          = "98%"
)

type PaymentService struct {
	ledger       ports.LedgerRepository
	rates        ports.RateProvider
	payout       ports.PayoutAccount
	fallbackRate float64
	log          zerolog.Logger
	now          func() time.Time
}

func NewPaymentService(
	ledger ports.LedgerRepository,
	rates ports.RateProvider,
	payout ports.PayoutAccount,
	fallbackRate float64,
	log zerolog.Logger,
) *PaymentService {
	if fallbackRate <= 0 {
		fallbackRate = DefaultFallbackRate
	}
	return &PaymentService{
		ledger:       ledger,
		rates:        rates,
		payout:       payout,
		fallbackRate: fallbackRate,
		log:          log,
		now:          time.Now,
	}
}

// SplitPayment divides amount between owner (70%) and platform (30%).
func (s *PaymentService) SplitPayment(_ context.Context, amount float64) (*ports.SplitResult, error) {
	if !validAmount(amount) {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	owner, platform := domain.Split(amount)
	return &ports.SplitResult{
		Amount:        amount,
		OwnerShare:    owner,
		PlatformShare: platform,
		Payout:        s.payout,
		ProcessedAt:   s.now().UTC(),
	}, nil
}

// ConvertAndDeposit converts a Western Union transfer to PKR and records it in
// the ledger. A failing rate lookup falls back to the fixed rate.
func (s *PaymentService) ConvertAndDeposit(ctx context.Context, in ports.ConvertInput) (*ports.ConversionResult, error) {
	mtcn := strings.TrimSpace(in.MTCN)
	if !validMTCN(mtcn) || !validAmount(in.AmountUSD) {
		return nil, fmt.Errorf("%w: mtcn must be %d digits and amount positive", domain.ErrInvalidInput, mtcnLength)
	}

	rate, source := s.usdToPKR(ctx)
	pkr := math.Round(in.AmountUSD * rate)

	deposit := &domain.Deposit{
		Method:      domain.DepositMethodWU,
		MTCN:        mtcn,
		USD:         in.AmountUSD,
		PKR:         pkr,
		Rate:        rate,
		RateSource:  source,
		IBAN:        s.payout.IBAN,
		AccountName: s.payout.AccountName,
		Timestamp:   s.now().UTC(),
	}
	if err := s.ledger.Append(ctx, deposit); err != nil {
		s.log.Error().Err(err).Msg("failed to record deposit")
		return nil, fmt.Errorf("deposit: %w", err)
	}

	metrics.DepositsTotal.WithLabelValues(source).Inc()
	s.log.Info().
		Int("seq", deposit.Seq).
		Float64("usd", in.AmountUSD).
		Float64("pkr", pkr).
		Str("rate_source", source).
		Msg("deposit converted")

	return &ports.ConversionResult{
		PKRAmount:  pkr,
		Rate:       rate,
		RateSource: source,
		Payout:     s.payout,
	}, nil
}

func (s *PaymentService) usdToPKR(ctx context.Context) (float64, string) {
	rate, err := s.rates.Rate(ctx, "USD", "PKR")
	if err == nil && rate > 0 && !math.IsInf(rate, 0) {
		return rate, RateSourceLive
	}
	if err == nil {
		err = fmt.Errorf("%w: unusable rate %v", domain.ErrRemoteUnavailable, rate)
	}
	degrade(s.log, capabilityExchangeRate, "convert", err)
	return s.fallbackRate, RateSourceFallback
}

// OwnerStats aggregates revenue over the whole ledger.
func (s *PaymentService) OwnerStats(ctx context.Context) (*ports.OwnerStats, error) {
	entries, err := s.ledger.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("owner stats: %w", err)
	}

	var revenue float64
	for _, e := range entries {
		revenue += e.RevenueContribution()
	}
	owner, platform := domain.Split(revenue)
	visitors, seo := placeholderTraffic(len(entries))

	return &ports.OwnerStats{
		Bookings:       len(entries),
		Revenue:        domain.Round2(revenue),
		OwnerProfit:    domain.Round2(owner),
		PlatformProfit: domain.Round2(platform),
		Visitors:       visitors,
		SEOScore:       seo,
		Placeholders:   []string{"visitors", "seo_score"},
	}, nil
}

// placeholderTraffic stands in for visitor analytics and SEO scoring, which
// do not exist. The figures are synthetic.
func placeholderTraffic(records int) (visitors int, seoScore string) {
	return placeholderVisitorBase + records*placeholderVisitorsPerRecord, placeholderSEOScore
}

func validAmount(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func validMTCN(mtcn string) bool {
	if len(mtcn) != mtcnLength {
		return false
	}
	for i := 0; i < len(mtcn); i++ {
		if mtcn[i] < '0' || mtcn[i] > '9' {
			return false
		}
	}
	return true
}
