package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/cohost-ai/rental-api/internal/api"
	"github.com/cohost-ai/rental-api/internal/api/handler"
	"github.com/cohost-ai/rental-api/internal/core/domain"
	"github.com/cohost-ai/rental-api/internal/core/ports"
	"github.com/cohost-ai/rental-api/internal/core/service"
	"github.com/cohost-ai/rental-api/internal/infrastructure/db/memory"
	mongostore "github.com/cohost-ai/rental-api/internal/infrastructure/db/mongo"
	redisstore "github.com/cohost-ai/rental-api/internal/infrastructure/db/redis"
	"github.com/cohost-ai/rental-api/internal/infrastructure/realtime"
	"github.com/cohost-ai/rental-api/internal/infrastructure/remote/exchange"
	"github.com/cohost-ai/rental-api/internal/infrastructure/remote/gemini"
	"github.com/cohost-ai/rental-api/internal/pkg/config"
	"github.com/cohost-ai/rental-api/pkg/logger"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 15 * time.Second

// Version is reported by the status endpoint.
var Version = "dev"

// Server owns the HTTP router and every connection opened to build it.
type Server struct {
	cfg     *config.Config
	log     zerolog.Logger
	echo    *echo.Echo
	hub     *realtime.Hub
	closers []func(context.Context) error
}

type stores struct {
	users      ports.UserRepository
	properties ports.PropertyRepository
	ledger     ports.LedgerRepository
}

// New connects the configured backends and wires services into the router.
// reg receives the HTTP request metrics.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger, reg prometheus.Registerer) (*Server, error) {
	s := &Server{cfg: cfg, log: log}
	checks := make(map[string]handler.DependencyCheck)

	st, err := s.openStores(ctx, checks)
	if err != nil {
		s.close(ctx)
		return nil, err
	}

	rates, err := s.rateProvider(ctx, checks)
	if err != nil {
		s.close(ctx)
		return nil, err
	}

	aiClient, err := gemini.NewClient(ctx, cfg.AI.APIKey)
	if err != nil {
		s.close(ctx)
		return nil, err
	}
	if aiClient == nil {
		log.Warn().Msg("GEMINI_API_KEY not set, AI features will answer with fallbacks")
	}
	aiLog := logger.Component(log, "gemini")
	chatModel := gemini.New(aiClient, cfg.AI.ChatModel, cfg.RemoteTimeout, aiLog)
	pricingModel := gemini.New(aiClient, cfg.AI.PricingModel, cfg.RemoteTimeout, aiLog)

	// The hub runs until close, independent of ctx.
	hubCtx, stopHub := context.WithCancel(context.WithoutCancel(ctx))
	s.hub = realtime.NewHub(logger.Component(log, "realtime"))
	s.hub.Start(hubCtx)
	s.closers = append(s.closers, func(context.Context) error { stopHub(); return nil })

	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL, logger.Component(log, "tokens"))
	payout := ports.PayoutAccount{IBAN: cfg.Payout.IBAN, AccountName: cfg.Payout.AccountName}

	s.echo = api.NewRouter(api.Dependencies{
		Log:        logger.Component(log, "http"),
		Version:    Version,
		Registerer: reg,
		Tokens:     tokens,
		Auth:       service.NewAuthService(st.users, tokens, logger.Component(log, "auth")),
		Catalog:    service.NewCatalogService(st.properties, pricingModel, logger.Component(log, "catalog")),
		Booking:    service.NewBookingService(st.properties, st.ledger, s.hub, logger.Component(log, "booking")),
		Payment:    service.NewPaymentService(st.ledger, rates, payout, cfg.Rates.FallbackRate, logger.Component(log, "payments")),
		Assistant:  service.NewAssistantService(chatModel, pricingModel, logger.Component(log, "assistant")),
		Hub:        s.hub,
		Checks:     checks,
	})

	return s, nil
}

func (s *Server) openStores(ctx context.Context, checks map[string]handler.DependencyCheck) (stores, error) {
	if s.cfg.Store.Backend != config.StoreMongo {
		s.log.Info().Msg("using in-memory store, data is lost on restart")
		return stores{
			users:      memory.NewUserRepository(),
			properties: memory.NewPropertyRepository(domain.SeedProperties()),
			ledger:     memory.NewLedgerRepository(),
		}, nil
	}

	store, err := mongostore.Open(ctx, mongostore.Config{URI: s.cfg.Mongo.URI, Database: s.cfg.Mongo.Database})
	if err != nil {
		return stores{}, err
	}
	s.closers = append(s.closers, store.Close)
	checks["mongodb"] = store.Ping

	if err := store.Bootstrap(ctx, domain.SeedProperties()); err != nil {
		return stores{}, err
	}
	s.log.Info().Str("database", s.cfg.Mongo.Database).Msg("using mongo store")

	return stores{
		users:      store.Users(),
		properties: store.Properties(),
		ledger:     store.Ledger(),
	}, nil
}

func (s *Server) rateProvider(ctx context.Context, checks map[string]handler.DependencyCheck) (ports.RateProvider, error) {
	ratesLog := logger.Component(s.log, "exchange_rate")
	if s.cfg.Rates.APIKey == "" {
		ratesLog.Warn().Msg("EXCHANGE_RATE_API_KEY not set, deposits will use the fallback rate")
	}
	live := exchange.New(s.cfg.Rates.BaseURL, s.cfg.Rates.APIKey, s.cfg.RemoteTimeout, ratesLog)

	if s.cfg.Redis.Addr == "" {
		return live, nil
	}
	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: s.cfg.Redis.Addr, DB: s.cfg.Redis.DB})
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, func(context.Context) error { return rdb.Close() })
	checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }

	return redisstore.NewCachedRateProvider(rdb, live, s.cfg.Redis.RateTTL, ratesLog), nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves HTTP until Shutdown is called.
func (s *Server) Start(_ context.Context) error {
	addr := ":" + s.cfg.Port
	s.log.Info().Str("addr", addr).Str("version", Version).Msg("listening")
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests, then closes backend connections.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.echo.Shutdown(ctx)
	s.close(ctx)
	return err
}

func (s *Server) close(ctx context.Context) {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			s.log.Warn().Err(err).Msg("closing backend")
		}
	}
	s.closers = nil
}
