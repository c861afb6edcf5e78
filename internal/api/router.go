package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/cohost-ai/rental-api/docs"
	"github.com/cohost-ai/rental-api/internal/api/handler"
	"github.com/cohost-ai/rental-api/internal/api/middleware"
	"github.com/cohost-ai/rental-api/internal/core/ports"
)

// Dependencies are the services and infrastructure the router mounts.
type Dependencies struct {
	Log     zerolog.Logger
	Version string
	// Registerer receives the HTTP request metrics. Nil means the default registry.
	Registerer prometheus.Registerer

	Tokens    ports.TokenVerifier
	Auth      ports.AuthService
	Catalog   ports.CatalogService
	Booking   ports.BookingService
	Payment   ports.PaymentService
	Assistant ports.AssistantService
	Hub       handler.Broadcaster
	Checks    map[string]handler.DependencyCheck
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	registerer := d.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "rental",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	authHandler := handler.NewAuthHandler(d.Auth)
	catalogHandler := handler.NewCatalogHandler(d.Catalog)
	bookingHandler := handler.NewBookingHandler(d.Booking)
	paymentHandler := handler.NewPaymentHandler(d.Payment)
	assistantHandler := handler.NewAssistantHandler(d.Assistant)
	chatHandler := handler.NewChatHandler(d.Assistant, d.Hub, d.Log)
	requireAuth := middleware.Auth(d.Tokens)

	// --- API routes ---
	g := e.Group("/api")
	g.POST("/register", authHandler.Register)
	g.POST("/login", authHandler.Login)
	g.GET("/featured", catalogHandler.Featured)
	g.POST("/search", catalogHandler.Search)
	g.POST("/list-property", catalogHandler.ListProperty)
	g.POST("/book", bookingHandler.Book, requireAuth)
	g.GET("/my-bookings", bookingHandler.MyBookings, requireAuth)
	g.POST("/process-payment", paymentHandler.ProcessPayment)
	g.POST("/wu-to-jazzcash", paymentHandler.WUToJazzCash)
	g.POST("/translate", assistantHandler.Translate)
	g.GET("/owner-stats", paymentHandler.OwnerStats)
	g.POST("/ai-pricing", assistantHandler.AIPricing)

	e.GET("/ws", chatHandler.Serve)

	// --- Status, health probes, metrics, docs (no auth required) ---
	e.GET("/", handler.NewStatusHandler(d.Version).Status)
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(d.Checks).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
