package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cohost-ai/rental-api/internal/core/ports"
)

const depositMessage = "WU converted & deposited to JazzCash in PKR"

type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// ProcessPayment splits an amount 70/30 between owner and platform.
//
// @Summary      Split a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      paymentRequest  true  "Amount in USD"
// @Success      200   {object}  paymentResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/process-payment [post]
func (h *PaymentHandler) ProcessPayment(c echo.Context) error {
	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid amount")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.service.SplitPayment(c.Request().Context(), req.Amount)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, paymentResponse{
		Status:         "Payment Split Done",
		Total:          fmt.Sprintf("$%.2f", res.Amount),
		OwnerShare:     fmt.Sprintf("$%.2f (70%%) → Property Owner", res.OwnerShare),
		PlatformShare:  fmt.Sprintf("$%.2f (30%%) → Platform", res.PlatformShare),
		OwnerAmount:    res.OwnerShare,
		PlatformAmount: res.PlatformShare,
		IBAN:           res.Payout.IBAN,
		AccountName:    res.Payout.AccountName,
		Timestamp:      res.ProcessedAt,
	})
}

// WUToJazzCash converts a Western Union transfer to PKR and records the
// deposit. rate_source is "fallback" when the live rate was unavailable.
//
// @Summary      Convert a Western Union transfer
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      depositRequest  true  "MTCN and USD amount"
// @Success      200   {object}  depositResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/wu-to-jazzcash [post]
func (h *PaymentHandler) WUToJazzCash(c echo.Context) error {
	var req depositRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid mtcn or amount")
	}
	req.MTCN = strings.TrimSpace(req.MTCN)
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.service.ConvertAndDeposit(c.Request().Context(), ports.ConvertInput{
		MTCN:      req.MTCN,
		AmountUSD: req.AmountUSD,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, depositResponse{
		Success:     true,
		PKRAmount:   res.PKRAmount,
		Rate:        res.Rate,
		RateSource:  res.RateSource,
		IBAN:        res.Payout.IBAN,
		AccountName: res.Payout.AccountName,
		Message:     depositMessage,
	})
}

// OwnerStats aggregates revenue across the ledger. Fields named in
// placeholders are synthetic.
//
// @Summary      Owner dashboard stats
// @Tags         payments
// @Produce      json
// @Success      200  {object}  ownerStatsResponse
// @Router       /api/owner-stats [get]
func (h *PaymentHandler) OwnerStats(c echo.Context) error {
	s, err := h.service.OwnerStats(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ownerStatsResponse{
		Visitors:       s.Visitors,
		Bookings:       s.Bookings,
		Revenue:        s.Revenue,
		OwnerProfit:    s.OwnerProfit,
		PlatformProfit: s.PlatformProfit,
		SEOScore:       s.SEOScore,
		Placeholders:   s.Placeholders,
	})
}
