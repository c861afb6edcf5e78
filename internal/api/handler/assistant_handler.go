package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cohost-ai/rental-api/internal/core/ports"
)

// AssistantHandler serves the AI-backed endpoints. They never report remote
// failures; the service substitutes a fallback.
type AssistantHandler struct {
	service ports.AssistantService
}

func NewAssistantHandler(service ports.AssistantService) *AssistantHandler {
	return &AssistantHandler{service: service}
}

// Translate returns the text in the target language, or unchanged when the
// model is unavailable.
//
// @Summary      Translate text
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Param        body  body      translateRequest  true  "Text and target language"
// @Success      200   {object}  translateResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/translate [post]
func (h *AssistantHandler) Translate(c echo.Context) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	out := h.service.Translate(c.Request().Context(), req.Text, req.Target)
	return c.JSON(http.StatusOK, translateResponse{Translation: out})
}

// AIPricing suggests a nightly price for a location, 250 when the model is
// unavailable.
//
// @Summary      Suggest a nightly price
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Param        body  body      pricingRequest  true  "Location"
// @Success      200   {object}  pricingResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/ai-pricing [post]
func (h *AssistantHandler) AIPricing(c echo.Context) error {
	var req pricingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	price := h.service.SuggestPrice(c.Request().Context(), req.Location)
	return c.JSON(http.StatusOK, pricingResponse{Price: price})
}
