package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cohost-ai/rental-api/internal/core/ports"
)

type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// Featured returns the first three listings.
//
// @Summary      Featured properties
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  propertiesResponse
// @Router       /api/featured [get]
func (h *CatalogHandler) Featured(c echo.Context) error {
	props, err := h.service.Featured(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, propertiesResponse{Properties: props})
}

// Search matches title or location, case-insensitively. No match returns the
// whole catalog.
//
// @Summary      Search properties
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body      searchRequest  true  "Search query"
// @Success      200   {object}  propertiesResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/search [post]
func (h *CatalogHandler) Search(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	props, err := h.service.Search(c.Request().Context(), req.Query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, propertiesResponse{Properties: props})
}

// ListProperty adds a listing. The stored price may be replaced by an AI
// suggestion; price_source says which one was kept.
//
// @Summary      List a property
// @Tags         catalog
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        title     formData  string  true   "Title"
// @Param        location  formData  string  true   "Location"
// @Param        price     formData  number  true   "Nightly price"
// @Param        email     formData  string  false  "Owner email"
// @Success      200       {object}  listPropertyResponse
// @Failure      400       {object}  errorResponse
// @Router       /api/list-property [post]
func (h *CatalogHandler) ListProperty(c echo.Context) error {
	var req listPropertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid data")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.service.CreateListing(c.Request().Context(), ports.CreateListingInput{
		Title:      req.Title,
		Location:   req.Location,
		Price:      req.Price,
		OwnerEmail: req.Email,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listPropertyResponse{
		Message:     "Property listed!",
		Property:    res.Property,
		PriceSource: res.PriceSource,
	})
}
