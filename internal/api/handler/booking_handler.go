package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cohost-ai/rental-api/internal/core/ports"
)

type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Book confirms a stay for the authenticated user. Nights defaults to 1 when
// omitted; zero or negative is a 400.
//
// @Summary      Book a property
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bookRequest  true  "Property and nights"
// @Success      200   {object}  bookResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/book [post]
func (h *BookingHandler) Book(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	booking, err := h.service.Book(c.Request().Context(), ports.BookInput{
		UserID:     userID,
		PropertyID: req.PropertyID,
		Nights:     req.Nights,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, bookResponse{Booking: *booking, Message: "Booked successfully!"})
}

// MyBookings lists the caller's bookings in the order they were made.
//
// @Summary      List my bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  bookingsResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/my-bookings [get]
func (h *BookingHandler) MyBookings(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	bookings, err := h.service.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookingsResponse{Bookings: bookings})
}
