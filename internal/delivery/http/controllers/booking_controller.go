package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"fitstudy/internal/delivery/http/helpers"
	"fitstudy/internal/delivery/http/middleware"
	"fitstudy/internal/domain"
)

// CreateBookingRequest is the request body for POST /bookings.
type CreateBookingRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	EventID string `json:"event_id" validate:"required"`
}

// BookingResultResponse is the success response envelope for POST /bookings (201).
type BookingResultResponse struct {
	Data  domain.BookingResult `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// CancelResultResponse is the success response envelope for DELETE /bookings/{bookingID} (200).
type CancelResultResponse struct {
	Data  domain.CancelResult `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// ListMyBookingsResponse is the success response envelope for GET /me/bookings (200).
type ListMyBookingsResponse struct {
	Data  []*domain.BookingWithEvent `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
	Now     func() time.Time
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
		Now:     time.Now,
	}
}

// CreateBooking godoc
// @Summary Book a study event
// @Description Reserves one seat on the event for the authenticated participant. user_id must match the token subject. Assessments and scans allow a single upcoming booking per participant.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param booking body CreateBookingRequest true "Participant and event"
// @Success 201 {object} controllers.BookingResultResponse "data.booking_id is the new booking"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request | invalid_input"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized | unauthenticated"
// @Failure 403 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: already_booked | category_conflict | event_full"
// @Failure 422 {object} helpers.APIResponse "error.code: event_in_past"
// @Failure 500 {object} helpers.APIResponse "error.code: internal"
// @Failure 503 {object} helpers.APIResponse "error.code: unknown"
// @Router /bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	requesterID, _ := middleware.UserIDFromContext(r.Context())

	res := c.Service.CreateBooking(r.Context(), requesterID, req.UserID, req.EventID, c.Now())
	if !res.Success {
		helpers.WriteKindError(w, res.ErrorKind, res.Message)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, res)
}

// CancelBooking godoc
// @Summary Cancel a booking
// @Description Cancels a confirmed booking owned by the authenticated participant. Allowed until 24 hours before the event starts.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param bookingID path string true "Booking ID (UUID)"
// @Success 200 {object} controllers.CancelResultResponse
// @Failure 400 {object} helpers.APIResponse "error.code: invalid_input"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized | unauthenticated"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: cancellation_window_closed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal"
// @Failure 503 {object} helpers.APIResponse "error.code: unknown"
// @Router /bookings/{bookingID} [delete]
func (c *BookingController) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "bookingID")
	requesterID, _ := middleware.UserIDFromContext(r.Context())

	res := c.Service.CancelBooking(r.Context(), requesterID, bookingID, c.Now())
	if !res.Success {
		helpers.WriteKindError(w, res.ErrorKind, res.Message)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}

// ListMyBookings godoc
// @Summary List my bookings
// @Description Returns the authenticated participant's confirmed bookings with their events, ordered by start time.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListMyBookingsResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /me/bookings [get]
func (c *BookingController) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	items, err := c.Service.ListMyBookings(r.Context(), userID)
	if errors.Is(err, domain.ErrInvalidInput) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not load bookings")
		return
	}
	if items == nil {
		items = []*domain.BookingWithEvent{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}
