package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/mfk4us/bocc-client-panel/internal/common"
	"github.com/mfk4us/bocc-client-panel/internal/models"
	"github.com/mfk4us/bocc-client-panel/internal/repositories"
)

type BookingHandlers struct {
	bookingRepo repositories.BookingRepository
}

func NewBookingHandlers(bookingRepo repositories.BookingRepository) *BookingHandlers {
	return &BookingHandlers{bookingRepo: bookingRepo}
}

type CreateBookingRequest struct {
	CustomerName string    `json:"customer_name"`
	PhoneNumber  string    `json:"phone_number"`
	Service      string    `json:"service"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	Notes        string    `json:"notes"`
}

type UpdateBookingRequest struct {
	CustomerName *string    `json:"customer_name"`
	PhoneNumber  *string    `json:"phone_number"`
	Service      *string    `json:"service"`
	ScheduledAt  *time.Time `json:"scheduled_at"`
	Status       *string    `json:"status"`
	Notes        *string    `json:"notes"`
}

// ListBookings handles GET /bookings
func (h *BookingHandlers) ListBookings(c echo.Context) error {
	ctx := c.Request().Context()

	workflow, ok := resolveWorkflow(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	limit, offset := parseListRange(c)

	bookings, err := h.bookingRepo.List(ctx, workflow, limit, offset)
	if err != nil {
		log.Printf("booking list failed for workflow %s: %v", workflow, err)
		return common.SendServerError(c, "Failed to list bookings")
	}
	if bookings == nil {
		bookings = []*models.Booking{}
	}

	return c.JSON(http.StatusOK, map[string]any{"bookings": bookings})
}

// CreateBooking handles POST /bookings
func (h *BookingHandlers) CreateBooking(c echo.Context) error {
	ctx := c.Request().Context()

	workflow, ok := resolveWorkflow(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.CustomerName == "" {
		return common.SendValidationError(c, "customer_name", "customer_name is required")
	}
	if req.ScheduledAt.IsZero() {
		return common.SendValidationError(c, "scheduled_at", "scheduled_at is required")
	}

	booking := &models.Booking{
		ID:           uuid.New(),
		WorkflowName: workflow,
		CustomerName: req.CustomerName,
		PhoneNumber:  req.PhoneNumber,
		Service:      req.Service,
		ScheduledAt:  req.ScheduledAt,
		Status:       "scheduled",
		Notes:        req.Notes,
	}
	if err := h.bookingRepo.Create(ctx, booking); err != nil {
		log.Printf("booking create failed: %v", err)
		return common.SendServerError(c, "Failed to create booking")
	}

	created, err := h.bookingRepo.GetByID(ctx, booking.ID)
	if err != nil {
		log.Printf("booking reload failed: %v", err)
		return common.SendServerError(c, "Failed to load booking")
	}

	return c.JSON(http.StatusCreated, created)
}

// UpdateBooking handles PUT /bookings/:id
func (h *BookingHandlers) UpdateBooking(c echo.Context) error {
	ctx := c.Request().Context()

	workflow, ok := resolveWorkflow(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req UpdateBookingRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	booking, err := h.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Booking")
		}
		log.Printf("booking lookup failed: %v", err)
		return common.SendServerError(c, "Failed to load booking")
	}
	if booking.WorkflowName != workflow {
		return common.SendNotFoundError(c, "Booking")
	}

	if req.CustomerName != nil {
		booking.CustomerName = *req.CustomerName
	}
	if req.PhoneNumber != nil {
		booking.PhoneNumber = *req.PhoneNumber
	}
	if req.Service != nil {
		booking.Service = *req.Service
	}
	if req.ScheduledAt != nil {
		booking.ScheduledAt = *req.ScheduledAt
	}
	if req.Status != nil {
		booking.Status = *req.Status
	}
	if req.Notes != nil {
		booking.Notes = *req.Notes
	}

	if err := h.bookingRepo.Update(ctx, booking); err != nil {
		log.Printf("booking update failed: %v", err)
		return common.SendServerError(c, "Failed to update booking")
	}

	updated, err := h.bookingRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("booking reload failed: %v", err)
		return common.SendServerError(c, "Failed to load booking")
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteBooking handles DELETE /bookings/:id
func (h *BookingHandlers) DeleteBooking(c echo.Context) error {
	ctx := c.Request().Context()

	workflow, ok := resolveWorkflow(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	booking, err := h.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Booking")
		}
		log.Printf("booking lookup failed: %v", err)
		return common.SendServerError(c, "Failed to load booking")
	}
	if booking.WorkflowName != workflow {
		return common.SendNotFoundError(c, "Booking")
	}

	if err := h.bookingRepo.Delete(ctx, id); err != nil {
		log.Printf("booking delete failed: %v", err)
		return common.SendServerError(c, "Failed to delete booking")
	}

	return c.NoContent(http.StatusNoContent)
}
