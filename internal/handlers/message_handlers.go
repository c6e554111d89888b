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

type MessageHandlers struct {
	messageRepo repositories.MessageRepository
}

func NewMessageHandlers(messageRepo repositories.MessageRepository) *MessageHandlers {
	return &MessageHandlers{messageRepo: messageRepo}
}

type CreateMessageRequest struct {
	Channel      string `json:"channel"`
	Recipient    string `json:"recipient"`
	TemplateName string `json:"template_name"`
	Body         string `json:"body"`
}

type UpdateMessageStatusRequest struct {
	Status string `json:"status"`
}

func validChannel(channel string) bool {
	switch channel {
	case models.ChannelWhatsApp, models.ChannelSMS, models.ChannelEmail:
		return true
	}
	return false
}

func validMessageStatus(status string) bool {
	switch status {
	case models.MessageStatusQueued, models.MessageStatusSent, models.MessageStatusFailed:
		return true
	}
	return false
}

// ListMessages handles GET /messages
func (h *MessageHandlers) ListMessages(c echo.Context) error {
	ctx := c.Request().Context()

	workflow, ok := resolveWorkflow(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	limit, offset := parseListRange(c)

	messages, err := h.messageRepo.List(ctx, workflow, limit, offset)
	if err != nil {
		log.Printf("message list failed for workflow %s: %v", workflow, err)
		return common.SendServerError(c, "Failed to list messages")
	}
	if messages == nil {
		messages = []*models.Message{}
	}

	return c.JSON(http.StatusOK, map[string]any{"messages": messages})
}

// CreateMessage handles POST /messages. New records always start queued; the
// delivery worker moves them to sent or failed.
func (h *MessageHandlers) CreateMessage(c echo.Context) error {
	ctx := c.Request().Context()

	workflow, ok := resolveWorkflow(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req CreateMessageRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if !validChannel(req.Channel) {
		return common.SendValidationError(c, "channel", "channel must be whatsapp, sms or email")
	}
	if req.Recipient == "" {
		return common.SendValidationError(c, "recipient", "recipient is required")
	}
	if req.TemplateName == "" && req.Body == "" {
		return common.SendValidationError(c, "body", "template_name or body is required")
	}

	message := &models.Message{
		ID:           uuid.New(),
		WorkflowName: workflow,
		Channel:      req.Channel,
		Recipient:    req.Recipient,
		TemplateName: req.TemplateName,
		Body:         req.Body,
		Status:       models.MessageStatusQueued,
	}
	if err := h.messageRepo.Create(ctx, message); err != nil {
		log.Printf("message create failed: %v", err)
		return common.SendServerError(c, "Failed to create message")
	}

	created, err := h.messageRepo.GetByID(ctx, message.ID)
	if err != nil {
		log.Printf("message reload failed: %v", err)
		return common.SendServerError(c, "Failed to load message")
	}

	return c.JSON(http.StatusCreated, created)
}

// UpdateMessageStatus handles PATCH /messages/:id/status
func (h *MessageHandlers) UpdateMessageStatus(c echo.Context) error {
	ctx := c.Request().Context()

	workflow, ok := resolveWorkflow(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req UpdateMessageStatusRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if !validMessageStatus(req.Status) {
		return common.SendValidationError(c, "status", "status must be queued, sent or failed")
	}

	message, err := h.messageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Message")
		}
		log.Printf("message lookup failed: %v", err)
		return common.SendServerError(c, "Failed to load message")
	}
	if message.WorkflowName != workflow {
		return common.SendNotFoundError(c, "Message")
	}

	var sentAt *time.Time
	if req.Status == models.MessageStatusSent {
		now := time.Now().UTC()
		sentAt = &now
	}
	if err := h.messageRepo.UpdateStatus(ctx, id, req.Status, sentAt); err != nil {
		log.Printf("message status update failed: %v", err)
		return common.SendServerError(c, "Failed to update message")
	}

	updated, err := h.messageRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("message reload failed: %v", err)
		return common.SendServerError(c, "Failed to load message")
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteMessage handles DELETE /messages/:id
func (h *MessageHandlers) DeleteMessage(c echo.Context) error {
	ctx := c.Request().Context()

	workflow, ok := resolveWorkflow(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	message, err := h.messageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Message")
		}
		log.Printf("message lookup failed: %v", err)
		return common.SendServerError(c, "Failed to load message")
	}
	if message.WorkflowName != workflow {
		return common.SendNotFoundError(c, "Message")
	}

	if err := h.messageRepo.Delete(ctx, id); err != nil {
		log.Printf("message delete failed: %v", err)
		return common.SendServerError(c, "Failed to delete message")
	}

	return c.NoContent(http.StatusNoContent)
}
