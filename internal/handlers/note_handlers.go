package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/mfk4us/bocc-client-panel/internal/common"
	"github.com/mfk4us/bocc-client-panel/internal/models"
	"github.com/mfk4us/bocc-client-panel/internal/repositories"
)

type NoteHandlers struct {
	noteRepo repositories.NoteRepository
}

func NewNoteHandlers(noteRepo repositories.NoteRepository) *NoteHandlers {
	return &NoteHandlers{noteRepo: noteRepo}
}

type CreateNoteRequest struct {
	CustomerPhone string `json:"customer_phone"`
	Author        string `json:"author"`
	Content       string `json:"content"`
}

type UpdateNoteRequest struct {
	Content *string `json:"content"`
}

// ListNotes handles GET /notes. An optional customer_phone query parameter
// narrows the result to one customer's thread.
func (h *NoteHandlers) ListNotes(c echo.Context) error {
	ctx := c.Request().Context()

	workflow, ok := resolveWorkflow(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var notes []*models.Note
	var err error
	if customerPhone := c.QueryParam("customer_phone"); customerPhone != "" {
		notes, err = h.noteRepo.ListByCustomer(ctx, workflow, customerPhone)
	} else {
		limit, offset := parseListRange(c)
		notes, err = h.noteRepo.List(ctx, workflow, limit, offset)
	}
	if err != nil {
		log.Printf("note list failed for workflow %s: %v", workflow, err)
		return common.SendServerError(c, "Failed to list notes")
	}
	if notes == nil {
		notes = []*models.Note{}
	}

	return c.JSON(http.StatusOK, map[string]any{"notes": notes})
}

// CreateNote handles POST /notes
func (h *NoteHandlers) CreateNote(c echo.Context) error {
	ctx := c.Request().Context()

	workflow, ok := resolveWorkflow(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.CustomerPhone == "" {
		return common.SendValidationError(c, "customer_phone", "customer_phone is required")
	}
	if req.Content == "" {
		return common.SendValidationError(c, "content", "content is required")
	}

	note := &models.Note{
		ID:            uuid.New(),
		WorkflowName:  workflow,
		CustomerPhone: req.CustomerPhone,
		Author:        req.Author,
		Content:       req.Content,
	}
	if err := h.noteRepo.Create(ctx, note); err != nil {
		log.Printf("note create failed: %v", err)
		return common.SendServerError(c, "Failed to create note")
	}

	created, err := h.noteRepo.GetByID(ctx, note.ID)
	if err != nil {
		log.Printf("note reload failed: %v", err)
		return common.SendServerError(c, "Failed to load note")
	}

	return c.JSON(http.StatusCreated, created)
}

// UpdateNote handles PUT /notes/:id
func (h *NoteHandlers) UpdateNote(c echo.Context) error {
	ctx := c.Request().Context()

	workflow, ok := resolveWorkflow(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Content == nil || *req.Content == "" {
		return common.SendValidationError(c, "content", "content is required")
	}

	note, err := h.noteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Note")
		}
		log.Printf("note lookup failed: %v", err)
		return common.SendServerError(c, "Failed to load note")
	}
	if note.WorkflowName != workflow {
		return common.SendNotFoundError(c, "Note")
	}

	note.Content = *req.Content
	if err := h.noteRepo.Update(ctx, note); err != nil {
		log.Printf("note update failed: %v", err)
		return common.SendServerError(c, "Failed to update note")
	}

	updated, err := h.noteRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("note reload failed: %v", err)
		return common.SendServerError(c, "Failed to load note")
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteNote handles DELETE /notes/:id
func (h *NoteHandlers) DeleteNote(c echo.Context) error {
	ctx := c.Request().Context()

	workflow, ok := resolveWorkflow(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	note, err := h.noteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Note")
		}
		log.Printf("note lookup failed: %v", err)
		return common.SendServerError(c, "Failed to load note")
	}
	if note.WorkflowName != workflow {
		return common.SendNotFoundError(c, "Note")
	}

	if err := h.noteRepo.Delete(ctx, id); err != nil {
		log.Printf("note delete failed: %v", err)
		return common.SendServerError(c, "Failed to delete note")
	}

	return c.NoContent(http.StatusNoContent)
}
