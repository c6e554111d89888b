package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/mfk4us/bocc-client-panel/internal/common"
	"github.com/mfk4us/bocc-client-panel/internal/models"
	"github.com/mfk4us/bocc-client-panel/internal/repositories"
)

type TeamHandlers struct {
	teamRepo repositories.TeamMemberRepository
}

func NewTeamHandlers(teamRepo repositories.TeamMemberRepository) *TeamHandlers {
	return &TeamHandlers{teamRepo: teamRepo}
}

type CreateTeamMemberRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type UpdateTeamMemberRequest struct {
	Email  *string `json:"email"`
	Name   *string `json:"name"`
	Role   *string `json:"role"`
	Status *string `json:"status"`
}

// ListTeamMembers handles GET /team-members
func (h *TeamHandlers) ListTeamMembers(c echo.Context) error {
	ctx := c.Request().Context()

	workflow, ok := resolveWorkflow(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	limit, offset := parseListRange(c)

	members, err := h.teamRepo.List(ctx, workflow, limit, offset)
	if err != nil {
		log.Printf("team member list failed for workflow %s: %v", workflow, err)
		return common.SendServerError(c, "Failed to list team members")
	}
	if members == nil {
		members = []*models.TeamMember{}
	}

	return c.JSON(http.StatusOK, map[string]any{"team_members": members})
}

// CreateTeamMember handles POST /team-members
func (h *TeamHandlers) CreateTeamMember(c echo.Context) error {
	ctx := c.Request().Context()

	workflow, ok := resolveWorkflow(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req CreateTeamMemberRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if strings.TrimSpace(req.Email) == "" {
		return common.SendValidationError(c, "email", "email is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return common.SendValidationError(c, "name", "name is required")
	}
	role := req.Role
	if role == "" {
		role = "member"
	}

	member := &models.TeamMember{
		ID:           uuid.New(),
		WorkflowName: workflow,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         req.Name,
		Role:         role,
		Status:       models.StatusActive,
	}
	if err := h.teamRepo.Create(ctx, member); err != nil {
		log.Printf("team member create failed: %v", err)
		return common.SendServerError(c, "Failed to create team member")
	}

	created, err := h.teamRepo.GetByID(ctx, member.ID)
	if err != nil {
		log.Printf("team member reload failed: %v", err)
		return common.SendServerError(c, "Failed to load team member")
	}

	return c.JSON(http.StatusCreated, created)
}

// UpdateTeamMember handles PUT /team-members/:id
func (h *TeamHandlers) UpdateTeamMember(c echo.Context) error {
	ctx := c.Request().Context()

	workflow, ok := resolveWorkflow(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req UpdateTeamMemberRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	member, err := h.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Team member")
		}
		log.Printf("team member lookup failed: %v", err)
		return common.SendServerError(c, "Failed to load team member")
	}
	if member.WorkflowName != workflow {
		return common.SendNotFoundError(c, "Team member")
	}

	if req.Email != nil {
		member.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Role != nil {
		member.Role = *req.Role
	}
	if req.Status != nil {
		member.Status = *req.Status
	}

	if err := h.teamRepo.Update(ctx, member); err != nil {
		log.Printf("team member update failed: %v", err)
		return common.SendServerError(c, "Failed to update team member")
	}

	updated, err := h.teamRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("team member reload failed: %v", err)
		return common.SendServerError(c, "Failed to load team member")
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteTeamMember handles DELETE /team-members/:id
func (h *TeamHandlers) DeleteTeamMember(c echo.Context) error {
	ctx := c.Request().Context()

	workflow, ok := resolveWorkflow(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	member, err := h.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Team member")
		}
		log.Printf("team member lookup failed: %v", err)
		return common.SendServerError(c, "Failed to load team member")
	}
	if member.WorkflowName != workflow {
		return common.SendNotFoundError(c, "Team member")
	}

	if err := h.teamRepo.Delete(ctx, id); err != nil {
		log.Printf("team member delete failed: %v", err)
		return common.SendServerError(c, "Failed to delete team member")
	}

	return c.NoContent(http.StatusNoContent)
}
