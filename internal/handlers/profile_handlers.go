package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mfk4us/bocc-client-panel/internal/common"
	"github.com/mfk4us/bocc-client-panel/internal/filtering"
	"github.com/mfk4us/bocc-client-panel/internal/services"
)

// ProfileHandlers handles tenant-profile HTTP requests
type ProfileHandlers struct {
	profileService services.ProfileService
	exportService  services.ExportService
}

// NewProfileHandlers creates a new profile handlers instance
func NewProfileHandlers(profileService services.ProfileService, exportService services.ExportService) *ProfileHandlers {
	return &ProfileHandlers{
		profileService: profileService,
		exportService:  exportService,
	}
}

func viewerFromContext(c echo.Context) (services.Viewer, bool) {
	ctx := c.Request().Context()
	profileID, ok := common.GetProfileIDFromContext(ctx)
	if !ok {
		return services.Viewer{}, false
	}
	role, _ := common.GetRoleFromContext(ctx)
	return services.Viewer{ProfileID: profileID, Role: role}, true
}

// ListProfilesRequest represents query parameters for the tenant list view.
// Filters ride alongside the free-text query; page defaults to 1 so that a
// filter change without an explicit page lands back on the first page.
type ListProfilesRequest struct {
	Query    string `query:"q"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
	filtering.ColumnFilters
}

// ListProfiles handles GET /profiles
func (h *ProfileHandlers) ListProfiles(c echo.Context) error {
	viewer, ok := viewerFromContext(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req ListProfilesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	result, err := h.profileService.List(c.Request().Context(), viewer, req.Query, req.ColumnFilters, req.Page, req.PageSize)
	if err != nil {
		log.Printf("profile list load failed: %v", err)
		return common.SendServerError(c, "Failed to load tenant list")
	}

	return c.JSON(http.StatusOK, result)
}

// CreateProfile handles POST /profiles (admin only)
func (h *ProfileHandlers) CreateProfile(c echo.Context) error {
	var req services.CreateProfileRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	profile, err := h.profileService.Create(c.Request().Context(), &req)
	if err != nil {
		if err == services.ErrWorkflowRequired {
			return common.SendValidationError(c, "workflow_name", err.Error())
		}
		log.Printf("profile create failed: %v", err)
		return common.SendServerError(c, "Failed to create tenant")
	}

	return c.JSON(http.StatusCreated, profile)
}

// UpdateProfileRequest represents the partial-update payload
type UpdateProfileRequest struct {
	Role         *string `json:"role"`
	WorkflowName *string `json:"workflow_name"`
	PhoneNumber  *string `json:"phone_number"`
	BusinessName *string `json:"business_name"`
	CustomerName *string `json:"customer_name"`
	Status       *string `json:"status"`
}

// UpdateProfile handles PUT /profiles/:id (admin only)
func (h *ProfileHandlers) UpdateProfile(c echo.Context) error {
	profileID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	updated, err := h.profileService.Update(c.Request().Context(), &services.UpdateProfileRequest{
		ID:           profileID,
		Role:         req.Role,
		WorkflowName: req.WorkflowName,
		PhoneNumber:  req.PhoneNumber,
		BusinessName: req.BusinessName,
		CustomerName: req.CustomerName,
		Status:       req.Status,
	})
	if err != nil {
		if err == services.ErrWorkflowRequired {
			return common.SendValidationError(c, "workflow_name", err.Error())
		}
		log.Printf("profile update failed for %s: %v", profileID, err)
		return common.SendServerError(c, "Failed to update tenant")
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteProfile handles DELETE /profiles/:id (admin only)
func (h *ProfileHandlers) DeleteProfile(c echo.Context) error {
	profileID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.profileService.Delete(c.Request().Context(), profileID); err != nil {
		log.Printf("profile delete failed for %s: %v", profileID, err)
		return common.SendServerError(c, "Failed to delete tenant")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Tenant deleted successfully",
	})
}

// BulkSelectionRequest carries the identifier set for a batched operation
type BulkSelectionRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

// BulkActivate handles POST /profiles/bulk/activate (admin only)
func (h *ProfileHandlers) BulkActivate(c echo.Context) error {
	var req BulkSelectionRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if len(req.IDs) == 0 {
		return common.SendClientError(c, "Selection is empty")
	}

	affected, err := h.profileService.BulkActivate(c.Request().Context(), req.IDs)
	if err != nil {
		log.Printf("bulk activate of %d profiles failed: %v", len(req.IDs), err)
		return common.SendServerError(c, "Failed to activate selected tenants")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  fmt.Sprintf("Activated %d tenants", affected),
		"affected": affected,
	})
}

// BulkDelete handles POST /profiles/bulk/delete (admin only)
func (h *ProfileHandlers) BulkDelete(c echo.Context) error {
	var req BulkSelectionRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if len(req.IDs) == 0 {
		return common.SendClientError(c, "Selection is empty")
	}

	affected, err := h.profileService.BulkDelete(c.Request().Context(), req.IDs)
	if err != nil {
		log.Printf("bulk delete of %d profiles failed: %v", len(req.IDs), err)
		return common.SendServerError(c, "Failed to delete selected tenants")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  fmt.Sprintf("Deleted %d tenants", affected),
		"affected": affected,
	})
}

// ExportProfilesRequest carries the selection plus the filter state of the
// view it was made in, so the export subset can be re-derived server side.
type ExportProfilesRequest struct {
	IDs   []uuid.UUID `json:"ids"`
	Query string      `json:"q"`
	filtering.ColumnFilters
}

// ExportProfiles handles POST /profiles/export?format=csv|xlsx|pdf
func (h *ProfileHandlers) ExportProfiles(c echo.Context) error {
	viewer, ok := viewerFromContext(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	format := c.QueryParam("format")
	if format == "" {
		format = services.ExportFormatCSV
	}

	var req ExportProfilesRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	rows, err := h.profileService.ExportRows(c.Request().Context(), viewer, req.Query, req.ColumnFilters, req.IDs)
	if err != nil {
		log.Printf("export row derivation failed: %v", err)
		return common.SendServerError(c, "Failed to derive export rows")
	}
	if len(rows) == 0 {
		return c.NoContent(http.StatusNoContent)
	}

	file, err := h.exportService.Encode(format, rows)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if archiveURL := h.exportService.Archive(c.Request().Context(), file); archiveURL != "" {
		c.Response().Header().Set("X-Archive-Url", archiveURL)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	return c.Blob(http.StatusOK, file.ContentType, file.Data)
}
