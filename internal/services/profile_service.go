package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mfk4us/bocc-client-panel/internal/filtering"
	"github.com/mfk4us/bocc-client-panel/internal/models"
	"github.com/mfk4us/bocc-client-panel/internal/repositories"
)

// ErrWorkflowRequired is returned before any store call when a create request
// carries a blank workflow name.
var ErrWorkflowRequired = errors.New("workflow_name is required")

// Viewer identifies the caller for list scoping: admins see every profile,
// tenants see exactly their own.
type Viewer struct {
	ProfileID uuid.UUID
	Role      string
}

type ListProfilesResult struct {
	Profiles []models.Profile `json:"profiles"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

type CreateProfileRequest struct {
	Email        string `json:"email"`
	Role         string `json:"role"`
	WorkflowName string `json:"workflow_name"`
	PhoneNumber  string `json:"phone_number"`
	BusinessName string `json:"business_name"`
	CustomerName string `json:"customer_name"`
	Status       string `json:"status"`
}

type UpdateProfileRequest struct {
	ID           uuid.UUID
	Role         *string `json:"role"`
	WorkflowName *string `json:"workflow_name"`
	PhoneNumber  *string `json:"phone_number"`
	BusinessName *string `json:"business_name"`
	CustomerName *string `json:"customer_name"`
	Status       *string `json:"status"`
}

type ProfileService interface {
	List(ctx context.Context, viewer Viewer, query string, filters filtering.ColumnFilters, page, pageSize int) (*ListProfilesResult, error)
	Create(ctx context.Context, req *CreateProfileRequest) (*models.Profile, error)
	Update(ctx context.Context, req *UpdateProfileRequest) (*models.Profile, error)
	Delete(ctx context.Context, id uuid.UUID) error
	BulkActivate(ctx context.Context, ids []uuid.UUID) (int64, error)
	BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error)
	ExportRows(ctx context.Context, viewer Viewer, query string, filters filtering.ColumnFilters, ids []uuid.UUID) ([]models.Profile, error)
}

type profileService struct {
	profileRepo repositories.ProfileRepository
}

func NewProfileService(profileRepo repositories.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

// visibleProfiles fetches the authoritative list for the viewer in one read.
// Filtering and pagination happen in memory on top of this snapshot.
func (s *profileService) visibleProfiles(ctx context.Context, viewer Viewer) ([]models.Profile, error) {
	if viewer.Role == models.RoleAdmin {
		return s.profileRepo.ListAll(ctx)
	}

	own, err := s.profileRepo.GetByID(ctx, viewer.ProfileID)
	if err != nil {
		return nil, err
	}
	return []models.Profile{*own}, nil
}

func (s *profileService) List(ctx context.Context, viewer Viewer, query string, filters filtering.ColumnFilters, page, pageSize int) (*ListProfilesResult, error) {
	profiles, err := s.visibleProfiles(ctx, viewer)
	if err != nil {
		return nil, err
	}

	filtered := filtering.Apply(profiles, query, filters)
	if page < 1 {
		page = 1
	}
	pageSize = filtering.NormalizePageSize(pageSize)

	return &ListProfilesResult{
		Profiles: filtering.Page(filtered, page, pageSize),
		Total:    len(filtered),
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *profileService) Create(ctx context.Context, req *CreateProfileRequest) (*models.Profile, error) {
	if strings.TrimSpace(req.WorkflowName) == "" {
		return nil, ErrWorkflowRequired
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		// Placeholder identity for tenants provisioned before their login exists
		email = fmt.Sprintf("tenant-%s@clientpanel.local", uuid.NewString()[:8])
	}

	role := req.Role
	if role == "" {
		role = models.RoleTenant
	}
	status := req.Status
	if status == "" {
		status = models.StatusActive
	}

	profile := &models.Profile{
		ID:           uuid.New(),
		Email:        email,
		Role:         role,
		WorkflowName: strings.TrimSpace(req.WorkflowName),
		PhoneNumber:  req.PhoneNumber,
		BusinessName: req.BusinessName,
		CustomerName: req.CustomerName,
		Status:       status,
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	// Read back so callers see store-assigned timestamps
	created, err := s.profileRepo.GetByID(ctx, profile.ID)
	if err != nil {
		return profile, nil
	}
	return created, nil
}

func (s *profileService) Update(ctx context.Context, req *UpdateProfileRequest) (*models.Profile, error) {
	existing, err := s.profileRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		existing.Role = *req.Role
	}
	if req.WorkflowName != nil {
		if strings.TrimSpace(*req.WorkflowName) == "" {
			return nil, ErrWorkflowRequired
		}
		existing.WorkflowName = strings.TrimSpace(*req.WorkflowName)
	}
	if req.PhoneNumber != nil {
		existing.PhoneNumber = *req.PhoneNumber
	}
	if req.BusinessName != nil {
		existing.BusinessName = *req.BusinessName
	}
	if req.CustomerName != nil {
		existing.CustomerName = *req.CustomerName
	}
	if req.Status != nil {
		existing.Status = *req.Status
	}

	if err := s.profileRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return s.profileRepo.GetByID(ctx, req.ID)
}

func (s *profileService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.profileRepo.Delete(ctx, id)
}

// BulkActivate sets every selected profile active in one batched statement.
// An empty selection never reaches the store.
func (s *profileService) BulkActivate(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return s.profileRepo.UpdateStatusMany(ctx, ids, models.StatusActive)
}

func (s *profileService) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return s.profileRepo.DeleteMany(ctx, ids)
}

// ExportRows re-derives the filtered view and intersects it with the
// selection. A selection disjoint from the view yields zero rows.
func (s *profileService) ExportRows(ctx context.Context, viewer Viewer, query string, filters filtering.ColumnFilters, ids []uuid.UUID) ([]models.Profile, error) {
	profiles, err := s.visibleProfiles(ctx, viewer)
	if err != nil {
		return nil, err
	}

	filtered := filtering.Apply(profiles, query, filters)

	selection := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		selection[id] = struct{}{}
	}
	return filtering.Selected(filtered, selection), nil
}
