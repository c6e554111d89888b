package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mfk4us/bocc-client-panel/internal/filtering"
	"github.com/mfk4us/bocc-client-panel/internal/models"
)

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProfileRepository) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProfileRepository) UpdateStatusMany(ctx context.Context, ids []uuid.UUID, status string) (int64, error) {
	args := m.Called(ctx, ids, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProfileRepository) ListAll(ctx context.Context) ([]models.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Profile), args.Error(1)
}

type ProfileServiceTestSuite struct {
	suite.Suite
	mockRepo *MockProfileRepository
	service  ProfileService
}

func (suite *ProfileServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockProfileRepository{}
	suite.service = NewProfileService(suite.mockRepo)
	suite.mockRepo.Test(suite.T())
}

func (suite *ProfileServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestProfileServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileServiceTestSuite))
}

func adminViewer() Viewer {
	return Viewer{ProfileID: uuid.New(), Role: models.RoleAdmin}
}

func (suite *ProfileServiceTestSuite) TestCreate_RequiresWorkflow() {
	ctx := context.Background()

	_, err := suite.service.Create(ctx, &CreateProfileRequest{WorkflowName: "   "})

	suite.ErrorIs(err, ErrWorkflowRequired)
	suite.mockRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *ProfileServiceTestSuite) TestCreate_Defaults() {
	ctx := context.Background()

	var createdID uuid.UUID
	suite.mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Profile")).Return(nil).Run(func(args mock.Arguments) {
		profile := args.Get(1).(*models.Profile)
		createdID = profile.ID
		suite.Equal(models.RoleTenant, profile.Role)
		suite.Equal(models.StatusActive, profile.Status)
		suite.Equal("wf_salon", profile.WorkflowName)
		suite.NotEmpty(profile.Email)
	})
	suite.mockRepo.On("GetByID", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil, errors.New("not yet visible"))

	profile, err := suite.service.Create(ctx, &CreateProfileRequest{WorkflowName: " wf_salon "})

	suite.NoError(err)
	suite.Equal(createdID, profile.ID)
}

func (suite *ProfileServiceTestSuite) TestCreate_KeepsProvidedFields() {
	ctx := context.Background()

	suite.mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Profile")).Return(nil).Run(func(args mock.Arguments) {
		profile := args.Get(1).(*models.Profile)
		suite.Equal("owner@salon.example", profile.Email)
		suite.Equal(models.RoleAdmin, profile.Role)
		suite.Equal(models.StatusInactive, profile.Status)
	})
	suite.mockRepo.On("GetByID", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil, errors.New("skip reload"))

	_, err := suite.service.Create(ctx, &CreateProfileRequest{
		Email:        "owner@salon.example",
		Role:         models.RoleAdmin,
		WorkflowName: "wf_salon",
		Status:       models.StatusInactive,
	})

	suite.NoError(err)
}

func (suite *ProfileServiceTestSuite) TestUpdate_MergesOverExisting() {
	ctx := context.Background()
	id := uuid.New()
	existing := &models.Profile{
		ID:           id,
		Email:        "a@x.com",
		Role:         models.RoleTenant,
		WorkflowName: "wf_old",
		BusinessName: "Old Salon",
		Status:       models.StatusActive,
	}

	newBusiness := "New Salon"
	suite.mockRepo.On("GetByID", ctx, id).Return(existing, nil).Twice()
	suite.mockRepo.On("Update", ctx, mock.AnythingOfType("*models.Profile")).Return(nil).Run(func(args mock.Arguments) {
		profile := args.Get(1).(*models.Profile)
		suite.Equal("New Salon", profile.BusinessName)
		suite.Equal("wf_old", profile.WorkflowName)
		suite.Equal(models.StatusActive, profile.Status)
	})

	updated, err := suite.service.Update(ctx, &UpdateProfileRequest{ID: id, BusinessName: &newBusiness})

	suite.NoError(err)
	suite.Equal(id, updated.ID)
}

func (suite *ProfileServiceTestSuite) TestUpdate_RejectsBlankWorkflow() {
	ctx := context.Background()
	id := uuid.New()
	blank := "  "

	suite.mockRepo.On("GetByID", ctx, id).Return(&models.Profile{ID: id, WorkflowName: "wf_old"}, nil)

	_, err := suite.service.Update(ctx, &UpdateProfileRequest{ID: id, WorkflowName: &blank})

	suite.ErrorIs(err, ErrWorkflowRequired)
	suite.mockRepo.AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything)
}

func (suite *ProfileServiceTestSuite) TestList_TenantSeesOnlyOwnProfile() {
	ctx := context.Background()
	profileID := uuid.New()
	own := &models.Profile{ID: profileID, Email: "me@x.com", Role: models.RoleTenant, WorkflowName: "wf_mine"}

	suite.mockRepo.On("GetByID", ctx, profileID).Return(own, nil)

	result, err := suite.service.List(ctx, Viewer{ProfileID: profileID, Role: models.RoleTenant},
		"", filtering.ColumnFilters{}, 1, 10)

	suite.NoError(err)
	suite.Equal(1, result.Total)
	suite.Equal(profileID, result.Profiles[0].ID)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListAll", mock.Anything)
}

func (suite *ProfileServiceTestSuite) TestList_AdminFilteredAndPaged() {
	ctx := context.Background()
	all := []models.Profile{
		{ID: uuid.New(), Email: "a@x.com", Status: models.StatusActive},
		{ID: uuid.New(), Email: "b@x.com", Status: models.StatusInactive},
		{ID: uuid.New(), Email: "c@y.com", Status: models.StatusActive},
	}

	suite.mockRepo.On("ListAll", ctx).Return(all, nil)

	result, err := suite.service.List(ctx, adminViewer(), "@x", filtering.ColumnFilters{}, 1, 7)

	suite.NoError(err)
	suite.Equal(2, result.Total)
	suite.Equal(filtering.DefaultPageSize, result.PageSize)
	suite.Equal("a@x.com", result.Profiles[0].Email)
	suite.Equal("b@x.com", result.Profiles[1].Email)
}

func (suite *ProfileServiceTestSuite) TestList_PropagatesLoadError() {
	ctx := context.Background()

	suite.mockRepo.On("ListAll", ctx).Return(nil, errors.New("connection refused"))

	_, err := suite.service.List(ctx, adminViewer(), "", filtering.ColumnFilters{}, 1, 10)

	suite.Error(err)
}

func (suite *ProfileServiceTestSuite) TestBulkActivate_EmptySelectionIsNoOp() {
	ctx := context.Background()

	count, err := suite.service.BulkActivate(ctx, nil)

	suite.NoError(err)
	suite.Zero(count)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateStatusMany", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProfileServiceTestSuite) TestBulkDelete_EmptySelectionIsNoOp() {
	ctx := context.Background()

	count, err := suite.service.BulkDelete(ctx, []uuid.UUID{})

	suite.NoError(err)
	suite.Zero(count)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteMany", mock.Anything, mock.Anything)
}

func (suite *ProfileServiceTestSuite) TestBulkActivate_PassesSelection() {
	ctx := context.Background()
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	suite.mockRepo.On("UpdateStatusMany", ctx, ids, models.StatusActive).Return(int64(2), nil)

	count, err := suite.service.BulkActivate(ctx, ids)

	suite.NoError(err)
	suite.Equal(int64(2), count)
}

func (suite *ProfileServiceTestSuite) TestExportRows_IntersectsSelectionWithFilteredView() {
	ctx := context.Background()
	inView := models.Profile{ID: uuid.New(), Email: "a@x.com", Status: models.StatusActive}
	filteredOut := models.Profile{ID: uuid.New(), Email: "b@y.com", Status: models.StatusActive}

	suite.mockRepo.On("ListAll", ctx).Return([]models.Profile{inView, filteredOut}, nil)

	rows, err := suite.service.ExportRows(ctx, adminViewer(), "@x", filtering.ColumnFilters{},
		[]uuid.UUID{inView.ID, filteredOut.ID})

	suite.NoError(err)
	suite.Len(rows, 1)
	suite.Equal(inView.ID, rows[0].ID)
}

func (suite *ProfileServiceTestSuite) TestExportRows_DisjointSelectionYieldsNothing() {
	ctx := context.Background()

	suite.mockRepo.On("ListAll", ctx).Return([]models.Profile{
		{ID: uuid.New(), Email: "a@x.com"},
	}, nil)

	rows, err := suite.service.ExportRows(ctx, adminViewer(), "", filtering.ColumnFilters{},
		[]uuid.UUID{uuid.New()})

	suite.NoError(err)
	suite.Empty(rows)
}
