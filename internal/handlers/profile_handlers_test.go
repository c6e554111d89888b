package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mfk4us/bocc-client-panel/internal/common"
	"github.com/mfk4us/bocc-client-panel/internal/filtering"
	"github.com/mfk4us/bocc-client-panel/internal/models"
	"github.com/mfk4us/bocc-client-panel/internal/services"
)

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) List(ctx context.Context, viewer services.Viewer, query string, filters filtering.ColumnFilters, page, pageSize int) (*services.ListProfilesResult, error) {
	args := m.Called(ctx, viewer, query, filters, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ListProfilesResult), args.Error(1)
}

func (m *MockProfileService) Create(ctx context.Context, req *services.CreateProfileRequest) (*models.Profile, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) Update(ctx context.Context, req *services.UpdateProfileRequest) (*models.Profile, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProfileService) BulkActivate(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProfileService) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProfileService) ExportRows(ctx context.Context, viewer services.Viewer, query string, filters filtering.ColumnFilters, ids []uuid.UUID) ([]models.Profile, error) {
	args := m.Called(ctx, viewer, query, filters, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Profile), args.Error(1)
}

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Encode(format string, profiles []models.Profile) (*services.ExportFile, error) {
	args := m.Called(format, profiles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ExportFile), args.Error(1)
}

func (m *MockExportService) Archive(ctx context.Context, file *services.ExportFile) string {
	args := m.Called(ctx, file)
	return args.String(0)
}

// adminContext builds an echo context carrying an authenticated admin identity,
// the way the JWT middleware installs it.
func adminContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	ctx := context.WithValue(req.Context(), common.ProfileIDKey, uuid.New())
	ctx = context.WithValue(ctx, common.RoleKey, models.RoleAdmin)
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestExportProfiles_EmptySubsetReturns204(t *testing.T) {
	profileSvc := &MockProfileService{}
	profileSvc.Test(t)
	exportSvc := &MockExportService{}
	exportSvc.Test(t)
	profileSvc.On("ExportRows", mock.Anything, mock.Anything, "", filtering.ColumnFilters{}, mock.Anything).
		Return([]models.Profile{}, nil)

	h := NewProfileHandlers(profileSvc, exportSvc)
	c, rec := adminContext(t, http.MethodPost, "/profiles/export?format=csv", `{"ids":[]}`)

	require.NoError(t, h.ExportProfiles(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
	exportSvc.AssertNotCalled(t, "Encode", mock.Anything, mock.Anything)
}

func TestExportProfiles_SetsDownloadAndArchiveHeaders(t *testing.T) {
	rows := []models.Profile{{ID: uuid.New(), Email: "a@x.com"}}
	file := &services.ExportFile{Name: "tenants.csv", ContentType: "text/csv", Data: []byte("csv")}

	profileSvc := &MockProfileService{}
	profileSvc.Test(t)
	exportSvc := &MockExportService{}
	exportSvc.Test(t)
	profileSvc.On("ExportRows", mock.Anything, mock.Anything, "", filtering.ColumnFilters{}, mock.Anything).
		Return(rows, nil)
	exportSvc.On("Encode", services.ExportFormatCSV, rows).Return(file, nil)
	exportSvc.On("Archive", mock.Anything, file).Return("https://storage.local/tenants.csv?sig=abc")

	h := NewProfileHandlers(profileSvc, exportSvc)
	c, rec := adminContext(t, http.MethodPost, "/profiles/export", `{"ids":[]}`)

	require.NoError(t, h.ExportProfiles(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), `filename="tenants.csv"`)
	assert.Equal(t, "https://storage.local/tenants.csv?sig=abc", rec.Header().Get("X-Archive-Url"))
	assert.Equal(t, "csv", rec.Body.String())
}

func TestBulkActivate_EmptySelectionReturns400(t *testing.T) {
	profileSvc := &MockProfileService{}
	profileSvc.Test(t)

	h := NewProfileHandlers(profileSvc, &MockExportService{})
	c, rec := adminContext(t, http.MethodPost, "/profiles/bulk/activate", `{"ids":[]}`)

	require.NoError(t, h.BulkActivate(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Selection is empty")
	profileSvc.AssertNotCalled(t, "BulkActivate", mock.Anything, mock.Anything)
}

func TestBulkDelete_EmptySelectionReturns400(t *testing.T) {
	profileSvc := &MockProfileService{}
	profileSvc.Test(t)

	h := NewProfileHandlers(profileSvc, &MockExportService{})
	c, rec := adminContext(t, http.MethodPost, "/profiles/bulk/delete", `{"ids":[]}`)

	require.NoError(t, h.BulkDelete(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Selection is empty")
	profileSvc.AssertNotCalled(t, "BulkDelete", mock.Anything, mock.Anything)
}
