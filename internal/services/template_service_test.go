package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mfk4us/bocc-client-panel/internal/config"
	"github.com/mfk4us/bocc-client-panel/internal/models"
)

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetTemplates(ctx context.Context) ([]models.Template, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Template), args.Error(1)
}

func (m *MockCacheService) SetTemplates(ctx context.Context, templates []models.Template, ttl time.Duration) error {
	args := m.Called(ctx, templates, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteTemplates(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

const providerPayload = `{
	"data": [
		{
			"name": "booking_reminder",
			"language": "en",
			"status": "APPROVED",
			"components": [
				{"type": "BODY", "text": "Your appointment is at {{1}}"}
			]
		},
		{
			"name": "welcome",
			"language": "ar",
			"status": "APPROVED",
			"components": []
		}
	]
}`

func newProviderServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/123456/message_templates", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func providerConfig(baseURL string) config.MessagingProvider {
	return config.MessagingProvider{
		BaseURL:           baseURL,
		APIToken:          "secret-token",
		BusinessAccountID: "123456",
		TimeoutSeconds:    5,
	}
}

func TestListTemplates_CacheMissFetchesAndNormalizes(t *testing.T) {
	server := newProviderServer(t, http.StatusOK, providerPayload)
	defer server.Close()

	cache := &MockCacheService{}
	cache.Test(t)
	cache.On("GetTemplates", mock.Anything).Return(nil, nil)
	cache.On("SetTemplates", mock.Anything, mock.AnythingOfType("[]models.Template"), 15*time.Minute).Return(nil)

	svc := NewTemplateService(providerConfig(server.URL), cache, 15*time.Minute)

	templates, err := svc.ListTemplates(context.Background())
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "booking_reminder", templates[0].Name)
	assert.Equal(t, "en", templates[0].Language)
	require.Len(t, templates[0].Components, 1)
	assert.Equal(t, "BODY", templates[0].Components[0].Type)
	cache.AssertExpectations(t)
}

func TestListTemplates_CacheHitSkipsProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("provider must not be called on a cache hit")
	}))
	defer server.Close()

	cached := []models.Template{{Name: "cached", Language: "en"}}
	cache := &MockCacheService{}
	cache.Test(t)
	cache.On("GetTemplates", mock.Anything).Return(cached, nil)

	svc := NewTemplateService(providerConfig(server.URL), cache, 15*time.Minute)

	templates, err := svc.ListTemplates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cached, templates)
	cache.AssertExpectations(t)
}

func TestListTemplates_CacheErrorFallsThroughToProvider(t *testing.T) {
	server := newProviderServer(t, http.StatusOK, providerPayload)
	defer server.Close()

	cache := &MockCacheService{}
	cache.Test(t)
	cache.On("GetTemplates", mock.Anything).Return(nil, assert.AnError)
	cache.On("SetTemplates", mock.Anything, mock.AnythingOfType("[]models.Template"), mock.Anything).Return(nil)

	svc := NewTemplateService(providerConfig(server.URL), cache, 15*time.Minute)

	templates, err := svc.ListTemplates(context.Background())
	require.NoError(t, err)
	assert.Len(t, templates, 2)
}

func TestListTemplates_ProviderFailureSurfaces(t *testing.T) {
	server := newProviderServer(t, http.StatusInternalServerError, `{"error":"boom"}`)
	defer server.Close()

	cache := &MockCacheService{}
	cache.Test(t)
	cache.On("GetTemplates", mock.Anything).Return(nil, nil)

	svc := NewTemplateService(providerConfig(server.URL), cache, 15*time.Minute)

	_, err := svc.ListTemplates(context.Background())
	assert.Error(t, err)
	cache.AssertNotCalled(t, "SetTemplates", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvalidate_DropsCachedCatalogue(t *testing.T) {
	cache := &MockCacheService{}
	cache.Test(t)
	cache.On("DeleteTemplates", mock.Anything).Return(nil)

	svc := NewTemplateService(providerConfig("http://unused"), cache, 15*time.Minute)

	require.NoError(t, svc.Invalidate(context.Background()))
	cache.AssertExpectations(t)
}

func TestRefresh_OverwritesCache(t *testing.T) {
	server := newProviderServer(t, http.StatusOK, providerPayload)
	defer server.Close()

	cache := &MockCacheService{}
	cache.Test(t)
	cache.On("SetTemplates", mock.Anything, mock.AnythingOfType("[]models.Template"), 15*time.Minute).Return(nil)

	svc := NewTemplateService(providerConfig(server.URL), cache, 15*time.Minute)

	templates, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, templates, 2)
	cache.AssertNotCalled(t, "GetTemplates", mock.Anything)
	cache.AssertExpectations(t)
}
