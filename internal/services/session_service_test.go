package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSessionGet_MissingKeyYieldsDefaults(t *testing.T) {
	profileID := uuid.New()
	cache := &MockCacheService{}
	cache.Test(t)
	cache.On("GetString", mock.Anything, "session:"+profileID.String()).Return("", nil)

	svc := NewSessionService(cache)

	session, err := svc.Get(context.Background(), profileID)
	require.NoError(t, err)
	assert.Equal(t, "light", session.Theme)
	assert.Equal(t, "en", session.Language)
	assert.Empty(t, session.LastRoute)
}

func TestSessionSave_RoundTrips(t *testing.T) {
	profileID := uuid.New()
	stored := ""
	cache := &MockCacheService{}
	cache.Test(t)
	cache.On("SetString", mock.Anything, "session:"+profileID.String(), mock.AnythingOfType("string"), 30*24*time.Hour).
		Return(nil).Run(func(args mock.Arguments) {
		stored = args.String(2)
	})

	svc := NewSessionService(cache)

	err := svc.Save(context.Background(), profileID, &Session{
		Role:         "tenant",
		WorkflowName: "wf_salon",
		LastRoute:    "/bookings",
		Theme:        "dark",
		Language:     "ar",
	})
	require.NoError(t, err)

	var saved Session
	require.NoError(t, json.Unmarshal([]byte(stored), &saved))
	assert.Equal(t, "/bookings", saved.LastRoute)
	assert.Equal(t, "dark", saved.Theme)
}

func TestTakeLastRoute_ReturnsOnceThenClears(t *testing.T) {
	profileID := uuid.New()
	key := "session:" + profileID.String()
	initial, _ := json.Marshal(&Session{LastRoute: "/customers", Theme: "light", Language: "en"})

	cache := &MockCacheService{}
	cache.Test(t)
	cache.On("GetString", mock.Anything, key).Return(string(initial), nil)
	cache.On("SetString", mock.Anything, key, mock.AnythingOfType("string"), mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		var saved Session
		require.NoError(t, json.Unmarshal([]byte(args.String(2)), &saved))
		assert.Empty(t, saved.LastRoute)
	})

	svc := NewSessionService(cache)

	route, err := svc.TakeLastRoute(context.Background(), profileID)
	require.NoError(t, err)
	assert.Equal(t, "/customers", route)
	cache.AssertExpectations(t)
}

func TestTakeLastRoute_EmptyRouteDoesNotRewrite(t *testing.T) {
	profileID := uuid.New()
	cache := &MockCacheService{}
	cache.Test(t)
	cache.On("GetString", mock.Anything, "session:"+profileID.String()).Return("", nil)

	svc := NewSessionService(cache)

	route, err := svc.TakeLastRoute(context.Background(), profileID)
	require.NoError(t, err)
	assert.Empty(t, route)
	cache.AssertNotCalled(t, "SetString", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionClear_DeletesKey(t *testing.T) {
	profileID := uuid.New()
	cache := &MockCacheService{}
	cache.Test(t)
	cache.On("Delete", mock.Anything, "session:"+profileID.String()).Return(nil)

	svc := NewSessionService(cache)

	require.NoError(t, svc.Clear(context.Background(), profileID))
	cache.AssertExpectations(t)
}
