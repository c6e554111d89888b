package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mfk4us/bocc-client-panel/internal/caching"
)

// Session is the explicit cross-view state object: role, workflow scoping key,
// email, last-visited route and UI preferences. A missing key yields the
// documented defaults rather than an error.
type Session struct {
	Role         string `json:"role"`
	WorkflowName string `json:"workflow_name"`
	Email        string `json:"email"`
	LastRoute    string `json:"last_route"`
	Theme        string `json:"theme"`
	Language     string `json:"language"`
}

const (
	defaultTheme    = "light"
	defaultLanguage = "en"

	sessionTTL = 30 * 24 * time.Hour
)

type SessionService interface {
	Get(ctx context.Context, profileID uuid.UUID) (*Session, error)
	Save(ctx context.Context, profileID uuid.UUID, session *Session) error
	Clear(ctx context.Context, profileID uuid.UUID) error
	// TakeLastRoute returns the stored route and clears it, so navigation is
	// restored exactly once on the next load.
	TakeLastRoute(ctx context.Context, profileID uuid.UUID) (string, error)
}

type sessionService struct {
	cache caching.CacheService
}

func NewSessionService(cache caching.CacheService) SessionService {
	return &sessionService{cache: cache}
}

func sessionKey(profileID uuid.UUID) string {
	return fmt.Sprintf("session:%s", profileID.String())
}

func (s *sessionService) Get(ctx context.Context, profileID uuid.UUID) (*Session, error) {
	raw, err := s.cache.GetString(ctx, sessionKey(profileID))
	if err != nil {
		return nil, err
	}

	session := &Session{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), session); err != nil {
			return nil, err
		}
	}
	if session.Theme == "" {
		session.Theme = defaultTheme
	}
	if session.Language == "" {
		session.Language = defaultLanguage
	}
	return session, nil
}

func (s *sessionService) Save(ctx context.Context, profileID uuid.UUID, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.cache.SetString(ctx, sessionKey(profileID), string(data), sessionTTL)
}

func (s *sessionService) Clear(ctx context.Context, profileID uuid.UUID) error {
	return s.cache.Delete(ctx, sessionKey(profileID))
}

func (s *sessionService) TakeLastRoute(ctx context.Context, profileID uuid.UUID) (string, error) {
	session, err := s.Get(ctx, profileID)
	if err != nil {
		return "", err
	}
	route := session.LastRoute
	if route == "" {
		return "", nil
	}

	session.LastRoute = ""
	if err := s.Save(ctx, profileID, session); err != nil {
		return "", err
	}
	return route, nil
}
