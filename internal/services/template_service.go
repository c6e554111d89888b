package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/mfk4us/bocc-client-panel/internal/caching"
	"github.com/mfk4us/bocc-client-panel/internal/config"
	"github.com/mfk4us/bocc-client-panel/internal/models"
)

// TemplateService proxies the messaging provider's template-listing API using
// server-held credentials. Responses are normalized and cached.
type TemplateService interface {
	ListTemplates(ctx context.Context) ([]models.Template, error)
	Refresh(ctx context.Context) ([]models.Template, error)
	// Invalidate drops the cached catalogue so the next list re-fetches.
	Invalidate(ctx context.Context) error
}

type templateService struct {
	httpClient *http.Client
	provider   config.MessagingProvider
	cache      caching.CacheService
	ttl        time.Duration
}

func NewTemplateService(provider config.MessagingProvider, cache caching.CacheService, ttl time.Duration) TemplateService {
	return &templateService{
		httpClient: &http.Client{Timeout: time.Duration(provider.TimeoutSeconds) * time.Second},
		provider:   provider,
		cache:      cache,
		ttl:        ttl,
	}
}

// providerTemplateList mirrors the provider's response envelope.
type providerTemplateList struct {
	Data []struct {
		Name       string                     `json:"name"`
		Language   string                     `json:"language"`
		Status     string                     `json:"status"`
		Components []models.TemplateComponent `json:"components"`
	} `json:"data"`
}

func (s *templateService) ListTemplates(ctx context.Context) ([]models.Template, error) {
	cached, err := s.cache.GetTemplates(ctx)
	if err != nil {
		// Cache trouble is not a reason to fail the request
		log.Printf("template cache read failed: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	templates, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetTemplates(ctx, templates, s.ttl); err != nil {
		log.Printf("template cache write failed: %v", err)
	}
	return templates, nil
}

// Refresh re-fetches from the provider and overwrites the cache.
func (s *templateService) Refresh(ctx context.Context) ([]models.Template, error) {
	templates, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetTemplates(ctx, templates, s.ttl); err != nil {
		return nil, err
	}
	return templates, nil
}

func (s *templateService) Invalidate(ctx context.Context) error {
	return s.cache.DeleteTemplates(ctx)
}

func (s *templateService) fetch(ctx context.Context) ([]models.Template, error) {
	url := fmt.Sprintf("%s/%s/message_templates?fields=name,language,status,components",
		s.provider.BaseURL, s.provider.BusinessAccountID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.provider.APIToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var payload providerTemplateList
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("provider response decode failed: %w", err)
	}

	templates := make([]models.Template, 0, len(payload.Data))
	for _, t := range payload.Data {
		templates = append(templates, models.Template{
			Name:       t.Name,
			Language:   t.Language,
			Components: t.Components,
		})
	}
	return templates, nil
}
