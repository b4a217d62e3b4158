// randomuser.me implementation of [UserSource]
//
// Response format documented at https://randomuser.me/documentation
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/desertthunder/randusr/internal/shared"
	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public random user API.
	DefaultBaseURL = "https://randomuser.me"

	usersPath    = "/api"
	resultsParam = "results"
)

// RandomUserService implements [UserSource] against the randomuser.me API.
//
// Requests are throttled by a token bucket so repeated refreshes never burst the public API.
type RandomUserService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	validate   *validator.Validate
}

// NewRandomUserService creates a client for baseURL. A non-positive limit disables throttling.
func NewRandomUserService(baseURL string, client *http.Client, limit rate.Limit) *RandomUserService {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	if limit <= 0 {
		limit = rate.Inf
	}

	return &RandomUserService{
		baseURL:    baseURL,
		httpClient: client,
		limiter:    rate.NewLimiter(limit, 1),
		validate:   validator.New(),
	}
}

// Name implements [UserSource].
func (s *RandomUserService) Name() string { return "randomuser.me" }

// GetUsers requests size generated profiles via GET /api?results={size}.
//
// Records missing a name, email or birth date fail the whole batch with [shared.ErrInvalidResponse].
func (s *RandomUserService) GetUsers(ctx context.Context, size int) (*UsersResponse, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	endpoint, err := url.Parse(s.baseURL + usersPath)
	if err != nil {
		return nil, fmt.Errorf("failed to build request URL: %w", err)
	}
	query := endpoint.Query()
	query.Set(resultsParam, strconv.Itoa(size))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(body))
	}

	var users UsersResponse
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("%w: failed to decode users: %v", shared.ErrInvalidResponse, err)
	}

	if err := s.validate.Struct(&users); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidResponse, err)
	}

	return &users, nil
}
