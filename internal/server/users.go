package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/desertthunder/randusr/internal/models"
	"github.com/desertthunder/randusr/internal/shared"
)

// UserLoader is the subset of [tasks.UserEngine] the API depends on.
type UserLoader interface {
	LoadUsersBySize(ctx context.Context, size int) ([]models.User, error)
	LoadCachedUsers(ctx context.Context) ([]models.User, error)
	LoadUserDetail(ctx context.Context, id string) (*models.UserDetail, error)
}

const (
	routeUsers    = "GET /users"
	routeCached   = "GET /users/cached"
	routeUserByID = "GET /users/{id}"
)

// UsersHandler serves the read-only users API.
type UsersHandler struct {
	loader UserLoader
}

// NewUsersHandler creates a [UsersHandler] over loader.
func NewUsersHandler(loader UserLoader) *UsersHandler {
	return &UsersHandler{loader: loader}
}

// Routes implements [Handler].
func (h *UsersHandler) Routes() []string {
	return []string{routeUsers, routeCached, routeUserByID}
}

type usersResponse struct {
	Count int           `json:"count"`
	Users []models.User `json:"users"`
}

func newUsersResponse(users []models.User) usersResponse {
	if users == nil {
		users = []models.User{}
	}
	return usersResponse{Count: len(users), Users: users}
}

type errorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP dispatches on the matched route pattern.
func (h *UsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Pattern {
	case routeUsers:
		h.loadUsers(w, r)
	case routeCached:
		h.cachedUsers(w, r)
	case routeUserByID:
		h.userDetail(w, r)
	default:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	}
}

// Health answers liveness probes with {"status":"ok"}.
func Health() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

func (h *UsersHandler) loadUsers(w http.ResponseWriter, r *http.Request) {
	size, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("size")))
	if err != nil {
		writeError(w, shared.ErrInvalidSize)
		return
	}

	users, err := h.loader.LoadUsersBySize(r.Context(), size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newUsersResponse(users))
}

func (h *UsersHandler) cachedUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.loader.LoadCachedUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newUsersResponse(users))
}

func (h *UsersHandler) userDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.loader.LoadUserDetail(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// StatusFor maps domain errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrInvalidSize), errors.Is(err, shared.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrUserNotFound), errors.Is(err, shared.ErrAddressNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrAPIRequest),
		errors.Is(err, shared.ErrEmptyResults),
		errors.Is(err, shared.ErrInvalidResponse),
		errors.Is(err, shared.ErrServiceUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, shared.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, StatusFor(err), errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
