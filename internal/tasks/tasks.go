// package tasks implements the user use cases over the remote source and the local cache.
//
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/randusr/internal/models"
	"github.com/desertthunder/randusr/internal/repositories"
	"github.com/desertthunder/randusr/internal/services"
	"github.com/desertthunder/randusr/internal/shared"
)

// UserEngine runs fetch -> map -> upsert -> query against a [services.UserSource] and a [repositories.Store].
type UserEngine struct {
	source services.UserSource
	store  *repositories.Store
}

// NewUserEngine creates a new UserEngine. source may be nil for cache-only commands.
func NewUserEngine(source services.UserSource, store *repositories.Store) *UserEngine {
	return &UserEngine{source: source, store: store}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *UserEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// LoadUsersBySize fetches size users, caches them, and returns the new batch in result order.
func (e *UserEngine) LoadUsersBySize(ctx context.Context, size int) ([]models.User, error) {
	return e.FetchUsers(ctx, size, nil)
}

// FetchUsers is [UserEngine.LoadUsersBySize] with progress reporting.
//
// A non-positive size fails with [shared.ErrInvalidSize] before any request is made;
// an empty remote batch fails with [shared.ErrEmptyResults] and leaves the cache untouched.
func (e *UserEngine) FetchUsers(ctx context.Context, size int, progress chan<- ProgressUpdate) ([]models.User, error) {
	if size <= 0 {
		return nil, shared.ErrInvalidSize
	}
	if e.source == nil {
		return nil, fmt.Errorf("%w: user source not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchUsersUpdate(size, e.source.Name()))
	resp, err := e.source.GetUsers(ctx, size)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	if resp == nil || len(resp.Results) == 0 {
		return nil, shared.ErrEmptyResults
	}

	users := make([]models.User, 0, len(resp.Results))
	addresses := make([]models.Address, 0, len(resp.Results))
	for _, r := range resp.Results {
		user, err := r.ToUser()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrInvalidResponse, err)
		}
		users = append(users, user)
		addresses = append(addresses, r.ToAddress())
	}

	e.sendProgress(progress, saveUsersUpdate(len(users)))
	if err := e.store.SaveBatch(ctx, users, addresses); err != nil {
		return nil, fmt.Errorf("failed to cache users: %w", err)
	}

	cached, err := e.store.Users.ListByResult(ctx, len(resp.Results))
	if err != nil {
		return nil, err
	}
	e.sendProgress(progress, loadCachedUpdate(cached))
	return cached, nil
}

// LoadCachedUsers returns the users of the most recent batch without contacting the remote source.
func (e *UserEngine) LoadCachedUsers(ctx context.Context) ([]models.User, error) {
	size, err := e.store.Results.Count(ctx)
	if err != nil {
		return nil, err
	}
	return e.store.Users.ListByResult(ctx, size)
}

// LoadUserByID returns a cached user.
func (e *UserEngine) LoadUserByID(ctx context.Context, id string) (*models.User, error) {
	return e.store.Users.Get(ctx, id)
}

// LoadAddressByUserID returns a cached user's address.
func (e *UserEngine) LoadAddressByUserID(ctx context.Context, id string) (*models.Address, error) {
	return e.store.Addresses.GetByUserID(ctx, id)
}

// LoadUserDetail returns a cached user together with their address. Either lookup failing fails the call.
func (e *UserEngine) LoadUserDetail(ctx context.Context, id string) (*models.UserDetail, error) {
	user, err := e.LoadUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	address, err := e.LoadAddressByUserID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.UserDetail{User: *user, Address: *address}, nil
}

// LoadCachedDetails returns the latest batch with addresses attached, for exports.
func (e *UserEngine) LoadCachedDetails(ctx context.Context) ([]models.UserDetail, error) {
	users, err := e.LoadCachedUsers(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]models.UserDetail, 0, len(users))
	for _, u := range users {
		address, err := e.LoadAddressByUserID(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, models.UserDetail{User: u, Address: *address})
	}
	return details, nil
}
