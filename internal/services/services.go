// package services defines clients for the remote random user API
package services

import (
	"context"
)

// UserSource fetches batches of generated user profiles from a remote provider.
type UserSource interface {
	// GetUsers requests size profiles. The returned batch may be empty.
	GetUsers(ctx context.Context, size int) (*UsersResponse, error)

	// Name returns the name of the provider (e.g., "randomuser.me")
	Name() string
}
