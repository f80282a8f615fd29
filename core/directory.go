package core

import (
	"context"
	"errors"
)

// ErrProfileNotFound is returned by DirectoryService when no profile exists
// for the requested user id.
var ErrProfileNotFound = errors.New("profile not found")

// Profile is a user profile as held by the external identity directory.
// It is read-only to this service.
type Profile struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Role       string `json:"role"`
}

// DirectoryService resolves user profiles and department memberships against
// the external identity directory. Calls are network round-trips and may
// fail; callers must treat any error as "directory unavailable" and apply
// their fallback policy rather than failing the operation.
type DirectoryService interface {
	// GetUser resolves a single profile by user id.
	GetUser(ctx context.Context, id int) (Profile, error)
	// GetDepartmentMembers returns the profiles of all members of the named
	// department. callerToken is forwarded as the bearer credential.
	GetDepartmentMembers(ctx context.Context, department, callerToken string) ([]Profile, error)
}
