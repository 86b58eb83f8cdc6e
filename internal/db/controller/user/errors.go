package user

import "errors"

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")

	// ErrUserNotFound is returned when a user cannot be found.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists is returned when creating a user whose username is taken.
	ErrUserExists = errors.New("user with username already exists")

	// ErrUsernameEmpty is returned when a user is created without a username.
	ErrUsernameEmpty = errors.New("username cannot be empty")

	// ErrRoleInactive is returned when assigning a role that has been deactivated.
	ErrRoleInactive = errors.New("role is inactive and cannot be assigned")
)
