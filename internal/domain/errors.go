package domain

import "errors"

// Auth errors
var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("token is invalid or expired")
	ErrUserNotFound       = errors.New("user not found")
)

// Route association errors
var (
	ErrRouteNotFound     = errors.New("route not found")
	ErrRouteAlreadyAdded = errors.New("route already added")
	ErrUserRouteNotFound = errors.New("user route not found")
	ErrNotRouteOwner     = errors.New("route belongs to another user")
)

// Chat errors
var (
	ErrChatNotFound   = errors.New("chat not found")
	ErrChatWithSelf   = errors.New("cannot create chat with yourself")
	ErrNotParticipant = errors.New("user is not a participant in this chat")
	ErrEmptyMessage   = errors.New("message content is required")
)
