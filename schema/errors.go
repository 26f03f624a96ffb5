package schema

import "errors"

var (
	// ErrSessionExpired indicates the backend no longer accepts the token.
	ErrSessionExpired = errors.New("session expired")
	// ErrNotSignedIn indicates no token is available at all.
	ErrNotSignedIn = errors.New("not signed in")
	// ErrInvalidRequest indicates a malformed request payload.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrSpaceNotFound indicates a space could not be resolved.
	ErrSpaceNotFound = errors.New("space not found")
	// ErrGroupNotFound indicates a group could not be resolved.
	ErrGroupNotFound = errors.New("group not found")
	// ErrPostNotFound indicates a post could not be resolved.
	ErrPostNotFound = errors.New("post not found")
	// ErrSocketClosed indicates the realtime connection is gone.
	ErrSocketClosed = errors.New("socket closed")
)
