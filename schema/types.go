package schema

// UserID identifies a user account.
type UserID string

// SpaceID identifies a space.
type SpaceID string

// Slug is the URL-facing identifier of a space.
type Slug string

// GroupID identifies a group within a space.
type GroupID string

// PostID identifies a post.
type PostID string

// ReplyID identifies a reply to a post.
type ReplyID string

// SpaceUserID identifies a user's membership in a space.
type SpaceUserID string

// ThemeName identifies a UI theme.
type ThemeName string

// DefaultTheme is used when no theme is configured.
const DefaultTheme ThemeName = "tokyo-midnight"
