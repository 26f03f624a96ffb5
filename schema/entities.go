package schema

import "time"

// Space setup states, in onboarding order.
const (
	SetupStateCreateGroups = "CREATE_GROUPS"
	SetupStateInviteUsers  = "INVITE_USERS"
	SetupStateComplete     = "COMPLETE"
)

// Post states.
const (
	PostStateOpen   = "OPEN"
	PostStateClosed = "CLOSED"
)

// Space user roles.
const (
	RoleOwner  = "OWNER"
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
)

// Space is a team's top-level container.
type Space struct {
	ID                SpaceID `json:"id"`
	Name              string  `json:"name"`
	Slug              Slug    `json:"slug"`
	SetupState        string  `json:"setupState"`
	OpenInvitationURL string  `json:"openInvitationUrl,omitempty"`
}

// Group is a named channel of posts within a space.
type Group struct {
	ID           GroupID `json:"id"`
	SpaceID      SpaceID `json:"spaceId"`
	Name         string  `json:"name"`
	IsBookmarked bool    `json:"isBookmarked"`
	IsDefault    bool    `json:"isDefault"`
	IsPrivate    bool    `json:"isPrivate"`
}

// Post is a message posted to one or more groups.
type Post struct {
	ID         PostID      `json:"id"`
	SpaceID    SpaceID     `json:"spaceId"`
	GroupIDs   []GroupID   `json:"groupIds"`
	AuthorID   SpaceUserID `json:"authorId"`
	Body       string      `json:"body"`
	State      string      `json:"state"`
	PostedAt   time.Time   `json:"postedAt"`
	ReplyCount int         `json:"replyCount"`
}

// Reply is a threaded response to a post.
type Reply struct {
	ID       ReplyID     `json:"id"`
	PostID   PostID      `json:"postId"`
	AuthorID SpaceUserID `json:"authorId"`
	Body     string      `json:"body"`
	PostedAt time.Time   `json:"postedAt"`
}

// SpaceUser is a user's membership record in a space.
type SpaceUser struct {
	ID        SpaceUserID `json:"id"`
	SpaceID   SpaceID     `json:"spaceId"`
	UserID    UserID      `json:"userId"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Role      string      `json:"role"`
}

// DisplayName returns the member's human-readable name.
func (u SpaceUser) DisplayName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
