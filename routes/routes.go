// Package routes maps URL paths to the closed set of navigable locations
// and back. Parse and Serialize are mutual inverses for every
// constructible Route value.
package routes

import (
	"net/url"
	"strings"

	"github.com/parleychat/parley/schema"
)

// Route identifies one navigable location in the application.
type Route interface {
	isRoute()
}

// Mode selects how a navigation affects history.
type Mode int

const (
	// Push adds a history entry.
	Push Mode = iota
	// Replace overwrites the current history entry.
	Replace
	// Load leaves the application entirely (full navigation).
	Load
)

// Spaces lists the viewer's spaces.
type Spaces struct{}

// NewSpace creates a space.
type NewSpace struct{}

// UserSettings edits the viewer's account.
type UserSettings struct{}

// Root is the bare space path; the shell re-resolves it as Inbox.
type Root struct {
	Slug schema.Slug
}

// Inbox shows the viewer's inbox for a space.
type Inbox struct {
	Slug schema.Slug
}

// Posts shows the activity feed for a space.
type Posts struct {
	Slug schema.Slug
}

// Post shows a single post and its replies.
type Post struct {
	Slug schema.Slug
	ID   schema.PostID
}

// Groups lists the groups in a space.
type Groups struct {
	Slug schema.Slug
}

// Group shows a single group's feed.
type Group struct {
	Slug schema.Slug
	ID   schema.GroupID
}

// NewGroup creates a group in a space.
type NewGroup struct {
	Slug schema.Slug
}

// SpaceUsers lists the members of a space.
type SpaceUsers struct {
	Slug schema.Slug
}

// Invites shows the space's open invitation.
type Invites struct {
	Slug schema.Slug
}

// SetupGroups is the create-groups onboarding step.
type SetupGroups struct {
	Slug schema.Slug
}

// SetupInvites is the invite-users onboarding step.
type SetupInvites struct {
	Slug schema.Slug
}

// Search searches a space.
type Search struct {
	Slug  schema.Slug
	Query string
}

// SpaceSettings edits a space.
type SpaceSettings struct {
	Slug schema.Slug
}

func (Spaces) isRoute()        {}
func (NewSpace) isRoute()      {}
func (UserSettings) isRoute()  {}
func (Root) isRoute()          {}
func (Inbox) isRoute()         {}
func (Posts) isRoute()         {}
func (Post) isRoute()          {}
func (Groups) isRoute()        {}
func (Group) isRoute()         {}
func (NewGroup) isRoute()      {}
func (SpaceUsers) isRoute()    {}
func (Invites) isRoute()       {}
func (SetupGroups) isRoute()   {}
func (SetupInvites) isRoute()  {}
func (Search) isRoute()        {}
func (SpaceSettings) isRoute() {}

// Serialize renders the route's canonical path.
func Serialize(r Route) string {
	switch r := r.(type) {
	case Spaces:
		return "/spaces"
	case NewSpace:
		return "/spaces/new"
	case UserSettings:
		return "/user/settings"
	case Root:
		return "/" + string(r.Slug)
	case Inbox:
		return "/" + string(r.Slug) + "/inbox"
	case Posts:
		return "/" + string(r.Slug) + "/posts"
	case Post:
		return "/" + string(r.Slug) + "/posts/" + string(r.ID)
	case Groups:
		return "/" + string(r.Slug) + "/groups"
	case NewGroup:
		return "/" + string(r.Slug) + "/groups/new"
	case Group:
		return "/" + string(r.Slug) + "/groups/" + string(r.ID)
	case SpaceUsers:
		return "/" + string(r.Slug) + "/users"
	case Invites:
		return "/" + string(r.Slug) + "/invites"
	case SetupGroups:
		return "/" + string(r.Slug) + "/setup/groups"
	case SetupInvites:
		return "/" + string(r.Slug) + "/setup/invites"
	case Search:
		return "/" + string(r.Slug) + "/search?q=" + url.QueryEscape(r.Query)
	case SpaceSettings:
		return "/" + string(r.Slug) + "/settings"
	}
	return "/"
}

// Parse resolves a path to a Route. Unparseable paths yield ok=false,
// never an error; the shell renders NotFound for those.
//
// Patterns are tried in a fixed priority order: literal first segments
// before slug patterns, and multi-segment slug patterns before the
// one-segment Root fallback that matches any space slug.
func Parse(rawPath string) (Route, bool) {
	path := rawPath
	query := ""
	if i := strings.IndexByte(path, '?'); i >= 0 {
		query = path[i+1:]
		path = path[:i]
	}
	path = strings.TrimSuffix(path, "/")
	if path == "" || path[0] != '/' {
		return nil, false
	}
	segs := strings.Split(path[1:], "/")

	switch segs[0] {
	case "spaces":
		switch len(segs) {
		case 1:
			return Spaces{}, true
		case 2:
			if segs[1] == "new" {
				return NewSpace{}, true
			}
		}
		return nil, false
	case "user":
		if len(segs) == 2 && segs[1] == "settings" {
			return UserSettings{}, true
		}
		return nil, false
	}

	slug := schema.Slug(segs[0])
	if !validSlug(segs[0]) {
		return nil, false
	}
	switch len(segs) {
	case 1:
		return Root{Slug: slug}, true
	case 2:
		switch segs[1] {
		case "inbox":
			return Inbox{Slug: slug}, true
		case "posts":
			return Posts{Slug: slug}, true
		case "groups":
			return Groups{Slug: slug}, true
		case "users":
			return SpaceUsers{Slug: slug}, true
		case "invites":
			return Invites{Slug: slug}, true
		case "settings":
			return SpaceSettings{Slug: slug}, true
		case "search":
			q, err := parseQuery(query)
			if err != nil {
				return nil, false
			}
			return Search{Slug: slug, Query: q}, true
		}
		return nil, false
	case 3:
		switch segs[1] {
		case "posts":
			if segs[2] != "" {
				return Post{Slug: slug, ID: schema.PostID(segs[2])}, true
			}
		case "groups":
			if segs[2] == "new" {
				return NewGroup{Slug: slug}, true
			}
			if segs[2] != "" {
				return Group{Slug: slug, ID: schema.GroupID(segs[2])}, true
			}
		case "setup":
			switch segs[2] {
			case "groups":
				return SetupGroups{Slug: slug}, true
			case "invites":
				return SetupInvites{Slug: slug}, true
			}
		}
		return nil, false
	}
	return nil, false
}

func parseQuery(query string) (string, error) {
	values, err := url.ParseQuery(query)
	if err != nil {
		return "", err
	}
	return values.Get("q"), nil
}

func validSlug(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return false
		}
	}
	return true
}
