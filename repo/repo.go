// Package repo holds the client-side cache of normalized domain entities.
// Entries are only ever added or overwritten, never evicted; the cache
// lives for the life of the process.
package repo

import (
	"sort"
	"sync"

	"github.com/parleychat/parley/schema"
)

// Repo maps entity ids to entity snapshots, one mapping per kind. All
// mutation happens inside the shell's update loop; the mutex exists for
// readers outside that loop, such as the desktop notifier.
type Repo struct {
	mu         sync.RWMutex
	groups     map[schema.GroupID]schema.Group
	posts      map[schema.PostID]schema.Post
	spaces     map[schema.SpaceID]schema.Space
	spaceUsers map[schema.SpaceUserID]schema.SpaceUser
}

// New constructs an empty cache.
func New() *Repo {
	return &Repo{
		groups:     make(map[schema.GroupID]schema.Group),
		posts:      make(map[schema.PostID]schema.Post),
		spaces:     make(map[schema.SpaceID]schema.Space),
		spaceUsers: make(map[schema.SpaceUserID]schema.SpaceUser),
	}
}

// SetGroup upserts a group snapshot, last write wins.
func (r *Repo) SetGroup(g schema.Group) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups[g.ID] = g
}

// SetPost upserts a post snapshot, last write wins.
func (r *Repo) SetPost(p schema.Post) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[p.ID] = p
}

// SetSpace upserts a space snapshot, last write wins.
func (r *Repo) SetSpace(s schema.Space) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spaces[s.ID] = s
}

// SetSpaceUser upserts a membership snapshot, last write wins.
func (r *Repo) SetSpaceUser(u schema.SpaceUser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spaceUsers[u.ID] = u
}

// Group returns the cached group for the id.
func (r *Repo) Group(id schema.GroupID) (schema.Group, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.groups[id]
	return g, ok
}

// Post returns the cached post for the id.
func (r *Repo) Post(id schema.PostID) (schema.Post, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.posts[id]
	return p, ok
}

// Space returns the cached space for the id.
func (r *Repo) Space(id schema.SpaceID) (schema.Space, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.spaces[id]
	return s, ok
}

// SpaceUser returns the cached membership for the id.
func (r *Repo) SpaceUser(id schema.SpaceUserID) (schema.SpaceUser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.spaceUsers[id]
	return u, ok
}

// SpaceBySlug returns the cached space with the given slug.
func (r *Repo) SpaceBySlug(slug schema.Slug) (schema.Space, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.spaces {
		if s.Slug == slug {
			return s, true
		}
	}
	return schema.Space{}, false
}

// Spaces returns all cached spaces ordered by name.
func (r *Repo) Spaces() []schema.Space {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]schema.Space, 0, len(r.spaces))
	for _, s := range r.spaces {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GroupsBySpace returns the space's cached groups ordered by name.
func (r *Repo) GroupsBySpace(id schema.SpaceID) []schema.Group {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]schema.Group, 0)
	for _, g := range r.groups {
		if g.SpaceID == id {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// PostsBySpace returns the space's cached posts, newest first.
func (r *Repo) PostsBySpace(id schema.SpaceID) []schema.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]schema.Post, 0)
	for _, p := range r.posts {
		if p.SpaceID == id {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PostedAt.After(out[j].PostedAt) })
	return out
}

// PostsByGroup returns the group's cached posts, newest first.
func (r *Repo) PostsByGroup(id schema.GroupID) []schema.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]schema.Post, 0)
	for _, p := range r.posts {
		for _, gid := range p.GroupIDs {
			if gid == id {
				out = append(out, p)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PostedAt.After(out[j].PostedAt) })
	return out
}

// SpaceUsersBySpace returns the space's cached members ordered by name.
func (r *Repo) SpaceUsersBySpace(id schema.SpaceID) []schema.SpaceUser {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]schema.SpaceUser, 0)
	for _, u := range r.spaceUsers {
		if u.SpaceID == id {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out
}
