package graphql

import (
	"encoding/json"

	"github.com/parleychat/parley/schema"
)

// SpaceGroups fetches a space and all of its visible groups.
type SpaceGroups struct {
	Slug schema.Slug

	Space  schema.Space
	Groups []schema.Group
}

// OperationName implements Operation.
func (*SpaceGroups) OperationName() string { return "SpaceGroups" }

// Document implements Operation.
func (*SpaceGroups) Document() string {
	return `
query SpaceGroups($slug: String!) {
  space(slug: $slug) {
    ...SpaceFields
    groups {
      ...GroupFields
    }
  }
}
` + spaceFields + groupFields
}

// Variables implements Operation.
func (op *SpaceGroups) Variables() map[string]any {
	return map[string]any{"slug": string(op.Slug)}
}

// Decode implements Operation.
func (op *SpaceGroups) Decode(data json.RawMessage) error {
	var out struct {
		Space *struct {
			schema.Space
			Groups []schema.Group `json:"groups"`
		} `json:"space"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	if out.Space == nil {
		return schema.ErrSpaceNotFound
	}
	op.Space = out.Space.Space
	op.Groups = out.Space.Groups
	return nil
}

// GroupFeed fetches one group and its posts.
type GroupFeed struct {
	Slug    schema.Slug
	GroupID schema.GroupID

	Space schema.Space
	Group schema.Group
	Posts []schema.Post
}

// OperationName implements Operation.
func (*GroupFeed) OperationName() string { return "GroupFeed" }

// Document implements Operation.
func (*GroupFeed) Document() string {
	return `
query GroupFeed($slug: String!, $groupId: ID!) {
  space(slug: $slug) {
    ...SpaceFields
    group(id: $groupId) {
      ...GroupFields
      posts {
        ...PostFields
      }
    }
  }
}
` + spaceFields + groupFields + postFields
}

// Variables implements Operation.
func (op *GroupFeed) Variables() map[string]any {
	return map[string]any{
		"slug":    string(op.Slug),
		"groupId": string(op.GroupID),
	}
}

// Decode implements Operation.
func (op *GroupFeed) Decode(data json.RawMessage) error {
	var out struct {
		Space *struct {
			schema.Space
			Group *struct {
				schema.Group
				Posts []schema.Post `json:"posts"`
			} `json:"group"`
		} `json:"space"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	if out.Space == nil {
		return schema.ErrSpaceNotFound
	}
	if out.Space.Group == nil {
		return schema.ErrGroupNotFound
	}
	op.Space = out.Space.Space
	op.Group = out.Space.Group.Group
	op.Posts = out.Space.Group.Posts
	return nil
}

// CreateGroup creates a group in a space.
type CreateGroup struct {
	SpaceID schema.SpaceID
	Name    string

	Group schema.Group
}

// OperationName implements Operation.
func (*CreateGroup) OperationName() string { return "CreateGroup" }

// Document implements Operation.
func (*CreateGroup) Document() string {
	return `
mutation CreateGroup($spaceId: ID!, $name: String!) {
  createGroup(spaceId: $spaceId, name: $name) {
    group {
      ...GroupFields
    }
  }
}
` + groupFields
}

// Variables implements Operation.
func (op *CreateGroup) Variables() map[string]any {
	return map[string]any{
		"spaceId": string(op.SpaceID),
		"name":    op.Name,
	}
}

// Decode implements Operation.
func (op *CreateGroup) Decode(data json.RawMessage) error {
	var out struct {
		CreateGroup struct {
			Group schema.Group `json:"group"`
		} `json:"createGroup"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	op.Group = out.CreateGroup.Group
	return nil
}

// BulkCreateGroups creates several groups in one round trip, returning
// per-name validation payloads.
type BulkCreateGroups struct {
	SpaceID schema.SpaceID
	Names   []string
}

// OperationName implements Operation.
func (*BulkCreateGroups) OperationName() string { return "BulkCreateGroups" }

// Document implements Operation.
func (*BulkCreateGroups) Document() string {
	return `
mutation BulkCreateGroups($spaceId: ID!, $names: [String]!) {
  bulkCreateGroups(spaceId: $spaceId, names: $names) {
    payloads {
      success
      args {
        name
      }
      errors {
        attribute
        message
      }
    }
  }
}
`
}

// Variables implements Operation.
func (op *BulkCreateGroups) Variables() map[string]any {
	return map[string]any{
		"spaceId": string(op.SpaceID),
		"names":   op.Names,
	}
}

// Decode implements Operation. The per-name validation payloads are not
// inspected; callers validate names before submitting.
func (op *BulkCreateGroups) Decode(json.RawMessage) error {
	return nil
}

// BookmarkGroup bookmarks a group for the viewer.
type BookmarkGroup struct {
	SpaceID schema.SpaceID
	GroupID schema.GroupID

	Group schema.Group
}

// OperationName implements Operation.
func (*BookmarkGroup) OperationName() string { return "BookmarkGroup" }

// Document implements Operation.
func (*BookmarkGroup) Document() string {
	return `
mutation BookmarkGroup($spaceId: ID!, $groupId: ID!) {
  bookmarkGroup(spaceId: $spaceId, groupId: $groupId) {
    group {
      ...GroupFields
    }
  }
}
` + groupFields
}

// Variables implements Operation.
func (op *BookmarkGroup) Variables() map[string]any {
	return map[string]any{
		"spaceId": string(op.SpaceID),
		"groupId": string(op.GroupID),
	}
}

// Decode implements Operation.
func (op *BookmarkGroup) Decode(data json.RawMessage) error {
	var out struct {
		BookmarkGroup struct {
			Group schema.Group `json:"group"`
		} `json:"bookmarkGroup"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	op.Group = out.BookmarkGroup.Group
	return nil
}

// UnbookmarkGroup removes the viewer's bookmark from a group.
type UnbookmarkGroup struct {
	SpaceID schema.SpaceID
	GroupID schema.GroupID

	Group schema.Group
}

// OperationName implements Operation.
func (*UnbookmarkGroup) OperationName() string { return "UnbookmarkGroup" }

// Document implements Operation.
func (*UnbookmarkGroup) Document() string {
	return `
mutation UnbookmarkGroup($spaceId: ID!, $groupId: ID!) {
  unbookmarkGroup(spaceId: $spaceId, groupId: $groupId) {
    group {
      ...GroupFields
    }
  }
}
` + groupFields
}

// Variables implements Operation.
func (op *UnbookmarkGroup) Variables() map[string]any {
	return map[string]any{
		"spaceId": string(op.SpaceID),
		"groupId": string(op.GroupID),
	}
}

// Decode implements Operation.
func (op *UnbookmarkGroup) Decode(data json.RawMessage) error {
	var out struct {
		UnbookmarkGroup struct {
			Group schema.Group `json:"group"`
		} `json:"unbookmarkGroup"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	op.Group = out.UnbookmarkGroup.Group
	return nil
}
