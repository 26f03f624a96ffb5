package graphql

import (
	"encoding/json"

	"github.com/parleychat/parley/schema"
)

// SpaceInbox fetches a space, the viewer's bookmarked groups, and the
// posts currently in the viewer's inbox.
type SpaceInbox struct {
	Slug schema.Slug

	Space  schema.Space
	Groups []schema.Group
	Posts  []schema.Post
}

// OperationName implements Operation.
func (*SpaceInbox) OperationName() string { return "SpaceInbox" }

// Document implements Operation.
func (*SpaceInbox) Document() string {
	return `
query SpaceInbox($slug: String!) {
  space(slug: $slug) {
    ...SpaceFields
    bookmarkedGroups {
      ...GroupFields
    }
    inbox {
      ...PostFields
    }
  }
}
` + spaceFields + groupFields + postFields
}

// Variables implements Operation.
func (op *SpaceInbox) Variables() map[string]any {
	return map[string]any{"slug": string(op.Slug)}
}

// Decode implements Operation.
func (op *SpaceInbox) Decode(data json.RawMessage) error {
	var out struct {
		Space *struct {
			schema.Space
			BookmarkedGroups []schema.Group `json:"bookmarkedGroups"`
			Inbox            []schema.Post  `json:"inbox"`
		} `json:"space"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	if out.Space == nil {
		return schema.ErrSpaceNotFound
	}
	op.Space = out.Space.Space
	op.Groups = out.Space.BookmarkedGroups
	op.Posts = out.Space.Inbox
	return nil
}

// SpaceFeed fetches a space and its recent posts across all groups.
type SpaceFeed struct {
	Slug schema.Slug

	Space schema.Space
	Posts []schema.Post
}

// OperationName implements Operation.
func (*SpaceFeed) OperationName() string { return "SpaceFeed" }

// Document implements Operation.
func (*SpaceFeed) Document() string {
	return `
query SpaceFeed($slug: String!) {
  space(slug: $slug) {
    ...SpaceFields
    posts {
      ...PostFields
    }
  }
}
` + spaceFields + postFields
}

// Variables implements Operation.
func (op *SpaceFeed) Variables() map[string]any {
	return map[string]any{"slug": string(op.Slug)}
}

// Decode implements Operation.
func (op *SpaceFeed) Decode(data json.RawMessage) error {
	var out struct {
		Space *struct {
			schema.Space
			Posts []schema.Post `json:"posts"`
		} `json:"space"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	if out.Space == nil {
		return schema.ErrSpaceNotFound
	}
	op.Space = out.Space.Space
	op.Posts = out.Space.Posts
	return nil
}

// PostWithReplies fetches one post, its replies, and the memberships of
// everyone involved.
type PostWithReplies struct {
	Slug   schema.Slug
	PostID schema.PostID

	Space   schema.Space
	Post    schema.Post
	Replies []schema.Reply
	Authors []schema.SpaceUser
}

// OperationName implements Operation.
func (*PostWithReplies) OperationName() string { return "PostWithReplies" }

// Document implements Operation.
func (*PostWithReplies) Document() string {
	return `
query PostWithReplies($slug: String!, $postId: ID!) {
  space(slug: $slug) {
    ...SpaceFields
    post(id: $postId) {
      ...PostFields
      replies {
        ...ReplyFields
      }
      authors {
        ...SpaceUserFields
      }
    }
  }
}
` + spaceFields + postFields + replyFields + spaceUserFields
}

// Variables implements Operation.
func (op *PostWithReplies) Variables() map[string]any {
	return map[string]any{
		"slug":   string(op.Slug),
		"postId": string(op.PostID),
	}
}

// Decode implements Operation.
func (op *PostWithReplies) Decode(data json.RawMessage) error {
	var out struct {
		Space *struct {
			schema.Space
			Post *struct {
				schema.Post
				Replies []schema.Reply     `json:"replies"`
				Authors []schema.SpaceUser `json:"authors"`
			} `json:"post"`
		} `json:"space"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	if out.Space == nil {
		return schema.ErrSpaceNotFound
	}
	if out.Space.Post == nil {
		return schema.ErrPostNotFound
	}
	op.Space = out.Space.Space
	op.Post = out.Space.Post.Post
	op.Replies = out.Space.Post.Replies
	op.Authors = out.Space.Post.Authors
	return nil
}

// CreatePost posts a message to a group. ClientID is generated by the
// caller so the optimistic local copy and the realtime echo can be
// reconciled.
type CreatePost struct {
	SpaceID  schema.SpaceID
	GroupID  schema.GroupID
	Body     string
	ClientID string

	Post schema.Post
}

// OperationName implements Operation.
func (*CreatePost) OperationName() string { return "CreatePost" }

// Document implements Operation.
func (*CreatePost) Document() string {
	return `
mutation CreatePost($spaceId: ID!, $groupId: ID!, $body: String!, $clientId: String) {
  createPost(spaceId: $spaceId, groupId: $groupId, body: $body, clientId: $clientId) {
    post {
      ...PostFields
    }
  }
}
` + postFields
}

// Variables implements Operation.
func (op *CreatePost) Variables() map[string]any {
	return map[string]any{
		"spaceId":  string(op.SpaceID),
		"groupId":  string(op.GroupID),
		"body":     op.Body,
		"clientId": op.ClientID,
	}
}

// Decode implements Operation.
func (op *CreatePost) Decode(data json.RawMessage) error {
	var out struct {
		CreatePost struct {
			Post schema.Post `json:"post"`
		} `json:"createPost"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	op.Post = out.CreatePost.Post
	return nil
}

// CreateReply replies to a post.
type CreateReply struct {
	SpaceID  schema.SpaceID
	PostID   schema.PostID
	Body     string
	ClientID string

	Reply schema.Reply
}

// OperationName implements Operation.
func (*CreateReply) OperationName() string { return "CreateReply" }

// Document implements Operation.
func (*CreateReply) Document() string {
	return `
mutation CreateReply($spaceId: ID!, $postId: ID!, $body: String!, $clientId: String) {
  createReply(spaceId: $spaceId, postId: $postId, body: $body, clientId: $clientId) {
    reply {
      ...ReplyFields
    }
  }
}
` + replyFields
}

// Variables implements Operation.
func (op *CreateReply) Variables() map[string]any {
	return map[string]any{
		"spaceId":  string(op.SpaceID),
		"postId":   string(op.PostID),
		"body":     op.Body,
		"clientId": op.ClientID,
	}
}

// Decode implements Operation.
func (op *CreateReply) Decode(data json.RawMessage) error {
	var out struct {
		CreateReply struct {
			Reply schema.Reply `json:"reply"`
		} `json:"createReply"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	op.Reply = out.CreateReply.Reply
	return nil
}
