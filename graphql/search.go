package graphql

import (
	"encoding/json"

	"github.com/parleychat/parley/schema"
)

// SearchPosts runs a full-text search over a space's posts.
type SearchPosts struct {
	Slug  schema.Slug
	Query string

	Space   schema.Space
	Results []schema.Post
}

// OperationName implements Operation.
func (*SearchPosts) OperationName() string { return "SearchPosts" }

// Document implements Operation.
func (*SearchPosts) Document() string {
	return `
query SearchPosts($slug: String!, $query: String!) {
  space(slug: $slug) {
    ...SpaceFields
    search(query: $query) {
      ...PostFields
    }
  }
}
` + spaceFields + postFields
}

// Variables implements Operation.
func (op *SearchPosts) Variables() map[string]any {
	return map[string]any{
		"slug":  string(op.Slug),
		"query": op.Query,
	}
}

// Decode implements Operation.
func (op *SearchPosts) Decode(data json.RawMessage) error {
	var out struct {
		Space *struct {
			schema.Space
			Search []schema.Post `json:"search"`
		} `json:"space"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	if out.Space == nil {
		return schema.ErrSpaceNotFound
	}
	op.Space = out.Space.Space
	op.Results = out.Space.Search
	return nil
}
