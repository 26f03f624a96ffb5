package graphql

import (
	"encoding/json"

	"github.com/parleychat/parley/schema"
)

// ViewerSpaces lists every space the viewer belongs to.
type ViewerSpaces struct {
	Spaces []schema.Space
}

// OperationName implements Operation.
func (*ViewerSpaces) OperationName() string { return "ViewerSpaces" }

// Document implements Operation.
func (*ViewerSpaces) Document() string {
	return `
query ViewerSpaces {
  viewer {
    spaces {
      ...SpaceFields
    }
  }
}
` + spaceFields
}

// Variables implements Operation.
func (*ViewerSpaces) Variables() map[string]any { return nil }

// Decode implements Operation.
func (op *ViewerSpaces) Decode(data json.RawMessage) error {
	var out struct {
		Viewer struct {
			Spaces []schema.Space `json:"spaces"`
		} `json:"viewer"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	op.Spaces = out.Viewer.Spaces
	return nil
}

// CreateSpace creates a space owned by the viewer.
type CreateSpace struct {
	Name string
	Slug schema.Slug

	Space schema.Space
}

// OperationName implements Operation.
func (*CreateSpace) OperationName() string { return "CreateSpace" }

// Document implements Operation.
func (*CreateSpace) Document() string {
	return `
mutation CreateSpace($name: String!, $slug: String!) {
  createSpace(name: $name, slug: $slug) {
    space {
      ...SpaceFields
    }
  }
}
` + spaceFields
}

// Variables implements Operation.
func (op *CreateSpace) Variables() map[string]any {
	return map[string]any{"name": op.Name, "slug": string(op.Slug)}
}

// Decode implements Operation.
func (op *CreateSpace) Decode(data json.RawMessage) error {
	var out struct {
		CreateSpace struct {
			Space schema.Space `json:"space"`
		} `json:"createSpace"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	op.Space = out.CreateSpace.Space
	return nil
}
