package graphql

import (
	"encoding/json"

	"github.com/parleychat/parley/schema"
)

// SpaceMembers fetches a space and its membership roster.
type SpaceMembers struct {
	Slug schema.Slug

	Space   schema.Space
	Members []schema.SpaceUser
}

// OperationName implements Operation.
func (*SpaceMembers) OperationName() string { return "SpaceMembers" }

// Document implements Operation.
func (*SpaceMembers) Document() string {
	return `
query SpaceMembers($slug: String!) {
  space(slug: $slug) {
    ...SpaceFields
    spaceUsers {
      ...SpaceUserFields
    }
  }
}
` + spaceFields + spaceUserFields
}

// Variables implements Operation.
func (op *SpaceMembers) Variables() map[string]any {
	return map[string]any{"slug": string(op.Slug)}
}

// Decode implements Operation.
func (op *SpaceMembers) Decode(data json.RawMessage) error {
	var out struct {
		Space *struct {
			schema.Space
			SpaceUsers []schema.SpaceUser `json:"spaceUsers"`
		} `json:"space"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	if out.Space == nil {
		return schema.ErrSpaceNotFound
	}
	op.Space = out.Space.Space
	op.Members = out.Space.SpaceUsers
	return nil
}

// Viewer fetches the viewer's account attributes.
type Viewer struct {
	UserID    schema.UserID
	Email     string
	FirstName string
	LastName  string
}

// OperationName implements Operation.
func (*Viewer) OperationName() string { return "Viewer" }

// Document implements Operation.
func (*Viewer) Document() string {
	return `
query Viewer {
  viewer {
    id
    email
    firstName
    lastName
  }
}
`
}

// Variables implements Operation.
func (*Viewer) Variables() map[string]any { return nil }

// Decode implements Operation.
func (op *Viewer) Decode(data json.RawMessage) error {
	var out struct {
		Viewer struct {
			ID        schema.UserID `json:"id"`
			Email     string        `json:"email"`
			FirstName string        `json:"firstName"`
			LastName  string        `json:"lastName"`
		} `json:"viewer"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	op.UserID = out.Viewer.ID
	op.Email = out.Viewer.Email
	op.FirstName = out.Viewer.FirstName
	op.LastName = out.Viewer.LastName
	return nil
}

// UpdateUser changes the viewer's account attributes.
type UpdateUser struct {
	FirstName string
	LastName  string
}

// OperationName implements Operation.
func (*UpdateUser) OperationName() string { return "UpdateUser" }

// Document implements Operation.
func (*UpdateUser) Document() string {
	return `
mutation UpdateUser($firstName: String!, $lastName: String!) {
  updateUser(firstName: $firstName, lastName: $lastName) {
    user {
      id
      firstName
      lastName
    }
  }
}
`
}

// Variables implements Operation.
func (op *UpdateUser) Variables() map[string]any {
	return map[string]any{
		"firstName": op.FirstName,
		"lastName":  op.LastName,
	}
}

// Decode implements Operation.
func (*UpdateUser) Decode(json.RawMessage) error { return nil }
