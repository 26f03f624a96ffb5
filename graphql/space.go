package graphql

import (
	"encoding/json"

	"github.com/parleychat/parley/schema"
)

// SpaceBySlug fetches a single space by its slug.
type SpaceBySlug struct {
	Slug schema.Slug

	Space schema.Space
}

// OperationName implements Operation.
func (*SpaceBySlug) OperationName() string { return "SpaceBySlug" }

// Document implements Operation.
func (*SpaceBySlug) Document() string {
	return `
query SpaceBySlug($slug: String!) {
  space(slug: $slug) {
    ...SpaceFields
  }
}
` + spaceFields
}

// Variables implements Operation.
func (op *SpaceBySlug) Variables() map[string]any {
	return map[string]any{"slug": string(op.Slug)}
}

// Decode implements Operation.
func (op *SpaceBySlug) Decode(data json.RawMessage) error {
	var out struct {
		Space *schema.Space `json:"space"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	if out.Space == nil {
		return schema.ErrSpaceNotFound
	}
	op.Space = *out.Space
	return nil
}

// UpdateSpace renames a space or changes its slug.
type UpdateSpace struct {
	SpaceID schema.SpaceID
	Name    string
	Slug    schema.Slug

	Space schema.Space
}

// OperationName implements Operation.
func (*UpdateSpace) OperationName() string { return "UpdateSpace" }

// Document implements Operation.
func (*UpdateSpace) Document() string {
	return `
mutation UpdateSpace($spaceId: ID!, $name: String!, $slug: String!) {
  updateSpace(spaceId: $spaceId, name: $name, slug: $slug) {
    space {
      ...SpaceFields
    }
  }
}
` + spaceFields
}

// Variables implements Operation.
func (op *UpdateSpace) Variables() map[string]any {
	return map[string]any{
		"spaceId": string(op.SpaceID),
		"name":    op.Name,
		"slug":    string(op.Slug),
	}
}

// Decode implements Operation.
func (op *UpdateSpace) Decode(data json.RawMessage) error {
	var out struct {
		UpdateSpace struct {
			Space schema.Space `json:"space"`
		} `json:"updateSpace"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	op.Space = out.UpdateSpace.Space
	return nil
}

// CompleteSetupStep advances a space's onboarding state.
type CompleteSetupStep struct {
	SpaceID schema.SpaceID
	State   string

	Space schema.Space
}

// OperationName implements Operation.
func (*CompleteSetupStep) OperationName() string { return "CompleteSetupStep" }

// Document implements Operation.
func (*CompleteSetupStep) Document() string {
	return `
mutation CompleteSetupStep($spaceId: ID!, $state: SpaceSetupState!) {
  completeSetupStep(spaceId: $spaceId, state: $state) {
    space {
      ...SpaceFields
    }
  }
}
` + spaceFields
}

// Variables implements Operation.
func (op *CompleteSetupStep) Variables() map[string]any {
	return map[string]any{
		"spaceId": string(op.SpaceID),
		"state":   op.State,
	}
}

// Decode implements Operation.
func (op *CompleteSetupStep) Decode(data json.RawMessage) error {
	var out struct {
		CompleteSetupStep struct {
			Space schema.Space `json:"space"`
		} `json:"completeSetupStep"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	op.Space = out.CompleteSetupStep.Space
	return nil
}
