package graphql

import (
	"encoding/json"

	"github.com/parleychat/parley/schema"
)

// CreateInvite rotates a space's open invitation link.
type CreateInvite struct {
	SpaceID schema.SpaceID

	InvitationURL string
}

// OperationName implements Operation.
func (*CreateInvite) OperationName() string { return "CreateInvite" }

// Document implements Operation.
func (*CreateInvite) Document() string {
	return `
mutation CreateInvite($spaceId: ID!) {
  createInvite(spaceId: $spaceId) {
    invitationUrl
  }
}
`
}

// Variables implements Operation.
func (op *CreateInvite) Variables() map[string]any {
	return map[string]any{"spaceId": string(op.SpaceID)}
}

// Decode implements Operation.
func (op *CreateInvite) Decode(data json.RawMessage) error {
	var out struct {
		CreateInvite struct {
			InvitationURL string `json:"invitationUrl"`
		} `json:"createInvite"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	op.InvitationURL = out.CreateInvite.InvitationURL
	return nil
}
