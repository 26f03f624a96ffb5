// Package graphql executes GraphQL operations against the Parley API.
// Each operation builds its own document, variables, and response
// decoder; the client only owns transport and error taxonomy.
package graphql

import "encoding/json"

// Operation is one outbound GraphQL document plus its variables and
// response decoder.
type Operation interface {
	OperationName() string
	Document() string
	Variables() map[string]any
	// Decode consumes the "data" member of a successful response.
	Decode(data json.RawMessage) error
}
