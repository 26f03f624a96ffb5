package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pkt.systems/pslog"

	"github.com/parleychat/parley/schema"
)

// Client executes operations against a single GraphQL endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	log      pslog.Logger
}

// NewClient constructs a client for the endpoint.
func NewClient(endpoint string, logger pslog.Logger) (*Client, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, fmt.Errorf("graphql endpoint is required")
	}
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
		log:      logger.With("endpoint", endpoint),
	}, nil
}

type request struct {
	OperationName string         `json:"operationName,omitempty"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []responseError `json:"errors"`
}

type responseError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

// Do executes the operation with the bearer token attached. An
// unauthenticated response maps to schema.ErrSessionExpired; everything
// else surfaces as a generic error.
func (c *Client) Do(ctx context.Context, token string, op Operation) error {
	if ctx == nil {
		return fmt.Errorf("missing context")
	}
	if strings.TrimSpace(token) == "" {
		return schema.ErrNotSignedIn
	}
	body, err := json.Marshal(request{
		OperationName: op.OperationName(),
		Query:         op.Document(),
		Variables:     op.Variables(),
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	c.log.Debug("graphql request start", "operation", op.OperationName())
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("graphql request failed", "operation", op.OperationName(), "err", err)
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		c.log.Info("graphql request unauthenticated", "operation", op.OperationName())
		return schema.ErrSessionExpired
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warn("graphql request failed", "operation", op.OperationName(), "status", resp.StatusCode)
		return fmt.Errorf("graphql: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var parsed response
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("graphql: decode response: %w", err)
	}
	if len(parsed.Errors) > 0 {
		for _, e := range parsed.Errors {
			if e.Extensions.Code == "UNAUTHENTICATED" || strings.EqualFold(e.Message, "unauthenticated") {
				c.log.Info("graphql request unauthenticated", "operation", op.OperationName())
				return schema.ErrSessionExpired
			}
		}
		c.log.Warn("graphql request errored", "operation", op.OperationName(), "err", parsed.Errors[0].Message)
		return fmt.Errorf("graphql: %s", parsed.Errors[0].Message)
	}
	if err := op.Decode(parsed.Data); err != nil {
		return fmt.Errorf("graphql: decode %s: %w", op.OperationName(), err)
	}
	c.log.Debug("graphql request ok", "operation", op.OperationName())
	return nil
}
