// Package session holds the auth token and executes authenticated
// requests. Sessions are immutable values: refresh returns a replacement
// rather than mutating in place.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pkt.systems/pslog"

	"github.com/parleychat/parley/graphql"
	"github.com/parleychat/parley/schema"
)

// Session is an opaque holder of one auth token plus the transports that
// use it. The shell never inspects the token; it only reacts to
// schema.ErrSessionExpired and to successful refreshes.
type Session struct {
	token    string
	api      *graphql.Client
	tokenURL string
	http     *http.Client
	log      pslog.Logger
}

// New constructs a session around an existing token.
func New(token string, api *graphql.Client, tokenURL string, logger pslog.Logger) Session {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return Session{
		token:    token,
		api:      api,
		tokenURL: tokenURL,
		http:     &http.Client{Timeout: 15 * time.Second},
		log:      logger,
	}
}

// Token exposes the current bearer token for transports that need it
// (socket dial, persistence).
func (s Session) Token() string { return s.token }

// SignedIn reports whether a token is present at all.
func (s Session) SignedIn() bool { return strings.TrimSpace(s.token) != "" }

// Request executes one GraphQL operation with the bearer token attached.
// It returns the session unchanged on success; the indirection keeps the
// call shape uniform with refresh, which does replace it.
func (s Session) Request(ctx context.Context, op graphql.Operation) (Session, error) {
	if !s.SignedIn() {
		return s, schema.ErrNotSignedIn
	}
	if err := s.api.Do(ctx, s.token, op); err != nil {
		return s, err
	}
	return s, nil
}

// FetchNewToken exchanges the current token for a fresh one and returns
// the replacement session. Fails with schema.ErrSessionExpired when the
// backend reports unauthenticated.
func (s Session) FetchNewToken(ctx context.Context) (Session, error) {
	if !s.SignedIn() {
		return s, schema.ErrNotSignedIn
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, nil)
	if err != nil {
		return s, err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	s.log.Debug("token refresh start")
	resp, err := s.http.Do(req)
	if err != nil {
		s.log.Warn("token refresh failed", "err", err)
		return s, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		s.log.Info("token refresh unauthenticated")
		return s, schema.ErrSessionExpired
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		s.log.Warn("token refresh failed", "status", resp.StatusCode)
		return s, fmt.Errorf("token refresh: unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return s, err
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return s, fmt.Errorf("token refresh: decode response: %w", err)
	}
	if strings.TrimSpace(out.Token) == "" {
		return s, fmt.Errorf("token refresh: empty token")
	}
	next := s
	next.token = out.Token
	s.log.Info("token refresh ok")
	return next, nil
}
