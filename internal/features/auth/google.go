package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"google.golang.org/api/idtoken"
)

var ErrInvalidToken = errors.New("invalid token")

// cacheTTL bounds how long a verified token's claims are reused before the
// provider is asked again. Tokens revoked upstream stay valid here at most
// this long.
const cacheTTL = 5 * time.Minute

// Verifier exchanges Google tokens for identity claims. ID tokens are checked
// locally against Google's signing keys; opaque access tokens fall back to the
// OAuth2 tokeninfo endpoint.
type Verifier struct {
	clientID     string
	tokenInfoURL string
	httpClient   *http.Client

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	identity Identity
	expires  time.Time
}

func NewVerifier(clientID, tokenInfoURL string) *Verifier {
	return &Verifier{
		clientID:     clientID,
		tokenInfoURL: tokenInfoURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		cache:        make(map[string]cacheEntry),
	}
}

// Verify resolves a token to an identity. Results are cached briefly so the
// per-request auth middleware does not hit the provider on every call.
func (v *Verifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	if id, ok := v.cached(token); ok {
		return id, nil
	}

	var identity *Identity
	var err error
	if looksLikeJWT(token) {
		identity, err = v.verifyIDToken(ctx, token)
	} else {
		identity, err = v.verifyAccessToken(ctx, token)
	}
	if err != nil {
		return nil, err
	}

	v.store(token, *identity)
	return identity, nil
}

func (v *Verifier) cached(token string) (*Identity, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	entry, ok := v.cache[token]
	if !ok || time.Now().After(entry.expires) {
		delete(v.cache, token)
		return nil, false
	}
	id := entry.identity
	return &id, true
}

func (v *Verifier) store(token string, identity Identity) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.cache[token] = cacheEntry{identity: identity, expires: time.Now().Add(cacheTTL)}
}

func (v *Verifier) verifyIDToken(ctx context.Context, token string) (*Identity, error) {
	payload, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	identity := &Identity{ID: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		identity.Name = name
	}
	return identity, nil
}

func (v *Verifier) verifyAccessToken(ctx context.Context, token string) (*Identity, error) {
	endpoint := v.tokenInfoURL + "?access_token=" + url.QueryEscape(token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrInvalidToken
	}

	var info struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if info.Sub == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{ID: info.Sub, Email: info.Email, Name: info.Name}, nil
}

func looksLikeJWT(token string) bool {
	return strings.Count(token, ".") == 2
}
