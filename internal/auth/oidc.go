package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"scoreboard-tracker/internal/config"
	"scoreboard-tracker/internal/constants"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const oidcScope = "openid profile email"

// TokenResponse is the token endpoint's reply to an authorization-code
// exchange. Only the ID token is used; the access token is not forwarded
// anywhere.
type TokenResponse struct {
	IDToken     string `json:"id_token"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// IdentityClaims are the fields we read out of the Entra ID token payload.
type IdentityClaims struct {
	OID               string `json:"oid"`
	Sub               string `json:"sub"`
	Name              string `json:"name"`
	PreferredUsername string `json:"preferred_username"`
}

// UserID returns the stable identifier for the user, preferring the tenant
// object id over the pairwise subject.
func (c IdentityClaims) UserID() string {
	if c.OID != "" {
		return c.OID
	}
	if c.Sub != "" {
		return c.Sub
	}
	return "unknown"
}

// EntraClient drives the Microsoft Entra ID authorization-code flow.
type EntraClient struct {
	client       *fasthttp.Client
	logger       zerolog.Logger
	tenantID     string
	clientID     string
	clientSecret string
	redirectURI  string
}

func NewEntraClient(cfg *config.Config, logger zerolog.Logger) *EntraClient {
	return &EntraClient{
		client: &fasthttp.Client{
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger:       logger.With().Str("component", "entra").Logger(),
		tenantID:     cfg.EntraTenantID,
		clientID:     cfg.EntraClientID,
		clientSecret: cfg.EntraClientSecret,
		redirectURI:  strings.TrimSuffix(cfg.AppURL, "/") + "/api/auth/callback",
	}
}

// AuthorizeURL builds the URL the browser is redirected to for login.
func (c *EntraClient) AuthorizeURL() string {
	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("response_type", "code")
	params.Set("redirect_uri", c.redirectURI)
	params.Set("scope", oidcScope)
	params.Set("response_mode", "query")

	return fmt.Sprintf(
		"https://login.microsoftonline.com/%s/oauth2/v2.0/authorize?%s",
		c.tenantID, params.Encode(),
	)
}

// ExchangeCode trades an authorization code for tokens at the token endpoint.
func (c *EntraClient) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("code", code)
	form.Set("redirect_uri", c.redirectURI)
	form.Set("grant_type", "authorization_code")
	form.Set("scope", oidcScope)

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fmt.Sprintf(
		"https://login.microsoftonline.com/%s/oauth2/v2.0/token", c.tenantID,
	))
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/x-www-form-urlencoded")
	req.SetBodyString(form.Encode())

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.Do(req, resp)
	}
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Warn().
			Int("status", resp.StatusCode()).
			Msg("token endpoint rejected code exchange")
		return nil, fmt.Errorf("token endpoint returned status %d", resp.StatusCode())
	}

	var tokens TokenResponse
	if err := json.Unmarshal(resp.Body(), &tokens); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	return &tokens, nil
}

// DecodeIDTokenClaims extracts the payload of an ID token without verifying
// its signature. The token arrives over our own TLS exchange with the token
// endpoint, so the transport already authenticates the issuer.
func DecodeIDTokenClaims(idToken string) (IdentityClaims, error) {
	var claims IdentityClaims

	parts := strings.Split(idToken, ".")
	if len(parts) != 3 {
		return claims, fmt.Errorf("malformed ID token: expected 3 segments, got %d", len(parts))
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return claims, fmt.Errorf("failed to decode ID token payload: %w", err)
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return claims, fmt.Errorf("failed to parse ID token claims: %w", err)
	}
	return claims, nil
}
