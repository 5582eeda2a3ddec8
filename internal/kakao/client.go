package kakao

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// Default Kakao endpoints. Overridable through Config for tests.
const (
	defaultAuthURL    = "https://kauth.kakao.com/oauth/authorize"
	defaultTokenURL   = "https://kauth.kakao.com/oauth/token"
	defaultProfileURL = "https://kapi.kakao.com/v2/user/me"
)

// Error represents an error that occurred while talking to Kakao.
type Error struct {
	Op  string // Operation that caused the error
	Err error  // Original error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err == nil {
		return "kakao error: " + e.Op
	}
	return "kakao error: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// Operation names used in Error.Op.
const (
	OpExchangeCode = "exchange_code"
	OpFetchProfile = "fetch_profile"
)

// Client talks to the Kakao OAuth and profile endpoints.
type Client struct {
	oauthConfig *oauth2.Config
	profileURL  string
	httpClient  *http.Client
}

// Config holds configuration for the Kakao client
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Timeout      time.Duration

	// Endpoint overrides, used by tests. Empty means the Kakao defaults.
	AuthURL    string
	TokenURL   string
	ProfileURL string
}

// NewClient creates a new Kakao client
func NewClient(config *Config) *Client {
	authURL := config.AuthURL
	if authURL == "" {
		authURL = defaultAuthURL
	}
	tokenURL := config.TokenURL
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}
	profileURL := config.ProfileURL
	if profileURL == "" {
		profileURL = defaultProfileURL
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	oauthConfig := &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		RedirectURL:  config.RedirectURL,
		Endpoint: oauth2.Endpoint{
			AuthURL:  authURL,
			TokenURL: tokenURL,
		},
	}

	return &Client{
		oauthConfig: oauthConfig,
		profileURL:  profileURL,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// AuthCodeURL returns the Kakao authorization URL for the given CSRF state.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauthConfig.AuthCodeURL(state)
}

// ExchangeCode exchanges an authorization code for an access token with one
// form-encoded POST to the token endpoint. Authorization codes are single-use,
// so a failed exchange is never retried; the error is surfaced immediately.
//
// The exchange runs on a detached context: the code has already been consumed
// on the provider side once the request is in flight, so an aborted inbound
// request must not cancel it mid-flight. The caller simply discards the
// result.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", &Error{Op: OpExchangeCode, Err: fmt.Errorf("authorization code is empty")}
	}

	exchangeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.httpClient.Timeout)
	defer cancel()
	exchangeCtx = context.WithValue(exchangeCtx, oauth2.HTTPClient, c.httpClient)

	token, err := c.oauthConfig.Exchange(exchangeCtx, code)
	if err != nil {
		return "", &Error{Op: OpExchangeCode, Err: err}
	}

	if token.AccessToken == "" {
		return "", &Error{Op: OpExchangeCode, Err: fmt.Errorf("token response missing access_token")}
	}

	return token.AccessToken, nil
}

// FetchProfile calls the Kakao profile endpoint with the access token and
// normalizes the nested response attributes. The access token is used for
// this one call only and never persisted.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.profileURL, nil)
	if err != nil {
		return nil, &Error{Op: OpFetchProfile, Err: err}
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Op: OpFetchProfile, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &Error{
			Op:  OpFetchProfile,
			Err: fmt.Errorf("profile request failed with status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var attributes map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&attributes); err != nil {
		return nil, &Error{Op: OpFetchProfile, Err: fmt.Errorf("failed to decode profile response: %w", err)}
	}

	return NewUserInfo(attributes), nil
}
