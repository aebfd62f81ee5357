// Package servicenow provides a client for the ServiceNow REST API,
// covering the Attachment API endpoints used by this tool.
package servicenow

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Auth modes supported by a Session.
const (
	AuthBasic = "basic"
	AuthOAuth = "oauth"
)

// DefaultTimeout bounds a single API request, including the file transfer.
const DefaultTimeout = 5 * time.Minute

// ErrNoInstance is returned when a session is built without an instance.
var ErrNoInstance = errors.New("servicenow instance not configured")

// Session holds the connection defaults shared by API calls: the normalized
// base URL and the credentials to authenticate with. A Session is read-only
// input to the client; callers that need per-call mutation work on a Clone.
type Session struct {
	Instance string // as supplied: "dev12345" or a full URL
	BaseURL  string // normalized, ends with /api/now

	AuthMode     string // AuthBasic or AuthOAuth
	Username     string
	Password     string
	ClientID     string
	ClientSecret string

	Timeout time.Duration
}

// NewSession builds a session for the given instance. The instance may be a
// bare instance name ("dev12345"), a host ("dev12345.service-now.com"), or a
// full URL; the base URL is normalized to end with /api/now either way.
func NewSession(instance string) (*Session, error) {
	base, err := normalizeBaseURL(instance)
	if err != nil {
		return nil, err
	}

	return &Session{
		Instance: instance,
		BaseURL:  base,
		AuthMode: AuthBasic,
		Timeout:  DefaultTimeout,
	}, nil
}

// Clone returns a copy of the session so per-call mutation cannot leak back
// into the caller's shared session.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

// TokenURL returns the OAuth token endpoint for the instance.
func (s *Session) TokenURL() string {
	origin := strings.TrimSuffix(s.BaseURL, "/api/now")
	return origin + "/oauth_token.do"
}

// Validate checks that the session carries enough to authenticate.
func (s *Session) Validate() error {
	if s.BaseURL == "" {
		return ErrNoInstance
	}

	switch s.AuthMode {
	case AuthBasic, "":
		if s.Username == "" || s.Password == "" {
			return fmt.Errorf("basic auth requires username and password")
		}
	case AuthOAuth:
		if s.ClientID == "" || s.ClientSecret == "" {
			return fmt.Errorf("oauth requires client_id and client_secret")
		}
		if s.Username == "" || s.Password == "" {
			return fmt.Errorf("oauth password grant requires username and password")
		}
	default:
		return fmt.Errorf("unknown auth mode: %s", s.AuthMode)
	}

	return nil
}

// normalizeBaseURL turns an instance name, host, or URL into the API base URL.
func normalizeBaseURL(instance string) (string, error) {
	instance = strings.TrimSpace(instance)
	if instance == "" {
		return "", ErrNoInstance
	}

	raw := instance
	if !strings.Contains(raw, "://") {
		if !strings.Contains(raw, ".") {
			// Bare instance name
			raw += ".service-now.com"
		}
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid instance %q: %w", instance, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid instance %q: no host", instance)
	}

	base := strings.TrimSuffix(u.String(), "/")
	if !strings.HasSuffix(base, "/api/now") {
		base += "/api/now"
	}

	return base, nil
}
