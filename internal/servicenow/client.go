package servicenow

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"golang.org/x/oauth2"

	"github.com/car1bo/snowattach/internal/httpclient"
	"github.com/car1bo/snowattach/internal/log"
)

// Client performs requests against the ServiceNow REST API.
type Client struct {
	session    *Session
	httpClient *http.Client
	retry      httpclient.RetryConfig

	initOnce sync.Once
	initErr  error
}

// NewClient creates a client for the given session. The session is cloned so
// the caller's copy is never mutated.
func NewClient(sess *Session) *Client {
	return &Client{
		session: sess.Clone(),
		retry:   httpclient.DefaultRetryConfig(),
	}
}

// Session returns the client's own session copy.
func (c *Client) Session() *Session {
	return c.session
}

// init prepares the underlying http.Client. For OAuth sessions the password
// grant is exchanged once and the token source refreshes from then on.
func (c *Client) init(ctx context.Context) error {
	c.initOnce.Do(func() {
		timeout := c.session.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}

		if c.session.AuthMode != AuthOAuth {
			c.httpClient = httpclient.NewHTTPClientWithTimeout(timeout)
			return
		}

		conf := &oauth2.Config{
			ClientID:     c.session.ClientID,
			ClientSecret: c.session.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  c.session.TokenURL(),
				AuthStyle: oauth2.AuthStyleInParams,
			},
		}

		tok, err := conf.PasswordCredentialsToken(ctx, c.session.Username, c.session.Password)
		if err != nil {
			c.initErr = fmt.Errorf("oauth token exchange: %w", err)
			return
		}

		c.httpClient = oauth2.NewClient(ctx, conf.TokenSource(ctx, tok))
		c.httpClient.Timeout = timeout
	})

	return c.initErr
}

// setAuth applies per-request authentication. OAuth tokens are injected by the
// oauth2 transport; basic auth is set here.
func (c *Client) setAuth(req *http.Request) {
	if c.session.AuthMode != AuthOAuth {
		req.SetBasicAuth(c.session.Username, c.session.Password)
	}
}

// doRequest performs a single API request and decodes the JSON response.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, result any) error {
	if err := c.init(ctx); err != nil {
		return err
	}

	reqURL := c.session.BaseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	c.setAuth(req)
	req.Header.Set("Accept", "application/json")

	log.Debug("api request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return wrapAPIError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return wrapAPIError(httpclient.NewHTTPError(resp.StatusCode, apiErrorMessage(respBody)))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

// doRequestWithRetry wraps doRequest with exponential backoff for transient
// failures. Only metadata calls go through here; file transfers are not
// retried.
func (c *Client) doRequestWithRetry(ctx context.Context, method, endpoint string, result any) error {
	return httpclient.WithRetry(ctx, c.retry, func() error {
		return c.doRequest(ctx, method, endpoint, result)
	})
}

// apiErrorMessage extracts the error detail from a ServiceNow error body.
func apiErrorMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
			Detail  string `json:"detail"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error.Detail != "" {
		return payload.Error.Detail
	}
	return payload.Error.Message
}
