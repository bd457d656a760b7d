// Package reqres is the HTTP transport to the remote user service
// (reqres.in and compatible APIs).
package reqres

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/99minutos/user-console/internal/core/domain"
)

const (
	DefaultBaseURL = "https://reqres.in/api"
	defaultTimeout = 10 * time.Second
	apiKeyHeader   = "x-api-key"
)

// Operation names used in errors and metrics.
const (
	OpListUsers  = "list_users"
	OpGetUser    = "get_user"
	OpUpdateUser = "update_user"
	OpDeleteUser = "delete_user"
	OpLogin      = "login"
)

// Observer is told about every remote call. status is 0 when no response
// arrived.
type Observer interface {
	ObserveRemoteCall(op string, status int, elapsed time.Duration)
}

// Config captures the settings for the remote API.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Retries int
}

// Client implements ports.UserGateway and ports.AuthGateway with resty.
// It does not attach the session token to requests.
type Client struct {
	http     *resty.Client
	observer Observer
}

// New builds a client. A nil observer is allowed.
func New(cfg Config, observer Observer) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		rc.SetHeader(apiKeyHeader, cfg.APIKey)
	}
	if cfg.Retries > 0 {
		rc.SetRetryCount(cfg.Retries).
			SetRetryWaitTime(100 * time.Millisecond).
			SetRetryMaxWaitTime(time.Second)
	}

	return &Client{http: rc, observer: observer}
}

type userEnvelope struct {
	Data domain.User `json:"data"`
}

type errorBody struct {
	Error string `json:"error"`
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenBody struct {
	Token string `json:"token"`
}

// ListUsers fetches one page. Pages below 1 are clamped to 1.
func (c *Client) ListUsers(ctx context.Context, page int) (*domain.UserPage, error) {
	if page < 1 {
		page = 1
	}
	var out domain.UserPage
	resp, err := c.do(OpListUsers, func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetQueryParam("page", strconv.Itoa(page)).
			SetResult(&out).
			Get("/users")
	})
	if err := check(OpListUsers, domain.ErrFetchUsers, resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetUser(ctx context.Context, id int) (*domain.User, error) {
	var out userEnvelope
	resp, err := c.do(OpGetUser, func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetPathParam("id", strconv.Itoa(id)).
			SetResult(&out).
			Get("/users/{id}")
	})
	if err := check(OpGetUser, domain.ErrUserNotFound, resp, err); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// UpdateUser replaces the editable fields. The service may echo only the
// written fields, so the id and the update are folded into the result.
func (c *Client) UpdateUser(ctx context.Context, id int, update domain.UserUpdate) (*domain.User, error) {
	var out domain.User
	resp, err := c.do(OpUpdateUser, func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetPathParam("id", strconv.Itoa(id)).
			SetHeader("Content-Type", "application/json").
			SetBody(update).
			SetResult(&out).
			Put("/users/{id}")
	})
	if err := check(OpUpdateUser, domain.ErrUpdateUser, resp, err); err != nil {
		return nil, err
	}
	if out.ID == 0 {
		out.ID = id
	}
	if out.FirstName == "" && out.LastName == "" && out.Email == "" {
		out.FirstName, out.LastName, out.Email = update.FirstName, update.LastName, update.Email
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	resp, err := c.do(OpDeleteUser, func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetPathParam("id", strconv.Itoa(id)).
			Delete("/users/{id}")
	})
	return check(OpDeleteUser, domain.ErrDeleteUser, resp, err)
}

// Login posts credentials and returns the token. A rejected login carries
// the server's reason in the returned *domain.RemoteError.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out tokenBody
	resp, err := c.do(OpLogin, func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(loginBody{Email: email, Password: password}).
			SetResult(&out).
			SetError(&errorBody{}).
			Post("/login")
	})
	if err := check(OpLogin, domain.ErrLogin, resp, err); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *Client) do(op string, call func() (*resty.Response, error)) (*resty.Response, error) {
	start := time.Now()
	resp, err := call()
	if c.observer != nil {
		status := 0
		if err == nil && resp != nil {
			status = resp.StatusCode()
		}
		c.observer.ObserveRemoteCall(op, status, time.Since(start))
	}
	return resp, err
}

// check turns a transport error or a non-2xx response into a RemoteError
// wrapping sentinel.
func check(op string, sentinel error, resp *resty.Response, err error) error {
	if err != nil {
		return &domain.RemoteError{Op: op, Kind: domain.KindNetwork, Err: sentinel, Cause: err}
	}
	if resp.IsSuccess() {
		return nil
	}

	re := &domain.RemoteError{Op: op, Kind: domain.KindHTTP, Status: resp.StatusCode(), Err: sentinel}
	if body, ok := resp.Error().(*errorBody); ok && body != nil {
		re.Reason = body.Error
	}
	if re.Status == 0 {
		re.Status = http.StatusInternalServerError
	}
	return re
}
