// Package client is the Go consumer of the REST API: a thin typed
// wrapper over the HTTP surface plus a session controller that holds
// the current token and user between runs.
package client

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/valyala/fasthttp"

	"github.com/taskdeck/taskdeck/api/transport"
	"github.com/taskdeck/taskdeck/domain"
)

// Identity mirrors the claims embedded in the bearer token.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Client calls the REST API. Requests are fire-and-await: no retry,
// cancellation or timeout logic lives here.
type Client struct {
	baseURL string
	http    *fasthttp.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &fasthttp.Client{},
	}
}

// SetToken attaches a bearer token to every subsequent request.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) ClearToken() {
	c.token = ""
}

func (c *Client) Register(name, email, password string) (*domain.User, string, error) {
	var out authPayload
	err := c.do(http.MethodPost, "/api/auth/register", transport.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, &out)
	if err != nil {
		return nil, "", err
	}
	return out.User, out.Token, nil
}

func (c *Client) Login(email, password string) (*domain.User, string, error) {
	var out authPayload
	err := c.do(http.MethodPost, "/api/auth/login", transport.LoginRequest{
		Email:    email,
		Password: password,
	}, &out)
	if err != nil {
		return nil, "", err
	}
	return out.User, out.Token, nil
}

// Me validates the attached token against the server and returns the
// identity it carries.
func (c *Client) Me() (*Identity, error) {
	var out struct {
		User Identity `json:"user"`
	}
	if err := c.do(http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) ListTasks() ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.do(http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) CreateTask(req transport.TaskCreateRequest) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(http.MethodPost, "/api/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(id string, req transport.TaskUpdateRequest) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(http.MethodPut, "/api/tasks/"+id, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) ToggleTask(id string) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(http.MethodPatch, "/api/tasks/"+id+"/toggle", nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(id string) error {
	return c.do(http.MethodDelete, "/api/tasks/"+id, nil, nil)
}

type authPayload struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

type envelope struct {
	Status string          `json:"status"`
	Code   string          `json:"code"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

func (c *Client) do(method, path string, body interface{}, out interface{}) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return domain.WrapError(domain.ErrCodeInternal, "request encoding failed", err)
		}
		req.SetBody(encoded)
	}

	if err := c.http.Do(req, resp); err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "request failed", err)
	}

	if resp.StatusCode() == http.StatusNoContent {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return domain.WrapError(domain.ErrCodeInternal,
			fmt.Sprintf("unexpected response (status %d)", resp.StatusCode()), err)
	}

	if resp.StatusCode() >= http.StatusBadRequest || env.Status == "error" {
		return remoteError(env)
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return domain.WrapError(domain.ErrCodeInternal, "response decoding failed", err)
		}
	}
	return nil
}

// remoteError maps the server's error envelope back onto the domain
// taxonomy so callers can branch on codes instead of strings.
func remoteError(env envelope) error {
	code := domain.ErrorCode(env.Code)
	switch code {
	case domain.ErrCodeInvalid, domain.ErrCodeConflict, domain.ErrCodeUnauthorized, domain.ErrCodeNotFound:
	default:
		code = domain.ErrCodeInternal
	}
	message := env.Error
	if message == "" {
		message = "request rejected"
	}
	return domain.NewError(code, message)
}
