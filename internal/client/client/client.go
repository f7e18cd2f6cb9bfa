package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/messagely/internal/client/models"
	"github.com/dmitrijs2005/messagely/internal/common"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var env errorEnvelope
		_ = json.NewDecoder(resp.Body).Decode(&env)
		return statusError(resp.StatusCode, env.Error.Message)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a token. Wrong credentials yield
// common.ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out tokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", "",
		map[string]string{"username": username, "password": password}, &out)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			return "", common.ErrInvalidCredentials
		}
		return "", err
	}
	return out.Token, nil
}

func (c *Client) Register(ctx context.Context, r models.Registration) (string, error) {
	var out tokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", r, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]models.UserProfile, error) {
	var out struct {
		Users []models.UserProfile `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/users", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *Client) GetUser(ctx context.Context, token, username string) (*models.User, error) {
	var out struct {
		User models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(username), token, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Inbox lists messages received by username.
func (c *Client) Inbox(ctx context.Context, token, username string) ([]models.InboxMessage, error) {
	var out struct {
		Messages []models.InboxMessage `json:"messages"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(username)+"/to", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

// Outbox lists messages sent by username.
func (c *Client) Outbox(ctx context.Context, token, username string) ([]models.OutboxMessage, error) {
	var out struct {
		Messages []models.OutboxMessage `json:"messages"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(username)+"/from", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

func (c *Client) Send(ctx context.Context, token, to, body string) (*models.SentMessage, error) {
	var out struct {
		Message models.SentMessage `json:"message"`
	}
	in := map[string]string{"to_username": to, "body": body}
	if err := c.do(ctx, http.MethodPost, "/messages", token, in, &out); err != nil {
		return nil, err
	}
	return &out.Message, nil
}

func (c *Client) GetMessage(ctx context.Context, token, id string) (*models.MessageDetail, error) {
	var out struct {
		Message models.MessageDetail `json:"message"`
	}
	if err := c.do(ctx, http.MethodGet, "/messages/"+url.PathEscape(id), token, nil, &out); err != nil {
		return nil, err
	}
	return &out.Message, nil
}

func (c *Client) MarkRead(ctx context.Context, token, id string) (*models.ReadReceipt, error) {
	var out struct {
		Message models.ReadReceipt `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/messages/"+url.PathEscape(id)+"/read", token, nil, &out); err != nil {
		return nil, err
	}
	return &out.Message, nil
}

// Ping checks that the server answers /healthz.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", "", nil, nil)
}
