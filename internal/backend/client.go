// Package backend is the HTTP client for the identity and licensing API the
// portal fronts.
package backend

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

	"usermgmt/portal-service/internal/models"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// StatusError is returned for any other non-2xx response.
type StatusError struct {
	Status  int
	Code    string
	Message string
}

func (e *StatusError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("backend status %d", e.Status)
	}
	return fmt.Sprintf("backend status %d: %s: %s", e.Status, e.Code, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

type ProfileUpdate struct {
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
	Phone       string `json:"phone"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var result LoginResult
	payload := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", payload, &result); err != nil {
		return LoginResult{}, err
	}
	if result.Token == "" {
		return LoginResult{}, fmt.Errorf("login: empty token in response")
	}
	return result, nil
}

func (c *Client) CurrentUser(ctx context.Context, token string) (models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", token, nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", token, nil, nil)
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{"email": email}, nil)
}

func (c *Client) UpdateProfile(ctx context.Context, token string, update ProfileUpdate) (models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/api/users/me", token, update, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (c *Client) Company(ctx context.Context, token, companyID string) (models.Company, error) {
	var company models.Company
	path := "/api/companies/" + url.PathEscape(companyID)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &company); err != nil {
		return models.Company{}, err
	}
	return company, nil
}

func (c *Client) Room(ctx context.Context, token, companyID, roomID string) (models.Room, error) {
	var room models.Room
	path := "/api/companies/" + url.PathEscape(companyID) + "/rooms/" + url.PathEscape(roomID)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &room); err != nil {
		return models.Room{}, err
	}
	return room, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s %s: encode: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= http.StatusBadRequest:
		statusErr := &StatusError{Status: resp.StatusCode}
		var payload errorResponse
		if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&payload); err == nil {
			statusErr.Code = payload.Error.Code
			statusErr.Message = payload.Error.Message
		}
		return statusErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode: %w", method, path, err)
	}
	return nil
}
