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

	apperrors "contactbook/internal/errors"
	"contactbook/internal/model"
)

const headerToken = "x-auth-token"

// ErrUnauthorized is returned when the server rejects a request for lack of a token.
var ErrUnauthorized = errors.New("unauthorized")

// APIError carries a non-2xx response.
type APIError struct {
	Status int
	Msg    string
	Code   string
}

func (e *APIError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Msg
}

// Is lets 401 responses match ErrUnauthorized.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

type loginResponse struct {
	Token string         `json:"token"`
	User  model.Identity `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// API is a JSON client for the contact book REST API.
type API struct {
	baseURL string
	http    *http.Client
}

// NewAPI creates a client for baseURL. A nil httpClient uses http.DefaultClient.
func NewAPI(baseURL string, httpClient *http.Client) *API {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &API{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Register creates an account and returns the server's confirmation message.
func (a *API) Register(ctx context.Context, email, password string) (string, error) {
	var out messageResponse
	err := a.do(ctx, http.MethodPost, "/api/register", "", credentials{email, password}, &out)
	return out.Message, err
}

// Login exchanges credentials for a token.
func (a *API) Login(ctx context.Context, email, password string) (string, model.Identity, error) {
	var out loginResponse
	if err := a.do(ctx, http.MethodPost, "/api/login", "", credentials{email, password}, &out); err != nil {
		return "", model.Identity{}, err
	}
	return out.Token, out.User, nil
}

// Logout revokes token on the server.
func (a *API) Logout(ctx context.Context, token string) error {
	return a.do(ctx, http.MethodPost, "/api/logout", token, nil, nil)
}

// ListContacts returns the caller's contacts, newest first.
func (a *API) ListContacts(ctx context.Context, token string) ([]model.Contact, error) {
	contacts := make([]model.Contact, 0)
	if err := a.do(ctx, http.MethodGet, "/api/contacts", token, nil, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

// CreateContact stores a new contact for the caller.
func (a *API) CreateContact(ctx context.Context, token string, fields model.ContactFields) (*model.Contact, error) {
	var out model.Contact
	if err := a.do(ctx, http.MethodPost, "/api/contacts", token, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteContact removes a contact by id.
func (a *API) DeleteContact(ctx context.Context, token, id string) error {
	return a.do(ctx, http.MethodDelete, "/api/contacts/"+url.PathEscape(id), token, nil, nil)
}

func (a *API) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(headerToken, token)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload apperrors.ErrorResponse
		if json.Unmarshal(raw, &payload) == nil {
			apiErr.Msg = payload.Msg
			apiErr.Code = payload.Code
		}
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
