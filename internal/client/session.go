package client

import (
	"context"
	"errors"
	"strings"

	"contactbook/internal/model"
)

// State is derived solely from whether a token is held.
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Mode selects which form the unauthenticated view submits.
type Mode string

const (
	ModeLogin    Mode = "login"
	ModeRegister Mode = "register"
)

// Backend is the subset of the REST API a session drives.
type Backend interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, model.Identity, error)
	Logout(ctx context.Context, token string) error
	ListContacts(ctx context.Context, token string) ([]model.Contact, error)
	CreateContact(ctx context.Context, token string, fields model.ContactFields) (*model.Contact, error)
	DeleteContact(ctx context.Context, token, id string) error
}

// ErrNotLoggedIn is returned by contact operations without a token.
var ErrNotLoggedIn = errors.New("not logged in")

// Session is the client-side view state: token, form mode and the last
// fetched contact list.
type Session struct {
	api      Backend
	tokens   TokenStore
	token    string
	mode     Mode
	user     model.Identity
	contacts []model.Contact
}

// NewSession restores any persisted token.
func NewSession(api Backend, tokens TokenStore) (*Session, error) {
	token, err := tokens.Load()
	if err != nil {
		return nil, err
	}
	return &Session{api: api, tokens: tokens, token: token, mode: ModeLogin}, nil
}

func (s *Session) State() State {
	if s.token == "" {
		return Unauthenticated
	}
	return Authenticated
}

func (s *Session) Mode() Mode { return s.mode }

// ToggleMode flips between the login and register forms.
func (s *Session) ToggleMode() Mode {
	if s.mode == ModeLogin {
		s.mode = ModeRegister
	} else {
		s.mode = ModeLogin
	}
	return s.mode
}

// SetMode selects a form explicitly.
func (s *Session) SetMode(m Mode) { s.mode = m }

// User is the identity returned by the last login in this process.
func (s *Session) User() model.Identity { return s.user }

// Register creates an account. On success the session switches to login
// mode without logging in.
func (s *Session) Register(ctx context.Context, email, password string) (string, error) {
	msg, err := s.api.Register(ctx, email, password)
	if err != nil {
		return "", err
	}
	s.mode = ModeLogin
	return msg, nil
}

// Login stores the returned token and loads the contact list.
func (s *Session) Login(ctx context.Context, email, password string) error {
	token, user, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := s.tokens.Save(token); err != nil {
		return err
	}
	s.token = token
	s.user = user
	_, err = s.Refresh(ctx)
	return err
}

// Refresh fetches the list. A 401 drops the token and the session falls
// back to Unauthenticated.
func (s *Session) Refresh(ctx context.Context) ([]model.Contact, error) {
	if s.token == "" {
		return nil, ErrNotLoggedIn
	}
	contacts, err := s.api.ListContacts(ctx, s.token)
	if errors.Is(err, ErrUnauthorized) {
		s.reset()
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	s.contacts = contacts
	return contacts, nil
}

// Add creates a contact and reloads the list.
func (s *Session) Add(ctx context.Context, fields model.ContactFields) (*model.Contact, error) {
	if s.token == "" {
		return nil, ErrNotLoggedIn
	}
	contact, err := s.api.CreateContact(ctx, s.token, fields)
	if err != nil {
		return nil, err
	}
	_, err = s.Refresh(ctx)
	return contact, err
}

// Delete removes a contact and reloads the list.
func (s *Session) Delete(ctx context.Context, id string) error {
	if s.token == "" {
		return ErrNotLoggedIn
	}
	if err := s.api.DeleteContact(ctx, s.token, id); err != nil {
		return err
	}
	_, err := s.Refresh(ctx)
	return err
}

// Logout revokes the token server-side when possible, then always clears
// the token and the cached list.
func (s *Session) Logout(ctx context.Context) error {
	var remoteErr error
	if s.token != "" {
		remoteErr = s.api.Logout(ctx, s.token)
	}
	if err := s.reset(); err != nil {
		return err
	}
	return remoteErr
}

func (s *Session) reset() error {
	s.token = ""
	s.user = model.Identity{}
	s.contacts = nil
	return s.tokens.Clear()
}

// Contacts returns the last fetched list.
func (s *Session) Contacts() []model.Contact { return s.contacts }

// Filter returns contacts whose name or email contains term, ignoring case.
// An empty term matches everything.
func (s *Session) Filter(term string) []model.Contact {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return s.contacts
	}
	out := make([]model.Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		if strings.Contains(strings.ToLower(c.Name), term) || strings.Contains(strings.ToLower(c.Email), term) {
			out = append(out, c)
		}
	}
	return out
}

// ErrorMessage is the text shown to the user for err: the server's msg when
// there is one, fallback otherwise.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Msg != "" {
		return apiErr.Msg
	}
	if errors.Is(err, ErrNotLoggedIn) {
		return "Please log in first"
	}
	return fallback
}
