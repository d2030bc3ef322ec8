package cli

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contactbook/internal/client"
	"contactbook/internal/model"
)

type stubBackend struct {
	users    map[string]string
	contacts []model.Contact
	deleted  []string
	listErr  error
}

func (b *stubBackend) Register(_ context.Context, email, password string) (string, error) {
	if _, ok := b.users[email]; ok {
		return "", &client.APIError{Status: http.StatusBadRequest, Msg: "Email already exists or invalid data"}
	}
	b.users[email] = password
	return "User registered successfully", nil
}

func (b *stubBackend) Login(_ context.Context, email, password string) (string, model.Identity, error) {
	if b.users[email] != password {
		return "", model.Identity{}, &client.APIError{Status: http.StatusBadRequest, Msg: "Invalid credentials"}
	}
	return "tok", model.Identity{ID: "u1", Email: email}, nil
}

func (b *stubBackend) Logout(context.Context, string) error { return nil }

func (b *stubBackend) ListContacts(context.Context, string) ([]model.Contact, error) {
	if b.listErr != nil {
		return nil, b.listErr
	}
	return b.contacts, nil
}

func (b *stubBackend) CreateContact(_ context.Context, _ string, f model.ContactFields) (*model.Contact, error) {
	c := model.Contact{ID: "c" + string(rune('0'+len(b.contacts)+1)), UserID: "u1", Name: f.Name, Email: f.Email, Phone: f.Phone, Message: f.Message, Date: time.Now()}
	b.contacts = append([]model.Contact{c}, b.contacts...)
	return &c, nil
}

func (b *stubBackend) DeleteContact(_ context.Context, _, id string) error {
	b.deleted = append(b.deleted, id)
	kept := b.contacts[:0]
	for _, c := range b.contacts {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	b.contacts = kept
	return nil
}

type memTokens struct{ token string }

func (m *memTokens) Load() (string, error) { return m.token, nil }
func (m *memTokens) Save(t string) error   { m.token = t; return nil }
func (m *memTokens) Clear() error          { m.token = ""; return nil }

func pipedInput(t *testing.T) {
	t.Helper()
	orig := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = orig })
}

func runApp(t *testing.T, backend *stubBackend, tokens *memTokens, lines ...string) string {
	t.Helper()
	session, err := client.NewSession(backend, tokens)
	require.NoError(t, err)
	var out bytes.Buffer
	NewApp(session, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out).Run(context.Background())
	return out.String()
}

func TestAppRegisterLoginAddDelete(t *testing.T) {
	pipedInput(t)
	backend := &stubBackend{users: map[string]string{}}
	tokens := &memTokens{}

	out := runApp(t, backend, tokens,
		"register", "a@x.com", "pw",
		"login", "a@x.com", "bad",
		"login", "a@x.com", "pw",
		"add", "Bob", "b@x.com", "123", "",
		"search BOB",
		"delete c1", "n",
		"delete c1", "y",
		"exit",
	)

	assert.Contains(t, out, "User registered successfully. You can now log in.")
	assert.Contains(t, out, "Error: Invalid credentials")
	assert.Contains(t, out, "Logged in as a@x.com")
	assert.Contains(t, out, "Added Bob (c1)")
	assert.Contains(t, out, "Cancelled")
	assert.Contains(t, out, "Contact removed")
	assert.Equal(t, []string{"c1"}, backend.deleted)
	assert.Equal(t, "tok", tokens.token)
}

func TestAppModeToggleAndSubmit(t *testing.T) {
	pipedInput(t)
	backend := &stubBackend{users: map[string]string{"a@x.com": "pw"}}

	out := runApp(t, backend, &memTokens{},
		"mode",
		"submit", "a@x.com", "pw",
		"exit",
	)

	assert.Contains(t, out, "Mode: register")
	assert.Contains(t, out, "Error: Email already exists or invalid data")
	assert.Contains(t, out, "cb register> ")
}

func TestAppExpiredTokenFallsBackToLogin(t *testing.T) {
	pipedInput(t)
	backend := &stubBackend{users: map[string]string{}, listErr: &client.APIError{Status: http.StatusUnauthorized}}
	tokens := &memTokens{token: "stale"}

	out := runApp(t, backend, tokens, "exit")

	assert.Contains(t, out, "Session expired, please log in again.")
	assert.Contains(t, out, "cb login> ")
	assert.Empty(t, tokens.token)
}

func TestAppLogoutClearsToken(t *testing.T) {
	pipedInput(t)
	backend := &stubBackend{users: map[string]string{}, contacts: []model.Contact{{ID: "c1", Name: "Bob"}}}
	tokens := &memTokens{token: "tok"}

	out := runApp(t, backend, tokens, "logout", "list", "exit")

	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "Logged out")
	assert.Contains(t, out, "Please log in first")
	assert.Empty(t, tokens.token)
}
