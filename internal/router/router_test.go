package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"contactbook/internal/auth"
	apperrors "contactbook/internal/errors"
	"contactbook/internal/handler"
	"contactbook/internal/model"
	"contactbook/internal/repository"
	"contactbook/internal/service"
)

// memoryStore is an in-process stand-in for the document store.
type memoryStore struct {
	mu       sync.Mutex
	seq      int
	users    map[string]model.User
	contacts map[string]model.Contact
	revoked  map[string]bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    map[string]model.User{},
		contacts: map[string]model.Contact{},
		revoked:  map[string]bool{},
	}
}

func (m *memoryStore) nextID() string {
	m.seq++
	return fmt.Sprintf("id-%d", m.seq)
}

type memoryUsers struct{ *memoryStore }

func (m memoryUsers) Create(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Email]; ok {
		return apperrors.ErrDuplicateEmail
	}
	user.ID = m.nextID()
	m.users[user.Email] = *user
	return nil
}

func (m memoryUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

type memoryContacts struct{ *memoryStore }

func (m memoryContacts) Create(_ context.Context, contact *model.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	contact.ID = m.nextID()
	m.contacts[contact.ID] = *contact
	return nil
}

func (m memoryContacts) ListByOwner(_ context.Context, ownerID string) ([]model.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Contact, 0)
	for _, c := range m.contacts {
		if c.UserID == ownerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m memoryContacts) DeleteByIDAndOwner(_ context.Context, id, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.contacts[id]; ok && c.UserID == ownerID {
		delete(m.contacts, id)
	}
	return nil
}

type memoryRevocations struct{ *memoryStore }

func (m memoryRevocations) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenID] = true
	return nil
}

func (m memoryRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[tokenID], nil
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	store := newMemoryStore()
	log := zap.NewNop()

	jwtService := auth.NewJWTService("test-secret")
	revocations := memoryRevocations{store}

	authService := service.NewAuthService(memoryUsers{store}, jwtService, revocations, log)
	contactService := service.NewContactService(memoryContacts{store}, nil, log)

	e := echo.New()
	Register(e, log, auth.Gateway(jwtService, revocations), Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Contact: handler.NewContactHandler(contactService),
		Health:  handler.NewHealthHandler(),
	})
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var payload string
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = string(raw)
	}
	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(auth.HeaderToken, token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func login(t *testing.T, e *echo.Echo, email, password string) handler.LoginResponse {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/api/register", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = do(t, e, http.MethodPost, "/api/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[handler.LoginResponse](t, rec)
}

func TestContactLifecycle(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodPost, "/api/register", "", map[string]string{"email": "a@x.com", "password": "pw1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "User registered successfully", decode[handler.MessageResponse](t, rec).Message)

	rec = do(t, e, http.MethodPost, "/api/login", "", map[string]string{"email": "a@x.com", "password": "pw1"})
	require.Equal(t, http.StatusOK, rec.Code)
	session := decode[handler.LoginResponse](t, rec)
	require.NotEmpty(t, session.Token)
	assert.Equal(t, "a@x.com", session.User.Email)

	rec = do(t, e, http.MethodPost, "/api/contacts", session.Token, map[string]string{
		"name": "Bob", "email": "b@x.com", "phone": "123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[model.Contact](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, session.User.ID, created.UserID)
	assert.Equal(t, "Bob", created.Name)
	assert.False(t, created.Date.IsZero())

	rec = do(t, e, http.MethodGet, "/api/contacts", session.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]model.Contact](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	rec = do(t, e, http.MethodDelete, "/api/contacts/"+created.ID, session.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Contact removed", decode[handler.MessageResponse](t, rec).Message)

	rec = do(t, e, http.MethodGet, "/api/contacts", session.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestRegisterAndLoginFailures(t *testing.T) {
	e := newTestServer(t)
	login(t, e, "a@x.com", "pw1")

	tests := []struct {
		name       string
		path       string
		body       map[string]string
		wantStatus int
		wantMsg    string
	}{
		{"duplicate email", "/api/register", map[string]string{"email": "a@x.com", "password": "pw2"}, http.StatusBadRequest, "Email already exists or invalid data"},
		{"missing password", "/api/register", map[string]string{"email": "c@x.com"}, http.StatusBadRequest, ""},
		{"invalid email", "/api/register", map[string]string{"email": "nope", "password": "pw"}, http.StatusBadRequest, ""},
		{"wrong password", "/api/login", map[string]string{"email": "a@x.com", "password": "bad"}, http.StatusBadRequest, "Invalid credentials"},
		{"unknown user", "/api/login", map[string]string{"email": "z@x.com", "password": "pw1"}, http.StatusBadRequest, "User does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, e, http.MethodPost, tt.path, "", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decode[apperrors.ErrorResponse](t, rec)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, body.Msg)
			} else {
				assert.Equal(t, "VALIDATION_ERROR", body.Code)
			}
		})
	}
}

func TestContactsAreOwnerScoped(t *testing.T) {
	e := newTestServer(t)
	alice := login(t, e, "a@x.com", "pw1")
	bob := login(t, e, "b@x.com", "pw2")

	rec := do(t, e, http.MethodPost, "/api/contacts", alice.Token, map[string]string{
		"name": "Carol", "email": "c@x.com", "phone": "1",
		// A client-supplied owner must be ignored.
		"userId": bob.User.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	aliceContact := decode[model.Contact](t, rec)
	assert.Equal(t, alice.User.ID, aliceContact.UserID)

	rec = do(t, e, http.MethodPost, "/api/contacts", bob.Token, map[string]string{
		"name": "Dave", "email": "d@x.com", "phone": "2",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, e, http.MethodGet, "/api/contacts", bob.Token, nil)
	bobList := decode[[]model.Contact](t, rec)
	require.Len(t, bobList, 1)
	assert.Equal(t, "Dave", bobList[0].Name)

	// Bob deleting Alice's contact is a silent no-op.
	rec = do(t, e, http.MethodDelete, "/api/contacts/"+aliceContact.ID, bob.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, e, http.MethodGet, "/api/contacts", alice.Token, nil)
	aliceList := decode[[]model.Contact](t, rec)
	require.Len(t, aliceList, 1)
	assert.Equal(t, aliceContact.ID, aliceList[0].ID)
}

func TestContactValidation(t *testing.T) {
	e := newTestServer(t)
	alice := login(t, e, "a@x.com", "pw1")

	rec := do(t, e, http.MethodPost, "/api/contacts", alice.Token, map[string]string{"name": "NoPhone", "email": "n@x.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode[apperrors.ErrorResponse](t, rec).Code)
}

func TestGatewayOnContactRoutes(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodGet, "/api/contacts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token, authorization denied", decode[apperrors.ErrorResponse](t, rec).Msg)

	rec = do(t, e, http.MethodGet, "/api/contacts", "garbage", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Token is not valid", decode[apperrors.ErrorResponse](t, rec).Msg)
}

func TestLogoutRevokesToken(t *testing.T) {
	e := newTestServer(t)
	alice := login(t, e, "a@x.com", "pw1")

	rec := do(t, e, http.MethodPost, "/api/logout", alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, e, http.MethodGet, "/api/contacts", alice.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/contacts", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:5173")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodDelete)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowHeaders), auth.HeaderToken)
}

func TestHealth(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, e, http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
