package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "github.com/artem13815/auth-service/api/http"
	"github.com/artem13815/auth-service/api/http/handlers"
	"github.com/artem13815/auth-service/pkg/auth"
	"github.com/artem13815/auth-service/pkg/health"
	"github.com/artem13815/auth-service/pkg/security/jwt"
)

// memRepo is an in-memory auth.UserRepository for wiring the real use
// case through the full HTTP stack.
type memRepo struct {
	users map[string]auth.User
	next  int64
	err   error
}

func newMemRepo() *memRepo { return &memRepo{users: map[string]auth.User{}} }

func (m *memRepo) Create(ctx context.Context, email, passwordHash string) (auth.User, error) {
	if m.err != nil {
		return auth.User{}, m.err
	}
	email = strings.ToLower(email)
	if _, ok := m.users[email]; ok {
		return auth.User{}, auth.ErrUserAlreadyExists
	}
	m.next++
	u := auth.User{ID: m.next, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now().UTC()}
	m.users[email] = u
	return u, nil
}

func (m *memRepo) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	if m.err != nil {
		return auth.User{}, m.err
	}
	u, ok := m.users[strings.ToLower(email)]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return u, nil
}

type okChecker struct{}

func (okChecker) Name() string                    { return "ok" }
func (okChecker) Check(ctx context.Context) error { return nil }

const (
	testSecret = "test-secret"
	testIssuer = "auth-service-test"
)

func newTestApp(t *testing.T, repo *memRepo) *fiber.App {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	gen := jwt.NewGenerator(testSecret, testIssuer, time.Hour)
	svc := auth.NewAuthService(repo, auth.NewBcryptHasher(4), gen, log)

	app := fiber.New()
	apihttp.Register(app,
		handlers.NewAuthHandler(svc),
		handlers.NewHealthHandler(health.NewService(okChecker{})),
		jwt.NewAuthMiddleware(testSecret, testIssuer),
	)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestRegisterThenLogin(t *testing.T) {
	app := newTestApp(t, newMemRepo())

	resp := postJSON(t, app, "/api/v1/auth/register", fiber.Map{"email": "a@x.com", "password": "pw123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "a@x.com", created.Email)

	resp = postJSON(t, app, "/api/v1/auth/login", fiber.Map{"email": "a@x.com", "password": "pw123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &login))
	require.NotEmpty(t, login.Token)

	// the issued token is verifiable with the shared secret
	claims, err := jwt.Parse(login.Token, testSecret, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.Subject)

	// ...and accepted by the protected endpoint
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	meResp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, meResp.StatusCode)
	assert.JSONEq(t, `{"id":"1"}`, readBody(t, meResp))
}

func TestRegister_NoTokenIssued(t *testing.T) {
	app := newTestApp(t, newMemRepo())

	resp := postJSON(t, app, "/api/v1/auth/register", fiber.Map{"email": "a@x.com", "password": "pw123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotContains(t, readBody(t, resp), "token")
}

func TestRegister_Duplicate(t *testing.T) {
	app := newTestApp(t, newMemRepo())

	resp := postJSON(t, app, "/api/v1/auth/register", fiber.Map{"email": "a@x.com", "password": "pw123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/api/v1/auth/register", fiber.Map{"email": "a@x.com", "password": "other"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"message":"user already exists"}`, readBody(t, resp))
}

func TestRegister_MissingFields(t *testing.T) {
	repo := newMemRepo()
	app := newTestApp(t, repo)

	for _, body := range []fiber.Map{
		{"email": "a@x.com"},
		{"password": "pw123"},
		{},
	} {
		resp := postJSON(t, app, "/api/v1/auth/register", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}
	assert.Empty(t, repo.users)
}

func TestLogin_InvalidCredentialsIndistinguishable(t *testing.T) {
	app := newTestApp(t, newMemRepo())

	resp := postJSON(t, app, "/api/v1/auth/register", fiber.Map{"email": "a@x.com", "password": "pw123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	wrongPw := postJSON(t, app, "/api/v1/auth/login", fiber.Map{"email": "a@x.com", "password": "wrong"})
	noUser := postJSON(t, app, "/api/v1/auth/login", fiber.Map{"email": "nobody@x.com", "password": "pw123"})

	// unknown email and wrong password produce the same status and body
	assert.Equal(t, http.StatusUnauthorized, wrongPw.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, noUser.StatusCode)
	assert.Equal(t, readBody(t, wrongPw), readBody(t, noUser))
}

func TestLogin_StoreFailure(t *testing.T) {
	repo := newMemRepo()
	repo.err = assert.AnError
	app := newTestApp(t, repo)

	resp := postJSON(t, app, "/api/v1/auth/login", fiber.Map{"email": "a@x.com", "password": "pw123"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	// no store details in the response
	assert.NotContains(t, readBody(t, resp), assert.AnError.Error())
}

func TestAuth_MalformedJSON(t *testing.T) {
	app := newTestApp(t, newMemRepo())

	for _, path := range []string{"/api/v1/auth/register", "/api/v1/auth/login"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}
}
