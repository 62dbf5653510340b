package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/uday8116/swift-basket/internal/config"
	"github.com/uday8116/swift-basket/internal/hash"
	"github.com/uday8116/swift-basket/internal/middleware/auth"
	"github.com/uday8116/swift-basket/internal/models"
)

type recordedEvent struct {
	Topic string
	Event map[string]any
}

type fakePublisher struct {
	events []recordedEvent
}

func (f *fakePublisher) PublishEvent(ctx context.Context, topic, key string, event interface{}) error {
	if m, ok := event.(map[string]any); ok {
		f.events = append(f.events, recordedEvent{Topic: topic, Event: m})
	}
	return nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	sent []sentMail
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

type testEnv struct {
	T         *testing.T
	E         *echo.Echo
	DB        *gorm.DB
	JWTSecret []byte
	Cache     *gocache.Cache
	Producer  *fakePublisher
	Mailer    *fakeMailer
	P         *ProductHandler
	O         *OrderHandler
	U         *UserHandler
	H         *HomeContentHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect to in-memory db")
	require.NoError(t, config.Migrate(db), "failed to migrate tables")

	env := &testEnv{
		T:         t,
		E:         echo.New(),
		DB:        db,
		JWTSecret: []byte("test-secret"),
		Cache:     gocache.New(10*time.Minute, time.Hour),
		Producer:  &fakePublisher{},
		Mailer:    &fakeMailer{},
	}

	env.P = &ProductHandler{DB: db, Producer: env.Producer, Cache: env.Cache}
	env.O = &OrderHandler{DB: db, Producer: env.Producer, Mailer: env.Mailer}
	env.U = &UserHandler{DB: db, JWTSecret: env.JWTSecret, Producer: env.Producer}
	env.H = &HomeContentHandler{DB: db}

	return env
}

func (env *testEnv) createUser(name, email, role string) models.User {
	env.T.Helper()

	passwordHash, err := hash.HashPassword("password123")
	require.NoError(env.T, err)

	user := models.User{Name: name, Email: email, PasswordHash: passwordHash, Role: role}
	require.NoError(env.T, env.DB.Create(&user).Error)
	return user
}

func (env *testEnv) token(user models.User) string {
	env.T.Helper()

	token, err := auth.SignToken(user.ID, user.Role, env.JWTSecret)
	require.NoError(env.T, err)
	return token
}

func (env *testEnv) seedProduct(owner uint, name, brand, category string, price float64, stock int, createdAt time.Time) models.Product {
	env.T.Helper()

	product := models.Product{
		UserID:       owner,
		Name:         name,
		Image:        "/images/sample.jpg",
		Images:       []string{},
		Brand:        brand,
		Category:     category,
		Description:  "test product",
		Price:        price,
		CountInStock: stock,
		CreatedAt:    createdAt,
	}
	require.NoError(env.T, env.DB.Create(&product).Error)
	return product
}

// doRequest builds an echo context for a handler-level call. A non-empty
// token is attached as a bearer Authorization header.
func (env *testEnv) doRequest(method, target string, body any, token string) (*httptest.ResponseRecorder, echo.Context) {
	env.T.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(env.T, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

// authed wraps a handler with the auth middleware, the way the router does.
func (env *testEnv) authed(h echo.HandlerFunc) echo.HandlerFunc {
	return auth.Require(env.JWTSecret)(h)
}

func (env *testEnv) optional(h echo.HandlerFunc) echo.HandlerFunc {
	return auth.Optional(env.JWTSecret)(h)
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
