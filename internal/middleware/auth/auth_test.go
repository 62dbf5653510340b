package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func newContext(authorization string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, code, he.Code)
}

func TestSignTokenRoundTrip(t *testing.T) {
	token, err := SignToken(42, "admin", testSecret)
	require.NoError(t, err)

	c, _ := newContext("Bearer " + token)
	var gotID uint
	var gotRole string
	h := Require(testSecret)(func(c echo.Context) error {
		id, ok := UserID(c)
		require.True(t, ok)
		gotID = id
		gotRole = Role(c)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	require.Equal(t, uint(42), gotID)
	require.Equal(t, "admin", gotRole)
}

func TestRequireRejectsBadTokens(t *testing.T) {
	valid, err := SignToken(1, "user", testSecret)
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  1,
		"role": "user",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})
	expiredToken, err := expired.SignedString(testSecret)
	require.NoError(t, err)

	wrongSecret, err := SignToken(1, "user", []byte("other-secret"))
	require.NoError(t, err)

	cases := map[string]string{
		"missing header": "",
		"no bearer":      valid,
		"garbage token":  "Bearer not-a-jwt",
		"expired token":  "Bearer " + expiredToken,
		"wrong secret":   "Bearer " + wrongSecret,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newContext(header)
			requireHTTPError(t, Require(testSecret)(okHandler)(c), http.StatusUnauthorized)
		})
	}
}

func TestOptionalPassesAnonymous(t *testing.T) {
	c, rec := newContext("")
	h := Optional(testSecret)(func(c echo.Context) error {
		_, ok := UserID(c)
		require.False(t, ok)
		require.Empty(t, Role(c))
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// Invalid tokens are ignored rather than rejected.
	c, rec = newContext("Bearer not-a-jwt")
	require.NoError(t, h(c))
	require.Equal(t, http.StatusOK, rec.Code)

	token, err := SignToken(7, "superAdmin", testSecret)
	require.NoError(t, err)
	c, _ = newContext("Bearer " + token)
	h = Optional(testSecret)(func(c echo.Context) error {
		id, ok := UserID(c)
		require.True(t, ok)
		require.Equal(t, uint(7), id)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
}

func TestRequireRolesGate(t *testing.T) {
	token, err := SignToken(3, "user", testSecret)
	require.NoError(t, err)

	chain := func(roles ...string) echo.HandlerFunc {
		return Require(testSecret)(RequireRoles(roles...)(okHandler))
	}

	c, _ := newContext("Bearer " + token)
	requireHTTPError(t, chain("admin", "superAdmin")(c), http.StatusUnauthorized)

	c, rec := newContext("Bearer " + token)
	require.NoError(t, chain("user")(c))
	require.Equal(t, http.StatusOK, rec.Code)
}
