package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uday8116/swift-basket/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]string{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "password123",
	}

	rec, c := env.doRequest(http.MethodPost, "/api/users", payload, "")
	require.NoError(t, env.U.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered authResponse
	decodeBody(t, rec, &registered)
	require.NotZero(t, registered.ID)
	require.Equal(t, models.RoleUser, registered.Role)
	require.NotEmpty(t, registered.Token)

	// The issued token passes the auth middleware.
	rec, c = env.doRequest(http.MethodGet, "/api/users/profile", nil, registered.Token)
	require.NoError(t, env.authed(env.U.GetProfile)(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var profile models.User
	decodeBody(t, rec, &profile)
	require.Equal(t, "test@example.com", profile.Email)

	// Duplicate registration is rejected.
	_, c = env.doRequest(http.MethodPost, "/api/users", payload, "")
	requireHTTPError(t, env.U.Register(c), http.StatusBadRequest)

	// Login round trip.
	rec, c = env.doRequest(http.MethodPost, "/api/users/login", map[string]string{
		"email": "test@example.com", "password": "password123",
	}, "")
	require.NoError(t, env.U.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var loggedIn authResponse
	decodeBody(t, rec, &loggedIn)
	require.Equal(t, registered.ID, loggedIn.ID)
	require.NotEmpty(t, loggedIn.Token)

	// Wrong password.
	_, c = env.doRequest(http.MethodPost, "/api/users/login", map[string]string{
		"email": "test@example.com", "password": "wrong-password",
	}, "")
	requireHTTPError(t, env.U.Login(c), http.StatusUnauthorized)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []map[string]string{
		{"email": "a@example.com", "password": "password123"},           // missing name
		{"name": "A", "email": "not-an-email", "password": "password1"}, // bad email
		{"name": "A", "email": "a@example.com", "password": "short"},    // short password
	}
	for _, payload := range cases {
		_, c := env.doRequest(http.MethodPost, "/api/users", payload, "")
		requireHTTPError(t, env.U.Register(c), http.StatusBadRequest)
	}
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("Old Name", "user@example.com", models.RoleUser)

	payload := map[string]any{
		"name":     "New Name",
		"password": "newpassword",
		"addresses": []map[string]string{
			{"street": "1 Main St", "city": "Pune", "postalCode": "411001", "country": "India"},
		},
	}
	rec, c := env.doRequest(http.MethodPut, "/api/users/profile", payload, env.token(user))
	require.NoError(t, env.authed(env.U.UpdateProfile)(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.User
	decodeBody(t, rec, &updated)
	require.Equal(t, "New Name", updated.Name)
	require.Len(t, updated.Addresses, 1)

	// New password works for login.
	_, c = env.doRequest(http.MethodPost, "/api/users/login", map[string]string{
		"email": "user@example.com", "password": "newpassword",
	}, "")
	require.NoError(t, env.U.Login(c))
}

func TestUserAdministration(t *testing.T) {
	env := newTestEnv(t)
	superAdmin := env.createUser("Root", "root@example.com", models.RoleSuperAdmin)
	user := env.createUser("User", "user@example.com", models.RoleUser)

	rec, c := env.doRequest(http.MethodGet, "/api/users", nil, env.token(superAdmin))
	require.NoError(t, env.authed(env.U.ListUsers)(c))
	var users []models.User
	decodeBody(t, rec, &users)
	require.Len(t, users, 2)

	// Promote the user to retailer.
	rec, c = env.doRequest(http.MethodPut, "/", map[string]string{"role": models.RoleAdmin}, env.token(superAdmin))
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(user.ID))
	require.NoError(t, env.authed(env.U.UpdateUser)(c))

	var promoted models.User
	decodeBody(t, rec, &promoted)
	require.Equal(t, models.RoleAdmin, promoted.Role)

	// Bogus role is rejected.
	_, c = env.doRequest(http.MethodPut, "/", map[string]string{"role": "owner"}, env.token(superAdmin))
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(user.ID))
	requireHTTPError(t, env.authed(env.U.UpdateUser)(c), http.StatusBadRequest)

	// Delete.
	rec, c = env.doRequest(http.MethodDelete, "/", nil, env.token(superAdmin))
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(user.ID))
	require.NoError(t, env.authed(env.U.DeleteUser)(c))
	require.Equal(t, http.StatusOK, rec.Code)

	_, c = env.doRequest(http.MethodDelete, "/", nil, env.token(superAdmin))
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(user.ID))
	requireHTTPError(t, env.authed(env.U.DeleteUser)(c), http.StatusNotFound)
}
