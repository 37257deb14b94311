package test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	app := CreateTestApp()

	username := fmt.Sprintf("testuser_%d", time.Now().UnixNano())
	status, result := DoJSON(t, app, "POST", "/register", "", map[string]string{
		"username": username,
		"password": "secret123",
		"email":    username + "@example.com",
	})

	require.Equal(t, 201, status)
	data, ok := result["data"].(map[string]interface{})
	require.True(t, ok, "expected data field in response")
	assert.Greater(t, data["id"].(float64), float64(0))
}

func TestRegisterWithoutEmail(t *testing.T) {
	app := CreateTestApp()

	username := fmt.Sprintf("noemail_%d", time.Now().UnixNano())
	status, _ := DoJSON(t, app, "POST", "/register", "", map[string]string{
		"username": username,
		"password": "secret123",
	})

	assert.Equal(t, 201, status)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	app := CreateTestApp()

	username := fmt.Sprintf("dupe_%d", time.Now().UnixNano())
	body := map[string]string{
		"username": username,
		"password": "secret123",
	}

	status, _ := DoJSON(t, app, "POST", "/register", "", body)
	require.Equal(t, 201, status)

	status, result := DoJSON(t, app, "POST", "/register", "", body)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Username already exists", result["message"])
}

func TestRegisterMissingFields(t *testing.T) {
	app := CreateTestApp()

	status, _ := DoJSON(t, app, "POST", "/register", "", map[string]string{
		"username": fmt.Sprintf("nopass_%d", time.Now().UnixNano()),
	})
	assert.Equal(t, 400, status)

	status, _ = DoJSON(t, app, "POST", "/register", "", map[string]string{
		"password": "secret123",
	})
	assert.Equal(t, 400, status)
}

func TestLogin(t *testing.T) {
	app := CreateTestApp()

	username := fmt.Sprintf("login_%d", time.Now().UnixNano())
	status, _ := DoJSON(t, app, "POST", "/register", "", map[string]string{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, 201, status)

	status, result := DoJSON(t, app, "POST", "/login", "", map[string]string{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, 200, status)

	data, ok := result["data"].(map[string]interface{})
	require.True(t, ok, "expected data field in login response")
	assert.NotEmpty(t, data["token"])
}

func TestLoginWrongPassword(t *testing.T) {
	app := CreateTestApp()

	username := fmt.Sprintf("wrongpw_%d", time.Now().UnixNano())
	status, _ := DoJSON(t, app, "POST", "/register", "", map[string]string{
		"username": username,
		"password": "rightpw",
	})
	require.Equal(t, 201, status)

	status, _ = DoJSON(t, app, "POST", "/login", "", map[string]string{
		"username": username,
		"password": "wrongpw",
	})
	assert.Equal(t, 401, status)
}

func TestAuthenticatedRoutesRejectMissingToken(t *testing.T) {
	app := CreateTestApp()

	for _, route := range []struct {
		method string
		path   string
	}{
		{"GET", "/tasks/"},
		{"POST", "/tasks/create"},
		{"PUT", "/tasks/update/1"},
		{"DELETE", "/tasks/delete/1"},
		{"GET", "/profile"},
		{"PUT", "/upload-picture"},
		{"GET", "/users"},
	} {
		status, _ := DoJSON(t, app, route.method, route.path, "", nil)
		assert.Equal(t, 401, status, "%s %s without token", route.method, route.path)
	}
}

func TestAuthenticatedRoutesRejectGarbageToken(t *testing.T) {
	app := CreateTestApp()

	status, _ := DoJSON(t, app, "GET", "/tasks/", "not-a-jwt", nil)
	assert.Equal(t, 401, status)
}
