package test

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	v1 "taskhub/internal/api/v1"
	"taskhub/internal/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventStreamRequiresToken(t *testing.T) {
	app := CreateTestApp()
	v1.RegisterEventRoutes(app, ws.NewHub())
	_, token := RegisterAndLogin(t, app, fmt.Sprintf("wsuser_%d", time.Now().UnixNano()))

	// No credential: rejected before any upgrade handling.
	req := httptest.NewRequest("GET", "/ws", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 401, resp.StatusCode)

	// Garbage query token: still rejected.
	req = httptest.NewRequest("GET", "/ws?token=not-a-jwt", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 401, resp.StatusCode)

	// Valid query token on a plain GET passes auth and stops at the
	// upgrade gate instead.
	req = httptest.NewRequest("GET", "/ws?token="+token, nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 426, resp.StatusCode)

	// Header credential works the same way.
	req = httptest.NewRequest("GET", "/ws", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 426, resp.StatusCode)
}
