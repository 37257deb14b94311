package test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchUsersByPrefix(t *testing.T) {
	app := CreateTestApp()

	marker := fmt.Sprintf("sr%d", time.Now().UnixNano()%1e9)
	_, token := RegisterAndLogin(t, app, marker+"alice")
	RegisterAndLogin(t, app, marker+"albert")
	RegisterAndLogin(t, app, marker+"bob")

	status, result := DoJSON(t, app, "GET", "/users?search="+marker+"al", token, nil)
	require.Equal(t, 200, status)

	users := result["data"].([]interface{})
	require.Len(t, users, 2)
	for _, raw := range users {
		u := raw.(map[string]interface{})
		assert.True(t, strings.HasPrefix(u["username"].(string), marker+"al"))
		assert.NotNil(t, u["id"])
		assert.NotNil(t, u["email"])
	}
}

func TestSearchUsersCaseInsensitive(t *testing.T) {
	app := CreateTestApp()

	marker := fmt.Sprintf("ci%d", time.Now().UnixNano()%1e9)
	_, token := RegisterAndLogin(t, app, marker+"carla")

	status, result := DoJSON(t, app, "GET", "/users?search="+strings.ToUpper(marker)+"CAR", token, nil)
	require.Equal(t, 200, status)

	users := result["data"].([]interface{})
	require.Len(t, users, 1)
	assert.Equal(t, marker+"carla", users[0].(map[string]interface{})["username"])
}

func TestSearchUsersEmptyPrefixReturnsAll(t *testing.T) {
	app := CreateTestApp()

	suffix := time.Now().UnixNano()
	_, token := RegisterAndLogin(t, app, fmt.Sprintf("all1_%d", suffix))
	RegisterAndLogin(t, app, fmt.Sprintf("all2_%d", suffix))

	status, result := DoJSON(t, app, "GET", "/users", token, nil)
	require.Equal(t, 200, status)
	assert.GreaterOrEqual(t, len(result["data"].([]interface{})), 2)
}

func TestSearchUsersLimit(t *testing.T) {
	app := CreateTestApp()

	marker := fmt.Sprintf("lim%d", time.Now().UnixNano()%1e9)
	_, token := RegisterAndLogin(t, app, marker+"one")
	RegisterAndLogin(t, app, marker+"two")
	RegisterAndLogin(t, app, marker+"three")

	status, result := DoJSON(t, app, "GET", "/users?search="+marker+"&limit=2", token, nil)
	require.Equal(t, 200, status)
	assert.Len(t, result["data"].([]interface{}), 2)
}

func TestSearchUsersNoMatch(t *testing.T) {
	app := CreateTestApp()

	_, token := RegisterAndLogin(t, app, fmt.Sprintf("lonely_%d", time.Now().UnixNano()))

	status, result := DoJSON(t, app, "GET", "/users?search=zz_no_such_prefix_zz", token, nil)
	require.Equal(t, 200, status)
	assert.Empty(t, result["data"].([]interface{}))
}
