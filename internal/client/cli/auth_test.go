package cli

import (
	"context"
	"io"
	"testing"

	"github.com/dmitrijs2005/indexkeeper/internal/client/client"
	"github.com/dmitrijs2005/indexkeeper/internal/server/auth"
	"github.com/dmitrijs2005/indexkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAPI struct {
	fakeAPI
}

func TestLogin_MintsTokenAndAttachesClient(t *testing.T) {
	oldSecret := getSecret
	oldClient := newAPIClient
	defer func() {
		getSecret = oldSecret
		newAPIClient = oldClient
	}()

	getSecret = func(prompt string, w io.Writer) ([]byte, error) {
		return []byte("shared-secret"), nil
	}

	var gotBaseURL, gotToken string
	api := &recordingAPI{}
	newAPIClient = func(baseURL, token string) apiClient {
		gotBaseURL = baseURL
		gotToken = token
		return api
	}

	app, out := newTestApp("indexsets:read:*, indexsets:delete:abc\n", nil)

	require.NoError(t, app.Login())

	assert.Equal(t, "http://localhost:9200", gotBaseURL)
	assert.True(t, app.isLoggedIn())
	assert.Contains(t, out.String(), "Token minted for admin")

	// The minted token must verify against the same secret and carry the
	// entered grants.
	checker, err := auth.CheckerFromToken(gotToken, []byte("shared-secret"))
	require.NoError(t, err)
	assert.True(t, checker.IsPermitted("indexsets:read", "whatever"))
	assert.True(t, checker.IsPermitted("indexsets:delete", "abc"))
	assert.False(t, checker.IsPermitted("indexsets:delete", "other"))
}

func TestLogin_EmptyGrantsMeansFullAccess(t *testing.T) {
	oldSecret := getSecret
	oldClient := newAPIClient
	defer func() {
		getSecret = oldSecret
		newAPIClient = oldClient
	}()

	getSecret = func(prompt string, w io.Writer) ([]byte, error) {
		return []byte("shared-secret"), nil
	}

	var gotToken string
	newAPIClient = func(baseURL, token string) apiClient {
		gotToken = token
		return &fakeAPI{}
	}

	app, _ := newTestApp("\n", nil)

	require.NoError(t, app.Login())

	checker, err := auth.CheckerFromToken(gotToken, []byte("shared-secret"))
	require.NoError(t, err)
	assert.True(t, checker.IsPermitted("indexsets:edit", "any"))
}

func TestLogout(t *testing.T) {
	app, out := newTestApp("", &fakeAPI{})

	app.Logout()

	assert.False(t, app.isLoggedIn())
	assert.Contains(t, out.String(), "Logged out")
}

func TestRoot_HelpAndExit(t *testing.T) {
	app, out := newTestApp("help\nexit\n", nil)

	app.Root(context.Background())

	assert.Contains(t, out.String(), "Available commands: login, exit")
	assert.Contains(t, out.String(), "Bye!")
}

func TestRoot_UnknownCommand(t *testing.T) {
	app, out := newTestApp("frobnicate\nexit\n", nil)

	app.Root(context.Background())

	assert.Contains(t, out.String(), "Unknown command: frobnicate")
}

func TestRoot_ListThroughLoop(t *testing.T) {
	api := &fakeAPI{listResult: &client.ListResult{
		Count:     1,
		IndexSets: []*models.IndexSetSummary{{ID: "a", Title: "Main"}},
	}}
	app, out := newTestApp("list\nexit\n", api)

	app.Root(context.Background())

	assert.Contains(t, out.String(), "1 index set(s)")
}
