package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"waypost/internal/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestApp(t *testing.T, tokens *auth.TokenManager) (*fiber.App, *auth.RequestAuth) {
	t.Helper()
	captured := &auth.RequestAuth{}
	app := fiber.New()
	app.Use(Authenticate(tokens))
	app.Get("/probe", func(c *fiber.Ctx) error {
		*captured = RequestAuthFrom(c)
		// context and locals must agree
		assert.Equal(t, *captured, auth.FromContext(c.UserContext()))
		return c.SendStatus(fiber.StatusOK)
	})
	return app, captured
}

func TestAuthenticate_AbsentHeaderPassesThrough(t *testing.T) {
	t.Parallel()

	app, captured := authTestApp(t, auth.NewTokenManager("middleware-secret"))
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, auth.OutcomeAbsent, captured.Outcome)
	assert.False(t, captured.IsAuthenticated())
}

func TestAuthenticate_InvalidTokenPassesThrough(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
	}{
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong scheme", "Basic YWRhOmh1bnRlcjIy"},
		{"empty bearer", "Bearer "},
	}

	app, captured := authTestApp(t, auth.NewTokenManager("middleware-secret"))
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			req.Header.Set(fiber.HeaderAuthorization, tt.header)

			resp, err := app.Test(req)
			require.NoError(t, err)
			// invalid credentials never reject at the middleware
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, auth.OutcomeInvalid, captured.Outcome)
			assert.False(t, captured.IsAuthenticated())
		})
	}
}

func TestAuthenticate_ValidToken(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenManager("middleware-secret")
	token, err := tokens.Issue("64f1c0ffee0000000000abcd", "ada@example.com")
	require.NoError(t, err)

	app, captured := authTestApp(t, tokens)
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, auth.OutcomeValid, captured.Outcome)
	assert.Equal(t, "64f1c0ffee0000000000abcd", captured.UserID)
	assert.Equal(t, "ada@example.com", captured.Email)
	assert.True(t, captured.IsAuthenticated())
}

func TestAuthenticate_TokenFromOtherSecretIsInvalid(t *testing.T) {
	t.Parallel()

	otherTokens := auth.NewTokenManager("some-other-secret")
	token, err := otherTokens.Issue("64f1c0ffee0000000000abcd", "ada@example.com")
	require.NoError(t, err)

	app, captured := authTestApp(t, auth.NewTokenManager("middleware-secret"))
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, auth.OutcomeInvalid, captured.Outcome)
	assert.Empty(t, captured.UserID)
}
