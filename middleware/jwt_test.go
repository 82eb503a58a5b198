package middleware

import (
	"lms/config"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOptionalAuthApp() *fiber.App {
	app := fiber.New()
	app.Get("/page", OptionalJWTMiddleware, func(c *fiber.Ctx) error {
		if userID, ok := c.Locals("userId").(uint); ok {
			return c.JSON(fiber.Map{"user_id": userID})
		}
		return c.JSON(fiber.Map{"user_id": nil})
	})
	return app
}

func TestOptionalJWTPopulatesUserIdWithValidToken(t *testing.T) {
	config.LoadConfig()
	app := newOptionalAuthApp()

	token, err := GenerateJWT(42, "Student", "student", "student@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/page", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := make([]byte, 64)
	n, _ := resp.Body.Read(body)
	assert.Contains(t, string(body[:n]), `"user_id":42`)
}

func TestOptionalJWTLetsAnonymousRequestsThrough(t *testing.T) {
	config.LoadConfig()
	app := newOptionalAuthApp()

	req := httptest.NewRequest("GET", "/page", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := make([]byte, 64)
	n, _ := resp.Body.Read(body)
	assert.Contains(t, string(body[:n]), `"user_id":null`)
}

func TestOptionalJWTIgnoresGarbageTokens(t *testing.T) {
	config.LoadConfig()
	app := newOptionalAuthApp()

	req := httptest.NewRequest("GET", "/page", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)

	// A bad token never blocks a public page, it just stays anonymous
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := make([]byte, 64)
	n, _ := resp.Body.Read(body)
	assert.Contains(t, string(body[:n]), `"user_id":null`)
}
