package middleware

import (
	"RestoBook/internal/entity"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestOptionalTokenMiddleware(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	m := New(log)

	var seen *entity.UserLoginData
	app := fiber.New()
	app.Post("/ask", m.NewOptionalTokenMiddleware, func(ctx *fiber.Ctx) error {
		seen = nil
		if user, ok := ctx.Locals("user").(entity.UserLoginData); ok {
			seen = &user
		}
		return ctx.SendStatus(fiber.StatusOK)
	})

	t.Run("anonymous request passes without identity", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/ask", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Nil(t, seen)
	})

	t.Run("valid token sets identity", func(t *testing.T) {
		token := signTestToken(t, "test-secret", jwt.MapClaims{
			"id":       "u1",
			"email":    "u1@example.com",
			"username": "u1",
			"exp":      time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest("POST", "/ask", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.NotNil(t, seen)
		assert.Equal(t, "u1", seen.ID)
	})

	t.Run("garbage token stays anonymous", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/ask", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Nil(t, seen)
	})

	t.Run("wrongly signed token stays anonymous", func(t *testing.T) {
		token := signTestToken(t, "other-secret", jwt.MapClaims{
			"id":       "u1",
			"email":    "u1@example.com",
			"username": "u1",
			"exp":      time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest("POST", "/ask", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Nil(t, seen)
	})
}

func TestTokenMiddlewareRejectsMissingHeader(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	m := New(log)

	app := fiber.New()
	app.Get("/history", m.NewTokenMiddleware, func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/history", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
