package session

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	m := NewManager("test-secret", TokenTTL, false)
	userId := uuid.New()

	token, err := m.Generate(userId)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userId, parsed)
}

func TestParseExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, false)

	token, err := m.Generate(uuid.New())
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseWrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", TokenTTL, false)
	verifier := NewManager("secret-b", TokenTTL, false)

	token, err := issuer.Generate(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	m := NewManager("test-secret", TokenTTL, false)

	for _, tokenStr := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.Parse(tokenStr)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestCookie(t *testing.T) {
	m := NewManager("test-secret", TokenTTL, true)

	cookie := m.Cookie("signed-token")
	assert.Equal(t, CookieName, cookie.Name)
	assert.Equal(t, "signed-token", cookie.Value)
	assert.True(t, cookie.HTTPOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, fiber.CookieSameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, int(TokenTTL.Seconds()), cookie.MaxAge)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), cookie.Expires, time.Minute)
}

func TestClearCookie(t *testing.T) {
	m := NewManager("test-secret", TokenTTL, false)

	cookie := m.ClearCookie()
	assert.Equal(t, CookieName, cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
	assert.True(t, cookie.Expires.Before(time.Now()))
}
