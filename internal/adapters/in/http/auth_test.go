package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"resale/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func mintToken(t *testing.T, secret []byte, subject string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func runMiddleware(t *testing.T, authorization string) (*httptest.ResponseRecorder, kernel.UserID, bool) {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		request.Header.Set(echo.HeaderAuthorization, authorization)
	}
	recorder := httptest.NewRecorder()
	ctx := echo.New().NewContext(request, recorder)

	var (
		principal kernel.UserID
		reached   bool
	)
	next := func(c echo.Context) error {
		reached = true
		principal, _ = principalFrom(c)
		return c.NoContent(http.StatusOK)
	}

	require.NoError(t, NewAuthMiddleware(testSecret)(next)(ctx))
	return recorder, principal, reached
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token := mintToken(t, testSecret, "101")

	recorder, principal, reached := runMiddleware(t, "Bearer "+token)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, reached)
	assert.Equal(t, kernel.UserID(101), principal)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	recorder, _, reached := runMiddleware(t, "")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, reached)
}

func TestAuthMiddleware_WrongScheme(t *testing.T) {
	recorder, _, reached := runMiddleware(t, "Basic dXNlcjpwYXNz")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, reached)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	token := mintToken(t, []byte("other-secret"), "101")

	recorder, _, reached := runMiddleware(t, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, reached)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "101",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)

	recorder, _, reached := runMiddleware(t, "Bearer "+signed)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, reached)
}

func TestAuthMiddleware_NonNumericSubject(t *testing.T) {
	token := mintToken(t, testSecret, "not-a-user-id")

	recorder, _, reached := runMiddleware(t, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, reached)
}

func TestAuthMiddleware_NoneAlgorithmRejected(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "101"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	recorder, _, reached := runMiddleware(t, "Bearer "+signed)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, reached)
}
