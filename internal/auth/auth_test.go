package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestIssueAndParse(t *testing.T) {
	s := NewService("secret", time.Hour)

	tok, err := s.Issue("user-1", true)
	require.NoError(t, err)

	c, err := s.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", c.Sub)
	assert.True(t, c.Admin)
	assert.Equal(t, "adaptiq", c.Issuer)
}

func TestParseRejects(t *testing.T) {
	s := NewService("secret", time.Hour)
	tok, err := s.Issue("user-1", false)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewService("other", time.Hour).Parse(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewService("secret", time.Hour, WithClock(func() time.Time { return time.Now().Add(2 * time.Hour) }))
		_, err := later.Parse(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := s.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
			Sub:              "user-1",
			RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer},
		})
		str, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = s.Parse(str)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestDefaultTTL(t *testing.T) {
	s := NewService("secret", 0)
	assert.Equal(t, 24*time.Hour, s.ttl)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.NoError(t, CheckPassword(hash, "hunter2"))
	assert.True(t, errors.Is(CheckPassword(hash, "wrong"), ErrInvalidCredentials))
}

func TestMiddleware(t *testing.T) {
	s := NewService("secret", time.Hour)
	var gotSub string
	h := Middleware(s)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub = SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"msg":"missing bearer token"}`, rec.Body.String())
	})

	t.Run("bad token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nope")
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid", func(t *testing.T) {
		tok, err := s.Issue("user-9", false)
		require.NoError(t, err)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "user-9", gotSub)
	})
}

func TestContextHelpersEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, ClaimsFromContext(req.Context()))
	assert.Empty(t, SubjectFromContext(req.Context()))
}
