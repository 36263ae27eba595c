package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/order-wizard/ow-api/internal/errors"
)

func TestIdentityExtractorFullProfile(t *testing.T) {
	e := NewIdentityExtractor(IdentityExtractorOptions{})

	identity, err := e.Extract(map[string]any{
		"sub":   "abc123",
		"name":  "Jane",
		"email": "jane@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "abc123", identity.ID)
	require.NotNil(t, identity.Name)
	assert.Equal(t, "Jane", *identity.Name)
	require.NotNil(t, identity.Email)
	assert.Equal(t, "jane@example.com", *identity.Email)
}

func TestIdentityExtractorFallbackChains(t *testing.T) {
	e := NewIdentityExtractor(IdentityExtractorOptions{})

	t.Run("numeric id claim", func(t *testing.T) {
		identity, err := e.Extract(map[string]any{"id": float64(42)})
		require.NoError(t, err)
		assert.Equal(t, "42", identity.ID)
		assert.Nil(t, identity.Name)
		assert.Nil(t, identity.Email)
	})

	t.Run("nested user id", func(t *testing.T) {
		identity, err := e.Extract(map[string]any{
			"user": map[string]any{"id": "nested-7"},
		})
		require.NoError(t, err)
		assert.Equal(t, "nested-7", identity.ID)
	})

	t.Run("sub wins over id", func(t *testing.T) {
		identity, err := e.Extract(map[string]any{
			"sub": "primary",
			"id":  "secondary",
		})
		require.NoError(t, err)
		assert.Equal(t, "primary", identity.ID)
	})

	t.Run("preferred_username when name absent", func(t *testing.T) {
		identity, err := e.Extract(map[string]any{
			"sub":                "u1",
			"preferred_username": "jdoe",
		})
		require.NoError(t, err)
		require.NotNil(t, identity.Name)
		assert.Equal(t, "jdoe", *identity.Name)
	})

	t.Run("login as last name fallback", func(t *testing.T) {
		identity, err := e.Extract(map[string]any{
			"sub":   "u1",
			"login": "octocat",
		})
		require.NoError(t, err)
		require.NotNil(t, identity.Name)
		assert.Equal(t, "octocat", *identity.Name)
	})
}

func TestIdentityExtractorNoSubject(t *testing.T) {
	e := NewIdentityExtractor(IdentityExtractorOptions{})

	tests := []struct {
		name    string
		profile map[string]any
	}{
		{"empty profile", map[string]any{}},
		{"nil profile", nil},
		{"null claims", map[string]any{"sub": nil, "id": nil}},
		{"empty string subject", map[string]any{"sub": ""}},
		{"unrelated claims only", map[string]any{"locale": "en"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Extract(tt.profile)
			require.Error(t, err)
			assert.True(t, apperrors.IsAuth(err))
		})
	}
}

func TestIdentityExtractorNonStringClaims(t *testing.T) {
	e := NewIdentityExtractor(IdentityExtractorOptions{})

	// Numbers and booleans are only meaningful for the subject. A numeric
	// name or boolean email claim is skipped, not rendered.
	identity, err := e.Extract(map[string]any{
		"sub":   "u1",
		"name":  float64(42),
		"email": true,
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", identity.ID)
	assert.Nil(t, identity.Name)
	assert.Nil(t, identity.Email)

	// The name chain falls through non-string claims to the next match.
	identity, err = e.Extract(map[string]any{
		"sub":                "u1",
		"name":               float64(42),
		"preferred_username": "jdoe",
	})
	require.NoError(t, err)
	require.NotNil(t, identity.Name)
	assert.Equal(t, "jdoe", *identity.Name)

	// A boolean subject is not an identifier.
	_, err = e.Extract(map[string]any{"sub": true})
	require.Error(t, err)
	assert.True(t, apperrors.IsAuth(err))
}

func TestStringifyScalar(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"plain", "plain"},
		{float64(42), "42"},
		{float64(4.5), "4.5"},
		{int64(7), "7"},
		{true, ""},
		{map[string]any{"k": "v"}, ""},
		{[]any{"a"}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stringifyScalar(tt.in))
	}
}
