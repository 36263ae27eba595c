package devauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderRequiresUserID(t *testing.T) {
	_, err := NewProvider(Config{})
	require.Error(t, err)

	p, err := NewProvider(Config{UserID: "dev-user"})
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestBeginGeneratesLocalCallback(t *testing.T) {
	p, err := NewProvider(Config{UserID: "dev-user"})
	require.NoError(t, err)

	res, err := p.Begin(context.Background())
	require.NoError(t, err)
	assert.Contains(t, res.AuthURL, "/auth/callback?code=dev&state="+res.State)
	assert.NotEmpty(t, res.State)
	assert.NotEmpty(t, res.Verifier)
	assert.NotEmpty(t, res.Nonce)

	other, err := p.Begin(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, res.State, other.State)
}

func TestExchangeAndFetchUserInfo(t *testing.T) {
	p, err := NewProvider(Config{UserID: "dev-user", Name: "Dev User", Email: "dev@example.com"})
	require.NoError(t, err)
	ctx := context.Background()

	tok, err := p.Exchange(ctx, "dev", "whatever")
	require.NoError(t, err)
	assert.Equal(t, "dev-token", tok.AccessToken)

	_, err = p.Exchange(ctx, "", "whatever")
	require.Error(t, err)

	profile, err := p.FetchUserInfo(ctx, tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "dev-user", profile["sub"])
	assert.Equal(t, "Dev User", profile["name"])
	assert.Equal(t, "dev@example.com", profile["email"])
}

func TestFetchUserInfoSparseProfile(t *testing.T) {
	p, err := NewProvider(Config{UserID: "dev-user"})
	require.NoError(t, err)

	profile, err := p.FetchUserInfo(context.Background(), "dev-token")
	require.NoError(t, err)
	assert.Equal(t, "dev-user", profile["sub"])
	assert.NotContains(t, profile, "name")
	assert.NotContains(t, profile, "email")
}
