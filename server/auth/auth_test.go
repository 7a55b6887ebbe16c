package auth

import (
	"context"
	"testing"
	"time"

	"github.com/Luismorlan/socialmux/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(t *testing.T) *Issuer {
	db, _ := utils.CreateTempDB(t)
	issuer, err := NewIssuer("test-secret", time.Hour, NewDBTokenStore(db))
	require.NoError(t, err)
	return issuer
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong horse"))
}

func TestNewIssuerValidation(t *testing.T) {
	_, err := NewIssuer("", time.Hour, nil)
	assert.Error(t, err)
	_, err = NewIssuer("secret", 0, nil)
	assert.Error(t, err)
}

func TestIssueAndVerify(t *testing.T) {
	ctx := context.Background()
	issuer := newTestIssuer(t)

	token, err := issuer.Issue(ctx, 7)
	require.NoError(t, err)

	id, err := issuer.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), id.UserId)
	assert.NotEmpty(t, id.TokenId)

	_, err = issuer.Verify(ctx, token+"x")
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = issuer.Verify(ctx, "garbage")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	ctx := context.Background()
	issuer := newTestIssuer(t)

	claims := &Claims{UserID: "7", RegisteredClaims: jwt.RegisteredClaims{
		ID:        "forged",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other"))
	require.NoError(t, err)

	_, err = issuer.Verify(ctx, forged)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestVerifyRejectsExpired(t *testing.T) {
	ctx := context.Background()
	issuer := newTestIssuer(t)

	token, err := issuer.Issue(ctx, 1)
	require.NoError(t, err)

	issuer.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = issuer.Verify(ctx, token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()
	issuer := newTestIssuer(t)

	first, err := issuer.Issue(ctx, 1)
	require.NoError(t, err)
	second, err := issuer.Issue(ctx, 1)
	require.NoError(t, err)
	other, err := issuer.Issue(ctx, 2)
	require.NoError(t, err)

	id, err := issuer.Verify(ctx, first)
	require.NoError(t, err)
	require.NoError(t, issuer.Revoke(ctx, id))

	_, err = issuer.Verify(ctx, first)
	assert.True(t, errors.Is(err, ErrInvalidToken))
	_, err = issuer.Verify(ctx, second)
	assert.NoError(t, err)

	require.NoError(t, issuer.RevokeAll(ctx, 1))
	_, err = issuer.Verify(ctx, second)
	assert.True(t, errors.Is(err, ErrInvalidToken))
	_, err = issuer.Verify(ctx, other)
	assert.NoError(t, err)
}

func TestRedisKeyParser(t *testing.T) {
	p := &RedisKeyParser{delimiter: "__"}

	k, err := p.EncodeTokenKey(12, "token-id")
	assert.Nil(t, err)
	assert.Equal(t, "12__token-id", k)

	_, err = p.EncodeTokenKey(12, "bad__id")
	assert.NotNil(t, err)
	_, err = p.EncodeTokenKey(12, "")
	assert.NotNil(t, err)

	uId, tId, err := p.DecodeTokenKey(k)
	assert.Nil(t, err)
	assert.Equal(t, uint(12), uId)
	assert.Equal(t, "token-id", tId)

	_, _, err = p.DecodeTokenKey("no-delimiter")
	assert.NotNil(t, err)
	_, _, err = p.DecodeTokenKey("abc__token")
	assert.NotNil(t, err)

	assert.Equal(t, "12__*", p.UserKeyPattern(12))
}
