package auth

import (
	"context"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrInvalidToken is returned for malformed, expired or revoked tokens.
var ErrInvalidToken = errors.New("invalid token")

// Claims carried by an access token. The token id (jti) is what the
// TokenStore tracks.
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Identity is what a verified token resolves to.
type Identity struct {
	UserId  uint
	TokenId string
}

// Issuer signs and verifies HS256 access tokens and records them in a
// TokenStore.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	store  TokenStore
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration, store TokenStore) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("empty token secret")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl should be > 0")
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, store: store, now: time.Now}, nil
}

// Issue creates and records a new token for userId.
func (i *Issuer) Issue(ctx context.Context, userId uint) (string, error) {
	now := i.now()
	expiresAt := now.Add(i.ttl)
	tokenId := uuid.New().String()

	claims := &Claims{
		UserID: strconv.FormatUint(uint64(userId), 10),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenId,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	if err := i.store.Save(ctx, userId, tokenId, expiresAt); err != nil {
		return "", err
	}
	return signed, nil
}

// Verify checks signature, expiry and that the token hasn't been revoked.
func (i *Issuer) Verify(ctx context.Context, tokenStr string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil {
		return Identity{}, errors.Wrap(ErrInvalidToken, err.Error())
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return Identity{}, ErrInvalidToken
	}
	userId, err := strconv.ParseUint(claims.UserID, 10, 64)
	if err != nil || userId == 0 {
		return Identity{}, ErrInvalidToken
	}

	exists, err := i.store.Exists(ctx, uint(userId), claims.ID)
	if err != nil {
		return Identity{}, err
	}
	if !exists {
		return Identity{}, errors.Wrap(ErrInvalidToken, "token revoked")
	}
	return Identity{UserId: uint(userId), TokenId: claims.ID}, nil
}

// Revoke invalidates a single token.
func (i *Issuer) Revoke(ctx context.Context, id Identity) error {
	return i.store.Delete(ctx, id.UserId, id.TokenId)
}

// RevokeAll invalidates every token of a user.
func (i *Issuer) RevokeAll(ctx context.Context, userId uint) error {
	return i.store.DeleteAll(ctx, userId)
}
