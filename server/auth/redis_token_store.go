package auth

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

const (
	// Redis only has string type, there is no boolean or int, so we use "1" to represent true
	RedisTrue = "1"

	scanBatchSize = 100
)

// RedisTokenStore stores one key per token, expiring together with the token.
type RedisTokenStore struct {
	inner     *redis.Client
	keyParser RedisKeyParser
}

// GetRedisTokenStore connects to the redis server from env and checks it is
// reachable.
func GetRedisTokenStore(ctx context.Context) (*RedisTokenStore, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
		Password: os.Getenv("REDIS_PASSWD"),
		DB:       0, // use default DB
	})
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		return nil, errors.Wrap(err, "ping redis")
	}
	return NewRedisTokenStore(redisClient), nil
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{
		inner:     client,
		keyParser: RedisKeyParser{delimiter: "__"},
	}
}

type RedisKeyParser struct {
	delimiter string
}

func (r RedisKeyParser) DecodeTokenKey(key string) (uint, string, error) {
	splits := strings.Split(key, r.delimiter)
	if (len(splits)) != 2 {
		return 0, "", fmt.Errorf("invalid key: %s", key)
	}
	userId, err := strconv.ParseUint(splits[0], 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid user id in key: %s", key)
	}
	return uint(userId), splits[1], nil
}

func (r RedisKeyParser) ValidateId(id string) bool {
	return id != "" && !strings.Contains(id, r.delimiter)
}

func (r RedisKeyParser) EncodeTokenKey(userId uint, tokenId string) (string, error) {
	if !r.ValidateId(tokenId) {
		return "", fmt.Errorf("invalid tokenId: %s", tokenId)
	}
	return fmt.Sprintf("%d%s%s", userId, r.delimiter, tokenId), nil
}

// UserKeyPattern matches every token key of a user.
func (r RedisKeyParser) UserKeyPattern(userId uint) string {
	return fmt.Sprintf("%d%s*", userId, r.delimiter)
}

func (s *RedisTokenStore) Save(ctx context.Context, userId uint, tokenId string, expiresAt time.Time) error {
	key, err := s.keyParser.EncodeTokenKey(userId, tokenId)
	if err != nil {
		return err
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return errors.New("token already expired")
	}
	return errors.Wrap(s.inner.Set(ctx, key, RedisTrue, ttl).Err(), "save token in redis")
}

func (s *RedisTokenStore) Exists(ctx context.Context, userId uint, tokenId string) (bool, error) {
	key, err := s.keyParser.EncodeTokenKey(userId, tokenId)
	if err != nil {
		return false, nil
	}
	n, err := s.inner.Exists(ctx, key).Result()
	if err != nil {
		return false, errors.Wrap(err, "check token in redis")
	}
	return n == 1, nil
}

func (s *RedisTokenStore) Delete(ctx context.Context, userId uint, tokenId string) error {
	key, err := s.keyParser.EncodeTokenKey(userId, tokenId)
	if err != nil {
		return err
	}
	return errors.Wrap(s.inner.Del(ctx, key).Err(), "delete token in redis")
}

func (s *RedisTokenStore) DeleteAll(ctx context.Context, userId uint) error {
	var cursor uint64
	for {
		keys, next, err := s.inner.Scan(ctx, cursor, s.keyParser.UserKeyPattern(userId), scanBatchSize).Result()
		if err != nil {
			return errors.Wrap(err, "scan tokens in redis")
		}
		if len(keys) > 0 {
			if err := s.inner.Del(ctx, keys...).Err(); err != nil {
				return errors.Wrap(err, "delete tokens in redis")
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
