package repository

import (
	"context"
	"errors"
	"time"

	redisapp "photo_vitrine/internal/storage/redis"

	"github.com/redis/go-redis/v9"
)

// Белый список refresh токенов витрины: токен действителен, пока его
// ключ жив в redis. TTL ключа совпадает со сроком жизни токена, поэтому
// просроченные сессии исчезают без отдельной уборки.
const (
	refreshKeyPrefix = "vitrine:refresh:"
	refreshKeyValue  = "active"

	revokeScanBatch = 100
)

type RedisTokenRepo struct {
	Client *redisapp.Client
}

func NewRedisTokenRepo(client *redisapp.Client) *RedisTokenRepo {
	return &RedisTokenRepo{Client: client}
}

func (r *RedisTokenRepo) SaveRefreshToken(ctx context.Context, userID, token string, exp time.Duration) error {
	return r.Client.Set(ctx, refreshKey(userID, token), refreshKeyValue, exp).Err()
}

// GetRefreshToken проверяет присутствие токена в белом списке
func (r *RedisTokenRepo) GetRefreshToken(ctx context.Context, userID, token string) (bool, error) {
	err := r.Client.Get(ctx, refreshKey(userID, token)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *RedisTokenRepo) DeleteRefreshToken(ctx context.Context, userID, token string) error {
	return r.Client.Del(ctx, refreshKey(userID, token)).Err()
}

// DeleteAllUserTokens отзывает все сессии пользователя. Обход через SCAN:
// KEYS на большом словаре блокирует redis целиком.
func (r *RedisTokenRepo) DeleteAllUserTokens(ctx context.Context, userID string) error {
	var cursor uint64
	for {
		keys, next, err := r.Client.Scan(ctx, cursor, refreshKey(userID, "*"), revokeScanBatch).Result()
		if err != nil {
			return err
		}

		if len(keys) > 0 {
			if err := r.Client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}

		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// refreshKey строит ключ vitrine:refresh:<userID>:<token>; "*" вместо
// токена дает шаблон всех сессий пользователя
func refreshKey(userID, token string) string {
	return refreshKeyPrefix + userID + ":" + token
}
