// Package cache implementa la caché de usuarios autenticados sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

var _ ports.UserCache = (*RedisUserCache)(nil)

// cachedUser vista serializada del usuario. No incluye hash de contraseña ni invitación.
type cachedUser struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         entity.Role `json:"role"`
	ProfileImage string      `json:"profileImage,omitempty"`
	IsVerified   bool        `json:"isVerified"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// RedisUserCache guarda usuarios bajo la clave user:<id> con TTL.
type RedisUserCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisUserCache conecta y hace ping.
func NewRedisUserCache(ctx context.Context, redisURL string, ttl time.Duration) (*RedisUserCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conectar a redis: %w", err)
	}
	return NewRedisUserCacheFromClient(client, ttl), nil
}

// NewRedisUserCacheFromClient usa un cliente ya construido.
func NewRedisUserCacheFromClient(client *redis.Client, ttl time.Duration) *RedisUserCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisUserCache{client: client, ttl: ttl}
}

// Close cierra la conexión.
func (c *RedisUserCache) Close() error {
	return c.client.Close()
}

func key(id string) string { return "user:" + id }

func (c *RedisUserCache) Get(ctx context.Context, id string) (*entity.User, error) {
	raw, err := c.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var cu cachedUser
	if err := json.Unmarshal(raw, &cu); err != nil {
		return nil, fmt.Errorf("decodificar usuario cacheado: %w", err)
	}
	return &entity.User{
		ID:           cu.ID,
		Name:         cu.Name,
		Email:        cu.Email,
		Role:         cu.Role,
		ProfileImage: cu.ProfileImage,
		IsVerified:   cu.IsVerified,
		CreatedAt:    cu.CreatedAt,
		UpdatedAt:    cu.UpdatedAt,
	}, nil
}

func (c *RedisUserCache) Set(ctx context.Context, u *entity.User) error {
	raw, err := json.Marshal(cachedUser{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		ProfileImage: u.ProfileImage,
		IsVerified:   u.IsVerified,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	})
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key(u.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisUserCache) Delete(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
