package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key 前缀
	roomKeyPrefix = "room:"

	// 房间镜像过期时间
	roomExpiration = 2 * time.Hour
)

// RoomData 房间快照（用于 Redis 序列化）。
// 镜像仅供运维观察，权威状态始终在进程内存中，重启后不会从 Redis 恢复。
type RoomData struct {
	ID          string       `json:"id"`
	GameState   string       `json:"game_state"`
	Players     []PlayerData `json:"players"`
	PlayerCount int          `json:"player_count"`
	CreatedAt   int64        `json:"created_at"`
	LastActive  int64        `json:"last_active"`
}

// PlayerData 玩家快照
type PlayerData struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Balance int    `json:"balance"`
}

// RedisStore Redis 存储
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// SaveRoom 保存房间快照到 Redis
func (rs *RedisStore) SaveRoom(ctx context.Context, data *RoomData) error {
	if data == nil {
		return nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("serialize room data: %w", err)
	}

	key := roomKeyPrefix + data.ID
	return rs.client.Set(ctx, key, jsonData, roomExpiration).Err()
}

// LoadRoom 从 Redis 加载房间快照，不存在时返回 nil
func (rs *RedisStore) LoadRoom(ctx context.Context, roomID string) (*RoomData, error) {
	key := roomKeyPrefix + roomID
	data, err := rs.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var roomData RoomData
	if err := json.Unmarshal(data, &roomData); err != nil {
		return nil, fmt.Errorf("deserialize room data: %w", err)
	}

	return &roomData, nil
}

// DeleteRoom 从 Redis 删除房间快照
func (rs *RedisStore) DeleteRoom(ctx context.Context, roomID string) error {
	key := roomKeyPrefix + roomID
	return rs.client.Del(ctx, key).Err()
}
