package storage

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key
	leaderboardKey = "leaderboard:winnings"
)

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	PlayerName  string `json:"player_name"`
	NetWinnings int    `json:"net_winnings"` // 累计净盈亏
}

// LeaderboardManager 净盈亏排行榜，按昵称累计（连接 ID 不稳定，跨局无意义）
type LeaderboardManager struct {
	redis *redis.Client
}

// NewLeaderboardManager 创建排行榜管理器
func NewLeaderboardManager(client *redis.Client) *LeaderboardManager {
	return &LeaderboardManager{redis: client}
}

// RecordPayout 累计一次结算的净盈亏
func (lm *LeaderboardManager) RecordPayout(ctx context.Context, playerName string, net int) error {
	return lm.redis.ZIncrBy(ctx, leaderboardKey, float64(net), playerName).Err()
}

// Top 获取净盈亏前 n 名
func (lm *LeaderboardManager) Top(ctx context.Context, n int) ([]LeaderboardEntry, error) {
	results, err := lm.redis.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(results))
	for i, z := range results {
		name, _ := z.Member.(string)
		entries = append(entries, LeaderboardEntry{
			Rank:        i + 1,
			PlayerName:  name,
			NetWinnings: int(z.Score),
		})
	}
	return entries, nil
}
