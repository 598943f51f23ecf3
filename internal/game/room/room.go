package room

import (
	"context"
	"sync"
	"time"

	"github.com/palemoky/langur-burja/internal/config"
	"github.com/palemoky/langur-burja/internal/game"
	"github.com/palemoky/langur-burja/internal/protocol"
	"github.com/palemoky/langur-burja/internal/storage"
	"github.com/palemoky/langur-burja/internal/types"
)

// Player 房间中的玩家。ID 即连接 ID，重连后会变化；
// 余额以这里为唯一权威，跨重连的连续性由会话存储负责。
type Player struct {
	ID      string
	Name    string
	Balance int
	Client  types.ClientInterface
}

// Room 游戏房间，持有一局游戏的全部可变状态。
// 所有操作都在 mu 保护下从读取到广播一次性完成，广播顺序即提交顺序。
type Room struct {
	ID          string
	State       GameState
	Players     map[string]*Player     // 连接 ID -> 玩家
	Bets        map[string]game.BetSet // 连接 ID -> 注额
	DiceResults game.DiceResult
	CreatedAt   time.Time
	LastActive  time.Time

	roller      game.Roller
	cfg         *config.GameConfig
	store       *storage.RedisStore         // 可为 nil（Redis 不可用时）
	leaderboard *storage.LeaderboardManager // 可为 nil

	rollSeq int  // 掷骰序号，延迟回调据此识别过期结果
	closed  bool // 已被注册表删除

	mu sync.Mutex
}

// touch 更新最后活跃时间，调用方需持有 mu
func (r *Room) touch() {
	r.LastActive = time.Now()
}

// broadcast 向房间内所有在线玩家发送消息，调用方需持有 mu
func (r *Room) broadcast(msg *protocol.Message) {
	for _, player := range r.Players {
		if player.Client != nil {
			player.Client.SendMessage(msg)
		}
	}
}

// playerInfos 构建玩家信息快照，调用方需持有 mu
func (r *Room) playerInfos() map[string]protocol.PlayerInfo {
	infos := make(map[string]protocol.PlayerInfo, len(r.Players))
	for id, p := range r.Players {
		infos[id] = protocol.PlayerInfo{ID: p.ID, Name: p.Name, Balance: p.Balance}
	}
	return infos
}

// betsSnapshot 构建注额快照，调用方需持有 mu
func (r *Room) betsSnapshot() map[string]game.BetSet {
	bets := make(map[string]game.BetSet, len(r.Bets))
	for id, b := range r.Bets {
		bets[id] = b.Clone()
	}
	return bets
}

// gameStatePayload 构建完整状态快照（发给刚加入的连接），调用方需持有 mu
func (r *Room) gameStatePayload() protocol.GameStatePayload {
	return protocol.GameStatePayload{
		RoomID:      r.ID,
		GameState:   string(r.State),
		Players:     r.playerInfos(),
		Bets:        r.betsSnapshot(),
		DiceResults: r.DiceResults,
	}
}

// saveMirror 异步镜像房间快照到 Redis（尽力而为，失败忽略），调用方需持有 mu
func (r *Room) saveMirror() {
	if r.store == nil {
		return
	}

	data := &storage.RoomData{
		ID:          r.ID,
		GameState:   string(r.State),
		PlayerCount: len(r.Players),
		CreatedAt:   r.CreatedAt.Unix(),
		LastActive:  r.LastActive.Unix(),
	}
	for _, p := range r.Players {
		data.Players = append(data.Players, storage.PlayerData{
			ID:      p.ID,
			Name:    p.Name,
			Balance: p.Balance,
		})
	}

	go func() { _ = r.store.SaveRoom(context.Background(), data) }()
}

// PlayerCount 当前玩家数量
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Players)
}

// GetState 当前游戏阶段
func (r *Room) GetState() GameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.State
}
