package room

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/palemoky/langur-burja/internal/apperrors"
	"github.com/palemoky/langur-burja/internal/config"
	"github.com/palemoky/langur-burja/internal/game"
	"github.com/palemoky/langur-burja/internal/protocol"
	"github.com/palemoky/langur-burja/internal/session"
	"github.com/palemoky/langur-burja/internal/storage"
	"github.com/palemoky/langur-burja/internal/types"
)

// Manager 房间注册表与生命周期管理器。
// 进程启动时构造一次并注入连接层，进程退出时随之销毁；
// 房间只存在于内存中，重启即全部丢失。
type Manager struct {
	cfg         *config.GameConfig
	roller      game.Roller
	sessions    *session.Store
	store       *storage.RedisStore         // 可为 nil
	leaderboard *storage.LeaderboardManager // 可为 nil

	rooms        map[string]*Room
	deleteTimers map[string]*time.Timer // 空房间的延迟删除定时器，按房间 ID 一个
	mu           sync.Mutex
}

// RoomInfo 房间概要（调试接口用）
type RoomInfo struct {
	ID          string `json:"id"`
	PlayerCount int    `json:"playerCount"`
	MaxPlayers  int    `json:"maxPlayers"`
	GameState   string `json:"gameState"`
}

// NewManager 创建房间管理器
func NewManager(cfg *config.GameConfig, roller game.Roller, sessions *session.Store, store *storage.RedisStore, leaderboard *storage.LeaderboardManager) *Manager {
	return &Manager{
		cfg:          cfg,
		roller:       roller,
		sessions:     sessions,
		store:        store,
		leaderboard:  leaderboard,
		rooms:        make(map[string]*Room),
		deleteTimers: make(map[string]*time.Timer),
	}
}

// CreateRoom 创建房间。提供昵称时创建后立即加入，
// 对客户端而言创建与加入是一个原子动作。
func (m *Manager) CreateRoom(client types.ClientInterface, playerName string) *Room {
	now := time.Now()
	r := &Room{
		ID:          uuid.NewString(),
		State:       StateBetting,
		Players:     make(map[string]*Player),
		Bets:        make(map[string]game.BetSet),
		CreatedAt:   now,
		LastActive:  now,
		roller:      m.roller,
		cfg:         m.cfg,
		store:       m.store,
		leaderboard: m.leaderboard,
	}

	m.mu.Lock()
	m.rooms[r.ID] = r
	total := len(m.rooms)
	m.mu.Unlock()

	log.Printf("🏠 房间 %s 已创建（当前共 %d 个房间）", r.ID, total)

	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomCreated, protocol.RoomCreatedPayload{
		RoomID: r.ID,
	}))

	if playerName != "" {
		_ = r.join(client, playerName, nil)
	}

	return r
}

// GetRoom 获取房间
func (m *Manager) GetRoom(roomID string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[roomID]
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}
	return r, nil
}

// JoinRoom 加入房间。先取消该房间挂起的删除定时器，
// 再尝试取回同名会话恢复断线前的进度。
func (m *Manager) JoinRoom(client types.ClientInterface, roomID, playerName string) error {
	m.mu.Lock()
	r, ok := m.rooms[roomID]
	if !ok {
		m.mu.Unlock()
		return apperrors.ErrRoomNotFound
	}
	if timer, ok := m.deleteTimers[roomID]; ok {
		timer.Stop()
		delete(m.deleteTimers, roomID)
		log.Printf("⏲️ 房间 %s 的删除定时器已取消（有玩家加入）", roomID)
	}
	m.mu.Unlock()

	sess := m.sessions.TryRestore(roomID, playerName)

	if err := r.join(client, playerName, sess); err != nil {
		// 加入失败（如房间已满）时放回已取走的会话，
		// 否则被挤掉的重连玩家会永久丢失断线前的进度
		m.sessions.Put(sess)
		return err
	}
	return nil
}

// LeaveRoom 玩家主动离开房间，不保存会话（主动离开即放弃重连）
func (m *Manager) LeaveRoom(client types.ClientInterface, roomID string) error {
	return m.remove(client, roomID, nil)
}

// HandleDisconnect 处理隐式断线：先保存会话再移除玩家，供稍后重连恢复
func (m *Manager) HandleDisconnect(client types.ClientInterface) {
	roomID := client.GetRoom()
	if roomID == "" {
		return
	}
	_ = m.remove(client, roomID, m.sessions)
}

// remove 从房间移除玩家，sessions 非 nil 时先保存会话；房间空了则安排延迟删除
func (m *Manager) remove(client types.ClientInterface, roomID string, sessions *session.Store) error {
	m.mu.Lock()
	r, ok := m.rooms[roomID]
	m.mu.Unlock()
	if !ok {
		return apperrors.ErrRoomNotFound
	}

	empty, found := r.removePlayer(client.GetID(), sessions)
	if !found {
		return apperrors.ErrPlayerNotFound
	}

	if empty {
		m.scheduleDelete(roomID)
	}
	return nil
}

// scheduleDelete 安排空房间的延迟删除，同一房间重复安排会先取消旧定时器
func (m *Manager) scheduleDelete(roomID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if timer, ok := m.deleteTimers[roomID]; ok {
		timer.Stop()
	}

	m.deleteTimers[roomID] = time.AfterFunc(m.cfg.RoomPersistenceDuration(), func() {
		m.deleteIfEmpty(roomID)
	})

	log.Printf("⏲️ 房间 %s 已空，%d 分钟后删除", roomID, m.cfg.RoomPersistence)
}

// deleteIfEmpty 删除定时器到期回调：房间仍为空才真正删除
func (m *Manager) deleteIfEmpty(roomID string) {
	m.mu.Lock()
	r, ok := m.rooms[roomID]
	if !ok {
		delete(m.deleteTimers, roomID)
		m.mu.Unlock()
		return
	}
	if r.PlayerCount() > 0 {
		delete(m.deleteTimers, roomID)
		m.mu.Unlock()
		return
	}
	delete(m.rooms, roomID)
	delete(m.deleteTimers, roomID)
	m.mu.Unlock()

	// 标记已删除，挂起的掷骰回调会据此丢弃结果，迟到的加入也会被拒绝
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	m.sessions.DropRoom(roomID)

	if m.store != nil {
		go func() { _ = m.store.DeleteRoom(context.Background(), roomID) }()
	}

	log.Printf("🏠 房间 %s 空置超时已删除", roomID)
}

// RoomCount 当前房间数量
func (m *Manager) RoomCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rooms)
}

// RoomInfos 所有房间的概要列表（调试接口用）
func (m *Manager) RoomInfos() []RoomInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	infos := make([]RoomInfo, 0, len(m.rooms))
	for id, r := range m.rooms {
		r.mu.Lock()
		infos = append(infos, RoomInfo{
			ID:          id,
			PlayerCount: len(r.Players),
			MaxPlayers:  m.cfg.MaxPlayers,
			GameState:   string(r.State),
		})
		r.mu.Unlock()
	}
	return infos
}
