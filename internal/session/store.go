package session

import (
	"log"
	"sync"
	"time"

	"github.com/palemoky/langur-burja/internal/game"
)

// cleanupInterval 过期会话的扫描间隔
const cleanupInterval = 1 * time.Minute

// Session 断线玩家的进度快照，按 (房间 ID, 昵称) 保存。
// 连接 ID 每次建连都会变化，跨重连的"同一个人"只能靠房间内昵称识别，
// 这是尽力而为的启发式：同房间内两个人使用相同昵称会互相顶替（已知限制）。
type Session struct {
	RoomID         string
	PlayerName     string
	Balance        int
	Bets           game.BetSet
	DisconnectedAt time.Time
}

// Store 重连会话存储，带固定宽限期的过期回收
type Store struct {
	sessions map[string]*Session // "roomID:playerName" -> session
	grace    time.Duration
	mu       sync.Mutex
}

// NewStore 创建会话存储并启动清理协程
func NewStore(grace time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		grace:    grace,
	}

	go s.cleanupLoop()

	return s
}

func sessionKey(roomID, playerName string) string {
	return roomID + ":" + playerName
}

// Save 保存断线玩家的会话，覆盖同一 (房间, 昵称) 的旧会话。
// 仅在隐式断线时调用；主动离开房间不保存会话。
func (s *Store) Save(roomID, playerName string, balance int, bets game.BetSet) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sessionKey(roomID, playerName)] = &Session{
		RoomID:         roomID,
		PlayerName:     playerName,
		Balance:        balance,
		Bets:           bets.Clone(),
		DisconnectedAt: time.Now(),
	}
}

// TryRestore 查找并原子地取走匹配的未过期会话，没有则返回 nil
func (s *Store) TryRestore(roomID, playerName string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionKey(roomID, playerName)
	session, ok := s.sessions[key]
	if !ok {
		return nil
	}

	delete(s.sessions, key)

	if time.Since(session.DisconnectedAt) > s.grace {
		// 过期会话静默丢弃，按全新玩家处理
		return nil
	}
	return session
}

// Put 放回一个未被消费的会话（加入失败时回滚 TryRestore）。
// 保留原断线时间，失败的重连尝试不会延长宽限期。
func (s *Store) Put(sess *Session) {
	if sess == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionKey(sess.RoomID, sess.PlayerName)] = sess
}

// DropRoom 删除指定房间的全部会话（房间销毁时调用，房间没了会话也无处恢复）
func (s *Store) DropRoom(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, sess := range s.sessions {
		if sess.RoomID == roomID {
			delete(s.sessions, key)
		}
	}
}

// Count 当前保存的会话数量
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// cleanupLoop 定期清理过期会话
func (s *Store) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		s.cleanup()
	}
}

// cleanup 清理过期会话，过期是回收策略而非用户可见的失败
func (s *Store) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, session := range s.sessions {
		if now.Sub(session.DisconnectedAt) > s.grace {
			delete(s.sessions, key)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("🧹 已清理 %d 个过期会话", removed)
	}
}
