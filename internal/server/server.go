package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/palemoky/langur-burja/internal/config"
	"github.com/palemoky/langur-burja/internal/game"
	"github.com/palemoky/langur-burja/internal/game/room"
	"github.com/palemoky/langur-burja/internal/session"
	"github.com/palemoky/langur-burja/internal/storage"
)

// leaderboardTopN 排行榜接口返回的名次数量
const leaderboardTopN = 10

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许所有来源，生产环境需要限制
	},
}

// Server WebSocket 服务器
type Server struct {
	config      *config.Config
	redis       *redis.Client // 可为 nil，Redis 仅用于非权威镜像与排行榜
	store       *storage.RedisStore
	leaderboard *storage.LeaderboardManager
	sessions    *session.Store
	roomManager *room.Manager
	handler     *Handler

	clients   map[string]*Client
	clientsMu sync.RWMutex
}

// NewServer 创建服务器实例。Redis 不可用时降级运行：
// 游戏的权威状态只在内存里，镜像与排行榜随之禁用。
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		config:  cfg,
		clients: make(map[string]*Client),
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis 不可用，镜像与排行榜已禁用: %v", err)
		_ = rdb.Close()
	} else {
		s.redis = rdb
		s.store = storage.NewRedisStore(rdb)
		s.leaderboard = storage.NewLeaderboardManager(rdb)
	}

	s.sessions = session.NewStore(cfg.Game.SessionGraceDuration())
	s.roomManager = room.NewManager(&cfg.Game, game.NewRandomRoller(), s.sessions, s.store, s.leaderboard)
	s.handler = NewHandler(s)

	return s
}

// Start 启动服务器
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	http.HandleFunc("/ws", s.handleWebSocket)
	http.HandleFunc("/health", s.handleHealth)
	http.HandleFunc("/ping", s.handlePing)
	http.HandleFunc("/rooms", s.handleRooms)
	http.HandleFunc("/leaderboard", s.handleLeaderboard)

	log.Printf("🚀 服务器启动在 ws://%s/ws", addr)
	server := &http.Server{
		Addr:              addr,
		Handler:           nil,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return server.ListenAndServe()
}

// handleWebSocket 处理 WebSocket 连接
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket 升级失败: %v", err)
		return
	}

	client := NewClient(s, conn)
	s.registerClient(client)

	log.Printf("✅ 连接 %s 已建立", client.ID)

	go client.ReadPump()
	go client.WritePump()
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Server is running"))
}

// handlePing 连通性验证接口
func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

// handleRooms 房间列表接口（调试用）。带 id 参数时改查 Redis 中的房间镜像快照
func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	if id := r.URL.Query().Get("id"); id != "" {
		s.handleRoomMirror(w, r, id)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"rooms": s.roomManager.RoomInfos(),
	})
}

// handleRoomMirror 返回单个房间的 Redis 镜像快照（调试用，非权威数据）
func (s *Server) handleRoomMirror(w http.ResponseWriter, r *http.Request, roomID string) {
	if s.store == nil {
		http.Error(w, "room mirror disabled", http.StatusServiceUnavailable)
		return
	}

	data, err := s.store.LoadRoom(r.Context(), roomID)
	if err != nil {
		http.Error(w, "room mirror lookup failed", http.StatusInternalServerError)
		return
	}
	if data == nil {
		http.Error(w, "room mirror not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

// handleLeaderboard 净盈亏排行榜接口（调试用），Redis 不可用时返回空榜
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries := []storage.LeaderboardEntry{}
	if s.leaderboard != nil {
		var err error
		entries, err = s.leaderboard.Top(r.Context(), leaderboardTopN)
		if err != nil {
			http.Error(w, "leaderboard lookup failed", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"leaderboard": entries,
	})
}

// registerClient 注册客户端
func (s *Server) registerClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client.ID] = client
}

// unregisterClient 注销客户端
func (s *Server) unregisterClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	if _, ok := s.clients[client.ID]; ok {
		delete(s.clients, client.ID)
		log.Printf("❌ 连接 %s 已断开", client.ID)
	}
}

// GetOnlineCount 获取在线连接数
func (s *Server) GetOnlineCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// RoomManager 返回房间管理器
func (s *Server) RoomManager() *room.Manager {
	return s.roomManager
}

// Shutdown 关闭服务器
func (s *Server) Shutdown() {
	s.clientsMu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clientsMu.Unlock()

	if s.redis != nil {
		_ = s.redis.Close()
	}

	log.Println("服务器已关闭")
}
