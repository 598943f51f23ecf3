package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/langur-burja/internal/config"
	"github.com/palemoky/langur-burja/internal/game"
	"github.com/palemoky/langur-burja/internal/game/room"
	"github.com/palemoky/langur-burja/internal/session"
	"github.com/palemoky/langur-burja/internal/storage"
	"github.com/palemoky/langur-burja/internal/testutil"
)

// newTestServerWithRedis 组装一个接在 miniredis 上的服务器，镜像与排行榜可用
func newTestServerWithRedis(t *testing.T) (*Server, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cfg := config.Default()
	cfg.Game.RollDelay = 60

	s := &Server{
		config:  cfg,
		redis:   client,
		clients: make(map[string]*Client),
	}
	s.store = storage.NewRedisStore(client)
	s.leaderboard = storage.NewLeaderboardManager(client)
	s.sessions = session.NewStore(cfg.Game.SessionGraceDuration())
	s.roomManager = room.NewManager(&cfg.Game, game.NewRandomRoller(), s.sessions, s.store, s.leaderboard)
	s.handler = NewHandler(s)
	return s, mr
}

func TestHandleLeaderboard(t *testing.T) {
	t.Parallel()

	s, mr := newTestServerWithRedis(t)
	defer mr.Close()
	ctx := context.Background()

	require.NoError(t, s.leaderboard.RecordPayout(ctx, "alice", 150))
	require.NoError(t, s.leaderboard.RecordPayout(ctx, "bob", 300))

	rec := httptest.NewRecorder()
	s.handleLeaderboard(rec, httptest.NewRequest(http.MethodGet, "/leaderboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Leaderboard []storage.LeaderboardEntry `json:"leaderboard"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Leaderboard, 2)
	assert.Equal(t, "bob", resp.Leaderboard[0].PlayerName)
	assert.Equal(t, 300, resp.Leaderboard[0].NetWinnings)
	assert.Equal(t, "alice", resp.Leaderboard[1].PlayerName)
}

func TestHandleLeaderboard_RedisDisabled(t *testing.T) {
	t.Parallel()

	s := newTestServer()

	rec := httptest.NewRecorder()
	s.handleLeaderboard(rec, httptest.NewRequest(http.MethodGet, "/leaderboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Leaderboard []storage.LeaderboardEntry `json:"leaderboard"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Leaderboard, "degraded mode serves an empty board")
}

func TestHandleRooms_List(t *testing.T) {
	t.Parallel()

	s := newTestServer()
	s.roomManager.CreateRoom(&testutil.SimpleClient{ID: "c1"}, "alice")

	rec := httptest.NewRecorder()
	s.handleRooms(rec, httptest.NewRequest(http.MethodGet, "/rooms", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Rooms []room.RoomInfo `json:"rooms"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Rooms, 1)
	assert.Equal(t, 1, resp.Rooms[0].PlayerCount)
}

func TestHandleRooms_MirrorLookup(t *testing.T) {
	t.Parallel()

	s, mr := newTestServerWithRedis(t)
	defer mr.Close()

	snapshot := &storage.RoomData{
		ID:          "room-1",
		GameState:   "betting",
		Players:     []storage.PlayerData{{ID: "c1", Name: "alice", Balance: 850}},
		PlayerCount: 1,
		CreatedAt:   time.Now().Unix(),
		LastActive:  time.Now().Unix(),
	}
	require.NoError(t, s.store.SaveRoom(context.Background(), snapshot))

	rec := httptest.NewRecorder()
	s.handleRooms(rec, httptest.NewRequest(http.MethodGet, "/rooms?id=room-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var loaded storage.RoomData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loaded))
	assert.Equal(t, snapshot.ID, loaded.ID)
	assert.Equal(t, snapshot.Players, loaded.Players)
}

func TestHandleRooms_MirrorMissing(t *testing.T) {
	t.Parallel()

	s, mr := newTestServerWithRedis(t)
	defer mr.Close()

	rec := httptest.NewRecorder()
	s.handleRooms(rec, httptest.NewRequest(http.MethodGet, "/rooms?id=no-such-room", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleRooms_MirrorDisabled(t *testing.T) {
	t.Parallel()

	s := newTestServer()

	rec := httptest.NewRecorder()
	s.handleRooms(rec, httptest.NewRequest(http.MethodGet, "/rooms?id=room-1", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
