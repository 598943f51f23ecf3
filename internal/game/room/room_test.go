package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/langur-burja/internal/apperrors"
	"github.com/palemoky/langur-burja/internal/config"
	"github.com/palemoky/langur-burja/internal/game"
	"github.com/palemoky/langur-burja/internal/protocol"
	"github.com/palemoky/langur-burja/internal/session"
	"github.com/palemoky/langur-burja/internal/testutil"
)

// testConfig returns a game config with a roll delay long enough that
// the real timer never fires during a test; tests drive finishRoll directly.
func testConfig() *config.GameConfig {
	return &config.GameConfig{
		StartingBalance: 1000,
		MaxPlayers:      15,
		RollDelay:       60,
		RoomPersistence: 5,
		SessionGrace:    30,
	}
}

func newTestManager(cfg *config.GameConfig, roller game.Roller) *Manager {
	if cfg == nil {
		cfg = testConfig()
	}
	if roller == nil {
		roller = game.NewRandomRoller()
	}
	return NewManager(cfg, roller, session.NewStore(time.Minute), nil, nil)
}

func (r *Room) currentRollSeq() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rollSeq
}

func parsePayload[T any](t *testing.T, msg *protocol.Message) *T {
	t.Helper()
	payload, err := protocol.ParsePayload[T](msg)
	require.NoError(t, err)
	return payload
}

func TestCreateRoom_WithCreatorJoins(t *testing.T) {
	t.Parallel()

	m := newTestManager(nil, nil)
	client := &testutil.SimpleClient{ID: "c1"}

	r := m.CreateRoom(client, "alice")

	assert.Equal(t, StateBetting, r.GetState())
	assert.Equal(t, 1, r.PlayerCount())
	assert.Equal(t, r.ID, client.GetRoom())

	// Client sees roomCreated, then the membership update, then the full snapshot
	require.GreaterOrEqual(t, len(client.Messages), 3)
	assert.Equal(t, protocol.MsgRoomCreated, client.Messages[0].Type)
	assert.Equal(t, protocol.MsgPlayerJoined, client.Messages[1].Type)
	assert.Equal(t, protocol.MsgGameState, client.Messages[2].Type)

	snapshot := parsePayload[protocol.GameStatePayload](t, client.Messages[2])
	assert.Equal(t, r.ID, snapshot.RoomID)
	assert.Equal(t, "betting", snapshot.GameState)
	assert.Equal(t, 1000, snapshot.Players["c1"].Balance)
	assert.Len(t, snapshot.Bets["c1"], 6)
}

func TestCreateRoom_WithoutCreatorName(t *testing.T) {
	t.Parallel()

	m := newTestManager(nil, nil)
	client := &testutil.SimpleClient{ID: "c1"}

	r := m.CreateRoom(client, "")

	assert.Zero(t, r.PlayerCount())
	assert.Empty(t, client.GetRoom())
	require.Len(t, client.Messages, 1)
	assert.Equal(t, protocol.MsgRoomCreated, client.Messages[0].Type)
}

func TestJoinRoom_UnknownRoom(t *testing.T) {
	t.Parallel()

	m := newTestManager(nil, nil)
	client := &testutil.SimpleClient{ID: "c1"}

	err := m.JoinRoom(client, "no-such-room", "alice")
	assert.ErrorIs(t, err, apperrors.ErrRoomNotFound)
}

func TestJoinRoom_RoomFull(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.MaxPlayers = 2
	m := newTestManager(cfg, nil)

	r := m.CreateRoom(&testutil.SimpleClient{ID: "c1"}, "alice")
	require.NoError(t, m.JoinRoom(&testutil.SimpleClient{ID: "c2"}, r.ID, "bob"))

	err := m.JoinRoom(&testutil.SimpleClient{ID: "c3"}, r.ID, "carol")
	assert.ErrorIs(t, err, apperrors.ErrRoomFull)
	assert.Equal(t, 2, r.PlayerCount())
}

func TestJoinRoom_IdempotentRejoinUpdatesNameOnly(t *testing.T) {
	t.Parallel()

	m := newTestManager(nil, nil)
	client := &testutil.SimpleClient{ID: "c1"}
	r := m.CreateRoom(client, "alice")

	require.NoError(t, r.PlaceBet("c1", game.SymbolHeart, 100))
	require.NoError(t, m.JoinRoom(client, r.ID, "alicia"))

	assert.Equal(t, 1, r.PlayerCount())
	r.mu.Lock()
	assert.Equal(t, "alicia", r.Players["c1"].Name)
	assert.Equal(t, 900, r.Players["c1"].Balance, "rejoin must not reset balance")
	assert.Equal(t, 100, r.Bets["c1"][game.SymbolHeart], "rejoin must not reset bets")
	r.mu.Unlock()
}

func TestPlaceBet_BalanceConservation(t *testing.T) {
	t.Parallel()

	m := newTestManager(nil, nil)
	client := &testutil.SimpleClient{ID: "c1"}
	r := m.CreateRoom(client, "alice")

	require.NoError(t, r.PlaceBet("c1", game.SymbolHeart, 100))
	require.NoError(t, r.PlaceBet("c1", game.SymbolHeart, 50))
	require.NoError(t, r.PlaceBet("c1", game.SymbolSpade, 200))

	r.mu.Lock()
	balance := r.Players["c1"].Balance
	total := r.Bets["c1"].Total()
	heartBet := r.Bets["c1"][game.SymbolHeart]
	r.mu.Unlock()

	assert.Equal(t, 650, balance)
	assert.Equal(t, 150, heartBet, "bets on the same symbol are additive")
	assert.Equal(t, 1000, balance+total, "balance plus committed bets equals phase-start balance")
}

func TestPlaceBet_Broadcast(t *testing.T) {
	t.Parallel()

	m := newTestManager(nil, nil)
	alice := &testutil.SimpleClient{ID: "c1"}
	bob := &testutil.SimpleClient{ID: "c2"}
	r := m.CreateRoom(alice, "alice")
	require.NoError(t, m.JoinRoom(bob, r.ID, "bob"))

	require.NoError(t, r.PlaceBet("c1", game.SymbolFlag, 75))

	// Both room members observe the new cumulative bet and balance
	for _, client := range []*testutil.SimpleClient{alice, bob} {
		msgs := client.MessagesOfType(protocol.MsgBetPlaced)
		require.Len(t, msgs, 1)
		payload := parsePayload[protocol.BetPlacedPayload](t, msgs[0])
		assert.Equal(t, "c1", payload.PlayerID)
		assert.Equal(t, game.SymbolFlag, payload.Symbol)
		assert.Equal(t, 75, payload.Amount)
		assert.Equal(t, 925, payload.PlayerBalance)
	}
}

func TestPlaceBet_Validation(t *testing.T) {
	t.Parallel()

	m := newTestManager(nil, nil)
	client := &testutil.SimpleClient{ID: "c1"}
	r := m.CreateRoom(client, "alice")

	assert.ErrorIs(t, r.PlaceBet("ghost", game.SymbolHeart, 10), apperrors.ErrPlayerNotFound)
	assert.ErrorIs(t, r.PlaceBet("c1", game.Symbol("Anchor"), 10), apperrors.ErrInvalidSymbol)
	assert.ErrorIs(t, r.PlaceBet("c1", game.SymbolHeart, 0), apperrors.ErrInvalidAmount)
	assert.ErrorIs(t, r.PlaceBet("c1", game.SymbolHeart, -5), apperrors.ErrInvalidAmount)
	assert.ErrorIs(t, r.PlaceBet("c1", game.SymbolHeart, 1001), apperrors.ErrInvalidAmount)

	r.mu.Lock()
	r.State = StateRolling
	r.mu.Unlock()
	assert.ErrorIs(t, r.PlaceBet("c1", game.SymbolHeart, 10), apperrors.ErrNotBetting)
}

func TestDecreaseBet_ClampedRefund(t *testing.T) {
	t.Parallel()

	m := newTestManager(nil, nil)
	client := &testutil.SimpleClient{ID: "c1"}
	r := m.CreateRoom(client, "alice")

	require.NoError(t, r.PlaceBet("c1", game.SymbolHeart, 100))
	// Ask to remove far more than is staked: clamped to the current bet
	require.NoError(t, r.DecreaseBet("c1", game.SymbolHeart, 10_000))

	r.mu.Lock()
	assert.Zero(t, r.Bets["c1"][game.SymbolHeart], "bet never goes negative")
	assert.Equal(t, 1000, r.Players["c1"].Balance, "full stake refunded")
	r.mu.Unlock()
}

func TestDecreaseBet_Validation(t *testing.T) {
	t.Parallel()

	m := newTestManager(nil, nil)
	client := &testutil.SimpleClient{ID: "c1"}
	r := m.CreateRoom(client, "alice")

	assert.ErrorIs(t, r.DecreaseBet("ghost", game.SymbolHeart, 10), apperrors.ErrPlayerNotFound)
	assert.ErrorIs(t, r.DecreaseBet("c1", game.SymbolHeart, 0), apperrors.ErrInvalidAmount)
	assert.ErrorIs(t, r.DecreaseBet("c1", game.SymbolHeart, 10), apperrors.ErrNoBetToDecrease)

	r.mu.Lock()
	r.State = StateResults
	r.mu.Unlock()
	assert.ErrorIs(t, r.DecreaseBet("c1", game.SymbolHeart, 10), apperrors.ErrNotBetting)
}

func TestResetBalance_AnyState(t *testing.T) {
	t.Parallel()

	m := newTestManager(nil, nil)
	client := &testutil.SimpleClient{ID: "c1"}
	r := m.CreateRoom(client, "alice")

	require.NoError(t, r.PlaceBet("c1", game.SymbolHeart, 400))

	for _, state := range []GameState{StateBetting, StateRolling, StateResults} {
		r.mu.Lock()
		r.State = state
		r.Players["c1"].Balance = 0
		r.mu.Unlock()

		require.NoError(t, r.ResetBalance("c1"))

		r.mu.Lock()
		assert.Equal(t, 1000, r.Players["c1"].Balance)
		assert.Equal(t, 400, r.Bets["c1"][game.SymbolHeart], "reset must not touch bets")
		assert.Equal(t, state, r.State, "reset must not touch game state")
		r.mu.Unlock()
	}

	assert.ErrorIs(t, r.ResetBalance("ghost"), apperrors.ErrPlayerNotFound)

	msgs := client.MessagesOfType(protocol.MsgBalanceReset)
	require.Len(t, msgs, 3)
	payload := parsePayload[protocol.BalanceResetPayload](t, msgs[0])
	assert.Equal(t, "c1", payload.PlayerID)
	assert.Equal(t, 1000, payload.NewBalance)
}
