package room

import (
	"log"

	"github.com/palemoky/langur-burja/internal/apperrors"
	"github.com/palemoky/langur-burja/internal/game"
	"github.com/palemoky/langur-burja/internal/protocol"
)

// PlaceBet 在指定符号上追加注额。余额立即扣减，因此下注阶段任意时刻
// 余额 + 注额总和 == 阶段开始时的余额。
func (r *Room) PlaceBet(playerID string, symbol game.Symbol, amount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.State != StateBetting {
		return apperrors.ErrNotBetting
	}

	player, ok := r.Players[playerID]
	if !ok {
		return apperrors.ErrPlayerNotFound
	}

	if !symbol.IsValid() {
		return apperrors.ErrInvalidSymbol
	}

	if amount <= 0 || amount > player.Balance {
		return apperrors.ErrInvalidAmount
	}

	player.Balance -= amount
	r.Bets[playerID][symbol] += amount
	r.touch()

	r.broadcast(protocol.MustNewMessage(protocol.MsgBetPlaced, protocol.BetPlacedPayload{
		PlayerID:      playerID,
		Symbol:        symbol,
		Amount:        r.Bets[playerID][symbol],
		PlayerBalance: player.Balance,
	}))

	log.Printf("💰 玩家 %s 在 %s 上下注 %d（房间 %s）", player.Name, symbol, amount, r.ID)
	return nil
}

// DecreaseBet 减少指定符号上的注额，减少量不超过当前注额，差额退回余额
func (r *Room) DecreaseBet(playerID string, symbol game.Symbol, amount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.State != StateBetting {
		return apperrors.ErrNotBetting
	}

	player, ok := r.Players[playerID]
	if !ok {
		return apperrors.ErrPlayerNotFound
	}

	if !symbol.IsValid() {
		return apperrors.ErrInvalidSymbol
	}

	if amount <= 0 {
		return apperrors.ErrInvalidAmount
	}

	current := r.Bets[playerID][symbol]
	if current <= 0 {
		return apperrors.ErrNoBetToDecrease
	}

	decrease := min(amount, current)

	player.Balance += decrease
	r.Bets[playerID][symbol] -= decrease
	r.touch()

	r.broadcast(protocol.MustNewMessage(protocol.MsgBetPlaced, protocol.BetPlacedPayload{
		PlayerID:      playerID,
		Symbol:        symbol,
		Amount:        r.Bets[playerID][symbol],
		PlayerBalance: player.Balance,
	}))

	log.Printf("💸 玩家 %s 在 %s 上减注 %d（房间 %s）", player.Name, symbol, decrease, r.ID)
	return nil
}
