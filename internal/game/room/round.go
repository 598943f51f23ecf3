package room

import (
	"log"

	"github.com/palemoky/langur-burja/internal/apperrors"
	"github.com/palemoky/langur-burja/internal/protocol"
)

// StartNewRound 清空所有注额与骰子结果并回到下注阶段。
// 常规路径只允许从结算阶段发起；forceReset 是卡死状态的逃生通道，
// 任意阶段都会成功，进行中的掷骰回调之后会因状态不匹配而自弃。
func (r *Room) StartNewRound(force bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.State != StateResults && !force {
		return apperrors.ErrRoundInProgress
	}

	r.resetRoundLocked()

	r.broadcast(protocol.MustNewMessage(protocol.MsgNewRound, protocol.NewRoundPayload{
		GameState: string(StateBetting),
		Bets:      r.betsSnapshot(),
	}))

	if force {
		log.Printf("🔄 房间 %s 被强制复位到下注阶段", r.ID)
	} else {
		log.Printf("🆕 房间 %s 开始新一轮", r.ID)
	}
	return nil
}

// resetRoundLocked 归零注额、清空骰子并回到下注阶段，调用方需持有 mu。
// 只清未结算的注额，余额不动；递增掷骰序号使任何挂起的掷骰回调失效。
func (r *Room) resetRoundLocked() {
	for _, bets := range r.Bets {
		bets.Clear()
	}
	r.DiceResults = nil
	r.State = StateBetting
	r.rollSeq++
	r.touch()
}

// ResetBalance 将玩家余额重置为初始值。这是输光余额后的玩家自救动作，
// 任意阶段都允许，不触碰注额与游戏状态。
func (r *Room) ResetBalance(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, ok := r.Players[playerID]
	if !ok {
		return apperrors.ErrPlayerNotFound
	}

	player.Balance = r.cfg.StartingBalance
	r.touch()

	r.broadcast(protocol.MustNewMessage(protocol.MsgBalanceReset, protocol.BalanceResetPayload{
		PlayerID:   playerID,
		NewBalance: player.Balance,
	}))

	log.Printf("♻️ 玩家 %s 重置余额为 %d（房间 %s）", player.Name, player.Balance, r.ID)
	return nil
}
