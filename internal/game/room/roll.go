package room

import (
	"context"
	"log"
	"time"

	"github.com/palemoky/langur-burja/internal/apperrors"
	"github.com/palemoky/langur-burja/internal/game"
	"github.com/palemoky/langur-burja/internal/protocol"
)

// RollDice 从下注阶段进入掷骰阶段。立即广播阶段变化，
// 实际掷骰在固定延迟后完成，延迟用于让所有客户端同步播放掷骰动画。
func (r *Room) RollDice(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.State != StateBetting {
		return apperrors.ErrCannotRoll
	}

	if _, ok := r.Players[playerID]; !ok {
		return apperrors.ErrPlayerNotFound
	}

	hasBet := false
	for _, bets := range r.Bets {
		if bets.Total() > 0 {
			hasBet = true
			break
		}
	}
	if !hasBet {
		return apperrors.ErrNoBetsPlaced
	}

	r.State = StateRolling
	r.rollSeq++
	seq := r.rollSeq
	r.touch()

	r.broadcast(protocol.MustNewMessage(protocol.MsgGameStateChanged, protocol.GameStateChangedPayload{
		GameState: string(StateRolling),
	}))

	log.Printf("🎲 房间 %s 开始掷骰", r.ID)

	time.AfterFunc(r.cfg.RollDelayDuration(), func() {
		r.finishRoll(seq)
	})

	return nil
}

// finishRoll 掷骰延迟回调，是整个核心里唯一的异步挂起点。
// 定时器挂起期间房间可能被删除或被强制复位，提交结果前必须重新校验：
// 序号或状态不匹配时直接丢弃结果，绝不覆盖复位后的状态。
func (r *Room) finishRoll(seq int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.State != StateRolling || seq != r.rollSeq {
		log.Printf("🗑️ 房间 %s 的过期掷骰结果已丢弃", r.ID)
		return
	}

	r.DiceResults = r.roller.Roll()
	r.State = StateResults
	r.touch()

	r.broadcast(protocol.MustNewMessage(protocol.MsgGameStateChanged, protocol.GameStateChangedPayload{
		GameState: string(StateResults),
	}))

	payouts := game.CalculatePayouts(r.Bets, r.DiceResults)

	// 按固定符号顺序应用结算并做零下限截断：
	// 负结算会把余额压到零以下时，实际应用与广播的数值都截断为 -balance，
	// 保证客户端看到的数字与真正入账的数字一致。
	for playerID, payout := range payouts {
		player, ok := r.Players[playerID]
		if !ok {
			continue
		}
		net := 0
		for _, symbol := range game.Symbols {
			amount := payout[symbol]
			if amount < 0 && -amount > player.Balance {
				adjusted := -player.Balance
				player.Balance = 0
				payout[symbol] = adjusted
				net += adjusted
			} else {
				player.Balance += amount
				net += amount
			}
		}
		if r.leaderboard != nil && net != 0 {
			name := player.Name
			go func() { _ = r.leaderboard.RecordPayout(context.Background(), name, net) }()
		}
	}

	// 骰子结果、结算与最新余额作为一条原子更新下发
	r.broadcast(protocol.MustNewMessage(protocol.MsgDiceResults, protocol.DiceResultsPayload{
		DiceResults: r.DiceResults,
		Payouts:     payouts,
		Players:     r.playerInfos(),
	}))

	r.saveMirror()

	log.Printf("🎲 房间 %s 掷骰结果: %v", r.ID, r.DiceResults)
}
