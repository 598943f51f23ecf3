package room

import (
	"log"

	"github.com/palemoky/langur-burja/internal/apperrors"
	"github.com/palemoky/langur-burja/internal/game"
	"github.com/palemoky/langur-burja/internal/protocol"
	"github.com/palemoky/langur-burja/internal/session"
	"github.com/palemoky/langur-burja/internal/types"
)

// join 将连接加入房间。三种情况：
//  1. 带会话的重连：恢复断线前的余额与注额；房间停在结算阶段时
//     强制回到下注阶段并清空所有注额（余额不动），避免重连玩家滞留在过期结算画面；
//  2. 同连接重复加入：幂等，仅更新昵称；
//  3. 全新玩家：按配置的初始余额入场，注额全零。
// 之后统一：广播成员变化，并单独给加入者发完整状态快照。
func (r *Room) join(client types.ClientInterface, playerName string, sess *session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// 注册表取出房间后、加入完成前，删除定时器可能已触发
	if r.closed {
		return apperrors.ErrRoomNotFound
	}

	id := client.GetID()
	existing, isMember := r.Players[id]

	if !isMember && len(r.Players) >= r.cfg.MaxPlayers {
		return apperrors.ErrRoomFull
	}

	switch {
	case sess != nil:
		r.Players[id] = &Player{ID: id, Name: playerName, Balance: sess.Balance, Client: client}

		if r.State == StateResults {
			r.resetRoundLocked()
			r.Bets[id] = game.NewBetSet()
			r.broadcast(protocol.MustNewMessage(protocol.MsgNewRound, protocol.NewRoundPayload{
				GameState: string(StateBetting),
				Bets:      r.betsSnapshot(),
			}))
		} else {
			// 会话里的注额合并进全零注额表，保证六个符号全部存在
			bets := game.NewBetSet()
			for symbol, amount := range sess.Bets {
				if symbol.IsValid() {
					bets[symbol] = amount
				}
			}
			r.Bets[id] = bets
		}

		log.Printf("📶 玩家 %s 重连到房间 %s，恢复余额 %d", playerName, r.ID, sess.Balance)

	case isMember:
		existing.Name = playerName
		existing.Client = client
		log.Printf("👤 玩家 %s (%s) 重复加入房间 %s，仅更新昵称", playerName, id, r.ID)

	default:
		r.Players[id] = &Player{ID: id, Name: playerName, Balance: r.cfg.StartingBalance, Client: client}
		r.Bets[id] = game.NewBetSet()
		log.Printf("👤 新玩家 %s 加入房间 %s，初始余额 %d", playerName, r.ID, r.cfg.StartingBalance)
	}

	client.SetRoom(r.ID)
	r.touch()

	r.broadcast(protocol.MustNewMessage(protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{
		Player:      protocol.PlayerInfo{ID: id, Name: playerName, Balance: r.Players[id].Balance},
		Players:     r.playerInfos(),
		PlayerCount: len(r.Players),
	}))

	// 完整快照只发给刚加入的连接
	client.SendMessage(protocol.MustNewMessage(protocol.MsgGameState, r.gameStatePayload()))

	r.saveMirror()
	return nil
}

// removePlayer 从房间移除玩家。sessions 非 nil（隐式断线）时先保存会话；
// 主动离开传 nil，放弃重连资格。返回房间是否已空以及玩家是否存在。
func (r *Room) removePlayer(playerID string, sessions *session.Store) (empty, found bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, ok := r.Players[playerID]
	if !ok {
		return len(r.Players) == 0, false
	}

	if sessions != nil {
		sessions.Save(r.ID, player.Name, player.Balance, r.Bets[playerID])
		log.Printf("💾 已保存玩家 %s 的会话（房间 %s，余额 %d）", player.Name, r.ID, player.Balance)
	}

	delete(r.Players, playerID)
	delete(r.Bets, playerID)
	if player.Client != nil {
		player.Client.SetRoom("")
	}
	r.touch()

	r.broadcast(protocol.MustNewMessage(protocol.MsgPlayerLeft, protocol.PlayerLeftPayload{
		PlayerID:    playerID,
		Players:     r.playerInfos(),
		PlayerCount: len(r.Players),
	}))

	log.Printf("👋 玩家 %s 离开房间 %s（剩余 %d 人）", player.Name, r.ID, len(r.Players))

	r.saveMirror()
	return len(r.Players) == 0, true
}
