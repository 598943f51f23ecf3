package protocol

import "github.com/palemoky/langur-burja/internal/game"

// --- 客户端请求 Payloads ---

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// CreateRoomPayload 创建房间请求，提供昵称时创建后立即加入
type CreateRoomPayload struct {
	PlayerName string `json:"playerName,omitempty"`
}

// JoinRoomPayload 加入房间请求
type JoinRoomPayload struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

// LeaveRoomPayload 离开房间请求
type LeaveRoomPayload struct {
	RoomID string `json:"roomId"`
}

// PlaceBetPayload 下注请求
type PlaceBetPayload struct {
	RoomID string      `json:"roomId"`
	Symbol game.Symbol `json:"symbol"`
	Amount int         `json:"amount"`
}

// DecreaseBetPayload 减注请求
type DecreaseBetPayload struct {
	RoomID string      `json:"roomId"`
	Symbol game.Symbol `json:"symbol"`
	Amount int         `json:"amount"`
}

// RollDicePayload 掷骰子请求
type RollDicePayload struct {
	RoomID string `json:"roomId"`
}

// StartNewRoundPayload 开始新一轮请求，forceReset 用于卡死状态的强制复位
type StartNewRoundPayload struct {
	RoomID     string `json:"roomId"`
	ForceReset bool   `json:"forceReset,omitempty"`
}

// ResetBalancePayload 重置余额请求
type ResetBalancePayload struct {
	RoomID string `json:"roomId"`
}

// --- 服务端响应 Payloads ---

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"clientTimestamp"` // 客户端发送的时间戳
	ServerTimestamp int64 `json:"serverTimestamp"` // 服务器时间戳（毫秒）
}

// RoomCreatedPayload 房间创建成功响应
type RoomCreatedPayload struct {
	RoomID string `json:"roomId"`
}

// PlayerInfo 玩家信息
type PlayerInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Balance int    `json:"balance"`
}

// PlayerJoinedPayload 玩家加入通知（广播给房间内所有人）
type PlayerJoinedPayload struct {
	Player      PlayerInfo            `json:"player"`
	Players     map[string]PlayerInfo `json:"players"`
	PlayerCount int                   `json:"playerCount"`
}

// PlayerLeftPayload 玩家离开通知
type PlayerLeftPayload struct {
	PlayerID    string                `json:"playerId"`
	Players     map[string]PlayerInfo `json:"players"`
	PlayerCount int                   `json:"playerCount"`
}

// GameStatePayload 完整游戏状态快照（仅发给刚加入/重连的连接）
type GameStatePayload struct {
	RoomID      string                 `json:"roomId"`
	GameState   string                 `json:"gameState"`
	Players     map[string]PlayerInfo  `json:"players"`
	Bets        map[string]game.BetSet `json:"bets"`
	DiceResults game.DiceResult        `json:"diceResults"`
}

// BetPlacedPayload 注额变化通知，amount 为该符号的最新累计注额
type BetPlacedPayload struct {
	PlayerID      string      `json:"playerId"`
	Symbol        game.Symbol `json:"symbol"`
	Amount        int         `json:"amount"`
	PlayerBalance int         `json:"playerBalance"`
}

// GameStateChangedPayload 游戏阶段变化通知
type GameStateChangedPayload struct {
	GameState string `json:"gameState"`
}

// DiceResultsPayload 骰子结果与结算通知（单条原子更新）
type DiceResultsPayload struct {
	DiceResults game.DiceResult           `json:"diceResults"`
	Payouts     map[string]game.PayoutSet `json:"payouts"`
	Players     map[string]PlayerInfo     `json:"players"`
}

// NewRoundPayload 新一轮开始通知，注额全部归零
type NewRoundPayload struct {
	GameState string                 `json:"gameState"`
	Bets      map[string]game.BetSet `json:"bets"`
}

// BalanceResetPayload 余额重置通知
type BalanceResetPayload struct {
	PlayerID   string `json:"playerId"`
	NewBalance int    `json:"newBalance"`
}

// ErrorPayload 错误响应，code 供客户端程序化处理（如清除缓存的房间 ID）
type ErrorPayload struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}
