package apperrors

import (
	"github.com/palemoky/langur-burja/internal/protocol"
)

// GameError 游戏错误（房间和会话共享），Code 随 error 事件原样下发给客户端
type GameError struct {
	Code    string
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrRoomNotFound    = &GameError{Code: protocol.ErrCodeRoomNotFound, Message: protocol.ErrorMessages[protocol.ErrCodeRoomNotFound]}
	ErrRoomFull        = &GameError{Code: protocol.ErrCodeRoomFull, Message: protocol.ErrorMessages[protocol.ErrCodeRoomFull]}
	ErrPlayerNotFound  = &GameError{Code: protocol.ErrCodePlayerNotFound, Message: protocol.ErrorMessages[protocol.ErrCodePlayerNotFound]}
	ErrNotBetting      = &GameError{Code: protocol.ErrCodeInvalidState, Message: "Cannot place bet at this time"}
	ErrCannotRoll      = &GameError{Code: protocol.ErrCodeInvalidState, Message: "Cannot roll dice at this time"}
	ErrRoundInProgress = &GameError{Code: protocol.ErrCodeInvalidState, Message: "Cannot start a new round at this time. Use force reset if the game is stuck."}
	ErrInvalidAmount   = &GameError{Code: protocol.ErrCodeInvalidAmount, Message: protocol.ErrorMessages[protocol.ErrCodeInvalidAmount]}
	ErrNoBetToDecrease = &GameError{Code: protocol.ErrCodeNoBetToDecrease, Message: protocol.ErrorMessages[protocol.ErrCodeNoBetToDecrease]}
	ErrInvalidSymbol   = &GameError{Code: protocol.ErrCodeInvalidMsg, Message: "Unknown symbol"}
	ErrNoBetsPlaced    = &GameError{Code: protocol.ErrCodeInvalidState, Message: "Place at least one bet before rolling"}
)
