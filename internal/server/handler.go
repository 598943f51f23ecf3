package server

import (
	"log"
	"time"

	"github.com/palemoky/langur-burja/internal/apperrors"
	"github.com/palemoky/langur-burja/internal/protocol"
	"github.com/palemoky/langur-burja/internal/types"
)

// Handler 消息处理器，把连接上的事件路由到对应的房间操作
type Handler struct {
	server *Server
}

// NewHandler 创建处理器
func NewHandler(s *Server) *Handler {
	return &Handler{server: s}
}

// Handle 处理消息。房间操作的错误只回给发起连接，
// 意外 panic 在此边界兜底转成通用错误事件，绝不拖垮房间或注册表。
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("💥 处理消息 %s 时 panic: %v", msg.Type, r)
			client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeUnknown))
		}
	}()

	switch msg.Type {
	// 连接操作
	case protocol.MsgPing:
		h.handlePing(client, msg)

	// 房间操作
	case protocol.MsgCreateRoom:
		h.handleCreateRoom(client, msg)
	case protocol.MsgJoinRoom:
		h.handleJoinRoom(client, msg)
	case protocol.MsgLeaveRoom:
		h.handleLeaveRoom(client, msg)

	// 游戏操作
	case protocol.MsgPlaceBet:
		h.handlePlaceBet(client, msg)
	case protocol.MsgDecreaseBet:
		h.handleDecreaseBet(client, msg)
	case protocol.MsgRollDice:
		h.handleRollDice(client, msg)
	case protocol.MsgStartNewRound:
		h.handleStartNewRound(client, msg)
	case protocol.MsgResetBalance:
		h.handleResetBalance(client, msg)

	default:
		log.Printf("⚠️ 未知消息类型: '%s'（连接 %s）", msg.Type, client.GetID())
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
	}
}

// handlePing 处理心跳
func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) {
	var clientTS int64
	if len(msg.Payload) > 0 {
		if payload, err := protocol.ParsePayload[protocol.PingPayload](msg); err == nil {
			clientTS = payload.Timestamp
		}
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: clientTS,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// sendError 将房间操作的错误转成 error 事件发给发起连接
func sendError(client types.ClientInterface, err error) {
	if gameErr, ok := err.(*apperrors.GameError); ok {
		client.SendMessage(protocol.NewErrorMessageWithText(gameErr.Code, gameErr.Message))
		return
	}
	client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeUnknown))
}
