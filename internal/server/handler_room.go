package server

import (
	"github.com/palemoky/langur-burja/internal/protocol"
	"github.com/palemoky/langur-burja/internal/types"
)

// handleCreateRoom 处理创建房间，带昵称时创建后立即加入
func (h *Handler) handleCreateRoom(client types.ClientInterface, msg *protocol.Message) {
	playerName := ""
	if len(msg.Payload) > 0 {
		payload, err := protocol.ParsePayload[protocol.CreateRoomPayload](msg)
		if err != nil {
			client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
			return
		}
		playerName = payload.PlayerName
	}

	h.server.roomManager.CreateRoom(client, playerName)
}

// handleJoinRoom 处理加入房间
func (h *Handler) handleJoinRoom(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.JoinRoomPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	if payload.RoomID == "" || payload.PlayerName == "" {
		client.SendMessage(protocol.NewErrorMessageWithText(
			protocol.ErrCodeInvalidMsg, "Room ID and player name are required"))
		return
	}

	if err := h.server.roomManager.JoinRoom(client, payload.RoomID, payload.PlayerName); err != nil {
		sendError(client, err)
	}
}

// handleLeaveRoom 处理主动离开房间（放弃重连资格，不保存会话）
func (h *Handler) handleLeaveRoom(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.LeaveRoomPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	if err := h.server.roomManager.LeaveRoom(client, payload.RoomID); err != nil {
		sendError(client, err)
	}
}
