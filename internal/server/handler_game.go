package server

import (
	"github.com/palemoky/langur-burja/internal/protocol"
	"github.com/palemoky/langur-burja/internal/types"
)

// handlePlaceBet 处理下注
func (h *Handler) handlePlaceBet(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.PlaceBetPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r, err := h.server.roomManager.GetRoom(payload.RoomID)
	if err != nil {
		sendError(client, err)
		return
	}

	if err := r.PlaceBet(client.GetID(), payload.Symbol, payload.Amount); err != nil {
		sendError(client, err)
	}
}

// handleDecreaseBet 处理减注
func (h *Handler) handleDecreaseBet(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.DecreaseBetPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r, err := h.server.roomManager.GetRoom(payload.RoomID)
	if err != nil {
		sendError(client, err)
		return
	}

	if err := r.DecreaseBet(client.GetID(), payload.Symbol, payload.Amount); err != nil {
		sendError(client, err)
	}
}

// handleRollDice 处理掷骰子
func (h *Handler) handleRollDice(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.RollDicePayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r, err := h.server.roomManager.GetRoom(payload.RoomID)
	if err != nil {
		sendError(client, err)
		return
	}

	if err := r.RollDice(client.GetID()); err != nil {
		sendError(client, err)
	}
}

// handleStartNewRound 处理开始新一轮
func (h *Handler) handleStartNewRound(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.StartNewRoundPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r, err := h.server.roomManager.GetRoom(payload.RoomID)
	if err != nil {
		sendError(client, err)
		return
	}

	if err := r.StartNewRound(payload.ForceReset); err != nil {
		sendError(client, err)
	}
}

// handleResetBalance 处理重置余额
func (h *Handler) handleResetBalance(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.ResetBalancePayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r, err := h.server.roomManager.GetRoom(payload.RoomID)
	if err != nil {
		sendError(client, err)
		return
	}

	if err := r.ResetBalance(client.GetID()); err != nil {
		sendError(client, err)
	}
}
