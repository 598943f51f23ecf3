package types

import (
	"github.com/palemoky/langur-burja/internal/protocol"
)

// ClientInterface 定义客户端连接接口（用于打破房间与网络层的循环依赖）
type ClientInterface interface {
	GetID() string
	GetRoom() string
	SetRoom(roomID string)
	SendMessage(msg *protocol.Message)
	Close()
}
