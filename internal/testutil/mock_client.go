package testutil

import (
	"github.com/stretchr/testify/mock"

	"github.com/palemoky/langur-burja/internal/protocol"
)

// MockClient 实现 types.ClientInterface 的 mock
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) GetRoom() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) SetRoom(roomID string) {
	m.Called(roomID)
}

func (m *MockClient) SendMessage(msg *protocol.Message) {
	m.Called(msg)
}

func (m *MockClient) Close() {
	m.Called()
}

// SimpleClient 简单的 mock 客户端，记录收到的全部消息（用于不需要断言调用的测试）
type SimpleClient struct {
	ID       string
	RoomID   string
	Messages []*protocol.Message
}

func (c *SimpleClient) GetID() string                     { return c.ID }
func (c *SimpleClient) GetRoom() string                   { return c.RoomID }
func (c *SimpleClient) SetRoom(roomID string)             { c.RoomID = roomID }
func (c *SimpleClient) SendMessage(msg *protocol.Message) { c.Messages = append(c.Messages, msg) }
func (c *SimpleClient) Close()                            {}

// MessagesOfType 返回收到的指定类型消息
func (c *SimpleClient) MessagesOfType(msgType protocol.MessageType) []*protocol.Message {
	var msgs []*protocol.Message
	for _, m := range c.Messages {
		if m.Type == msgType {
			msgs = append(msgs, m)
		}
	}
	return msgs
}

// LastMessage 返回最后一条收到的消息，没有则返回 nil
func (c *SimpleClient) LastMessage() *protocol.Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}
