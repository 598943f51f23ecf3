package protocol

import "encoding/json"

// Message 基础消息结构，客户端与服务端的所有通信都使用该信封
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgPing MessageType = "ping" // 心跳 ping

	// 房间操作
	MsgCreateRoom MessageType = "createRoom" // 创建房间
	MsgJoinRoom   MessageType = "joinRoom"   // 加入房间
	MsgLeaveRoom  MessageType = "leaveRoom"  // 离开房间

	// 游戏操作
	MsgPlaceBet      MessageType = "placeBet"      // 下注
	MsgDecreaseBet   MessageType = "decreaseBet"   // 减注
	MsgRollDice      MessageType = "rollDice"      // 掷骰子
	MsgStartNewRound MessageType = "startNewRound" // 开始新一轮
	MsgResetBalance  MessageType = "resetBalance"  // 重置余额
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgPong MessageType = "pong" // 心跳 pong

	// 房间相关
	MsgRoomCreated  MessageType = "roomCreated"  // 房间创建成功
	MsgPlayerJoined MessageType = "playerJoined" // 玩家加入
	MsgPlayerLeft   MessageType = "playerLeft"   // 玩家离开
	MsgGameState    MessageType = "gameState"    // 完整游戏状态快照（仅发给加入者）

	// 游戏流程
	MsgBetPlaced        MessageType = "betPlaced"        // 注额变化（下注/减注共用）
	MsgGameStateChanged MessageType = "gameStateChanged" // 游戏阶段变化
	MsgDiceResults      MessageType = "diceResults"      // 骰子结果与结算
	MsgNewRound         MessageType = "newRound"         // 新一轮开始
	MsgBalanceReset     MessageType = "balanceReset"     // 余额已重置

	// 错误
	MsgError MessageType = "error" // 错误消息
)

// Encode 将消息编码为 JSON 字节
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode 从 JSON 字节解码消息
func Decode(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
