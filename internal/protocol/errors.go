package protocol

// 错误码（随 error 事件下发，客户端据此做程序化处理）
const (
	ErrCodeUnknown         = "UNKNOWN"
	ErrCodeInvalidMsg      = "INVALID_MESSAGE"
	ErrCodeRoomNotFound    = "ROOM_NOT_FOUND" // 客户端收到后应清除缓存的房间 ID
	ErrCodeRoomFull        = "ROOM_FULL"
	ErrCodePlayerNotFound  = "PLAYER_NOT_FOUND"
	ErrCodeInvalidState    = "INVALID_STATE"
	ErrCodeInvalidAmount   = "INVALID_AMOUNT"
	ErrCodeNoBetToDecrease = "NO_BET_TO_DECREASE"
)

// ErrorMessages 错误码对应的默认消息
var ErrorMessages = map[string]string{
	ErrCodeUnknown:         "Something went wrong. Please try again.",
	ErrCodeInvalidMsg:      "Invalid message format",
	ErrCodeRoomNotFound:    "Room does not exist or has expired. Please create a new room.",
	ErrCodeRoomFull:        "Room is full",
	ErrCodePlayerNotFound:  "Player not found in this room",
	ErrCodeInvalidState:    "This action is not allowed right now",
	ErrCodeInvalidAmount:   "Invalid bet amount",
	ErrCodeNoBetToDecrease: "No bet to decrease",
}
