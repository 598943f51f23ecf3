package room

// GameState 房间所处的游戏阶段，取值直接用于网络协议
type GameState string

const (
	StateBetting GameState = "betting" // 下注阶段
	StateRolling GameState = "rolling" // 掷骰动画阶段
	StateResults GameState = "results" // 结算展示阶段
)
