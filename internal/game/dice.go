package game

import "math/rand/v2"

// DiceCount 每次掷出的骰子数量
const DiceCount = 6

// DiceResult 一次掷骰的结果，恰好六个符号，允许重复，顺序有意义
type DiceResult []Symbol

// Roller 掷骰器，测试时可注入确定性实现
type Roller interface {
	Roll() DiceResult
}

// RandomRoller 基于 math/rand/v2 的均匀掷骰器
type RandomRoller struct{}

// NewRandomRoller 创建随机掷骰器
func NewRandomRoller() *RandomRoller {
	return &RandomRoller{}
}

// Roll 独立均匀地掷出六个骰子（有放回）
func (r *RandomRoller) Roll() DiceResult {
	result := make(DiceResult, DiceCount)
	for i := range result {
		result[i] = Symbols[rand.IntN(len(Symbols))]
	}
	return result
}

// FixedRoller 固定结果的掷骰器（测试用）
type FixedRoller struct {
	Result DiceResult
}

// Roll 返回预设结果的副本
func (r *FixedRoller) Roll() DiceResult {
	result := make(DiceResult, len(r.Result))
	copy(result, r.Result)
	return result
}
