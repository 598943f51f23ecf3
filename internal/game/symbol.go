package game

// Symbol 骰面符号，同时作为下注目标与骰子结果
type Symbol string

// 六种固定符号
const (
	SymbolSpade   Symbol = "Spade"
	SymbolHeart   Symbol = "Heart"
	SymbolDiamond Symbol = "Diamond"
	SymbolClub    Symbol = "Club"
	SymbolFlag    Symbol = "Flag"
	SymbolCrown   Symbol = "Crown"
)

// Symbols 所有符号（固定顺序）
var Symbols = []Symbol{
	SymbolSpade,
	SymbolHeart,
	SymbolDiamond,
	SymbolClub,
	SymbolFlag,
	SymbolCrown,
}

// IsValid 检查符号是否合法
func (s Symbol) IsValid() bool {
	switch s {
	case SymbolSpade, SymbolHeart, SymbolDiamond, SymbolClub, SymbolFlag, SymbolCrown:
		return true
	}
	return false
}

// BetSet 单个玩家按符号记录的注额，六个符号始终全部存在
type BetSet map[Symbol]int

// NewBetSet 创建全零注额
func NewBetSet() BetSet {
	bets := make(BetSet, len(Symbols))
	for _, s := range Symbols {
		bets[s] = 0
	}
	return bets
}

// Clone 复制注额（用于会话保存，避免共享底层 map）
func (b BetSet) Clone() BetSet {
	clone := make(BetSet, len(b))
	for s, amount := range b {
		clone[s] = amount
	}
	return clone
}

// Total 当前注额总和
func (b BetSet) Total() int {
	total := 0
	for _, amount := range b {
		total += amount
	}
	return total
}

// Clear 将所有符号的注额归零
func (b BetSet) Clear() {
	for _, s := range Symbols {
		b[s] = 0
	}
}
