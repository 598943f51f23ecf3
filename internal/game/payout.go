package game

// PayoutSet 单个玩家按符号记录的有符号结算金额
type PayoutSet map[Symbol]int

// CountSymbols 将骰子结果统计为 符号 → 出现次数 直方图
func CountSymbols(result DiceResult) map[Symbol]int {
	counts := make(map[Symbol]int, len(Symbols))
	for _, s := range result {
		counts[s]++
	}
	return counts
}

// CalculatePayouts 根据所有玩家的注额与骰子结果计算结算金额。
// 规则：符号出现 k 次（k ≥ 1）时，注额 a 赢得 a*k；未出现则输掉 -a；
// 未下注的符号始终为 0，但仍出现在结果中，便于下游遍历完整的符号集。
// 纯函数：相同输入必然产生相同输出，不感知玩家余额（余额截断由房间负责）。
func CalculatePayouts(bets map[string]BetSet, result DiceResult) map[string]PayoutSet {
	counts := CountSymbols(result)

	payouts := make(map[string]PayoutSet, len(bets))
	for playerID, playerBets := range bets {
		payout := make(PayoutSet, len(Symbols))
		for _, symbol := range Symbols {
			amount := playerBets[symbol]
			if amount <= 0 {
				payout[symbol] = 0
				continue
			}
			if count := counts[symbol]; count > 0 {
				payout[symbol] = amount * count
			} else {
				payout[symbol] = -amount
			}
		}
		payouts[playerID] = payout
	}
	return payouts
}

// Total 结算金额总和
func (p PayoutSet) Total() int {
	total := 0
	for _, amount := range p {
		total += amount
	}
	return total
}
