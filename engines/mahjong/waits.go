package mahjong

// Wait 听的一种牌，以及从本手牌视角还剩几张
type Wait struct {
	Tile      TileType
	Remaining int
}

// WaitingTiles 使用默认引擎计算听牌
func WaitingTiles(hand *Hand) []TileType {
	return defaultEngine.WaitingTiles(hand)
}

// WaitingTiles 16 个槽位、尚无和牌时，哪些牌能和。不适用或没听牌时返回空
func (eg *Engine) WaitingTiles(hand *Hand) []TileType {
	waits := eg.WaitingTilesDetail(hand)
	if len(waits) == 0 {
		return nil
	}
	out := make([]TileType, len(waits))
	for i, w := range waits {
		out[i] = w.Tile
	}
	return out
}

// WaitingTilesDetail 枚举听牌 + 计算进张，结果按 TileType 升序
func (eg *Engine) WaitingTilesDetail(hand *Hand) []Wait {
	if hand == nil || hand.WinningTile != nil || hand.Slots() != HandSlots-1 {
		return nil
	}
	if err := Validate(hand); err != nil {
		return nil
	}
	for _, m := range hand.Melds {
		if m.Validate() != nil {
			return nil
		}
	}

	usage := CountUsage(hand)
	base := Hand34FromTiles(hand.Concealed)
	var waits []Wait
	for t := 0; t < NumRanks; t++ {
		left := remaining(usage, TileType(t))
		if left == 0 {
			continue
		}
		work := base
		work[t]++
		if eg.searcher.Check(work, len(hand.Melds)).Any() {
			waits = append(waits, Wait{Tile: TileType(t), Remaining: left})
		}
	}
	return waits
}
