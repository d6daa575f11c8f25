package mahjong

import (
	"fmt"
	"slices"
)

// CountUsage 统计每种牌在手牌、副露、和牌、花牌中的实体张数
func CountUsage(hand *Hand) map[TileType]int {
	usage := make(map[TileType]int, NumRanks)
	for _, t := range hand.Concealed {
		usage[t]++
	}
	for _, m := range hand.Melds {
		for _, t := range m.Tiles {
			usage[t]++
		}
	}
	if hand.WinningTile != nil {
		usage[*hand.WinningTile]++
	}
	for _, t := range hand.Bonus {
		usage[t]++
	}
	return usage
}

// Validate 检查张数：非花牌每种最多 4 张，花牌每种最多 1 张。必须在拆牌之前执行
func Validate(hand *Hand) error {
	if err := validatePlacement(hand); err != nil {
		return err
	}
	usage := CountUsage(hand)
	for t := Wan1; t < tileTypeEnd; t++ {
		limit := MaxCopies
		if t.IsBonus() {
			limit = 1
		}
		if n := usage[t]; n > limit {
			return &RankOverflowError{Tile: t, Count: n, Limit: limit}
		}
	}
	return nil
}

// validatePlacement 花牌只能出现在花牌区，其他位置只能放可组面子的牌。副露里出现花牌算非法副露
func validatePlacement(hand *Hand) error {
	for _, t := range hand.Concealed {
		if !t.IsValid() || t.IsBonus() {
			return fmt.Errorf("%w: %s in concealed tiles", ErrInvalidTile, t)
		}
	}
	for _, m := range hand.Melds {
		for _, t := range m.Tiles {
			if !t.IsValid() || t.IsBonus() {
				return &MeldError{Kind: m.Kind, Tiles: slices.Clone(m.Tiles), Reason: "contains a non-meld tile"}
			}
		}
	}
	if hand.WinningTile != nil {
		if t := *hand.WinningTile; !t.IsValid() || t.IsBonus() {
			return fmt.Errorf("%w: %s as winning tile", ErrInvalidTile, t)
		}
	}
	for _, t := range hand.Bonus {
		if !t.IsBonus() {
			return fmt.Errorf("%w: %s among bonus tiles", ErrInvalidTile, t)
		}
	}
	return nil
}

// remaining 某种牌从本手牌视角还剩几张
func remaining(usage map[TileType]int, t TileType) int {
	if n := MaxCopies - usage[t]; n > 0 {
		return n
	}
	return 0
}
