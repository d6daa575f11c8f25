package mahjong

import (
	"fmt"
	"slices"
)

// HandBuilder 由调用方持有的组牌状态，逐张加牌/退牌，需要计分时取 Hand 快照
type HandBuilder struct {
	hand  Hand
	order []addKind // 手牌和副露的加入顺序，供 RemoveLast 回退
}

type addKind int

const (
	addedTile addKind = iota
	addedMeld
)

func NewHandBuilder(s Situation) *HandBuilder {
	return &HandBuilder{hand: Hand{Situation: s}}
}

func (b *HandBuilder) SetSituation(s Situation) {
	b.hand.Situation = s
}

func (b *HandBuilder) Slots() int {
	return b.hand.Slots()
}

// Add 加一张牌：花牌进花牌区；其余先填满 16 张手牌，再作为和牌
func (b *HandBuilder) Add(t TileType) error {
	if !t.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidTile, t)
	}
	if t.IsBonus() {
		if slices.Contains(b.hand.Bonus, t) {
			return fmt.Errorf("%w: %s", ErrDuplicateBonus, t)
		}
		b.hand.Bonus = append(b.hand.Bonus, t)
		return nil
	}

	if n := CountUsage(&b.hand)[t]; n >= MaxCopies {
		return &RankOverflowError{Tile: t, Count: n + 1, Limit: MaxCopies}
	}
	switch slots := b.hand.Slots(); {
	case slots < HandSlots-1:
		b.hand.Concealed = append(b.hand.Concealed, t)
		b.order = append(b.order, addedTile)
	case slots == HandSlots-1 && b.hand.WinningTile == nil:
		b.hand.WinningTile = TilePtr(t)
	default:
		return ErrHandFull
	}
	return nil
}

// AddMeld 加一组副露，必须在和牌之前
func (b *HandBuilder) AddMeld(m Meld) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if b.hand.WinningTile != nil || b.hand.Slots()+MeldSlots > HandSlots-1 {
		return ErrHandFull
	}
	usage := CountUsage(&b.hand)
	for _, t := range m.Tiles {
		usage[t]++
		if usage[t] > MaxCopies {
			return &RankOverflowError{Tile: t, Count: usage[t], Limit: MaxCopies}
		}
	}
	b.hand.Melds = append(b.hand.Melds, Meld{Kind: m.Kind, Tiles: slices.Clone(m.Tiles), Concealed: m.Concealed})
	b.order = append(b.order, addedMeld)
	return nil
}

// RemoveLast 撤销最近一次加入：和牌总是最后加入，其次按加入顺序退手牌或副露。花牌用 RemoveBonus
func (b *HandBuilder) RemoveLast() error {
	if b.hand.WinningTile != nil {
		b.hand.WinningTile = nil
		return nil
	}
	if len(b.order) == 0 {
		return ErrNothingToRemove
	}
	last := b.order[len(b.order)-1]
	b.order = b.order[:len(b.order)-1]
	if last == addedMeld {
		b.hand.Melds = b.hand.Melds[:len(b.hand.Melds)-1]
	} else {
		b.hand.Concealed = b.hand.Concealed[:len(b.hand.Concealed)-1]
	}
	return nil
}

func (b *HandBuilder) RemoveBonus(t TileType) error {
	i := slices.Index(b.hand.Bonus, t)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNothingToRemove, t)
	}
	b.hand.Bonus = slices.Delete(b.hand.Bonus, i, i+1)
	return nil
}

// Reset 清空牌，保留场况
func (b *HandBuilder) Reset() {
	b.hand = Hand{Situation: b.hand.Situation}
	b.order = nil
}

// Hand 当前状态的深拷贝，之后对 builder 的修改不会影响它
func (b *HandBuilder) Hand() Hand {
	return b.hand.Clone()
}
