package mahjong

import (
	"errors"
	"fmt"
)

// 计分拒绝原因
var (
	ErrRankOverflow   = errors.New("tile rank overflow")
	ErrIncompleteHand = errors.New("incomplete hand")
	ErrNotWinningHand = errors.New("not a winning hand")
	ErrMalformedMeld  = errors.New("malformed meld")
)

// 牌面相关错误
var (
	ErrInvalidTile = errors.New("invalid tile")
	ErrUnknownTile = errors.New("unknown tile label")
)

// 组牌相关错误
var (
	ErrHandFull        = errors.New("hand is full")
	ErrDuplicateBonus  = errors.New("duplicate bonus tile")
	ErrNothingToRemove = errors.New("nothing to remove")
)

// RankOverflowError 某种牌的使用张数超过上限
type RankOverflowError struct {
	Tile  TileType
	Count int
	Limit int
}

func (e *RankOverflowError) Error() string {
	return fmt.Sprintf("%s used %d times, limit %d", e.Tile, e.Count, e.Limit)
}

func (e *RankOverflowError) Is(target error) bool {
	return target == ErrRankOverflow
}

// MeldError 副露结构不合法
type MeldError struct {
	Kind   MeldKind
	Tiles  []TileType
	Reason string
}

func (e *MeldError) Error() string {
	return fmt.Sprintf("malformed %s %v: %s", e.Kind, e.Tiles, e.Reason)
}

func (e *MeldError) Is(target error) bool {
	return target == ErrMalformedMeld
}
