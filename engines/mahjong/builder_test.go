package mahjong_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taiscore/engines/mahjong"
)

func addAll(t *testing.T, b *mahjong.HandBuilder, labels string) {
	t.Helper()
	for _, tile := range mustTiles(t, labels) {
		require.NoError(t, b.Add(tile), "add %s", tile)
	}
}

func TestHandBuilder_FillAndScore(t *testing.T) {
	b := mahjong.NewHandBuilder(mahjong.Situation{SelfDrawn: true})
	addAll(t, b, "1m 2m 3m 4m 5m 6m 7m 8m 9m 1p 2p 3p 9p 9p 東 春 東")
	assert.Equal(t, 16, b.Slots())

	require.NoError(t, b.Add(mahjong.East))
	assert.Equal(t, mahjong.HandSlots, b.Slots())
	assert.ErrorIs(t, b.Add(mahjong.Wan5), mahjong.ErrHandFull)

	hand := b.Hand()
	require.NotNil(t, hand.WinningTile)
	assert.Equal(t, mahjong.East, *hand.WinningTile)
	assert.Equal(t, []mahjong.TileType{mahjong.Spring}, hand.Bonus)

	res, err := mahjong.Score(&hand)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Total)
}

func TestHandBuilder_Limits(t *testing.T) {
	b := mahjong.NewHandBuilder(mahjong.Situation{})
	addAll(t, b, "中 中 中 中")

	var overflow *mahjong.RankOverflowError
	require.True(t, errors.As(b.Add(mahjong.Red), &overflow))
	assert.Equal(t, 5, overflow.Count)

	require.NoError(t, b.Add(mahjong.Plum))
	assert.ErrorIs(t, b.Add(mahjong.Plum), mahjong.ErrDuplicateBonus)
	assert.ErrorIs(t, b.Add(mahjong.TileType(-1)), mahjong.ErrInvalidTile)
}

func TestHandBuilder_Melds(t *testing.T) {
	b := mahjong.NewHandBuilder(mahjong.Situation{})
	require.NoError(t, b.AddMeld(mustMeld(t)(mahjong.NewPung(mahjong.Wan1))))
	assert.Equal(t, 3, b.Slots())

	err := b.AddMeld(mustMeld(t)(mahjong.NewKong(mahjong.Wan1)))
	assert.ErrorIs(t, err, mahjong.ErrRankOverflow)

	err = b.AddMeld(mahjong.Meld{Kind: mahjong.MeldChow, Tiles: mustTiles(t, "1m 2m 4m")})
	assert.ErrorIs(t, err, mahjong.ErrMalformedMeld)

	for _, start := range []mahjong.TileType{mahjong.Tong1, mahjong.Tong4, mahjong.Tiao1, mahjong.Tiao4} {
		require.NoError(t, b.AddMeld(mustMeld(t)(mahjong.NewChow(start))))
	}
	assert.Equal(t, 15, b.Slots())
	assert.ErrorIs(t, b.AddMeld(mustMeld(t)(mahjong.NewChow(mahjong.Wan2))), mahjong.ErrHandFull)
}

func TestHandBuilder_RemoveAndReset(t *testing.T) {
	s := mahjong.Situation{IsDealer: true, SeatWind: mahjong.WindEast}
	b := mahjong.NewHandBuilder(s)
	require.NoError(t, b.AddMeld(mustMeld(t)(mahjong.NewPung(mahjong.Red))))
	addAll(t, b, "1m 2m 夏")

	snapshot := b.Hand()

	require.NoError(t, b.RemoveLast())
	assert.Equal(t, 4, b.Slots())
	require.NoError(t, b.RemoveBonus(mahjong.Summer))
	assert.ErrorIs(t, b.RemoveBonus(mahjong.Summer), mahjong.ErrNothingToRemove)
	require.NoError(t, b.RemoveLast())
	require.NoError(t, b.RemoveLast())
	assert.Zero(t, b.Slots())
	assert.ErrorIs(t, b.RemoveLast(), mahjong.ErrNothingToRemove)

	// 快照不受之后修改影响
	assert.Len(t, snapshot.Concealed, 2)
	assert.Len(t, snapshot.Melds, 1)
	assert.Equal(t, []mahjong.TileType{mahjong.Summer}, snapshot.Bonus)

	addAll(t, b, "1m 2m")
	b.Reset()
	hand := b.Hand()
	assert.Zero(t, hand.Slots())
	assert.Equal(t, s, hand.Situation)
}

func TestHandBuilder_RemoveLastFollowsAddOrder(t *testing.T) {
	b := mahjong.NewHandBuilder(mahjong.Situation{})
	addAll(t, b, "1m 2m")
	require.NoError(t, b.AddMeld(mustMeld(t)(mahjong.NewPung(mahjong.Red))))
	addAll(t, b, "3m")

	require.NoError(t, b.RemoveLast())
	hand := b.Hand()
	assert.Len(t, hand.Concealed, 2)
	assert.Len(t, hand.Melds, 1)

	// 副露是最近一次加入的，先退副露
	require.NoError(t, b.RemoveLast())
	hand = b.Hand()
	assert.Empty(t, hand.Melds)
	assert.Equal(t, mustTiles(t, "1m 2m"), hand.Concealed)

	require.NoError(t, b.RemoveLast())
	require.NoError(t, b.RemoveLast())
	assert.ErrorIs(t, b.RemoveLast(), mahjong.ErrNothingToRemove)
}
