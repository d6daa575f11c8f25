package mahjong_test

import (
	"testing"

	"taiscore/engines/mahjong"
)

func mustTiles(tb testing.TB, labels string) []mahjong.TileType {
	tb.Helper()
	ts, err := mahjong.ParseTiles(labels)
	if err != nil {
		tb.Fatalf("parse %q: %v", labels, err)
	}
	return ts
}

func h34(tb testing.TB, labels string) mahjong.Hand34 {
	tb.Helper()
	return mahjong.Hand34FromTiles(mustTiles(tb, labels))
}

// mustMeld 用法：mustMeld(t)(mahjong.NewPung(x))
func mustMeld(tb testing.TB) func(mahjong.Meld, error) mahjong.Meld {
	return func(m mahjong.Meld, err error) mahjong.Meld {
		tb.Helper()
		if err != nil {
			tb.Fatalf("build meld: %v", err)
		}
		return m
	}
}

// newHand concealed 为手牌标签，winning 为空表示尚未和牌
func newHand(tb testing.TB, concealed, winning string, s mahjong.Situation, melds ...mahjong.Meld) *mahjong.Hand {
	tb.Helper()
	h := &mahjong.Hand{
		Concealed: mustTiles(tb, concealed),
		Melds:     melds,
		Situation: s,
	}
	if winning != "" {
		t, err := mahjong.ParseTile(winning)
		if err != nil {
			tb.Fatalf("parse winning %q: %v", winning, err)
		}
		h.WinningTile = mahjong.TilePtr(t)
	}
	return h
}

func labels(items []mahjong.ScoreItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return out
}
