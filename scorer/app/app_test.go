package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"taiscore/common/config"
	"taiscore/engines/mahjong"
)

func newTestScorer(t *testing.T) *Scorer {
	t.Helper()
	c := config.Default()
	c.Aliases = map[string]string{"chun": "中"}
	s, err := NewScorer(c)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func selfDrawnHandFile() HandFile {
	return HandFile{
		ID:        "a",
		Concealed: []string{"1m 2m 3m", "4m 5m 6m", "7m 8m 9m", "1p 2p 3p", "9p 9p", "東 東"},
		Winning:   "東",
		SelfDrawn: true,
		RoundWind: "east",
		SeatWind:  "東",
	}
}

func TestHandFile_ToHand(t *testing.T) {
	hf := HandFile{
		Concealed: []string{"2p 3p 4p", "5s"},
		Melds: []MeldFile{
			{Kind: "碰", Tiles: []string{"chun chun chun"}},
			{Kind: "kong", Tiles: []string{"北", "北", "北", "北"}, Concealed: true},
			{Kind: "chow", Tiles: []string{"3s,1s,2s"}},
		},
		Winning:   "5s",
		Bonus:     []string{"春 f5"},
		Dealer:    false,
		Streak:    3,
		RoundWind: "south",
		SeatWind:  "w",
	}
	n, err := mahjong.NewNotation(map[string]string{"chun": "中"})
	require.NoError(t, err)

	hand, err := hf.ToHand(n)
	require.NoError(t, err)
	assert.Len(t, hand.Concealed, 4)
	require.Len(t, hand.Melds, 3)
	assert.Equal(t, mahjong.MeldPung, hand.Melds[0].Kind)
	assert.Equal(t, mahjong.Red, hand.Melds[0].Tiles[0])
	assert.True(t, hand.Melds[1].Concealed)
	assert.Equal(t, []mahjong.TileType{mahjong.Spring, mahjong.Plum}, hand.Bonus)
	assert.Equal(t, mahjong.WindSouth, hand.RoundWind)
	assert.Equal(t, mahjong.WindWest, hand.SeatWind)
	assert.Zero(t, hand.DealerStreak, "streak only applies to the dealer")
	assert.Equal(t, 14, hand.Slots())
}

func TestHandFile_ToHandErrors(t *testing.T) {
	cases := []struct {
		name string
		hf   HandFile
		want error
	}{
		{"unknown tile", HandFile{Concealed: []string{"1z"}}, mahjong.ErrUnknownTile},
		{"unknown meld kind", HandFile{Melds: []MeldFile{{Kind: "eye", Tiles: []string{"1m 1m"}}}}, mahjong.ErrMalformedMeld},
		{"broken chow", HandFile{Melds: []MeldFile{{Kind: "吃", Tiles: []string{"1m 2m 4m"}}}}, mahjong.ErrMalformedMeld},
		{"wind", HandFile{SeatWind: "中"}, mahjong.ErrInvalidTile},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := c.hf.ToHand(nil)
			assert.ErrorIs(t, err, c.want)
		})
	}
}

func TestScorer_Score(t *testing.T) {
	s := newTestScorer(t)

	rep := s.Score(selfDrawnHandFile())
	assert.False(t, rep.Rejected())
	assert.Equal(t, 5, rep.Total)
	assert.Equal(t, []ReportItem{
		{Label: "圈風東", Points: 1},
		{Label: "門風東", Points: 1},
		{Label: "門清自摸", Points: 3},
	}, rep.Items)

	hf := selfDrawnHandFile()
	hf.Winning = ""
	rep = s.Score(hf)
	assert.True(t, rep.Rejected())
	assert.Equal(t, "incomplete-hand", rep.Rejection)
	assert.Zero(t, rep.Total)
}

func TestScorer_Waits(t *testing.T) {
	s := newTestScorer(t)

	hf := HandFile{ID: "w", Concealed: []string{"1m 2m 3m 4m 5m 6m 7m 8m 9m 1p 2p 3p 東 東 5s 6s"}}
	rep, err := s.Waits(hf)
	require.NoError(t, err)
	assert.Equal(t, 16, rep.Slots)
	assert.Equal(t, []WaitItem{{Tile: "4條", Remaining: 4}, {Tile: "7條", Remaining: 4}}, rep.Waits)

	_, err = s.Waits(HandFile{Concealed: []string{"??"}})
	assert.ErrorIs(t, err, mahjong.ErrUnknownTile)
}

func TestScorer_Reload(t *testing.T) {
	s := newTestScorer(t)
	hf := HandFile{Concealed: []string{"hatsu"}}
	_, err := s.Waits(hf)
	require.ErrorIs(t, err, mahjong.ErrUnknownTile)

	c := config.Default()
	c.Aliases = map[string]string{"hatsu": "發"}
	require.NoError(t, s.Reload(c))
	_, err = s.Waits(hf)
	assert.NoError(t, err)

	c.Aliases = map[string]string{"bad": "nope"}
	assert.Error(t, s.Reload(c))
}

func TestScorer_Batch(t *testing.T) {
	s := newTestScorer(t)

	short := HandFile{ID: "short", Concealed: []string{"1m 2m 3m"}, Winning: "4m"}
	anon := selfDrawnHandFile()
	anon.ID = ""
	hands := []HandFile{selfDrawnHandFile(), short, anon}

	reports, err := s.Batch(context.Background(), hands, 2)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, "a", reports[0].ID)
	assert.Equal(t, 5, reports[0].Total)
	assert.Equal(t, "incomplete-hand", reports[1].Rejection)
	assert.NotEmpty(t, reports[2].ID)
	assert.Equal(t, 5, reports[2].Total)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Batch(ctx, hands, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRejectionKind(t *testing.T) {
	assert.Equal(t, "", RejectionKind(nil))
	assert.Equal(t, "rank-overflow", RejectionKind(&mahjong.RankOverflowError{Tile: mahjong.Wan1, Count: 5, Limit: 4}))
	assert.Equal(t, "malformed-meld", RejectionKind(&mahjong.MeldError{Kind: mahjong.MeldChow}))
	assert.Equal(t, "not-winning", RejectionKind(mahjong.ErrNotWinningHand))
	assert.Equal(t, "invalid-tile", RejectionKind(mahjong.ErrUnknownTile))
	assert.Equal(t, "error", RejectionKind(errors.New("boom")))
}

func TestRender(t *testing.T) {
	rep := Report{ID: "a", Total: 5, Items: []ReportItem{{Label: "門清自摸", Points: 3}}}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatText, rep))
	assert.Equal(t, "[a]\n總計：5 台\n  門清自摸 (3台)\n", buf.String())

	buf.Reset()
	require.NoError(t, Render(&buf, FormatJSON, []Report{rep}))
	var decoded []Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []Report{rep}, decoded)

	buf.Reset()
	require.NoError(t, Render(&buf, FormatYAML, rep))
	var fromYAML Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	assert.Equal(t, rep, fromYAML)

	buf.Reset()
	require.NoError(t, Render(&buf, FormatText, WaitReport{Slots: 16, Waits: []WaitItem{{Tile: "東", Remaining: 2}}}))
	assert.Equal(t, "聽：東 x2\n", buf.String())

	buf.Reset()
	require.NoError(t, Render(&buf, FormatText, WaitReport{Slots: 16}))
	assert.Equal(t, "未聽牌 (16 槽位)\n", buf.String())

	assert.Error(t, Render(&buf, FormatText, 42))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)
	f, err = ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)
	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestReadFiles(t *testing.T) {
	hf, err := ReadHandFile(filepath.Join("..", "resource", "hands", "concealed_self_drawn.yml"))
	require.NoError(t, err)
	assert.Equal(t, "concealed-self-drawn", hf.ID)
	assert.True(t, hf.SelfDrawn)

	hands, err := ReadBatchFile(filepath.Join("..", "resource", "hands", "batch.yml"))
	require.NoError(t, err)
	require.Len(t, hands, 3)
	assert.Equal(t, "exposed-pungs", hands[1].ID)
	assert.Len(t, hands[1].Melds, 4)

	bad := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("concealed: {"), 0o644))
	_, err = ReadHandFile(bad)
	assert.Error(t, err)
}

func TestSampleHandsHaveValidSlots(t *testing.T) {
	s := newTestScorer(t)
	dir := filepath.Join("..", "resource", "hands")

	hf, err := ReadHandFile(filepath.Join(dir, "concealed_self_drawn.yml"))
	require.NoError(t, err)
	hand, err := hf.ToHand(nil)
	require.NoError(t, err)
	assert.Equal(t, mahjong.HandSlots, hand.Slots())
	assert.NoError(t, mahjong.Validate(&hand))
	assert.False(t, s.Score(hf).Rejected())

	hf, err = ReadHandFile(filepath.Join(dir, "waiting.yml"))
	require.NoError(t, err)
	rep, err := s.Waits(hf)
	require.NoError(t, err)
	assert.Equal(t, mahjong.HandSlots-1, rep.Slots)
	assert.NotEmpty(t, rep.Waits)
}

func TestRunScore(t *testing.T) {
	_, err := config.Load("")
	require.NoError(t, err)

	var buf bytes.Buffer
	opts := Options{Format: FormatText, Out: &buf}
	require.NoError(t, RunScore(context.Background(), opts, filepath.Join("..", "resource", "hands", "concealed_self_drawn.yml")))
	assert.Contains(t, buf.String(), "總計：5 台")

	buf.Reset()
	require.NoError(t, RunBatch(context.Background(), opts, filepath.Join("..", "resource", "hands", "batch.yml")))
	out := buf.String()
	assert.Contains(t, out, "[pure-flush-all-pairs]\n總計：17 台")
	assert.Contains(t, out, "[exposed-pungs]\n總計：8 台")
	assert.Contains(t, out, "拒絕 (incomplete-hand)")

	dir := t.TempDir()
	short := filepath.Join(dir, "short.yml")
	require.NoError(t, os.WriteFile(short, []byte("concealed: [1m 2m 3m]\nwinning: 4m\n"), 0o644))
	err = RunScore(context.Background(), opts, short)
	assert.ErrorIs(t, err, ErrRejected)
}
