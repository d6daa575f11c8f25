package app

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"taiscore/common/cache"
	"taiscore/common/config"
	"taiscore/common/log"
	"taiscore/engines/mahjong"
)

// Scorer 把配置、缓存、标签解析和计分引擎组装在一起
type Scorer struct {
	engine   *mahjong.Engine
	memo     *cache.GeneralCache
	notation atomic.Pointer[mahjong.Notation]
}

func NewScorer(c *config.Config) (*Scorer, error) {
	s := &Scorer{}
	var opts []mahjong.Option
	if c.Cache.Enabled {
		memo, err := cache.NewGeneralCache(c.Cache.MaxCost, c.Cache.TTL)
		if err != nil {
			return nil, err
		}
		s.memo = memo
		opts = append(opts, mahjong.WithSearcher(mahjong.NewSearcherWithMemo(memo)))
	}
	s.engine = mahjong.NewEngine(opts...)
	if err := s.Reload(c); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Reload 配置热更新：只替换标签别名
func (s *Scorer) Reload(c *config.Config) error {
	n, err := mahjong.NewNotation(c.Aliases)
	if err != nil {
		return fmt.Errorf("加载标签别名失败: %w", err)
	}
	s.notation.Store(n)
	return nil
}

func (s *Scorer) Close() {
	if s.memo != nil {
		log.Debug("和牌缓存命中率: %.2f", s.memo.HitRatio())
		s.memo.Close()
	}
}

// ReportItem 明细行
type ReportItem struct {
	Label  string `yaml:"label" json:"label"`
	Points int    `yaml:"points" json:"points"`
}

// Report 一手牌的计分结果或拒绝原因
type Report struct {
	ID        string       `yaml:"id,omitempty" json:"id,omitempty"`
	Total     int          `yaml:"total" json:"total"`
	Items     []ReportItem `yaml:"items,omitempty" json:"items,omitempty"`
	Rejection string       `yaml:"rejection,omitempty" json:"rejection,omitempty"`
	Reason    string       `yaml:"reason,omitempty" json:"reason,omitempty"`
}

func (r Report) Rejected() bool {
	return r.Rejection != ""
}

// WaitReport 听牌结果
type WaitReport struct {
	ID    string     `yaml:"id,omitempty" json:"id,omitempty"`
	Slots int        `yaml:"slots" json:"slots"`
	Waits []WaitItem `yaml:"waits" json:"waits"`
}

type WaitItem struct {
	Tile      string `yaml:"tile" json:"tile"`
	Remaining int    `yaml:"remaining" json:"remaining"`
}

// Score 计分。拒绝不是错误，写在 Report 里
func (s *Scorer) Score(hf HandFile) Report {
	rep := Report{ID: hf.ID}
	hand, err := hf.ToHand(s.notation.Load())
	if err != nil {
		return reject(rep, err)
	}
	res, err := s.engine.Score(&hand)
	if err != nil {
		return reject(rep, err)
	}
	rep.Total = res.Total
	for _, it := range res.Items {
		rep.Items = append(rep.Items, ReportItem{Label: it.Label, Points: it.Points})
	}
	return rep
}

func (s *Scorer) Waits(hf HandFile) (WaitReport, error) {
	rep := WaitReport{ID: hf.ID, Waits: []WaitItem{}}
	hand, err := hf.ToHand(s.notation.Load())
	if err != nil {
		return rep, err
	}
	rep.Slots = hand.Slots()
	for _, w := range s.engine.WaitingTilesDetail(&hand) {
		rep.Waits = append(rep.Waits, WaitItem{Tile: w.Tile.String(), Remaining: w.Remaining})
	}
	return rep, nil
}

// Batch 并发计分，结果顺序与输入一致；没有 id 的手牌会分配一个
func (s *Scorer) Batch(ctx context.Context, hands []HandFile, workers int) ([]Report, error) {
	out := make([]Report, len(hands))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i := range hands {
		hf := hands[i]
		if hf.ID == "" {
			hf.ID = uuid.NewString()
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = s.Score(hf)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func reject(rep Report, err error) Report {
	rep.Rejection = RejectionKind(err)
	rep.Reason = err.Error()
	return rep
}

// RejectionKind 把错误归类，供调用方展示
func RejectionKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, mahjong.ErrIncompleteHand):
		return "incomplete-hand"
	case errors.Is(err, mahjong.ErrRankOverflow):
		return "rank-overflow"
	case errors.Is(err, mahjong.ErrMalformedMeld):
		return "malformed-meld"
	case errors.Is(err, mahjong.ErrNotWinningHand):
		return "not-winning"
	case errors.Is(err, mahjong.ErrUnknownTile), errors.Is(err, mahjong.ErrInvalidTile):
		return "invalid-tile"
	default:
		return "error"
	}
}
