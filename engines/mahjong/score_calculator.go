package mahjong

import (
	"fmt"

	"taiscore/common/log"
)

// ScoreResult 和牌的台数与明细
type ScoreResult struct {
	Total int
	Items []ScoreItem
	Facts ShapeFacts
}

// Engine 计分引擎，无状态，可并发使用
type Engine struct {
	searcher *Searcher
	rules    []RuleChecker
}

type Option func(*Engine)

// WithSearcher 替换和牌判定器（通常是带 ristretto 缓存的版本）
func WithSearcher(s *Searcher) Option {
	return func(eg *Engine) {
		if s != nil {
			eg.searcher = s
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	eg := &Engine{
		searcher: NewSearcher(),
		rules:    TaiwanRuleRegistry,
	}
	for _, opt := range opts {
		opt(eg)
	}
	return eg
}

var defaultEngine = NewEngine()

// Score 使用默认引擎计分
func Score(hand *Hand) (*ScoreResult, error) {
	return defaultEngine.Score(hand)
}

// Score 计算一手 17 槽位的和牌。拒绝时返回的错误可用 errors.Is 区分：
// ErrIncompleteHand、ErrRankOverflow、ErrInvalidTile、ErrMalformedMeld、ErrNotWinningHand
func (eg *Engine) Score(hand *Hand) (*ScoreResult, error) {
	if err := checkComplete(hand); err != nil {
		return nil, err
	}
	if err := Validate(hand); err != nil {
		return nil, err
	}
	for _, m := range hand.Melds {
		if err := m.Validate(); err != nil {
			log.Warn("收到未被拦截的非法副露: %v", err)
			return nil, err
		}
	}

	closed := Hand34FromTiles(hand.ClosedTiles())
	wc := eg.searcher.Check(closed, len(hand.Melds))
	if !wc.Any() {
		log.Debug("不是和牌: %s", TilesString(hand.ClosedTiles()))
		return nil, ErrNotWinningHand
	}

	facts := Classify(hand, wc)
	ctx := &RuleContext{Hand: hand, Facts: &facts}
	res := &ScoreResult{Facts: facts}
	for _, rule := range eg.rules {
		for _, it := range rule.Check(ctx) {
			res.Items = append(res.Items, it)
			res.Total += it.Points
		}
	}
	if res.Total == 0 {
		res.Items = append(res.Items, item(RuleBasicWin, 0))
	}
	log.Debug("计分完成: %d台 %v", res.Total, res.Items)
	return res, nil
}

func checkComplete(hand *Hand) error {
	if hand == nil {
		return fmt.Errorf("%w: no hand", ErrIncompleteHand)
	}
	if slots := hand.Slots(); slots != HandSlots {
		return fmt.Errorf("%w: %d of %d slots", ErrIncompleteHand, slots, HandSlots)
	}
	if hand.WinningTile == nil {
		return fmt.Errorf("%w: missing winning tile", ErrIncompleteHand)
	}
	return nil
}
