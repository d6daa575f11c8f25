package mahjong

import (
	"sync"
)

// Hand34 34 种可组面子的牌的张数，花牌不计
type Hand34 [NumRanks]uint8

// Memo 和牌判定结果的缓存
type Memo interface {
	Get(key string) (any, bool)
	Set(key string, value any) bool
}

// WinCheck 一次和牌判定的结果
type WinCheck struct {
	Standard bool // 5 面子 1 雀头（或副露后剩余部分）
	AllPairs bool // 嚦咕嚦咕
}

func (w WinCheck) Any() bool {
	return w.Standard || w.AllPairs
}

type Searcher struct {
	memo Memo
}

func NewSearcher() *Searcher {
	return &Searcher{memo: newMapMemo()}
}

// NewSearcherWithMemo 使用外部缓存，例如 common/cache 的 ristretto 缓存
func NewSearcherWithMemo(memo Memo) *Searcher {
	if memo == nil {
		memo = newMapMemo()
	}
	return &Searcher{memo: memo}
}

// Check 判断手牌（含和牌）是否和牌，meldCount 为副露组数
func (s *Searcher) Check(h Hand34, meldCount int) WinCheck {
	key := h.keyWithFixedMelds(meldCount)
	if v, ok := s.memo.Get(key); ok {
		if wc, ok := v.(WinCheck); ok {
			return wc
		}
	}

	wc := WinCheck{
		Standard: IsStandardWin(h),
		AllPairs: IsAllPairsWin(h, meldCount),
	}
	s.memo.Set(key, wc)
	return wc
}

// IsStandardWin 普通牌型，核心思想：找雀头、组面子
func IsStandardWin(h Hand34) bool {
	if h.Total()%3 != 2 {
		return false
	}
	for j := 0; j < NumRanks; j++ {
		if h[j] < 2 {
			continue
		}
		work := h
		work[j] -= 2
		if canFormMelds(work) {
			return true
		}
	}
	return false
}

// IsAllPairsWin 嚦咕嚦咕：门清 17 张，七个对子加一个刻子，四张同牌算两个对子。
// 只由对子和四张组成的牌张数总是偶数，凑不成 17 张，所以这里按 17 张的读法：
// 恰好一种牌为 3 张（算一个对子），合计 8 个对子
func IsAllPairsWin(h Hand34, meldCount int) bool {
	if meldCount != 0 || h.Total() != HandSlots {
		return false
	}
	pairs, triplets := 0, 0
	for i := 0; i < NumRanks; i++ {
		switch h[i] {
		case 0:
		case 2:
			pairs++
		case 3:
			pairs++
			triplets++
		case 4:
			pairs += 2
		default:
			return false
		}
	}
	return triplets == 1 && pairs == 8
}

// CanDecompose 张数为 3 的倍数的牌能否全部拆成刻子和顺子
func CanDecompose(h Hand34) bool {
	if h.Total()%3 != 0 {
		return false
	}
	return canFormMelds(h)
}

// CanDecomposeSequences 只用顺子拆牌
func CanDecomposeSequences(h Hand34) bool {
	if h.Total()%3 != 0 {
		return false
	}
	return canFormSequences(h)
}

// canFormMelds 总是从最小的牌开始，先刻子后顺子
func canFormMelds(h Hand34) bool {
	i := h.lowest()
	if i < 0 {
		return true
	}
	// 刻子
	if h[i] >= 3 {
		work := h
		work[i] -= 3
		if canFormMelds(work) {
			return true
		}
	}
	// 顺子（仅数牌 1-7）
	if TileType(i).CanStartSequence() && h[i+1] > 0 && h[i+2] > 0 {
		work := h
		work[i]--
		work[i+1]--
		work[i+2]--
		if canFormMelds(work) {
			return true
		}
	}
	return false
}

func canFormSequences(h Hand34) bool {
	i := h.lowest()
	if i < 0 {
		return true
	}
	if !TileType(i).CanStartSequence() || h[i+1] == 0 || h[i+2] == 0 {
		return false
	}
	work := h
	work[i]--
	work[i+1]--
	work[i+2]--
	return canFormSequences(work)
}

// -------------- 拆牌见证 --------------

type GroupKind int

const (
	GroupTriplet GroupKind = iota
	GroupSequence
)

// Group 拆出来的一组面子，Start 为刻子的牌或顺子的第一张
type Group struct {
	Kind  GroupKind
	Start TileType
}

func (g Group) Tiles() []TileType {
	if g.Kind == GroupSequence {
		return []TileType{g.Start, g.Start + 1, g.Start + 2}
	}
	return []TileType{g.Start, g.Start, g.Start}
}

// Decomposition 普通牌型的一种拆法
type Decomposition struct {
	Pair   TileType
	Groups []Group
}

// Decompose 按与 IsStandardWin 相同的顺序找出第一种拆法
func Decompose(h Hand34) (Decomposition, bool) {
	if h.Total()%3 != 2 {
		return Decomposition{}, false
	}
	for j := 0; j < NumRanks; j++ {
		if h[j] < 2 {
			continue
		}
		work := h
		work[j] -= 2
		if groups, ok := collectMelds(work, nil); ok {
			return Decomposition{Pair: TileType(j), Groups: groups}, true
		}
	}
	return Decomposition{}, false
}

func collectMelds(h Hand34, acc []Group) ([]Group, bool) {
	i := h.lowest()
	if i < 0 {
		return acc, true
	}
	if h[i] >= 3 {
		work := h
		work[i] -= 3
		if out, ok := collectMelds(work, append(acc[:len(acc):len(acc)], Group{Kind: GroupTriplet, Start: TileType(i)})); ok {
			return out, true
		}
	}
	if TileType(i).CanStartSequence() && h[i+1] > 0 && h[i+2] > 0 {
		work := h
		work[i]--
		work[i+1]--
		work[i+2]--
		if out, ok := collectMelds(work, append(acc[:len(acc):len(acc)], Group{Kind: GroupSequence, Start: TileType(i)})); ok {
			return out, true
		}
	}
	return nil, false
}

// -------------- 基础工具：转换与 key --------------

// Hand34FromTiles 花牌和非法值会被忽略
func Hand34FromTiles(tiles []TileType) Hand34 {
	var h Hand34
	for _, t := range tiles {
		if t >= 0 && int(t) < NumRanks {
			h[int(t)]++
		}
	}
	return h
}

func (h Hand34) Total() int {
	n := 0
	for _, c := range h {
		n += int(c)
	}
	return n
}

// Plus 两手牌张数相加
func (h Hand34) Plus(o Hand34) Hand34 {
	for i := range h {
		h[i] += o[i]
	}
	return h
}

func (h Hand34) lowest() int {
	for k := 0; k < NumRanks; k++ {
		if h[k] > 0 {
			return k
		}
	}
	return -1
}

func (h Hand34) keyWithFixedMelds(fixedMelds int) string {
	var b [NumRanks + 1]byte
	for i := 0; i < NumRanks; i++ {
		b[i] = byte(h[i])
	}
	b[NumRanks] = byte(fixedMelds)
	return string(b[:])
}

type mapMemo struct {
	mu sync.RWMutex
	m  map[string]any
}

func newMapMemo() *mapMemo {
	return &mapMemo{m: make(map[string]any, 4096)}
}

func (c *mapMemo) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[key]
	return v, ok
}

func (c *mapMemo) Set(key string, value any) bool {
	c.mu.Lock()
	c.m[key] = value
	c.mu.Unlock()
	return true
}
