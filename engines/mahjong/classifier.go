package mahjong

type FlushKind int

const (
	FlushNone      FlushKind = iota // 多门花色
	FlushAllHonors                  // 字一色
	FlushPure                       // 清一色
	FlushMixed                      // 混一色
)

func (f FlushKind) String() string {
	switch f {
	case FlushAllHonors:
		return "all-honors"
	case FlushPure:
		return "pure"
	case FlushMixed:
		return "mixed"
	default:
		return "none"
	}
}

// ShapeFacts 从牌型中得出的计分事实
type ShapeFacts struct {
	StandardWin       bool
	AllPairs          bool
	Flush             FlushKind
	AllTriplets       bool // 碰碰胡
	AllSequences      bool // 平胡
	ConcealedTriplets int
	DragonTriplets    []TileType
	RoundWindTriplet  bool
	SeatWindTriplet   bool
	FullyConcealed    bool
	Witness           *Decomposition
}

// Classify 在已确认和牌的前提下提取牌型事实。三种牌型（嚦咕嚦咕、碰碰胡、平胡）互斥
func Classify(hand *Hand, wc WinCheck) ShapeFacts {
	closed := Hand34FromTiles(hand.ClosedTiles())
	pool := closed.Plus(Hand34FromTiles(hand.MeldTiles()))

	facts := ShapeFacts{
		StandardWin:    wc.Standard,
		AllPairs:       wc.AllPairs,
		Flush:          classifyFlush(pool),
		FullyConcealed: hand.FullyConcealed(),
	}

	if wc.Standard {
		if d, ok := Decompose(closed); ok {
			facts.Witness = &d
		}
		if !wc.AllPairs {
			facts.AllTriplets = isAllTriplets(closed, hand.Melds)
			if !facts.AllTriplets {
				facts.AllSequences = isAllSequences(hand, closed, pool)
			}
		}
	}

	facts.ConcealedTriplets = countConcealedTriplets(hand)

	for _, d := range DragonTypes() {
		if pool[d] >= 3 {
			facts.DragonTriplets = append(facts.DragonTriplets, d)
		}
	}
	facts.RoundWindTriplet = hand.RoundWind.IsValid() && pool[hand.RoundWind.Tile()] >= 3
	facts.SeatWindTriplet = hand.SeatWind.IsValid() && pool[hand.SeatWind.Tile()] >= 3
	return facts
}

func classifyFlush(pool Hand34) FlushKind {
	var suits [3]bool
	suitCount := 0
	hasHonor := false
	for i := 0; i < NumRanks; i++ {
		if pool[i] == 0 {
			continue
		}
		t := TileType(i)
		if t.IsHonor() {
			hasHonor = true
			continue
		}
		if s := t.Suit(); !suits[s] {
			suits[s] = true
			suitCount++
		}
	}
	switch {
	case suitCount == 0 && hasHonor:
		return FlushAllHonors
	case suitCount == 1 && !hasHonor:
		return FlushPure
	case suitCount == 1 && hasHonor:
		return FlushMixed
	default:
		return FlushNone
	}
}

// isAllTriplets 去掉一个雀头后每种牌都是 3 的倍数，且没有吃
func isAllTriplets(closed Hand34, melds []Meld) bool {
	for _, m := range melds {
		if !m.IsTriplet() {
			return false
		}
	}
	for j := 0; j < NumRanks; j++ {
		if closed[j] < 2 {
			continue
		}
		work := closed
		work[j] -= 2
		ok := true
		for _, c := range work {
			if c%3 != 0 {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// isAllSequences 平胡：无花、无字、无刻子副露，去掉雀头后全是顺子。不检查听牌形式
func isAllSequences(hand *Hand, closed, pool Hand34) bool {
	if len(hand.Bonus) > 0 {
		return false
	}
	for t := East; t <= White; t++ {
		if pool[t] > 0 {
			return false
		}
	}
	for _, m := range hand.Melds {
		if m.IsTriplet() {
			return false
		}
	}
	for j := 0; j < NumRanks; j++ {
		if closed[j] < 2 {
			continue
		}
		work := closed
		work[j] -= 2
		if CanDecomposeSequences(work) {
			return true
		}
	}
	return false
}

// countConcealedTriplets 暗刻只算手牌里的牌，和牌只有自摸时才算，放枪的牌不构成暗刻。暗杠另计
func countConcealedTriplets(hand *Hand) int {
	tiles := append([]TileType(nil), hand.Concealed...)
	if hand.SelfDrawn && hand.WinningTile != nil {
		tiles = append(tiles, *hand.WinningTile)
	}
	h := Hand34FromTiles(tiles)
	n := 0
	for _, c := range h {
		if c >= 3 {
			n++
		}
	}
	for _, m := range hand.Melds {
		if m.Kind == MeldKong && m.Concealed {
			n++
		}
	}
	return n
}
