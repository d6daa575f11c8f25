package mahjong

import "strconv"

type Wind int

const (
	WindEast  Wind = iota // 东风
	WindSouth             // 南风
	WindWest              // 西风
	WindNorth             // 北风
)

type Suit int

const (
	SuitNone Suit = iota - 1
	SuitWan          // 万子
	SuitTong         // 筒子
	SuitTiao         // 条子
)

type TileType int

const (
	// 万子 (0-8)
	Wan1 TileType = iota
	Wan2
	Wan3
	Wan4
	Wan5
	Wan6
	Wan7
	Wan8
	Wan9

	// 筒子 (9-17)
	Tong1
	Tong2
	Tong3
	Tong4
	Tong5
	Tong6
	Tong7
	Tong8
	Tong9

	// 条子 (18-26)
	Tiao1
	Tiao2
	Tiao3
	Tiao4
	Tiao5
	Tiao6
	Tiao7
	Tiao8
	Tiao9

	// 字牌 (27-33)
	East
	South
	West
	North
	Red   // 中
	Green // 發
	White // 白

	// 花牌 (34-41)，每种只有一张
	Spring
	Summer
	Autumn
	Winter
	Plum
	Orchid
	Bamboo
	Chrysanthemum

	tileTypeEnd
)

const (
	// NumRanks 可组成面子的牌种数（数牌 + 字牌）
	NumRanks = 34
	// MaxCopies 每种非花牌的实体张数
	MaxCopies = 4
	// HandSlots 和牌时的逻辑槽位数：16 张手牌 + 1 张和牌
	HandSlots = 17
	// MeldSlots 每组副露占用的槽位
	MeldSlots = 3
	// MaxMelds 标准牌型的面子数
	MaxMelds = 5
)

var tileNames = [tileTypeEnd]string{
	"1萬", "2萬", "3萬", "4萬", "5萬", "6萬", "7萬", "8萬", "9萬",
	"1筒", "2筒", "3筒", "4筒", "5筒", "6筒", "7筒", "8筒", "9筒",
	"1條", "2條", "3條", "4條", "5條", "6條", "7條", "8條", "9條",
	"東", "南", "西", "北", "中", "發", "白",
	"春", "夏", "秋", "冬", "梅", "蘭", "竹", "菊",
}

var dragonTypes = [3]TileType{Red, Green, White}

// AllTileTypes 所有非花牌的牌种，按 TileType 升序
func AllTileTypes() []TileType {
	out := make([]TileType, 0, NumRanks)
	for t := Wan1; t <= White; t++ {
		out = append(out, t)
	}
	return out
}

// BonusTileTypes 8 种花牌
func BonusTileTypes() []TileType {
	out := make([]TileType, 0, int(tileTypeEnd-Spring))
	for t := Spring; t < tileTypeEnd; t++ {
		out = append(out, t)
	}
	return out
}

// DragonTypes 三元牌：中、發、白
func DragonTypes() []TileType {
	return dragonTypes[:]
}

func (t TileType) IsValid() bool {
	return t >= Wan1 && t < tileTypeEnd
}

func (t TileType) IsNumbered() bool {
	return t >= Wan1 && t <= Tiao9
}

func (t TileType) IsHonor() bool {
	return t >= East && t <= White
}

func (t TileType) IsWind() bool {
	return t >= East && t <= North
}

func (t TileType) IsDragon() bool {
	return t >= Red && t <= White
}

func (t TileType) IsBonus() bool {
	return t >= Spring && t < tileTypeEnd
}

// Suit 数牌的花色，字牌和花牌返回 SuitNone
func (t TileType) Suit() Suit {
	if !t.IsNumbered() {
		return SuitNone
	}
	return Suit(int(t) / 9)
}

// Number 数牌的点数 1-9，其他返回 0
func (t TileType) Number() int {
	if !t.IsNumbered() {
		return 0
	}
	return int(t)%9 + 1
}

// NextInSuit 同花色的下一张，9 和非数牌没有下一张
func (t TileType) NextInSuit() (TileType, bool) {
	if !t.IsNumbered() || t.Number() == 9 {
		return 0, false
	}
	return t + 1, true
}

// CanStartSequence 能否作为顺子的第一张（1-7 的数牌）
func (t TileType) CanStartSequence() bool {
	return t.IsNumbered() && t.Number() <= 7
}

func (t TileType) String() string {
	if !t.IsValid() {
		return "TileType(" + strconv.Itoa(int(t)) + ")"
	}
	return tileNames[t]
}

func (w Wind) IsValid() bool {
	return w >= WindEast && w <= WindNorth
}

// Tile 对应的风牌
func (w Wind) Tile() TileType {
	return East + TileType(w)
}

func (w Wind) String() string {
	switch w {
	case WindEast:
		return "東"
	case WindSouth:
		return "南"
	case WindWest:
		return "西"
	case WindNorth:
		return "北"
	default:
		return "未知"
	}
}

func (w Wind) Next() Wind {
	return (w + 1) % 4
}

func (s Suit) String() string {
	switch s {
	case SuitWan:
		return "萬"
	case SuitTong:
		return "筒"
	case SuitTiao:
		return "條"
	default:
		return "字"
	}
}

// Situation 和牌时的场况
type Situation struct {
	SelfDrawn    bool // 自摸
	IsDealer     bool // 庄家
	DealerStreak int  // 连庄次数，仅庄家有效
	RoundWind    Wind // 圈风
	SeatWind     Wind // 门风
}

// Hand 一手待计分的牌。引擎只读，不会修改调用方的切片
type Hand struct {
	Concealed   []TileType // 手牌（不含和牌）
	Melds       []Meld     // 副露，每组占 3 个槽位
	WinningTile *TileType  // 和牌，第 17 个槽位
	Bonus       []TileType // 花牌
	Situation
}

// Slots 逻辑槽位数
func (h *Hand) Slots() int {
	n := len(h.Concealed) + MeldSlots*len(h.Melds)
	if h.WinningTile != nil {
		n++
	}
	return n
}

// FullyConcealed 门清：没有明副露（暗杠不算开门）
func (h *Hand) FullyConcealed() bool {
	for _, m := range h.Melds {
		if !m.Concealed {
			return false
		}
	}
	return true
}

// ClosedTiles 手牌 + 和牌
func (h *Hand) ClosedTiles() []TileType {
	out := make([]TileType, 0, len(h.Concealed)+1)
	out = append(out, h.Concealed...)
	if h.WinningTile != nil {
		out = append(out, *h.WinningTile)
	}
	return out
}

// MeldTiles 所有副露的实体牌
func (h *Hand) MeldTiles() []TileType {
	var out []TileType
	for _, m := range h.Melds {
		out = append(out, m.Tiles...)
	}
	return out
}

// Clone 深拷贝
func (h *Hand) Clone() Hand {
	c := Hand{
		Concealed: append([]TileType(nil), h.Concealed...),
		Bonus:     append([]TileType(nil), h.Bonus...),
		Situation: h.Situation,
	}
	if len(h.Melds) > 0 {
		c.Melds = make([]Meld, len(h.Melds))
		for i, m := range h.Melds {
			c.Melds[i] = Meld{Kind: m.Kind, Tiles: append([]TileType(nil), m.Tiles...), Concealed: m.Concealed}
		}
	}
	if h.WinningTile != nil {
		w := *h.WinningTile
		c.WinningTile = &w
	}
	return c
}

// TilePtr 方便构造 Hand.WinningTile
func TilePtr(t TileType) *TileType {
	return &t
}
