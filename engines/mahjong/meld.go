package mahjong

import "slices"

type MeldKind int

const (
	MeldChow MeldKind = iota // 吃，顺子
	MeldPung                 // 碰，刻子
	MeldKong                 // 杠
)

func (k MeldKind) String() string {
	switch k {
	case MeldChow:
		return "chow"
	case MeldPung:
		return "pung"
	case MeldKong:
		return "kong"
	default:
		return "unknown"
	}
}

// Meld 一组面子。Concealed 只对暗杠有效
type Meld struct {
	Kind      MeldKind
	Tiles     []TileType
	Concealed bool
}

// NewChow 从 start 开始的顺子，start 必须是 1-7 的数牌
func NewChow(start TileType) (Meld, error) {
	if !start.CanStartSequence() {
		return Meld{}, &MeldError{Kind: MeldChow, Tiles: []TileType{start}, Reason: "sequence must start on a numbered rank 1-7"}
	}
	return Meld{Kind: MeldChow, Tiles: []TileType{start, start + 1, start + 2}}, nil
}

// NewPung 碰
func NewPung(t TileType) (Meld, error) {
	m := Meld{Kind: MeldPung, Tiles: []TileType{t, t, t}}
	if err := m.Validate(); err != nil {
		return Meld{}, err
	}
	return m, nil
}

// NewKong 明杠
func NewKong(t TileType) (Meld, error) {
	m := Meld{Kind: MeldKong, Tiles: []TileType{t, t, t, t}}
	if err := m.Validate(); err != nil {
		return Meld{}, err
	}
	return m, nil
}

// NewConcealedKong 暗杠
func NewConcealedKong(t TileType) (Meld, error) {
	m, err := NewKong(t)
	if err != nil {
		return Meld{}, err
	}
	m.Concealed = true
	return m, nil
}

// Validate 检查面子结构。调用方本该在副露时拒绝非法组合，计分前仍会再查一次
func (m Meld) Validate() error {
	fail := func(reason string) error {
		return &MeldError{Kind: m.Kind, Tiles: slices.Clone(m.Tiles), Reason: reason}
	}
	for _, t := range m.Tiles {
		if !t.IsValid() || t.IsBonus() {
			return fail("contains a non-meld tile")
		}
	}
	switch m.Kind {
	case MeldChow:
		if m.Concealed {
			return fail("only a kong can be concealed")
		}
		if len(m.Tiles) != 3 {
			return fail("sequence needs 3 tiles")
		}
		tiles := slices.Clone(m.Tiles)
		slices.Sort(tiles)
		if !tiles[0].CanStartSequence() {
			return fail("sequence must start on a numbered rank 1-7")
		}
		if tiles[1] != tiles[0]+1 || tiles[2] != tiles[0]+2 {
			return fail("tiles are not consecutive")
		}
	case MeldPung:
		if m.Concealed {
			return fail("only a kong can be concealed")
		}
		if len(m.Tiles) != 3 || !sameRank(m.Tiles) {
			return fail("triplet needs 3 identical tiles")
		}
	case MeldKong:
		if len(m.Tiles) != 4 || !sameRank(m.Tiles) {
			return fail("kong needs 4 identical tiles")
		}
	default:
		return fail("unknown meld kind")
	}
	return nil
}

// IsTriplet 刻子或杠子
func (m Meld) IsTriplet() bool {
	return m.Kind == MeldPung || m.Kind == MeldKong
}

func sameRank(tiles []TileType) bool {
	for _, t := range tiles[1:] {
		if t != tiles[0] {
			return false
		}
	}
	return true
}
