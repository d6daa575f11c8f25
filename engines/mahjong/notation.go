package mahjong

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// 静态表：标签 -> 牌
var labelToTile = map[string]TileType{}

// 静态表：最后一个 rune -> 花色
var lastRuneToSuit = map[rune]Suit{
	'萬': SuitWan, '万': SuitWan, 'm': SuitWan,
	'筒': SuitTong, 'p': SuitTong,
	'條': SuitTiao, '条': SuitTiao, 's': SuitTiao,
}

func init() {
	for t := Wan1; t < tileTypeEnd; t++ {
		labelToTile[tileNames[t]] = t
	}
	extra := map[string]TileType{
		// 简体
		"东": East, "发": Green, "兰": Orchid,
		// ASCII
		"e": East, "s": South, "w": West, "n": North,
		"c": Red, "f": Green, "p": White,
		"rd": Red, "gd": Green, "wd": White,
	}
	for k, v := range extra {
		labelToTile[k] = v
	}
	for i, t := range BonusTileTypes() {
		labelToTile[fmt.Sprintf("f%d", i+1)] = t
	}
}

// ParseTile 解析单张牌的标签：1萬 / 1万 / 1m、東 / e、春 / f1 ...
func ParseTile(label string) (TileType, error) {
	name := strings.ToLower(strings.TrimSpace(label))
	if name == "" {
		return 0, fmt.Errorf("%w: empty label", ErrUnknownTile)
	}
	if t, ok := labelToTile[name]; ok {
		return t, nil
	}

	if len(name) >= 2 {
		r, size := utf8.DecodeLastRuneInString(name)
		suit, ok := lastRuneToSuit[r]
		prefix := name[:len(name)-size]
		if ok && len(prefix) == 1 && prefix[0] >= '1' && prefix[0] <= '9' {
			return TileType(int(suit)*9 + int(prefix[0]-'1')), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTile, label)
}

// ParseTiles 逗号或空白分隔的一串标签
func ParseTiles(labels string) ([]TileType, error) {
	fields := strings.FieldsFunc(labels, func(r rune) bool {
		return r == ',' || r == '，' || r == ' ' || r == '\t' || r == '\n'
	})
	return ParseLabels(fields)
}

func ParseLabels(labels []string) ([]TileType, error) {
	out := make([]TileType, 0, len(labels))
	for _, l := range labels {
		t, err := ParseTile(l)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func TilesString(tiles []TileType) string {
	names := make([]string, len(tiles))
	for i, t := range tiles {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

// Notation 在标准标签之外，再接受识别器输出的自定义标签
type Notation struct {
	aliases map[string]TileType
}

// NewNotation aliases: 原始标签 -> 标准标签
func NewNotation(aliases map[string]string) (*Notation, error) {
	n := &Notation{aliases: make(map[string]TileType, len(aliases))}
	for raw, canonical := range aliases {
		t, err := ParseTile(canonical)
		if err != nil {
			return nil, fmt.Errorf("alias %q: %w", raw, err)
		}
		n.aliases[strings.ToLower(strings.TrimSpace(raw))] = t
	}
	return n, nil
}

func (n *Notation) Parse(label string) (TileType, error) {
	if n != nil {
		if t, ok := n.aliases[strings.ToLower(strings.TrimSpace(label))]; ok {
			return t, nil
		}
	}
	return ParseTile(label)
}

func (n *Notation) ParseLabels(labels []string) ([]TileType, error) {
	out := make([]TileType, 0, len(labels))
	for _, l := range labels {
		t, err := n.Parse(l)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
