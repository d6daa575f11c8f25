package app

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"taiscore/engines/mahjong"
)

// HandFile 手牌文件，牌用标签表示（1萬 / 1m / 東 / e / 春 / f1，或配置里的别名）
type HandFile struct {
	ID        string     `yaml:"id,omitempty" json:"id,omitempty"`
	Concealed []string   `yaml:"concealed" json:"concealed"`
	Melds     []MeldFile `yaml:"melds,omitempty" json:"melds,omitempty"`
	Winning   string     `yaml:"winning,omitempty" json:"winning,omitempty"`
	Bonus     []string   `yaml:"bonus,omitempty" json:"bonus,omitempty"`
	SelfDrawn bool       `yaml:"selfDrawn" json:"selfDrawn"`
	Dealer    bool       `yaml:"dealer" json:"dealer"`
	Streak    int        `yaml:"streak,omitempty" json:"streak,omitempty"`
	RoundWind string     `yaml:"roundWind,omitempty" json:"roundWind,omitempty"`
	SeatWind  string     `yaml:"seatWind,omitempty" json:"seatWind,omitempty"`
}

type MeldFile struct {
	Kind      string   `yaml:"kind" json:"kind"`
	Tiles     []string `yaml:"tiles" json:"tiles"`
	Concealed bool     `yaml:"concealed,omitempty" json:"concealed,omitempty"`
}

type batchFile struct {
	Hands []HandFile `yaml:"hands"`
}

func ReadHandFile(path string) (HandFile, error) {
	var hf HandFile
	data, err := os.ReadFile(path)
	if err != nil {
		return hf, fmt.Errorf("读取手牌文件失败: %w", err)
	}
	if err := yaml.Unmarshal(data, &hf); err != nil {
		return hf, fmt.Errorf("解析手牌文件失败 %s: %w", path, err)
	}
	return hf, nil
}

func ReadBatchFile(path string) ([]HandFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取批量文件失败: %w", err)
	}
	var bf batchFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("解析批量文件失败 %s: %w", path, err)
	}
	return bf.Hands, nil
}

// ToHand 把标签转换成 Hand。副露在这里就做结构检查，非法的吃碰杠不会进入计分
func (hf HandFile) ToHand(n *mahjong.Notation) (mahjong.Hand, error) {
	var hand mahjong.Hand
	concealed, err := n.ParseLabels(splitLabels(hf.Concealed))
	if err != nil {
		return hand, fmt.Errorf("concealed: %w", err)
	}
	hand.Concealed = concealed

	for i, mf := range hf.Melds {
		m, err := mf.toMeld(n)
		if err != nil {
			return hand, fmt.Errorf("meld %d: %w", i+1, err)
		}
		hand.Melds = append(hand.Melds, m)
	}

	if strings.TrimSpace(hf.Winning) != "" {
		t, err := n.Parse(hf.Winning)
		if err != nil {
			return hand, fmt.Errorf("winning: %w", err)
		}
		hand.WinningTile = mahjong.TilePtr(t)
	}

	bonus, err := n.ParseLabels(splitLabels(hf.Bonus))
	if err != nil {
		return hand, fmt.Errorf("bonus: %w", err)
	}
	hand.Bonus = bonus

	if hand.RoundWind, err = parseWind(n, hf.RoundWind); err != nil {
		return hand, fmt.Errorf("roundWind: %w", err)
	}
	if hand.SeatWind, err = parseWind(n, hf.SeatWind); err != nil {
		return hand, fmt.Errorf("seatWind: %w", err)
	}
	hand.SelfDrawn = hf.SelfDrawn
	hand.IsDealer = hf.Dealer
	if hf.Dealer {
		hand.DealerStreak = max(hf.Streak, 0)
	}
	return hand, nil
}

func (mf MeldFile) toMeld(n *mahjong.Notation) (mahjong.Meld, error) {
	var m mahjong.Meld
	switch strings.ToLower(strings.TrimSpace(mf.Kind)) {
	case "chow", "吃":
		m.Kind = mahjong.MeldChow
	case "pung", "pong", "碰":
		m.Kind = mahjong.MeldPung
	case "kong", "槓", "杠":
		m.Kind = mahjong.MeldKong
	default:
		return m, fmt.Errorf("%w: unknown kind %q", mahjong.ErrMalformedMeld, mf.Kind)
	}
	tiles, err := n.ParseLabels(splitLabels(mf.Tiles))
	if err != nil {
		return m, err
	}
	m.Tiles = tiles
	m.Concealed = mf.Concealed
	if err := m.Validate(); err != nil {
		return mahjong.Meld{}, err
	}
	return m, nil
}

// parseWind 空值视为東
func parseWind(n *mahjong.Notation, label string) (mahjong.Wind, error) {
	if strings.TrimSpace(label) == "" {
		return mahjong.WindEast, nil
	}
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "east":
		return mahjong.WindEast, nil
	case "south":
		return mahjong.WindSouth, nil
	case "west":
		return mahjong.WindWest, nil
	case "north":
		return mahjong.WindNorth, nil
	}
	t, err := n.Parse(label)
	if err != nil {
		return 0, err
	}
	if !t.IsWind() {
		return 0, fmt.Errorf("%w: %s is not a wind", mahjong.ErrInvalidTile, t)
	}
	return mahjong.Wind(t - mahjong.East), nil
}

// splitLabels 允许一项里写多张牌，例如 "1m 2m 3m"
func splitLabels(items []string) []string {
	var out []string
	for _, it := range items {
		out = append(out, strings.FieldsFunc(it, func(r rune) bool {
			return r == ',' || r == '，' || r == ' ' || r == '\t'
		})...)
	}
	return out
}
