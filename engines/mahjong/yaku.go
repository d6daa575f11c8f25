package mahjong

import "fmt"

// Rule 台数项目
type Rule int

const (
	RuleDealer             Rule = iota // 莊家
	RuleDealerStreak                   // 連莊：每連一次加 2 台（連N拉N）
	RuleThreeConcealed                 // 三暗刻
	RuleFourConcealed                  // 四暗刻
	RuleFiveConcealed                  // 五暗刻
	RuleAllHonors                      // 字一色
	RulePureFlush                      // 清一色
	RuleMixedFlush                     // 混一色
	RuleAllPairs                       // 嚦咕嚦咕
	RuleAllTriplets                    // 碰碰胡
	RuleAllSequences                   // 平胡
	RuleDragonTriplet                  // 三元牌刻子
	RuleRoundWind                      // 圈風刻
	RuleSeatWind                       // 門風刻
	RuleConcealedSelfDrawn             // 門清自摸
	RuleConcealed                      // 門清
	RuleSelfDrawn                      // 自摸
	RuleBonusTile                      // 花牌
	RuleBasicWin                       // 雞胡
)

var ruleNames = map[Rule]string{
	RuleDealer:             "莊家",
	RuleDealerStreak:       "連莊",
	RuleThreeConcealed:     "三暗刻",
	RuleFourConcealed:      "四暗刻",
	RuleFiveConcealed:      "五暗刻",
	RuleAllHonors:          "字一色",
	RulePureFlush:          "清一色",
	RuleMixedFlush:         "混一色",
	RuleAllPairs:           "嚦咕嚦咕",
	RuleAllTriplets:        "碰碰胡",
	RuleAllSequences:       "平胡",
	RuleDragonTriplet:      "三元刻",
	RuleRoundWind:          "圈風",
	RuleSeatWind:           "門風",
	RuleConcealedSelfDrawn: "門清自摸",
	RuleConcealed:          "門清",
	RuleSelfDrawn:          "自摸",
	RuleBonusTile:          "花牌",
	RuleBasicWin:           "雞胡",
}

func (r Rule) String() string {
	if s, ok := ruleNames[r]; ok {
		return s
	}
	return fmt.Sprintf("Rule(%d)", int(r))
}

// 台数
const (
	taiDealer             = 1
	taiPerStreak          = 2
	taiThreeConcealed     = 2
	taiFourConcealed      = 5
	taiFiveConcealed      = 8
	taiAllHonors          = 16
	taiPureFlush          = 8
	taiMixedFlush         = 4
	taiAllPairs           = 8
	taiAllTriplets        = 4
	taiAllSequences       = 2
	taiHonorTriplet       = 1
	taiConcealedSelfDrawn = 3
	taiConcealed          = 1
	taiSelfDrawn          = 1
	taiBonusTile          = 1
)

// ScoreItem 计分明细中的一行
type ScoreItem struct {
	Rule   Rule
	Label  string
	Points int
}

func (i ScoreItem) String() string {
	return fmt.Sprintf("%s (%d台)", i.Label, i.Points)
}

type RuleContext struct {
	Hand  *Hand
	Facts *ShapeFacts
}

// RuleChecker 一组台数规则，组内自行处理互斥，返回命中的明细
type RuleChecker interface {
	Name() string
	Check(ctx *RuleContext) []ScoreItem
}

type ruleCheckerFunc struct {
	name  string
	check func(ctx *RuleContext) []ScoreItem
}

func (f ruleCheckerFunc) Name() string { return f.name }

func (f ruleCheckerFunc) Check(ctx *RuleContext) []ScoreItem { return f.check(ctx) }

func item(r Rule, points int) ScoreItem {
	return ScoreItem{Rule: r, Label: r.String(), Points: points}
}

// TaiwanRuleRegistry 按固定顺序执行，顺序只影响明细的排列
var TaiwanRuleRegistry = []RuleChecker{
	ruleCheckerFunc{name: "dealer", check: checkDealer},
	ruleCheckerFunc{name: "concealed-triplets", check: checkConcealedTriplets},
	ruleCheckerFunc{name: "flush", check: checkFlush},
	ruleCheckerFunc{name: "hand-shape", check: checkHandShape},
	ruleCheckerFunc{name: "honor-triplets", check: checkHonorTriplets},
	ruleCheckerFunc{name: "concealed-self-drawn", check: checkConcealedSelfDrawn},
	ruleCheckerFunc{name: "bonus-tiles", check: checkBonusTiles},
}

func checkDealer(ctx *RuleContext) []ScoreItem {
	s := ctx.Hand.Situation
	if !s.IsDealer {
		return nil
	}
	items := []ScoreItem{item(RuleDealer, taiDealer)}
	if s.DealerStreak > 0 {
		streak := item(RuleDealerStreak, s.DealerStreak*taiPerStreak)
		streak.Label = fmt.Sprintf("連%d拉%d", s.DealerStreak, s.DealerStreak)
		items = append(items, streak)
	}
	return items
}

func checkConcealedTriplets(ctx *RuleContext) []ScoreItem {
	switch n := ctx.Facts.ConcealedTriplets; {
	case n >= 5:
		return []ScoreItem{item(RuleFiveConcealed, taiFiveConcealed)}
	case n == 4:
		return []ScoreItem{item(RuleFourConcealed, taiFourConcealed)}
	case n == 3:
		return []ScoreItem{item(RuleThreeConcealed, taiThreeConcealed)}
	}
	return nil
}

func checkFlush(ctx *RuleContext) []ScoreItem {
	switch ctx.Facts.Flush {
	case FlushAllHonors:
		return []ScoreItem{item(RuleAllHonors, taiAllHonors)}
	case FlushPure:
		return []ScoreItem{item(RulePureFlush, taiPureFlush)}
	case FlushMixed:
		return []ScoreItem{item(RuleMixedFlush, taiMixedFlush)}
	}
	return nil
}

// checkHandShape 嚦咕嚦咕 > 碰碰胡 > 平胡
func checkHandShape(ctx *RuleContext) []ScoreItem {
	f := ctx.Facts
	switch {
	case f.AllPairs:
		return []ScoreItem{item(RuleAllPairs, taiAllPairs)}
	case f.AllTriplets:
		return []ScoreItem{item(RuleAllTriplets, taiAllTriplets)}
	case f.AllSequences:
		return []ScoreItem{item(RuleAllSequences, taiAllSequences)}
	}
	return nil
}

func checkHonorTriplets(ctx *RuleContext) []ScoreItem {
	var items []ScoreItem
	for _, d := range ctx.Facts.DragonTriplets {
		it := item(RuleDragonTriplet, taiHonorTriplet)
		it.Label = d.String() + "刻"
		items = append(items, it)
	}
	s := ctx.Hand.Situation
	if ctx.Facts.RoundWindTriplet {
		it := item(RuleRoundWind, taiHonorTriplet)
		it.Label = "圈風" + s.RoundWind.String()
		items = append(items, it)
	}
	if ctx.Facts.SeatWindTriplet {
		it := item(RuleSeatWind, taiHonorTriplet)
		it.Label = "門風" + s.SeatWind.String()
		items = append(items, it)
	}
	return items
}

// checkConcealedSelfDrawn 门清自摸合并为一行 3 台
func checkConcealedSelfDrawn(ctx *RuleContext) []ScoreItem {
	concealed := ctx.Facts.FullyConcealed
	selfDrawn := ctx.Hand.SelfDrawn
	switch {
	case concealed && selfDrawn:
		return []ScoreItem{item(RuleConcealedSelfDrawn, taiConcealedSelfDrawn)}
	case concealed:
		return []ScoreItem{item(RuleConcealed, taiConcealed)}
	case selfDrawn:
		return []ScoreItem{item(RuleSelfDrawn, taiSelfDrawn)}
	}
	return nil
}

// checkBonusTiles 每张花牌一行
func checkBonusTiles(ctx *RuleContext) []ScoreItem {
	var items []ScoreItem
	for _, t := range ctx.Hand.Bonus {
		it := item(RuleBonusTile, taiBonusTile)
		it.Label = "花牌" + t.String()
		items = append(items, it)
	}
	return items
}
