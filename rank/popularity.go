package rank

import "github.com/rushteam/muserec/core"

// PopularityAdjuster 用流行度对相似度做二次调整，倾向推荐小众实体。
//
//   - AdjustForPopularity: score * (1 - popularity)，流行度越高分数越低
//   - BoostUnderground: popularity < UndergroundThreshold 时乘 BoostFactor
//
// 调整后不做截断：加权后可以 > 1，惩罚后可以趋近 0。
// 参数属于实例，多个引擎各自持有互不影响。
type PopularityAdjuster struct {
	UndergroundThreshold float64
	BoostFactor          float64
}

// NewPopularityAdjuster 使用默认阈值 0.3、加权系数 1.5。
func NewPopularityAdjuster() *PopularityAdjuster {
	return &PopularityAdjuster{
		UndergroundThreshold: core.DefaultUndergroundThreshold,
		BoostFactor:          core.DefaultBoostFactor,
	}
}

// AdjustForPopularity 按流行度惩罚相似度。
func (a *PopularityAdjuster) AdjustForPopularity(score, popularity float64) float64 {
	return score * a.PopularityPenalty(popularity)
}

// PopularityPenalty 返回惩罚系数 1 - popularity。
func (a *PopularityAdjuster) PopularityPenalty(popularity float64) float64 {
	return 1.0 - popularity
}

// BoostUnderground 对小众实体加权；阈值是开区间，popularity == 阈值时不加权。
func (a *PopularityAdjuster) BoostUnderground(score, popularity float64) float64 {
	if popularity < a.UndergroundThreshold {
		return score * a.BoostFactor
	}
	return score
}

func (a *PopularityAdjuster) SetUndergroundThreshold(threshold float64) {
	a.UndergroundThreshold = threshold
}

func (a *PopularityAdjuster) SetBoostFactor(factor float64) {
	a.BoostFactor = factor
}
