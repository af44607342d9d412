package core

// 推荐链路的默认参数。可通过 config.EngineConfig 或各组件的 setter 覆盖，不是全局状态。
const (
	DefaultSimilarityThreshold  = 0.1
	DefaultMaxPopularity        = 0.8
	DefaultNumClusters          = 8
	DefaultMaxIterations        = 100
	DefaultUndergroundThreshold = 0.3
	DefaultBoostFactor          = 1.5
	DefaultClusterBoost         = 1.2
	DefaultRecommendations      = 10
)
