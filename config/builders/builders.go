package builders

import (
	"fmt"

	"github.com/rushteam/muserec/cluster"
	"github.com/rushteam/muserec/config"
	"github.com/rushteam/muserec/core"
	"github.com/rushteam/muserec/filter"
	"github.com/rushteam/muserec/pipeline"
	"github.com/rushteam/muserec/pkg/conv"
	"github.com/rushteam/muserec/rank"
	"github.com/rushteam/muserec/recall"
	"github.com/rushteam/muserec/rerank"
	"github.com/rushteam/muserec/similarity"
)

func init() {
	config.Register("recall.artist_similarity", BuildArtistSimilarityNode)
	config.Register("recall.song_similarity", BuildSongSimilarityNode)
	config.Register("rank.popularity", BuildPopularityNode)
	config.Register("rank.underground_boost", BuildUndergroundBoostNode)
	config.Register("rank.sort", BuildSortNode)
	config.Register("filter", BuildFilterNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("rerank.diversity", BuildDiversityNode)
}

func BuildArtistSimilarityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &recall.ArtistSimilarity{Calculator: similarity.NewCalculator()}, nil
}

func BuildSongSimilarityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &recall.SongSimilarity{Calculator: similarity.NewCalculator()}, nil
}

func BuildPopularityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rank.PopularityNode{Adjuster: buildAdjuster(cfg)}, nil
}

func BuildUndergroundBoostNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rank.UndergroundBoostNode{Adjuster: buildAdjuster(cfg)}, nil
}

func buildAdjuster(cfg map[string]interface{}) *rank.PopularityAdjuster {
	adj := rank.NewPopularityAdjuster()
	adj.SetUndergroundThreshold(conv.Float64(cfg, "threshold", adj.UndergroundThreshold))
	adj.SetBoostFactor(conv.Float64(cfg, "boost_factor", adj.BoostFactor))
	return adj
}

func BuildSortNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rank.SortNode{}, nil
}

func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	n := conv.Int(cfg, "n", 0)
	if n < 0 {
		return nil, fmt.Errorf("n must not be negative, got %d", n)
	}
	return &rerank.TopNNode{N: n}, nil
}

// ClusterNodeBuilder 返回绑定到 enh 的 rerank.cluster 构建器。
// 同簇加权依赖已训练的 Enhancer，init 中不注册；需要时由调用方注册到自己的 factory：
//
//	f := config.DefaultFactory()
//	f.Register("rerank.cluster", builders.ClusterNodeBuilder(enh))
func ClusterNodeBuilder(enh *cluster.Enhancer) pipeline.NodeBuilder {
	return func(map[string]interface{}) (pipeline.Node, error) {
		if enh == nil {
			return nil, fmt.Errorf("rerank.cluster requires an enhancer")
		}
		return rerank.NewClusterNode(enh), nil
	}
}

func BuildDiversityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	labelKey := conv.Get(cfg, "label_key", rerank.DefaultDiversityKey)
	if labelKey == "" {
		labelKey = rerank.DefaultDiversityKey
	}
	perCategory := conv.Int(cfg, "max_per_category", 1)
	if perCategory < 1 {
		return nil, fmt.Errorf("max_per_category must be at least 1, got %d", perCategory)
	}
	return &rerank.Diversity{LabelKey: labelKey, MaxPerCategory: perCategory}, nil
}

func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := conv.Maps(cfg, "filters")
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, filterMap := range filtersConfig {
		filterType := conv.Get(filterMap, "type", "")
		switch filterType {
		case "max_popularity":
			filters = append(filters, filter.NewMaxPopularityFilter(
				conv.Float64(filterMap, "max", core.DefaultMaxPopularity)))
		case "score_threshold":
			filters = append(filters, filter.NewScoreThresholdFilter(
				conv.Float64(filterMap, "threshold", core.DefaultSimilarityThreshold)))
		case "expr":
			f, err := filter.NewExprFilter(conv.Get(filterMap, "expr", ""))
			if err != nil {
				return nil, err
			}
			filters = append(filters, f)
		default:
			return nil, fmt.Errorf("unknown filter type: %s (supported: max_popularity, score_threshold, expr)", filterType)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}
