// Package engine 组装推荐链路：召回 → 流行度调整 → 过滤 → 排序 → 截断 → 同簇加权。
//
// Engine 的参数都是实例级的，多个不同配置的 Engine 可以在同一进程内共存。
// 推荐调用是同步的；训练（TrainMLModels）与推荐之间需要调用方串行化。
package engine

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushteam/muserec/cluster"
	"github.com/rushteam/muserec/config"
	"github.com/rushteam/muserec/core"
	"github.com/rushteam/muserec/filter"
	"github.com/rushteam/muserec/pipeline"
	"github.com/rushteam/muserec/pkg/logging"
	"github.com/rushteam/muserec/rank"
	"github.com/rushteam/muserec/recall"
	"github.com/rushteam/muserec/rerank"
	"github.com/rushteam/muserec/similarity"
)

// Engine 是推荐编排器。
type Engine struct {
	logger     zerolog.Logger
	rand       *rand.Rand
	calculator *similarity.Calculator
	adjuster   *rank.PopularityAdjuster
	enhancer   *cluster.Enhancer
	expr       *filter.ExprFilter

	similarityThreshold float64
	maxPopularity       float64
	mlEnabled           bool
	recommendations     int
}

// Option 配置 Engine。
type Option func(*Engine)

// WithLogger 注入日志，默认不输出。
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRand 注入聚类使用的随机源，优先于配置中的 seed。
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rand = r }
}

// New 按配置创建 Engine。配置非法或过滤表达式无法编译时返回错误。
func New(cfg config.EngineConfig, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		logger:              logging.Nop(),
		calculator:          similarity.NewCalculator(),
		adjuster:            rank.NewPopularityAdjuster(),
		similarityThreshold: cfg.Engine.SimilarityThreshold,
		maxPopularity:       cfg.Engine.MaxPopularity,
		mlEnabled:           cfg.Engine.MLEnabled,
		recommendations:     cfg.Engine.Recommendations,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.adjuster.SetUndergroundThreshold(cfg.Popularity.UndergroundThreshold)
	e.adjuster.SetBoostFactor(cfg.Popularity.BoostFactor)

	if cfg.Filter.Expr != "" {
		f, err := filter.NewExprFilter(cfg.Filter.Expr)
		if err != nil {
			return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
				fmt.Sprintf("engine: filter.expr: %v", err))
		}
		e.expr = f
	}

	if e.rand == nil && cfg.Cluster.Seed != 0 {
		e.rand = rand.New(rand.NewPCG(cfg.Cluster.Seed, cfg.Cluster.Seed))
	}
	enhancerOpts := []cluster.Option{
		cluster.WithLogger(e.logger),
		cluster.WithBoost(cfg.Cluster.Boost),
		cluster.WithMaxIterations(cfg.Cluster.MaxIterations),
		cluster.WithExtractor(e.calculator.Extractor),
	}
	if e.rand != nil {
		enhancerOpts = append(enhancerOpts, cluster.WithRand(e.rand))
	}
	e.enhancer = cluster.NewEnhancer(cfg.Cluster.NumClusters, enhancerOpts...)

	return e, nil
}

// SetSimilarityThreshold 设置调整后分数的下限（严格大于才保留）。
func (e *Engine) SetSimilarityThreshold(threshold float64) { e.similarityThreshold = threshold }

// SetMaxPopularity 设置流行度上限（小于等于才保留）。
func (e *Engine) SetMaxPopularity(maxPopularity float64) { e.maxPopularity = maxPopularity }

// EnableML 开关同簇加权与训练。
func (e *Engine) EnableML(enabled bool) { e.mlEnabled = enabled }

func (e *Engine) SimilarityThreshold() float64 { return e.similarityThreshold }
func (e *Engine) MaxPopularity() float64       { return e.maxPopularity }
func (e *Engine) MLEnabled() bool              { return e.mlEnabled }
func (e *Engine) NumClusters() int             { return e.enhancer.NumClusters() }

// Recommendations 返回配置中的默认推荐条数。
func (e *Engine) Recommendations() int { return e.recommendations }

// Enhancer 返回聚类增强器，用于查看簇信息。
func (e *Engine) Enhancer() *cluster.Enhancer { return e.enhancer }

// Adjuster 返回流行度调整器。
func (e *Engine) Adjuster() *rank.PopularityAdjuster { return e.adjuster }

// TrainMLModels 用目录全量重训聚类模型。ML 未开启或两个目录都为空时不做任何事；
// 只重训非空的那一类，另一类模型保持不变。训练顺序为 id 顺序。
func (e *Engine) TrainMLModels(artists core.ArtistCatalog, songs core.SongCatalog) {
	if !e.mlEnabled {
		return
	}
	if len(artists) == 0 && len(songs) == 0 {
		return
	}
	if len(artists) > 0 {
		e.enhancer.TrainArtists(artists.Artists())
	}
	if len(songs) > 0 {
		e.enhancer.TrainSongs(songs.Songs())
	}
}

// RecommendSimilarArtists 按展示名查找查询艺人（id 顺序下第一个同名者），返回最多 count 个相似艺人。
// 查询艺人不存在时返回空列表；count == 0 返回空列表；count < 0 返回 INVALID_INPUT。
func (e *Engine) RecommendSimilarArtists(ctx context.Context, name string, artists core.ArtistCatalog, count int) ([]*core.Item, error) {
	if count <= 0 {
		return emptyResult(count)
	}
	query, ok := artists.FindByName(name)
	if !ok {
		e.logger.Debug().Str("kind", string(core.KindArtist)).Str("name", name).Msg("query not found")
		return []*core.Item{}, nil
	}
	return e.recommendArtists(ctx, query, artists, count)
}

// RecommendSimilarArtistsByID 与 RecommendSimilarArtists 相同，但按 id 精确定位查询艺人。
func (e *Engine) RecommendSimilarArtistsByID(ctx context.Context, id string, artists core.ArtistCatalog, count int) ([]*core.Item, error) {
	if count <= 0 {
		return emptyResult(count)
	}
	query, ok := artists[id]
	if !ok {
		e.logger.Debug().Str("kind", string(core.KindArtist)).Str("id", id).Msg("query not found")
		return []*core.Item{}, nil
	}
	return e.recommendArtists(ctx, query, artists, count)
}

// RecommendSimilarSongs 按歌名查找查询歌曲，返回最多 count 首相似歌曲。
// artists 仅透传给链路，不参与歌曲相似度计算。
func (e *Engine) RecommendSimilarSongs(ctx context.Context, title string, songs core.SongCatalog, artists core.ArtistCatalog, count int) ([]*core.Item, error) {
	if count <= 0 {
		return emptyResult(count)
	}
	query, ok := songs.FindByName(title)
	if !ok {
		e.logger.Debug().Str("kind", string(core.KindSong)).Str("name", title).Msg("query not found")
		return []*core.Item{}, nil
	}
	return e.recommendSongs(ctx, query, songs, artists, count)
}

// RecommendSimilarSongsByID 按 id 精确定位查询歌曲。
func (e *Engine) RecommendSimilarSongsByID(ctx context.Context, id string, songs core.SongCatalog, artists core.ArtistCatalog, count int) ([]*core.Item, error) {
	if count <= 0 {
		return emptyResult(count)
	}
	query, ok := songs[id]
	if !ok {
		e.logger.Debug().Str("kind", string(core.KindSong)).Str("id", id).Msg("query not found")
		return []*core.Item{}, nil
	}
	return e.recommendSongs(ctx, query, songs, artists, count)
}

func (e *Engine) recommendArtists(ctx context.Context, query core.Artist, artists core.ArtistCatalog, count int) ([]*core.Item, error) {
	rctx := &core.RecommendContext{
		Kind:        core.KindArtist,
		QueryArtist: &query,
		Artists:     artists,
	}
	return e.run(ctx, rctx, &recall.ArtistSimilarity{Calculator: e.calculator}, count)
}

func (e *Engine) recommendSongs(ctx context.Context, query core.Song, songs core.SongCatalog, artists core.ArtistCatalog, count int) ([]*core.Item, error) {
	rctx := &core.RecommendContext{
		Kind:      core.KindSong,
		QuerySong: &query,
		Songs:     songs,
		Artists:   artists,
	}
	return e.run(ctx, rctx, &recall.SongSimilarity{Calculator: e.calculator}, count)
}

func (e *Engine) run(ctx context.Context, rctx *core.RecommendContext, source pipeline.Node, count int) ([]*core.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	items, err := e.Pipeline(source, count).Run(ctx, rctx, nil)
	if err != nil {
		return nil, fmt.Errorf("recommend %s %q: %w", rctx.Kind, rctx.QueryName(), err)
	}
	if items == nil {
		items = []*core.Item{}
	}

	logging.Duration(e.logger.Debug(), start).
		Str("kind", string(rctx.Kind)).
		Str("query", rctx.QueryID()).
		Int("results", len(items)).
		Msg("recommend")
	return items, nil
}

// Pipeline 返回当前参数下的完整推荐链路。
// 同簇加权在 Top-N 截断之后执行，只会重排已入选的结果，不会把第 N+1 名提上来。
func (e *Engine) Pipeline(source pipeline.Node, count int) *pipeline.Pipeline {
	filters := []filter.Filter{
		filter.NewMaxPopularityFilter(e.maxPopularity),
		filter.NewScoreThresholdFilter(e.similarityThreshold),
	}
	if e.expr != nil {
		filters = append(filters, e.expr)
	}

	p := &pipeline.Pipeline{}
	p.Append(
		source,
		&rank.PopularityNode{Adjuster: e.adjuster},
		&filter.FilterNode{Filters: filters, Logger: e.logger},
		&rank.SortNode{},
		&rerank.TopNNode{N: count},
	)
	if e.mlEnabled {
		p.Append(rerank.NewClusterNode(e.enhancer))
	}
	return p
}

func emptyResult(count int) ([]*core.Item, error) {
	if count < 0 {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
			fmt.Sprintf("engine: count must not be negative, got %d", count))
	}
	return []*core.Item{}, nil
}
