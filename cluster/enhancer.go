// Package cluster 在 k-means 聚类结果之上为推荐列表做同簇加权。
//
// 艺人与歌曲各自独立训练、独立查询。每次训练整体替换对应模型，
// 训练与 Enhance 之间需要调用方串行化，Enhancer 本身不加锁。
package cluster

import (
	"math/rand/v2"
	"slices"

	"github.com/rs/zerolog"

	"github.com/rushteam/muserec/core"
	"github.com/rushteam/muserec/feature"
	"github.com/rushteam/muserec/model"
	"github.com/rushteam/muserec/pkg/utils"
	"github.com/rushteam/muserec/rank"
)

// SameClusterReason 是同簇加权时追加的推荐理由。
const SameClusterReason = " (Same cluster)"

// Enhancer 持有艺人、歌曲两个聚类模型。
type Enhancer struct {
	numClusters   int
	maxIterations int
	boost         float64
	rand          *rand.Rand
	extractor     *feature.Extractor
	clusterer     model.Clusterer
	logger        zerolog.Logger

	artists *trained[core.Artist]
	songs   *trained[core.Song]
}

// trained 是一次训练的快照：训练集（保持传入顺序）、id -> 簇、k-means 结果。
type trained[T any] struct {
	members  []T
	clusters map[string]int
	fit      *model.Clustering
}

// Option 配置 Enhancer。
type Option func(*Enhancer)

// WithLogger 注入日志。
func WithLogger(l zerolog.Logger) Option {
	return func(e *Enhancer) { e.logger = l }
}

// WithRand 注入随机源，固定种子下训练结果可复现。
func WithRand(r *rand.Rand) Option {
	return func(e *Enhancer) { e.rand = r }
}

// WithBoost 设置同簇加权系数，默认 core.DefaultClusterBoost。
func WithBoost(b float64) Option {
	return func(e *Enhancer) { e.boost = b }
}

// WithMaxIterations 设置 k-means 迭代上限。
func WithMaxIterations(n int) Option {
	return func(e *Enhancer) { e.maxIterations = n }
}

// WithExtractor 替换特征抽取器。
func WithExtractor(x *feature.Extractor) Option {
	return func(e *Enhancer) { e.extractor = x }
}

// WithClusterer 替换聚类算法。设置后 numClusters、WithRand、WithMaxIterations 只对默认 k-means 生效。
func WithClusterer(c model.Clusterer) Option {
	return func(e *Enhancer) { e.clusterer = c }
}

// NewEnhancer 创建未训练的 Enhancer。numClusters 在构造时固定。
func NewEnhancer(numClusters int, opts ...Option) *Enhancer {
	e := &Enhancer{
		numClusters:   numClusters,
		maxIterations: core.DefaultMaxIterations,
		boost:         core.DefaultClusterBoost,
		extractor:     feature.NewExtractor(),
		logger:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rand == nil {
		e.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if e.clusterer == nil {
		km := model.NewKMeans(e.numClusters, e.rand)
		km.MaxIterations = e.maxIterations
		e.clusterer = km
	}
	return e
}

// NumClusters 返回簇数。
func (e *Enhancer) NumClusters() int { return e.numClusters }

// Boost 返回同簇加权系数。
func (e *Enhancer) Boost() float64 { return e.boost }

// TrainArtists 在艺人特征上训练模型，替换旧模型。空输入只记 warn 日志，不改变状态。
func (e *Enhancer) TrainArtists(artists []core.Artist) {
	m := train(e, core.KindArtist, artists,
		func(a core.Artist) string { return a.ID },
		e.extractor.ArtistFeatures)
	if m != nil {
		e.artists = m
	}
}

// TrainSongs 在歌曲特征上训练模型，替换旧模型。
func (e *Enhancer) TrainSongs(songs []core.Song) {
	m := train(e, core.KindSong, songs,
		func(s core.Song) string { return s.ID },
		e.extractor.SongFeatures)
	if m != nil {
		e.songs = m
	}
}

func train[T any](e *Enhancer, kind core.Kind, members []T, id func(T) string, features func(T) []float64) *trained[T] {
	if len(members) == 0 {
		e.logger.Warn().Str("kind", string(kind)).Msg("no training data provided, model unchanged")
		return nil
	}

	data := make([][]float64, len(members))
	for i, m := range members {
		data[i] = features(m)
	}

	fit, err := e.clusterer.Fit(data)
	if err != nil {
		e.logger.Warn().Err(err).
			Str("kind", string(kind)).
			Str("clusterer", e.clusterer.Name()).
			Int("size", len(members)).
			Msg("cluster training failed, model unchanged")
		return nil
	}

	clusters := make(map[string]int, len(members))
	for i, m := range members {
		clusters[id(m)] = fit.Assignments[i]
	}

	e.logger.Info().
		Str("kind", string(kind)).
		Int("size", len(members)).
		Str("clusterer", e.clusterer.Name()).
		Int("clusters", fit.K()).
		Int("iterations", fit.Iterations).
		Bool("converged", fit.Converged).
		Msg("cluster model trained")

	return &trained[T]{
		members:  slices.Clone(members),
		clusters: clusters,
		fit:      fit,
	}
}

// IsArtistModelTrained 是否已成功训练过艺人模型。
func (e *Enhancer) IsArtistModelTrained() bool { return e.artists != nil }

// IsSongModelTrained 是否已成功训练过歌曲模型。
func (e *Enhancer) IsSongModelTrained() bool { return e.songs != nil }

// ArtistCluster 返回训练集中该 id 的簇；未训练或未见过的 id 返回 model.Unassigned。
func (e *Enhancer) ArtistCluster(id string) int {
	return clusterOf(e.artists, id)
}

// SongCluster 返回训练集中该 id 的簇。
func (e *Enhancer) SongCluster(id string) int {
	return clusterOf(e.songs, id)
}

func clusterOf[T any](m *trained[T], id string) int {
	if m == nil {
		return model.Unassigned
	}
	if c, ok := m.clusters[id]; ok {
		return c
	}
	return model.Unassigned
}

// ArtistsInCluster 按训练顺序返回簇内艺人。
func (e *Enhancer) ArtistsInCluster(c int) []core.Artist {
	return membersOf(e.artists, c, func(a core.Artist) string { return a.ID })
}

// SongsInCluster 按训练顺序返回簇内歌曲。
func (e *Enhancer) SongsInCluster(c int) []core.Song {
	return membersOf(e.songs, c, func(s core.Song) string { return s.ID })
}

func membersOf[T any](m *trained[T], c int, id func(T) string) []T {
	if m == nil {
		return nil
	}
	var out []T
	for _, member := range m.members {
		if m.clusters[id(member)] == c {
			out = append(out, member)
		}
	}
	return out
}

// ArtistClustering 返回艺人模型的训练结果，未训练返回 nil。
func (e *Enhancer) ArtistClustering() *model.Clustering {
	if e.artists == nil {
		return nil
	}
	return e.artists.fit
}

// SongClustering 返回歌曲模型的训练结果，未训练返回 nil。
func (e *Enhancer) SongClustering() *model.Clustering {
	if e.songs == nil {
		return nil
	}
	return e.songs.fit
}

// ArtistQueryCluster 返回查询艺人特征最近的簇（查询艺人不必在训练集中）。
func (e *Enhancer) ArtistQueryCluster(query core.Artist) int {
	if e.artists == nil {
		return model.Unassigned
	}
	return e.artists.fit.Nearest(e.extractor.ArtistFeatures(query))
}

// SongQueryCluster 返回查询歌曲特征最近的簇。
func (e *Enhancer) SongQueryCluster(query core.Song) int {
	if e.songs == nil {
		return model.Unassigned
	}
	return e.songs.fit.Nearest(e.extractor.SongFeatures(query))
}

// EnhanceArtists 对与查询艺人同簇的结果加权，并按 Score 重新稳定排序。
// 加权发生在返回的新列表上（Item 逐个 Clone），入参 items 的内容和顺序都不变。
//
// 结果按 ArtistName 在 catalog 中回查（id 顺序下第一个同名者）；查不到或不在训练集中的不加权。
// 模型未训练时原样返回。
func (e *Enhancer) EnhanceArtists(items []*core.Item, query core.Artist, catalog core.ArtistCatalog) []*core.Item {
	if e.artists == nil {
		return items
	}
	byName := make(map[string]string, len(catalog))
	for _, id := range catalog.IDs() {
		if _, ok := byName[catalog[id].Name]; !ok {
			byName[catalog[id].Name] = id
		}
	}
	return e.enhance(items, e.ArtistQueryCluster(query), func(it *core.Item) int {
		id, ok := byName[it.ArtistName]
		if !ok {
			return model.Unassigned
		}
		return e.ArtistCluster(id)
	})
}

// EnhanceSongs 对与查询歌曲同簇的结果加权，按 SongTitle 回查。
func (e *Enhancer) EnhanceSongs(items []*core.Item, query core.Song, catalog core.SongCatalog) []*core.Item {
	if e.songs == nil {
		return items
	}
	byName := make(map[string]string, len(catalog))
	for _, id := range catalog.IDs() {
		if _, ok := byName[catalog[id].Name]; !ok {
			byName[catalog[id].Name] = id
		}
	}
	return e.enhance(items, e.SongQueryCluster(query), func(it *core.Item) int {
		id, ok := byName[it.SongTitle]
		if !ok {
			return model.Unassigned
		}
		return e.SongCluster(id)
	})
}

func (e *Enhancer) enhance(items []*core.Item, queryCluster int, lookup func(*core.Item) int) []*core.Item {
	if queryCluster == model.Unassigned {
		return items
	}
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		it = it.Clone()
		if lookup(it) == queryCluster {
			it.Score *= e.boost
			it.AppendReason(SameClusterReason)
			it.PutLabel("same_cluster", utils.Label{Value: "true", Source: utils.SourceRerank})
		}
		out = append(out, it)
	}
	rank.SortByScore(out)
	return out
}
