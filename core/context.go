package core

// RecommendContext 承载一次查询的上下文：查询实体 + 目录快照，贯穿整个 Pipeline 透传。
//
// QueryArtist / QuerySong 按 Kind 二选一填充。
// 歌曲推荐时 Artists 仅作透传，供聚类或后续扩展交叉引用，不参与歌曲相似度计算。
type RecommendContext struct {
	Kind Kind

	QueryArtist *Artist
	QuerySong   *Song

	Artists ArtistCatalog
	Songs   SongCatalog

	// Params 请求级参数，供表达式过滤等节点读取
	Params map[string]any
}

// QueryID 返回查询实体的 id。
func (rctx *RecommendContext) QueryID() string {
	switch {
	case rctx.Kind == KindArtist && rctx.QueryArtist != nil:
		return rctx.QueryArtist.ID
	case rctx.Kind == KindSong && rctx.QuerySong != nil:
		return rctx.QuerySong.ID
	}
	return ""
}

// QueryName 返回查询实体的展示名。
func (rctx *RecommendContext) QueryName() string {
	switch {
	case rctx.Kind == KindArtist && rctx.QueryArtist != nil:
		return rctx.QueryArtist.Name
	case rctx.Kind == KindSong && rctx.QuerySong != nil:
		return rctx.QuerySong.Name
	}
	return ""
}
