// Package loader 是目录数据的加载边界：从 CSV / JSON 文件或 KV 存储构建艺人与歌曲目录。
//
// 推荐核心只接收内存中的 core.ArtistCatalog / core.SongCatalog，不关心数据来源。
package loader

import (
	"maps"

	"github.com/rushteam/muserec/core"
)

// Catalog 是一次加载的结果，两个目录都不为 nil。
type Catalog struct {
	Artists core.ArtistCatalog
	Songs   core.SongCatalog
}

// NewCatalog 创建空目录。
func NewCatalog() *Catalog {
	return &Catalog{
		Artists: make(core.ArtistCatalog),
		Songs:   make(core.SongCatalog),
	}
}

// Merge 把 other 合入 c，id 相同时以 other 为准。
func (c *Catalog) Merge(other *Catalog) {
	if other == nil {
		return
	}
	maps.Copy(c.Artists, other.Artists)
	maps.Copy(c.Songs, other.Songs)
}

// Validate 校验目录内容，见 Validate。
func (c *Catalog) Validate() error {
	return Validate(c.Artists, c.Songs)
}
