package loader

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/rushteam/muserec/core"
)

// DefaultKeyPrefix 是目录快照在存储中的默认 key 前缀。
const DefaultKeyPrefix = "muserec:catalog"

// Repository 把目录快照保存到 HashStore：每个目录一个 Hash，field 为实体 id，value 为 JSON。
//
// Save 先删除旧 Hash 再整体写入，两步之间不是原子的；并发读到的可能是空目录或部分目录。
type Repository struct {
	store  core.HashStore
	prefix string
}

// NewRepository 创建仓库；prefix 为空时使用 DefaultKeyPrefix。
func NewRepository(store core.HashStore, prefix string) *Repository {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Repository{store: store, prefix: prefix}
}

func (r *Repository) artistsKey() string { return r.prefix + ":artists" }
func (r *Repository) songsKey() string   { return r.prefix + ":songs" }

// Save 用 c 替换存储中的两个目录。
func (r *Repository) Save(ctx context.Context, c *Catalog) error {
	if err := r.SaveArtists(ctx, c.Artists); err != nil {
		return err
	}
	return r.SaveSongs(ctx, c.Songs)
}

// Load 读取两个目录；不存在的目录返回空目录。
func (r *Repository) Load(ctx context.Context) (*Catalog, error) {
	artists, err := r.LoadArtists(ctx)
	if err != nil {
		return nil, err
	}
	songs, err := r.LoadSongs(ctx)
	if err != nil {
		return nil, err
	}
	return &Catalog{Artists: artists, Songs: songs}, nil
}

func (r *Repository) SaveArtists(ctx context.Context, artists core.ArtistCatalog) error {
	return saveHash(ctx, r.store, r.artistsKey(), artists)
}

func (r *Repository) SaveSongs(ctx context.Context, songs core.SongCatalog) error {
	return saveHash(ctx, r.store, r.songsKey(), songs)
}

func (r *Repository) LoadArtists(ctx context.Context) (core.ArtistCatalog, error) {
	m, err := loadHash[core.Artist](ctx, r.store, r.artistsKey())
	if err != nil {
		return nil, err
	}
	return core.ArtistCatalog(m), nil
}

func (r *Repository) LoadSongs(ctx context.Context) (core.SongCatalog, error) {
	m, err := loadHash[core.Song](ctx, r.store, r.songsKey())
	if err != nil {
		return nil, err
	}
	return core.SongCatalog(m), nil
}

func saveHash[T any](ctx context.Context, store core.HashStore, key string, entries map[string]T) error {
	fields := make(map[string][]byte, len(entries))
	for id, e := range entries {
		b, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode %s/%s: %w", key, id, err)
		}
		fields[id] = b
	}
	if err := store.Delete(ctx, key); err != nil {
		return fmt.Errorf("%s delete %s: %w", store.Name(), key, err)
	}
	if err := store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("%s hset %s: %w", store.Name(), key, err)
	}
	return nil
}

func loadHash[T any](ctx context.Context, store core.HashStore, key string) (map[string]T, error) {
	fields, err := store.HGetAll(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%s hgetall %s: %w", store.Name(), key, err)
	}
	out := make(map[string]T, len(fields))
	for id, b := range fields {
		var e T
		if err := json.Unmarshal(b, &e); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", key, id, err)
		}
		out[id] = e
	}
	return out, nil
}
