package loader

import (
	"errors"
	"fmt"
	"math"

	"github.com/rushteam/muserec/core"
	"github.com/rushteam/muserec/feature"
)

// ErrInvalidRecord 是所有校验错误的根，可用 errors.Is 判断。
var ErrInvalidRecord = core.NewDomainError(core.ModuleLoader, core.ErrorCodeInvalidInput, "loader: invalid record")

// Validate 检查目录数据，所有问题通过 errors.Join 一并返回，没有问题返回 nil：
//   - id 为空，或与目录 key 不一致
//   - 名称为空
//   - 流行度不在 [0, 1] 内或不是有限值
//   - 歌曲特征含 NaN / Inf
//   - 歌曲特征长度与其他歌曲不一致（以 id 顺序下第一首有特征的歌曲为准）
//   - 歌曲引用了艺人目录中不存在的艺人（艺人目录为空时不检查）
//
// 校验只报告问题，不修改数据；推荐链路对这些情况都有确定的（可能退化的）行为。
func Validate(artists core.ArtistCatalog, songs core.SongCatalog) error {
	var errs []error
	report := func(kind core.Kind, key, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%s %q: %s: %w", kind, key, fmt.Sprintf(format, args...), ErrInvalidRecord))
	}

	for _, key := range artists.IDs() {
		a := artists[key]
		if a.ID == "" {
			report(core.KindArtist, key, "empty id")
		} else if a.ID != key {
			report(core.KindArtist, key, "id %q does not match key", a.ID)
		}
		if a.Name == "" {
			report(core.KindArtist, key, "empty name")
		}
		if !validPopularity(a.Popularity) {
			report(core.KindArtist, key, "popularity %v out of [0,1]", a.Popularity)
		}
	}

	dims := -1
	for _, key := range songs.IDs() {
		s := songs[key]
		if s.ID == "" {
			report(core.KindSong, key, "empty id")
		} else if s.ID != key {
			report(core.KindSong, key, "id %q does not match key", s.ID)
		}
		if s.Name == "" {
			report(core.KindSong, key, "empty name")
		}
		if !validPopularity(s.Popularity) {
			report(core.KindSong, key, "popularity %v out of [0,1]", s.Popularity)
		}
		for i, f := range s.Features {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				report(core.KindSong, key, "feature %d is not finite", i)
			}
		}
		if len(s.Features) > 0 {
			if dims < 0 {
				dims = len(s.Features)
			} else if len(s.Features) != dims {
				report(core.KindSong, key, "has %d features, want %d", len(s.Features), dims)
			}
		}
		if len(artists) > 0 && s.ArtistID != "" {
			if _, ok := artists[s.ArtistID]; !ok {
				report(core.KindSong, key, "unknown artist %q", s.ArtistID)
			}
		}
	}

	return errors.Join(errs...)
}

func validPopularity(p float64) bool {
	return p >= 0 && p <= 1
}

// UnknownGenres 按 id 顺序返回流派不在编码表内的艺人 id。
// 这些艺人仍然合法，只是流派维度编码为 feature.UnknownGenre，调用方通常只做提示。
func UnknownGenres(artists core.ArtistCatalog) []string {
	enc := feature.NewGenreEncoder()
	var out []string
	for _, id := range artists.IDs() {
		if !enc.Known(artists[id].Genre) {
			out = append(out, id)
		}
	}
	return out
}
