package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/rushteam/muserec/core"
)

// CSV 格式（首行为表头，跳过）：
//
//	artists: id,name,genre,popularity,tags        tags 以 ';' 分隔
//	songs:   id,name,artist_id,popularity,features features 以 ';' 分隔
//
// 无法解析的数值按 0.0 处理，缺失的列按空值处理；id 重复时后出现的行覆盖前面的。
const listSeparator = ";"

// ReadArtistsCSV 从 r 读取艺人 CSV。
func ReadArtistsCSV(r io.Reader) (core.ArtistCatalog, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	artists := make(core.ArtistCatalog, len(rows))
	for _, row := range rows {
		a := core.Artist{
			ID:         field(row, 0),
			Name:       field(row, 1),
			Genre:      field(row, 2),
			Popularity: parseFloat(field(row, 3)),
			Tags:       splitList(field(row, 4)),
		}
		artists[a.ID] = a
	}
	return artists, nil
}

// ReadSongsCSV 从 r 读取歌曲 CSV。
func ReadSongsCSV(r io.Reader) (core.SongCatalog, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	songs := make(core.SongCatalog, len(rows))
	for _, row := range rows {
		var features []float64
		for _, f := range splitList(field(row, 4)) {
			features = append(features, parseFloat(f))
		}
		s := core.Song{
			ID:         field(row, 0),
			Name:       field(row, 1),
			ArtistID:   field(row, 2),
			Popularity: parseFloat(field(row, 3)),
			Features:   features,
		}
		songs[s.ID] = s
	}
	return songs, nil
}

// LoadArtistsCSV 读取艺人 CSV 文件。
func LoadArtistsCSV(path string) (core.ArtistCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open artists csv: %w", err)
	}
	defer f.Close()
	return ReadArtistsCSV(f)
}

// LoadSongsCSV 读取歌曲 CSV 文件。
func LoadSongsCSV(path string) (core.SongCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open songs csv: %w", err)
	}
	defer f.Close()
	return ReadSongsCSV(f)
}

// ReadCSV 根据表头判断文件类型（含 artist_id 列的是歌曲，否则是艺人）并读取。
func ReadCSV(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	kind, err := DetectCSVKind(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	cat := NewCatalog()
	switch kind {
	case core.KindSong:
		cat.Songs, err = ReadSongsCSV(bytes.NewReader(data))
	default:
		cat.Artists, err = ReadArtistsCSV(bytes.NewReader(data))
	}
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// DetectCSVKind 读取表头判断目录类型。
func DetectCSVKind(r io.Reader) (core.Kind, error) {
	header, err := newReader(r).Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", core.NewDomainError(core.ModuleLoader, core.ErrorCodeEmptyInput, "loader: empty csv")
		}
		return "", fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	if slices.Contains(header, "artist_id") || slices.Contains(header, "features") {
		return core.KindSong, nil
	}
	return core.KindArtist, nil
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	return cr
}

// readRows 读取除表头外的所有行。
func readRows(r io.Reader) ([][]string, error) {
	rows, err := newReader(r).ReadAll()
	if err != nil {
		return nil, core.NewDomainError(core.ModuleLoader, core.ErrorCodeInvalidInput, fmt.Sprintf("loader: parse csv: %v", err))
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[1:], nil
}

func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseFloat 解析失败或得到 NaN / Inf 时返回 0.0，推荐链路只接收有限值。
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0.0
	}
	return v
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, listSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
