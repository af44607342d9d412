package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/rushteam/muserec/core"
)

// Document 是 JSON 目录文件的结构：
//
//	{"artists": [{"id": "a1", "name": "...", "genre": "rock", "popularity": 0.3, "tags": ["rock"]}],
//	 "songs":   [{"id": "s1", "name": "...", "artist_id": "a1", "popularity": 0.2, "features": [0.1, 0.5]}]}
type Document struct {
	Artists []core.Artist `json:"artists"`
	Songs   []core.Song   `json:"songs"`
}

// ReadJSON 从 r 读取 JSON 目录，id 重复时后出现的覆盖前面的。
func ReadJSON(r io.Reader) (*Catalog, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, core.NewDomainError(core.ModuleLoader, core.ErrorCodeInvalidInput, fmt.Sprintf("loader: parse json: %v", err))
	}
	return doc.Catalog(), nil
}

// LoadJSON 读取 JSON 目录文件。
func LoadJSON(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open json: %w", err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// Catalog 把文档转换为按 id 索引的目录。
func (d Document) Catalog() *Catalog {
	cat := NewCatalog()
	for _, a := range d.Artists {
		cat.Artists[a.ID] = a
	}
	for _, s := range d.Songs {
		cat.Songs[s.ID] = s
	}
	return cat
}

// NewDocument 按 id 顺序把目录转换为文档，便于稳定输出。
func NewDocument(c *Catalog) Document {
	return Document{
		Artists: c.Artists.Artists(),
		Songs:   c.Songs.Songs(),
	}
}

// WriteJSON 把目录以缩进 JSON 写入 w。
func WriteJSON(w io.Writer, c *Catalog) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(c))
}
