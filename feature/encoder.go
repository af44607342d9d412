package feature

// GenreEncoder 是流派的 Label 编码（标签编码）：把封闭集合内的流派字符串映射为正整数。
//
// 匹配规则：大小写敏感、精确匹配，不做模糊归一；未知流派编码为 0。
// 同义流派（如 hip-hop / rap）共享同一个编码。
type GenreEncoder struct {
	codes map[string]float64
}

// defaultGenreCodes 是内置的流派编码表。
var defaultGenreCodes = map[string]float64{
	"hip-hop":      1,
	"rap":          1,
	"pop":          2,
	"rock":         3,
	"electronic":   4,
	"edm":          4,
	"r&b":          5,
	"soul":         5,
	"indie":        6,
	"alternative":  6,
	"jazz":         7,
	"classical":    8,
	"country":      9,
	"folk":         10,
	"metal":        11,
	"punk":         12,
	"reggae":       13,
	"blues":        14,
	"funk":         15,
	"disco":        16,
	"latin":        17,
	"world":        18,
	"experimental": 19,
	"ambient":      20,
}

// UnknownGenre 是未知流派的编码值。
const UnknownGenre = 0.0

// NewGenreEncoder 创建使用内置编码表的编码器。
func NewGenreEncoder() *GenreEncoder {
	return &GenreEncoder{codes: defaultGenreCodes}
}

// Encode 返回流派编码，未知流派返回 UnknownGenre。
func (e *GenreEncoder) Encode(genre string) float64 {
	if code, ok := e.codes[genre]; ok {
		return code
	}
	return UnknownGenre
}

// Known 判断流派是否在编码表内。
func (e *GenreEncoder) Known(genre string) bool {
	_, ok := e.codes[genre]
	return ok
}
