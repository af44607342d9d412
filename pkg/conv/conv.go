// Package conv 把 YAML/JSON 解析出的 map[string]any 读成强类型值，供配置驱动的 Node 构建使用。
//
// 所有读取函数对 nil map 安全，缺失或类型不符时返回调用方给的默认值。
package conv

// Number 把数值类型统一为 float64。bool 和字符串不视为数值。
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	}
	return 0, false
}

// Get 取 key 对应的 T。
func Get[T any](m map[string]any, key string, def T) T {
	if v, ok := m[key].(T); ok {
		return v
	}
	return def
}

// Float64 取数值配置项。YAML 中写 1 会解析为 int，这里一并接受。
func Float64(m map[string]any, key string, def float64) float64 {
	if f, ok := Number(m[key]); ok {
		return f
	}
	return def
}

// Int 取整数配置项，小数部分截断。
func Int(m map[string]any, key string, def int) int {
	if f, ok := Number(m[key]); ok {
		return int(f)
	}
	return def
}

// Maps 取对象列表配置项（如 filter 节点的 filters），非对象元素被跳过。
// key 缺失或不是列表时 ok 为 false。
func Maps(m map[string]any, key string) ([]map[string]any, bool) {
	raw, ok := m[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]map[string]any, 0, len(raw))
	for _, e := range raw {
		if obj, ok := e.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out, true
}
