package feature

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Epsilon 是归一化的最小模长；模长低于它的向量视为零向量，原样返回。
const Epsilon = 1e-10

// Normalize 对向量做 L2 归一化，返回新切片，不修改入参。
//
// 模长 < Epsilon 时返回原值的拷贝（零向量是合法输入，不是错误）。
func Normalize(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)

	norm := floats.Norm(out, 2)
	if norm < Epsilon {
		return out
	}
	floats.Scale(1/norm, out)
	return out
}

// Clamp01Ratio 计算 n/denom 并截断到 1.0，用于标签数、多样性这类计数特征。
func Clamp01Ratio(n int, denom float64) float64 {
	return math.Min(float64(n)/denom, 1.0)
}
