package model

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/rushteam/muserec/core"
)

// Unassigned 表示没有可用簇（未训练、未见过的 id，或所有质心为空）。
const Unassigned = -1

// Clustering 是一次 Fit 的结果，训练后只读。
type Clustering struct {
	// Assignments 与输入样本一一对应，取值 [0, K)
	Assignments []int

	// Centroids 长度为 K；没有样本落入的簇为 nil，不参与最近质心搜索
	Centroids [][]float64

	// Iterations 实际迭代次数；Converged 为 false 表示到达迭代上限
	Iterations int
	Converged  bool
}

// K 返回簇数。
func (c *Clustering) K() int { return len(c.Centroids) }

// Sizes 返回每个簇的样本数。
func (c *Clustering) Sizes() []int {
	sizes := make([]int, len(c.Centroids))
	for _, a := range c.Assignments {
		if a >= 0 && a < len(sizes) {
			sizes[a]++
		}
	}
	return sizes
}

// Nearest 返回 point 在本模型中的最近簇。
func (c *Clustering) Nearest(point []float64) int {
	return Nearest(point, c.Centroids)
}

// KMeans 实现了 Lloyd 迭代的 k-means 聚类。
//
// 算法：
//  1. 初始化：从样本中有放回地均匀随机抽取 K 个作为初始质心（可能重复，不做修正）
//  2. 分配：每个样本分到欧氏距离最近的质心，距离相同取下标最小的簇
//  3. 更新：质心取所分配样本的逐维均值；本轮没有样本的簇保留原质心
//  4. 本轮没有样本换簇且没有质心移动则提前结束，否则最多迭代 MaxIterations 次
//
// 只保证局部最优。随机源可注入，固定种子下结果可复现。
type KMeans struct {
	K             int
	MaxIterations int
	Rand          *rand.Rand
}

// NewKMeans 创建 k-means 模型；r 为 nil 时使用随机种子。
func NewKMeans(k int, r *rand.Rand) *KMeans {
	return &KMeans{K: k, MaxIterations: core.DefaultMaxIterations, Rand: r}
}

func (m *KMeans) Name() string { return "kmeans" }

// Fit 在 data 上训练。data 为空返回 core.ErrEmptyTrainingSet；各行维度不一致返回 core.ErrDimensionMismatch。
func (m *KMeans) Fit(data [][]float64) (*Clustering, error) {
	if len(data) == 0 {
		return nil, core.ErrEmptyTrainingSet
	}
	if m.K <= 0 {
		return nil, core.NewDomainError(core.ModuleCluster, core.ErrorCodeInvalidInput,
			fmt.Sprintf("cluster: invalid number of clusters %d", m.K))
	}
	dims := len(data[0])
	for i, row := range data {
		if len(row) != dims {
			return nil, fmt.Errorf("row %d has %d dims, want %d: %w", i, len(row), dims, core.ErrDimensionMismatch)
		}
	}

	r := m.Rand
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	maxIter := m.MaxIterations
	if maxIter <= 0 {
		maxIter = core.DefaultMaxIterations
	}

	centroids := make([][]float64, m.K)
	for i := range centroids {
		centroids[i] = slices.Clone(data[r.IntN(len(data))])
	}

	assignments := make([]int, len(data))
	converged := false
	iter := 0
	for !converged && iter < maxIter {
		converged = true

		for i, p := range data {
			nearest := Nearest(p, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				converged = false
			}
		}

		for c := range centroids {
			mean := clusterMean(data, assignments, c, dims)
			if mean == nil {
				continue
			}
			if !floats.Equal(mean, centroids[c]) {
				centroids[c] = mean
				converged = false
			}
		}
		iter++
	}

	final := make([][]float64, m.K)
	for c := range final {
		final[c] = clusterMean(data, assignments, c, dims)
	}

	return &Clustering{
		Assignments: assignments,
		Centroids:   final,
		Iterations:  iter,
		Converged:   converged,
	}, nil
}

// Nearest 返回距离 point 最近的非空质心下标，距离相同取下标最小者。
// nil 质心与维度不一致的质心不参与比较；没有可比较的质心时返回 Unassigned。
func Nearest(point []float64, centroids [][]float64) int {
	best := Unassigned
	bestDist := 0.0
	for i, c := range centroids {
		d, ok := Distance(point, c)
		if !ok {
			continue
		}
		if best == Unassigned || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Distance 计算欧氏距离；c 为 nil 或维度不一致时 ok 为 false，表示“无穷远”。
func Distance(a, b []float64) (float64, bool) {
	if b == nil || len(a) != len(b) {
		return 0, false
	}
	if len(a) == 0 {
		return 0, true
	}
	return floats.Distance(a, b, 2), true
}

// clusterMean 返回簇 c 所有样本的逐维均值；簇为空返回 nil。
func clusterMean(data [][]float64, assignments []int, c, dims int) []float64 {
	var (
		sum   []float64
		count int
	)
	for i, a := range assignments {
		if a != c {
			continue
		}
		if sum == nil {
			sum = make([]float64, dims)
		}
		floats.Add(sum, data[i])
		count++
	}
	if count == 0 {
		return nil
	}
	floats.Scale(1/float64(count), sum)
	return sum
}

var _ Clusterer = (*KMeans)(nil)
