package model

// Clusterer 是聚类阶段的最小抽象：输入样本矩阵（每行一个特征向量），输出簇分配与质心。
// 具体实现目前只有 KMeans；同一 Clusterer 实例不保证并发安全。
type Clusterer interface {
	Name() string
	Fit(data [][]float64) (*Clustering, error)
}
