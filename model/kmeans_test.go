package model

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/muserec/core"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func twoBlobs() [][]float64 {
	return [][]float64{
		{0, 0}, {0.1, 0}, {0, 0.1},
		{10, 10}, {10.1, 10}, {10, 10.1},
	}
}

func TestKMeans_Fit_SeparatesBlobs(t *testing.T) {
	data := twoBlobs()

	// 有放回抽样可能两个初始质心落在同一团，多试几个种子，只要求能分开的情况下结果正确
	separated := 0
	for seed := uint64(1); seed <= 20; seed++ {
		res, err := NewKMeans(2, seeded(seed)).Fit(data)
		require.NoError(t, err)
		require.Len(t, res.Assignments, len(data))
		require.Len(t, res.Centroids, 2)

		a := res.Assignments
		if a[0] == a[3] {
			continue
		}
		separated++
		assert.Equal(t, a[0], a[1])
		assert.Equal(t, a[0], a[2])
		assert.Equal(t, a[3], a[4])
		assert.Equal(t, a[3], a[5])
		assert.True(t, res.Converged)
		assert.InDelta(t, 0.0333, res.Centroids[a[0]][0], 1e-3)
		assert.InDelta(t, 10.0333, res.Centroids[a[3]][0], 1e-3)
	}
	assert.Positive(t, separated)
}

func TestKMeans_Fit_Deterministic(t *testing.T) {
	data := twoBlobs()
	r1, err := NewKMeans(3, seeded(42)).Fit(data)
	require.NoError(t, err)
	r2, err := NewKMeans(3, seeded(42)).Fit(data)
	require.NoError(t, err)
	assert.Equal(t, r1.Assignments, r2.Assignments)
	assert.Equal(t, r1.Centroids, r2.Centroids)
}

func TestKMeans_Fit_AssignmentsInRange(t *testing.T) {
	data := twoBlobs()
	res, err := NewKMeans(8, seeded(7)).Fit(data)
	require.NoError(t, err)
	for _, a := range res.Assignments {
		assert.GreaterOrEqual(t, a, 0)
		assert.Less(t, a, 8)
	}

	sizes := res.Sizes()
	total := 0
	for c, n := range sizes {
		total += n
		if n == 0 {
			assert.Nil(t, res.Centroids[c], "empty cluster %d has no centroid", c)
		}
	}
	assert.Equal(t, len(data), total)
}

func TestKMeans_Fit_SingleCluster(t *testing.T) {
	res, err := NewKMeans(1, seeded(1)).Fit(twoBlobs())
	require.NoError(t, err)
	for _, a := range res.Assignments {
		assert.Equal(t, 0, a)
	}
	assert.InDelta(t, 5.0333, res.Centroids[0][0], 1e-3)
}

func TestKMeans_Fit_MaxIterations(t *testing.T) {
	m := NewKMeans(2, seeded(3))
	m.MaxIterations = 1
	res, err := m.Fit(twoBlobs())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Iterations)
}

func TestKMeans_Fit_Errors(t *testing.T) {
	_, err := NewKMeans(2, seeded(1)).Fit(nil)
	assert.ErrorIs(t, err, core.ErrEmptyTrainingSet)

	_, err = NewKMeans(0, seeded(1)).Fit(twoBlobs())
	assert.True(t, core.IsInvalidInput(err))

	_, err = NewKMeans(2, seeded(1)).Fit([][]float64{{1, 2}, {1, 2, 3}})
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
}

func TestNearest(t *testing.T) {
	centroids := [][]float64{{0, 0}, nil, {5, 5}, {1, 2, 3}}

	assert.Equal(t, 0, Nearest([]float64{1, 1}, centroids))
	assert.Equal(t, 2, Nearest([]float64{4, 4}, centroids))
	assert.Equal(t, 3, Nearest([]float64{1, 2, 3}, centroids), "only same-dim centroid is eligible")
	assert.Equal(t, Unassigned, Nearest([]float64{1}, centroids))
	assert.Equal(t, Unassigned, Nearest([]float64{1, 1}, [][]float64{nil, nil}))
	assert.Equal(t, Unassigned, Nearest([]float64{1, 1}, nil))
}

func TestNearest_TieBreaksLowestIndex(t *testing.T) {
	centroids := [][]float64{{-1, 0}, {1, 0}}
	assert.Equal(t, 0, Nearest([]float64{0, 0}, centroids))
}

func TestKMeans_Fit_CentroidIsMeanOfMembers(t *testing.T) {
	r := seeded(11)
	data := make([][]float64, 40)
	for i := range data {
		data[i] = []float64{r.Float64(), r.Float64(), r.Float64()}
	}

	for _, maxIter := range []int{1, 2, 100} {
		m := NewKMeans(4, seeded(5))
		m.MaxIterations = maxIter
		res, err := m.Fit(data)
		require.NoError(t, err)
		require.Len(t, res.Assignments, len(data))

		for c, centroid := range res.Centroids {
			var members [][]float64
			for i, a := range res.Assignments {
				if a == c {
					members = append(members, data[i])
				}
			}
			if len(members) == 0 {
				assert.Nil(t, centroid)
				continue
			}
			for d := range centroid {
				sum := 0.0
				for _, p := range members {
					sum += p[d]
				}
				assert.InDelta(t, sum/float64(len(members)), centroid[d], 1e-12)
			}
		}
	}
}
