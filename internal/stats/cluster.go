package stats

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"deadshot-stats/internal/domain"
)

const clusterMaxIterations = 100

// ClusterAssignment places one player in a behavioral cluster. The grouping
// is exploratory and advisory only: deterministic for a fixed seed, but with
// no correctness guarantee beyond that.
type ClusterAssignment struct {
	PlayerName string    `json:"player_name"`
	Cluster    int       `json:"cluster"`
	Features   []float64 `json:"features"` // kd, kills/min, assists/min, win rate
}

// Clusters groups players by k-means over their standardized metric vector
// (K/D, kills per minute, assists per minute, win rate). The seed fixes both
// centroid initialization and therefore the full run, so identical inputs
// always produce identical assignments.
func Clusters(players []domain.PlayerStats, k int, seed int64) []ClusterAssignment {
	if len(players) == 0 {
		return []ClusterAssignment{}
	}
	if k < 1 {
		k = 1
	}
	if k > len(players) {
		k = len(players)
	}

	// stable input order regardless of caller
	ordered := make([]domain.PlayerStats, len(players))
	copy(ordered, players)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].PlayerName < ordered[j].PlayerName })

	vectors := make([][]float64, len(ordered))
	for i, p := range ordered {
		vectors[i] = []float64{p.KDRatio, p.KillsPerMinute, p.AssistsPerMinute, p.WinRate}
	}
	standardize(vectors)

	rng := rand.New(rand.NewSource(seed))
	centroids := initialCentroids(vectors, k, rng)

	assignments := make([]int, len(vectors))
	for iter := 0; iter < clusterMaxIterations; iter++ {
		changed := false
		for i, v := range vectors {
			best := nearestCentroid(v, centroids)
			if best != assignments[i] {
				assignments[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}
		recomputeCentroids(vectors, assignments, centroids)
	}

	out := make([]ClusterAssignment, len(ordered))
	for i, p := range ordered {
		out[i] = ClusterAssignment{
			PlayerName: p.PlayerName,
			Cluster:    assignments[i],
			Features:   []float64{p.KDRatio, p.KillsPerMinute, p.AssistsPerMinute, p.WinRate},
		}
	}
	return out
}

// standardize shifts every feature column to zero mean and unit variance.
// Constant columns are left centered so they cannot dominate distances.
func standardize(vectors [][]float64) {
	if len(vectors) == 0 {
		return
	}
	dims := len(vectors[0])
	column := make([]float64, len(vectors))
	for d := 0; d < dims; d++ {
		for i, v := range vectors {
			column[i] = v[d]
		}
		mean, std := stat.MeanStdDev(column, nil)
		if math.IsNaN(std) || std == 0 {
			std = 1
		}
		for i := range vectors {
			vectors[i][d] = (vectors[i][d] - mean) / std
		}
	}
}

func initialCentroids(vectors [][]float64, k int, rng *rand.Rand) [][]float64 {
	picked := rng.Perm(len(vectors))[:k]
	sort.Ints(picked)
	centroids := make([][]float64, k)
	for i, idx := range picked {
		centroids[i] = append([]float64(nil), vectors[idx]...)
	}
	return centroids
}

// nearestCentroid breaks distance ties toward the lower cluster index.
func nearestCentroid(v []float64, centroids [][]float64) int {
	best, bestDist := 0, math.Inf(1)
	for c, centroid := range centroids {
		if d := floats.Distance(v, centroid, 2); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func recomputeCentroids(vectors [][]float64, assignments []int, centroids [][]float64) {
	dims := len(vectors[0])
	counts := make([]int, len(centroids))
	sums := make([][]float64, len(centroids))
	for c := range centroids {
		sums[c] = make([]float64, dims)
	}
	for i, v := range vectors {
		c := assignments[i]
		counts[c]++
		floats.Add(sums[c], v)
	}
	for c := range centroids {
		if counts[c] == 0 {
			continue // empty cluster keeps its previous centroid
		}
		for d := 0; d < dims; d++ {
			centroids[c][d] = sums[c][d] / float64(counts[c])
		}
	}
}
