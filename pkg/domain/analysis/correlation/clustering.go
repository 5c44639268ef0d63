package correlation

import (
	"fmt"
	"math"
	"sort"
)

// clusterCutoff is the fixed |r| a pair must exceed for its two
// features to land in the same cluster. Requested thresholds do not
// influence clustering.
const clusterCutoff = 0.7

// Cluster is a group of numeric features which are transitively
// correlated with each other.
type Cluster struct {
	Name     string
	Features []string
}

// ClusterReport partitions the numeric features: every numeric
// feature, degenerate ones included, belongs to exactly one cluster.
// Features correlated with nothing form singleton clusters.
type ClusterReport struct {
	Clusters []Cluster
	Count    int
}

// Clustering groups features by transitive closure over pairs with
// |r| > 0.7: when A-B and B-C both clear the cutoff, A, B and C share
// a cluster even if A-C does not.
func (a *Analyzer) Clustering() ClusterReport {
	parent := make([]int, len(a.features))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(x, y int) {
		parent[find(x)] = find(y)
	}

	pos := map[string]int{}
	for i, name := range a.features {
		pos[name] = i
	}
	for _, p := range a.pairs() {
		if clusterCutoff < math.Abs(p.R) {
			union(pos[p.First], pos[p.Second])
		}
	}

	grouped := map[int][]string{}
	for i, name := range a.features {
		root := find(i)
		grouped[root] = append(grouped[root], name)
	}

	clusters := make([]Cluster, 0, len(grouped))
	for _, features := range grouped {
		sort.Strings(features)
		clusters = append(clusters, Cluster{Features: features})
	}
	// largest first so the interesting groups lead the report
	sort.Slice(clusters, func(i, j int) bool {
		if len(clusters[i].Features) != len(clusters[j].Features) {
			return len(clusters[j].Features) < len(clusters[i].Features)
		}
		return clusters[i].Features[0] < clusters[j].Features[0]
	})
	for i := range clusters {
		clusters[i].Name = fmt.Sprintf("cluster_%d", i+1)
	}

	return ClusterReport{Clusters: clusters, Count: len(clusters)}
}
