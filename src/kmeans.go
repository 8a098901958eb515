package rfcore

/*------------------------------------------------------------------
 *
 * Purpose:	k-means clustering over 2-D feature points, with
 *		silhouette-based k-selection.
 *
 * Description:	Seeding takes the first k points as the initial
 *		centroids (deterministic given input order, a design
 *		choice accepted by spec.md section 4.4 rather than a
 *		random restart scheme -- there is no entropy source on
 *		this kind of embedded target worth spending on seeding).
 *
 *----------------------------------------------------------------*/

const K_MAX = 5
const KMEANS_MAX_ITERATIONS = 100

// convergenceThreshold is FIXED_ONE/200 (0.5%), per spec.md section
// 4.4. spec.md section 9 flags this as possibly too tight for
// large-scale features (e.g. widths in microseconds); callers working
// in such units should rescale their points before calling kmeans_run
// rather than relying on a relative threshold here.
var convergenceThreshold = fixed_div(FIXED_ONE, int_to_fixed(200))

type data_point_t struct {
	x, y       fixed_t
	cluster_id int
}

type centroid_t struct {
	x, y         fixed_t
	point_count  int
	inertia      fixed_t
}

type kmeans_result_t struct {
	k                int
	centroids        [K_MAX]centroid_t
	iterations       int
	converged        bool
	total_inertia    fixed_t
	silhouette_score fixed_t
}

// kmeans_run clusters dataset into k groups. k is clamped to
// [1, min(K_MAX, len(dataset))], with 0 mapped to the documented
// default of 3, per spec.md section 4.4.
func kmeans_run(dataset []data_point_t, k int) kmeans_result_t {
	if k == 0 {
		k = 3
	}
	if k > len(dataset) {
		k = len(dataset)
	}
	if k > K_MAX {
		k = K_MAX
	}
	if k < 1 {
		k = 1
	}

	var result kmeans_result_t
	result.k = k
	if len(dataset) == 0 {
		return result
	}

	for i := 0; i < k; i++ {
		result.centroids[i].x = dataset[i].x
		result.centroids[i].y = dataset[i].y
	}

	for iter := 0; iter < KMEANS_MAX_ITERATIONS; iter++ {
		result.iterations = iter + 1
		kmeans_assign(dataset, result.centroids[:k])

		var prev [K_MAX]centroid_t
		copy(prev[:], result.centroids[:k])

		kmeans_update(dataset, result.centroids[:k])

		if kmeans_movement(prev[:k], result.centroids[:k]) < convergenceThreshold {
			result.converged = true
			break
		}
	}

	// Accumulate against the assignment already set by the loop's last
	// kmeans_assign, not a fresh re-assignment: kmeans_update computed
	// each centroid as the mean of exactly that assignment, so
	// re-assigning here (against the now-updated centroid positions)
	// could relabel boundary points and break the invariant that each
	// centroid equals the mean of the points point_count/inertia counts.
	kmeans_accumulate(dataset, result.centroids[:k])

	var total fixed_t
	for i := 0; i < k; i++ {
		total = fixed_add(total, result.centroids[i].inertia)
	}
	result.total_inertia = total
	result.silhouette_score = kmeans_silhouette(dataset, result.centroids[:k])
	return result
}

// kmeans_assign labels each point with the nearest centroid (ties
// broken by the lower cluster id, since clusters are scanned in order).
func kmeans_assign(dataset []data_point_t, centroids []centroid_t) {
	for i := range dataset {
		var best = 0
		var bestDist = fixed_t(FIXED_MAX)
		for c := range centroids {
			var d = vec2_euclidean(vec2_t{x: dataset[i].x, y: dataset[i].y}, vec2_t{x: centroids[c].x, y: centroids[c].y})
			if d < bestDist {
				bestDist = d
				best = c
			}
		}
		dataset[i].cluster_id = best
	}
}

// kmeans_update recomputes each centroid as the mean of its assigned
// points. Empty clusters keep their previous position, per spec.md
// section 4.4 step 3.
func kmeans_update(dataset []data_point_t, centroids []centroid_t) {
	var sumX = make([]fixed_t, len(centroids))
	var sumY = make([]fixed_t, len(centroids))
	var count = make([]int, len(centroids))
	for _, p := range dataset {
		sumX[p.cluster_id] = fixed_add(sumX[p.cluster_id], p.x)
		sumY[p.cluster_id] = fixed_add(sumY[p.cluster_id], p.y)
		count[p.cluster_id]++
	}
	for c := range centroids {
		if count[c] == 0 {
			continue
		}
		centroids[c].x = fixed_div(sumX[c], int_to_fixed(count[c]))
		centroids[c].y = fixed_div(sumY[c], int_to_fixed(count[c]))
	}
}

// kmeans_accumulate fills in point_count and inertia (sum of squared
// distances) for the final assignment.
func kmeans_accumulate(dataset []data_point_t, centroids []centroid_t) {
	for c := range centroids {
		centroids[c].point_count = 0
		centroids[c].inertia = 0
	}
	for _, p := range dataset {
		var d = vec2_euclidean(vec2_t{x: p.x, y: p.y}, vec2_t{x: centroids[p.cluster_id].x, y: centroids[p.cluster_id].y})
		centroids[p.cluster_id].point_count++
		centroids[p.cluster_id].inertia = fixed_add(centroids[p.cluster_id].inertia, fixed_mul(d, d))
	}
}

// kmeans_movement is the Manhattan distance between each centroid's
// old and new position, summed across all centroids.
func kmeans_movement(prev, cur []centroid_t) fixed_t {
	var total fixed_t
	for i := range cur {
		total = fixed_add(total, vec2_manhattan(vec2_t{x: prev[i].x, y: prev[i].y}, vec2_t{x: cur[i].x, y: cur[i].y}))
	}
	return total
}

// kmeans_silhouette computes the mean silhouette coefficient across
// all points, per spec.md section 4.4 step 5.
func kmeans_silhouette(dataset []data_point_t, centroids []centroid_t) fixed_t {
	if len(dataset) < 2 || len(centroids) < 2 {
		return 0
	}
	var total fixed_t
	var n = 0
	for i := range dataset {
		var a, aCount = meanDistanceToCluster(dataset, i, dataset[i].cluster_id)
		if aCount == 0 {
			continue
		}
		var bBest = fixed_t(FIXED_MAX)
		var found = false
		for c := range centroids {
			if c == dataset[i].cluster_id {
				continue
			}
			var b, bCount = meanDistanceToCluster(dataset, i, c)
			if bCount == 0 {
				continue
			}
			if b < bBest {
				bBest = b
				found = true
			}
		}
		if !found {
			continue
		}
		var maxAB = fixed_max(a, bBest)
		if maxAB == 0 {
			continue
		}
		var s = fixed_div(fixed_sub(bBest, a), maxAB)
		total = fixed_add(total, s)
		n++
	}
	if n == 0 {
		return 0
	}
	return fixed_div(total, int_to_fixed(n))
}

func meanDistanceToCluster(dataset []data_point_t, point int, cluster int) (fixed_t, int) {
	var sum fixed_t
	var count = 0
	for j := range dataset {
		if j == point || dataset[j].cluster_id != cluster {
			continue
		}
		sum = fixed_add(sum, vec2_euclidean(vec2_t{x: dataset[point].x, y: dataset[point].y}, vec2_t{x: dataset[j].x, y: dataset[j].y}))
		count++
	}
	if count == 0 {
		return 0, 0
	}
	return fixed_div(sum, int_to_fixed(count)), count
}

// kmeans_find_optimal_k runs kmeans_run for k in [kMin, kMax] and
// returns the result with the highest silhouette score.
func kmeans_find_optimal_k(dataset []data_point_t, kMin, kMax int) kmeans_result_t {
	if kMin < 1 {
		kMin = 1
	}
	if kMax > K_MAX {
		kMax = K_MAX
	}
	if kMax < kMin {
		kMax = kMin
	}
	var best kmeans_result_t
	var bestScore = fixed_t(FIXED_MIN)
	for k := kMin; k <= kMax; k++ {
		var result = kmeans_run(dataset, k)
		if result.silhouette_score > bestScore {
			bestScore = result.silhouette_score
			best = result
		}
	}
	return best
}
