package graph

import "container/heap"

// JumpDistance returns the minimum total jump count between two regions using
// Dijkstra over the weighted route graph. Returns -1 if no route exists.
func (u *Universe) JumpDistance(from, to string) int {
	if from == to {
		return 0
	}
	if _, ok := u.adj[from]; !ok {
		return -1
	}

	dist := make(map[string]int)
	dist[from] = 0

	pq := &priorityQueue{{region: from, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(pqItem)
		if item.region == to {
			return item.dist
		}
		if d, ok := dist[item.region]; ok && item.dist > d {
			continue
		}
		for _, e := range u.adj[item.region] {
			nd := item.dist + e.jumps
			if d, ok := dist[e.to]; !ok || nd < d {
				dist[e.to] = nd
				heap.Push(pq, pqItem{region: e.to, dist: nd})
			}
		}
	}
	return -1
}

// RegionsWithin returns all regions reachable from origin within maxJumps,
// mapped to their distance in jumps.
func (u *Universe) RegionsWithin(origin string, maxJumps int) map[string]int {
	result := make(map[string]int)
	result[origin] = 0

	pq := &priorityQueue{{region: origin, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(pqItem)
		if d, ok := result[item.region]; ok && item.dist > d {
			continue
		}
		for _, e := range u.adj[item.region] {
			nd := item.dist + e.jumps
			if nd > maxJumps {
				continue
			}
			if d, ok := result[e.to]; !ok || nd < d {
				result[e.to] = nd
				heap.Push(pq, pqItem{region: e.to, dist: nd})
			}
		}
	}
	return result
}

// Priority queue for Dijkstra
type pqItem struct {
	region string
	dist   int
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int           { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool { return pq[i].dist < pq[j].dist }
func (pq priorityQueue) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
