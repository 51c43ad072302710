package graph

// Universe holds the weighted adjacency list of market regions. Edge weights
// are the number of gate jumps between the two regions' trade hubs.
type Universe struct {
	adj map[string][]edge
}

type edge struct {
	to    string
	jumps int
}

// NewUniverse creates an empty Universe.
func NewUniverse() *Universe {
	return &Universe{adj: make(map[string][]edge)}
}

// AddRoute adds a bidirectional route between two regions with the given jump
// count. Routes with non-positive jump counts are ignored.
func (u *Universe) AddRoute(from, to string, jumps int) {
	if from == "" || to == "" || from == to || jumps <= 0 {
		return
	}
	u.adj[from] = append(u.adj[from], edge{to: to, jumps: jumps})
	u.adj[to] = append(u.adj[to], edge{to: from, jumps: jumps})
}

// Regions returns the number of regions with at least one route.
func (u *Universe) Regions() int {
	return len(u.adj)
}

// HasRegion reports whether the region appears in the route graph.
func (u *Universe) HasRegion(region string) bool {
	_, ok := u.adj[region]
	return ok
}
