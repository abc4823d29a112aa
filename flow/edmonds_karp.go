package flow

import (
	"context"
	"math"
)

// edmondsKarp augments n along shortest residual paths until the sink is
// unreachable, and returns the flow it added.
//
// Steps:
//  1. Check for cancellation.
//  2. BFS from the source over arcs with positive residual, recording the
//     arc each node was reached by; stop as soon as the sink is reached.
//  3. If the sink was not reached, the flow is maximum.
//  4. Push the bottleneck along the recorded arcs.
//
// Complexity: O(V · E²) worst case; O(E) per augmenting path.
func edmondsKarp(ctx context.Context, n *Network) (int, error) {
	t := n.topo
	parent := make([]int, t.nodes)
	queue := make([]int, 0, t.nodes)
	pushed := 0

	for {
		if err := ctx.Err(); err != nil {
			return pushed, err
		}

		bottle := bfsAugmentingPath(n, parent, queue)
		if bottle == 0 {
			return pushed, nil
		}
		for v := t.sink; v != t.source; v = t.tail(parent[v]) {
			n.push(parent[v], bottle)
		}
		pushed += bottle
		n.augmentations++
	}
}

// bfsAugmentingPath fills parent with the arc each node was discovered by
// and returns the bottleneck of the source→sink path, or 0 if none exists.
func bfsAugmentingPath(n *Network, parent, queue []int) int {
	t := n.topo
	for i := range parent {
		parent[i] = -1
	}
	queue = append(queue[:0], t.source)

	for i := 0; i < len(queue); i++ {
		u := queue[i]
		arcs := t.adj[u]
		for k := len(arcs) - 1; k >= 0; k-- {
			e := arcs[k]
			v := t.head[e]
			if v == t.source || parent[v] >= 0 || n.residual(e) <= 0 {
				continue
			}
			parent[v] = e
			if v == t.sink {
				bottle := math.MaxInt
				for x := t.sink; x != t.source; x = t.tail(parent[x]) {
					bottle = min(bottle, n.residual(parent[x]))
				}

				return bottle
			}
			queue = append(queue, v)
		}
	}

	return 0
}
