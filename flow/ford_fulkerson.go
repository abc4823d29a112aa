package flow

import (
	"context"
	"math"
)

// fordFulkerson augments n along depth-first augmenting paths and returns
// the flow it added.
//
// Steps:
//  1. Check for cancellation.
//  2. Iterative DFS from the source over arcs with positive residual,
//     recording parent arcs; stop when the sink is popped.
//  3. If the sink was not reached, the flow is maximum.
//  4. Push the bottleneck along the recorded arcs.
//
// Complexity: O(E · F) where F is the flow added.
//
// Suitable for small volumes; Edmonds–Karp or Dinic bound the number of
// augmentations independently of F.
func fordFulkerson(ctx context.Context, n *Network) (int, error) {
	t := n.topo
	parent := make([]int, t.nodes)
	visited := make([]bool, t.nodes)
	stack := make([]int, 0, t.nodes)
	pushed := 0

	for {
		if err := ctx.Err(); err != nil {
			return pushed, err
		}

		for i := range parent {
			parent[i] = -1
			visited[i] = false
		}
		stack = append(stack[:0], t.source)
		found := false
		for len(stack) > 0 && !found {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[u] {
				continue
			}
			visited[u] = true
			if u == t.sink {
				found = true

				break
			}
			// Push in declaration order so the latest arc is popped first.
			for _, e := range t.adj[u] {
				v := t.head[e]
				if visited[v] || n.residual(e) <= 0 {
					continue
				}
				parent[v] = e
				stack = append(stack, v)
			}
		}
		if !found {
			return pushed, nil
		}

		delta := math.MaxInt
		for v := t.sink; v != t.source; v = t.tail(parent[v]) {
			delta = min(delta, n.residual(parent[v]))
		}
		for v := t.sink; v != t.source; v = t.tail(parent[v]) {
			n.push(parent[v], delta)
		}
		pushed += delta
		n.augmentations++
	}
}
