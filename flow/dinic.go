package flow

import (
	"context"
	"math"
)

// dinic augments n with blocking flows over successive level graphs and
// returns the flow it added.
//
// Steps:
//  1. Check for cancellation.
//  2. BFS from the source to assign levels over arcs with positive residual.
//  3. If the sink is unreachable, the flow is maximum.
//  4. Repeatedly push along level-increasing arcs with DFS, remembering per
//     node the next arc to try, until no path remains or
//     Options.LevelRebuildInterval pushes happened; then go to 1.
//
// Complexity: O(V² · E) in general; O(E · √V) on unit networks.
func dinic(ctx context.Context, n *Network) (int, error) {
	t := n.topo
	level := make([]int, t.nodes)
	next := make([]int, t.nodes)
	queue := make([]int, 0, t.nodes)
	pushed := 0
	rebuild := n.opts.LevelRebuildInterval

	for {
		if err := ctx.Err(); err != nil {
			return pushed, err
		}

		for i := range level {
			level[i] = -1
		}
		level[t.source] = 0
		queue = append(queue[:0], t.source)
		for i := 0; i < len(queue); i++ {
			u := queue[i]
			for _, e := range t.adj[u] {
				if v := t.head[e]; level[v] < 0 && n.residual(e) > 0 {
					level[v] = level[u] + 1
					queue = append(queue, v)
				}
			}
		}
		if level[t.sink] < 0 {
			return pushed, nil
		}

		for u := range next {
			next[u] = len(t.adj[u]) - 1
		}
		for count := 0; rebuild == 0 || count < rebuild; count++ {
			if err := ctx.Err(); err != nil {
				return pushed, err
			}
			sent := dfsDinicPush(n, level, next, t.source, math.MaxInt)
			if sent == 0 {
				break
			}
			pushed += sent
			n.augmentations++
		}
	}
}

// dfsDinicPush sends up to available units from u to the sink along
// level-increasing arcs and returns the amount sent. next[u] counts down
// through adj[u], so each arc is abandoned once it cannot carry more.
func dfsDinicPush(n *Network, level, next []int, u, available int) int {
	t := n.topo
	if u == t.sink {
		return available
	}
	for ; next[u] >= 0; next[u]-- {
		e := t.adj[u][next[u]]
		v := t.head[e]
		r := n.residual(e)
		if r <= 0 || level[v] != level[u]+1 {
			continue
		}
		if sent := dfsDinicPush(n, level, next, v, min(available, r)); sent > 0 {
			n.push(e, sent)

			return sent
		}
	}

	return 0
}
