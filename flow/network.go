package flow

import (
	"context"
	"fmt"
)

// topology is the immutable arc structure shared by a Network and all of
// its snapshots. Arcs come in pairs: arc e is a declared edge and arc e^1
// its residual reverse, which never has capacity of its own.
type topology struct {
	nodes        int
	source, sink int
	head         []int          // head[e] is the node arc e points to
	adj          [][]int        // adj[u] lists arcs leaving u in declaration order
	index        map[[2]int]int // declared pair → forward arc
}

func (t *topology) tail(e int) int { return t.head[e^1] }

func (t *topology) forward(u, v int) (int, bool) {
	e, ok := t.index[[2]int{u, v}]

	return e, ok
}

// Builder declares the edges of a Network. It is not safe for concurrent use.
type Builder struct {
	topo     *topology
	capacity []int
}

// NewBuilder starts a network over nodes 0 … nodes−1.
// Range errors for source and sink surface from Build.
func NewBuilder(nodes, source, sink int) *Builder {
	if nodes < 0 {
		nodes = 0
	}

	return &Builder{topo: &topology{
		nodes:  nodes,
		source: source,
		sink:   sink,
		adj:    make([][]int, nodes),
		index:  make(map[[2]int]int),
	}}
}

// AddEdge declares u→v with capacity c. Declaring a pair again adds c to
// its capacity. Self-loops never carry flow and are ignored. A zero
// capacity still declares the pair, so SetCapacity may raise it later.
//
// Errors: ErrNodeOutOfRange, EdgeError for c < 0.
func (b *Builder) AddEdge(u, v, c int) error {
	t := b.topo
	if u < 0 || u >= t.nodes || v < 0 || v >= t.nodes {
		return fmt.Errorf("%w: %d→%d (nodes=%d)", ErrNodeOutOfRange, u, v, t.nodes)
	}
	if c < 0 {
		return EdgeError{From: u, To: v, Cap: c}
	}
	if u == v {
		return nil
	}
	if e, ok := t.forward(u, v); ok {
		b.capacity[e] += c

		return nil
	}

	e := len(t.head)
	t.head = append(t.head, v, u)
	t.adj[u] = append(t.adj[u], e)
	t.adj[v] = append(t.adj[v], e^1)
	t.index[[2]int{u, v}] = e
	b.capacity = append(b.capacity, c, 0)

	return nil
}

// Build seals the topology and returns a Network carrying zero flow.
// The Builder must not be used afterwards.
//
// Errors: ErrNodeOutOfRange for source or sink, ErrSourceIsSink.
func (b *Builder) Build(opts Options) (*Network, error) {
	t := b.topo
	if t.source < 0 || t.source >= t.nodes {
		return nil, fmt.Errorf("%w: source %d", ErrNodeOutOfRange, t.source)
	}
	if t.sink < 0 || t.sink >= t.nodes {
		return nil, fmt.Errorf("%w: sink %d", ErrNodeOutOfRange, t.sink)
	}
	if t.source == t.sink {
		return nil, ErrSourceIsSink
	}
	opts.normalize()

	n := &Network{
		topo:     t,
		capacity: b.capacity,
		flow:     make([]int, len(b.capacity)),
		opts:     opts,
	}
	b.topo, b.capacity = nil, nil

	return n, nil
}

// Network is an integral flow network that keeps its flow between
// MaximizeFlow calls.
type Network struct {
	topo          *topology
	capacity      []int
	flow          []int
	value         int
	augmentations int
	opts          Options
}

// Nodes returns the number of nodes.
func (n *Network) Nodes() int { return n.topo.nodes }

// Source returns the source node.
func (n *Network) Source() int { return n.topo.source }

// Sink returns the sink node.
func (n *Network) Sink() int { return n.topo.sink }

// Options returns the options the network was built with.
func (n *Network) Options() Options { return n.opts }

// Value returns the current flow value leaving the source.
func (n *Network) Value() int { return n.value }

// Augmentations returns how many augmenting paths (or blocking-flow pushes)
// this network and the networks it was snapshotted from have applied.
func (n *Network) Augmentations() int { return n.augmentations }

// Capacity returns the capacity of u→v: its flow plus its residual.
// Undeclared pairs have capacity 0.
func (n *Network) Capacity(u, v int) int {
	if e, ok := n.topo.forward(u, v); ok {
		return n.capacity[e]
	}

	return 0
}

// Flow returns the flow on u→v. Flow is antisymmetric: if only v→u is
// declared, Flow(u, v) is the negated flow on v→u.
func (n *Network) Flow(u, v int) int {
	if e, ok := n.topo.forward(u, v); ok {
		return n.flow[e]
	}
	if e, ok := n.topo.forward(v, u); ok {
		return -n.flow[e]
	}

	return 0
}

// Residual returns Capacity(u, v) − Flow(u, v).
func (n *Network) Residual(u, v int) int {
	return n.Capacity(u, v) - n.Flow(u, v)
}

// SetCapacity replaces the capacity of the declared pair u→v. It does not
// augment; call MaximizeFlow afterwards.
//
// Steps:
//  1. Reject negative capacities (EdgeError) and undeclared pairs.
//  2. If c is below the current flow x on u→v, take x−c units off u→v and
//     cancel the same amount along flow-carrying paths source→u and v→sink.
//  3. Store c.
//
// If the excess cannot be cancelled (ErrFlowInconsistent) the network is
// left exactly as it was.
//
// Complexity: O(1) when no flow is cancelled, otherwise O((V + E) · x)
// in the worst case.
func (n *Network) SetCapacity(u, v, c int) error {
	if c < 0 {
		return EdgeError{From: u, To: v, Cap: c}
	}
	e, ok := n.topo.forward(u, v)
	if !ok {
		return fmt.Errorf("%w: %d→%d", ErrEdgeNotFound, u, v)
	}

	if excess := n.flow[e] - c; excess > 0 {
		saved := append([]int(nil), n.flow...)
		if err := n.shed(e, u, v, excess); err != nil {
			copy(n.flow, saved)

			return err
		}
		n.value -= excess
	}
	n.capacity[e] = c

	return nil
}

// MaximizeFlow augments the current flow to a maximum flow and returns the
// resulting value. Previously established flow is kept.
func (n *Network) MaximizeFlow(ctx context.Context) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		pushed int
		err    error
	)
	switch n.opts.Algorithm {
	case Dinic:
		pushed, err = dinic(ctx, n)
	case FordFulkerson:
		pushed, err = fordFulkerson(ctx, n)
	default:
		pushed, err = edmondsKarp(ctx, n)
	}
	n.value += pushed

	return n.value, err
}

// Snapshot returns an independent copy of capacities and flow.
//
// Complexity: O(E).
func (n *Network) Snapshot() *Network {
	c := &Network{
		topo:          n.topo,
		capacity:      make([]int, len(n.capacity)),
		flow:          make([]int, len(n.flow)),
		value:         n.value,
		augmentations: n.augmentations,
		opts:          n.opts,
	}
	copy(c.capacity, n.capacity)
	copy(c.flow, n.flow)

	return c
}

func (n *Network) residual(e int) int { return n.capacity[e] - n.flow[e] }

func (n *Network) push(e, amount int) {
	n.flow[e] += amount
	n.flow[e^1] -= amount
}

// shed takes excess units off arc e = u→v and cancels them on both sides.
func (n *Network) shed(e, u, v, excess int) error {
	n.push(e, -excess)
	if u != n.topo.source {
		if err := n.cancel(n.topo.source, u, excess); err != nil {
			return err
		}
	}
	if v != n.topo.sink {
		return n.cancel(v, n.topo.sink, excess)
	}

	return nil
}

// cancel removes amount units of flow along paths from → to that carry
// positive flow, using BFS over forward arcs with flow > 0.
func (n *Network) cancel(from, to, amount int) error {
	parent := make([]int, n.topo.nodes)
	for amount > 0 {
		for i := range parent {
			parent[i] = -1
		}
		queue := []int{from}
		found := false
		for i := 0; i < len(queue) && !found; i++ {
			x := queue[i]
			for _, e := range n.topo.adj[x] {
				y := n.topo.head[e]
				if n.flow[e] <= 0 || y == from || parent[y] >= 0 {
					continue
				}
				parent[y] = e
				if y == to {
					found = true

					break
				}
				queue = append(queue, y)
			}
		}
		if !found {
			return fmt.Errorf("%w: cannot cancel %d units from %d to %d", ErrFlowInconsistent, amount, from, to)
		}

		delta := amount
		for y := to; y != from; y = n.topo.tail(parent[y]) {
			delta = min(delta, n.flow[parent[y]])
		}
		for y := to; y != from; y = n.topo.tail(parent[y]) {
			n.push(parent[y], -delta)
		}
		amount -= delta
	}

	return nil
}
