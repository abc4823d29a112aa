// Package flow implements an integral, mutable flow network with
// incremental maximum-flow re-solving.
//
// Unlike a one-shot max-flow routine, a Network keeps its flow between
// calls: capacities may be raised or lowered with SetCapacity and
// MaximizeFlow then augments from the flow already established instead of
// starting over. Snapshot produces an independent copy for trial mutations.
//
// The augmenting strategies offered are:
//
//	Edmonds–Karp (default)  BFS shortest augmenting paths, O(V · E²) per call
//	Dinic                   level graph + blocking flows, O(E · √V) on unit networks
//	Ford–Fulkerson          DFS for any augmenting path, O(E · F) for F pushed units
//
// A call that only has to route a few missing units costs far less than the
// worst case.
//
// All three scan a node's arcs from the most recently declared one
// backwards, so the flow a Network settles on depends only on the order in
// which edges were added.
//
// # Building
//
//	b := flow.NewBuilder(4, 0, 3)
//	_ = b.AddEdge(0, 1, 2)
//	_ = b.AddEdge(1, 3, 2)
//	net, _ := b.Build(flow.DefaultOptions())
//	value, _ := net.MaximizeFlow(ctx)
//
// Repeated AddEdge calls for the same pair aggregate their capacities,
// like parallel edges. The topology is fixed by Build; SetCapacity only
// changes capacities of declared pairs.
//
// # Lowering capacities
//
// When SetCapacity lowers an edge below the flow it carries, the excess is
// cancelled along flow-carrying paths back to the source and on to the
// sink, so the network always holds a valid flow and Value drops by the
// excess.
//
// # Errors
//
//	ErrNodeOutOfRange    - a node index outside [0, nodes).
//	ErrSourceIsSink      - source and sink coincide.
//	ErrEdgeNotFound      - SetCapacity on a pair never declared.
//	ErrFlowInconsistent  - cancellation found no flow-carrying path.
//	EdgeError            - negative capacity.
//	context.Canceled / context.DeadlineExceeded from MaximizeFlow.
//
// # Concurrency
//
// A Network is not safe for concurrent mutation. Snapshot only reads, so
// several goroutines may snapshot one Network as long as nobody mutates
// it meanwhile; the snapshots share nothing mutable.
package flow
