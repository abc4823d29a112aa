package flow

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for network construction and mutation.
var (
	// ErrNodeOutOfRange is returned for node indices outside the network.
	ErrNodeOutOfRange = errors.New("flow: node index out of range")

	// ErrSourceIsSink is returned when source and sink are the same node.
	ErrSourceIsSink = errors.New("flow: source and sink coincide")

	// ErrEdgeNotFound is returned when mutating a pair that was never declared.
	ErrEdgeNotFound = errors.New("flow: edge not found")

	// ErrFlowInconsistent is returned when flow cancellation cannot find a
	// flow-carrying path; the network no longer holds a valid flow.
	ErrFlowInconsistent = errors.New("flow: flow conservation violated")

	// ErrUnknownAlgorithm is returned by ParseAlgorithm.
	ErrUnknownAlgorithm = errors.New("flow: unknown algorithm")
)

// EdgeError is returned when an edge is given a negative capacity.
type EdgeError struct {
	From, To int
	Cap      int
}

func (e EdgeError) Error() string {
	return fmt.Sprintf("flow: negative capacity on edge %d→%d: %d", e.From, e.To, e.Cap)
}

// Algorithm selects the augmenting strategy used by MaximizeFlow.
type Algorithm int

const (
	// EdmondsKarp augments along shortest paths found by BFS.
	EdmondsKarp Algorithm = iota
	// Dinic augments blocking flows over a level graph.
	Dinic
	// FordFulkerson augments along any path found by DFS.
	FordFulkerson
)

func (a Algorithm) String() string {
	switch a {
	case EdmondsKarp:
		return "edmonds-karp"
	case Dinic:
		return "dinic"
	case FordFulkerson:
		return "ford-fulkerson"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm maps "edmonds-karp", "dinic" or "ford-fulkerson"
// (case-insensitive) to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "edmonds-karp", "edmondskarp", "ek", "":
		return EdmondsKarp, nil
	case "dinic":
		return Dinic, nil
	case "ford-fulkerson", "fordfulkerson", "ff":
		return FordFulkerson, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
}

// Options configures a Network.
//   - Algorithm: augmenting strategy (default EdmondsKarp).
//   - LevelRebuildInterval: for Dinic, rebuild the level graph every N
//     augmentations; 0 rebuilds only when a blocking flow is exhausted.
type Options struct {
	Algorithm            Algorithm
	LevelRebuildInterval int
}

// DefaultOptions returns Edmonds–Karp with no forced level rebuilds.
func DefaultOptions() Options {
	return Options{Algorithm: EdmondsKarp}
}

func (o *Options) normalize() {
	if o.Algorithm < EdmondsKarp || o.Algorithm > FordFulkerson {
		o.Algorithm = EdmondsKarp
	}
	if o.LevelRebuildInterval < 0 {
		o.LevelRebuildInterval = 0
	}
}
