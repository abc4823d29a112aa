package flow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/pltr/flow"
)

// edge is a declared u→v capacity used by the table-style helpers below.
type edge struct{ u, v, c int }

// build declares edges in order on a network with the given node count.
func build(t *testing.T, nodes, s, sink int, opts flow.Options, edges ...edge) *flow.Network {
	t.Helper()
	b := flow.NewBuilder(nodes, s, sink)
	for _, e := range edges {
		require.NoError(t, b.AddEdge(e.u, e.v, e.c))
	}
	n, err := b.Build(opts)
	require.NoError(t, err)

	return n
}

// assertValidFlow checks capacity bounds, antisymmetry and conservation on
// every internal node, and that Value matches the flow leaving the source.
func assertValidFlow(t *testing.T, n *flow.Network) {
	t.Helper()
	out := 0
	for u := 0; u < n.Nodes(); u++ {
		net := 0
		for v := 0; v < n.Nodes(); v++ {
			f := n.Flow(u, v)
			require.Equal(t, -f, n.Flow(v, u), "flow must be antisymmetric on %d→%d", u, v)
			if f > 0 {
				require.LessOrEqual(t, f, n.Capacity(u, v), "flow exceeds capacity on %d→%d", u, v)
			}
			net += f
		}
		switch u {
		case n.Source():
			out = net
		case n.Sink():
		default:
			require.Zero(t, net, "conservation violated at node %d", u)
		}
	}
	require.Equal(t, n.Value(), out, "Value must equal flow leaving the source")
}

// NetworkSuite covers construction, mutation and snapshots.
type NetworkSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *NetworkSuite) SetupTest() {
	s.ctx = context.Background()
}

// TestBuildErrors covers range, source/sink and capacity validation.
func (s *NetworkSuite) TestBuildErrors() {
	b := flow.NewBuilder(2, 0, 1)
	require.ErrorIs(s.T(), b.AddEdge(0, 2, 1), flow.ErrNodeOutOfRange)
	var ee flow.EdgeError
	require.ErrorAs(s.T(), b.AddEdge(0, 1, -3), &ee)
	require.Equal(s.T(), -3, ee.Cap)

	_, err := flow.NewBuilder(2, 0, 0).Build(flow.DefaultOptions())
	require.ErrorIs(s.T(), err, flow.ErrSourceIsSink)
	_, err = flow.NewBuilder(2, 0, 5).Build(flow.DefaultOptions())
	require.ErrorIs(s.T(), err, flow.ErrNodeOutOfRange)
}

// TestAddEdgeAggregates checks that repeated pairs sum like parallel edges
// and self-loops are dropped.
func (s *NetworkSuite) TestAddEdgeAggregates() {
	n := build(s.T(), 2, 0, 1, flow.DefaultOptions(), edge{0, 1, 2}, edge{0, 1, 5}, edge{1, 1, 9})
	require.Equal(s.T(), 7, n.Capacity(0, 1))
	require.Zero(s.T(), n.Capacity(1, 1))

	v, err := n.MaximizeFlow(s.ctx)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 7, v)
}

// TestCapacityIsFlowPlusResidual checks the read accessors after a solve.
func (s *NetworkSuite) TestCapacityIsFlowPlusResidual() {
	n := build(s.T(), 3, 0, 2, flow.DefaultOptions(), edge{0, 1, 5}, edge{1, 2, 3})
	_, err := n.MaximizeFlow(s.ctx)
	require.NoError(s.T(), err)

	require.Equal(s.T(), 3, n.Flow(0, 1))
	require.Equal(s.T(), 2, n.Residual(0, 1))
	require.Equal(s.T(), n.Capacity(0, 1), n.Flow(0, 1)+n.Residual(0, 1))
	require.Equal(s.T(), -3, n.Flow(1, 0))
	require.Equal(s.T(), 3, n.Residual(1, 0), "reverse residual carries the flow")
	require.Zero(s.T(), n.Capacity(0, 2), "undeclared pair has no capacity")
}

// TestSetCapacityCancelsExcess lowers the middle of a chain below its flow.
func (s *NetworkSuite) TestSetCapacityCancelsExcess() {
	// 0 →(3) 1 →(3) 2 →(3) 3
	n := build(s.T(), 4, 0, 3, flow.DefaultOptions(), edge{0, 1, 3}, edge{1, 2, 3}, edge{2, 3, 3})
	v, err := n.MaximizeFlow(s.ctx)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 3, v)

	require.NoError(s.T(), n.SetCapacity(1, 2, 1))
	require.Equal(s.T(), 1, n.Value())
	require.Equal(s.T(), 1, n.Flow(0, 1))
	require.Equal(s.T(), 1, n.Flow(2, 3))
	assertValidFlow(s.T(), n)

	v, err = n.MaximizeFlow(s.ctx)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, v)

	require.NoError(s.T(), n.SetCapacity(1, 2, 3))
	v, err = n.MaximizeFlow(s.ctx)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 3, v)
	assertValidFlow(s.T(), n)
}

// TestSetCapacityCancelsThroughBranches lowers the sink edge of a diamond.
func (s *NetworkSuite) TestSetCapacityCancelsThroughBranches() {
	// s=0, a=1, b=2, c=3, t=4
	n := build(s.T(), 5, 0, 4, flow.DefaultOptions(),
		edge{0, 1, 2}, edge{0, 2, 2}, edge{1, 3, 2}, edge{2, 3, 2}, edge{3, 4, 4})
	v, err := n.MaximizeFlow(s.ctx)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 4, v)

	require.NoError(s.T(), n.SetCapacity(3, 4, 1))
	require.Equal(s.T(), 1, n.Value())
	assertValidFlow(s.T(), n)

	require.NoError(s.T(), n.SetCapacity(0, 1, 0))
	assertValidFlow(s.T(), n)
	v, err = n.MaximizeFlow(s.ctx)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, v)
	require.Zero(s.T(), n.Flow(0, 1))
}

// TestSetCapacityErrors covers undeclared pairs and negative values.
func (s *NetworkSuite) TestSetCapacityErrors() {
	n := build(s.T(), 3, 0, 2, flow.DefaultOptions(), edge{0, 1, 1})
	require.ErrorIs(s.T(), n.SetCapacity(1, 2, 1), flow.ErrEdgeNotFound)

	err := n.SetCapacity(0, 1, -1)
	var ee flow.EdgeError
	require.True(s.T(), errors.As(err, &ee))
	require.Equal(s.T(), 0, ee.From)
	require.Equal(s.T(), 1, ee.To)
}

// TestZeroCapacityPairCanBeRaised declares a pair at 0 and opens it later.
func (s *NetworkSuite) TestZeroCapacityPairCanBeRaised() {
	n := build(s.T(), 2, 0, 1, flow.DefaultOptions(), edge{0, 1, 0})
	v, err := n.MaximizeFlow(s.ctx)
	require.NoError(s.T(), err)
	require.Zero(s.T(), v)

	require.NoError(s.T(), n.SetCapacity(0, 1, 4))
	v, err = n.MaximizeFlow(s.ctx)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 4, v)
}

// TestSnapshotIsIndependent mutates a snapshot and checks the original.
func (s *NetworkSuite) TestSnapshotIsIndependent() {
	n := build(s.T(), 3, 0, 2, flow.DefaultOptions(), edge{0, 1, 4}, edge{1, 2, 4})
	_, err := n.MaximizeFlow(s.ctx)
	require.NoError(s.T(), err)

	snap := n.Snapshot()
	require.NoError(s.T(), snap.SetCapacity(1, 2, 1))
	require.Equal(s.T(), 1, snap.Value())

	require.Equal(s.T(), 4, n.Value())
	require.Equal(s.T(), 4, n.Capacity(1, 2))
	require.Equal(s.T(), 4, n.Flow(1, 2))
	require.Equal(s.T(), n.Options(), snap.Options())
}

// TestMaximizeFlowIsIncremental checks that a second call finds nothing new.
func (s *NetworkSuite) TestMaximizeFlowIsIncremental() {
	n := build(s.T(), 4, 0, 3, flow.DefaultOptions(),
		edge{0, 1, 1}, edge{0, 2, 1}, edge{1, 3, 1}, edge{2, 3, 1})
	v, err := n.MaximizeFlow(s.ctx)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 2, v)
	aug := n.Augmentations()

	v, err = n.MaximizeFlow(s.ctx)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 2, v)
	require.Equal(s.T(), aug, n.Augmentations(), "no new augmenting path expected")
}

func TestNetworkSuite(t *testing.T) {
	suite.Run(t, new(NetworkSuite))
}

// TestParseAlgorithm covers names and the unknown-name error.
func TestParseAlgorithm(t *testing.T) {
	for name, want := range map[string]flow.Algorithm{
		"edmonds-karp":   flow.EdmondsKarp,
		"Dinic":          flow.Dinic,
		"ford-fulkerson": flow.FordFulkerson,
		"":               flow.EdmondsKarp,
	} {
		got, err := flow.ParseAlgorithm(name)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}
	_, err := flow.ParseAlgorithm("push-relabel")
	require.ErrorIs(t, err, flow.ErrUnknownAlgorithm)
	require.Equal(t, "dinic", flow.Dinic.String())
}
