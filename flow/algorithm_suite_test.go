package flow_test

import (
	"context"
	"errors"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/pltr/flow"
)

// AlgorithmSuite runs the same max-flow scenarios against one Algorithm.
type AlgorithmSuite struct {
	suite.Suite
	alg flow.Algorithm
	ctx context.Context
}

func (s *AlgorithmSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *AlgorithmSuite) opts() flow.Options {
	o := flow.DefaultOptions()
	o.Algorithm = s.alg

	return o
}

func (s *AlgorithmSuite) solve(nodes, src, sink int, edges ...edge) (*flow.Network, int) {
	n := build(s.T(), nodes, src, sink, s.opts(), edges...)
	v, err := n.MaximizeFlow(s.ctx)
	require.NoError(s.T(), err)
	assertValidFlow(s.T(), n)

	return n, v
}

// TestSingleEdge verifies that a single edge yields its capacity.
func (s *AlgorithmSuite) TestSingleEdge() {
	n, v := s.solve(2, 0, 1, edge{0, 1, 7})
	require.Equal(s.T(), 7, v)
	require.Zero(s.T(), n.Residual(0, 1), "forward edge should be saturated")
	require.Equal(s.T(), 7, n.Residual(1, 0), "reverse residual should carry the flow")
}

// TestMultiPath verifies max flow on two routes: A→B (5) and A→C→B (4, 3).
func (s *AlgorithmSuite) TestMultiPath() {
	_, v := s.solve(3, 0, 1, edge{0, 1, 5}, edge{0, 2, 4}, edge{2, 1, 3})
	require.Equal(s.T(), 8, v)
}

// TestZeroCapacity ensures zero-capacity edges carry nothing.
func (s *AlgorithmSuite) TestZeroCapacity() {
	_, v := s.solve(2, 0, 1, edge{0, 1, 0})
	require.Zero(s.T(), v)
}

// TestClassicNetwork is the textbook six-node network with max flow 23.
func (s *AlgorithmSuite) TestClassicNetwork() {
	// s=0, v1=1, v2=2, v3=3, v4=4, t=5
	_, v := s.solve(6, 0, 5,
		edge{0, 1, 16}, edge{0, 2, 13}, edge{1, 3, 12}, edge{2, 1, 4},
		edge{2, 4, 14}, edge{3, 2, 9}, edge{3, 5, 20}, edge{4, 3, 7}, edge{4, 5, 4})
	require.Equal(s.T(), 23, v)
}

// TestRequiresReverseArcs needs to undo an earlier choice to reach the maximum.
func (s *AlgorithmSuite) TestRequiresReverseArcs() {
	// s=0, a=1, b=2, t=3: s→a, s→b, a→b, a→t, b→t all 1.
	_, v := s.solve(4, 0, 3, edge{0, 1, 1}, edge{0, 2, 1}, edge{1, 2, 1}, edge{1, 3, 1}, edge{2, 3, 1})
	require.Equal(s.T(), 2, v)
}

// TestPrefersLatestDeclaredArcs pins the deterministic tie-break: among
// equally good targets the most recently declared one is used first.
func (s *AlgorithmSuite) TestPrefersLatestDeclaredArcs() {
	// s=0, a=1, x1..x3=2..4, t=5
	n, v := s.solve(6, 0, 5,
		edge{0, 1, 2},
		edge{1, 2, 1}, edge{1, 3, 1}, edge{1, 4, 1},
		edge{2, 5, 1}, edge{3, 5, 1}, edge{4, 5, 1})
	require.Equal(s.T(), 2, v)
	require.Zero(s.T(), n.Flow(1, 2))
	require.Equal(s.T(), 1, n.Flow(1, 3))
	require.Equal(s.T(), 1, n.Flow(1, 4))
}

// TestCanceledContext returns the context error before any augmentation.
func (s *AlgorithmSuite) TestCanceledContext() {
	n := build(s.T(), 2, 0, 1, s.opts(), edge{0, 1, 3})
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	v, err := n.MaximizeFlow(ctx)
	require.Error(s.T(), err)
	require.True(s.T(), errors.Is(err, context.Canceled))
	require.Zero(s.T(), v)
	require.Zero(s.T(), n.Augmentations())
}

// TestResumeAfterCapacityChange raises a bottleneck and re-solves.
func (s *AlgorithmSuite) TestResumeAfterCapacityChange() {
	n, v := s.solve(3, 0, 2, edge{0, 1, 10}, edge{1, 2, 4})
	require.Equal(s.T(), 4, v)

	require.NoError(s.T(), n.SetCapacity(1, 2, 9))
	v, err := n.MaximizeFlow(s.ctx)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 9, v)
	assertValidFlow(s.T(), n)
}
