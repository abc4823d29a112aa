package flow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/pltr/flow"
)

func TestDinicSuite(t *testing.T) {
	suite.Run(t, &AlgorithmSuite{alg: flow.Dinic})
}

// TestDinicLevelRebuildInterval ensures that forcing level rebuilds does
// not change the result.
func TestDinicLevelRebuildInterval(t *testing.T) {
	// S→A(2), S→B(1), A→C(1), B→C(1), C→T(2)
	edges := []edge{{0, 1, 2}, {0, 2, 1}, {1, 3, 1}, {2, 3, 1}, {3, 4, 2}}

	opts := flow.Options{Algorithm: flow.Dinic, LevelRebuildInterval: 1}
	n1 := build(t, 5, 0, 4, opts, edges...)
	v1, err := n1.MaximizeFlow(context.Background())
	require.NoError(t, err)

	n2 := build(t, 5, 0, 4, flow.Options{Algorithm: flow.Dinic}, edges...)
	v2, err := n2.MaximizeFlow(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, v1)
	require.Equal(t, v1, v2)
}
