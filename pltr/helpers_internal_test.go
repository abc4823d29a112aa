package pltr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pltr/core"
)

// mustInstanceInternal returns two unit jobs in slots 0 and 1 on two machines.
func mustInstanceInternal(t *testing.T) *core.Instance {
	t.Helper()
	inst, err := core.NewInstance([]core.Job{
		{ID: 0, Release: 0, Deadline: 1, Volume: 1},
		{ID: 1, Release: 1, Deadline: 2, Volume: 1},
	}, 2, 0)
	require.NoError(t, err)

	return inst
}
