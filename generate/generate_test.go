package generate_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pltr/core"
	"github.com/katalvlaran/pltr/generate"
)

func TestRandomShape(t *testing.T) {
	p := generate.Params{Jobs: 50, Horizon: 40, AvgInterval: 4, Machines: 3, LowerBound: 1}
	inst, err := generate.Random(rand.New(rand.NewSource(7)), p)
	require.NoError(t, err)
	require.Equal(t, 50, inst.NumJobs())
	require.Equal(t, 3, inst.Machines())
	require.Equal(t, 1, inst.LowerBound())
	require.LessOrEqual(t, inst.Horizon(), p.Horizon)

	jobs := inst.Jobs()
	require.True(t, sort.SliceIsSorted(jobs, func(a, b int) bool { return jobs[a].Deadline < jobs[b].Deadline }))
	ids := make(map[int]bool, len(jobs))
	for _, j := range jobs {
		require.NoError(t, j.Validate())
		w := j.Window()
		require.GreaterOrEqual(t, w, 1)
		require.Less(t, w, 2*p.AvgInterval)
		require.LessOrEqual(t, j.Volume, max(1, w/2))
		ids[j.ID] = true
	}
	for i := 0; i < p.Jobs; i++ {
		require.True(t, ids[i], "missing id %d", i)
	}
}

func TestRandomIsReproducible(t *testing.T) {
	p := generate.DefaultParams()
	a, err := generate.Random(rand.New(rand.NewSource(42)), p)
	require.NoError(t, err)
	b, err := generate.Random(rand.New(rand.NewSource(42)), p)
	require.NoError(t, err)
	require.Equal(t, a.Jobs(), b.Jobs())
}

func TestRandomErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := generate.Random(rng, generate.Params{Jobs: 1, Horizon: 2, AvgInterval: 1, Machines: 1})
	require.ErrorIs(t, err, generate.ErrHorizonTooShort)

	_, err = generate.Random(rng, generate.Params{Jobs: 1, Horizon: 10, AvgInterval: 1, Machines: 0})
	require.ErrorIs(t, err, generate.ErrInvalidParams)

	_, err = generate.Valley(rng, generate.DefaultParams(), 0)
	require.ErrorIs(t, err, generate.ErrInvalidParams)
}

func TestValleySpreadsJobs(t *testing.T) {
	p := generate.Params{Jobs: 30, Horizon: 60, AvgInterval: 3, Machines: 5, LowerBound: 1}
	const valleys = 3
	inst, err := generate.Valley(rand.New(rand.NewSource(3)), p, valleys)
	require.NoError(t, err)
	require.Equal(t, 30, inst.NumJobs())

	size := p.Horizon / valleys
	for _, j := range inst.Jobs() {
		part := (j.ID % valleys) * size
		require.GreaterOrEqual(t, j.Release, part, "job %d", j.ID)
		require.LessOrEqual(t, j.Deadline, part+size, "job %d", j.ID)
	}
}

func TestSmallDeterministic(t *testing.T) {
	inst := generate.SmallDeterministic()
	require.Equal(t, 1, inst.Machines())
	require.Equal(t, 1, inst.LowerBound())
	require.Equal(t, 11, inst.Horizon())
	require.Equal(t, 6, inst.TotalVolume())
	require.Equal(t, []core.Job{
		{ID: 1, Release: 1, Deadline: 3, Volume: 1},
		{ID: 3, Release: 6, Deadline: 7, Volume: 1},
		{ID: 4, Release: 7, Deadline: 9, Volume: 2},
		{ID: 2, Release: 1, Deadline: 10, Volume: 2},
	}, inst.Jobs())
}
