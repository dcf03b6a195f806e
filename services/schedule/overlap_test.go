package schedule

import (
	"testing"
	"time"

	"slotwise/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openEvery(startHH, endHH int) ResolveFunc {
	return func(date string) (models.ResolvedDay, error) {
		y, m, d, err := ParseDate(date)
		if err != nil {
			return models.ResolvedDay{}, err
		}
		w := models.Window{
			Start: time.Date(y, m, d, startHH, 0, 0, 0, time.UTC),
			End:   time.Date(y, m, d, endHH, 0, 0, 0, time.UTC),
		}
		return models.ResolvedDay{Date: date, Open: true, Window: &w}, nil
	}
}

func closedEvery() ResolveFunc {
	return func(date string) (models.ResolvedDay, error) {
		return models.ResolvedDay{Date: date, BlockedBy: models.BlockedByPersonal}, nil
	}
}

func pairTeam(pct float64) models.Team {
	return models.Team{
		WorkerIDs:            []string{"w1", "w2"},
		MinResourceCount:     2,
		MinOverlapPercentage: pct,
	}
}

func TestTeamResolverOverlapQualifies(t *testing.T) {
	// Both windows span 480 minutes; they intersect 09:00-13:00, which is
	// 240 minutes of the 480-minute narrowest window: exactly 50%.
	resolve, err := TeamResolver(pairTeam(50), map[string]ResolveFunc{
		"w1": openEvery(9, 17),
		"w2": openEvery(5, 13),
	})
	require.NoError(t, err)

	day, err := resolve("2025-06-02")
	require.NoError(t, err)
	assert.True(t, day.Open)
	require.NotNil(t, day.Window)
	assert.Equal(t, utc(2025, 6, 2, 9, 0), day.Window.Start)
	assert.Equal(t, utc(2025, 6, 2, 13, 0), day.Window.End)
}

func TestTeamResolverOverlapTooThin(t *testing.T) {
	// 09:00-11:00 is 120 of 480 minutes: 25%, under the 50% floor.
	resolve, err := TeamResolver(pairTeam(50), map[string]ResolveFunc{
		"w1": openEvery(9, 17),
		"w2": openEvery(3, 11),
	})
	require.NoError(t, err)

	day, err := resolve("2025-06-02")
	require.NoError(t, err)
	assert.False(t, day.Open)
	assert.Equal(t, "insufficient overlap", day.Reason)
}

func TestTeamResolverInsufficientResources(t *testing.T) {
	resolve, err := TeamResolver(pairTeam(50), map[string]ResolveFunc{
		"w1": openEvery(9, 17),
		"w2": closedEvery(),
	})
	require.NoError(t, err)

	day, err := resolve("2025-06-02")
	require.NoError(t, err)
	assert.False(t, day.Open)
	assert.Equal(t, "insufficient resources", day.Reason)
}

func TestTeamResolverValidation(t *testing.T) {
	resolvers := map[string]ResolveFunc{"w1": openEvery(9, 17), "w2": openEvery(9, 17)}

	_, err := TeamResolver(models.Team{MinResourceCount: 1}, resolvers)
	assert.Error(t, err)

	team := pairTeam(50)
	team.MinResourceCount = 3
	_, err = TeamResolver(team, resolvers)
	assert.Error(t, err)

	team = pairTeam(150)
	_, err = TeamResolver(team, resolvers)
	assert.Error(t, err)

	team = pairTeam(50)
	team.WorkerIDs = []string{"w1", "ghost"}
	_, err = TeamResolver(team, resolvers)
	assert.Error(t, err)
}

func TestFindTeamWindow(t *testing.T) {
	// The qualifying 09:00-13:00 intersection substitutes the working
	// window; a 4h job fills it exactly.
	now := utc(2025, 6, 2, 0, 0)
	bw, err := FindTeamWindow(
		models.WorkRequest{
			Execution: models.Duration{Value: 4, Unit: models.UnitHours},
			TimeMode:  models.TimeModeHours,
		},
		pairTeam(50),
		map[string]ResolveFunc{"w1": openEvery(9, 17), "w2": openEvery(5, 13)},
		now, "UTC", 0,
	)
	require.NoError(t, err)
	assert.Equal(t, utc(2025, 6, 2, 9, 0), bw.FirstAvailable)
	assert.Equal(t, utc(2025, 6, 2, 13, 0), bw.Throughput.End)
}

func TestFindTeamWindowUnsatisfiable(t *testing.T) {
	now := utc(2025, 6, 2, 0, 0)
	_, err := FindTeamWindow(
		models.WorkRequest{
			Execution: models.Duration{Value: 6, Unit: models.UnitHours},
			TimeMode:  models.TimeModeHours,
		},
		pairTeam(50),
		map[string]ResolveFunc{"w1": openEvery(9, 17), "w2": openEvery(5, 13)},
		now, "UTC", 10,
	)
	assert.True(t, IsUnsatisfiable(err))
}

func TestBestSubsetIntersection(t *testing.T) {
	day := func(hh int) time.Time { return utc(2025, 6, 2, hh, 0) }
	windows := []models.Window{
		{Start: day(0), End: day(4)},
		{Start: day(2), End: day(6)},
		{Start: day(3), End: day(10)},
	}
	// Pairwise intersections are 02-04 (2h), 03-04 (1h) and 03-06 (3h); the
	// winning pair is the second and third window. A count-based sweep would
	// report 02-06 even though no fixed pair covers that whole span.
	seg, narrow, ok := bestSubsetIntersection(windows, 2)
	require.True(t, ok)
	assert.Equal(t, day(3), seg.Start)
	assert.Equal(t, day(6), seg.End)
	assert.Equal(t, 4*60, narrow) // narrowest of the winning pair, 02:00-06:00

	// Disjoint windows have no qualifying subset.
	_, _, ok = bestSubsetIntersection([]models.Window{
		{Start: day(0), End: day(2)},
		{Start: day(3), End: day(5)},
	}, 2)
	assert.False(t, ok)
}

func TestTeamResolverUsesOnePairNotRotatingMembership(t *testing.T) {
	team := models.Team{
		WorkerIDs:            []string{"w1", "w2", "w3"},
		MinResourceCount:     2,
		MinOverlapPercentage: 50,
	}
	resolve, err := TeamResolver(team, map[string]ResolveFunc{
		"w1": openEvery(0, 4),
		"w2": openEvery(2, 6),
		"w3": openEvery(3, 10),
	})
	require.NoError(t, err)

	day, err := resolve("2025-06-02")
	require.NoError(t, err)
	require.True(t, day.Open)
	// The best pair is jointly free 03:00-06:00; 02:00-06:00 would admit a
	// 4h job no fixed pair can staff end to end.
	assert.Equal(t, utc(2025, 6, 2, 3, 0), day.Window.Start)
	assert.Equal(t, utc(2025, 6, 2, 6, 0), day.Window.End)
}

func TestTeamResolverDenominatorIgnoresUninvolvedWorkers(t *testing.T) {
	// The best pair overlaps 08:00-10:00, which is 120 of its narrowest
	// 600-minute window: 20%. The third worker's short 09:00-10:00 window
	// plays no part in the pair and must not shrink the denominator.
	team := models.Team{
		WorkerIDs:            []string{"w1", "w2", "w3"},
		MinResourceCount:     2,
		MinOverlapPercentage: 50,
	}
	resolve, err := TeamResolver(team, map[string]ResolveFunc{
		"w1": openEvery(0, 10),
		"w2": openEvery(8, 18),
		"w3": openEvery(9, 10),
	})
	require.NoError(t, err)

	day, err := resolve("2025-06-02")
	require.NoError(t, err)
	assert.False(t, day.Open)
	assert.Equal(t, "insufficient overlap", day.Reason)
}
