// File: services/schedule/overlap.go
package schedule

import (
	"fmt"
	"sync"
	"time"

	"slotwise/models"
)

// FindTeamWindow runs the booking-window forward scan for a team: a candidate date
// qualifies only when at least MinResourceCount workers are simultaneously
// open and the overlap percentage clears MinOverlapPercentage. The qualifying
// intersection window substitutes the single-resource working window, after
// which the usual hours/days semantics apply.
func FindTeamWindow(req models.WorkRequest, team models.Team, resolvers map[string]ResolveFunc, now time.Time, zone string, horizonDays int) (models.BookingWindow, error) {
	teamResolve, err := TeamResolver(team, resolvers)
	if err != nil {
		return models.BookingWindow{}, err
	}
	return EarliestWindow(req, teamResolve, now, zone, horizonDays)
}

// TeamResolver builds a ResolveFunc whose per-date verdict is the team's
// joint availability. Resolution fans out one resolver call per worker and
// fans in before the overlap test; workers resolve independently, so order
// between them does not matter.
func TeamResolver(team models.Team, resolvers map[string]ResolveFunc) (ResolveFunc, error) {
	if len(team.WorkerIDs) == 0 {
		return nil, fmt.Errorf("team has no workers")
	}
	if team.MinResourceCount < 1 || team.MinResourceCount > len(team.WorkerIDs) {
		return nil, fmt.Errorf("minResourceCount %d out of range for a team of %d", team.MinResourceCount, len(team.WorkerIDs))
	}
	if team.MinOverlapPercentage < 0 || team.MinOverlapPercentage > 100 {
		return nil, fmt.Errorf("minOverlapPercentage %v out of range", team.MinOverlapPercentage)
	}
	for _, id := range team.WorkerIDs {
		if _, ok := resolvers[id]; !ok {
			return nil, fmt.Errorf("no resolver for worker %q", id)
		}
	}

	return func(date string) (models.ResolvedDay, error) {
		type result struct {
			day models.ResolvedDay
			err error
		}
		results := make([]result, len(team.WorkerIDs))
		var wg sync.WaitGroup
		for i, id := range team.WorkerIDs {
			wg.Add(1)
			go func(i int, resolve ResolveFunc) {
				defer wg.Done()
				day, err := resolve(date)
				results[i] = result{day: day, err: err}
			}(i, resolvers[id])
		}
		wg.Wait()

		var windows []models.Window
		for _, r := range results {
			if r.err != nil {
				return models.ResolvedDay{}, r.err
			}
			if r.day.Open {
				windows = append(windows, *r.day.Window)
			}
		}
		if len(windows) < team.MinResourceCount {
			return models.ResolvedDay{Date: date, Reason: "insufficient resources"}, nil
		}

		segment, narrowest, ok := bestSubsetIntersection(windows, team.MinResourceCount)
		if !ok || narrowest <= 0 {
			return models.ResolvedDay{Date: date, Reason: "insufficient overlap"}, nil
		}
		pct := float64(segment.Minutes()) / float64(narrowest) * 100
		if pct < team.MinOverlapPercentage {
			return models.ResolvedDay{Date: date, Reason: "insufficient overlap"}, nil
		}
		return models.ResolvedDay{Date: date, Open: true, Window: &segment}, nil
	}, nil
}

// bestSubsetIntersection enumerates every min-sized subset of the open
// windows and returns the intersection of the one that maximizes overlapping
// minutes (earliest start on ties), along with the narrowest window inside
// that subset. A fixed subset must staff the whole segment, so the answer is
// one subset's intersection, never a union of rotating memberships.
func bestSubsetIntersection(windows []models.Window, min int) (models.Window, int, bool) {
	var (
		best       models.Window
		bestLen    time.Duration = -1
		bestNarrow int
	)
	forEachSubset(len(windows), min, func(idx []int) {
		w := windows[idx[0]]
		start, end, narrow := w.Start, w.End, w.Minutes()
		for _, i := range idx[1:] {
			w := windows[i]
			if w.Start.After(start) {
				start = w.Start
			}
			if w.End.Before(end) {
				end = w.End
			}
			if m := w.Minutes(); m < narrow {
				narrow = m
			}
		}
		if !end.After(start) {
			return
		}
		length := end.Sub(start)
		if length > bestLen || (length == bestLen && start.Before(best.Start)) {
			best = models.Window{Start: start, End: end}
			bestLen = length
			bestNarrow = narrow
		}
	})
	return best, bestNarrow, bestLen > 0
}

// forEachSubset visits every k-sized index combination of 0..n-1 in
// lexicographic order. The callback must not retain idx.
func forEachSubset(n, k int, f func(idx []int)) {
	if k < 1 || k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		f(idx)
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
