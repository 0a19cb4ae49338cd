package reconcile

import (
	"math"
	"sort"
)

// IntersectRoads returns the roads present in both grouped maps, in ascending order.
func IntersectRoads(removed, added map[string][]Range) []string {
	var roads []string
	for road := range removed {
		if _, ok := added[road]; ok {
			roads = append(roads, road)
		}
	}
	sort.Strings(roads)
	return roads
}

// MatchRanges pairs every removed range of the intersecting roads with its closest
// qualifying added range. Matching is greedy per removed range: added ranges stay
// in the candidate pool after being claimed. Removed ranges without a qualifying
// candidate produce no match.
func MatchRanges(removed, added map[string][]Range, roads []string, adapter Adapter) []Match {
	var matches []Match
	for _, road := range roads {
		for _, r := range removed[road] {
			m, ok := bestMatch(r, added[road], adapter)
			if !ok {
				continue
			}
			m.Road = road
			matches = append(matches, m)
		}
	}
	return matches
}

// bestMatch scans candidates in order and keeps the lowest combined distance.
// Ties keep the first candidate encountered.
func bestMatch(removed Range, candidates []Range, adapter Adapter) (Match, bool) {
	var (
		best    Match
		found   bool
		minimum = math.Inf(1)
	)

	for _, added := range candidates {
		startDistance := math.Abs(removed.Start - added.Start)
		endDistance := math.Abs(removed.End - added.End)
		total := startDistance + endDistance

		if total < minimum && adapter.Qualifies(startDistance, endDistance) {
			minimum = total
			best = Match{
				Removed:       removed,
				Added:         added,
				StartDistance: startDistance,
				EndDistance:   endDistance,
			}
			found = true
		}
	}

	if !found || !adapter.Accepts(best.StartDistance, best.EndDistance) {
		return Match{}, false
	}

	best.Kind = classify(best)
	return best, true
}

// classify labels a match by the nature of the difference.
func classify(m Match) ChangeKind {
	switch {
	case m.Removed.Count != m.Added.Count:
		return ChangeResized
	case m.StartDistance != 0 || m.EndDistance != 0:
		return ChangeMoved
	default:
		return ChangeInternal
	}
}
