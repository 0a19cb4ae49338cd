package reconcile

import "sort"

// Group partitions spans by road and merges each road's sorted spans into ranges.
// Spans are sorted by (From, To) before the single merge pass, so the result does
// not depend on input order. The adapter decides when a span joins the open range.
func Group(spans []Span, adapter Adapter) map[string][]Range {
	byRoad := make(map[string][]Span)
	for _, s := range spans {
		byRoad[s.Road] = append(byRoad[s.Road], s)
	}

	grouped := make(map[string][]Range, len(byRoad))
	for road, roadSpans := range byRoad {
		sort.SliceStable(roadSpans, func(i, j int) bool {
			if roadSpans[i].From != roadSpans[j].From {
				return roadSpans[i].From < roadSpans[j].From
			}
			return roadSpans[i].To < roadSpans[j].To
		})

		first := roadSpans[0]
		open := Range{Start: first.From, End: first.To, Count: 1}
		var ranges []Range

		for _, next := range roadSpans[1:] {
			if adapter.Joins(open, next) {
				open = adapter.Absorb(open, next)
				continue
			}
			ranges = append(ranges, open)
			open = Range{Start: next.From, End: next.To, Count: 1}
		}

		grouped[road] = append(ranges, open)
	}

	return grouped
}

// countRanges returns the total number of ranges across roads.
func countRanges(grouped map[string][]Range) int {
	n := 0
	for _, ranges := range grouped {
		n += len(ranges)
	}
	return n
}

// sortedRoads returns the road names of a grouped map in ascending order.
func sortedRoads(grouped map[string][]Range) []string {
	roads := make([]string, 0, len(grouped))
	for road := range grouped {
		roads = append(roads, road)
	}
	sort.Strings(roads)
	return roads
}
