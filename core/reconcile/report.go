package reconcile

import (
	"strings"
)

const bannerStars = "**************************"

// buildCategories assembles the fixed taxonomy of a pipeline in declaration order.
// Roads in the intersecting set are only ever reported through matches.
func buildCategories(removed, added map[string][]Range, intersecting []string, matches []Match, adapter Adapter) []Category {
	labels := adapter.Labels()
	skip := make(map[string]struct{}, len(intersecting))
	for _, road := range intersecting {
		skip[road] = struct{}{}
	}

	resized := Category{Label: labels.Resized, Items: []string{}}
	moved := Category{Label: labels.Moved, Items: []string{}}
	internal := Category{Label: labels.Internal, Items: []string{}}
	for _, m := range matches {
		desc := adapter.Describe(m.Road, m.Removed) + " --> " + adapter.Describe(m.Road, m.Added)
		switch m.Kind {
		case ChangeResized:
			resized.Items = append(resized.Items, desc)
		case ChangeMoved:
			moved.Items = append(moved.Items, desc)
		default:
			internal.Items = append(internal.Items, desc)
		}
	}

	removedCat := Category{Label: labels.Removed, Items: describeUnmatched(removed, skip, adapter)}
	addedCat := Category{Label: labels.Added, Items: describeUnmatched(added, skip, adapter)}

	if !adapter.KeepMatched() {
		return []Category{removedCat, addedCat}
	}
	return []Category{resized, moved, internal, removedCat, addedCat}
}

// describeUnmatched renders every range of the roads outside the intersecting set.
func describeUnmatched(grouped map[string][]Range, skip map[string]struct{}, adapter Adapter) []string {
	items := []string{}
	for _, road := range sortedRoads(grouped) {
		if _, ok := skip[road]; ok {
			continue
		}
		for _, r := range grouped[road] {
			items = append(items, adapter.Describe(road, r))
		}
	}
	return items
}

// String renders the categories of the report as one text block.
// Empty categories render as a "No ..." placeholder.
func (r *Report) String() string {
	var b strings.Builder
	for _, c := range r.Categories {
		if len(c.Items) > 0 {
			b.WriteString("\n\n" + c.Label + ":\n")
			b.WriteString(strings.Join(c.Items, "\n"))
			continue
		}
		b.WriteString("\n\nNo " + strings.ToLower(c.Label) + ".\n")
	}
	return b.String()
}

// Category returns the category with the given label, if present.
func (r *Report) Category(label string) (Category, bool) {
	for _, c := range r.Categories {
		if c.Label == label {
			return c, true
		}
	}
	return Category{}, false
}

// Banner returns the separator header placed before a pipeline report.
func Banner(title string) string {
	return "\n\n" + bannerStars + title + bannerStars + "\n"
}

// Compose concatenates pipeline reports, each under its own banner.
func Compose(reports ...*Report) string {
	var b strings.Builder
	for _, r := range reports {
		b.WriteString(Banner(r.Title))
		b.WriteString(r.String())
	}
	return b.String()
}
