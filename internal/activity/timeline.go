package activity

import (
	"sort"
	"time"
)

const (
	// DayLabelLayout renders a bucket key such as "Jan 5, 2025".
	DayLabelLayout = "Jan 2, 2006"
	// UnscheduledLabel holds activities whose created_at does not parse.
	UnscheduledLabel = "Unscheduled"
)

type DateBucket struct {
	Label      string     `json:"label"`
	Activities []Activity `json:"activities"`
}

// GroupByDate consolidates uploads and buckets the result by calendar day in
// loc. Each bucket is ordered newest first. Map keys carry no order; use
// Timeline for an ordered view.
func GroupByDate(activities []Activity, loc *time.Location) map[string][]Activity {
	if loc == nil {
		loc = time.Local
	}
	groups := make(map[string][]Activity)
	for _, a := range Consolidate(activities) {
		label := UnscheduledLabel
		if at, ok := a.Timestamp(); ok {
			label = at.In(loc).Format(DayLabelLayout)
		}
		groups[label] = append(groups[label], a)
	}
	for _, bucket := range groups {
		sortNewestFirst(bucket)
	}
	return groups
}

// Timeline is the canonical grouped view: buckets ordered by their most
// recent entry, newest first, with the Unscheduled bucket last.
func Timeline(activities []Activity, loc *time.Location) []DateBucket {
	groups := GroupByDate(activities, loc)
	buckets := make([]DateBucket, 0, len(groups))
	var unscheduled []Activity
	for label, items := range groups {
		if label == UnscheduledLabel {
			unscheduled = items
			continue
		}
		buckets = append(buckets, DateBucket{Label: label, Activities: items})
	}
	sort.Slice(buckets, func(i, j int) bool {
		ti, _ := buckets[i].Activities[0].Timestamp()
		tj, _ := buckets[j].Activities[0].Timestamp()
		return ti.After(tj)
	})
	if len(unscheduled) > 0 {
		buckets = append(buckets, DateBucket{Label: UnscheduledLabel, Activities: unscheduled})
	}
	return buckets
}

// sortNewestFirst orders by created_at descending. Unparseable timestamps
// sort after every dated entry and keep their relative order.
func sortNewestFirst(items []Activity) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, okI := items[i].Timestamp()
		tj, okJ := items[j].Timestamp()
		switch {
		case okI && okJ:
			return ti.After(tj)
		case okI:
			return true
		default:
			return false
		}
	})
}
