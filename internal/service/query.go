package service

import (
	"sort"
	"strings"

	"github.com/tomazk/bucketlist/internal/domain"
)

// Filter selects which completion states pass into a view. Only two values
// exist; there is no separate active-only filter.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
)

// Sort selects the view ordering.
type Sort string

const (
	SortNewest    Sort = "newest"
	SortOldest    Sort = "oldest"
	SortTitle     Sort = "title"
	SortTitleDesc Sort = "title-desc"
)

// ParseFilter maps a raw query value to a Filter, defaulting to all.
func ParseFilter(raw string) Filter {
	if Filter(raw) == FilterCompleted {
		return FilterCompleted
	}
	return FilterAll
}

// ParseSort maps a raw query value to a Sort, defaulting to newest.
func ParseSort(raw string) Sort {
	switch Sort(raw) {
	case SortOldest, SortTitle, SortTitleDesc:
		return Sort(raw)
	default:
		return SortNewest
	}
}

// View returns the filtered, searched and sorted subset of items prepared
// for display. It is a pure function: the input slice is never reordered or
// mutated, and the result is a fresh slice. Sorts are stable, so ties keep
// their input order.
func View(items []domain.Item, filter Filter, order Sort, query string) []domain.Item {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if filter == FilterCompleted && !item.Completed {
			continue
		}
		if q != "" && !matchesQuery(item, q) {
			continue
		}
		out = append(out, item)
	}

	switch order {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	case SortTitle:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	case SortTitleDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Title > out[j].Title })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}

	return out
}

// matchesQuery reports whether any searchable text field contains q.
// q must already be lowercased.
func matchesQuery(item domain.Item, q string) bool {
	for _, field := range []string{item.Title, item.Description, item.WhoAdded, item.Location} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Stats summarizes completion counts across a collection.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Active    int `json:"active"`
}

// ComputeStats counts total, completed and active items.
func ComputeStats(items []domain.Item) Stats {
	stats := Stats{Total: len(items)}
	for _, item := range items {
		if item.Completed {
			stats.Completed++
		}
	}
	stats.Active = stats.Total - stats.Completed
	return stats
}
