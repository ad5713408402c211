// Package taskview filters, searches and buckets a snapshot of the
// task list for display. Every function is pure: the input slice and
// its tasks are never mutated, so callers may memoize freely.
package taskview

import (
	"strings"

	"github.com/taskdeck/taskdeck/domain"
)

// StatusFilter partitions tasks by their completed flag.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusCompleted StatusFilter = "completed"
	StatusPending   StatusFilter = "pending"
)

// PriorityAll passes every priority through.
const PriorityAll domain.Priority = "all"

// Query holds the active display filters.
type Query struct {
	Search   string
	Priority domain.Priority
	Status   StatusFilter
}

// Filter applies search, priority and status filters in that order.
// The search is a case-insensitive substring match against title or
// description; an empty query matches everything. Input order is kept.
func Filter(tasks []domain.Task, q Query) []domain.Task {
	needle := strings.ToLower(q.Search)
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if needle != "" &&
			!strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			continue
		}
		if q.Priority != "" && q.Priority != PriorityAll && t.Priority != q.Priority {
			continue
		}
		switch q.Status {
		case StatusCompleted:
			if !t.Completed {
				continue
			}
		case StatusPending:
			if t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// Bucket names a date-range display group.
type Bucket string

const (
	BucketToday     Bucket = "Today"
	BucketThisWeek  Bucket = "This Week"
	BucketThisMonth Bucket = "This Month"
	BucketLater     Bucket = "Later"
	BucketNoDate    Bucket = "No Date"
)

// Groups holds the bucketed view. Order within each bucket is the
// order the tasks arrived in (creation-descending from the store).
type Groups struct {
	Today     []domain.Task
	ThisWeek  []domain.Task
	ThisMonth []domain.Task
	Later     []domain.Task
	NoDate    []domain.Task
}

// BucketOf classifies a task relative to today. The ranges are:
// due == today -> Today; today < due <= today+7d -> This Week;
// week boundary < due <= today+1mo -> This Month; beyond -> Later;
// absent date -> No Date. A past due date matches none of the ranges
// and reports ok=false, so such tasks stay unbucketed.
func BucketOf(t domain.Task, today domain.Date) (Bucket, bool) {
	if t.DueDate == nil {
		return BucketNoDate, true
	}
	due := *t.DueDate
	week := today.AddDays(7)
	month := today.AddMonths(1)

	switch {
	case due.Equal(today):
		return BucketToday, true
	case due.After(today) && !due.After(week):
		return BucketThisWeek, true
	case due.After(week) && !due.After(month):
		return BucketThisMonth, true
	case due.After(month):
		return BucketLater, true
	}
	return "", false
}

// Group buckets each task into exactly one date-range group.
func Group(tasks []domain.Task, today domain.Date) Groups {
	var g Groups
	for _, t := range tasks {
		bucket, ok := BucketOf(t, today)
		if !ok {
			continue
		}
		switch bucket {
		case BucketToday:
			g.Today = append(g.Today, t)
		case BucketThisWeek:
			g.ThisWeek = append(g.ThisWeek, t)
		case BucketThisMonth:
			g.ThisMonth = append(g.ThisMonth, t)
		case BucketLater:
			g.Later = append(g.Later, t)
		case BucketNoDate:
			g.NoDate = append(g.NoDate, t)
		}
	}
	return g
}
