// Package analytics derives dashboard numbers from a snapshot of the
// task list. All derivations are pure and recomputed from scratch on
// every call.
package analytics

import (
	"math"

	"github.com/taskdeck/taskdeck/domain"
)

// Summary holds the dashboard counters.
type Summary struct {
	Total               int          `json:"total"`
	Completed           int          `json:"completed"`
	Pending             int          `json:"pending"`
	HighPriorityPending int          `json:"highPriorityPending"`
	CompletionPct       int          `json:"completionPct"`
	DueToday            int          `json:"dueToday"`
	NextDue             *domain.Date `json:"nextDue,omitempty"`
}

// Summarize computes the counters for the given day. NextDue is the
// earliest non-past due date among pending tasks, nil when there is
// none.
func Summarize(tasks []domain.Task, today domain.Date) Summary {
	var s Summary
	s.Total = len(tasks)

	for _, t := range tasks {
		if t.Completed {
			s.Completed++
			continue
		}
		s.Pending++
		if t.Priority == domain.PriorityHigh {
			s.HighPriorityPending++
		}
		if t.DueDate == nil || t.DueDate.Before(today) {
			continue
		}
		if t.DueDate.Equal(today) {
			s.DueToday++
		}
		if s.NextDue == nil || t.DueDate.Before(*s.NextDue) {
			due := *t.DueDate
			s.NextDue = &due
		}
	}

	if s.Total > 0 {
		s.CompletionPct = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}

// TrendPoint counts completions attributed to one calendar day.
type TrendPoint struct {
	Day       domain.Date `json:"day"`
	Completed int         `json:"completed"`
}

// CompletionTrend returns one point per day for the last seven days,
// oldest first, today included. A task counts toward the day it was
// created, as an approximation of its completion day: no completion
// timestamp is tracked.
func CompletionTrend(tasks []domain.Task, today domain.Date) []TrendPoint {
	points := make([]TrendPoint, 0, 7)
	for offset := -6; offset <= 0; offset++ {
		day := today.AddDays(offset)
		point := TrendPoint{Day: day}
		for _, t := range tasks {
			if t.Completed && domain.DateOf(t.CreatedAt).Equal(day) {
				point.Completed++
			}
		}
		points = append(points, point)
	}
	return points
}
