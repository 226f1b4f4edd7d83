package todo

import "time"

// BucketByDay returns the tasks whose creation timestamp falls on the
// target calendar day, preserving the input order. Membership is decided
// by local calendar-field decomposition, never by comparing truncated
// instants, so tasks created near midnight are not shifted across a
// timezone boundary.
//
// An empty input or a day with no tasks yields an empty slice, not nil
// semantics worth distinguishing: callers range over the result either way.
func BucketByDay(tasks []Task, target Day) []Task {
	bucket := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if target.Contains(t.CreatedAt) {
			bucket = append(bucket, t)
		}
	}
	return bucket
}

// CountCompletedToday counts tasks that are completed and were last
// updated on the same local calendar day as now. The count always means
// "today" in real time, independent of which day is being viewed.
func CountCompletedToday(tasks []Task, now time.Time) int {
	today := DayOf(now)
	count := 0
	for _, t := range tasks {
		if t.Completed && today.Contains(t.UpdatedAt) {
			count++
		}
	}
	return count
}

// PartitionByStatus splits tasks into pending and completed, preserving
// the relative order of each subsequence.
func PartitionByStatus(tasks []Task) (pending, completed []Task) {
	pending = make([]Task, 0, len(tasks))
	completed = make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed {
			completed = append(completed, t)
		} else {
			pending = append(pending, t)
		}
	}
	return pending, completed
}
