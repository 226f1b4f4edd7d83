// Package todo contains the task model and the pure filtering logic the
// views are built on.
//
// This package has no dependency on the hosted store or the web layer. It
// provides:
//   - The Task record as stored in the remote todos table
//   - Day, a calendar day in local time with no time-of-day component
//   - Bucketing of tasks into calendar days
//   - The "completed today" count shown above the task list
//   - A stable pending/completed partition for rendering
//
// # Day Bucketing
//
// A task belongs to exactly one calendar day, determined by decomposing
// its creation timestamp into local year, month and day. Comparisons never
// go through truncated instants or formatted strings: a task created at
// 23:59 local time belongs to that day regardless of the UTC offset, and a
// task created at local midnight belongs to the day that just started.
//
// # Example Usage
//
//	day, err := todo.ParseDay("2024-03-01")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	bucket := todo.BucketByDay(tasks, day)
//	pending, completed := todo.PartitionByStatus(bucket)
//	done := todo.CountCompletedToday(tasks, time.Now())
package todo
