// Package kvdb implements the entity repositories over kvstore collections.
// Each repository owns its collection(s) and performs every multi-collection
// mutation inside a single store transaction.
package kvdb

// Collection keys, carried over from the original storage layout.
const (
	groupsKey      = "duotask_groups"
	studentsKey    = "duotask_students"
	tasksKey       = "duotask_tasks"
	gradesKey      = "duotask_grades"
	attendancesKey = "attendances"
	eventsKey      = "duotask_events"
	usersKey       = "usuarios"
)
