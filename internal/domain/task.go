package domain

// Task is the single persisted entity. ID is assigned by the database and never
// changes; Priority is optional and a nil Priority is stored as NULL, not zero.
type Task struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Priority *int32 `json:"priority"`
}

// TaskInput carries the mutable fields of a task. Creating and updating a task
// both replace Name and Priority as a whole.
type TaskInput struct {
	Name     string
	Priority *int32
}
