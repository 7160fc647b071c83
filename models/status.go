package models

type Status string

const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In-progress"
	StatusCompleted  Status = "Completed"
	StatusBlocked    Status = "Blocked"
)

func (s Status) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusCompleted, StatusBlocked:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
