package models

// DashboardStats are the creator-scoped counts shown on the dashboard.
type DashboardStats struct {
	Projects   int64 `json:"projects"`
	Tasks      int64 `json:"tasks"`
	Completed  int64 `json:"completed"`
	InProgress int64 `json:"inProgress"`
}

type TeamClosure struct {
	TeamName string `json:"teamName"`
	Count    int64  `json:"count"`
}

type OwnerClosure struct {
	OwnerName string `json:"ownerName"`
	Count     int64  `json:"count"`
}

// ReportOverview aggregates completed work over the trailing week.
type ReportOverview struct {
	CompletedLastWeek int64          `json:"completedLastWeek"`
	PendingTasks      int64          `json:"pendingTasks"`
	ClosedByTeam      []TeamClosure  `json:"closedByTeam"`
	ClosedByOwner     []OwnerClosure `json:"closedByOwner"`
}
