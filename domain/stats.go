package domain

// TaskStats is the dashboard breakdown of visible tasks. The counts are
// computed over the same row scope the list endpoint applies, so a regular
// user only ever sees numbers for their own assignments.
type TaskStats struct {
	Total      int              `json:"total"`
	ByStatus   map[Status]int   `json:"by_status"`
	ByPriority map[Priority]int `json:"by_priority"`
	Overdue    int              `json:"overdue"`
}
