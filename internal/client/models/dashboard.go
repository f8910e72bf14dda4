package models

// Overview is the global (or section-scoped, for users that belong to a
// section) file counter block of the dashboard.
type Overview struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

type SectionStats struct {
	Name      string `json:"name"`
	Pending   int    `json:"pending"`
	Overdue   int    `json:"overdue"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

type Stats struct {
	Overview Overview       `json:"overview"`
	Sections []SectionStats `json:"sections"`
}

// Alert is a pending file whose SLA window is more than half elapsed.
// Percentage and TimeLeft are computed server-side.
type Alert struct {
	ID          int64    `json:"id"`
	Filename    string   `json:"filename"`
	Section     string   `json:"section"`
	UploadDate  string   `json:"upload_date"`
	SLADeadline string   `json:"sla_deadline"`
	Percentage  int      `json:"percentage"`
	TimeLeft    string   `json:"time_left"`
	Priority    Priority `json:"priority"`
}
