package models

type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusOverdue   Status = "Overdue"
	StatusCompleted Status = "Completed"
)

// File is a tracked administrative file as reported by the server. The
// server is the source of truth: locally the client only flips Status and
// stamps CompletionDate after a successful complete call, or drops the file
// from its cache after a successful soft-delete.
type File struct {
	ID             int64     `json:"id"`
	Filename       string    `json:"filename"`
	Section        string    `json:"section"`
	Priority       Priority  `json:"priority"`
	Status         Status    `json:"status"`
	UploadDate     *Datetime `json:"upload_date"`
	ExtractedDate  *Datetime `json:"extracted_date"`
	SLADeadline    *Datetime `json:"sla_deadline"`
	CompletionDate *Datetime `json:"completion_date"`
}
