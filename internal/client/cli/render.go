package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/anandk87/filetrack/internal/client/models"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	overdueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	criticalStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	highStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// statusCell pads the value to width first, then applies color, so ANSI
// escape codes do not break column alignment.
func statusCell(s models.Status, width int) string {
	text := fmt.Sprintf("%-*s", width, s)
	switch s {
	case models.StatusCompleted:
		return completedStyle.Render(text)
	case models.StatusOverdue:
		return overdueStyle.Render(text)
	case models.StatusPending:
		return pendingStyle.Render(text)
	default:
		return text
	}
}

func priorityCell(p models.Priority, width int) string {
	text := fmt.Sprintf("%-*s", width, p)
	switch p {
	case models.PriorityCritical:
		return criticalStyle.Render(text)
	case models.PriorityHigh:
		return highStyle.Render(text)
	default:
		return text
	}
}

func dateCell(d *models.Datetime) string {
	if d == nil || d.IsZero() {
		return "-"
	}
	return d.Format("2006-01-02")
}

func renderFiles(files []models.File) string {
	if len(files) == 0 {
		return "No files found."
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-5s %-28s %-8s %-9s %-10s %-11s %-11s %-11s",
		"ID", "File", "Section", "Priority", "Status", "App Date", "Uploaded", "Deadline")))
	b.WriteString("\n")

	for _, f := range files {
		b.WriteString(fmt.Sprintf("%-5d %-28s %-8s %s %s %-11s %-11s %-11s\n",
			f.ID,
			truncate(f.Filename, 28),
			f.Section,
			priorityCell(f.Priority, 9),
			statusCell(f.Status, 10),
			dateCell(f.ExtractedDate),
			dateCell(f.UploadDate),
			dateCell(f.SLADeadline),
		))
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("Showing %d records", len(files))))
	return b.String()
}

func renderStats(s *models.Stats) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Overview"))
	b.WriteString(fmt.Sprintf("\nTotal: %d  %s %s %s\n",
		s.Overview.Total,
		pendingStyle.Render(fmt.Sprintf("Pending: %d", s.Overview.Pending)),
		completedStyle.Render(fmt.Sprintf("Completed: %d", s.Overview.Completed)),
		overdueStyle.Render(fmt.Sprintf("Overdue: %d", s.Overview.Overdue)),
	))

	if len(s.Sections) == 0 {
		return b.String()
	}

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-10s %-8s %-10s %-8s %-6s",
		"Section", "Pending", "Completed", "Overdue", "Total")))
	b.WriteString("\n")
	for _, sec := range s.Sections {
		b.WriteString(fmt.Sprintf("%-10s %-8d %-10d %-8d %-6d\n",
			sec.Name, sec.Pending, sec.Completed, sec.Overdue, sec.Total))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderAlerts(alerts []models.Alert) string {
	if len(alerts) == 0 {
		return "No SLA alerts."
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-5s %-28s %-8s %-9s %-9s %-10s",
		"ID", "File", "Section", "Priority", "Elapsed", "Time left")))
	b.WriteString("\n")
	for _, a := range alerts {
		elapsed := fmt.Sprintf("%d%%", a.Percentage)
		left := a.TimeLeft
		if left == "Overdue" {
			left = overdueStyle.Render(left)
		}
		b.WriteString(fmt.Sprintf("%-5d %-28s %-8s %s %-9s %-10s\n",
			a.ID, truncate(a.Filename, 28), a.Section, priorityCell(a.Priority, 9), elapsed, left))
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
