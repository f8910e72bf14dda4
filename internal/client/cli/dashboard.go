package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/anandk87/filetrack/internal/filex"
)

// Dashboard shows the overview and per-section file counters.
func (a *App) Dashboard(ctx context.Context) error {
	if !a.admit(routeDashboard) {
		return nil
	}
	stats, err := a.client.Stats(ctx)
	if err != nil {
		printlnFn("Could not load dashboard:", err.Error())
		return err
	}
	printlnFn(renderStats(stats))
	return nil
}

// Alerts lists pending files whose SLA window is more than half elapsed.
func (a *App) Alerts(ctx context.Context) error {
	if !a.admit(routeAlerts) {
		return nil
	}
	alerts, err := a.client.Alerts(ctx)
	if err != nil {
		printlnFn("Could not load alerts:", err.Error())
		return err
	}
	printlnFn(renderAlerts(alerts))
	return nil
}

// Report downloads the daily status report PDF into ./reports.
func (a *App) Report(ctx context.Context) error {
	if !a.admit(routeReports) {
		return nil
	}

	data, err := a.client.DailyReport(ctx)
	if err != nil {
		printlnFn("Could not download report:", err.Error())
		return err
	}

	dir, err := filex.EnsureSubDir("reports")
	if err != nil {
		printlnFn("Could not create reports directory:", err.Error())
		return err
	}

	path := filepath.Join(dir, fmt.Sprintf("daily_report_%s.pdf", time.Now().Format("2006-01-02")))
	if err := os.WriteFile(path, data, 0o660); err != nil {
		printlnFn("Could not save report:", err.Error())
		return err
	}

	printlnFn("Report saved to:", path)
	return nil
}
