// Package source turns the raw text of each external data source into
// typed records. Every parser in this package is tolerant: malformed
// input yields an empty or default result and a warning, never an error.
package source

import (
	"log/slog"
	"strings"

	"github.com/quietloop/lifeboard/internal/model"
)

// cronColumns are the header labels of the scheduler report, in order.
var cronColumns = []string{"ID", "NAME", "SCHEDULE", "NEXT", "LAST", "STATUS"}

var knownCronStatuses = map[string]bool{
	"ok": true, "idle": true, "error": true, "running": true,
}

// ParseCronReport slices the fixed-width scheduler report into cron job
// records. Column offsets come from the header line; rows whose id or
// name is blank after trimming are dropped. Unknown statuses map to
// "unknown".
func ParseCronReport(text string, logger *slog.Logger) []model.CronJob {
	lines := strings.Split(text, "\n")

	header := -1
	for i, line := range lines {
		if strings.Contains(line, "ID") && strings.Contains(line, "SCHEDULE") {
			header = i
			break
		}
	}
	if header == -1 {
		if strings.TrimSpace(text) != "" {
			logger.Warn("cron report has no recognizable header")
		}
		return nil
	}

	offsets := columnOffsets(lines[header], cronColumns)
	if offsets == nil {
		logger.Warn("cron report header missing expected columns")
		return nil
	}

	var jobs []model.CronJob
	for _, line := range lines[header+1:] {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "-") {
			continue
		}
		fields := sliceColumns(line, offsets)

		job := model.CronJob{
			ID:       fields[0],
			Name:     fields[1],
			Schedule: fields[2],
			NextRun:  fields[3],
			LastRun:  fields[4],
			Status:   strings.ToLower(fields[5]),
		}
		if job.ID == "" || job.Name == "" {
			continue
		}
		if !knownCronStatuses[job.Status] {
			job.Status = "unknown"
		}
		jobs = append(jobs, job)
	}
	return jobs
}

// columnOffsets locates each label's start index in the header line.
// Returns nil if any label is missing or out of order.
func columnOffsets(header string, labels []string) []int {
	offsets := make([]int, 0, len(labels))
	from := 0
	for _, label := range labels {
		idx := strings.Index(header[from:], label)
		if idx < 0 {
			return nil
		}
		offsets = append(offsets, from+idx)
		from += idx + len(label)
	}
	return offsets
}

// sliceColumns cuts one row at the given start offsets and trims each
// cell. Short rows produce empty trailing cells.
func sliceColumns(line string, offsets []int) []string {
	fields := make([]string, len(offsets))
	for i, start := range offsets {
		if start >= len(line) {
			fields[i] = ""
			continue
		}
		end := len(line)
		if i+1 < len(offsets) && offsets[i+1] < end {
			end = offsets[i+1]
		}
		fields[i] = strings.TrimSpace(line[start:end])
	}
	return fields
}
