package source

import (
	"log/slog"
	"strings"

	"github.com/quietloop/lifeboard/internal/model"
)

// ParseTaskExport parses the task manager's tab-separated export. The
// first line is a header and is skipped. Rows with fewer than two
// fields are dropped; missing optional columns stay empty.
func ParseTaskExport(text string, logger *slog.Logger) []model.Task {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 {
		return nil
	}

	var tasks []model.Task
	dropped := 0
	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			dropped++
			continue
		}
		for j := range fields {
			fields[j] = strings.TrimSpace(fields[j])
		}

		task := model.Task{
			ID:    fields[0],
			Title: fields[1],
		}
		if len(fields) > 2 {
			task.Project = fields[2]
		}
		if len(fields) > 3 {
			task.Area = fields[3]
		}
		if len(fields) > 4 {
			task.Status = fields[4]
		}
		if task.ID == "" && task.Title == "" {
			dropped++
			continue
		}
		tasks = append(tasks, task)
	}

	if dropped > 0 {
		logger.Warn("task export rows dropped", "count", dropped)
	}
	return tasks
}
